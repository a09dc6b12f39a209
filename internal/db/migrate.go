package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs every schema statement, then the data backfills. It is safe
// to run on every start.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// ALTER TABLE statements re-run on every start.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	if err := migrateCompactPositions(db); err != nil {
		return fmt.Errorf("compacting positions: %w", err)
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS documents (
		id          TEXT PRIMARY KEY,
		name        TEXT NOT NULL,
		full_name   TEXT NOT NULL DEFAULT '',
		headline    TEXT NOT NULL DEFAULT '',
		email       TEXT NOT NULL DEFAULT '',
		phone       TEXT NOT NULL DEFAULT '',
		location    TEXT NOT NULL DEFAULT '',
		website     TEXT NOT NULL DEFAULT '',
		birth_date  TEXT NOT NULL DEFAULT '',
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS sections (
		id          TEXT PRIMARY KEY,
		document_id TEXT NOT NULL REFERENCES documents(id) ON DELETE CASCADE,
		kind        TEXT NOT NULL CHECK(kind IN ('education','custom')),
		title       TEXT NOT NULL DEFAULT '',
		visible     INTEGER NOT NULL DEFAULT 1,
		position    INTEGER NOT NULL DEFAULT 0,
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_sections_document ON sections(document_id, position)`,

	`CREATE TABLE IF NOT EXISTS items (
		id          TEXT PRIMARY KEY,
		section_id  TEXT NOT NULL REFERENCES sections(id) ON DELETE CASCADE,
		position    INTEGER NOT NULL DEFAULT 0,
		title       TEXT NOT NULL DEFAULT '',
		subtitle    TEXT NOT NULL DEFAULT '',
		date_range  TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT '',
		visible     INTEGER NOT NULL DEFAULT 1,
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_items_section ON items(section_id, position)`,

	// Field lists belong either to an item or to a document's personal-info
	// block, so the owner is polymorphic and cleaned up by triggers.
	`CREATE TABLE IF NOT EXISTS header_fields (
		owner_kind  TEXT NOT NULL CHECK(owner_kind IN ('item','basic')),
		owner_id    TEXT NOT NULL,
		id          TEXT NOT NULL,
		position    INTEGER NOT NULL,
		label       TEXT NOT NULL DEFAULT '',
		value       TEXT NOT NULL DEFAULT '',
		kind        TEXT NOT NULL DEFAULT 'text' CHECK(kind IN ('text','date')),
		align       TEXT NOT NULL DEFAULT '',
		bold        INTEGER,
		font_size   INTEGER,
		show_icon   INTEGER,
		icon        TEXT NOT NULL DEFAULT '',
		visible     INTEGER,
		single_line INTEGER,
		date_format TEXT NOT NULL DEFAULT '',
		PRIMARY KEY (owner_kind, owner_id, id)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_header_fields_owner ON header_fields(owner_kind, owner_id, position)`,

	`CREATE TRIGGER IF NOT EXISTS trg_items_drop_fields AFTER DELETE ON items
	BEGIN
		DELETE FROM header_fields WHERE owner_kind = 'item' AND owner_id = OLD.id;
	END`,

	`CREATE TRIGGER IF NOT EXISTS trg_documents_drop_fields AFTER DELETE ON documents
	BEGIN
		DELETE FROM header_fields WHERE owner_kind = 'basic' AND owner_id = OLD.id;
	END`,

	// v2: presentation settings and the focused section.
	`ALTER TABLE documents ADD COLUMN settings TEXT NOT NULL DEFAULT '{}'`,
	`ALTER TABLE documents ADD COLUMN active_section_id TEXT NOT NULL DEFAULT ''`,

	// v3: personal-info block defaults.
	`ALTER TABLE documents ADD COLUMN layout TEXT NOT NULL DEFAULT ''`,
	`ALTER TABLE documents ADD COLUMN show_icons INTEGER`,
	`ALTER TABLE documents ADD COLUMN basic_font_size INTEGER`,
	`ALTER TABLE documents ADD COLUMN basic_single_line INTEGER`,
}

// migrateCompactPositions renumbers sections and items 0..n-1 within their
// parent. Stores written before positions were maintained densely may have
// gaps or duplicates; ties are broken by creation time.
func migrateCompactPositions(db *sql.DB) error {
	ctx := context.Background()
	targets := []struct{ table, parent string }{
		{"sections", "document_id"},
		{"items", "section_id"},
	}
	for _, tgt := range targets {
		var dirty int
		// A parent is dirty when its positions are not exactly 0..n-1.
		q := fmt.Sprintf(`SELECT COUNT(*) FROM (
			SELECT %[2]s FROM %[1]s GROUP BY %[2]s
			HAVING MIN(position) != 0 OR MAX(position) != COUNT(*) - 1 OR COUNT(DISTINCT position) != COUNT(*)
		)`, tgt.table, tgt.parent)
		if err := db.QueryRowContext(ctx, q).Scan(&dirty); err != nil {
			return fmt.Errorf("checking %s positions: %w", tgt.table, err)
		}
		if dirty == 0 {
			continue
		}
		if err := renumber(ctx, db, tgt.table, tgt.parent); err != nil {
			return fmt.Errorf("renumbering %s: %w", tgt.table, err)
		}
	}
	return nil
}

func renumber(ctx context.Context, db *sql.DB, table, parent string) error {
	rows, err := db.QueryContext(ctx, fmt.Sprintf(
		`SELECT id, %s FROM %s ORDER BY %s, position, created_at, id`, parent, table, parent))
	if err != nil {
		return fmt.Errorf("listing rows: %w", err)
	}
	type row struct {
		id  string
		pos int
	}
	var updates []row
	lastParent, pos := "", 0
	for rows.Next() {
		var id, p string
		if err := rows.Scan(&id, &p); err != nil {
			rows.Close()
			return fmt.Errorf("scanning row: %w", err)
		}
		if p != lastParent {
			lastParent, pos = p, 0
		}
		updates = append(updates, row{id: id, pos: pos})
		pos++
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return err
	}
	rows.Close()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	stmt := fmt.Sprintf(`UPDATE %s SET position = ? WHERE id = ?`, table)
	for _, u := range updates {
		if _, err := tx.ExecContext(ctx, stmt, u.pos, u.id); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("updating position: %w", err)
		}
	}
	return tx.Commit()
}
