package db

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMigrate_UpgradeFromV1 opens a store created before settings, the
// active section and block defaults existed, with sloppy positions.
func TestMigrate_UpgradeFromV1(t *testing.T) {
	db, err := sql.Open("sqlite", MemoryPath)
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	legacy := []string{
		`CREATE TABLE documents (
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
		`CREATE TABLE sections (
			id          TEXT PRIMARY KEY,
			document_id TEXT NOT NULL REFERENCES documents(id) ON DELETE CASCADE,
			kind        TEXT NOT NULL CHECK(kind IN ('education','custom')),
			title       TEXT NOT NULL DEFAULT '',
			visible     INTEGER NOT NULL DEFAULT 1,
			position    INTEGER NOT NULL DEFAULT 0,
			created_at  TEXT NOT NULL,
			updated_at  TEXT NOT NULL
		)`,
		`CREATE TABLE items (
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
		`INSERT INTO documents (id, name, full_name, created_at, updated_at) VALUES ('d1', 'cv', 'Ada', '2024-01-01T00:00:00Z', '2024-01-01T00:00:00Z')`,
		`INSERT INTO sections (id, document_id, kind, position, created_at, updated_at) VALUES ('s1', 'd1', 'education', 0, '2024-01-01T00:00:00Z', '2024-01-01T00:00:00Z')`,
		`INSERT INTO items (id, section_id, position, title, created_at, updated_at) VALUES
			('a', 's1', 5, 'first',  '2024-01-01T00:00:00Z', '2024-01-01T00:00:00Z'),
			('b', 's1', 9, 'second', '2024-01-02T00:00:00Z', '2024-01-02T00:00:00Z'),
			('c', 's1', 9, 'third',  '2024-01-03T00:00:00Z', '2024-01-03T00:00:00Z')`,
	}
	for _, stmt := range legacy {
		_, err := db.Exec(stmt)
		require.NoError(t, err)
	}

	require.NoError(t, Migrate(db))

	var settings, active, fullName string
	require.NoError(t, db.QueryRow(`SELECT settings, active_section_id, full_name FROM documents WHERE id = 'd1'`).Scan(&settings, &active, &fullName))
	assert.Equal(t, "{}", settings)
	assert.Equal(t, "", active)
	assert.Equal(t, "Ada", fullName)

	var showIcons sql.NullInt64
	require.NoError(t, db.QueryRow(`SELECT show_icons FROM documents WHERE id = 'd1'`).Scan(&showIcons))
	assert.False(t, showIcons.Valid)

	rows, err := db.Query(`SELECT id, position FROM items ORDER BY position`)
	require.NoError(t, err)
	defer rows.Close()
	var got []string
	for rows.Next() {
		var id string
		var pos int
		require.NoError(t, rows.Scan(&id, &pos))
		assert.Equal(t, len(got), pos)
		got = append(got, id)
	}
	require.NoError(t, rows.Err())
	assert.Equal(t, []string{"a", "b", "c"}, got)

	// A second pass finds nothing left to compact.
	require.NoError(t, Migrate(db))
}
