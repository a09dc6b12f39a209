package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alexanderramin/vitae/internal/db"
	"github.com/alexanderramin/vitae/internal/domain"
)

const fieldColumns = `id, label, value, kind, align, bold, font_size, show_icon, icon, visible,
		single_line, date_format`

type SQLiteFieldRepo struct {
	db db.DBTX
}

func NewSQLiteFieldRepo(conn db.DBTX) *SQLiteFieldRepo {
	return &SQLiteFieldRepo{db: conn}
}

// List returns the owner's stored list in display order. An owner that was
// never authored has no rows and yields nil.
func (r *SQLiteFieldRepo) List(ctx context.Context, owner domain.Owner) ([]domain.HeaderField, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+fieldColumns+` FROM header_fields WHERE owner_kind = ? AND owner_id = ? ORDER BY position`,
		string(owner.Kind), owner.ID)
	if err != nil {
		return nil, fmt.Errorf("listing header fields: %w", err)
	}
	defer rows.Close()

	var fields []domain.HeaderField
	for rows.Next() {
		f, err := scanField(rows)
		if err != nil {
			return nil, err
		}
		fields = append(fields, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating header fields: %w", err)
	}
	return fields, nil
}

// ListItemFieldsBySection loads the stored lists of every item in a
// section in one query, keyed by item id.
func (r *SQLiteFieldRepo) ListItemFieldsBySection(ctx context.Context, sectionID string) (map[string][]domain.HeaderField, error) {
	query := `SELECT f.owner_id, f.id, f.label, f.value, f.kind, f.align, f.bold, f.font_size, f.show_icon,
			f.icon, f.visible, f.single_line, f.date_format
		FROM header_fields f
		JOIN items i ON i.id = f.owner_id
		WHERE f.owner_kind = 'item' AND i.section_id = ?
		ORDER BY f.owner_id, f.position`
	rows, err := r.db.QueryContext(ctx, query, sectionID)
	if err != nil {
		return nil, fmt.Errorf("listing section header fields: %w", err)
	}
	defer rows.Close()

	out := make(map[string][]domain.HeaderField)
	for rows.Next() {
		var ownerID string
		f, err := scanField(rows, &ownerID)
		if err != nil {
			return nil, err
		}
		out[ownerID] = append(out[ownerID], f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating section header fields: %w", err)
	}
	return out, nil
}

// Replace swaps the owner's list for fields. Callers run it inside a
// UnitOfWork so readers never see a half-written list.
func (r *SQLiteFieldRepo) Replace(ctx context.Context, owner domain.Owner, fields []domain.HeaderField) error {
	if _, err := r.db.ExecContext(ctx,
		`DELETE FROM header_fields WHERE owner_kind = ? AND owner_id = ?`, string(owner.Kind), owner.ID); err != nil {
		return fmt.Errorf("clearing header fields: %w", err)
	}

	query := `INSERT INTO header_fields (owner_kind, owner_id, position, ` + fieldColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	for i, f := range fields {
		kind := f.Kind
		if kind == "" {
			kind = domain.FieldText
		}
		_, err := r.db.ExecContext(ctx, query,
			string(owner.Kind),
			owner.ID,
			i,
			f.ID,
			f.Label,
			f.Value,
			string(kind),
			string(f.Align),
			nullableBoolToValue(f.Bold),
			nullableIntToValue(f.FontSize),
			nullableBoolToValue(f.ShowIcon),
			f.Icon,
			nullableBoolToValue(f.Visible),
			nullableBoolToValue(f.SingleLine),
			string(f.DateFormat),
		)
		if err != nil {
			return fmt.Errorf("inserting header field %s: %w", f.ID, err)
		}
	}
	return nil
}

// scanField reads one header_fields row; prefix receives any leading
// columns selected before the field columns.
func scanField(rows *sql.Rows, prefix ...any) (domain.HeaderField, error) {
	var f domain.HeaderField
	var kind, align, dateFormat string
	var bold, fontSize, showIcon, visible, singleLine sql.NullInt64

	dest := append(prefix,
		&f.ID, &f.Label, &f.Value, &kind, &align,
		&bold, &fontSize, &showIcon, &f.Icon, &visible, &singleLine, &dateFormat,
	)
	if err := rows.Scan(dest...); err != nil {
		return domain.HeaderField{}, fmt.Errorf("scanning header field: %w", err)
	}
	f.Kind = domain.FieldKind(kind)
	f.Align = domain.Align(align)
	f.DateFormat = domain.DateFormat(dateFormat)
	f.Bold = boolPtrFromNull(bold)
	f.FontSize = intPtrFromNull(fontSize)
	f.ShowIcon = boolPtrFromNull(showIcon)
	f.Visible = boolPtrFromNull(visible)
	f.SingleLine = boolPtrFromNull(singleLine)
	return f, nil
}
