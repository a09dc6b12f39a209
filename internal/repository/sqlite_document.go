package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/alexanderramin/vitae/internal/db"
	"github.com/alexanderramin/vitae/internal/domain"
)

const documentColumns = `id, name, full_name, headline, email, phone, location, website, birth_date,
		layout, show_icons, basic_font_size, basic_single_line, settings, active_section_id,
		created_at, updated_at`

// SQLiteDocumentRepo implements DocumentRepo. The personal-info scalars
// are columns; the authored contact field list lives in header_fields.
type SQLiteDocumentRepo struct {
	db db.DBTX
}

func NewSQLiteDocumentRepo(conn db.DBTX) *SQLiteDocumentRepo {
	return &SQLiteDocumentRepo{db: conn}
}

func (r *SQLiteDocumentRepo) Create(ctx context.Context, d *domain.Document) error {
	settings, err := json.Marshal(d.Settings)
	if err != nil {
		return fmt.Errorf("encoding settings: %w", err)
	}
	query := `INSERT INTO documents (` + documentColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	b := d.Basic
	_, err = r.db.ExecContext(ctx, query,
		d.ID,
		d.Name,
		b.Name,
		b.Headline,
		b.Email,
		b.Phone,
		b.Location,
		b.Website,
		b.BirthDate,
		string(b.Layout),
		nullableBoolToValue(b.ShowIcons),
		nullableIntToValue(b.FontSize),
		nullableBoolToValue(b.SingleLine),
		string(settings),
		d.ActiveSectionID,
		formatTime(d.CreatedAt),
		formatTime(d.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting document: %w", err)
	}
	return nil
}

func (r *SQLiteDocumentRepo) GetByID(ctx context.Context, id string) (*domain.Document, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+documentColumns+` FROM documents WHERE id = ?`, id)
	d, err := scanDocument(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("document %w", ErrNotFound)
	}
	return d, err
}

func (r *SQLiteDocumentRepo) List(ctx context.Context) ([]*domain.Document, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+documentColumns+` FROM documents ORDER BY created_at, name`)
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}
	defer rows.Close()

	var docs []*domain.Document
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating documents: %w", err)
	}
	return docs, nil
}

// Update writes the name, personal-info scalars and settings. The active
// section has its own setter; Basic.Fields is stored through FieldRepo.
func (r *SQLiteDocumentRepo) Update(ctx context.Context, d *domain.Document) error {
	settings, err := json.Marshal(d.Settings)
	if err != nil {
		return fmt.Errorf("encoding settings: %w", err)
	}
	query := `UPDATE documents SET name = ?, full_name = ?, headline = ?, email = ?, phone = ?,
		location = ?, website = ?, birth_date = ?, layout = ?, show_icons = ?, basic_font_size = ?,
		basic_single_line = ?, settings = ?, updated_at = ?
		WHERE id = ?`
	b := d.Basic
	res, err := r.db.ExecContext(ctx, query,
		d.Name,
		b.Name,
		b.Headline,
		b.Email,
		b.Phone,
		b.Location,
		b.Website,
		b.BirthDate,
		string(b.Layout),
		nullableBoolToValue(b.ShowIcons),
		nullableIntToValue(b.FontSize),
		nullableBoolToValue(b.SingleLine),
		string(settings),
		formatTime(d.UpdatedAt),
		d.ID,
	)
	if err != nil {
		return fmt.Errorf("updating document: %w", err)
	}
	return requireAffected(res, "document")
}

func (r *SQLiteDocumentRepo) SetActiveSection(ctx context.Context, documentID, sectionID string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE documents SET active_section_id = ? WHERE id = ?`, sectionID, documentID)
	if err != nil {
		return fmt.Errorf("setting active section: %w", err)
	}
	return requireAffected(res, "document")
}

func (r *SQLiteDocumentRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM documents WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting document: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDocument(row rowScanner) (*domain.Document, error) {
	var d domain.Document
	var layout, settings, createdStr, updatedStr string
	var showIcons, fontSize, singleLine sql.NullInt64

	err := row.Scan(
		&d.ID, &d.Name,
		&d.Basic.Name, &d.Basic.Headline, &d.Basic.Email, &d.Basic.Phone,
		&d.Basic.Location, &d.Basic.Website, &d.Basic.BirthDate,
		&layout, &showIcons, &fontSize, &singleLine,
		&settings, &d.ActiveSectionID,
		&createdStr, &updatedStr,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning document: %w", err)
	}

	d.Basic.Layout = domain.Align(layout)
	d.Basic.ShowIcons = boolPtrFromNull(showIcons)
	d.Basic.FontSize = intPtrFromNull(fontSize)
	d.Basic.SingleLine = boolPtrFromNull(singleLine)
	if settings != "" {
		if err := json.Unmarshal([]byte(settings), &d.Settings); err != nil {
			return nil, fmt.Errorf("decoding settings: %w", err)
		}
	}
	if err := parseTimestamps(createdStr, updatedStr, &d.CreatedAt, &d.UpdatedAt); err != nil {
		return nil, err
	}
	return &d, nil
}

func requireAffected(res sql.Result, entity string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s %w", entity, ErrNotFound)
	}
	return nil
}
