package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/vitae/internal/db"
	"github.com/alexanderramin/vitae/internal/domain"
)

const sectionColumns = `id, document_id, kind, title, visible, position, created_at, updated_at`

type SQLiteSectionRepo struct {
	db db.DBTX
}

func NewSQLiteSectionRepo(conn db.DBTX) *SQLiteSectionRepo {
	return &SQLiteSectionRepo{db: conn}
}

func (r *SQLiteSectionRepo) Create(ctx context.Context, s *domain.Section) error {
	query := `INSERT INTO sections (` + sectionColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		s.ID,
		s.DocumentID,
		string(s.Kind),
		s.Title,
		boolToInt(s.Visible),
		s.Position,
		formatTime(s.CreatedAt),
		formatTime(s.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting section: %w", err)
	}
	return nil
}

func (r *SQLiteSectionRepo) GetByID(ctx context.Context, id string) (*domain.Section, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+sectionColumns+` FROM sections WHERE id = ?`, id)
	s, err := scanSection(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("section %w", ErrNotFound)
	}
	return s, err
}

func (r *SQLiteSectionRepo) ListByDocument(ctx context.Context, documentID string) ([]*domain.Section, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+sectionColumns+` FROM sections WHERE document_id = ? ORDER BY position, created_at`, documentID)
	if err != nil {
		return nil, fmt.Errorf("listing sections: %w", err)
	}
	defer rows.Close()

	var sections []*domain.Section
	for rows.Next() {
		s, err := scanSection(rows)
		if err != nil {
			return nil, err
		}
		sections = append(sections, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sections: %w", err)
	}
	return sections, nil
}

func (r *SQLiteSectionRepo) Update(ctx context.Context, s *domain.Section) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE sections SET title = ?, visible = ?, updated_at = ? WHERE id = ?`,
		s.Title, boolToInt(s.Visible), formatTime(s.UpdatedAt), s.ID)
	if err != nil {
		return fmt.Errorf("updating section: %w", err)
	}
	return requireAffected(res, "section")
}

func (r *SQLiteSectionRepo) SetPositions(ctx context.Context, documentID string, ids []string) error {
	return setPositions(ctx, r.db, "sections", "document_id", documentID, ids)
}

func (r *SQLiteSectionRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM sections WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting section: %w", err)
	}
	return nil
}

func scanSection(row rowScanner) (*domain.Section, error) {
	var s domain.Section
	var kind, createdStr, updatedStr string
	var visible int
	err := row.Scan(&s.ID, &s.DocumentID, &kind, &s.Title, &visible, &s.Position, &createdStr, &updatedStr)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning section: %w", err)
	}
	s.Kind = domain.SectionKind(kind)
	s.Visible = intToBool(visible)
	if err := parseTimestamps(createdStr, updatedStr, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}
