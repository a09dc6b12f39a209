package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/vitae/internal/db"
	"github.com/alexanderramin/vitae/internal/domain"
)

const itemColumns = `id, section_id, position, title, subtitle, date_range, description, visible,
		created_at, updated_at`

type SQLiteItemRepo struct {
	db db.DBTX
}

func NewSQLiteItemRepo(conn db.DBTX) *SQLiteItemRepo {
	return &SQLiteItemRepo{db: conn}
}

func (r *SQLiteItemRepo) Create(ctx context.Context, it *domain.Item) error {
	query := `INSERT INTO items (` + itemColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		it.ID,
		it.SectionID,
		it.Position,
		it.Title,
		it.Subtitle,
		it.DateRange,
		it.Description,
		boolToInt(it.Visible),
		formatTime(it.CreatedAt),
		formatTime(it.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting item: %w", err)
	}
	return nil
}

func (r *SQLiteItemRepo) GetByID(ctx context.Context, id string) (*domain.Item, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+itemColumns+` FROM items WHERE id = ?`, id)
	it, err := scanItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("item %w", ErrNotFound)
	}
	return it, err
}

func (r *SQLiteItemRepo) ListBySection(ctx context.Context, sectionID string) ([]*domain.Item, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+itemColumns+` FROM items WHERE section_id = ? ORDER BY position, created_at`, sectionID)
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}
	defer rows.Close()

	var items []*domain.Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating items: %w", err)
	}
	return items, nil
}

// Update writes the scalar attributes. Position is owned by SetPositions.
func (r *SQLiteItemRepo) Update(ctx context.Context, it *domain.Item) error {
	query := `UPDATE items SET title = ?, subtitle = ?, date_range = ?, description = ?, visible = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		it.Title,
		it.Subtitle,
		it.DateRange,
		it.Description,
		boolToInt(it.Visible),
		formatTime(it.UpdatedAt),
		it.ID,
	)
	if err != nil {
		return fmt.Errorf("updating item: %w", err)
	}
	return requireAffected(res, "item")
}

func (r *SQLiteItemRepo) SetPositions(ctx context.Context, sectionID string, ids []string) error {
	return setPositions(ctx, r.db, "items", "section_id", sectionID, ids)
}

func (r *SQLiteItemRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM items WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting item: %w", err)
	}
	return nil
}

func scanItem(row rowScanner) (*domain.Item, error) {
	var it domain.Item
	var createdStr, updatedStr string
	var visible int
	err := row.Scan(
		&it.ID, &it.SectionID, &it.Position,
		&it.Title, &it.Subtitle, &it.DateRange, &it.Description,
		&visible, &createdStr, &updatedStr,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning item: %w", err)
	}
	it.Visible = intToBool(visible)
	if err := parseTimestamps(createdStr, updatedStr, &it.CreatedAt, &it.UpdatedAt); err != nil {
		return nil, err
	}
	return &it, nil
}
