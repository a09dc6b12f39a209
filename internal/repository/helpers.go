package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/vitae/internal/db"
)

// ErrNotFound is wrapped by every lookup that matches no row, so callers
// can tell a missing row from a failing store.
var ErrNotFound = errors.New("not found")

// nullableIntToValue converts a *int to a value suitable for SQLite storage.
// Returns nil (SQL NULL) if the pointer is nil.
func nullableIntToValue(v *int) any {
	if v == nil {
		return nil
	}
	return *v
}

// nullableBoolToValue stores an optional flag as NULL, 0 or 1.
func nullableBoolToValue(v *bool) any {
	if v == nil {
		return nil
	}
	return boolToInt(*v)
}

func intPtrFromNull(n sql.NullInt64) *int {
	if !n.Valid {
		return nil
	}
	v := int(n.Int64)
	return &v
}

func boolPtrFromNull(n sql.NullInt64) *bool {
	if !n.Valid {
		return nil
	}
	v := intToBool(int(n.Int64))
	return &v
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func intToBool(i int) bool {
	return i != 0
}

// nowUTC returns the current UTC time formatted as RFC3339.
func nowUTC() string {
	return time.Now().UTC().Format(time.RFC3339)
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return nowUTC()
	}
	return t.UTC().Format(time.RFC3339)
}

// parseTimestamps fills created/updated from their stored RFC3339 form.
func parseTimestamps(createdStr, updatedStr string, created, updated *time.Time) error {
	var err error
	if *created, err = time.Parse(time.RFC3339, createdStr); err != nil {
		return fmt.Errorf("parsing created_at: %w", err)
	}
	if *updated, err = time.Parse(time.RFC3339, updatedStr); err != nil {
		return fmt.Errorf("parsing updated_at: %w", err)
	}
	return nil
}

// setPositions writes ids' slice order into the position column of table,
// scoped to rows under parentCol = parentID.
func setPositions(ctx context.Context, conn db.DBTX, table, parentCol, parentID string, ids []string) error {
	query := fmt.Sprintf(`UPDATE %s SET position = ?, updated_at = ? WHERE id = ? AND %s = ?`, table, parentCol)
	now := nowUTC()
	for i, id := range ids {
		if _, err := conn.ExecContext(ctx, query, i, now, id, parentID); err != nil {
			return fmt.Errorf("setting %s position: %w", table, err)
		}
	}
	return nil
}
