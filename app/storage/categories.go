package storage

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	sqlite3 "github.com/mattn/go-sqlite3"
)

// Category is a per-user shopping department.
type Category struct {
	ID     int64  `db:"id"`
	UserID int64  `db:"user_id"`
	Name   string `db:"name"`
}

// CategoryStore persists categories.
type CategoryStore struct {
	db *sqlx.DB
}

// NewCategoryStore wraps the shared connection.
func NewCategoryStore(db *sqlx.DB) *CategoryStore {
	return &CategoryStore{db: db}
}

// ListByUser returns all categories of a user in creation order.
func (s *CategoryStore) ListByUser(ctx context.Context, userID int64) ([]Category, error) {
	var out []Category
	err := s.db.SelectContext(ctx, &out,
		`SELECT id, user_id, name FROM categories WHERE user_id = ? ORDER BY id`, userID)
	return out, err
}

// ListWithItems returns categories that contain at least one item.
// With includeBought false only categories holding unbought items qualify.
func (s *CategoryStore) ListWithItems(ctx context.Context, userID int64, includeBought bool) ([]Category, error) {
	query := `
		SELECT DISTINCT c.id, c.user_id, c.name
		FROM categories c
		INNER JOIN items i ON c.name = i.department AND c.user_id = i.user_id
		WHERE c.user_id = ?`
	if !includeBought {
		query += ` AND i.is_bought = 0`
	}
	query += ` ORDER BY c.id`

	var out []Category
	err := s.db.SelectContext(ctx, &out, query, userID)
	return out, err
}

// GetByID fetches a single category owned by the user.
func (s *CategoryStore) GetByID(ctx context.Context, userID, id int64) (*Category, error) {
	var c Category
	err := s.db.GetContext(ctx, &c,
		`SELECT id, user_id, name FROM categories WHERE user_id = ? AND id = ?`, userID, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create inserts a category. Returns false without error when the name
// already exists for the user.
func (s *CategoryStore) Create(ctx context.Context, userID int64, name string) (bool, error) {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO categories (user_id, name) VALUES (?, ?)`, userID, name)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && errors.Is(sqliteErr.ExtendedCode, sqlite3.ErrConstraintUnique) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Ensure inserts a category unless it already exists.
func (s *CategoryStore) Ensure(ctx context.Context, userID int64, name string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO categories (user_id, name) VALUES (?, ?)`, userID, name)
	return err
}

// DeleteByName removes a category by name. Items keep their department text.
func (s *CategoryStore) DeleteByName(ctx context.Context, userID int64, name string) (bool, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM categories WHERE user_id = ? AND name = ?`, userID, name)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// CountByUser reports how many categories the user has.
func (s *CategoryStore) CountByUser(ctx context.Context, userID int64) (int, error) {
	var n int
	err := s.db.GetContext(ctx, &n,
		`SELECT COUNT(*) FROM categories WHERE user_id = ?`, userID)
	return n, err
}
