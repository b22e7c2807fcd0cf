package storage

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
)

// Item is a single shopping list entry.
type Item struct {
	ID         int64     `db:"id"`
	UserID     int64     `db:"user_id"`
	Name       string    `db:"name"`
	Department string    `db:"department"`
	IsBought   bool      `db:"is_bought"`
	CreatedAt  time.Time `db:"created_at"`
}

// ItemStore persists shopping list items.
type ItemStore struct {
	db *sqlx.DB
}

// NewItemStore wraps the shared connection.
func NewItemStore(db *sqlx.DB) *ItemStore {
	return &ItemStore{db: db}
}

const itemColumns = `id, user_id, name, department, is_bought, created_at`

// ListByUser returns items of a user sorted case-insensitively by name.
func (s *ItemStore) ListByUser(ctx context.Context, userID int64, includeBought bool) ([]Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE user_id = ?`
	if !includeBought {
		query += ` AND is_bought = 0`
	}
	query += ` ORDER BY name COLLATE NOCASE`

	var out []Item
	err := s.db.SelectContext(ctx, &out, query, userID)
	return out, err
}

// ListByDepartment returns the user's items within one department.
func (s *ItemStore) ListByDepartment(ctx context.Context, userID int64, department string, includeBought bool) ([]Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE user_id = ? AND department = ?`
	if !includeBought {
		query += ` AND is_bought = 0`
	}
	query += ` ORDER BY name COLLATE NOCASE`

	var out []Item
	err := s.db.SelectContext(ctx, &out, query, userID, department)
	return out, err
}

// Add inserts a new unbought item and returns its ID.
func (s *ItemStore) Add(ctx context.Context, userID int64, name, department string) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO items (user_id, name, department, is_bought) VALUES (?, ?, ?, 0)`,
		userID, name, department)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// ToggleBought flips the bought flag of an item the user owns and returns
// the new status. sql.ErrNoRows means the item does not exist.
func (s *ItemStore) ToggleBought(ctx context.Context, itemID, userID int64) (bool, error) {
	var current bool
	err := s.db.GetContext(ctx, &current,
		`SELECT is_bought FROM items WHERE id = ? AND user_id = ?`, itemID, userID)
	if err != nil {
		return false, err
	}
	_, err = s.db.ExecContext(ctx,
		`UPDATE items SET is_bought = ? WHERE id = ? AND user_id = ?`,
		!current, itemID, userID)
	if err != nil {
		return false, err
	}
	return !current, nil
}

// Delete removes an item owned by the user.
func (s *ItemStore) Delete(ctx context.Context, itemID, userID int64) (bool, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM items WHERE id = ? AND user_id = ?`, itemID, userID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// ClearBought deletes all bought items of the user and returns the count.
func (s *ItemStore) ClearBought(ctx context.Context, userID int64) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM items WHERE user_id = ? AND is_bought = 1`, userID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Rename updates an item's name.
func (s *ItemStore) Rename(ctx context.Context, itemID, userID int64, name string) (bool, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE items SET name = ? WHERE id = ? AND user_id = ?`, name, itemID, userID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// CountByUser reports how many items the user has, bought included.
func (s *ItemStore) CountByUser(ctx context.Context, userID int64) (int, error) {
	var n int
	err := s.db.GetContext(ctx, &n,
		`SELECT COUNT(*) FROM items WHERE user_id = ?`, userID)
	return n, err
}

// GetByID fetches one item owned by the user; nil when absent.
func (s *ItemStore) GetByID(ctx context.Context, itemID, userID int64) (*Item, error) {
	var it Item
	err := s.db.GetContext(ctx, &it,
		`SELECT `+itemColumns+` FROM items WHERE id = ? AND user_id = ?`, itemID, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &it, nil
}
