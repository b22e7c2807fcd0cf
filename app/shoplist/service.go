package shoplist

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/ksokolovskiy/ks-buy-bot/core/logger"
	"log/slog"

	"github.com/ksokolovskiy/ks-buy-bot/app/storage"
)

// View holds per-user list presentation state. It is persisted in the
// records table so toggles survive restarts.
type View struct {
	ShowBought bool   `json:"show_bought"`
	EditMode   bool   `json:"edit_mode"`
	LastRef    string `json:"last_ref,omitempty"`
}

// Service implements the shopping list use cases on top of the stores.
type Service struct {
	categories *storage.CategoryStore
	items      *storage.ItemStore
	records    *storage.RecordStore
}

// NewService wires the stores together.
func NewService(categories *storage.CategoryStore, items *storage.ItemStore, records *storage.RecordStore) *Service {
	return &Service{
		categories: categories,
		items:      items,
		records:    records,
	}
}

func viewKey(userID int64) string {
	return fmt.Sprintf("view:%d", userID)
}

// ViewState loads the persisted view preferences of a user.
// Missing or unreadable state degrades to the default view.
func (s *Service) ViewState(ctx context.Context, userID int64) View {
	payload, ok, err := s.records.Get(ctx, viewKey(userID))
	if err != nil {
		logger.SVCItems.Warn("view state load failed",
			slog.String("event", "view.load"),
			slog.Int64("user_id", userID),
			slog.String("err", err.Error()),
		)
		return View{}
	}
	if !ok {
		return View{}
	}
	var v View
	if err := json.Unmarshal([]byte(payload), &v); err != nil {
		return View{}
	}
	return v
}

// SaveViewState persists view preferences with read-modify-write semantics.
func (s *Service) SaveViewState(ctx context.Context, userID int64, v View) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.records.Put(ctx, viewKey(userID), string(data))
}

// Categories returns the user's departments in creation order.
func (s *Service) Categories(ctx context.Context, userID int64) ([]storage.Category, error) {
	return s.categories.ListByUser(ctx, userID)
}

// CategoriesWithItems returns departments that have items under the
// current bought-visibility filter.
func (s *Service) CategoriesWithItems(ctx context.Context, userID int64, includeBought bool) ([]storage.Category, error) {
	return s.categories.ListWithItems(ctx, userID, includeBought)
}

// Category resolves a department by its ID; nil when not owned by the user.
func (s *Service) Category(ctx context.Context, userID, id int64) (*storage.Category, error) {
	return s.categories.GetByID(ctx, userID, id)
}

// AddCategory creates a department. Returns false when the name is taken.
func (s *Service) AddCategory(ctx context.Context, userID int64, name string) (bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return false, fmt.Errorf("shoplist: empty category name")
	}
	created, err := s.categories.Create(ctx, userID, name)
	if err != nil {
		return false, err
	}
	logger.SVCCategories.Info("category add",
		slog.String("event", "category.add"),
		slog.String("status", logger.Status(err)),
		slog.Int64("user_id", userID),
		slog.String("category", logger.SanitizeLimit(name, 64)),
		slog.Bool("created", created),
	)
	return created, nil
}

// DeleteCategory removes a department by name. Items keep their
// department text and disappear from category views only.
func (s *Service) DeleteCategory(ctx context.Context, userID int64, name string) (bool, error) {
	deleted, err := s.categories.DeleteByName(ctx, userID, strings.TrimSpace(name))
	if err != nil {
		return false, err
	}
	logger.SVCCategories.Info("category delete",
		slog.String("event", "category.delete"),
		slog.Int64("user_id", userID),
		slog.String("category", logger.SanitizeLimit(name, 64)),
		slog.Bool("deleted", deleted),
	)
	return deleted, nil
}

// Items returns the user's whole list, honoring the bought filter.
func (s *Service) Items(ctx context.Context, userID int64, includeBought bool) ([]storage.Item, error) {
	return s.items.ListByUser(ctx, userID, includeBought)
}

// ItemsInDepartment returns the user's items within one department.
func (s *Service) ItemsInDepartment(ctx context.Context, userID int64, department string, includeBought bool) ([]storage.Item, error) {
	return s.items.ListByDepartment(ctx, userID, department, includeBought)
}

// AddItem creates an unbought item in the given department.
func (s *Service) AddItem(ctx context.Context, userID int64, name, department string) (int64, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, fmt.Errorf("shoplist: empty item name")
	}
	start := time.Now()
	id, err := s.items.Add(ctx, userID, name, department)
	logger.SVCItems.Info("item add",
		slog.String("event", "item.add"),
		slog.String("status", logger.Status(err)),
		slog.Int64("user_id", userID),
		slog.Int64("item_id", id),
		slog.String("category", logger.SanitizeLimit(department, 64)),
		slog.Duration("duration", logger.RoundMS(time.Since(start))),
	)
	return id, err
}

// ToggleItem flips an item's bought state and returns the new state.
func (s *Service) ToggleItem(ctx context.Context, itemID, userID int64) (bool, error) {
	bought, err := s.items.ToggleBought(ctx, itemID, userID)
	if err != nil {
		return false, err
	}
	logger.SVCItems.Debug("item toggle",
		slog.String("event", "item.toggle"),
		slog.Int64("user_id", userID),
		slog.Int64("item_id", itemID),
		slog.Bool("bought", bought),
	)
	return bought, nil
}

// DeleteItem removes an item from the list.
func (s *Service) DeleteItem(ctx context.Context, itemID, userID int64) (bool, error) {
	deleted, err := s.items.Delete(ctx, itemID, userID)
	if err != nil {
		return false, err
	}
	logger.SVCItems.Info("item delete",
		slog.String("event", "item.delete"),
		slog.Int64("user_id", userID),
		slog.Int64("item_id", itemID),
		slog.Bool("deleted", deleted),
	)
	return deleted, nil
}

// ClearBought removes all bought items and returns how many were deleted.
func (s *Service) ClearBought(ctx context.Context, userID int64) (int64, error) {
	n, err := s.items.ClearBought(ctx, userID)
	if err != nil {
		return 0, err
	}
	logger.SVCItems.Info("bought cleared",
		slog.String("event", "item.clear_bought"),
		slog.Int64("user_id", userID),
		slog.Int64("items", n),
	)
	return n, nil
}

// RenameItem changes an item's name.
func (s *Service) RenameItem(ctx context.Context, itemID, userID int64, name string) (bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return false, fmt.Errorf("shoplist: empty item name")
	}
	return s.items.Rename(ctx, itemID, userID, name)
}
