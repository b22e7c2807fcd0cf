package storage

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	coredatabase "github.com/ksokolovskiy/ks-buy-bot/core/database"
	"github.com/ksokolovskiy/ks-buy-bot/core/logger"
)

func TestMain(m *testing.M) {
	if err := logger.InitLogger(nil); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func openStore(t *testing.T) *sqlx.DB {
	t.Helper()

	cfg := coredatabase.Config{Path: filepath.Join(t.TempDir(), "test.db")}
	cfg.Normalize()

	db, err := coredatabase.Connect(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	applyMigrations(t, db)
	return db
}

func applyMigrations(t *testing.T, db *sqlx.DB) {
	t.Helper()

	matches, err := filepath.Glob(filepath.Join("..", "..", "migrations", "*.up.sql"))
	require.NoError(t, err)
	require.NotEmpty(t, matches)
	sort.Strings(matches)

	for _, path := range matches {
		sqlBytes, err := os.ReadFile(path)
		require.NoError(t, err)
		_, err = db.Exec(string(sqlBytes))
		require.NoError(t, err, "migration %s", path)
	}
}

func TestCategoryCreateAndDuplicate(t *testing.T) {
	db := openStore(t)
	s := NewCategoryStore(db)
	ctx := context.Background()

	created, err := s.Create(ctx, 1, "🍝 Бакалея")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = s.Create(ctx, 1, "🍝 Бакалея")
	require.NoError(t, err)
	assert.False(t, created, "same name for same user must be rejected")

	// Different user may reuse the name
	created, err = s.Create(ctx, 2, "🍝 Бакалея")
	require.NoError(t, err)
	assert.True(t, created)
}

func TestCategoryListWithItemsFiltersBought(t *testing.T) {
	db := openStore(t)
	cats := NewCategoryStore(db)
	items := NewItemStore(db)
	ctx := context.Background()

	require.NoError(t, cats.Ensure(ctx, 1, "Овощи"))
	require.NoError(t, cats.Ensure(ctx, 1, "Напитки"))
	require.NoError(t, cats.Ensure(ctx, 1, "Пустая"))

	_, err := items.Add(ctx, 1, "Морковь", "Овощи")
	require.NoError(t, err)
	waterID, err := items.Add(ctx, 1, "Вода", "Напитки")
	require.NoError(t, err)

	_, err = items.ToggleBought(ctx, waterID, 1)
	require.NoError(t, err)

	unbought, err := cats.ListWithItems(ctx, 1, false)
	require.NoError(t, err)
	require.Len(t, unbought, 1)
	assert.Equal(t, "Овощи", unbought[0].Name)

	all, err := cats.ListWithItems(ctx, 1, true)
	require.NoError(t, err)
	assert.Len(t, all, 2, "empty category never shows up")
}

func TestItemToggleDeleteAndOwnership(t *testing.T) {
	db := openStore(t)
	s := NewItemStore(db)
	ctx := context.Background()

	id, err := s.Add(ctx, 1, "Молоко", "Молочные")
	require.NoError(t, err)

	bought, err := s.ToggleBought(ctx, id, 1)
	require.NoError(t, err)
	assert.True(t, bought)

	bought, err = s.ToggleBought(ctx, id, 1)
	require.NoError(t, err)
	assert.False(t, bought)

	// Another user cannot touch the item
	_, err = s.ToggleBought(ctx, id, 2)
	assert.Error(t, err)

	deleted, err := s.Delete(ctx, id, 2)
	require.NoError(t, err)
	assert.False(t, deleted)

	deleted, err = s.Delete(ctx, id, 1)
	require.NoError(t, err)
	assert.True(t, deleted)
}

func TestItemClearBought(t *testing.T) {
	db := openStore(t)
	s := NewItemStore(db)
	ctx := context.Background()

	a, err := s.Add(ctx, 1, "Хлеб", "Бакалея")
	require.NoError(t, err)
	_, err = s.Add(ctx, 1, "Соль", "Бакалея")
	require.NoError(t, err)

	_, err = s.ToggleBought(ctx, a, 1)
	require.NoError(t, err)

	n, err := s.ClearBought(ctx, 1)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	left, err := s.ListByUser(ctx, 1, true)
	require.NoError(t, err)
	require.Len(t, left, 1)
	assert.Equal(t, "Соль", left[0].Name)
}

func TestItemListOrdering(t *testing.T) {
	db := openStore(t)
	s := NewItemStore(db)
	ctx := context.Background()

	for _, name := range []string{"banana", "Apple", "cherry"} {
		_, err := s.Add(ctx, 1, name, "Фрукты")
		require.NoError(t, err)
	}

	list, err := s.ListByUser(ctx, 1, false)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "Apple", list[0].Name)
	assert.Equal(t, "banana", list[1].Name)
	assert.Equal(t, "cherry", list[2].Name)
}

func TestRecordPutGetDelete(t *testing.T) {
	db := openStore(t)
	s := NewRecordStore(db)
	ctx := context.Background()

	_, ok, err := s.Get(ctx, "view:1")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Put(ctx, "view:1", `{"show_bought":true}`))

	payload, ok, err := s.Get(ctx, "view:1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `{"show_bought":true}`, payload)

	// Put replaces
	require.NoError(t, s.Put(ctx, "view:1", `{"show_bought":false}`))
	payload, _, err = s.Get(ctx, "view:1")
	require.NoError(t, err)
	assert.Equal(t, `{"show_bought":false}`, payload)

	require.NoError(t, s.Delete(ctx, "view:1"))
	_, ok, err = s.Get(ctx, "view:1")
	require.NoError(t, err)
	assert.False(t, ok)

	// Deleting twice is fine
	require.NoError(t, s.Delete(ctx, "view:1"))
}
