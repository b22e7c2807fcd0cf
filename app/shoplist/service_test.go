package shoplist

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

	"github.com/ksokolovskiy/ks-buy-bot/app/storage"
)

func TestMain(m *testing.M) {
	if err := logger.InitLogger(nil); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func newService(t *testing.T) (*Service, *sqlx.DB) {
	t.Helper()

	cfg := coredatabase.Config{Path: filepath.Join(t.TempDir(), "test.db")}
	cfg.Normalize()

	db, err := coredatabase.Connect(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	matches, err := filepath.Glob(filepath.Join("..", "..", "migrations", "*.up.sql"))
	require.NoError(t, err)
	require.NotEmpty(t, matches)
	sort.Strings(matches)
	for _, path := range matches {
		sqlBytes, err := os.ReadFile(path)
		require.NoError(t, err)
		_, err = db.Exec(string(sqlBytes))
		require.NoError(t, err)
	}

	svc := NewService(
		storage.NewCategoryStore(db),
		storage.NewItemStore(db),
		storage.NewRecordStore(db),
	)
	return svc, db
}

func TestEnsureCatalogIsIdempotent(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	require.NoError(t, svc.EnsureCatalog(ctx, 1))

	cats, err := svc.Categories(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, cats, len(DefaultCatalog))

	items, err := svc.Items(ctx, 1, true)
	require.NoError(t, err)
	firstCount := len(items)
	assert.Greater(t, firstCount, 0)

	// Second run must not duplicate anything
	require.NoError(t, svc.EnsureCatalog(ctx, 1))

	cats, err = svc.Categories(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, cats, len(DefaultCatalog))

	items, err = svc.Items(ctx, 1, true)
	require.NoError(t, err)
	assert.Len(t, items, firstCount)
}

func TestEnsureCatalogKeepsClearedList(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	require.NoError(t, svc.EnsureCatalog(ctx, 1))

	items, err := svc.Items(ctx, 1, true)
	require.NoError(t, err)
	for _, item := range items {
		_, err := svc.DeleteItem(ctx, item.ID, 1)
		require.NoError(t, err)
	}

	// A user who emptied the list deliberately does not get reseeded items,
	// only the category skeleton stays.
	id, err := svc.AddItem(ctx, 1, "Молоко", DefaultCatalog[0].Name)
	require.NoError(t, err)
	require.NotZero(t, id)

	require.NoError(t, svc.EnsureCatalog(ctx, 1))
	items, err = svc.Items(ctx, 1, true)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestCatalogSeederCoversAllowlistedUsers(t *testing.T) {
	svc, db := newService(t)
	ctx := context.Background()

	seeder := CatalogSeeder([]int64{10, 20})
	require.NoError(t, seeder.Seed(ctx, db))

	for _, userID := range []int64{10, 20} {
		cats, err := svc.Categories(ctx, userID)
		require.NoError(t, err)
		assert.Len(t, cats, len(DefaultCatalog))
	}
}

func TestViewStateRoundTrip(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	// Missing state degrades to the default view
	v := svc.ViewState(ctx, 1)
	assert.False(t, v.ShowBought)
	assert.False(t, v.EditMode)
	assert.Empty(t, v.LastRef)

	v.ShowBought = true
	v.LastRef = "all"
	require.NoError(t, svc.SaveViewState(ctx, 1, v))

	got := svc.ViewState(ctx, 1)
	assert.True(t, got.ShowBought)
	assert.False(t, got.EditMode)
	assert.Equal(t, "all", got.LastRef)

	// Other users are unaffected
	other := svc.ViewState(ctx, 2)
	assert.False(t, other.ShowBought)
}

func TestAddItemValidation(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	_, err := svc.AddItem(ctx, 1, "   ", "Бакалея")
	assert.Error(t, err)

	id, err := svc.AddItem(ctx, 1, "  Хлеб  ", "Бакалея")
	require.NoError(t, err)

	items, err := svc.Items(ctx, 1, true)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, id, items[0].ID)
	assert.Equal(t, "Хлеб", items[0].Name, "names are trimmed before insert")
}

func TestAddCategoryReportsDuplicates(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	created, err := svc.AddCategory(ctx, 1, "Сад и огород")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = svc.AddCategory(ctx, 1, "Сад и огород")
	require.NoError(t, err)
	assert.False(t, created)

	_, err = svc.AddCategory(ctx, 1, "  ")
	assert.Error(t, err)
}
