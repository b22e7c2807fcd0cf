package app

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	tele "gopkg.in/telebot.v4"

	"github.com/ksokolovskiy/ks-buy-bot/core/bootstrap"
	coretelegram "github.com/ksokolovskiy/ks-buy-bot/core/telegram"
	tghelpers "github.com/ksokolovskiy/ks-buy-bot/core/telegram/helpers"
	"github.com/ksokolovskiy/ks-buy-bot/core/telegram/router"
	"github.com/ksokolovskiy/ks-buy-bot/core/telegram/state"

	"github.com/ksokolovskiy/ks-buy-bot/app/handlers"
	"github.com/ksokolovskiy/ks-buy-bot/app/shoplist"
	"github.com/ksokolovskiy/ks-buy-bot/app/storage"
)

// App owns the bot's wired components for the lifetime of the process.
type App struct {
	cfg      *Config
	db       *sqlx.DB
	registry *coretelegram.Registry
	fsm      state.Manager
	svc      *shoplist.Service
}

// Bootstrap initializes logging, opens the store, runs migrations, seeds
// the catalog for allowlisted users, and wires all handlers.
func Bootstrap(cfg *Config) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("app: nil config provided")
	}

	result, err := bootstrap.Run(bootstrap.Options{
		Config:   cfg.CoreConfig(),
		Database: cfg.Database,
		Seeders: []bootstrap.Seeder{
			shoplist.CatalogSeeder(cfg.Telegram.AllowedUsers),
		},
	})
	if err != nil {
		return nil, err
	}

	svc := shoplist.NewService(
		storage.NewCategoryStore(result.DB),
		storage.NewItemStore(result.DB),
		storage.NewRecordStore(result.DB),
	)

	fsm := state.NewMemoryManager()
	registry := coretelegram.NewRegistry()
	handlers.New(svc, fsm).Register(registry)

	return &App{
		cfg:      cfg,
		db:       result.DB,
		registry: registry,
		fsm:      fsm,
		svc:      svc,
	}, nil
}

// TelegramRunOptions assembles middleware and routes for the bot runtime.
func (a *App) TelegramRunOptions() (coretelegram.RunOptions, error) {
	hooks := coretelegram.MiddlewareHooks{
		OnAccessDenied: func(c tele.Context) error {
			return tghelpers.SendText(c, handlers.MsgAccessDenied)
		},
	}

	routes := router.CommandRoutes(a.registry)
	routes = append(routes,
		router.CallbackRoute(a.registry, router.CallbackOptions{}),
		router.TextRoute(a.fsm, a.registry, router.TextOptions{}),
	)

	return coretelegram.RunOptions{
		Config:      a.cfg.CoreConfig(),
		Registry:    a.registry,
		Middlewares: coretelegram.DefaultMiddlewares(a.cfg.CoreConfig(), a.registry, hooks),
		Routes:      routes,
		OnStop: func(ctx context.Context, rt coretelegram.Runtime) error {
			return a.db.Close()
		},
	}, nil
}
