package router

import (
	"time"

	"github.com/ksokolovskiy/ks-buy-bot/core/logger"
	tg "github.com/ksokolovskiy/ks-buy-bot/core/telegram"
	"log/slog"

	tele "gopkg.in/telebot.v4"
)

// CommandRoutes prepares command handlers with per-handler summaries.
// Access control is applied globally; commands marked Public are expected
// to be listed in the allowlist exemptions.
func CommandRoutes(reg *tg.Registry) []tg.Route {
	if reg == nil {
		return nil
	}

	routes := make([]tg.Route, 0, len(reg.Commands()))
	for cmd, def := range reg.Commands() {
		name := normalizeHandlerName(cmd)
		handler := def.Handler
		wrapped := func(c tele.Context) error {
			start := time.Now()
			return handleWithSummary(c, name, start, func() error {
				return handler(c)
			})
		}
		routes = append(routes, tg.Route{
			Endpoint: cmd,
			Handler:  wrapped,
		})
	}

	logger.TWire.Info("tg.wire",
		slog.String("event", "complete"),
		slog.Int("commands", len(reg.Commands())),
		slog.Int("callbacks", len(reg.ListCallbacks())),
	)

	return routes
}
