package middleware

import (
	"github.com/ksokolovskiy/ks-buy-bot/core/logger"
	"log/slog"

	tele "gopkg.in/telebot.v4"
)

// AllowlistOptions defines how the user allowlist check behaves.
type AllowlistOptions struct {
	// AllowedIDs is the closed set of Telegram user IDs the bot serves.
	AllowedIDs []int64
	// ExemptText lists exact message texts (e.g. "/test") that bypass the check.
	ExemptText []string
	// OnReject is invoked for denied users; nil means silent drop.
	OnReject tele.HandlerFunc
}

// AllowlistMiddleware ensures only the configured users reach downstream handlers.
func AllowlistMiddleware(opts AllowlistOptions) tele.MiddlewareFunc {
	allowed := make(map[int64]struct{}, len(opts.AllowedIDs))
	for _, id := range opts.AllowedIDs {
		allowed[id] = struct{}{}
	}
	exempt := make(map[string]struct{}, len(opts.ExemptText))
	for _, t := range opts.ExemptText {
		exempt[t] = struct{}{}
	}

	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			user := c.Sender()
			if user == nil {
				return nil
			}
			if _, ok := exempt[c.Text()]; ok {
				return next(c)
			}
			if _, ok := allowed[user.ID]; ok {
				return next(c)
			}

			logger.TG.Warn("access denied",
				slog.String("event", "tg.access_denied"),
				slog.Int64("user_id", user.ID),
				slog.String("username", logger.SanitizeLimit(user.Username, 64)),
			)
			if opts.OnReject != nil {
				return opts.OnReject(c)
			}
			return nil
		}
	}
}
