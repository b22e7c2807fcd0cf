package middleware

import (
	"runtime/debug"

	"log/slog"

	tele "gopkg.in/telebot.v4"

	"github.com/ksokolovskiy/ks-buy-bot/core/logger"
)

// RecoverMiddleware turns handler panics into an error log with a stack
// trace instead of taking the whole polling loop down. The update is
// dropped; the user simply gets no reply.
func RecoverMiddleware(next tele.HandlerFunc) tele.HandlerFunc {
	return func(c tele.Context) error {
		defer func() {
			r := recover()
			if r == nil {
				return
			}
			rid, _ := c.Get("rid").(string)
			logger.TG.Error("panic recovered",
				slog.String("event", "tg.panic"),
				slog.String("rid", rid),
				slog.Any("err", r),
				slog.String("stack", string(debug.Stack())),
			)
		}()
		return next(c)
	}
}
