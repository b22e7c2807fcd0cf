package middleware

import (
	"sync"
	"time"

	"log/slog"

	tele "gopkg.in/telebot.v4"

	"github.com/ksokolovskiy/ks-buy-bot/core/logger"
)

// RateLimitOptions configures behaviour of the rate limit middleware.
type RateLimitOptions struct {
	Interval  time.Duration
	Exclude   map[string]struct{}
	OnLimited tele.HandlerFunc
}

func updateKind(upd tele.Update) string {
	switch {
	case upd.Callback != nil:
		return "callback"
	case upd.Message != nil:
		return "message"
	default:
		return "other"
	}
}

// RateLimitMiddleware enforces a minimum interval between updates from the
// same user. Excluded update kinds (typically callbacks, where button taps
// legitimately come fast) pass through untouched.
func RateLimitMiddleware(opts RateLimitOptions) tele.MiddlewareFunc {
	var (
		mu       sync.Mutex
		lastSeen = make(map[int64]time.Time)
	)

	limited := func(c tele.Context, userID int64) error {
		attrs := []slog.Attr{
			slog.String("event", "tg.rate_limit"),
			slog.Int64("user_id", userID),
		}
		if chat := c.Chat(); chat != nil {
			attrs = append(attrs, slog.Int64("chat_id", chat.ID))
		}
		logger.TG.LogAttrs(logger.Background(), slog.LevelWarn, "rate limit", attrs...)
		if opts.OnLimited != nil {
			_ = opts.OnLimited(c)
		}
		return nil
	}

	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			user := c.Sender()
			if user == nil || opts.Interval <= 0 {
				return next(c)
			}
			if _, skip := opts.Exclude[updateKind(c.Update())]; skip {
				return next(c)
			}

			now := time.Now()
			mu.Lock()
			last, seen := lastSeen[user.ID]
			tooSoon := seen && now.Sub(last) < opts.Interval
			if !tooSoon {
				lastSeen[user.ID] = now
			}
			mu.Unlock()

			if tooSoon {
				return limited(c, user.ID)
			}
			return next(c)
		}
	}
}
