package middleware

import (
	"sync"
	"time"

	"log/slog"

	tele "gopkg.in/telebot.v4"

	"github.com/ksokolovskiy/ks-buy-bot/core/logger"
	"github.com/ksokolovskiy/ks-buy-bot/core/telegram/callbacks"
	tghelpers "github.com/ksokolovskiy/ks-buy-bot/core/telegram/helpers"
)

const receiptTTL = 10 * time.Second

// receiptLog remembers recently logged update IDs so an update passing
// through more than one middleware branch produces a single receipt line.
type receiptLog struct {
	mu   sync.Mutex
	seen map[int]time.Time
}

var receipts = receiptLog{seen: make(map[int]time.Time)}

func (r *receiptLog) firstSighting(updateID int) bool {
	now := time.Now()
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, ts := range r.seen {
		if now.Sub(ts) > receiptTTL {
			delete(r.seen, id)
		}
	}
	if _, dup := r.seen[updateID]; dup {
		return false
	}
	r.seen[updateID] = now
	return true
}

// LoggerMiddleware derives the correlation id for the update, seeds the
// logging context consumed by services, and emits a sampled receipt line.
func LoggerMiddleware(next tele.HandlerFunc) tele.HandlerFunc {
	return func(c tele.Context) error {
		upd := c.Update()

		var chatID, userID int64
		if chat := c.Chat(); chat != nil {
			chatID = chat.ID
		}
		if user := c.Sender(); user != nil {
			userID = user.ID
		}

		rid := logger.BuildRID(upd.ID, chatID, userID)
		c.Set("rid", rid)
		c.Set("update_start", time.Now())

		ctx := logger.WithRID(logger.Background(), rid)
		ctx = logger.WithUpdateMeta(ctx, upd.ID, userID, chatID)
		ctx = logger.WithLogger(ctx, logger.Component("tg"))
		tghelpers.StoreContext(c, ctx)

		if logger.ShouldSampleDebug() && receipts.firstSighting(upd.ID) {
			logger.LogEvent(ctx, logger.Component("tg"), slog.LevelDebug,
				"update.received", receiptAttrs(c, rid)...)
		}

		return next(c)
	}
}

func receiptAttrs(c tele.Context, rid string) []slog.Attr {
	upd := c.Update()
	attrs := []slog.Attr{
		slog.String("status", "ok"),
		slog.String("rid", rid),
		slog.Int("update_id", upd.ID),
	}

	if chat := c.Chat(); chat != nil {
		attrs = append(attrs,
			slog.Int64("chat_id", chat.ID),
			slog.String("chat_type", string(chat.Type)),
		)
	}
	if user := c.Sender(); user != nil && user.ID != 0 {
		attrs = append(attrs, slog.Int64("user_id", user.ID))
		if user.Username != "" {
			attrs = append(attrs, slog.String("username", logger.SanitizeLimit(user.Username, 64)))
		}
		if user.LanguageCode != "" {
			attrs = append(attrs, slog.String("lang", user.LanguageCode))
		}
	}

	switch {
	case upd.Callback != nil:
		key, payload := callbacks.ParseCallbackData(upd.Callback)
		if key != "" {
			attrs = append(attrs, slog.String("cb_key", logger.SanitizeLimit(key, 128)))
		}
		if payload != "" {
			attrs = append(attrs, slog.String("payload", logger.SanitizeLimit(payload, 256)))
		}
	case upd.Message != nil:
		if t := c.Text(); t != "" {
			attrs = append(attrs, slog.String("payload", logger.SanitizeLimit(t, 256)))
		}
	}
	return attrs
}
