package telegram

import (
	"strings"
	"time"

	coreconfig "github.com/ksokolovskiy/ks-buy-bot/core/config"
	"github.com/ksokolovskiy/ks-buy-bot/core/telegram/middleware"

	tele "gopkg.in/telebot.v4"
)

// MiddlewareHooks lets the application customise responses of shared middleware.
type MiddlewareHooks struct {
	OnLimited      tele.HandlerFunc
	OnAccessDenied tele.HandlerFunc
}

// DefaultMiddlewares builds the shared middleware chain for the bot:
// recover, allowlist, rate limit, logger, metrics (outermost first).
func DefaultMiddlewares(cfg *coreconfig.Config, reg *Registry, hooks MiddlewareHooks) []Middleware {
	mws := []Middleware{
		{Name: "recover", Use: middleware.RecoverMiddleware},
	}

	if cfg != nil && len(cfg.Telegram.AllowedUsers) > 0 {
		var exempt []string
		if reg != nil {
			exempt = reg.PublicCommandTexts()
		}
		mws = append(mws, Middleware{
			Name: "allowlist",
			Use: middleware.AllowlistMiddleware(middleware.AllowlistOptions{
				AllowedIDs: cfg.Telegram.AllowedUsers,
				ExemptText: exempt,
				OnReject:   hooks.OnAccessDenied,
			}),
		})
	}

	if cfg != nil {
		interval := time.Duration(cfg.RateLimit.IntervalMS) * time.Millisecond
		if interval > 0 {
			ex := make(map[string]struct{}, len(cfg.RateLimit.ExcludeUpdates))
			for _, t := range cfg.RateLimit.ExcludeUpdates {
				ex[strings.ToLower(t)] = struct{}{}
			}
			opts := middleware.RateLimitOptions{
				Interval: interval,
				Exclude:  ex,
			}
			if hooks.OnLimited != nil {
				opts.OnLimited = hooks.OnLimited
			}
			mws = append(mws, Middleware{
				Name: "rate_limit",
				Use:  middleware.RateLimitMiddleware(opts),
			})
		}
	}

	mws = append(mws,
		Middleware{Name: "logger", Use: middleware.LoggerMiddleware},
		Middleware{Name: "metrics", Use: middleware.MessageMetricsMiddleware},
	)

	return mws
}
