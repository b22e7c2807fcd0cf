package telegram

import (
	"net"
	"strconv"
	"strings"
	"time"

	tele "gopkg.in/telebot.v4"
)

const (
	RunModeWebhook  = "webhook"
	RunModeLongpoll = "longpoll"

	defaultLongPollTimeout = 10 * time.Second
)

// WebhookOptions declares webhook listener settings.
type WebhookOptions struct {
	Listen string
	Port   int
	URL    string
}

// PollerOptions selects the update transport for the bot.
type PollerOptions struct {
	RunMode                string
	LongPollTimeoutSeconds int
	Webhook                WebhookOptions
}

// BuildPoller returns the telebot poller matching the configured run mode.
// Anything other than an explicit webhook mode falls back to long polling.
func BuildPoller(opts PollerOptions) tele.Poller {
	switch strings.ToLower(strings.TrimSpace(opts.RunMode)) {
	case RunModeWebhook:
		addr := net.JoinHostPort(opts.Webhook.Listen, strconv.Itoa(opts.Webhook.Port))
		return &tele.Webhook{
			Listen:   addr,
			Endpoint: &tele.WebhookEndpoint{PublicURL: opts.Webhook.URL},
		}
	default:
		timeout := time.Duration(opts.LongPollTimeoutSeconds) * time.Second
		if timeout <= 0 {
			timeout = defaultLongPollTimeout
		}
		return &tele.LongPoller{Timeout: timeout}
	}
}
