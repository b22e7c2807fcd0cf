package logger

import (
	"context"
	"strconv"
	"strings"
	"unicode"

	"log/slog"
)

type contextKey int

const (
	ctxMeta contextKey = iota
	ctxLogger
)

// updateMeta carries the correlation fields of one Telegram update. It is
// stored as a single immutable value; enrichment copies it.
type updateMeta struct {
	rid      string
	updateID int
	userID   int64
	chatID   int64
	handler  string
}

func metaFrom(ctx context.Context) updateMeta {
	if ctx == nil {
		return updateMeta{}
	}
	if m, ok := ctx.Value(ctxMeta).(updateMeta); ok {
		return m
	}
	return updateMeta{}
}

func withMeta(ctx context.Context, m updateMeta) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxMeta, m)
}

// WithLogger stores the provided slog.Logger in context for propagation across layers.
func WithLogger(ctx context.Context, log *slog.Logger) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	if log == nil {
		return ctx
	}
	return context.WithValue(ctx, ctxLogger, log)
}

// FromContext extracts slog.Logger from context or returns the global default.
func FromContext(ctx context.Context) *slog.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(ctxLogger).(*slog.Logger); ok {
			return l
		}
	}
	return L
}

// WithRID attaches the request correlation id to context.
func WithRID(ctx context.Context, rid string) context.Context {
	m := metaFrom(ctx)
	m.rid = rid
	return withMeta(ctx, m)
}

// RIDFrom returns the correlation id stored in context, if any.
func RIDFrom(ctx context.Context) string { return metaFrom(ctx).rid }

// WithUpdateMeta attaches the identifiers of the current update to context.
func WithUpdateMeta(ctx context.Context, updateID int, userID, chatID int64) context.Context {
	m := metaFrom(ctx)
	m.updateID = updateID
	m.userID = userID
	m.chatID = chatID
	return withMeta(ctx, m)
}

// WithHandler stores the handler name for downstream log lines.
func WithHandler(ctx context.Context, handler string) context.Context {
	if handler == "" {
		if ctx == nil {
			return context.Background()
		}
		return ctx
	}
	m := metaFrom(ctx)
	m.handler = handler
	return withMeta(ctx, m)
}

// HandlerFrom returns the handler name stored in context, if any.
func HandlerFrom(ctx context.Context) string { return metaFrom(ctx).handler }

// UserIDFrom returns the Telegram user id stored in context.
func UserIDFrom(ctx context.Context) int64 { return metaFrom(ctx).userID }

// ChatIDFrom returns the chat id stored in context.
func ChatIDFrom(ctx context.Context) int64 { return metaFrom(ctx).chatID }

// UpdateIDFrom returns the update id stored in context.
func UpdateIDFrom(ctx context.Context) int { return metaFrom(ctx).updateID }

// Sanitize strips control and format runes from s, keeping tab and newline,
// so user-supplied text cannot break log line framing.
func Sanitize(s string) string {
	clean := strings.Map(func(r rune) rune {
		switch {
		case r == '\n' || r == '\t':
			return r
		case r == 0x7F, unicode.IsControl(r), unicode.Is(unicode.Cf, r):
			return -1
		default:
			return r
		}
	}, s)
	return clean
}

// SanitizeLimit sanitizes s and truncates it to at most max runes.
func SanitizeLimit(s string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(Sanitize(s))
	if len(runes) > max {
		runes = runes[:max]
	}
	return string(runes)
}

// BuildRID derives the correlation id "updateID:chatID:userID" used to tie
// together every log line produced while handling one update.
func BuildRID(updateID int, chatID, userID int64) string {
	var b strings.Builder
	b.Grow(24)
	b.WriteString(strconv.Itoa(updateID))
	b.WriteByte(':')
	b.WriteString(strconv.FormatInt(chatID, 10))
	b.WriteByte(':')
	b.WriteString(strconv.FormatInt(userID, 10))
	return b.String()
}
