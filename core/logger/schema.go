package logger

import "strings"

const (
	LevelDebug = "DEBUG"
	LevelInfo  = "INFO"
	LevelWarn  = "WARN"
	LevelError = "ERROR"
)

func normalizeLevel(level string) string {
	switch strings.ToLower(level) {
	case "":
		return LevelInfo
	case "debug":
		return LevelDebug
	case "info":
		return LevelInfo
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return strings.ToUpper(level)
	}
}

// normalizeStatus lower-cases a status value and reports whether it belongs
// to the closed set emitted by this codebase. Unknown values pass through
// unchanged so ad-hoc statuses are visible rather than silently dropped.
func normalizeStatus(status string) (string, bool) {
	status = strings.ToLower(strings.TrimSpace(status))
	switch status {
	case "ok", "fail", "skip", "retry", "rate_limited", "cancelled":
		return status, true
	default:
		return status, false
	}
}

// normalizeOutcome is stricter than normalizeStatus: values outside the
// closed set are removed from the record entirely.
func normalizeOutcome(outcome string) (string, bool) {
	outcome = strings.ToLower(strings.TrimSpace(outcome))
	switch outcome {
	case "ok", "fail", "cancelled", "rate_limited":
		return outcome, true
	default:
		return "", false
	}
}

// defaultKeyOrder pins the stable prefix of every log line: correlation
// fields first, then the counters and identifiers of the shopping-list
// domain, then error details. Keys not listed here sort alphabetically
// after the prefix.
var defaultKeyOrder = []string{
	"ts",
	"level",
	"component",
	"event",
	"status",
	"rid",
	"ts_unix_nano",
	"update_id",
	"user_id",
	"chat_id",
	"chat_type",
	"handler",
	"operation",
	"cb_key",
	"outcome",
	"duration_ms",
	"messages",
	"kb",
	"count",
	"items",
	"categories",
	"item_id",
	"category",
	"payload",
	"username",
	"lang",
	"mode",
	"listen",
	"public_url",
	"db_path",
	"err",
	"err_code",
	"cause",
	"retryable",
	"attempts",
	"backoff_ms",
}
