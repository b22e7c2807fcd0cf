package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"log/slog"
)

type logFormat string

const (
	formatJSON logFormat = "json"
	formatKV   logFormat = "kv"

	timeFormatMillis = "2006-01-02T15:04:05.000Z07:00"
)

type handlerConfig struct {
	level    slog.Leveler
	writer   *asyncWriter
	format   logFormat
	keyOrder []string
}

// structuredHandler renders slog records as flat single-line events, either
// key=value or JSON, with a pinned key order shared by both formats.
type structuredHandler struct {
	cfg    handlerConfig
	rank   map[string]int
	attrs  []slog.Attr
	groups []string
}

func newStructuredHandler(cfg handlerConfig) *structuredHandler {
	if cfg.level == nil {
		cfg.level = slog.LevelInfo
	}
	if cfg.keyOrder == nil {
		cfg.keyOrder = append([]string(nil), defaultKeyOrder...)
	}
	rank := make(map[string]int, len(cfg.keyOrder))
	for i, key := range cfg.keyOrder {
		rank[key] = i
	}
	return &structuredHandler{cfg: cfg, rank: rank}
}

func (h *structuredHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.cfg.level.Level()
}

// Handle flattens the record into an eventLine and writes one line.
func (h *structuredHandler) Handle(ctx context.Context, r slog.Record) error {
	if h.cfg.writer == nil {
		return fmt.Errorf("logger: writer not initialized")
	}

	line := newEventLine()
	ts := r.Time.UTC()
	line.set("ts", ts.Truncate(time.Millisecond).Format(timeFormatMillis))
	line.set("level", normalizeLevel(r.Level.String()))
	if h.cfg.format == formatJSON {
		line.set("ts_unix_nano", ts.UnixNano())
	}

	for _, a := range h.attrs {
		h.flatten(line, a)
	}
	r.Attrs(func(a slog.Attr) bool {
		h.flatten(line, a)
		return true
	})

	h.mergeContext(ctx, line)

	if line.stringValue("event") == "" {
		event := r.Message
		if event == "" {
			event = "unknown"
		}
		line.set("event", event)
	}
	if line.stringValue("component") == "" {
		line.set("component", "app")
	}

	line.normalizeEnums()
	line.dropEmpty()
	line.sortKeys(h.rank)

	var out []byte
	var err error
	if h.cfg.format == formatJSON {
		out, err = line.renderJSON()
	} else {
		out = line.renderKV()
	}
	if err != nil {
		return err
	}
	out = append(out, '\n')
	return h.cfg.writer.Write(out)
}

func (h *structuredHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = append(append([]slog.Attr(nil), h.attrs...), attrs...)
	return &clone
}

func (h *structuredHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	clone.groups = append(append([]string(nil), h.groups...), name)
	return &clone
}

// flatten expands groups into dot-joined keys and coerces values into the
// small set of types the renderers understand.
func (h *structuredHandler) flatten(line *eventLine, attr slog.Attr) {
	prefix := strings.Join(h.groups, ".")
	var walk func(prefix string, a slog.Attr)
	walk = func(prefix string, a slog.Attr) {
		key := a.Key
		if prefix != "" && key != "" {
			key = prefix + "." + key
		} else if key == "" {
			key = prefix
		}
		if a.Value.Kind() == slog.KindGroup {
			for _, child := range a.Value.Group() {
				walk(key, child)
			}
			return
		}
		if k, v, ok := coerceValue(key, a.Value); ok {
			line.set(k, v)
		}
	}
	walk(prefix, attr)
}

// mergeContext fills in correlation fields from ctx without overriding
// values the call site set explicitly.
func (h *structuredHandler) mergeContext(ctx context.Context, line *eventLine) {
	if ctx == nil {
		return
	}
	if rid := RIDFrom(ctx); rid != "" {
		line.setDefault("rid", rid)
	}
	if uid := UserIDFrom(ctx); uid != 0 {
		line.setDefault("user_id", uid)
	}
	if updateID := UpdateIDFrom(ctx); updateID != 0 {
		line.setDefault("update_id", int64(updateID))
	}
	if cid := ChatIDFrom(ctx); cid != 0 {
		line.setDefault("chat_id", cid)
	}
	if handler := HandlerFrom(ctx); handler != "" {
		line.setDefault("handler", handler)
	}
}

// durationKey rewrites a duration-valued key so the unit is explicit.
func durationKey(key string) string {
	switch {
	case key == "duration":
		return "duration_ms"
	case strings.HasSuffix(key, "_duration"):
		return strings.TrimSuffix(key, "_duration") + "_duration_ms"
	case !strings.HasSuffix(key, "_ms"):
		return key + "_ms"
	}
	return key
}

func coerceValue(key string, val slog.Value) (string, any, bool) {
	if key == "" {
		return "", nil, false
	}
	switch val.Kind() {
	case slog.KindString:
		return key, strings.TrimSpace(val.String()), true
	case slog.KindBool:
		return key, val.Bool(), true
	case slog.KindInt64:
		return key, val.Int64(), true
	case slog.KindUint64:
		if u := val.Uint64(); u > math.MaxInt64 {
			return key, u, true
		}
		return key, int64(val.Uint64()), true
	case slog.KindFloat64:
		return key, val.Float64(), true
	case slog.KindDuration:
		return durationKey(key), RoundMS(val.Duration()).Milliseconds(), true
	case slog.KindTime:
		return key, val.Time().UTC().Format(time.RFC3339Nano), true
	case slog.KindAny:
		switch x := val.Any().(type) {
		case nil:
			return key, nil, false
		case error:
			return key, x.Error(), true
		case string:
			return key, strings.TrimSpace(x), true
		case time.Duration:
			return durationKey(key), RoundMS(x).Milliseconds(), true
		case fmt.Stringer:
			return key, x.String(), true
		default:
			return key, fmt.Sprint(x), true
		}
	default:
		return key, val.Any(), true
	}
}

// eventLine is an insertion-ordered field set; set on an existing key
// overwrites in place so last-write-wins without duplicates.
type eventLine struct {
	keys   []string
	values map[string]any
}

func newEventLine() *eventLine {
	return &eventLine{values: make(map[string]any, 16)}
}

func (l *eventLine) set(key string, val any) {
	if _, ok := l.values[key]; !ok {
		l.keys = append(l.keys, key)
	}
	l.values[key] = val
}

func (l *eventLine) setDefault(key string, val any) {
	if _, ok := l.values[key]; ok {
		return
	}
	l.set(key, val)
}

func (l *eventLine) delete(key string) {
	if _, ok := l.values[key]; !ok {
		return
	}
	delete(l.values, key)
	for i, k := range l.keys {
		if k == key {
			l.keys = append(l.keys[:i], l.keys[i+1:]...)
			break
		}
	}
}

func (l *eventLine) stringValue(key string) string {
	switch v := l.values[key].(type) {
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

func (l *eventLine) normalizeEnums() {
	l.set("level", normalizeLevel(l.stringValue("level")))
	if s := l.stringValue("status"); s != "" {
		normalized, _ := normalizeStatus(s)
		l.set("status", normalized)
	}
	if o := l.stringValue("outcome"); o != "" {
		if normalized, valid := normalizeOutcome(o); valid {
			l.set("outcome", normalized)
		} else {
			l.delete("outcome")
		}
	}
}

func (l *eventLine) dropEmpty() {
	for _, key := range append([]string(nil), l.keys...) {
		switch v := l.values[key].(type) {
		case string:
			if v == "" {
				l.delete(key)
			}
		case fmt.Stringer:
			if v.String() == "" {
				l.delete(key)
			}
		case nil:
			l.delete(key)
		}
	}
}

// sortKeys orders known keys by their rank and everything else
// alphabetically after them.
func (l *eventLine) sortKeys(rank map[string]int) {
	sort.SliceStable(l.keys, func(i, j int) bool {
		ri, iKnown := rank[l.keys[i]]
		rj, jKnown := rank[l.keys[j]]
		switch {
		case iKnown && jKnown:
			return ri < rj
		case iKnown:
			return true
		case jKnown:
			return false
		default:
			return l.keys[i] < l.keys[j]
		}
	})
}

func (l *eventLine) renderJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range l.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(strconv.Quote(key))
		buf.WriteByte(':')
		data, err := json.Marshal(l.values[key])
		if err != nil {
			return nil, err
		}
		buf.Write(data)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (l *eventLine) renderKV() []byte {
	var buf bytes.Buffer
	for i, key := range l.keys {
		if i > 0 {
			buf.WriteByte(' ')
		}
		buf.WriteString(key)
		buf.WriteByte('=')
		buf.WriteString(kvValue(l.values[key]))
	}
	return buf.Bytes()
}

func kvValue(val any) string {
	var s string
	switch v := val.(type) {
	case string:
		s = v
	case bool:
		return strconv.FormatBool(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case int:
		return strconv.Itoa(v)
	default:
		s = fmt.Sprint(v)
	}
	if strings.IndexFunc(s, func(r rune) bool { return r <= 32 || r == '=' || r == '"' }) >= 0 {
		return strconv.Quote(s)
	}
	return s
}
