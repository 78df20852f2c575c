package bridge

import (
	"context"
	"log/slog"
	"time"
	"unicode/utf8"

	"go.klb.dev/hostbridge/internal/arg"
	"go.klb.dev/hostbridge/internal/errcode"
)

const previewRunes = 120

// logCall logs a finished call at DEBUG, or WARN when it failed, and the
// arguments at DEBUG (string previews up to 120 runes).
func logCall(op string, args arg.Vector, code errcode.Code, elapsed time.Duration) {
	if code != errcode.OK {
		slog.Warn("call failed", "op", op, "code", int32(code), "error", code.String(), "elapsed", elapsed)
	} else {
		slog.Debug("call", "op", op, "elapsed", elapsed)
	}

	if !slog.Default().Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	for i, a := range args {
		switch v := a.(type) {
		case arg.String:
			slog.Debug("argument", "op", op, "index", i, "kind", v.Kind().String(), "preview", preview(string(v)))
		case nil:
			slog.Debug("argument", "op", op, "index", i, "kind", "nil")
		default:
			slog.Debug("argument", "op", op, "index", i, "kind", v.Kind().String(), "value", v)
		}
	}
}

func preview(s string) string {
	if utf8.RuneCountInString(s) <= previewRunes {
		return s
	}
	return string([]rune(s)[:previewRunes]) + "…"
}
