// Package logging builds the slog handler shared by the CLI and the shared
// library: colored tinter output for people at a terminal, JSON for files and
// pipes.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/pwntr/tinter"
)

// Format is the log-format setting.
type Format string

const (
	// FormatAuto picks text on a terminal and JSON elsewhere.
	FormatAuto Format = "auto"
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// ParseFormat accepts "text" (or its aliases "tint" and "human") and "json" in
// any case. Anything else means auto.
func ParseFormat(s string) Format {
	switch strings.ToLower(s) {
	case "text", "tint", "human":
		return FormatText
	case "json":
		return FormatJSON
	default:
		return FormatAuto
	}
}

// ParseLevel reads a slog level name such as "warn" or "debug+2". Unparsable
// input, the empty string included, yields Info.
func ParseLevel(s string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return l
}

// IsTTY is true only for an *os.File attached to a console or Cygwin pty.
func IsTTY(w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return false
}

// NewHandler picks the handler for w. Text output carries millisecond
// timestamps; JSON output uses slog defaults.
func NewHandler(w io.Writer, format Format, level slog.Level) slog.Handler {
	useText := format == FormatText
	if format == FormatAuto {
		useText = IsTTY(w)
	}
	if !useText {
		return slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	}
	return tinter.NewHandler(w, &tinter.Options{
		Level:      level,
		TimeFormat: "15:04:05.000",
	})
}

func install(w io.Writer, format Format, level slog.Level) {
	slog.SetDefault(slog.New(NewHandler(w, format, level)))
}

// Setup installs a stderr handler as the slog default.
func Setup(format Format, level slog.Level) { install(os.Stderr, format, level) }

// SetupFile installs a handler appending to path as the slog default. The
// caller closes the returned file once nothing logs to it any more.
func SetupFile(path string, format Format, level slog.Level) (io.Closer, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file %s: %w", path, err)
	}
	install(f, format, level)
	return f, nil
}
