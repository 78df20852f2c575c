// Package platform is the OS adapter behind the bridge operations. Build
// constraints select the implementation:
//
//	platform_windows.go: MessageBeep, PlaySoundW, Win32 clipboard hand-off
//	platform_darwin.go:  AudioServices user alert (cgo), no clipboard write
//	platform_other.go:   terminal bell, everything else not implemented
//
// The bridge never branches on GOOS; it asks the Platform what it can do.
package platform

import (
	"go.klb.dev/hostbridge/internal/errcode"
	"go.klb.dev/hostbridge/internal/sound"
	"go.klb.dev/hostbridge/internal/wide"
)

// NamedSound says how a platform handles a play-named-sound request.
type NamedSound int

const (
	// NamedUnsupported reports NotImplemented.
	NamedUnsupported NamedSound = iota
	// NamedAlert plays the fixed platform alert instead.
	NamedAlert
	// NamedResolve runs alias/filename resolution and plays the target.
	NamedResolve
)

func (n NamedSound) String() string {
	switch n {
	case NamedAlert:
		return "alert fallback"
	case NamedResolve:
		return "alias/file"
	default:
		return "not implemented"
	}
}

// Platform is implemented once per target OS.
type Platform interface {
	// Name returns a human-readable name for the platform adapter.
	Name() string

	// PlayAlert plays the system alert. code is passed to the OS verbatim
	// where the OS gives it meaning and ignored elsewhere.
	PlayAlert(code int64) error

	// NamedSound reports how PlayNamed requests are handled.
	NamedSound() NamedSound

	// SystemDir returns the directory holding the Media folder. Only
	// meaningful when NamedSound is NamedResolve.
	SystemDir() (string, error)

	// PlayNamed starts playback of a resolved target and returns at once.
	// A target the OS cannot find is not an error.
	PlayNamed(t sound.Target) error

	// CanWriteClipboard reports whether WriteClipboardText is implemented.
	CanWriteClipboard() bool

	// WriteClipboardText replaces the clipboard contents with text.
	WriteClipboardText(conv *wide.Converter, text string) error
}

func notImplemented(op string) error { return errcode.New(errcode.NotImplemented, op) }
