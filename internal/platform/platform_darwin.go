//go:build darwin

package platform

// #cgo LDFLAGS: -framework AudioToolbox
// #include <AudioToolbox/AudioToolbox.h>
//
// static void hostbridge_user_alert() {
//     AudioServicesPlaySystemSound(kSystemSoundID_UserPreferredAlert);
// }
import "C"

import (
	"log/slog"

	"go.klb.dev/hostbridge/internal/sound"
	"go.klb.dev/hostbridge/internal/wide"
)

type darwinPlatform struct{}

// New returns the macOS platform adapter.
func New() Platform { return darwinPlatform{} }

func (darwinPlatform) Name() string { return "macOS AudioServices" }

func (darwinPlatform) PlayAlert(code int64) error {
	slog.Debug("alert code has no meaning on macOS", "type", code)
	C.hostbridge_user_alert()
	return nil
}

func (darwinPlatform) NamedSound() NamedSound { return NamedAlert }

func (darwinPlatform) SystemDir() (string, error) { return "", notImplemented("system directory") }

func (darwinPlatform) PlayNamed(sound.Target) error { return notImplemented("play named sound") }

func (darwinPlatform) CanWriteClipboard() bool { return false }

func (darwinPlatform) WriteClipboardText(*wide.Converter, string) error {
	return notImplemented("clipboard write")
}
