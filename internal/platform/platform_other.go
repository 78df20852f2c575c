//go:build !windows && !darwin

package platform

import (
	"os"

	"github.com/mattn/go-isatty"

	"go.klb.dev/hostbridge/internal/sound"
	"go.klb.dev/hostbridge/internal/wide"
)

type otherPlatform struct {
	bell *os.File
}

// New returns the fallback adapter. The alert is a terminal bell on stderr
// when stderr is a terminal and silent otherwise.
func New() Platform { return otherPlatform{bell: os.Stderr} }

func (otherPlatform) Name() string { return "terminal bell (fallback)" }

func (p otherPlatform) PlayAlert(int64) error {
	if p.bell != nil && isatty.IsTerminal(p.bell.Fd()) {
		_, _ = p.bell.Write([]byte{'\a'})
	}
	return nil
}

func (otherPlatform) NamedSound() NamedSound { return NamedUnsupported }

func (otherPlatform) SystemDir() (string, error) { return "", notImplemented("system directory") }

func (otherPlatform) PlayNamed(sound.Target) error { return notImplemented("play named sound") }

func (otherPlatform) CanWriteClipboard() bool { return false }

func (otherPlatform) WriteClipboardText(*wide.Converter, string) error {
	return notImplemented("clipboard write")
}
