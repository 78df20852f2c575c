//go:build windows

package platform

import (
	"log/slog"
	"runtime"
	"unsafe"

	"golang.org/x/sys/windows"

	"go.klb.dev/hostbridge/internal/clip"
	"go.klb.dev/hostbridge/internal/errcode"
	"go.klb.dev/hostbridge/internal/sound"
	"go.klb.dev/hostbridge/internal/wide"
)

// PlaySound flags.
const (
	sndAsync     = 0x00000001
	sndNoDefault = 0x00000002
	sndAlias     = 0x00010000
	sndFilename  = 0x00020000
)

var (
	user32 = windows.NewLazySystemDLL("user32.dll")
	winmm  = windows.NewLazySystemDLL("winmm.dll")

	procMessageBeep = user32.NewProc("MessageBeep")
	procPlaySoundW  = winmm.NewProc("PlaySoundW")
)

type windowsPlatform struct{}

// New returns the Windows platform adapter.
func New() Platform { return windowsPlatform{} }

func (windowsPlatform) Name() string { return "Windows (user32/winmm)" }

func (windowsPlatform) PlayAlert(code int64) error {
	// MessageBeep takes a UINT; the host's value goes through bit for bit.
	if r, _, err := procMessageBeep.Call(uintptr(uint32(code))); r == 0 {
		slog.Debug("MessageBeep returned FALSE", "type", code, "err", err)
	}
	return nil
}

func (windowsPlatform) NamedSound() NamedSound { return NamedResolve }

func (windowsPlatform) SystemDir() (string, error) {
	return windows.KnownFolderPath(windows.FOLDERID_Windows, 0)
}

func (windowsPlatform) PlayNamed(t sound.Target) error {
	if len(t.Wide) == 0 {
		return errcode.New(errcode.Conversion, "PlaySoundW")
	}
	flags := uintptr(sndAsync | sndNoDefault)
	if t.Mode == sound.ModeFile {
		flags |= sndFilename
	} else {
		flags |= sndAlias
	}
	r, _, err := procPlaySoundW.Call(uintptr(unsafe.Pointer(&t.Wide[0])), 0, flags)
	runtime.KeepAlive(t.Wide)
	if r == 0 {
		// Unknown aliases and missing files land here; the call still succeeds.
		slog.Debug("PlaySoundW found nothing to play", "name", t.Name, "mode", t.Mode, "err", err)
	}
	return nil
}

func (windowsPlatform) CanWriteClipboard() bool { return true }

func (windowsPlatform) WriteClipboardText(conv *wide.Converter, text string) error {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	return clip.WriteText(clip.Win32(), conv, text)
}
