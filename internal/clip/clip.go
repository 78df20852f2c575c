// Package clip puts Unicode text on the system clipboard with an explicit
// hand-off of the shared memory block to the OS.
//
// The protocol is written against System, the handful of primitives the OS
// exposes, so the ownership rules are the same for every implementation:
//
//	win32_windows.go: user32/kernel32 through golang.org/x/sys/windows
//
// Ownership of a Global moves exactly once. Until Publish succeeds the caller
// owns it and must Free it; after Publish succeeds the OS owns it and the
// caller's handle is dead.
package clip

import (
	"fmt"
	"log/slog"

	"go.klb.dev/hostbridge/internal/errcode"
	"go.klb.dev/hostbridge/internal/wide"
)

// Global is a movable shared-memory block. The zero handle means the block
// has been released or handed to the OS.
type Global struct {
	h    uintptr
	size int // bytes
}

// NewGlobal wraps a raw handle. System implementations use it.
func NewGlobal(h uintptr, size int) *Global { return &Global{h: h, size: size} }

// Handle returns the raw handle, 0 once released or published.
func (g *Global) Handle() uintptr { return g.h }

// Size returns the block size in bytes.
func (g *Global) Size() int { return g.size }

// Live reports whether the caller still owns the block.
func (g *Global) Live() bool { return g != nil && g.h != 0 }

// invalidate drops the caller's handle after a release or a hand-off.
func (g *Global) invalidate() { g.h = 0 }

// System is the set of OS clipboard primitives the protocol needs.
type System interface {
	// Alloc returns a movable block of size bytes.
	Alloc(size int) (*Global, error)
	// Lock pins g and returns its contents as UTF-16 code units.
	Lock(g *Global) ([]uint16, error)
	Unlock(g *Global)
	// Free releases a block the caller still owns.
	Free(g *Global)

	// Open takes the process-wide clipboard lock for the calling thread.
	Open() error
	Close() error
	Empty() error
	// SetText offers g to the clipboard as Unicode text. On success the OS
	// owns g.
	SetText(g *Global) error
}

// Publish hands g to the clipboard. On success g is consumed: its handle is
// invalidated and nil is returned. On failure ownership did not move and g
// comes back for the caller to free.
func Publish(sys System, g *Global) (*Global, error) {
	if err := sys.SetText(g); err != nil {
		return g, err
	}
	g.invalidate()
	return nil, nil
}

// release frees g if the caller still owns it.
func release(sys System, g *Global) {
	if g.Live() {
		sys.Free(g)
		g.invalidate()
	}
}

// WriteText replaces the clipboard contents with text.
//
// The shared block is allocated and filled before the clipboard is opened,
// so a failure there leaves the clipboard as it was. The clipboard lock is
// released on every path once taken.
func WriteText(sys System, conv *wide.Converter, text string) error {
	if conv == nil {
		conv = wide.UTF8()
	}
	w, err := conv.ToWide(text)
	if err != nil {
		return err
	}

	g, err := sys.Alloc(len(w) * 2)
	if err != nil {
		return errcode.Wrap(errcode.NoMemory, "alloc", err)
	}
	defer func() { release(sys, g) }()

	dst, err := sys.Lock(g)
	if err != nil {
		return errcode.Wrap(errcode.ClipboardLockFailed, "lock", err)
	}
	if len(dst) < len(w) {
		sys.Unlock(g)
		return errcode.Wrap(errcode.Internal, "lock",
			fmt.Errorf("locked %d units, need %d", len(dst), len(w)))
	}
	copy(dst, w)
	sys.Unlock(g)

	if err := sys.Open(); err != nil {
		return errcode.Wrap(errcode.ClipboardBusy, "open", err)
	}
	defer func() {
		if cerr := sys.Close(); cerr != nil {
			slog.Warn("clipboard close failed", "err", cerr)
		}
	}()

	if err := sys.Empty(); err != nil {
		return errcode.Wrap(errcode.ClipboardSetFailed, "empty", err)
	}

	if g, err = Publish(sys, g); err != nil {
		return errcode.Wrap(errcode.ClipboardSetFailed, "set", err)
	}
	slog.Debug("clipboard updated", "units", len(w)-1)
	return nil
}
