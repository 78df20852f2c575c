//go:build windows

package clip

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"
)

const (
	cfUnicodeText = 13
	gmemMoveable  = 0x0002
)

var (
	user32   = windows.NewLazySystemDLL("user32.dll")
	kernel32 = windows.NewLazySystemDLL("kernel32.dll")

	procOpenClipboard    = user32.NewProc("OpenClipboard")
	procCloseClipboard   = user32.NewProc("CloseClipboard")
	procEmptyClipboard   = user32.NewProc("EmptyClipboard")
	procSetClipboardData = user32.NewProc("SetClipboardData")

	procGlobalAlloc  = kernel32.NewProc("GlobalAlloc")
	procGlobalFree   = kernel32.NewProc("GlobalFree")
	procGlobalLock   = kernel32.NewProc("GlobalLock")
	procGlobalUnlock = kernel32.NewProc("GlobalUnlock")
)

type win32 struct{}

// Win32 returns the System backed by user32 and kernel32. Clipboard ownership
// is per thread: the caller must keep the goroutine locked to its OS thread
// for the whole of WriteText.
func Win32() System { return win32{} }

func (win32) Alloc(size int) (*Global, error) {
	h, _, err := procGlobalAlloc.Call(gmemMoveable, uintptr(size))
	if h == 0 {
		return nil, fmt.Errorf("GlobalAlloc(%d): %w", size, err)
	}
	return NewGlobal(h, size), nil
}

func (win32) Lock(g *Global) ([]uint16, error) {
	p, _, err := procGlobalLock.Call(g.Handle())
	if p == 0 {
		return nil, fmt.Errorf("GlobalLock: %w", err)
	}
	return unsafe.Slice((*uint16)(lockedPointer(p)), g.Size()/2), nil
}

// lockedPointer reads GlobalLock's address as a pointer. The block lives
// outside the Go heap and stays pinned until GlobalUnlock.
func lockedPointer(addr uintptr) unsafe.Pointer {
	return *(*unsafe.Pointer)(unsafe.Pointer(&addr))
}

func (win32) Unlock(g *Global) {
	_, _, _ = procGlobalUnlock.Call(g.Handle())
}

func (win32) Free(g *Global) {
	_, _, _ = procGlobalFree.Call(g.Handle())
}

func (win32) Open() error {
	r, _, err := procOpenClipboard.Call(0)
	if r == 0 {
		return fmt.Errorf("OpenClipboard: %w", err)
	}
	return nil
}

func (win32) Close() error {
	r, _, err := procCloseClipboard.Call()
	if r == 0 {
		return fmt.Errorf("CloseClipboard: %w", err)
	}
	return nil
}

func (win32) Empty() error {
	r, _, err := procEmptyClipboard.Call()
	if r == 0 {
		return fmt.Errorf("EmptyClipboard: %w", err)
	}
	return nil
}

func (win32) SetText(g *Global) error {
	r, _, err := procSetClipboardData.Call(cfUnicodeText, g.Handle())
	if r == 0 {
		return fmt.Errorf("SetClipboardData: %w", err)
	}
	return nil
}
