// Package errcode is the bridge's error taxonomy: the closed set of signed
// integer codes handed back to the host, and an error type that carries one of
// them through ordinary Go error chains.
//
// Codes below 10000 belong to the host and keep the host's meaning so its
// built-in catch semantics work unmodified. Codes from 10000 up are private to
// the bridge. They are catchable by scripts, unlike the host's fatal errors.
package errcode

import (
	"errors"
	"fmt"
)

// Code is a status returned to the host. Zero means success.
type Code int32

// OK is the only success code.
const OK Code = 0

// Host-native codes. The numbering follows the host runtime's error table.
const (
	BadArgumentList Code = 19
	BadArgument     Code = 20
	Conversion      Code = 45
	TypeMismatch    Code = 47
)

// privateBase is the first bridge-private code.
const privateBase Code = 10000

// Bridge-private codes.
const (
	ClipboardBusy       Code = 10001 // OpenClipboard failed, usually held by another process
	ClipboardLockFailed Code = 10002 // GlobalLock failed
	ClipboardSetFailed  Code = 10003 // SetClipboardData refused the handle
	NoMemory            Code = 10028
	Internal            Code = 10033
	NotImplemented      Code = 10036
)

var names = map[Code]string{
	OK:                  "ok",
	BadArgumentList:     "bad argument list",
	BadArgument:         "bad argument",
	Conversion:          "conversion error",
	TypeMismatch:        "type mismatch",
	ClipboardBusy:       "clipboard busy",
	ClipboardLockFailed: "clipboard lock failed",
	ClipboardSetFailed:  "clipboard set failed",
	NoMemory:            "out of memory",
	Internal:            "internal error",
	NotImplemented:      "not implemented on this platform",
}

// String returns a short human-readable name for the code.
func (c Code) String() string {
	if n, ok := names[c]; ok {
		return n
	}
	return fmt.Sprintf("error %d", int32(c))
}

// Private reports whether c lies in the bridge-private range.
func (c Code) Private() bool { return c >= privateBase }

// Known reports whether c is part of the taxonomy.
func (c Code) Known() bool {
	_, ok := names[c]
	return ok
}

// Error carries a Code through an error chain.
type Error struct {
	Code Code
	Op   string // step that failed, e.g. "GlobalAlloc"; may be empty
	Err  error  // underlying cause; may be nil
}

func (e *Error) Error() string {
	msg := e.Code.String()
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches another *Error with the same code, so errors.Is(err,
// errcode.New(errcode.NoMemory, "")) works regardless of Op and cause.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

// New returns an *Error for code at step op.
func New(code Code, op string) error {
	return &Error{Code: code, Op: op}
}

// Wrap returns an *Error for code at step op caused by err.
func Wrap(code Code, op string, err error) error {
	return &Error{Code: code, Op: op, Err: err}
}

// Of extracts the code from err. A nil error is OK, an error without a code is
// Internal.
func Of(err error) Code {
	if err == nil {
		return OK
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return Internal
}
