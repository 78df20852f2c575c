// Package wide converts host strings to the OS-native wide encoding
// (NUL-terminated UTF-16LE code units) and back.
//
// The host hands strings over in its own text encoding, UTF-8 unless
// configured otherwise. Any encoding known to the WHATWG index
// (windows-1252, shift_jis, ...) can be named.
package wide

import (
	"fmt"
	"strings"
	"unicode/utf16"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"go.klb.dev/hostbridge/internal/errcode"
)

// DefaultEncoding is the host encoding assumed when none is configured.
const DefaultEncoding = "utf-8"

// Converter turns host-encoded strings into wide strings.
type Converter struct {
	name string
	dec  transform.Transformer // host encoding -> UTF-8
}

// NewConverter returns a Converter for the named host encoding. An empty name
// selects DefaultEncoding.
func NewConverter(name string) (*Converter, error) {
	if name == "" {
		name = DefaultEncoding
	}
	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, fmt.Errorf("host encoding %q: %w", name, err)
	}
	canonical, _ := htmlindex.Name(enc)
	c := &Converter{name: canonical}
	if canonical == "utf-8" {
		// Reject malformed input instead of silently substituting U+FFFD.
		c.dec = encoding.UTF8Validator
	} else {
		c.dec = enc.NewDecoder()
	}
	return c, nil
}

// UTF8 is the converter for the default host encoding.
func UTF8() *Converter {
	return &Converter{name: "utf-8", dec: encoding.UTF8Validator}
}

// Name returns the canonical name of the host encoding.
func (c *Converter) Name() string { return c.name }

// ToWide converts s to NUL-terminated UTF-16. Host strings are C strings, so
// conversion stops at an embedded NUL. A conversion that yields nothing, not
// even the terminator, is reported as a Conversion error.
func (c *Converter) ToWide(s string) ([]uint16, error) {
	u8, err := c.Decode(s)
	if err != nil {
		return nil, err
	}
	return UTF16(u8)
}

// Decode converts host-encoded s to UTF-8, stopping at an embedded NUL.
// Checks on the characters of a host string must run on this result: in
// multi-byte encodings such as Shift_JIS a trail byte can equal an ASCII
// character.
func (c *Converter) Decode(s string) (string, error) {
	if i := strings.IndexByte(s, 0); i >= 0 {
		s = s[:i]
	}
	u8, _, err := transform.String(c.dec, s)
	if err != nil {
		return "", errcode.Wrap(errcode.Conversion, c.name, err)
	}
	return u8, nil
}

// UTF16 converts already-decoded UTF-8 text to NUL-terminated UTF-16.
func UTF16(u8 string) ([]uint16, error) {
	w, err := encodeUTF16(u8)
	if err != nil {
		return nil, errcode.Wrap(errcode.Conversion, "utf-16", err)
	}
	if len(w) == 0 {
		return nil, errcode.New(errcode.Conversion, "utf-16")
	}
	return w, nil
}

var utf16le = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)

func encodeUTF16(s string) ([]uint16, error) {
	b, _, err := transform.String(utf16le.NewEncoder(), s)
	if err != nil {
		return nil, err
	}
	w := make([]uint16, len(b)/2+1)
	for i := 0; i+1 < len(b); i += 2 {
		w[i/2] = uint16(b[i]) | uint16(b[i+1])<<8
	}
	return w, nil
}

// FromUTF8 converts an already-UTF-8 Go string (for example a path returned by
// the OS) to NUL-terminated UTF-16.
func FromUTF8(s string) []uint16 {
	if i := strings.IndexByte(s, 0); i >= 0 {
		s = s[:i]
	}
	return append(utf16.Encode([]rune(s)), 0)
}

// String converts wide text back to a Go string, stopping at the first NUL.
func String(w []uint16) string {
	for i, c := range w {
		if c == 0 {
			w = w[:i]
			break
		}
	}
	return string(utf16.Decode(w))
}

// Len returns the number of code units before the terminator.
func Len(w []uint16) int {
	for i, c := range w {
		if c == 0 {
			return i
		}
	}
	return len(w)
}
