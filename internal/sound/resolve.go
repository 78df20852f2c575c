// Package sound decides how a bare sound name is handed to the OS: as a
// registry alias ("SystemAsterisk") or as a .wav file in the system media
// directory.
//
// Names never carry a path. Any slash or backslash is rejected before
// anything else happens, so a caller cannot point the player at an arbitrary
// file.
package sound

import (
	"errors"
	"fmt"
	"strings"

	"go.klb.dev/hostbridge/internal/errcode"
	"go.klb.dev/hostbridge/internal/wide"
)

// MaxPath is the Win32 MAX_PATH limit in UTF-16 code units, terminator
// included.
const MaxPath = 260

// MediaSubdir is appended to the system directory to reach the sound files.
const MediaSubdir = "Media"

// Mode says how the OS should interpret Target.Wide.
type Mode int

const (
	ModeAlias Mode = iota
	ModeFile
)

func (m Mode) String() string {
	if m == ModeFile {
		return "file"
	}
	return "alias"
}

// Target is a resolved sound name ready for the platform player.
type Target struct {
	Mode Mode
	Name string   // the caller's name, decoded
	Path string   // full path in file mode, the alias otherwise
	Wide []uint16 // NUL-terminated form of Path
}

// Resolver turns names into Targets.
type Resolver struct {
	// SystemDir returns the OS directory that holds the Media folder,
	// e.g. C:\Windows.
	SystemDir func() (string, error)
	Conv      *wide.Converter
}

var errSeparator = errors.New("path separators are not allowed")

// Validate rejects names that must never reach the OS.
func Validate(name string) error {
	if name == "" {
		return errcode.Wrap(errcode.BadArgument, "sound name", errors.New("empty"))
	}
	if strings.ContainsAny(name, `/\`) {
		return errcode.Wrap(errcode.BadArgument, "sound name", errSeparator)
	}
	return nil
}

// Classify reports ModeFile when name contains ".wav" in any letter case,
// ModeAlias otherwise. It does not validate.
func Classify(name string) Mode {
	if containsFold(name, ".wav") {
		return ModeFile
	}
	return ModeAlias
}

// containsFold is an ASCII case-insensitive substring test.
func containsFold(s, sub string) bool {
	for i := 0; i+len(sub) <= len(s); i++ {
		if strings.EqualFold(s[i:i+len(sub)], sub) {
			return true
		}
	}
	return false
}

func (r *Resolver) converter() *wide.Converter {
	if r.Conv == nil {
		return wide.UTF8()
	}
	return r.Conv
}

// Check decodes the host-encoded name and validates the decoded text. An
// empty name is refused before decoding.
func (r *Resolver) Check(name string) (string, error) {
	if name == "" {
		return "", Validate(name)
	}
	text, err := r.converter().Decode(name)
	if err != nil {
		return "", err
	}
	if err := Validate(text); err != nil {
		return "", err
	}
	return text, nil
}

// Resolve decodes and validates name, then classifies and converts it.
func (r *Resolver) Resolve(name string) (Target, error) {
	text, err := r.Check(name)
	if err != nil {
		return Target{}, err
	}
	w, err := wide.UTF16(text)
	if err != nil {
		return Target{}, err
	}

	t := Target{Mode: Classify(text), Name: text, Path: text, Wide: w}
	if t.Mode == ModeAlias {
		return t, nil
	}

	if r.SystemDir == nil {
		return Target{}, errcode.New(errcode.NotImplemented, "system directory")
	}
	dir, err := r.SystemDir()
	if err != nil {
		var coded *errcode.Error
		if errors.As(err, &coded) {
			return Target{}, err
		}
		return Target{}, errcode.Wrap(errcode.Internal, "system directory", err)
	}
	p, err := Join(wide.FromUTF8(dir), wide.FromUTF8(MediaSubdir))
	if err != nil {
		return Target{}, err
	}
	p, err = Join(p, w)
	if err != nil {
		return Target{}, err
	}
	t.Wide = p
	t.Path = wide.String(p)
	return t, nil
}

// Join appends elem to base with a single backslash between them. Both are
// NUL-terminated wide strings; so is the result. Results that would not fit in
// MaxPath are refused.
func Join(base, elem []uint16) ([]uint16, error) {
	b := base[:wide.Len(base)]
	e := elem[:wide.Len(elem)]
	for len(b) > 0 && b[len(b)-1] == '\\' {
		b = b[:len(b)-1]
	}
	for len(e) > 0 && e[0] == '\\' {
		e = e[1:]
	}

	n := len(b) + len(e) + 1 // terminator
	if len(b) > 0 && len(e) > 0 {
		n++
	}
	if n > MaxPath {
		return nil, errcode.Wrap(errcode.Conversion, "path join",
			fmt.Errorf("%d code units exceeds MAX_PATH", n))
	}

	out := make([]uint16, 0, n)
	out = append(out, b...)
	if len(b) > 0 && len(e) > 0 {
		out = append(out, '\\')
	}
	out = append(out, e...)
	return append(out, 0), nil
}
