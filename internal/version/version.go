// Package version holds the bridge's four-part version tuple.
package version

import (
	"fmt"
	"strings"

	goversion "github.com/hashicorp/go-version"
)

// Components is the version tuple as text. Override it at link time:
//
//	go build -ldflags "-X go.klb.dev/hostbridge/internal/version.Components=1.2.0.0"
var Components = "1.1.1.0"

// Tuple is (major, minor, patch, build).
type Tuple [4]int

// Parse reads a dot-separated four-part version such as "1.1.1.0".
func Parse(s string) (Tuple, error) {
	if n := strings.Count(s, ".") + 1; n != 4 {
		return Tuple{}, fmt.Errorf("version %q: want 4 segments, got %d", s, n)
	}
	v, err := goversion.NewVersion(s)
	if err != nil {
		return Tuple{}, fmt.Errorf("version %q: %w", s, err)
	}
	if v.Prerelease() != "" || v.Metadata() != "" {
		return Tuple{}, fmt.Errorf("version %q: prerelease and metadata are not allowed", s)
	}
	if strings.HasPrefix(s, "v") {
		return Tuple{}, fmt.Errorf("version %q: leading v is not allowed", s)
	}
	seg := v.Segments()
	t := Tuple{seg[0], seg[1], seg[2], seg[3]}
	// Long packs minor and patch into two decimal digits and build into three.
	if t[1] > 99 || t[2] > 99 || t[3] > 999 {
		return Tuple{}, fmt.Errorf("version %q: segment out of range", s)
	}
	return t, nil
}

// Current parses Components.
func Current() (Tuple, error) { return Parse(Components) }

// String returns "major.minor.patch.build".
func (t Tuple) String() string {
	return fmt.Sprintf("%d.%d.%d.%d", t[0], t[1], t[2], t[3])
}

// Long returns the integer form reported by the host's version call.
func (t Tuple) Long() int64 {
	return int64(t[0])*10000000 + int64(t[1])*100000 + int64(t[2])*1000 + int64(t[3])
}
