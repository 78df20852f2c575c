package wide

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"go.klb.dev/hostbridge/internal/errcode"
)

func TestToWide(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []uint16
	}{
		{"ascii", "Ding", []uint16{'D', 'i', 'n', 'g', 0}},
		{"empty keeps terminator", "", []uint16{0}},
		{"bmp", "é€", []uint16{0x00e9, 0x20ac, 0}},
		{"surrogate pair", "🔔", []uint16{0xd83d, 0xdd14, 0}},
		{"stops at NUL", "ab\x00cd", []uint16{'a', 'b', 0}},
	}
	c := UTF8()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.ToWide(tt.in)
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ToWide mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestToWideRejectsMalformedUTF8(t *testing.T) {
	_, err := UTF8().ToWide("bad\xffbyte")
	if errcode.Of(err) != errcode.Conversion {
		t.Fatalf("err = %v, want conversion error", err)
	}
}

func TestNewConverterLegacyEncoding(t *testing.T) {
	c, err := NewConverter("cp1252")
	if err != nil {
		t.Fatal(err)
	}
	if c.Name() != "windows-1252" {
		t.Errorf("Name() = %q", c.Name())
	}
	// 0x80 is the euro sign in windows-1252.
	got, err := c.ToWide("\x80 5")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]uint16{0x20ac, ' ', '5', 0}, got); diff != "" {
		t.Errorf("ToWide mismatch (-want +got):\n%s", diff)
	}
}

func TestNewConverterDefaultAndUnknown(t *testing.T) {
	c, err := NewConverter("")
	if err != nil {
		t.Fatal(err)
	}
	if c.Name() != DefaultEncoding {
		t.Errorf("Name() = %q", c.Name())
	}
	if _, err := NewConverter("klingon-8"); err == nil {
		t.Error("unknown encoding should fail")
	}
}

func TestStringAndLen(t *testing.T) {
	w := FromUTF8(`C:\Windows\Media`)
	if got := String(w); got != `C:\Windows\Media` {
		t.Errorf("String() = %q", got)
	}
	if Len(w) != 16 || len(w) != 17 {
		t.Errorf("Len() = %d, len = %d", Len(w), len(w))
	}
}
