package bridge

import (
	"regexp"
	"testing"

	"github.com/google/go-cmp/cmp"

	"go.klb.dev/hostbridge/internal/arg"
	"go.klb.dev/hostbridge/internal/errcode"
	"go.klb.dev/hostbridge/internal/platform"
	"go.klb.dev/hostbridge/internal/sound"
	"go.klb.dev/hostbridge/internal/version"
	"go.klb.dev/hostbridge/internal/wide"
)

type fakePlatform struct {
	named     platform.NamedSound
	clipboard bool
	clipErr   error
	panicBeep bool

	alerts []int64
	played []sound.Target
	copied []string
}

func (f *fakePlatform) Name() string { return "fake" }

func (f *fakePlatform) PlayAlert(code int64) error {
	if f.panicBeep {
		panic("speaker on fire")
	}
	f.alerts = append(f.alerts, code)
	return nil
}

func (f *fakePlatform) NamedSound() platform.NamedSound { return f.named }

func (f *fakePlatform) SystemDir() (string, error) { return `C:\Windows`, nil }

func (f *fakePlatform) PlayNamed(t sound.Target) error {
	f.played = append(f.played, t)
	return nil
}

func (f *fakePlatform) CanWriteClipboard() bool { return f.clipboard }

func (f *fakePlatform) WriteClipboardText(_ *wide.Converter, text string) error {
	if f.clipErr != nil {
		return f.clipErr
	}
	f.copied = append(f.copied, text)
	return nil
}

func (f *fakePlatform) calls() int { return len(f.alerts) + len(f.played) + len(f.copied) }

func windowsLike() *fakePlatform {
	return &fakePlatform{named: platform.NamedResolve, clipboard: true}
}

func call(b *Bridge, name string, args ...arg.Value) (errcode.Code, arg.Value) {
	var ret arg.Slot
	code := b.Call(name, arg.Vector(args), &ret)
	return code, ret.Value()
}

func TestFunctions(t *testing.T) {
	want := "systemBeep_d,playSystemSound_s,copyTextToClipboard_s,getVersion"
	if got := Functions(); got != want {
		t.Errorf("Functions() = %q, want %q", got, want)
	}
}

func TestOperationsIsACopy(t *testing.T) {
	ops := Operations()
	ops[0].Name = "hijacked"
	if _, ok := Lookup("systemBeep"); !ok {
		t.Fatal("registry mutated through Operations()")
	}
}

func TestValidationRejectsWithoutSideEffects(t *testing.T) {
	tests := []struct {
		name string
		op   string
		args []arg.Value
		want errcode.Code
	}{
		{"beep no args", "systemBeep", nil, errcode.BadArgumentList},
		{"beep two args", "systemBeep", []arg.Value{arg.Int(1), arg.Int(2)}, errcode.BadArgumentList},
		{"beep float", "systemBeep", []arg.Value{arg.Float(16)}, errcode.TypeMismatch},
		{"beep string", "systemBeep", []arg.Value{arg.String("16")}, errcode.TypeMismatch},
		{"sound int", "playSystemSound", []arg.Value{arg.Int(1)}, errcode.TypeMismatch},
		{"sound undefined", "playSystemSound", []arg.Value{arg.Undefined{}}, errcode.TypeMismatch},
		{"copy bool", "copyTextToClipboard", []arg.Value{arg.Bool(true)}, errcode.TypeMismatch},
		{"copy no args", "copyTextToClipboard", nil, errcode.BadArgumentList},
		{"version with arg", "getVersion", []arg.Value{arg.Int(1)}, errcode.BadArgumentList},
		{"unknown op", "formatDisk", nil, errcode.NotImplemented},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := windowsLike()
			code, ret := call(New(Options{Platform: p}), tt.op, tt.args...)
			if code != tt.want {
				t.Errorf("code = %v, want %v", code, tt.want)
			}
			if _, ok := ret.(arg.Undefined); !ok {
				t.Errorf("slot = %#v, want Undefined", ret)
			}
			if p.calls() != 0 {
				t.Errorf("platform called %d times", p.calls())
			}
		})
	}
}

func TestSystemBeep(t *testing.T) {
	for _, platformKind := range []platform.NamedSound{platform.NamedResolve, platform.NamedAlert, platform.NamedUnsupported} {
		p := &fakePlatform{named: platformKind}
		b := New(Options{Platform: p})
		values := []arg.Value{arg.Int(0), arg.Int(16), arg.Int(0x30), arg.Int(-1), arg.Uint(0xFFFFFFFF)}
		for _, v := range values {
			code, ret := call(b, "systemBeep", v)
			if code != errcode.OK || ret != arg.Int(0) {
				t.Errorf("%v: systemBeep(%#v) = %v, %#v", platformKind, v, code, ret)
			}
		}
		if diff := cmp.Diff([]int64{0, 16, 0x30, -1, 0xFFFFFFFF}, p.alerts); diff != "" {
			t.Errorf("codes not passed through verbatim (-want +got):\n%s", diff)
		}
	}
}

func TestPlaySystemSoundScenarios(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		want     errcode.Code
		wantMode sound.Mode
		wantPath string
	}{
		{"alias", "SystemAsterisk", errcode.OK, sound.ModeAlias, "SystemAsterisk"},
		{"file", "notify.WAV", errcode.OK, sound.ModeFile, `C:\Windows\Media\notify.WAV`},
		{"full path", `C:\Windows\Media\notify.wav`, errcode.BadArgument, 0, ""},
		{"forward slash", "sounds/notify.wav", errcode.BadArgument, 0, ""},
		{"empty", "", errcode.BadArgument, 0, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := windowsLike()
			code, ret := call(New(Options{Platform: p}), "playSystemSound", arg.String(tt.in))
			if code != tt.want {
				t.Fatalf("code = %v, want %v", code, tt.want)
			}
			if ret != arg.Int(tt.want) {
				t.Errorf("slot = %#v, want Int(%d)", ret, tt.want)
			}
			if tt.want != errcode.OK {
				if p.calls() != 0 {
					t.Errorf("rejected name reached the OS")
				}
				return
			}
			if len(p.played) != 1 {
				t.Fatalf("played %d targets", len(p.played))
			}
			got := p.played[0]
			if got.Mode != tt.wantMode || got.Path != tt.wantPath || wide.String(got.Wide) != tt.wantPath {
				t.Errorf("target = %+v", got)
			}
		})
	}
}

func TestPlaySystemSoundDecodesHostEncoding(t *testing.T) {
	conv, err := wide.NewConverter("shift_jis")
	if err != nil {
		t.Fatal(err)
	}
	// ソ is 0x83 0x5C in Shift_JIS; the 0x5C is not a separator.
	for _, p := range []*fakePlatform{windowsLike(), {named: platform.NamedAlert}} {
		code, ret := call(New(Options{Platform: p, Conv: conv}), "playSystemSound", arg.String("\x83\x5c.wav"))
		if code != errcode.OK || ret != arg.Int(0) {
			t.Errorf("%v: code = %v, slot = %#v", p.named, code, ret)
		}
	}

	p := windowsLike()
	call(New(Options{Platform: p, Conv: conv}), "playSystemSound", arg.String("\x83\x5c.wav"))
	if len(p.played) != 1 || p.played[0].Path != `C:\Windows\Media\ソ.wav` {
		t.Errorf("played %+v", p.played)
	}
}

func TestPlaySystemSoundSystemDirOverride(t *testing.T) {
	p := windowsLike()
	b := New(Options{Platform: p, SystemDir: `D:\Win`})
	if code, _ := call(b, "playSystemSound", arg.String("chord.wav")); code != errcode.OK {
		t.Fatalf("code = %v", code)
	}
	if got := p.played[0].Path; got != `D:\Win\Media\chord.wav` {
		t.Errorf("Path = %q", got)
	}
}

func TestPlaySystemSoundPlatformBranches(t *testing.T) {
	alert := &fakePlatform{named: platform.NamedAlert}
	code, ret := call(New(Options{Platform: alert}), "playSystemSound", arg.String("notify.wav"))
	if code != errcode.OK || ret != arg.Int(0) {
		t.Errorf("alert fallback = %v, %#v", code, ret)
	}
	if len(alert.alerts) != 1 || len(alert.played) != 0 {
		t.Errorf("alert fallback played %v / %v", alert.alerts, alert.played)
	}

	none := &fakePlatform{named: platform.NamedUnsupported}
	code, ret = call(New(Options{Platform: none}), "playSystemSound", arg.String("SystemHand"))
	if code != errcode.NotImplemented || ret != arg.Int(errcode.NotImplemented) {
		t.Errorf("unsupported = %v, %#v", code, ret)
	}
	if none.calls() != 0 {
		t.Error("unsupported platform was called")
	}
}

func TestCopyTextToClipboard(t *testing.T) {
	p := windowsLike()
	b := New(Options{Platform: p})
	for _, s := range []string{"first", "second"} {
		code, ret := call(b, "copyTextToClipboard", arg.String(s))
		if code != errcode.OK || ret != arg.Int(0) {
			t.Fatalf("copy(%q) = %v, %#v", s, code, ret)
		}
	}
	if diff := cmp.Diff([]string{"first", "second"}, p.copied); diff != "" {
		t.Errorf("copied (-want +got):\n%s", diff)
	}
}

func TestCopyTextToClipboardFailures(t *testing.T) {
	busy := windowsLike()
	busy.clipErr = errcode.New(errcode.ClipboardBusy, "open")
	code, ret := call(New(Options{Platform: busy}), "copyTextToClipboard", arg.String("x"))
	if code != errcode.ClipboardBusy || ret != arg.Int(errcode.ClipboardBusy) {
		t.Errorf("busy = %v, %#v", code, ret)
	}

	none := &fakePlatform{}
	code, ret = call(New(Options{Platform: none}), "copyTextToClipboard", arg.String("x"))
	if code != errcode.NotImplemented || ret != arg.Int(errcode.NotImplemented) {
		t.Errorf("unsupported = %v, %#v", code, ret)
	}
	if none.calls() != 0 {
		t.Error("unsupported platform was called")
	}
}

var versionShape = regexp.MustCompile(`^\d+\.\d+\.\d+\.\d+$`)

func TestGetVersion(t *testing.T) {
	code, ret := call(New(Options{Platform: windowsLike()}), "getVersion")
	if code != errcode.OK {
		t.Fatalf("code = %v", code)
	}
	s, ok := arg.AsString(ret)
	if !ok || s != "1.1.1.0" || !versionShape.MatchString(s) {
		t.Errorf("slot = %#v", ret)
	}
}

func TestGetVersionBadBuild(t *testing.T) {
	prev := version.Components
	version.Components = "1.1"
	t.Cleanup(func() { version.Components = prev })

	code, ret := call(New(Options{Platform: windowsLike()}), "getVersion")
	if code != errcode.Internal {
		t.Errorf("code = %v", code)
	}
	if _, ok := ret.(arg.Undefined); !ok {
		t.Errorf("slot = %#v, want Undefined", ret)
	}
}

func TestSelfTest(t *testing.T) {
	p := windowsLike()
	b := New(Options{Platform: p, SelfTest: &SelfTest{Sentinel: "__selftest__", Code: errcode.ClipboardSetFailed}})

	code, ret := call(b, "copyTextToClipboard", arg.String("__selftest__"))
	if code != errcode.ClipboardSetFailed || ret != arg.Int(errcode.ClipboardSetFailed) {
		t.Errorf("self-test = %v, %#v", code, ret)
	}
	if p.calls() != 0 {
		t.Error("self-test reached the OS")
	}

	if code, _ := call(b, "copyTextToClipboard", arg.String("ordinary")); code != errcode.OK {
		t.Errorf("ordinary text = %v", code)
	}

	off := New(Options{Platform: windowsLike()})
	if code, _ := call(off, "copyTextToClipboard", arg.String("__selftest__")); code != errcode.OK {
		t.Errorf("hook active without SelfTest: %v", code)
	}
}

func TestPanicBecomesInternal(t *testing.T) {
	p := windowsLike()
	p.panicBeep = true
	code, ret := call(New(Options{Platform: p}), "systemBeep", arg.Int(0))
	if code != errcode.Internal {
		t.Errorf("code = %v", code)
	}
	if ret != arg.Int(errcode.Internal) {
		t.Errorf("slot = %#v, want Int(%d)", ret, errcode.Internal)
	}
}

func TestCallCells(t *testing.T) {
	name := "SystemAsterisk"
	tests := []struct {
		name  string
		op    string
		cells []arg.Cell
		want  errcode.Code
	}{
		{"ok", "playSystemSound", []arg.Cell{{Tag: arg.TagString, Str: &name}}, errcode.OK},
		{"null string", "playSystemSound", []arg.Cell{{Tag: arg.TagString}}, errcode.BadArgument},
		{"arity before decode", "playSystemSound", []arg.Cell{{Tag: arg.TagString}, {Tag: arg.TagString}}, errcode.BadArgumentList},
		{"object for string", "copyTextToClipboard", []arg.Cell{{Tag: 6}}, errcode.TypeMismatch},
		{"unsigned beep", "systemBeep", []arg.Cell{{Tag: arg.TagUInteger, Int: 0x40}}, errcode.OK},
		{"unknown", "nope", nil, errcode.NotImplemented},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := windowsLike()
			var ret arg.Slot
			if got := New(Options{Platform: p}).CallCells(tt.op, tt.cells, &ret); got != tt.want {
				t.Errorf("CallCells() = %v, want %v", got, tt.want)
			}
			if tt.want != errcode.OK {
				if _, ok := ret.Value().(arg.Undefined); !ok {
					t.Errorf("slot = %#v, want Undefined", ret.Value())
				}
			}
		})
	}
}

func TestPreview(t *testing.T) {
	long := make([]rune, 200)
	for i := range long {
		long[i] = 'é'
	}
	got := preview(string(long))
	if n := len([]rune(got)); n != previewRunes+1 {
		t.Errorf("preview has %d runes", n)
	}
	if preview("short") != "short" {
		t.Error("short strings must pass unchanged")
	}
}
