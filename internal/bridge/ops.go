package bridge

import (
	"go.klb.dev/hostbridge/internal/arg"
	"go.klb.dev/hostbridge/internal/errcode"
	"go.klb.dev/hostbridge/internal/platform"
	"go.klb.dev/hostbridge/internal/version"
)

// systemBeep plays the alert sound for a platform-defined sound class.
func (b *Bridge) systemBeep(args arg.Vector) (arg.Value, error) {
	code, ok := arg.AsInteger(args[0])
	if !ok {
		return nil, errcode.New(errcode.TypeMismatch, "type")
	}
	if err := b.p.PlayAlert(code); err != nil {
		return nil, err
	}
	return arg.Int(errcode.OK), nil
}

// playSystemSound plays a registry alias or a .wav from the system media
// directory. It does not wait for playback and reports success even when the
// OS finds nothing to play.
func (b *Bridge) playSystemSound(args arg.Vector) (arg.Value, error) {
	name, ok := arg.AsString(args[0])
	if !ok {
		return nil, errcode.New(errcode.TypeMismatch, "name")
	}
	// Separators are refused on every platform, including those that never
	// resolve names.
	if _, err := b.resolver.Check(name); err != nil {
		return nil, err
	}

	switch b.p.NamedSound() {
	case platform.NamedResolve:
		t, err := b.resolver.Resolve(name)
		if err != nil {
			return nil, err
		}
		if err := b.p.PlayNamed(t); err != nil {
			return nil, err
		}
	case platform.NamedAlert:
		if err := b.p.PlayAlert(0); err != nil {
			return nil, err
		}
	default:
		return nil, errcode.New(errcode.NotImplemented, "play named sound")
	}
	return arg.Int(errcode.OK), nil
}

// copyTextToClipboard replaces the system clipboard text.
func (b *Bridge) copyTextToClipboard(args arg.Vector) (arg.Value, error) {
	text, ok := arg.AsString(args[0])
	if !ok {
		return nil, errcode.New(errcode.TypeMismatch, "text")
	}
	if !b.p.CanWriteClipboard() {
		return nil, errcode.New(errcode.NotImplemented, "clipboard write")
	}
	if err := b.p.WriteClipboardText(b.conv, text); err != nil {
		return nil, err
	}
	return arg.Int(errcode.OK), nil
}

// getVersion returns the four-part version string.
func (b *Bridge) getVersion(arg.Vector) (arg.Value, error) {
	v, err := version.Current()
	if err != nil {
		return nil, errcode.Wrap(errcode.Internal, "version", err)
	}
	return arg.String(v.String()), nil
}
