// Package bridge is the platform-agnostic dispatch layer between the host's
// calling convention and the OS adapter.
//
// Every call follows the same contract: arity and argument kinds are checked
// before anything else runs, the return slot is written on every path, and
// every failure comes back as an errcode.Code rather than a panic.
package bridge

import (
	"fmt"
	"log/slog"
	"time"

	"go.klb.dev/hostbridge/internal/arg"
	"go.klb.dev/hostbridge/internal/errcode"
	"go.klb.dev/hostbridge/internal/platform"
	"go.klb.dev/hostbridge/internal/sound"
	"go.klb.dev/hostbridge/internal/wide"
)

// SelfTest makes any call whose string argument equals Sentinel return Code.
// It exercises the host's error-catching path and is meant for debug builds
// only.
type SelfTest struct {
	Sentinel string
	Code     errcode.Code
}

// Options configures a Bridge.
type Options struct {
	Platform platform.Platform
	// Conv converts host strings; nil means UTF-8.
	Conv *wide.Converter
	// SystemDir overrides the platform's system directory for sound files.
	SystemDir string
	// SelfTest is nil unless debugging.
	SelfTest *SelfTest
}

// Bridge dispatches host calls. It holds no mutable state after New.
type Bridge struct {
	p        platform.Platform
	conv     *wide.Converter
	resolver *sound.Resolver
	selfTest *SelfTest
}

// New returns a Bridge over opts.Platform.
func New(opts Options) *Bridge {
	conv := opts.Conv
	if conv == nil {
		conv = wide.UTF8()
	}
	sysDir := opts.Platform.SystemDir
	if opts.SystemDir != "" {
		dir := opts.SystemDir
		sysDir = func() (string, error) { return dir, nil }
	}
	st := opts.SelfTest
	if st != nil && st.Sentinel == "" {
		st = nil
	}
	return &Bridge{
		p:        opts.Platform,
		conv:     conv,
		resolver: &sound.Resolver{SystemDir: sysDir, Conv: conv},
		selfTest: st,
	}
}

// Platform returns the OS adapter in use.
func (b *Bridge) Platform() platform.Platform { return b.p }

// Resolver returns the sound resolver the bridge plays through.
func (b *Bridge) Resolver() *sound.Resolver { return b.resolver }

// Call runs the operation name with already-typed arguments.
func (b *Bridge) Call(name string, args arg.Vector, ret *arg.Slot) errcode.Code {
	op, ok := Lookup(name)
	if !ok {
		ret.Set(arg.Undefined{})
		slog.Warn("unknown operation", "op", name)
		return errcode.NotImplemented
	}
	return b.invoke(op, args, ret)
}

// CallCells runs the operation name with raw host cells. The arity check
// comes before decoding so a short or long argument list is reported as such
// even when a cell is malformed.
func (b *Bridge) CallCells(name string, cells []arg.Cell, ret *arg.Slot) errcode.Code {
	op, ok := Lookup(name)
	if !ok {
		ret.Set(arg.Undefined{})
		slog.Warn("unknown operation", "op", name)
		return errcode.NotImplemented
	}
	if len(cells) != len(op.Params) {
		ret.Set(arg.Undefined{})
		logCall(op.Name, nil, errcode.BadArgumentList, 0)
		return errcode.BadArgumentList
	}
	args, err := arg.DecodeAll(cells)
	if err != nil {
		ret.Set(arg.Undefined{})
		code := errcode.Of(err)
		logCall(op.Name, nil, code, 0)
		return code
	}
	return b.invoke(op, args, ret)
}

func (b *Bridge) invoke(op *Operation, args arg.Vector, ret *arg.Slot) errcode.Code {
	start := time.Now()
	code := b.run(op, args, ret)
	logCall(op.Name, args, code, time.Since(start))
	return code
}

func (b *Bridge) run(op *Operation, args arg.Vector, ret *arg.Slot) (code errcode.Code) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("operation panicked", "op", op.Name, "panic", fmt.Sprint(r))
			code = errcode.Internal
			failSlot(op, ret, code)
		}
	}()

	if err := args.Check(op.Params); err != nil {
		ret.Set(arg.Undefined{})
		return errcode.Of(err)
	}

	var (
		v   arg.Value
		err error
	)
	if c, hit := b.selfTestHit(args); hit {
		err = errcode.New(c, "self-test")
	} else {
		v, err = op.run(b, args)
	}

	if err != nil {
		code = errcode.Of(err)
		failSlot(op, ret, code)
		return code
	}
	ret.Set(v)
	return errcode.OK
}

// failSlot writes the slot for a failed body: Int-returning operations carry
// the code in the slot too.
func failSlot(op *Operation, ret *arg.Slot, code errcode.Code) {
	if op.Returns == arg.KindInt {
		ret.Set(arg.Int(code))
	} else {
		ret.Set(arg.Undefined{})
	}
}

func (b *Bridge) selfTestHit(args arg.Vector) (errcode.Code, bool) {
	if b.selfTest == nil {
		return errcode.OK, false
	}
	for _, a := range args {
		if s, ok := arg.AsString(a); ok && s == b.selfTest.Sentinel {
			return b.selfTest.Code, true
		}
	}
	return errcode.OK, false
}
