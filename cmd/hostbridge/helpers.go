package main

import (
	"fmt"

	"github.com/spf13/viper"

	"go.klb.dev/hostbridge/internal/arg"
	"go.klb.dev/hostbridge/internal/bridge"
	"go.klb.dev/hostbridge/internal/config"
	"go.klb.dev/hostbridge/internal/errcode"
	"go.klb.dev/hostbridge/internal/platform"
	"go.klb.dev/hostbridge/internal/wide"
)

// newBridge builds a bridge over the native platform from the resolved config.
func newBridge(v *viper.Viper) (*bridge.Bridge, *config.Config, error) {
	cfg, err := config.FromViper(v)
	if err != nil {
		return nil, nil, err
	}
	conv, err := wide.NewConverter(cfg.HostEncoding)
	if err != nil {
		return nil, nil, fmt.Errorf("host-encoding: %w", err)
	}
	opts := bridge.Options{
		Platform:  platform.New(),
		Conv:      conv,
		SystemDir: cfg.SystemDir,
	}
	if cfg.Debug {
		opts.SelfTest = &bridge.SelfTest{Sentinel: cfg.SelfTestSentinel, Code: cfg.SelfTestCode}
	}
	return bridge.New(opts), cfg, nil
}

// call dispatches name the way the host does. A nonzero code comes back as
// an *errcode.Error naming the operation.
func call(b *bridge.Bridge, name string, args ...arg.Value) (arg.Value, error) {
	var ret arg.Slot
	if code := b.Call(name, arg.Vector(args), &ret); code != errcode.OK {
		return ret.Value(), errcode.New(code, name)
	}
	return ret.Value(), nil
}
