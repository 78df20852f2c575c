// libhostbridge is the external object the scripting host loads. Build it
// with:
//
//	go build -buildmode=c-shared -o hostbridge.dll ./cmd/libhostbridge
//
// Configuration comes from the file named by HOSTBRIDGE_CONFIG (or the usual
// search path) and HOSTBRIDGE_* env vars; the host passes no settings.
package main

/*
#include <stdlib.h>
#include "taggeddata.h"
*/
import "C"

import (
	"io"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"
	"unsafe"

	"go.klb.dev/hostbridge/internal/arg"
	"go.klb.dev/hostbridge/internal/bridge"
	"go.klb.dev/hostbridge/internal/config"
	"go.klb.dev/hostbridge/internal/errcode"
	"go.klb.dev/hostbridge/internal/logging"
	"go.klb.dev/hostbridge/internal/platform"
	"go.klb.dev/hostbridge/internal/version"
	"go.klb.dev/hostbridge/internal/wide"
)

func main() {}

var (
	installed atomic.Pointer[bridge.Bridge]

	// functions is handed to the host once and never freed.
	functionsOnce sync.Once
	functions     *C.char

	logMu   sync.Mutex
	logFile io.Closer
)

// current returns the bridge installed by ESInitialize, or one built from
// defaults if the host calls in without initializing.
func current() *bridge.Bridge {
	if b := installed.Load(); b != nil {
		return b
	}
	b := bridge.New(bridge.Options{Platform: platform.New()})
	installed.CompareAndSwap(nil, b)
	return installed.Load()
}

// build loads the config, sets up logging and returns the bridge it
// describes. Config problems are logged and fall back to defaults so the
// library still loads.
func build() *bridge.Bridge {
	cfg, err := config.Load(os.Getenv("HOSTBRIDGE_CONFIG"))
	if err != nil {
		slog.Error("config load failed, using defaults", "err", err)
		cfg = &config.Config{HostEncoding: wide.DefaultEncoding}
	}
	setupLogging(cfg)

	conv, err := wide.NewConverter(cfg.HostEncoding)
	if err != nil {
		slog.Warn("unknown host encoding, using utf-8", "encoding", cfg.HostEncoding, "err", err)
		conv = wide.UTF8()
	}
	opts := bridge.Options{
		Platform:  platform.New(),
		Conv:      conv,
		SystemDir: cfg.SystemDir,
	}
	if cfg.Debug {
		opts.SelfTest = &bridge.SelfTest{Sentinel: cfg.SelfTestSentinel, Code: cfg.SelfTestCode}
	}
	b := bridge.New(opts)
	slog.Info("bridge ready",
		"platform", b.Platform().Name(),
		"encoding", conv.Name(),
		"named_sound", b.Platform().NamedSound().String(),
		"clipboard_write", b.Platform().CanWriteClipboard(),
	)
	return b
}

func setupLogging(cfg *config.Config) {
	format := logging.ParseFormat(cfg.LogFormat)
	level := logging.ParseLevel(cfg.LogLevel)

	logMu.Lock()
	defer logMu.Unlock()
	closeLogLocked()
	if cfg.LogFile == "" {
		logging.Setup(format, level)
		return
	}
	f, err := logging.SetupFile(cfg.LogFile, format, level)
	if err != nil {
		logging.Setup(format, level)
		slog.Error("log file unavailable, logging to stderr", "err", err)
		return
	}
	logFile = f
}

func closeLogLocked() {
	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}
}

//export ESInitialize
func ESInitialize(argv **C.TaggedData, argc C.long) *C.char {
	installed.Store(build())
	functionsOnce.Do(func() { functions = C.CString(bridge.Functions()) })
	slog.Debug("initialized", "functions", bridge.Functions())
	return functions
}

//export ESTerminate
func ESTerminate() {
	slog.Info("terminating")
	logMu.Lock()
	defer logMu.Unlock()
	if logFile != nil {
		// Later calls still log somewhere.
		logging.Setup(logging.FormatJSON, slog.LevelWarn)
		closeLogLocked()
	}
}

//export ESGetVersion
func ESGetVersion() C.long {
	t, err := version.Current()
	if err != nil {
		slog.Error("bad build version", "version", version.Components, "err", err)
		return 0
	}
	return C.long(t.Long())
}

//export ESFreeMem
func ESFreeMem(p unsafe.Pointer) {
	C.free(p)
}

//export systemBeep
func systemBeep(argv *C.TaggedData, argc C.long, retval *C.TaggedData) C.long {
	return dispatch("systemBeep", argv, argc, retval)
}

//export playSystemSound
func playSystemSound(argv *C.TaggedData, argc C.long, retval *C.TaggedData) C.long {
	return dispatch("playSystemSound", argv, argc, retval)
}

//export copyTextToClipboard
func copyTextToClipboard(argv *C.TaggedData, argc C.long, retval *C.TaggedData) C.long {
	return dispatch("copyTextToClipboard", argv, argc, retval)
}

//export getVersion
func getVersion(argv *C.TaggedData, argc C.long, retval *C.TaggedData) C.long {
	return dispatch("getVersion", argv, argc, retval)
}

// dispatch runs one host call end to end. The return cell is written on
// every path.
func dispatch(name string, argv *C.TaggedData, argc C.long, retval *C.TaggedData) C.long {
	cells, err := readCells(argv, argc)
	if err != nil {
		writeRet(retval, arg.Undefined{})
		slog.Warn("call rejected", "op", name, "err", err)
		return C.long(errcode.Of(err))
	}

	var slot arg.Slot
	code := current().CallCells(name, cells, &slot)
	if wcode := writeRet(retval, slot.Value()); wcode != errcode.OK {
		slog.Warn("return value not delivered", "op", name, "code", wcode)
		return C.long(wcode)
	}
	return C.long(code)
}
