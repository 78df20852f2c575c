package config

import (
	"os"
	"path/filepath"
	"testing"

	"go.klb.dev/hostbridge/internal/errcode"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "hostbridge.toml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	c, err := Load(writeConfig(t, ""))
	if err != nil {
		t.Fatal(err)
	}
	if c.LogFormat != "auto" || c.HostEncoding != "utf-8" || c.Debug {
		t.Errorf("defaults = %+v", c)
	}
	if c.SelfTestCode != errcode.Internal {
		t.Errorf("SelfTestCode = %v", c.SelfTestCode)
	}
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
log-level = "debug"
log-file = "/tmp/hostbridge.log"
host-encoding = "windows-1252"
debug = true
selftest-sentinel = "__selftest__"
selftest-code = 10001
`)
	c, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if c.LogLevel != "debug" || c.LogFile != "/tmp/hostbridge.log" || c.HostEncoding != "windows-1252" {
		t.Errorf("config = %+v", c)
	}
	if !c.Debug || c.SelfTestSentinel != "__selftest__" || c.SelfTestCode != errcode.ClipboardBusy {
		t.Errorf("self-test = %+v", c)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `host-encoding = "windows-1252"`)
	t.Setenv("HOSTBRIDGE_HOST_ENCODING", "shift_jis")
	t.Setenv("HOSTBRIDGE_SYSTEM_DIR", `D:\Sounds`)
	c, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if c.HostEncoding != "shift_jis" {
		t.Errorf("HostEncoding = %q", c.HostEncoding)
	}
	if c.SystemDir != `D:\Sounds` {
		t.Errorf("SystemDir = %q", c.SystemDir)
	}
}

func TestLoadRejectsZeroSelfTestCode(t *testing.T) {
	path := writeConfig(t, `
debug = true
selftest-sentinel = "boom"
selftest-code = 0
`)
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for zero self-test code")
	}
}

func TestLoadBadFile(t *testing.T) {
	if _, err := Load(writeConfig(t, "this is = = not toml")); err == nil {
		t.Fatal("expected parse error")
	}
}
