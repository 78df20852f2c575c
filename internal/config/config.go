// Package config loads bridge settings with viper.
//
// Precedence (lowest → highest): defaults → config file → HOSTBRIDGE_* env
// vars → flags bound by the caller.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"go.klb.dev/hostbridge/internal/errcode"
)

// EnvPrefix is prepended to every key when read from the environment,
// e.g. HOSTBRIDGE_LOG_LEVEL.
const EnvPrefix = "HOSTBRIDGE"

// Config holds the resolved settings.
type Config struct {
	LogFormat    string
	LogLevel     string
	LogFile      string
	HostEncoding string
	SystemDir    string

	// Debug enables the self-test hook: a string argument equal to
	// SelfTestSentinel makes any operation return SelfTestCode.
	Debug            bool
	SelfTestSentinel string
	SelfTestCode     errcode.Code
}

// SetDefaults registers every key so env lookups work without a config file.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("log-format", "auto")
	v.SetDefault("log-level", "")
	v.SetDefault("log-file", "")
	v.SetDefault("host-encoding", "utf-8")
	v.SetDefault("system-dir", "")
	v.SetDefault("debug", false)
	v.SetDefault("selftest-sentinel", "")
	v.SetDefault("selftest-code", int(errcode.Internal))
}

// Read locates and reads the config file into v and enables env lookups.
// path overrides the search; a missing file in the search path is not an
// error.
//
// Search order (first found wins):
//
//	/etc/hostbridge/hostbridge.toml
//	$HOME/.config/hostbridge/hostbridge.toml
func Read(v *viper.Viper, path string) error {
	SetDefaults(v)
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("hostbridge")
		v.SetConfigType("toml")
		v.AddConfigPath("/etc/hostbridge/")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "hostbridge"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("config: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return nil
}

// FromViper builds a Config from an already-populated viper instance.
func FromViper(v *viper.Viper) (*Config, error) {
	c := &Config{
		LogFormat:        v.GetString("log-format"),
		LogLevel:         v.GetString("log-level"),
		LogFile:          v.GetString("log-file"),
		HostEncoding:     v.GetString("host-encoding"),
		SystemDir:        v.GetString("system-dir"),
		Debug:            v.GetBool("debug"),
		SelfTestSentinel: v.GetString("selftest-sentinel"),
		SelfTestCode:     errcode.Code(v.GetInt32("selftest-code")),
	}
	if c.Debug && c.SelfTestSentinel != "" && c.SelfTestCode == errcode.OK {
		return nil, fmt.Errorf("config: selftest-code must be nonzero")
	}
	return c, nil
}

// Load reads the config file at path (or the search path) plus the
// environment and returns the result.
func Load(path string) (*Config, error) {
	v := viper.New()
	if err := Read(v, path); err != nil {
		return nil, err
	}
	return FromViper(v)
}
