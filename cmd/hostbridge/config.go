package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"go.klb.dev/hostbridge/internal/config"
	"go.klb.dev/hostbridge/internal/errcode"
	"go.klb.dev/hostbridge/internal/logging"
	"go.klb.dev/hostbridge/internal/wide"
)

// bindViper wires a command's flags into a viper instance with the standard
// config file search order and HOSTBRIDGE_* env var prefix.
//
// Precedence (lowest → highest): defaults → config file → HOSTBRIDGE_* env vars → flags
func bindViper(cmd *cobra.Command, v *viper.Viper) error {
	configFlag, _ := cmd.Flags().GetString("config")
	if err := config.Read(v, configFlag); err != nil {
		return err
	}
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("binding flags: %w", err)
	}
	return nil
}

// preRun binds flags and configures logging before a command runs.
func preRun(v *viper.Viper) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		if err := bindViper(cmd, v); err != nil {
			return err
		}
		return setupLogging(v)
	}
}

// addLoggingFlags adds the standard logging flags to a command.
func addLoggingFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("no-background", false, "run interactively: tinter logs + debug level")
	cmd.Flags().String("log-format", "auto", "log format: auto|text|json")
	cmd.Flags().String("log-level", "", "log level: debug|info|warn|error (default: debug on a terminal, warn otherwise)")
	cmd.Flags().String("log-file", "", "append logs to this file instead of stderr")
}

// addConfigFlag adds the --config flag to a command.
func addConfigFlag(cmd *cobra.Command) {
	cmd.Flags().String("config", "", "path to config file (overrides auto-discovery)")
}

// addBridgeFlags adds the flags that shape how the bridge is built.
func addBridgeFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String("host-encoding", wide.DefaultEncoding, "encoding of strings passed by the host")
	f.String("system-dir", "", "directory holding the Media folder (default: the OS system directory)")
	f.Bool("debug", false, "enable the self-test sentinel")
	f.String("selftest-sentinel", "", "string argument that makes any operation fail (needs --debug)")
	f.Int32("selftest-code", int32(errcode.Internal), "code returned when the sentinel is seen")
}

// addCommonFlags adds config, logging and bridge flags.
func addCommonFlags(cmd *cobra.Command) {
	addConfigFlag(cmd)
	addLoggingFlags(cmd)
	addBridgeFlags(cmd)
}

// setupLogging reads logging flags from viper and configures slog.
func setupLogging(v *viper.Viper) error {
	interactive := v.GetBool("no-background") || logging.IsTTY(os.Stderr)
	format, level := resolveLogging(interactive, v.GetString("log-format"), v.GetString("log-level"))
	if path := v.GetString("log-file"); path != "" {
		// The process exits right after the command, which closes the file.
		if _, err := logging.SetupFile(path, format, level); err != nil {
			return err
		}
		slog.Debug("logging to file", "path", path)
		return nil
	}
	logging.Setup(format, level)
	return nil
}
