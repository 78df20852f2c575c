// hostbridge: drive the scripting-host bridge operations from a shell.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"go.klb.dev/hostbridge/internal/logging"
	"go.klb.dev/hostbridge/internal/version"
)

func main() {
	root := &cobra.Command{
		Use:   "hostbridge",
		Short: "Exercise the scripting-host bridge from the command line",
		Long: `hostbridge calls the same operations the scripting host reaches through
libhostbridge: the alert beep, named system sounds, and clipboard text.

Every command dispatches through the bridge exactly as the host does, so a
nonzero bridge code makes the command exit 1 and print the code name.

Config file search order (first found wins):
  /etc/hostbridge/hostbridge.toml
  $HOME/.config/hostbridge/hostbridge.toml
  path supplied via --config

All flags can be set via HOSTBRIDGE_<FLAG> env vars or config-file keys.`,
		SilenceUsage: true,
	}

	root.AddCommand(
		newBeepCmd(),
		newSoundCmd(),
		newCopyCmd(),
		newPasteCmd(),
		newStatusCmd(),
		newVersionCmd(),
	)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			t, err := version.Current()
			if err != nil {
				return err
			}
			fmt.Printf("hostbridge %s (%d)\n", t, t.Long())
			return nil
		},
	}
}

// resolveLogging picks the log format and level after flags are parsed. An
// unset level means debug on a terminal and warn otherwise.
func resolveLogging(interactive bool, formatStr, levelStr string) (logging.Format, slog.Level) {
	format := logging.ParseFormat(formatStr)
	level := logging.ParseLevel(levelStr)
	if levelStr == "" {
		if interactive {
			level = logging.ParseLevel("debug")
		} else {
			level = logging.ParseLevel("warn")
		}
	}
	return format, level
}
