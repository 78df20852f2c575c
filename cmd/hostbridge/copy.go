package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"go.klb.dev/hostbridge/internal/arg"
)

func newCopyCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "copy [text]",
		Short: "Copy text or stdin to the system clipboard (like pbcopy)",
		Long: `Calls copyTextToClipboard with text, or with stdin when no text is given.

Empty input clears the clipboard to an empty string. Platforms without a
clipboard writer fail with NotImplemented.`,
		Args:    cobra.MaximumNArgs(1),
		PreRunE: preRun(v),
		RunE:    func(_ *cobra.Command, args []string) error { return runCopy(v, args) },
	}
	addCommonFlags(cmd)

	return cmd
}

func runCopy(v *viper.Viper, args []string) error {
	var text string
	if len(args) == 1 {
		text = args[0]
	} else {
		if term.IsTerminal(int(os.Stdin.Fd())) {
			slog.Info("reading text from the terminal until EOF (Ctrl-D, or Ctrl-Z on Windows)")
		}
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		text = string(data)
	}

	b, _, err := newBridge(v)
	if err != nil {
		return err
	}
	_, err = call(b, "copyTextToClipboard", arg.String(text))
	return err
}
