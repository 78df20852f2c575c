package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.design/x/clipboard"
)

func newPasteCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "paste",
		Short: "Print the system clipboard text to stdout (like pbpaste)",
		Long: `Reads the system clipboard independently of the bridge, so it can confirm
what a previous "hostbridge copy" left there.

If the clipboard holds no text, nothing is printed (exit 0).`,
		Args:    cobra.NoArgs,
		PreRunE: preRun(v),
		RunE:    func(_ *cobra.Command, _ []string) error { return runPaste() },
	}
	addConfigFlag(cmd)
	addLoggingFlags(cmd)

	return cmd
}

func runPaste() error {
	if err := clipboard.Init(); err != nil {
		return fmt.Errorf("clipboard: %w", err)
	}
	data := clipboard.Read(clipboard.FmtText)
	if len(data) == 0 {
		// No text on the clipboard: exit 0, print nothing (pbpaste behaviour).
		return nil
	}
	_, err := os.Stdout.Write(data)
	return err
}
