package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"go.klb.dev/hostbridge/internal/arg"
)

func newBeepCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "beep [code]",
		Short: "Play the system alert sound",
		Long: `Calls systemBeep with code (default 0). On Windows the code is the
MessageBeep sound class and may be given in hex, e.g. 0x40 for the asterisk
sound. Other platforms ignore it.`,
		Args:    cobra.MaximumNArgs(1),
		PreRunE: preRun(v),
		RunE:    func(_ *cobra.Command, args []string) error { return runBeep(v, args) },
	}
	addCommonFlags(cmd)

	return cmd
}

func runBeep(v *viper.Viper, args []string) error {
	var code int64
	if len(args) == 1 {
		var err error
		code, err = strconv.ParseInt(args[0], 0, 64)
		if err != nil {
			return fmt.Errorf("code %q: %w", args[0], err)
		}
	}

	b, _, err := newBridge(v)
	if err != nil {
		return err
	}
	_, err = call(b, "systemBeep", arg.Int(code))
	return err
}
