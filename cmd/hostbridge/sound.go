package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"go.klb.dev/hostbridge/internal/arg"
)

func newSoundCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "sound <name>",
		Short: "Play a named system sound",
		Long: `Calls playSystemSound with name. A name containing ".wav" (any case) is
played from the Media folder under the system directory; anything else is a
registered sound alias such as SystemAsterisk.

Playback is asynchronous and a name the OS cannot find plays nothing without
an error. Use --dry-run to see what the name resolves to instead.

  hostbridge sound notify.wav --dry-run --system-dir 'C:\Windows'`,
		Args:    cobra.ExactArgs(1),
		PreRunE: preRun(v),
		RunE:    func(_ *cobra.Command, args []string) error { return runSound(v, args[0]) },
	}
	addCommonFlags(cmd)
	cmd.Flags().Bool("dry-run", false, "print the resolved mode and target without playing")

	return cmd
}

func runSound(v *viper.Viper, name string) error {
	b, _, err := newBridge(v)
	if err != nil {
		return err
	}

	if v.GetBool("dry-run") {
		t, err := b.Resolver().Resolve(name)
		if err != nil {
			return err
		}
		fmt.Printf("%s\t%s\n", t.Mode, t.Path)
		return nil
	}

	_, err = call(b, "playSystemSound", arg.String(name))
	return err
}
