package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.design/x/clipboard"

	"go.klb.dev/hostbridge/internal/arg"
	"go.klb.dev/hostbridge/internal/bridge"
	"go.klb.dev/hostbridge/internal/version"
)

func newStatusCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the platform adapter, its capabilities and the exported functions",
		Long: `Reports what the bridge can do on this machine: which platform adapter
was selected, how named sounds are handled, whether clipboard writes are
implemented, the version the host would see, and the function table returned
from initialization.`,
		Args:    cobra.NoArgs,
		PreRunE: preRun(v),
		RunE:    func(_ *cobra.Command, _ []string) error { return runStatus(v) },
	}
	addCommonFlags(cmd)
	cmd.Flags().Bool("json", false, "output raw JSON")

	return cmd
}

type statusReport struct {
	Platform       string           `json:"platform"`
	NamedSound     string           `json:"named_sound"`
	SystemDir      string           `json:"system_dir,omitempty"`
	ClipboardWrite bool             `json:"clipboard_write"`
	ClipboardRead  string           `json:"clipboard_read"`
	HostEncoding   string           `json:"host_encoding"`
	Version        string           `json:"version"`
	VersionLong    int64            `json:"version_long"`
	Functions      string           `json:"functions"`
	Operations     []statusFunction `json:"operations"`
}

type statusFunction struct {
	Signature string   `json:"signature"`
	Params    []string `json:"params"`
	Returns   string   `json:"returns"`
}

func runStatus(v *viper.Viper) error {
	b, cfg, err := newBridge(v)
	if err != nil {
		return err
	}

	report := collectStatus(b)
	report.HostEncoding = cfg.HostEncoding

	if v.GetBool("json") {
		enc, _ := json.MarshalIndent(report, "", "  ")
		fmt.Println(string(enc))
		return nil
	}
	printStatus(report)
	return nil
}

func collectStatus(b *bridge.Bridge) statusReport {
	p := b.Platform()
	r := statusReport{
		Platform:       p.Name(),
		NamedSound:     p.NamedSound().String(),
		ClipboardWrite: p.CanWriteClipboard(),
		ClipboardRead:  "ok",
		Functions:      bridge.Functions(),
	}
	if sd := b.Resolver().SystemDir; sd != nil {
		if dir, err := sd(); err == nil {
			r.SystemDir = dir
		}
	}
	if err := clipboard.Init(); err != nil {
		r.ClipboardRead = err.Error()
	}

	// The version goes through dispatch like any host call.
	if val, err := call(b, "getVersion"); err == nil {
		r.Version, _ = arg.AsString(val)
	} else {
		r.Version = err.Error()
	}
	if t, err := version.Current(); err == nil {
		r.VersionLong = t.Long()
	}

	for _, op := range bridge.Operations() {
		f := statusFunction{Signature: op.Signature(), Returns: op.Returns.String(), Params: []string{}}
		for _, prm := range op.Params {
			kinds := make([]string, len(prm.Accepts))
			for i, k := range prm.Accepts {
				kinds[i] = k.String()
			}
			f.Params = append(f.Params, prm.Name+":"+strings.Join(kinds, "|"))
		}
		r.Operations = append(r.Operations, f)
	}
	return r
}

func printStatus(r statusReport) {
	w := tabwriter.NewWriter(os.Stdout, 1, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Platform:\t%s\n", r.Platform)
	fmt.Fprintf(w, "Named sounds:\t%s\n", r.NamedSound)
	if r.SystemDir != "" {
		fmt.Fprintf(w, "System dir:\t%s\n", r.SystemDir)
	}
	fmt.Fprintf(w, "Clipboard write:\t%t\n", r.ClipboardWrite)
	fmt.Fprintf(w, "Clipboard read:\t%s\n", r.ClipboardRead)
	fmt.Fprintf(w, "Host encoding:\t%s\n", r.HostEncoding)
	fmt.Fprintf(w, "Version:\t%s (%d)\n", r.Version, r.VersionLong)
	fmt.Fprintln(w)
	_ = w.Flush()

	tw := tabwriter.NewWriter(os.Stdout, 1, 0, 2, ' ', 0)
	_, _ = fmt.Fprintf(tw, "FUNCTION\tPARAMS\tRETURNS\n")
	_, _ = fmt.Fprintf(tw, "--------\t------\t-------\n")
	for _, f := range r.Operations {
		params := "-"
		if len(f.Params) > 0 {
			params = strings.Join(f.Params, ",")
		}
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\n", f.Signature, params, f.Returns)
	}
	_ = tw.Flush()
}
