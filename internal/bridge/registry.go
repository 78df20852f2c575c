package bridge

import (
	"strings"

	"go.klb.dev/hostbridge/internal/arg"
)

// Operation is one host-callable function.
type Operation struct {
	Name    string
	Sig     string // host signature letters: d signed, s string
	Params  []arg.Param
	Returns arg.Kind

	run func(b *Bridge, args arg.Vector) (arg.Value, error)
}

// Signature returns the entry advertised to the host, e.g. "systemBeep_d".
func (o *Operation) Signature() string {
	if o.Sig == "" {
		return o.Name
	}
	return o.Name + "_" + o.Sig
}

var (
	soundClassParam = arg.Param{Name: "type", Accepts: []arg.Kind{arg.KindInt, arg.KindUint}}
	soundNameParam  = arg.Param{Name: "name", Accepts: []arg.Kind{arg.KindString}}
	textParam       = arg.Param{Name: "text", Accepts: []arg.Kind{arg.KindString}}
)

// registry is fixed at compile time and never mutated.
var registry = [...]Operation{
	{
		Name:    "systemBeep",
		Sig:     "d",
		Params:  []arg.Param{soundClassParam},
		Returns: arg.KindInt,
		run:     (*Bridge).systemBeep,
	},
	{
		Name:    "playSystemSound",
		Sig:     "s",
		Params:  []arg.Param{soundNameParam},
		Returns: arg.KindInt,
		run:     (*Bridge).playSystemSound,
	},
	{
		Name:    "copyTextToClipboard",
		Sig:     "s",
		Params:  []arg.Param{textParam},
		Returns: arg.KindInt,
		run:     (*Bridge).copyTextToClipboard,
	},
	{
		Name:    "getVersion",
		Returns: arg.KindString,
		run:     (*Bridge).getVersion,
	},
}

// Lookup returns the operation registered under name.
func Lookup(name string) (*Operation, bool) {
	for i := range registry {
		if registry[i].Name == name {
			return &registry[i], true
		}
	}
	return nil, false
}

// Operations returns a copy of the registry in declaration order.
func Operations() []Operation {
	ops := make([]Operation, len(registry))
	copy(ops, registry[:])
	return ops
}

// Functions renders the comma-separated name list the host reads at load
// time.
func Functions() string {
	sigs := make([]string, len(registry))
	for i := range registry {
		sigs[i] = registry[i].Signature()
	}
	return strings.Join(sigs, ",")
}
