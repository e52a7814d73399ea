// Package cmdutil provides shared utilities for supctl commands.
package cmdutil

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/marmos91/supercore/internal/cli/output"
	"github.com/marmos91/supercore/internal/cli/prompt"
	"github.com/marmos91/supercore/pkg/handle"
	"github.com/marmos91/supercore/pkg/metrics"
	"github.com/marmos91/supercore/pkg/simtransport"
	"github.com/marmos91/supercore/pkg/supervisor"
	"github.com/spf13/cobra"
)

// Flags stores global flag values accessible by subcommands.
var Flags = &GlobalFlags{}

// GlobalFlags holds the global flag values.
type GlobalFlags struct {
	Output  string
	NoColor bool
	Verbose bool
}

// sup is the single Supervisor instance backing every command run in
// this process, lazily created on first use.
var sup *supervisor.Supervisor

// GetSupervisor returns the process-wide Supervisor, creating it on
// first call. Unlike the donor's GetAuthenticatedClient (which dials a
// real server per invocation), this core has no out-of-process
// simulator to reach in a demo build, so the Supervisor is bound to
// pkg/simtransport's in-memory world: every node and field the
// commands below resolve lives only for this process's lifetime.
func GetSupervisor() *supervisor.Supervisor {
	if sup == nil {
		coll := metrics.NewCollector(nil)
		sup = supervisor.New(simtransport.New(), supervisor.RoleSupervisor, coll)
	}
	return sup
}

// NodeSelector holds the mutually-exclusive ways a command can name a
// node, wired onto a cobra.Command by AddNodeSelectorFlags.
type NodeSelector struct {
	ID       int32
	Def      string
	Tag      int32
	Selected bool
}

// ResolveNode resolves sel against sup using whichever selector field
// was set, preferring the most specific: an explicit id, then a DEF
// name, then a device tag, then the simulator's current selection.
func ResolveNode(ctx context.Context, sup *supervisor.Supervisor, sel NodeSelector) (handle.NodeRef, error) {
	switch {
	case sel.ID != 0:
		ref, ok := sup.ResolveNodeByID(ctx, sel.ID)
		if !ok {
			return handle.NodeRef{}, fmt.Errorf("no node with id %d", sel.ID)
		}
		return ref, nil
	case sel.Def != "":
		ref, ok := sup.ResolveNodeByDEF(ctx, sel.Def, handle.NodeRef{}, false)
		if !ok {
			return handle.NodeRef{}, fmt.Errorf("no node DEF %q", sel.Def)
		}
		return ref, nil
	case sel.Tag != 0:
		ref, ok := sup.ResolveNodeByTag(ctx, sel.Tag)
		if !ok {
			return handle.NodeRef{}, fmt.Errorf("no node with tag %d", sel.Tag)
		}
		return ref, nil
	case sel.Selected:
		ref, ok := sup.ResolveSelected(ctx)
		if !ok {
			return handle.NodeRef{}, fmt.Errorf("no node is currently selected")
		}
		return ref, nil
	default:
		return handle.NodeRef{}, fmt.Errorf("specify one of --id, --def, --tag, or --selected")
	}
}

// AddNodeSelectorFlags wires the four mutually-exclusive node selector
// flags onto cmd and returns a NodeSelector that is populated once
// cobra has parsed cmd's flags (read its fields only inside RunE).
func AddNodeSelectorFlags(cmd *cobra.Command) *NodeSelector {
	return AddPrefixedNodeSelectorFlags(cmd, "")
}

// AddPrefixedNodeSelectorFlags is AddNodeSelectorFlags with every flag
// name prefixed, for commands that need to name a second node (e.g.
// set-visibility's viewer argument alongside its target node).
func AddPrefixedNodeSelectorFlags(cmd *cobra.Command, prefix string) *NodeSelector {
	sel := &NodeSelector{}
	cmd.Flags().Int32Var(&sel.ID, prefix+"id", 0, "resolve by node id")
	cmd.Flags().StringVar(&sel.Def, prefix+"def", "", "resolve by DEF name")
	cmd.Flags().Int32Var(&sel.Tag, prefix+"tag", 0, "resolve by device tag")
	cmd.Flags().BoolVar(&sel.Selected, prefix+"selected", false, "use the currently selected node")
	return sel
}

// GetOutputFormatParsed returns the parsed output format.
func GetOutputFormatParsed() (output.Format, error) {
	return output.ParseFormat(Flags.Output)
}

// PrintResource prints data in the configured format: table via
// tableRenderer, or JSON/YAML via direct marshaling.
func PrintResource(w io.Writer, data any, tableRenderer output.TableRenderer) error {
	format, err := GetOutputFormatParsed()
	if err != nil {
		return err
	}
	switch format {
	case output.FormatJSON:
		return output.PrintJSON(w, data)
	case output.FormatYAML:
		return output.PrintYAML(w, data)
	default:
		return output.PrintTable(w, tableRenderer)
	}
}

// PrintSuccess prints a success message in table output mode, colored
// unless --no-color is set. It prints nothing when the output format is
// JSON or YAML.
func PrintSuccess(msg string) {
	format, err := GetOutputFormatParsed()
	if err != nil || format != output.FormatTable {
		return
	}
	output.NewPrinter(os.Stdout, format, !Flags.NoColor).Success(msg)
}

// PrintFailure prints a failure message for an operation that returned
// its boolean sentinel false rather than an error (most rejections
// from the underlying protocol are silent bools, not Go errors).
func PrintFailure(op string) {
	format, err := GetOutputFormatParsed()
	if err != nil || format != output.FormatTable {
		return
	}
	output.NewPrinter(os.Stdout, format, !Flags.NoColor).Error(op + ": rejected by simulator")
}

// HandleAbort checks if err is a prompt abort (Ctrl+C) and prints a
// message instead of propagating it as a command failure.
func HandleAbort(err error) error {
	if prompt.IsAborted(err) {
		fmt.Println("\nAborted.")
		return nil
	}
	return err
}

// BoolToYesNo converts a boolean to "yes" or "no" for table display.
func BoolToYesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// EmptyOr returns value if non-empty, otherwise "-" for table display.
func EmptyOr(value string) string {
	if value == "" {
		return "-"
	}
	return value
}
