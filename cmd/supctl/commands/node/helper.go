package node

import (
	"github.com/marmos91/supercore/cmd/supctl/cmdutil"
	"github.com/marmos91/supercore/pkg/handle"
	"github.com/marmos91/supercore/pkg/supervisor"
	"github.com/spf13/cobra"
)

// newNodeCommand builds a cobra.Command that resolves a node from the
// standard --id/--def/--tag/--selected flags before calling fn, the
// shape every query and actuation subcommand in this package shares.
func newNodeCommand(use, short string, fn func(cmd *cobra.Command, sup *supervisor.Supervisor, ref handle.NodeRef) error) *cobra.Command {
	cmd := &cobra.Command{Use: use, Short: short}
	sel := cmdutil.AddNodeSelectorFlags(cmd)
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		sup := cmdutil.GetSupervisor()
		ref, err := cmdutil.ResolveNode(cmd.Context(), sup, *sel)
		if err != nil {
			return err
		}
		return fn(cmd, sup, ref)
	}
	return cmd
}
