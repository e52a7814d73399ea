package node

import (
	"fmt"
	"os"

	"github.com/marmos91/supercore/cmd/supctl/cmdutil"
	"github.com/spf13/cobra"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Resolve a node handle",
	Long: `Resolve a node by id, DEF name, device tag, or current selection
and print the resulting handle.

Examples:
  supctl node resolve --def ROBOT
  supctl node resolve --tag 501
  supctl node resolve --selected`,
	RunE: runResolve,
}

var resolveSel *cmdutil.NodeSelector

func init() {
	resolveSel = cmdutil.AddNodeSelectorFlags(resolveCmd)
}

// NodeRow renders a resolved node's cached fields as a table.
type NodeRow struct {
	ID             int32  `json:"id"`
	TypeTag        int32  `json:"type_tag"`
	DEFName        string `json:"def_name,omitempty"`
	DeviceTag      int32  `json:"device_tag,omitempty"`
	IsProtoInternal bool  `json:"is_proto_internal"`
}

// Headers implements output.TableRenderer.
func (NodeRow) Headers() []string { return []string{"FIELD", "VALUE"} }

// Rows implements output.TableRenderer.
func (n NodeRow) Rows() [][]string {
	return [][]string{
		{"ID", fmt.Sprintf("%d", n.ID)},
		{"TypeTag", fmt.Sprintf("%d", n.TypeTag)},
		{"DEFName", cmdutil.EmptyOr(n.DEFName)},
		{"DeviceTag", fmt.Sprintf("%d", n.DeviceTag)},
		{"ProtoInternal", cmdutil.BoolToYesNo(n.IsProtoInternal)},
	}
}

func runResolve(cmd *cobra.Command, args []string) error {
	sup := cmdutil.GetSupervisor()
	ctx := cmd.Context()

	ref, err := cmdutil.ResolveNode(ctx, sup, *resolveSel)
	if err != nil {
		return err
	}
	n := sup.State().Registry.Node(ref)
	if n == nil {
		return fmt.Errorf("resolved node handle went stale immediately")
	}

	row := NodeRow{
		ID:              n.ID,
		TypeTag:         n.TypeTag,
		DEFName:         n.DEFName,
		DeviceTag:       n.DeviceTag,
		IsProtoInternal: n.IsProtoInternal,
	}
	return cmdutil.PrintResource(os.Stdout, row, row)
}
