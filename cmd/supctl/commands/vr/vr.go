// Package vr implements VR headset query commands for supctl.
package vr

import (
	"fmt"
	"os"

	"github.com/marmos91/supercore/cmd/supctl/cmdutil"
	"github.com/spf13/cobra"
)

// Cmd is the parent command for VR headset queries.
var Cmd = &cobra.Command{
	Use:   "vr",
	Short: "VR headset queries",
	Long: `Query the connected VR headset, if any. Every subcommand
issues a fresh round trip — headset presence and pose can change
between simulation steps outside the controller's control, so none of
these are cached.`,
}

func init() {
	Cmd.AddCommand(isUsedCmd)
	Cmd.AddCommand(positionCmd)
	Cmd.AddCommand(orientationCmd)
}

type scalarRow struct {
	Label string `json:"field"`
	Value string `json:"value"`
}

func (scalarRow) Headers() []string  { return []string{"FIELD", "VALUE"} }
func (r scalarRow) Rows() [][]string { return [][]string{{r.Label, r.Value}} }

var isUsedCmd = &cobra.Command{
	Use:   "is-used",
	Short: "Report whether a VR headset is currently connected",
	RunE: func(cmd *cobra.Command, args []string) error {
		sup := cmdutil.GetSupervisor()
		used := sup.VRHeadsetIsUsed(cmd.Context())
		row := scalarRow{Label: "VRHeadsetIsUsed", Value: cmdutil.BoolToYesNo(used)}
		return cmdutil.PrintResource(os.Stdout, row, row)
	},
}

var positionCmd = &cobra.Command{
	Use:   "position",
	Short: "Get the VR headset's position",
	RunE: func(cmd *cobra.Command, args []string) error {
		sup := cmdutil.GetSupervisor()
		v := sup.VRHeadsetPosition(cmd.Context())
		row := scalarRow{Label: "Position", Value: fmt.Sprintf("%.4f, %.4f, %.4f", v[0], v[1], v[2])}
		return cmdutil.PrintResource(os.Stdout, row, row)
	},
}

var orientationCmd = &cobra.Command{
	Use:   "orientation",
	Short: "Get the VR headset's 3x3 orientation matrix",
	RunE: func(cmd *cobra.Command, args []string) error {
		sup := cmdutil.GetSupervisor()
		v := sup.VRHeadsetOrientation(cmd.Context())
		row := scalarRow{Label: "Orientation", Value: fmt.Sprintf(
			"[%.4f %.4f %.4f; %.4f %.4f %.4f; %.4f %.4f %.4f]",
			v[0], v[1], v[2], v[3], v[4], v[5], v[6], v[7], v[8])}
		return cmdutil.PrintResource(os.Stdout, row, row)
	},
}
