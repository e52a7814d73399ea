// Package label implements the on-screen label command for supctl.
package label

import (
	"github.com/marmos91/supercore/cmd/supctl/cmdutil"
	"github.com/spf13/cobra"
)

// Cmd is the parent command for on-screen labels.
var Cmd = &cobra.Command{
	Use:   "label",
	Short: "On-screen text label control",
}

func init() {
	Cmd.AddCommand(setCmd)
}

var (
	labelID                   uint16
	labelText, labelFont      string
	labelX, labelY, labelSize float64
	labelColor                uint32
)

var setCmd = &cobra.Command{
	Use:   "set",
	Short: "Set or update an on-screen text label",
	Long: `Queue a label for the next frame. Like export-image, this
request is never flushed and never answered — it is fire-and-forget.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		sup := cmdutil.GetSupervisor()
		if !sup.SetLabel(labelID, labelText, labelFont, labelX, labelY, labelSize, labelColor) {
			cmdutil.PrintFailure("set")
			return nil
		}
		cmdutil.PrintSuccess("label queued")
		return nil
	},
}

func init() {
	setCmd.Flags().Uint16Var(&labelID, "id", 0, "label id; reusing an id replaces that label")
	setCmd.Flags().StringVar(&labelText, "text", "", "label text")
	setCmd.Flags().StringVar(&labelFont, "font", "Arial", "font family")
	setCmd.Flags().Float64Var(&labelX, "x", 0, "horizontal position, 0.0-1.0")
	setCmd.Flags().Float64Var(&labelY, "y", 0, "vertical position, 0.0-1.0")
	setCmd.Flags().Float64Var(&labelSize, "size", 0.1, "font size, fraction of viewport height")
	setCmd.Flags().Uint32Var(&labelColor, "color", 0xFFFFFF, "RGB color, e.g. 0xff0000 for red")
	_ = setCmd.MarkFlagRequired("text")
}
