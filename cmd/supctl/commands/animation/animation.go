// Package animation implements HTML5 animation-recording commands for
// supctl.
package animation

import (
	"github.com/marmos91/supercore/cmd/supctl/cmdutil"
	"github.com/spf13/cobra"
)

// Cmd is the parent command for animation recording.
var Cmd = &cobra.Command{
	Use:   "animation",
	Short: "HTML5 animation recording control",
}

func init() {
	Cmd.AddCommand(startCmd)
	Cmd.AddCommand(stopCmd)
}

var startCmd = &cobra.Command{
	Use:   "start <file.html>",
	Short: "Start recording an HTML5 animation",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sup := cmdutil.GetSupervisor()
		if !sup.AnimationStartRecording(cmd.Context(), args[0]) {
			cmdutil.PrintFailure("start")
			return nil
		}
		cmdutil.PrintSuccess("animation recording started")
		return nil
	},
}

var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop recording the current animation",
	RunE: func(cmd *cobra.Command, args []string) error {
		sup := cmdutil.GetSupervisor()
		if !sup.AnimationStopRecording(cmd.Context()) {
			cmdutil.PrintFailure("stop")
			return nil
		}
		cmdutil.PrintSuccess("animation recording stopped")
		return nil
	},
}
