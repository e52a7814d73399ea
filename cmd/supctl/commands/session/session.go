// Package session implements session-wide simulation control commands
// for supctl: reset, reload, quit, world loading, mode changes, and
// image export.
package session

import (
	"github.com/marmos91/supercore/cmd/supctl/cmdutil"
	"github.com/spf13/cobra"
)

// Cmd is the parent command for session-wide actions.
var Cmd = &cobra.Command{
	Use:   "session",
	Short: "Session-wide simulation control",
	Long: `Control the simulation as a whole: reset, reload, quit, load a
new world, change simulation mode, or export the current view.`,
}

func init() {
	Cmd.AddCommand(resetCmd)
	Cmd.AddCommand(resetPhysicsCmd)
	Cmd.AddCommand(reloadCmd)
	Cmd.AddCommand(quitCmd)
	Cmd.AddCommand(loadWorldCmd)
	Cmd.AddCommand(modeCmd)
	Cmd.AddCommand(exportImageCmd)
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset the simulation (reload controllers, keep the world)",
	RunE: func(cmd *cobra.Command, args []string) error {
		sup := cmdutil.GetSupervisor()
		if !sup.ResetSimulation(cmd.Context()) {
			cmdutil.PrintFailure("reset")
			return nil
		}
		cmdutil.PrintSuccess("simulation reset")
		return nil
	},
}

var resetPhysicsCmd = &cobra.Command{
	Use:   "reset-physics",
	Short: "Reset the simulation's physics state only",
	RunE: func(cmd *cobra.Command, args []string) error {
		sup := cmdutil.GetSupervisor()
		if !sup.ResetSimulationPhysics(cmd.Context()) {
			cmdutil.PrintFailure("reset-physics")
			return nil
		}
		cmdutil.PrintSuccess("physics reset")
		return nil
	},
}

var reloadCmd = &cobra.Command{
	Use:   "reload",
	Short: "Reload the current world from disk",
	RunE: func(cmd *cobra.Command, args []string) error {
		sup := cmdutil.GetSupervisor()
		if !sup.ReloadWorld(cmd.Context()) {
			cmdutil.PrintFailure("reload")
			return nil
		}
		cmdutil.PrintSuccess("world reloaded")
		return nil
	},
}

var quitStatus int32

var quitCmd = &cobra.Command{
	Use:   "quit",
	Short: "Terminate the simulator process",
	RunE: func(cmd *cobra.Command, args []string) error {
		sup := cmdutil.GetSupervisor()
		if !sup.Quit(cmd.Context(), quitStatus) {
			cmdutil.PrintFailure("quit")
			return nil
		}
		cmdutil.PrintSuccess("quit requested")
		return nil
	},
}

func init() {
	quitCmd.Flags().Int32Var(&quitStatus, "status", 0, "process exit status")
}

var loadWorldCmd = &cobra.Command{
	Use:   "load-world <file.wbt>",
	Short: "Load a new world file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sup := cmdutil.GetSupervisor()
		if !sup.LoadWorld(cmd.Context(), args[0]) {
			cmdutil.PrintFailure("load-world")
			return nil
		}
		cmdutil.PrintSuccess("world loaded")
		return nil
	},
}

var modeValue int32

var modeCmd = &cobra.Command{
	Use:   "mode",
	Short: "Change the simulation's run mode (pause/real-time/fast)",
	RunE: func(cmd *cobra.Command, args []string) error {
		sup := cmdutil.GetSupervisor()
		if !sup.SetSimulationMode(cmd.Context(), modeValue) {
			cmdutil.PrintFailure("mode")
			return nil
		}
		cmdutil.PrintSuccess("simulation mode changed")
		return nil
	},
}

func init() {
	modeCmd.Flags().Int32Var(&modeValue, "value", 0, "mode code: 0=pause, 1=real-time, 2=run, 3=fast")
}

var exportImageQuality uint8

var exportImageCmd = &cobra.Command{
	Use:   "export-image <file.png|jpg>",
	Short: "Export the current 3D view to an image file",
	Long: `Queue an image export for the next frame. This request is
never flushed immediately and never reports success or failure back —
it is fire-and-forget, mirroring the simulator's own behavior.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sup := cmdutil.GetSupervisor()
		sup.ExportImage(cmd.Context(), args[0], exportImageQuality)
		cmdutil.PrintSuccess("image export queued")
		return nil
	},
}

func init() {
	exportImageCmd.Flags().Uint8Var(&exportImageQuality, "quality", 100, "JPEG quality, 1-100 (ignored for PNG)")
}
