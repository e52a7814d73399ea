// Package movie implements movie-recording commands for supctl.
package movie

import (
	"github.com/marmos91/supercore/cmd/supctl/cmdutil"
	"github.com/spf13/cobra"
)

// Cmd is the parent command for movie recording.
var Cmd = &cobra.Command{
	Use:   "movie",
	Short: "Movie recording control",
}

func init() {
	Cmd.AddCommand(startCmd)
	Cmd.AddCommand(stopCmd)
	Cmd.AddCommand(statusCmd)
}

var (
	startWidth, startHeight  int32
	startCodec, startQuality uint8
	startAccel, startCaption bool
)

var startCmd = &cobra.Command{
	Use:   "start <file.mp4>",
	Short: "Start recording a movie",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sup := cmdutil.GetSupervisor()
		if !sup.StartMovie(cmd.Context(), args[0], startWidth, startHeight, startCodec, startQuality, startAccel, startCaption) {
			cmdutil.PrintFailure("start")
			return nil
		}
		cmdutil.PrintSuccess("movie recording started")
		return nil
	},
}

func init() {
	startCmd.Flags().Int32Var(&startWidth, "width", 1280, "movie width in pixels")
	startCmd.Flags().Int32Var(&startHeight, "height", 720, "movie height in pixels")
	startCmd.Flags().Uint8Var(&startCodec, "codec", 0, "codec id")
	startCmd.Flags().Uint8Var(&startQuality, "quality", 100, "encoding quality")
	startCmd.Flags().BoolVar(&startAccel, "accelerate", false, "use hardware acceleration if available")
	startCmd.Flags().BoolVar(&startCaption, "caption", false, "burn in an on-screen caption")
}

var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop recording the current movie",
	RunE: func(cmd *cobra.Command, args []string) error {
		sup := cmdutil.GetSupervisor()
		if !sup.StopMovie(cmd.Context()) {
			cmdutil.PrintFailure("stop")
			return nil
		}
		cmdutil.PrintSuccess("movie recording stopped")
		return nil
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Report whether the last movie recording failed",
	RunE: func(cmd *cobra.Command, args []string) error {
		sup := cmdutil.GetSupervisor()
		if sup.MovieFailed() {
			cmdutil.PrintFailure("status")
			return nil
		}
		cmdutil.PrintSuccess("no movie failure observed")
		return nil
	},
}
