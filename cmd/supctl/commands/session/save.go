package session

import (
	"github.com/marmos91/supercore/cmd/supctl/cmdutil"
	"github.com/spf13/cobra"
)

var saveCmd = &cobra.Command{
	Use:   "save <file.wbt>",
	Short: "Save the current world to a file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sup := cmdutil.GetSupervisor()
		if !sup.SaveWorld(cmd.Context(), args[0]) {
			cmdutil.PrintFailure("save")
			return nil
		}
		cmdutil.PrintSuccess("world saved")
		return nil
	},
}

func init() {
	Cmd.AddCommand(saveCmd)
}
