package field

import (
	"github.com/marmos91/supercore/cmd/supctl/cmdutil"
	"github.com/spf13/cobra"
)

var removeIndex int32

var removeCmd = &cobra.Command{
	Use:   "remove",
	Short: "Remove an element from an MF field",
	RunE:  runRemove,
}

var removeFlags *fieldFlags

func init() {
	removeFlags = addFieldFlags(removeCmd)
	removeCmd.Flags().Int32Var(&removeIndex, "index", 0, "element index to remove")
}

func runRemove(cmd *cobra.Command, args []string) error {
	sup := cmdutil.GetSupervisor()
	ref, _, err := removeFlags.resolve(cmd, sup)
	if err != nil {
		return err
	}
	if !sup.RemoveValue(cmd.Context(), ref, removeIndex) {
		cmdutil.PrintFailure("remove")
		return nil
	}
	cmdutil.PrintSuccess("element removed")
	return nil
}
