package field

import (
	"github.com/marmos91/supercore/cmd/supctl/cmdutil"
	"github.com/spf13/cobra"
)

var (
	importFromStringIndex int32
	importFromStringText  string
)

var importFromStringCmd = &cobra.Command{
	Use:   "import-from-string",
	Short: "Parse and insert a VRML/WRL node fragment into an MF field",
	Long: `Parse --text as a VRML/WRL node fragment and insert the
resulting node into an MFNode field at --index.`,
	RunE: runImportFromString,
}

var importFromStringFlags *fieldFlags

func init() {
	importFromStringFlags = addFieldFlags(importFromStringCmd)
	importFromStringCmd.Flags().Int32Var(&importFromStringIndex, "index", -1, "insertion index, -1 to append")
	importFromStringCmd.Flags().StringVar(&importFromStringText, "text", "", "VRML/WRL node fragment")
	_ = importFromStringCmd.MarkFlagRequired("text")
}

func runImportFromString(cmd *cobra.Command, args []string) error {
	sup := cmdutil.GetSupervisor()
	ref, _, err := importFromStringFlags.resolve(cmd, sup)
	if err != nil {
		return err
	}
	if !sup.ImportNodeFromString(cmd.Context(), ref, importFromStringIndex, importFromStringText) {
		cmdutil.PrintFailure("import-from-string")
		return nil
	}
	cmdutil.PrintSuccess("node imported")
	return nil
}
