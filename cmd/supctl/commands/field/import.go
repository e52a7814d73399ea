package field

import (
	"github.com/marmos91/supercore/cmd/supctl/cmdutil"
	"github.com/spf13/cobra"
)

var (
	importIndex     int32
	importValueFlag string
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Insert a new element into an MF field",
	Long: `Insert a new element into an MF field at the given index
(use -1 to append), per the field's wire kind.

For MFNode fields, --value is the node id to reference rather than a
newly constructed node; to insert a node parsed from a VRML/WRL
fragment use "field import-from-string" instead.`,
	RunE: runImport,
}

var importFlags *fieldFlags

func init() {
	importFlags = addFieldFlags(importCmd)
	importCmd.Flags().Int32Var(&importIndex, "index", -1, "insertion index, -1 to append")
	importCmd.Flags().StringVar(&importValueFlag, "value", "", "new value, in the field kind's textual form")
	_ = importCmd.MarkFlagRequired("value")
}

func runImport(cmd *cobra.Command, args []string) error {
	sup := cmdutil.GetSupervisor()
	ref, f, err := importFlags.resolve(cmd, sup)
	if err != nil {
		return err
	}
	val, err := parseScalar(f.Type.Kind, importValueFlag)
	if err != nil {
		return err
	}
	if !sup.ImportMFValue(cmd.Context(), ref, importIndex, val) {
		cmdutil.PrintFailure("import")
		return nil
	}
	cmdutil.PrintSuccess("value imported")
	return nil
}
