package field

import (
	"github.com/marmos91/supercore/cmd/supctl/cmdutil"
	"github.com/marmos91/supercore/pkg/fieldvalue"
	"github.com/spf13/cobra"
)

var (
	setIndex     int32
	setValueFlag string
)

var setCmd = &cobra.Command{
	Use:   "set",
	Short: "Write a field's value",
	RunE:  runSet,
}

var setFlags *fieldFlags

func init() {
	setFlags = addFieldFlags(setCmd)
	setCmd.Flags().Int32Var(&setIndex, "index", 0, "element index, for MF fields")
	setCmd.Flags().StringVar(&setValueFlag, "value", "", "new value, in the field kind's textual form")
	_ = setCmd.MarkFlagRequired("value")
}

func runSet(cmd *cobra.Command, args []string) error {
	sup := cmdutil.GetSupervisor()
	ref, f, err := setFlags.resolve(cmd, sup)
	if err != nil {
		return err
	}
	if f.Type.Kind == fieldvalue.KindNode {
		return unsupportedKind(f.Type.Kind)
	}
	val, err := parseScalar(f.Type.Kind, setValueFlag)
	if err != nil {
		return err
	}
	if !setValue(cmd.Context(), sup, ref, f, setIndex, val) {
		cmdutil.PrintFailure("set")
		return nil
	}
	cmdutil.PrintSuccess("field set")
	return nil
}
