package field

import (
	"os"

	"github.com/marmos91/supercore/cmd/supctl/cmdutil"
	"github.com/spf13/cobra"
)

var getIndex int32

var getCmd = &cobra.Command{
	Use:   "get",
	Short: "Read a field's current value",
	RunE:  runGet,
}

var getFlags *fieldFlags

func init() {
	getFlags = addFieldFlags(getCmd)
	getCmd.Flags().Int32Var(&getIndex, "index", 0, "element index, for MF fields")
}

func runGet(cmd *cobra.Command, args []string) error {
	sup := cmdutil.GetSupervisor()
	ref, f, err := getFlags.resolve(cmd, sup)
	if err != nil {
		return err
	}
	val, ok := getValue(cmd.Context(), sup, ref, f, getIndex)
	if !ok {
		cmdutil.PrintFailure("get")
		return nil
	}
	row := scalarRow{Label: getFlags.name, Value: formatScalar(val)}
	return cmdutil.PrintResource(os.Stdout, row, row)
}

// scalarRow renders a single labeled value as a one-row table.
type scalarRow struct {
	Label string `json:"field"`
	Value string `json:"value"`
}

func (scalarRow) Headers() []string  { return []string{"FIELD", "VALUE"} }
func (r scalarRow) Rows() [][]string { return [][]string{{r.Label, r.Value}} }
