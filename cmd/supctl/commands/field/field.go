// Package field implements typed field get/set/import/remove commands
// for supctl, dispatching on each field's actual wire kind once it has
// been resolved.
package field

import (
	"github.com/spf13/cobra"
)

// Cmd is the parent command for field operations.
var Cmd = &cobra.Command{
	Use:   "field",
	Short: "Field get/set/import/remove",
	Long: `Read and write typed fields on a node, dispatching on the
field's actual wire kind once resolved — no --kind flag is needed, the
kind comes back from FIELD_GET_FROM_NAME.

Examples:
  # Read the "translation" field of DEF ROBOT
  supctl field get --def ROBOT --name translation

  # Write it back
  supctl field set --def ROBOT --name translation --value 0,1,0

  # Insert a new element into an MF field
  supctl field import --def ROBOT --name children --index -1 --value 3`,
}

func init() {
	Cmd.AddCommand(getCmd)
	Cmd.AddCommand(setCmd)
	Cmd.AddCommand(importCmd)
	Cmd.AddCommand(importFromStringCmd)
	Cmd.AddCommand(removeCmd)
}
