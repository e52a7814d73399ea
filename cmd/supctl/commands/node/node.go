// Package node implements node-introspection and actuation commands
// for supctl: resolution, physics queries, forces, visibility, and
// removal.
package node

import (
	"github.com/spf13/cobra"
)

// Cmd is the parent command for node operations.
var Cmd = &cobra.Command{
	Use:   "node",
	Short: "Node resolution and actuation",
	Long: `Resolve nodes in the scene tree and act on them.

Every subcommand accepts exactly one of --id, --def, --tag, or
--selected to name the node it operates on.

Examples:
  # Resolve the DEF-named node ROBOT and print its handle
  supctl node resolve --def ROBOT

  # Read the current position of node id 2
  supctl node position --id 2

  # Apply an upward force to the selected node
  supctl node add-force --selected --force 0,0,10`,
}

func init() {
	Cmd.AddCommand(resolveCmd)
	Cmd.AddCommand(positionCmd)
	Cmd.AddCommand(orientationCmd)
	Cmd.AddCommand(centerOfMassCmd)
	Cmd.AddCommand(velocityCmd)
	Cmd.AddCommand(setVelocityCmd)
	Cmd.AddCommand(contactPointsCmd)
	Cmd.AddCommand(staticBalanceCmd)
	Cmd.AddCommand(resetPhysicsCmd)
	Cmd.AddCommand(restartControllerCmd)
	Cmd.AddCommand(setVisibilityCmd)
	Cmd.AddCommand(moveViewpointCmd)
	Cmd.AddCommand(addForceCmd)
	Cmd.AddCommand(addForceOffsetCmd)
	Cmd.AddCommand(addTorqueCmd)
	Cmd.AddCommand(removeCmd)
}
