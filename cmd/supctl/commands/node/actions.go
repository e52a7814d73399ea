package node

import (
	"github.com/marmos91/supercore/cmd/supctl/cmdutil"
	"github.com/marmos91/supercore/pkg/handle"
	"github.com/marmos91/supercore/pkg/supervisor"
	"github.com/spf13/cobra"
)

var (
	setVisibilityViewerSel *cmdutil.NodeSelector
	setVisibilityValue     bool
)

var setVisibilityCmd = newNodeCommand("set-visibility", "Show or hide a node for a given viewpoint",
	func(cmd *cobra.Command, sup *supervisor.Supervisor, ref handle.NodeRef) error {
		viewer, err := cmdutil.ResolveNode(cmd.Context(), sup, *setVisibilityViewerSel)
		if err != nil {
			return err
		}
		if !sup.SetVisibility(cmd.Context(), ref, viewer, setVisibilityValue) {
			cmdutil.PrintFailure("set-visibility")
			return nil
		}
		cmdutil.PrintSuccess("visibility updated")
		return nil
	})

func init() {
	setVisibilityViewerSel = cmdutil.AddPrefixedNodeSelectorFlags(setVisibilityCmd, "viewer-")
	setVisibilityCmd.Flags().BoolVar(&setVisibilityValue, "visible", true, "whether the node should be visible")
}

var moveViewpointCmd = newNodeCommand("move-viewpoint", "Move the simulator's active viewpoint to a node",
	func(cmd *cobra.Command, sup *supervisor.Supervisor, ref handle.NodeRef) error {
		if !sup.MoveViewpoint(cmd.Context(), ref) {
			cmdutil.PrintFailure("move-viewpoint")
			return nil
		}
		cmdutil.PrintSuccess("viewpoint moved")
		return nil
	})

var (
	addForceVec      string
	addForceRelative bool
)

var addForceCmd = newNodeCommand("add-force", "Apply a force to a node's physics body",
	func(cmd *cobra.Command, sup *supervisor.Supervisor, ref handle.NodeRef) error {
		force, err := parseVec3(addForceVec)
		if err != nil {
			return err
		}
		if !sup.AddForce(cmd.Context(), ref, force, addForceRelative) {
			cmdutil.PrintFailure("add-force")
			return nil
		}
		cmdutil.PrintSuccess("force applied")
		return nil
	})

func init() {
	addForceCmd.Flags().StringVar(&addForceVec, "force", "0,0,0", "fx,fy,fz")
	addForceCmd.Flags().BoolVar(&addForceRelative, "relative", false, "force is in the node's local frame")
}

var (
	addForceOffsetForceVec  string
	addForceOffsetOffsetVec string
	addForceOffsetRelative  bool
)

var addForceOffsetCmd = newNodeCommand("add-force-offset", "Apply an offset force to a node's physics body",
	func(cmd *cobra.Command, sup *supervisor.Supervisor, ref handle.NodeRef) error {
		force, err := parseVec3(addForceOffsetForceVec)
		if err != nil {
			return err
		}
		offset, err := parseVec3(addForceOffsetOffsetVec)
		if err != nil {
			return err
		}
		if !sup.AddForceWithOffset(cmd.Context(), ref, force, offset, addForceOffsetRelative) {
			cmdutil.PrintFailure("add-force-offset")
			return nil
		}
		cmdutil.PrintSuccess("offset force applied")
		return nil
	})

func init() {
	addForceOffsetCmd.Flags().StringVar(&addForceOffsetForceVec, "force", "0,0,0", "fx,fy,fz")
	addForceOffsetCmd.Flags().StringVar(&addForceOffsetOffsetVec, "offset", "0,0,0", "ox,oy,oz, relative to the body's center of mass")
	addForceOffsetCmd.Flags().BoolVar(&addForceOffsetRelative, "relative", false, "force is in the node's local frame")
}

var (
	addTorqueVec      string
	addTorqueRelative bool
)

var addTorqueCmd = newNodeCommand("add-torque", "Apply a torque to a node's physics body",
	func(cmd *cobra.Command, sup *supervisor.Supervisor, ref handle.NodeRef) error {
		torque, err := parseVec3(addTorqueVec)
		if err != nil {
			return err
		}
		if !sup.AddTorque(cmd.Context(), ref, torque, addTorqueRelative) {
			cmdutil.PrintFailure("add-torque")
			return nil
		}
		cmdutil.PrintSuccess("torque applied")
		return nil
	})

func init() {
	addTorqueCmd.Flags().StringVar(&addTorqueVec, "torque", "0,0,0", "tx,ty,tz")
	addTorqueCmd.Flags().BoolVar(&addTorqueRelative, "relative", false, "torque is in the node's local frame")
}

var removeCmd = newNodeCommand("remove", "Remove a node from the scene tree",
	func(cmd *cobra.Command, sup *supervisor.Supervisor, ref handle.NodeRef) error {
		if !sup.RemoveNode(cmd.Context(), ref) {
			cmdutil.PrintFailure("remove")
			return nil
		}
		cmdutil.PrintSuccess("node removed")
		return nil
	})
