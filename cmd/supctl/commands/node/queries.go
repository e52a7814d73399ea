package node

import (
	"fmt"
	"os"

	"github.com/marmos91/supercore/cmd/supctl/cmdutil"
	"github.com/marmos91/supercore/internal/cli/output"
	"github.com/marmos91/supercore/pkg/handle"
	"github.com/marmos91/supercore/pkg/supervisor"
	"github.com/spf13/cobra"
)

// scalarRow renders a single labeled value as a one-row table, used by
// every read-only query below.
type scalarRow struct {
	Label string `json:"field"`
	Value string `json:"value"`
}

func (scalarRow) Headers() []string  { return []string{"FIELD", "VALUE"} }
func (r scalarRow) Rows() [][]string { return [][]string{{r.Label, r.Value}} }

func printScalar(label, value string) error {
	row := scalarRow{Label: label, Value: value}
	return cmdutil.PrintResource(os.Stdout, row, row)
}

var positionCmd = newNodeCommand("position", "Get a node's world-space position",
	func(cmd *cobra.Command, sup *supervisor.Supervisor, ref handle.NodeRef) error {
		v := sup.GetPosition(cmd.Context(), ref)
		return printScalar("Position", formatVec3(v))
	})

var orientationCmd = newNodeCommand("orientation", "Get a node's 3x3 orientation matrix",
	func(cmd *cobra.Command, sup *supervisor.Supervisor, ref handle.NodeRef) error {
		v := sup.GetOrientation(cmd.Context(), ref)
		return printScalar("Orientation", formatMat3(v))
	})

var centerOfMassCmd = newNodeCommand("center-of-mass", "Get a node's center of mass",
	func(cmd *cobra.Command, sup *supervisor.Supervisor, ref handle.NodeRef) error {
		v := sup.GetCenterOfMass(cmd.Context(), ref)
		return printScalar("CenterOfMass", formatVec3(v))
	})

var velocityCmd = newNodeCommand("velocity", "Get a node's linear+angular velocity",
	func(cmd *cobra.Command, sup *supervisor.Supervisor, ref handle.NodeRef) error {
		v := sup.GetVelocity(cmd.Context(), ref)
		return printScalar("Velocity", formatVec6(v))
	})

var setVelocityFlag string

var setVelocityCmd = newNodeCommand("set-velocity", "Set a node's linear+angular velocity",
	func(cmd *cobra.Command, sup *supervisor.Supervisor, ref handle.NodeRef) error {
		vals, err := parseVec6(setVelocityFlag)
		if err != nil {
			return err
		}
		if !sup.SetVelocity(cmd.Context(), ref, vals) {
			cmdutil.PrintFailure("set-velocity")
			return nil
		}
		cmdutil.PrintSuccess("velocity set")
		return nil
	})

func init() {
	setVelocityCmd.Flags().StringVar(&setVelocityFlag, "velocity", "0,0,0,0,0,0", "vx,vy,vz,wx,wy,wz")
}

var contactPointsIncludeDescendants bool

var contactPointsCmd = newNodeCommand("contact-points", "Get a node's contact points",
	func(cmd *cobra.Command, sup *supervisor.Supervisor, ref handle.NodeRef) error {
		points, nodeIDs, ok := sup.GetContactPoints(cmd.Context(), ref, contactPointsIncludeDescendants)
		if !ok {
			cmdutil.PrintFailure("contact-points")
			return nil
		}
		rows := output.NewTableData("X", "Y", "Z", "NODE_ID")
		for i, id := range nodeIDs {
			rows.AddRow(
				fmt.Sprintf("%.4f", points[i*3]),
				fmt.Sprintf("%.4f", points[i*3+1]),
				fmt.Sprintf("%.4f", points[i*3+2]),
				fmt.Sprintf("%d", id),
			)
		}
		return cmdutil.PrintResource(os.Stdout, nodeIDs, rows)
	})

func init() {
	contactPointsCmd.Flags().BoolVar(&contactPointsIncludeDescendants, "include-descendants", false, "include descendant solids")
}

var staticBalanceCmd = newNodeCommand("static-balance", "Check whether a node is in static balance",
	func(cmd *cobra.Command, sup *supervisor.Supervisor, ref handle.NodeRef) error {
		v, ok := sup.GetStaticBalance(cmd.Context(), ref)
		if !ok {
			cmdutil.PrintFailure("static-balance")
			return nil
		}
		return printScalar("StaticBalance", cmdutil.BoolToYesNo(v))
	})

var resetPhysicsCmd = newNodeCommand("reset-physics", "Reset a node's physics state",
	func(cmd *cobra.Command, sup *supervisor.Supervisor, ref handle.NodeRef) error {
		if !sup.ResetPhysics(cmd.Context(), ref) {
			cmdutil.PrintFailure("reset-physics")
			return nil
		}
		cmdutil.PrintSuccess("physics reset")
		return nil
	})

var restartControllerCmd = newNodeCommand("restart-controller", "Restart a node's robot controller process",
	func(cmd *cobra.Command, sup *supervisor.Supervisor, ref handle.NodeRef) error {
		if !sup.RestartController(cmd.Context(), ref) {
			cmdutil.PrintFailure("restart-controller")
			return nil
		}
		cmdutil.PrintSuccess("controller restarted")
		return nil
	})

func parseVec6(s string) ([6]float64, error) {
	var v [6]float64
	n, err := fmt.Sscanf(s, "%g,%g,%g,%g,%g,%g", &v[0], &v[1], &v[2], &v[3], &v[4], &v[5])
	if err != nil || n != 6 {
		return v, fmt.Errorf("expected 6 comma-separated values, got %q", s)
	}
	return v, nil
}
