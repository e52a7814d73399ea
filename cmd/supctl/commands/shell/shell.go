// Package shell implements supctl's interactive mode: a promptui-driven
// menu loop over the same Supervisor operations the scripted
// subcommands expose, useful for poking at the in-memory demo world
// without re-typing long flag invocations.
package shell

import (
	"context"
	"errors"
	"fmt"

	"github.com/marmos91/supercore/cmd/supctl/cmdutil"
	"github.com/marmos91/supercore/internal/cli/prompt"
	"github.com/marmos91/supercore/pkg/handle"
	"github.com/spf13/cobra"
)

// Cmd launches the interactive shell.
var Cmd = &cobra.Command{
	Use:   "shell",
	Short: "Interactive menu-driven session",
	Long: `Run an interactive loop: pick a node by DEF name, then an
action to perform on it, repeatedly, without reconnecting between
steps. Ctrl+C at any prompt returns to the previous menu.`,
	RunE: run,
}

var actions = []prompt.SelectOption{
	{Label: "Get position", Value: "position"},
	{Label: "Get orientation", Value: "orientation"},
	{Label: "Get center of mass", Value: "center-of-mass"},
	{Label: "Get velocity", Value: "velocity"},
	{Label: "Get static balance", Value: "static-balance"},
	{Label: "Reset physics", Value: "reset-physics"},
	{Label: "Pick a different node", Value: "reselect"},
	{Label: "Exit", Value: "exit"},
}

func run(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	sup := cmdutil.GetSupervisor()

	for {
		def, err := prompt.Input("DEF name to resolve (e.g. ROBOT)", "")
		if err != nil {
			return cmdutil.HandleAbort(err)
		}
		ref, ok := sup.ResolveNodeByDEF(ctx, def, handle.NodeRef{}, false)
		if !ok {
			fmt.Printf("no node DEF %q\n", def)
			continue
		}

		err = actionLoop(ctx, sup, ref)
		if err == errExit {
			return nil
		}
		if prompt.IsAborted(err) {
			continue
		}
		if err != nil {
			return cmdutil.HandleAbort(err)
		}
	}
}

func actionLoop(ctx context.Context, sup interface {
	GetPosition(context.Context, handle.NodeRef) [3]float64
	GetOrientation(context.Context, handle.NodeRef) [9]float64
	GetCenterOfMass(context.Context, handle.NodeRef) [3]float64
	GetVelocity(context.Context, handle.NodeRef) [6]float64
	GetStaticBalance(context.Context, handle.NodeRef) (bool, bool)
	ResetPhysics(context.Context, handle.NodeRef) bool
}, ref handle.NodeRef) error {
	for {
		choice, err := prompt.Select("Action", actions)
		if err != nil {
			return err
		}
		switch choice {
		case "position":
			fmt.Println(sup.GetPosition(ctx, ref))
		case "orientation":
			fmt.Println(sup.GetOrientation(ctx, ref))
		case "center-of-mass":
			fmt.Println(sup.GetCenterOfMass(ctx, ref))
		case "velocity":
			fmt.Println(sup.GetVelocity(ctx, ref))
		case "static-balance":
			v, ok := sup.GetStaticBalance(ctx, ref)
			fmt.Println(v, ok)
		case "reset-physics":
			fmt.Println(sup.ResetPhysics(ctx, ref))
		case "reselect":
			return nil
		case "exit":
			return errExit
		}
	}
}

var errExit = errors.New("shell: exit requested")
