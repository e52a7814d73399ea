// Package commands implements the CLI commands for supctl, the
// demonstration client for the supervisor client core.
package commands

import (
	"os"

	"github.com/marmos91/supercore/cmd/supctl/cmdutil"
	animationcmd "github.com/marmos91/supercore/cmd/supctl/commands/animation"
	fieldcmd "github.com/marmos91/supercore/cmd/supctl/commands/field"
	labelcmd "github.com/marmos91/supercore/cmd/supctl/commands/label"
	moviecmd "github.com/marmos91/supercore/cmd/supctl/commands/movie"
	nodecmd "github.com/marmos91/supercore/cmd/supctl/commands/node"
	sessioncmd "github.com/marmos91/supercore/cmd/supctl/commands/session"
	shellcmd "github.com/marmos91/supercore/cmd/supctl/commands/shell"
	vrcmd "github.com/marmos91/supercore/cmd/supctl/commands/vr"
	"github.com/spf13/cobra"
)

var (
	// Version information injected at build time.
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "supctl",
	Short: "Supervisor client core - scene-graph introspection and control",
	Long: `supctl drives a pkg/supervisor.Supervisor against an
in-memory demonstration world (pkg/simtransport), exercising every
operation the supervisor client core exposes: node resolution, typed
field get/set/import/remove, one-shot physics queries and actuators,
and session-wide simulation control.

There is no real Webots connection behind this binary — it exists to
demonstrate and manually exercise the client core's wire protocol and
API surface end to end.

Use "supctl [command] --help" for more information about a command.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cmdutil.Flags.Output, _ = cmd.Flags().GetString("output")
		cmdutil.Flags.NoColor, _ = cmd.Flags().GetBool("no-color")
		cmdutil.Flags.Verbose, _ = cmd.Flags().GetBool("verbose")
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// GetRootCmd returns the root command for testing purposes.
func GetRootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	rootCmd.PersistentFlags().StringP("output", "o", "table", "Output format (table|json|yaml)")
	rootCmd.PersistentFlags().Bool("no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(nodecmd.Cmd)
	rootCmd.AddCommand(fieldcmd.Cmd)
	rootCmd.AddCommand(sessioncmd.Cmd)
	rootCmd.AddCommand(moviecmd.Cmd)
	rootCmd.AddCommand(animationcmd.Cmd)
	rootCmd.AddCommand(vrcmd.Cmd)
	rootCmd.AddCommand(labelcmd.Cmd)
	rootCmd.AddCommand(shellcmd.Cmd)
	rootCmd.AddCommand(completionCmd)

	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

// PrintErr prints an error message to stderr.
func PrintErr(format string, args ...any) {
	rootCmd.PrintErrf(format+"\n", args...)
}

// Exit prints an error and exits with code 1.
func Exit(format string, args ...any) {
	PrintErr(format, args...)
	os.Exit(1)
}
