package cli

import (
	"context"

	"github.com/arnavsurve/xcgen/internal/process"
	"github.com/spf13/cobra"
)

var (
	verbose bool
	rootCmd *cobra.Command
)

func init() {
	rootCmd = &cobra.Command{
		Use:   "xcgen",
		Short: "Declarative Xcode project and workspace generation",
		Long: `xcgen turns a tree of YAML manifests into Xcode project, workspace, and
scheme files.

Common workflows:
  xcgen generate                 Generate a workspace from Workspace.yml
  xcgen generate --project-only  Generate a single project from Project.yml`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			process.SetGlobalVerbose(verbose)
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show underlying commands")
}

// Execute runs the root command with ctx, returning once it (and every
// subcommand) completes.
func Execute(ctx context.Context, version string) error {
	rootCmd.Version = version

	rootCmd.AddCommand(generateCmd())

	return rootCmd.ExecuteContext(ctx)
}

// Verbose reports whether the user passed --verbose.
func Verbose() bool { return verbose }
