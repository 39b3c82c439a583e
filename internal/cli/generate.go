package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arnavsurve/xcgen/internal/generate"
	"github.com/arnavsurve/xcgen/internal/installer"
	"github.com/arnavsurve/xcgen/internal/model"
	"github.com/arnavsurve/xcgen/internal/services"
	"github.com/arnavsurve/xcgen/internal/ui"
)

func generateCmd() *cobra.Command {
	var (
		projectOnly bool
		path        string
		platforms   []string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate Xcode project and workspace files from manifests",
		Long: `generate reads a tree of YAML manifests rooted at --path (a Workspace.yml
directory, or a Project.yml directory when --project-only is set) and
produces the corresponding .xcodeproj / .xcworkspace descriptor tree.`,
		Example: `  xcgen generate
  xcgen generate --project-only --path ./App
  xcgen generate --platform ios --platform macos`,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := services.NewProduction(Verbose())
			if err != nil {
				return fmt.Errorf("initialize services: %w", err)
			}

			opts := generate.Options{
				Path:                path,
				ProjectOnly:         projectOnly,
				ConfiguredPlatforms: parsePlatforms(platforms),
				SystemSCMInstaller:  installer.NewSystemSCMInstaller(""),
			}

			renderer := ui.NewRenderer()
			renderer.StartSpinner("Generating %s", path)
			result, err := generate.Generate(svc, opts)
			renderer.StopSpinner(err == nil)
			if err != nil {
				return fmt.Errorf("generate: %w", err)
			}

			renderer.RenderGenerationSummary(summarize(result), warningStrings(result))
			return nil
		},
	}

	cmd.Flags().BoolVar(&projectOnly, "project-only", false, "Generate a single project without a surrounding workspace")
	cmd.Flags().StringVar(&path, "path", ".", "Root directory containing the manifest to generate from")
	cmd.Flags().StringSliceVar(&platforms, "platform", nil, "Platform(s) to resolve external dependencies for (ios, macos, tvos, watchos)")

	return cmd
}

func parsePlatforms(raw []string) []model.Platform {
	out := make([]model.Platform, 0, len(raw))
	for _, r := range raw {
		out = append(out, model.Platform(r))
	}
	return out
}

func summarize(result *generate.Result) []ui.ProjectSummary {
	if result == nil || result.Workspace == nil {
		return nil
	}
	summaries := make([]ui.ProjectSummary, 0, len(result.Workspace.Projects))
	for _, p := range result.Workspace.Projects {
		summaries = append(summaries, ui.ProjectSummary{
			Name:          p.Project.Name,
			ContainerPath: p.ContainerPath,
			TargetCount:   len(p.Project.Targets),
			SchemeCount:   len(p.SharedSchemes) + len(p.UserSchemes),
		})
	}
	return summaries
}

func warningStrings(result *generate.Result) []string {
	if result == nil {
		return nil
	}
	out := make([]string, 0, len(result.Warnings))
	for _, w := range result.Warnings {
		out = append(out, w.String())
	}
	return out
}
