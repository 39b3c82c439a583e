package descriptor

import (
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/arnavsurve/xcgen/internal/graph"
	"github.com/arnavsurve/xcgen/internal/model"
)

func buildTestGraph(t *testing.T) *graph.Graph {
	t.Helper()
	projects := map[string]model.Project{
		"/repo/App": {
			Path:     "/repo/App",
			Name:     "App",
			FileName: "App",
			Targets: []model.Target{
				{Name: "App", Product: model.ProductApp},
				{Name: "AppTests", Product: model.ProductUnitTests},
			},
			Schemes: []model.Scheme{
				{
					Name:   "App",
					Shared: true,
					BuildAction: &model.BuildAction{
						Targets: []model.TargetReference{{ProjectPath: "/repo/App", TargetName: "App"}},
					},
					TestAction: &model.TestAction{
						Targets: []model.TargetReference{{ProjectPath: "/repo/App", TargetName: "AppTests"}},
					},
					RunAction: &model.RunAction{
						Executable: &model.TargetReference{ProjectPath: "/repo/App", TargetName: "App"},
					},
					ProfileAction: &model.ProfileAction{
						Executable:                   &model.TargetReference{ProjectPath: "/repo/App", TargetName: "App"},
						ShouldUseLaunchSchemeArgsEnv: true,
					},
				},
			},
		},
	}
	ws := model.Workspace{Path: "/repo", Name: "WS", Projects: []string{"/repo/App"}}
	g, err := graph.Load(ws, projects)
	require.NoError(t, err)
	return g
}

func TestGenerateProducesWorkspaceAndProjectPaths(t *testing.T) {
	g := buildTestGraph(t)

	wd, err := Generate(g)
	require.NoError(t, err)
	require.Equal(t, "/repo/WS.xcworkspace", wd.WorkspacePath)
	require.Len(t, wd.Projects, 1)
	require.Equal(t, "/repo/App/App.xcodeproj", wd.Projects[0].ContainerPath)
}

func TestGenerateRendersSchemeActionsWithResolvedReferences(t *testing.T) {
	g := buildTestGraph(t)

	wd, err := Generate(g)
	require.NoError(t, err)

	pd := wd.Projects[0]
	require.Len(t, pd.SharedSchemes, 1)
	require.Empty(t, pd.UserSchemes)

	sd := pd.SharedSchemes[0]
	require.Len(t, sd.BuildActionEntries, 1)
	require.Equal(t, "App", sd.BuildActionEntries[0].BlueprintName)
	require.Len(t, sd.TestTargets, 1)
	require.Equal(t, "AppTests", sd.TestTargets[0].BlueprintName)
	require.NotNil(t, sd.RunRunnable)
	require.Equal(t, "App", sd.RunRunnable.Reference.BlueprintName)
	require.Equal(t, "Release", sd.ArchiveConfiguration)
	require.True(t, sd.ArchiveRevealInOrganizer)
	require.Equal(t, "Release", sd.ProfileConfiguration)
	require.True(t, sd.ProfileShouldUseLaunchSchemeArgsEnv)
	require.False(t, sd.ProfileEnableTestabilityWhenProfiling)
	require.NotNil(t, sd.ProfileRunnable)
	require.Equal(t, "App", sd.ProfileRunnable.Reference.BlueprintName)
}

func TestGenerateIsDeterministicAcrossRepeatedRuns(t *testing.T) {
	g1 := buildTestGraph(t)
	g2 := buildTestGraph(t)

	wd1, err := Generate(g1)
	require.NoError(t, err)
	wd2, err := Generate(g2)
	require.NoError(t, err)

	if diff := cmp.Diff(wd1, wd2); diff != "" {
		t.Errorf("descriptor mismatch across repeated runs (-first +second):\n%s", diff)
	}

	id1 := stableIdentifier("/repo/App", "App")
	id2 := stableIdentifier("/repo/App", "App")
	require.Equal(t, id1, id2)
	require.Len(t, id1, 24)
}

func TestStableIdentifierDiffersByTargetName(t *testing.T) {
	require.NotEqual(t, stableIdentifier("/repo/App", "App"), stableIdentifier("/repo/App", "AppTests"))
}

// inverseParseProjects is the inverse parser spec.md §8's round-trip
// property calls for: it reads a generated descriptor tree back into the
// {path -> model.Project} shape a manifest loader would have produced,
// the way an on-disk consumer of the emitted .xcodeproj container does.
func inverseParseProjects(wd *WorkspaceDescriptor) map[string]model.Project {
	out := make(map[string]model.Project, len(wd.Projects))
	for _, pd := range wd.Projects {
		out[pd.Path] = pd.Project
	}
	return out
}

func targetNames(p model.Project) []string {
	names := make([]string, 0, len(p.Targets))
	for _, t := range p.Targets {
		names = append(names, t.Name)
	}
	sort.Strings(names)
	return names
}

func productKindsByTarget(p model.Project) map[string]model.Product {
	out := make(map[string]model.Product, len(p.Targets))
	for _, t := range p.Targets {
		out[t.Name] = t.Product
	}
	return out
}

func dependencyEdgesByTarget(p model.Project) map[string][]string {
	out := make(map[string][]string, len(p.Targets))
	for _, t := range p.Targets {
		edges := make([]string, 0, len(t.Dependencies))
		for _, d := range t.Dependencies {
			edges = append(edges, string(d.Kind)+":"+d.Name)
		}
		sort.Strings(edges)
		out[t.Name] = edges
	}
	return out
}

func TestGenerateRoundTripPreservesTargetNamesProductKindsAndDependencyEdges(t *testing.T) {
	original := model.Project{
		Path:     "/repo/App",
		Name:     "App",
		FileName: "App",
		Targets: []model.Target{
			{
				Name:         "App",
				Product:      model.ProductApp,
				Dependencies: []model.Dependency{model.TargetDependency("Shared")},
			},
			{
				Name:    "Shared",
				Product: model.ProductFramework,
			},
			{
				Name:         "AppTests",
				Product:      model.ProductUnitTests,
				Dependencies: []model.Dependency{model.TargetDependency("App")},
			},
			{
				Name:         "AppUITests",
				Product:      model.ProductUITests,
				Dependencies: []model.Dependency{model.TargetDependency("App")},
			},
		},
	}
	ws := model.Workspace{Path: "/repo", Name: "WS", Projects: []string{"/repo/App"}}
	g, err := graph.Load(ws, map[string]model.Project{"/repo/App": original})
	require.NoError(t, err)

	wd, err := Generate(g)
	require.NoError(t, err)

	roundTripped := inverseParseProjects(wd)
	reconstructed, ok := roundTripped["/repo/App"]
	require.True(t, ok)

	require.Equal(t, targetNames(original), targetNames(reconstructed))
	require.Equal(t, productKindsByTarget(original), productKindsByTarget(reconstructed))
	require.Equal(t, dependencyEdgesByTarget(original), dependencyEdgesByTarget(reconstructed))
}
