package mapper

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arnavsurve/xcgen/internal/config"
	"github.com/arnavsurve/xcgen/internal/graph"
	"github.com/arnavsurve/xcgen/internal/model"
	"github.com/arnavsurve/xcgen/internal/services"
)

func buildTestGraph(t *testing.T) *graph.Graph {
	t.Helper()
	projects := map[string]model.Project{
		"/repo/App": {
			Path: "/repo/App",
			Name: "App",
			Targets: []model.Target{
				{Name: "App", Product: model.ProductApp, ResolvedSources: []string{"a.swift", "b.swift"}},
				{Name: "AppTests", Product: model.ProductUnitTests},
			},
		},
	}
	ws := model.Workspace{Path: "/repo", Name: "WS", Projects: []string{"/repo/App"}}
	g, err := graph.Load(ws, projects)
	require.NoError(t, err)
	return g
}

type fakeArtifactCache struct {
	hits map[string]string
}

func (f fakeArtifactCache) Lookup(fingerprint string) (string, bool) {
	path, ok := f.hits[fingerprint]
	return path, ok
}

func TestCacheHitPruningReplacesMatchingTarget(t *testing.T) {
	g := buildTestGraph(t)
	key := graph.NodeKey{ProjectPath: "/repo/App", TargetName: "App"}
	fp := defaultFingerprint(g, key)

	cache := fakeArtifactCache{hits: map[string]string{fp: "/cache/App.framework"}}
	ctx := &Context{Config: config.Default(), Services: services.Default()}

	effects, err := CacheHitPruningGraphMapper{Cache: cache}.Map(g, ctx)
	require.NoError(t, err)
	require.Empty(t, effects)

	target, ok := g.Target(key)
	require.True(t, ok)
	require.Equal(t, "/cache/App.framework", target.CachedArtifactPath)
}

func TestCacheHitPruningNoopWithoutCache(t *testing.T) {
	g := buildTestGraph(t)
	ctx := &Context{Config: config.Default(), Services: services.Default()}

	effects, err := CacheHitPruningGraphMapper{}.Map(g, ctx)
	require.NoError(t, err)
	require.Empty(t, effects)

	key := graph.NodeKey{ProjectPath: "/repo/App", TargetName: "App"}
	target, _ := g.Target(key)
	require.Empty(t, target.CachedArtifactPath)
}

func TestAutomationGraphMapperAddsProjectWideScheme(t *testing.T) {
	g := buildTestGraph(t)
	ctx := &Context{Config: config.Default(), Services: services.Default()}

	effects, err := AutomationGraphMapper{}.Map(g, ctx)
	require.NoError(t, err)
	require.Empty(t, effects)

	require.Len(t, g.Workspace.Schemes, 1)
	scheme := g.Workspace.Schemes[0]
	require.Equal(t, "WS-Project", scheme.Name)
	require.Len(t, scheme.BuildAction.Targets, 2)
	require.NotNil(t, scheme.TestAction)
	require.Len(t, scheme.TestAction.Targets, 1)
	require.Equal(t, "AppTests", scheme.TestAction.Targets[0].TargetName)
}

func TestRunGraphPipelineRunsMappersInOrder(t *testing.T) {
	g := buildTestGraph(t)
	ctx := &Context{Config: config.Default(), Services: services.Default()}

	key := graph.NodeKey{ProjectPath: "/repo/App", TargetName: "App"}
	fp := defaultFingerprint(g, key)
	cache := fakeArtifactCache{hits: map[string]string{fp: "/cache/App.framework"}}

	effects, err := RunGraphPipeline(g, ctx, []GraphMapper{
		CacheHitPruningGraphMapper{Cache: cache},
		AutomationGraphMapper{},
	})
	require.NoError(t, err)
	require.Empty(t, effects)

	target, _ := g.Target(key)
	require.Equal(t, "/cache/App.framework", target.CachedArtifactPath)
	require.Len(t, g.Workspace.Schemes, 1)
}
