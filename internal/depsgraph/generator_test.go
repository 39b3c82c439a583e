package depsgraph

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arnavsurve/xcgen/internal/model"
	"github.com/arnavsurve/xcgen/internal/services"
)

type fakeLoader struct {
	infos map[string]PackageInfo
}

func (f fakeLoader) Load(folder string) (PackageInfo, error) {
	name := filepath.Base(folder)
	info, ok := f.infos[name]
	if !ok {
		return PackageInfo{}, nil
	}
	return info, nil
}

func writeWorkspaceState(t *testing.T, dir string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "workspace-state.json"), []byte(`{
  "object": {
    "dependencies": [
      {"packageRef": {"identity": "swift-log", "kind": "remote"}}
    ]
  }
}`), 0o644))
}

func TestGenerateSynthesizesExternalProject(t *testing.T) {
	stateDir := t.TempDir()
	checkoutsDir := t.TempDir()
	artifactsDir := t.TempDir()
	writeWorkspaceState(t, stateDir)

	loader := fakeLoader{infos: map[string]PackageInfo{
		"swift-log": {
			Platforms: []PlatformEntry{{Name: "ios", MinVersion: "13.0"}},
			Products: []PackageProduct{
				{Name: "Logging", Kind: ProductKindAutomatic, Targets: []string{"Logging"}},
			},
			Targets: []PackageTarget{
				{Name: "Logging", Kind: PackageTargetRegular, Path: "Sources/Logging"},
			},
		},
	}}

	g := NewGenerator(services.Default(), loader, []model.Platform{model.PlatformIOS}, nil)
	graph, err := g.Generate(stateDir, checkoutsDir, artifactsDir)
	require.NoError(t, err)

	folder := filepath.Join(checkoutsDir, "swift-log")
	proj, ok := graph.ExternalProjects[folder]
	require.True(t, ok)
	require.Equal(t, "swift-log", proj.Name)
	require.Len(t, proj.Targets, 1)
	require.Equal(t, model.PlatformIOS, proj.Targets[0].Platform)

	deps, ok := graph.ExternalDependencies["Logging"]
	require.True(t, ok)
	require.Len(t, deps, 1)
	require.Equal(t, model.DependencyProject, deps[0].Kind)
}

func TestGenerateSkipsNonRegularTargets(t *testing.T) {
	stateDir := t.TempDir()
	checkoutsDir := t.TempDir()
	artifactsDir := t.TempDir()
	writeWorkspaceState(t, stateDir)

	loader := fakeLoader{infos: map[string]PackageInfo{
		"swift-log": {
			Platforms: []PlatformEntry{{Name: "ios", MinVersion: "13.0"}},
			Targets: []PackageTarget{
				{Name: "LoggingTests", Kind: PackageTargetTest, Path: "Tests/LoggingTests"},
			},
		},
	}}

	g := NewGenerator(services.Default(), loader, []model.Platform{model.PlatformIOS}, nil)
	graph, err := g.Generate(stateDir, checkoutsDir, artifactsDir)
	require.NoError(t, err)

	folder := filepath.Join(checkoutsDir, "swift-log")
	proj := graph.ExternalProjects[folder]
	require.Empty(t, proj.Targets)
}

func TestGenerateFailsOnUnsupportedSetting(t *testing.T) {
	stateDir := t.TempDir()
	checkoutsDir := t.TempDir()
	artifactsDir := t.TempDir()
	writeWorkspaceState(t, stateDir)

	loader := fakeLoader{infos: map[string]PackageInfo{
		"swift-log": {
			Platforms: []PlatformEntry{{Name: "ios", MinVersion: "13.0"}},
			Targets: []PackageTarget{
				{
					Name: "Logging",
					Kind: PackageTargetRegular,
					Path: "Sources/Logging",
					Settings: []SettingEntry{
						{Tool: "unknown", Name: "mystery", Value: "x"},
					},
				},
			},
		},
	}}

	g := NewGenerator(services.Default(), loader, []model.Platform{model.PlatformIOS}, nil)
	_, err := g.Generate(stateDir, checkoutsDir, artifactsDir)
	require.Error(t, err)
}

func TestResolveExternalOnlyReportsProjectKindWithManifest(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Project.yml"), []byte("name: X\ntargets: []\n"), 0o644))

	g := &DependenciesGraph{
		ExternalDependencies: map[string][]model.Dependency{
			"HasManifest": {model.ProjectDependency("T", dir)},
			"NoManifest":  {model.ProjectDependency("T", t.TempDir())},
		},
	}

	path, ok := g.ResolveExternal("HasManifest")
	require.True(t, ok)
	require.Equal(t, dir, path)

	_, ok = g.ResolveExternal("NoManifest")
	require.False(t, ok)
}
