package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arnavsurve/xcgen/internal/pathglob"
)

func TestRecursiveLoaderFollowsProjectDependencies(t *testing.T) {
	root := t.TempDir()
	appDir := filepath.Join(root, "App")
	sharedDir := filepath.Join(root, "Shared")
	require.NoError(t, os.MkdirAll(appDir, 0o755))
	require.NoError(t, os.MkdirAll(sharedDir, 0o755))

	writeFile(t, appDir, "Project.yml", `
name: App
targets:
  - name: App
    platform: ios
    product: application
    bundle_id: com.example.App
    dependencies:
      - project: Shared
        path: ../Shared
`)
	writeFile(t, sharedDir, "Project.yml", `
name: Shared
targets:
  - name: Shared
    platform: ios
    product: framework
    bundle_id: com.example.Shared
`)

	loader, err := NewRecursiveLoader(0)
	require.NoError(t, err)

	loaded, err := loader.LoadProject(appDir, NoExternalDependencies)
	require.NoError(t, err)
	require.Equal(t, 2, loaded.Len())

	_, ok := loaded.Get(filepath.Clean(sharedDir))
	require.True(t, ok)
}

func TestRecursiveLoaderToleratesCycles(t *testing.T) {
	root := t.TempDir()
	a := filepath.Join(root, "A")
	b := filepath.Join(root, "B")
	require.NoError(t, os.MkdirAll(a, 0o755))
	require.NoError(t, os.MkdirAll(b, 0o755))

	writeFile(t, a, "Project.yml", `
name: A
targets:
  - name: A
    platform: ios
    product: framework
    bundle_id: com.example.A
    dependencies:
      - project: B
        path: ../B
`)
	writeFile(t, b, "Project.yml", `
name: B
targets:
  - name: B
    platform: ios
    product: framework
    bundle_id: com.example.B
    dependencies:
      - project: A
        path: ../A
`)

	loader, err := NewRecursiveLoader(0)
	require.NoError(t, err)

	loaded, err := loader.LoadProject(a, NoExternalDependencies)
	require.NoError(t, err)
	require.Equal(t, 2, loaded.Len())
}

func TestRecursiveLoaderLoadWorkspaceExpandsRecursiveGlobPattern(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "Workspace.yml"), []byte(`
name: WS
projects:
  - Projects/**
`), 0o644))

	appDir := filepath.Join(root, "Projects", "Nested", "App")
	require.NoError(t, os.MkdirAll(appDir, 0o755))
	writeFile(t, appDir, "Project.yml", `
name: App
targets:
  - name: App
    platform: ios
    product: application
    bundle_id: com.example.App
`)

	loader, err := NewRecursiveLoader(0)
	require.NoError(t, err)

	ws, loaded, err := loader.LoadWorkspace(root, NoExternalDependencies, pathglob.Glob)
	require.NoError(t, err)
	require.Equal(t, 1, loaded.Len())
	_, ok := loaded.Get(filepath.Clean(appDir))
	require.True(t, ok)
	require.NotNil(t, ws)
}

func TestLoadedProjectsSortedPaths(t *testing.T) {
	loaded := newLoadedProjects()
	loaded.set("/z", &Project{Name: "Z"})
	loaded.set("/a", &Project{Name: "A"})

	require.Equal(t, []string{"/a", "/z"}, loaded.SortedPaths())
}
