package model

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arnavsurve/xcgen/internal/manifest"
)

func TestConvertProjectsParallelConvertsEveryPath(t *testing.T) {
	root := t.TempDir()
	appDir := filepath.Join(root, "App")
	sharedDir := filepath.Join(root, "Shared")
	require.NoError(t, os.MkdirAll(appDir, 0o755))
	require.NoError(t, os.MkdirAll(sharedDir, 0o755))

	require.NoError(t, os.WriteFile(filepath.Join(appDir, "Project.yml"), []byte(`
name: App
targets:
  - name: App
    platform: ios
    product: app
    bundle_id: com.example.App
    dependencies:
      - project: Shared
        path: ../Shared
`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(sharedDir, "Project.yml"), []byte(`
name: Shared
targets:
  - name: Shared
    platform: ios
    product: framework
    bundle_id: com.example.Shared
`), 0o644))

	loader, err := manifest.NewRecursiveLoader(0)
	require.NoError(t, err)

	loaded, err := loader.LoadProject(appDir, manifest.NoExternalDependencies)
	require.NoError(t, err)

	projects, err := ConvertProjectsParallel(loaded.SortedPaths(), loaded, newTestServices())
	require.NoError(t, err)
	require.Len(t, projects, 2)

	app, ok := projects[filepath.Clean(appDir)]
	require.True(t, ok)
	require.Equal(t, "App", app.Name)

	shared, ok := projects[filepath.Clean(sharedDir)]
	require.True(t, ok)
	require.Equal(t, "Shared", shared.Name)
}

func TestConvertProjectsParallelFailsFast(t *testing.T) {
	root := t.TempDir()
	appDir := filepath.Join(root, "App")
	require.NoError(t, os.MkdirAll(appDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(appDir, "Project.yml"), []byte(`
name: App
targets:
  - name: App
    platform: not-a-platform
    product: app
    bundle_id: com.example.App
`), 0o644))

	loader, err := manifest.NewRecursiveLoader(0)
	require.NoError(t, err)

	loaded, err := loader.LoadProject(appDir, manifest.NoExternalDependencies)
	require.NoError(t, err)

	_, err = ConvertProjectsParallel(loaded.SortedPaths(), loaded, newTestServices())
	require.Error(t, err)
}
