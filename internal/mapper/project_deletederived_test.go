package mapper

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arnavsurve/xcgen/internal/config"
	"github.com/arnavsurve/xcgen/internal/model"
	"github.com/arnavsurve/xcgen/internal/services"
)

func TestDeleteDerivedDirectoryEmitsDefaultPath(t *testing.T) {
	ctx := &Context{Config: config.Default(), Services: services.Default()}
	p := model.Project{Path: "/repo/App", Name: "App"}

	mapped, effects, err := DeleteDerivedDirectoryProjectMapper{}.Map(p, ctx)
	require.NoError(t, err)
	require.Equal(t, p, mapped)
	require.Len(t, effects, 1)
	require.Equal(t, SideEffectDeleteDirectory, effects[0].Kind)
	require.Equal(t, "/repo/App/.xcgen-derived", effects[0].Path)
}

func TestDeleteDerivedDirectoryUsesConfiguredDerivedDataPath(t *testing.T) {
	ctx := &Context{
		Config:   config.Default(),
		Services: services.Default(),
		DerivedDataPath: func(projectPath string) string {
			return projectPath + "/Build"
		},
	}
	p := model.Project{Path: "/repo/App", Name: "App"}

	_, effects, err := DeleteDerivedDirectoryProjectMapper{}.Map(p, ctx)
	require.NoError(t, err)
	require.Equal(t, "/repo/App/Build", effects[0].Path)
}
