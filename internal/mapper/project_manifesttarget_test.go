package mapper

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arnavsurve/xcgen/internal/config"
	"github.com/arnavsurve/xcgen/internal/model"
	"github.com/arnavsurve/xcgen/internal/services"
)

func TestManifestTargetMapperInjectsTargetWhenEnabled(t *testing.T) {
	cfg, err := config.Parse([]byte(`
generation_options:
  - kind: generate_manifest_target
`))
	require.NoError(t, err)

	ctx := &Context{Config: cfg, Services: services.Default()}
	p := model.Project{Name: "Lib"}

	mapped, effects, err := ManifestTargetProjectMapper{}.Map(p, ctx)
	require.NoError(t, err)
	require.Empty(t, effects)
	require.Len(t, mapped.Targets, 1)
	require.Equal(t, "Lib-Manifest", mapped.Targets[0].Name)
	require.Equal(t, model.PlatformMacOS, mapped.Targets[0].Platform)
	require.Equal(t, model.ProductBundle, mapped.Targets[0].Product)
}

func TestManifestTargetMapperNoopWhenDisabled(t *testing.T) {
	ctx := &Context{Config: config.Default(), Services: services.Default()}
	p := model.Project{Name: "Lib"}

	mapped, _, err := ManifestTargetProjectMapper{}.Map(p, ctx)
	require.NoError(t, err)
	require.Empty(t, mapped.Targets)
}

func TestManifestTargetMapperNoopWhenTargetsAlreadyPresent(t *testing.T) {
	cfg, err := config.Parse([]byte(`
generation_options:
  - kind: generate_manifest_target
`))
	require.NoError(t, err)

	ctx := &Context{Config: cfg, Services: services.Default()}
	p := model.Project{Name: "Lib", Targets: []model.Target{{Name: "Existing"}}}

	mapped, _, err := ManifestTargetProjectMapper{}.Map(p, ctx)
	require.NoError(t, err)
	require.Len(t, mapped.Targets, 1)
	require.Equal(t, "Existing", mapped.Targets[0].Name)
}
