package mapper

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arnavsurve/xcgen/internal/config"
	"github.com/arnavsurve/xcgen/internal/model"
	"github.com/arnavsurve/xcgen/internal/services"
)

func TestSynthesizedResourceInterfaceGeneratesAssetsAccessor(t *testing.T) {
	p := model.Project{
		Path:                  "/repo/App",
		Name:                  "App",
		ResourceSynthesizers:  []string{"assets"},
		Targets: []model.Target{
			{
				Name:              "App",
				ResolvedResources: []string{"Resources/Assets.xcassets", "Resources/Localizable.strings"},
			},
		},
	}
	ctx := &Context{Config: config.Default(), Services: services.Default()}

	mapped, effects, err := SynthesizedResourceInterfaceProjectMapper{}.Map(p, ctx)
	require.NoError(t, err)
	require.Len(t, effects, 1)
	require.Equal(t, SideEffectWriteFile, effects[0].Kind)
	require.Equal(t, "/repo/App/Derived/Sources/App+assets.generated.swift", effects[0].Path)
	require.Contains(t, string(effects[0].Contents), "enum AssetsResources")
	require.Contains(t, string(effects[0].Contents), `static let Assets = "Assets"`)

	require.Contains(t, mapped.Targets[0].ResolvedSources, "/repo/App/Derived/Sources/App+assets.generated.swift")
}

func TestSynthesizedResourceInterfaceEnabledForEverythingWithoutConfiguredSynthesizers(t *testing.T) {
	p := model.Project{
		Path: "/repo/App",
		Name: "App",
		Targets: []model.Target{
			{Name: "App", ResolvedResources: []string{"Resources/Assets.xcassets"}},
		},
	}
	ctx := &Context{Config: config.Default(), Services: services.Default()}

	mapped, effects, err := SynthesizedResourceInterfaceProjectMapper{}.Map(p, ctx)
	require.NoError(t, err)
	require.Len(t, effects, 1)
	require.Equal(t, SideEffectWriteFile, effects[0].Kind)
	require.Contains(t, string(effects[0].Contents), "enum AssetsResources")
	require.Contains(t, mapped.Targets[0].ResolvedSources, "/repo/App/Derived/Sources/App+assets.generated.swift")
}

func TestSynthesizedResourceInterfaceNoopWithoutMatchingResources(t *testing.T) {
	p := model.Project{
		Path: "/repo/App",
		Name: "App",
		Targets: []model.Target{
			{Name: "App", ResolvedResources: []string{"Resources/logo.png"}},
		},
	}
	ctx := &Context{Config: config.Default(), Services: services.Default()}

	mapped, effects, err := SynthesizedResourceInterfaceProjectMapper{}.Map(p, ctx)
	require.NoError(t, err)
	require.Empty(t, effects)
	require.Empty(t, mapped.Targets[0].ResolvedSources)
}

func TestSanitizeSwiftIdentifierStripsSeparatorsAndPrefixesDigits(t *testing.T) {
	require.Equal(t, "MyIcon", sanitizeSwiftIdentifier("My-Icon"))
	require.Equal(t, "_2x", sanitizeSwiftIdentifier("2x"))
	require.Equal(t, "resource", sanitizeSwiftIdentifier(""))
}
