package mapper

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arnavsurve/xcgen/internal/config"
	"github.com/arnavsurve/xcgen/internal/model"
	"github.com/arnavsurve/xcgen/internal/services"
)

func TestAutogeneratedSchemesSynthesizesOnePerTarget(t *testing.T) {
	p := model.Project{
		Path: "/repo/App",
		Name: "App",
		Targets: []model.Target{
			{Name: "App", Product: model.ProductApp},
			{Name: "AppTests", Product: model.ProductUnitTests, Dependencies: []model.Dependency{model.TargetDependency("App")}},
		},
	}
	ctx := &Context{Config: config.Default(), Services: services.Default()}

	mapped, effects, err := AutogeneratedSchemesProjectMapper{}.Map(p, ctx)
	require.NoError(t, err)
	require.Empty(t, effects)
	require.Len(t, mapped.Schemes, 2)

	byName := map[string]model.Scheme{}
	for _, s := range mapped.Schemes {
		byName[s.Name] = s
	}

	appScheme := byName["App"]
	require.NotNil(t, appScheme.BuildAction)
	require.Len(t, appScheme.BuildAction.Targets, 1)
	require.NotNil(t, appScheme.TestAction)
	require.Len(t, appScheme.TestAction.Targets, 1)
	require.Equal(t, "AppTests", appScheme.TestAction.Targets[0].TargetName)
	require.NotNil(t, appScheme.RunAction)
	require.NotNil(t, appScheme.RunAction.Executable)
	require.Equal(t, "App", appScheme.RunAction.Executable.TargetName)
	require.NotNil(t, appScheme.ProfileAction)
	require.Equal(t, "Release", appScheme.ProfileAction.Configuration)
	require.True(t, appScheme.ProfileAction.ShouldUseLaunchSchemeArgsEnv)
	require.NotNil(t, appScheme.ProfileAction.Executable)
	require.Equal(t, "App", appScheme.ProfileAction.Executable.TargetName)
	require.False(t, appScheme.ProfileAction.EnableTestabilityWhenProfilingTests)

	testsScheme := byName["AppTests"]
	require.NotNil(t, testsScheme.ProfileAction)
	require.Nil(t, testsScheme.ProfileAction.Executable)
	require.True(t, testsScheme.ProfileAction.EnableTestabilityWhenProfilingTests)
}

func TestAutogeneratedSchemesSkipsUserDefinedSchemeName(t *testing.T) {
	p := model.Project{
		Path: "/repo/App",
		Name: "App",
		Targets: []model.Target{
			{Name: "App", Product: model.ProductApp},
		},
		Schemes: []model.Scheme{
			{Name: "App", Shared: true},
		},
	}
	ctx := &Context{Config: config.Default(), Services: services.Default()}

	mapped, _, err := AutogeneratedSchemesProjectMapper{}.Map(p, ctx)
	require.NoError(t, err)
	require.Len(t, mapped.Schemes, 1)
}

func TestAutogeneratedSchemesCoverageEnablesCodeCoverageTargets(t *testing.T) {
	cfg, err := config.Parse([]byte(`
generation_options:
  - kind: enable_code_coverage
`))
	require.NoError(t, err)

	p := model.Project{
		Path: "/repo/App",
		Name: "App",
		Targets: []model.Target{
			{Name: "App", Product: model.ProductApp},
		},
	}
	ctx := &Context{Config: cfg, Services: services.Default()}

	mapped, _, err := AutogeneratedSchemesProjectMapper{}.Map(p, ctx)
	require.NoError(t, err)
	require.Len(t, mapped.Schemes, 1)
	require.True(t, mapped.Schemes[0].TestAction.Coverage)
	require.Len(t, mapped.Schemes[0].TestAction.CodeCoverageTargets, 1)
}

func TestAutogeneratedSchemesAppExtensionBuildsAndRunsHostApp(t *testing.T) {
	p := model.Project{
		Path: "/repo/App",
		Name: "App",
		Targets: []model.Target{
			{Name: "App", Product: model.ProductApp, Dependencies: []model.Dependency{model.TargetDependency("Widget")}},
			{Name: "Widget", Product: model.ProductAppExtension},
		},
	}
	ctx := &Context{Config: config.Default(), Services: services.Default()}

	mapped, _, err := AutogeneratedSchemesProjectMapper{}.Map(p, ctx)
	require.NoError(t, err)

	var widgetScheme model.Scheme
	for _, s := range mapped.Schemes {
		if s.Name == "Widget" {
			widgetScheme = s
		}
	}
	require.Len(t, widgetScheme.BuildAction.Targets, 2)
	require.NotNil(t, widgetScheme.RunAction.Executable)
	require.Equal(t, "App", widgetScheme.RunAction.Executable.TargetName)
}
