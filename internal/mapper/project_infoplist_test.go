package mapper

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arnavsurve/xcgen/internal/config"
	"github.com/arnavsurve/xcgen/internal/model"
	"github.com/arnavsurve/xcgen/internal/services"
)

func TestGenerateInfoPlistWritesSynthesizedDictionary(t *testing.T) {
	p := model.Project{
		Path: "/repo/App",
		Name: "App",
		Targets: []model.Target{
			{
				Name: "App",
				InfoPlist: model.InfoPlist{
					Dictionary: map[string]any{
						"CFBundleIdentifier": "com.example.App",
						"UIRequiredDeviceCapabilities": []any{"armv7"},
					},
				},
			},
		},
	}
	ctx := &Context{Config: config.Default(), Services: services.Default()}

	mapped, effects, err := GenerateInfoPlistProjectMapper{}.Map(p, ctx)
	require.NoError(t, err)
	require.Len(t, effects, 1)
	require.Equal(t, SideEffectWriteFile, effects[0].Kind)
	require.Equal(t, "/repo/App/Derived/InfoPlists/App.plist", effects[0].Path)
	require.Contains(t, string(effects[0].Contents), "<key>CFBundleIdentifier</key>")
	require.Contains(t, string(effects[0].Contents), "<string>com.example.App</string>")
	require.Contains(t, string(effects[0].Contents), "<array>")

	require.Equal(t, "/repo/App/Derived/InfoPlists/App.plist", mapped.Targets[0].InfoPlist.Path)
	require.Nil(t, mapped.Targets[0].InfoPlist.Dictionary)
}

func TestGenerateInfoPlistSkipsExistingPathPlist(t *testing.T) {
	p := model.Project{
		Path: "/repo/App",
		Name: "App",
		Targets: []model.Target{
			{Name: "App", InfoPlist: model.InfoPlist{Path: "App/Info.plist"}},
		},
	}
	ctx := &Context{Config: config.Default(), Services: services.Default()}

	mapped, effects, err := GenerateInfoPlistProjectMapper{}.Map(p, ctx)
	require.NoError(t, err)
	require.Empty(t, effects)
	require.Equal(t, "App/Info.plist", mapped.Targets[0].InfoPlist.Path)
}

func TestDefaultInfoPlistProviderEscapesSpecialCharacters(t *testing.T) {
	out, err := DefaultInfoPlistProvider{}.Render(map[string]any{
		"Name": "Tom & Jerry <2>",
	})
	require.NoError(t, err)
	require.Contains(t, string(out), "Tom &amp; Jerry &lt;2&gt;")
}

func TestDefaultInfoPlistProviderRendersBooleansAndNestedDicts(t *testing.T) {
	out, err := DefaultInfoPlistProvider{}.Render(map[string]any{
		"Enabled": true,
		"Nested": map[string]any{
			"Inner": false,
		},
	})
	require.NoError(t, err)
	require.Contains(t, string(out), "<true/>")
	require.Contains(t, string(out), "<false/>")
}
