package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseRejectsUnknownOption(t *testing.T) {
	_, err := Parse([]byte(`
generation_options:
  - kind: not_a_real_option
`))
	require.Error(t, err)
}

func TestParseFirstOccurrenceWins(t *testing.T) {
	cfg, err := Parse([]byte(`
generation_options:
  - kind: organization_name
    value: Acme
  - kind: organization_name
    value: Ignored
`))
	require.NoError(t, err)

	name, ok := cfg.OrganizationName()
	require.True(t, ok)
	require.Equal(t, "Acme", name)
}

func TestParseBooleanFlags(t *testing.T) {
	cfg, err := Parse([]byte(`
generation_options:
  - kind: disable_autogenerated_schemes
  - kind: enable_code_coverage
`))
	require.NoError(t, err)

	require.True(t, cfg.DisableAutogeneratedSchemes())
	require.True(t, cfg.EnableCodeCoverage())
	require.False(t, cfg.DisableSynthesizedResourceAccessors())
}

func TestParseCloudAndCache(t *testing.T) {
	cfg, err := Parse([]byte(`
cloud:
  url: https://cloud.example.com
  project_id: proj-1
  options: [insights]
cache:
  enabled: true
`))
	require.NoError(t, err)
	require.NotNil(t, cfg.Cloud)
	require.Equal(t, "proj-1", cfg.Cloud.ProjectID)
	_, ok := cfg.Cloud.Options[CloudOptionInsights]
	require.True(t, ok)
	require.NotNil(t, cfg.CacheConfig)
	require.True(t, cfg.CacheConfig.Enabled)
}

func TestIsIDEVersionCompatible(t *testing.T) {
	cfg, err := Parse([]byte(`
compatible_ide_versions: [">=15.0.0, <16.0.0"]
`))
	require.NoError(t, err)

	ok, err := cfg.IsIDEVersionCompatible("15.4.0")
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = cfg.IsIDEVersionCompatible("16.0.0")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestIsIDEVersionCompatibleNoConstraintAcceptsAnything(t *testing.T) {
	cfg := Default()
	ok, err := cfg.IsIDEVersionCompatible("1.0.0")
	require.NoError(t, err)
	require.True(t, ok)
}

func TestIsSwiftToolsVersionCompatible(t *testing.T) {
	cfg, err := Parse([]byte(`
generation_options:
  - kind: swift_tools_version
    value: "5.9.0"
`))
	require.NoError(t, err)

	ok, err := cfg.IsSwiftToolsVersionCompatible("5.10.0")
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = cfg.IsSwiftToolsVersionCompatible("5.8.0")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestManifestTargetCompatEnabled(t *testing.T) {
	cfg, err := Parse([]byte(`
generation_options:
  - kind: generate_manifest_target
`))
	require.NoError(t, err)
	require.True(t, cfg.ManifestTargetCompatEnabled())
	require.False(t, Default().ManifestTargetCompatEnabled())
}
