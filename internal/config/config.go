// Package config models the Config manifest (spec.md §3, §4.J): the
// enumerated generation options, compatible IDE versions, and the
// optional cloud/cache/plugins sections.
package config

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"
)

// OptionKind enumerates the closed set of generation_options tags.
type OptionKind string

const (
	OptXcodeProjectName                       OptionKind = "xcode_project_name"
	OptOrganizationName                       OptionKind = "organization_name"
	OptDevelopmentRegion                      OptionKind = "development_region"
	OptDisableAutogeneratedSchemes             OptionKind = "disable_autogenerated_schemes"
	OptDisableSynthesizedResourceAccessors     OptionKind = "disable_synthesized_resource_accessors"
	OptDisableShowEnvironmentVarsInScriptPhases OptionKind = "disable_show_environment_vars_in_script_phases"
	OptEnableCodeCoverage                      OptionKind = "enable_code_coverage"
	OptResolveDependenciesWithSystemSCM         OptionKind = "resolve_dependencies_with_system_scm"
	OptDisablePackageVersionLocking             OptionKind = "disable_package_version_locking"
	OptTemplateMacros                          OptionKind = "template_macros"
	OptSwiftToolsVersion                       OptionKind = "swift_tools_version"

	// OptGenerateManifestTarget is not part of spec.md §3's enumerated
	// closed set; it resolves spec.md §8 S1's "legacy manifest-project
	// target" scenario, which the base spec only ever describes through a
	// test scenario, never through the option catalog. Documented as a
	// decided Open Question in DESIGN.md.
	OptGenerateManifestTarget OptionKind = "generate_manifest_target"
)

// Option is one entry in the generation_options list. Value is empty for
// boolean-flag options (disable_*, enable_code_coverage,
// resolve_dependencies_with_system_scm, disable_package_version_locking).
type Option struct {
	Kind  OptionKind
	Value string
}

// CloudOption enumerates the cloud.options closed set.
type CloudOption string

const (
	CloudOptionInsights CloudOption = "insights"
)

// Cloud is the optional cloud integration block.
type Cloud struct {
	URL       string
	ProjectID string
	Options   map[CloudOption]struct{}
}

// Cache is the optional remote cache block; its shape beyond presence is
// opaque to the core (spec.md treats the cache storage's interaction as
// an external collaborator).
type Cache struct {
	Enabled bool
}

// Config is the generation-option manifest.
type Config struct {
	Options               []Option
	CompatibleIDEVersions []string
	Cloud                 *Cloud
	CacheConfig            *Cache
	Plugins               []string
}

// Default returns an empty-options Config with no cloud/cache and no IDE
// version restriction (spec.md §4.J).
func Default() *Config {
	return &Config{}
}

// yamlConfig mirrors the on-disk shape; parsing is value-level only, no
// code execution, per spec.md §4.B.
type yamlConfig struct {
	GenerationOptions     []yamlOption `yaml:"generation_options"`
	CompatibleIDEVersions []string     `yaml:"compatible_ide_versions"`
	Cloud                 *yamlCloud   `yaml:"cloud"`
	Cache                 *yamlCache   `yaml:"cache"`
	Plugins               []string     `yaml:"plugins"`
}

type yamlOption struct {
	Kind  string `yaml:"kind"`
	Value string `yaml:"value"`
}

type yamlCloud struct {
	URL       string   `yaml:"url"`
	ProjectID string   `yaml:"project_id"`
	Options   []string `yaml:"options"`
}

type yamlCache struct {
	Enabled bool `yaml:"enabled"`
}

// Parse decodes a Config.yml document. Invalid option kinds are rejected;
// everything else follows the loose value-level parsing spec.md §4.B
// describes.
func Parse(data []byte) (*Config, error) {
	var raw yamlConfig
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg := &Config{
		CompatibleIDEVersions: raw.CompatibleIDEVersions,
		Plugins:               raw.Plugins,
	}

	for _, o := range raw.GenerationOptions {
		kind := OptionKind(o.Kind)
		switch kind {
		case OptXcodeProjectName, OptOrganizationName, OptDevelopmentRegion,
			OptDisableAutogeneratedSchemes, OptDisableSynthesizedResourceAccessors,
			OptDisableShowEnvironmentVarsInScriptPhases, OptEnableCodeCoverage,
			OptResolveDependenciesWithSystemSCM, OptDisablePackageVersionLocking,
			OptTemplateMacros, OptSwiftToolsVersion, OptGenerateManifestTarget:
			cfg.Options = append(cfg.Options, Option{Kind: kind, Value: o.Value})
		default:
			return nil, fmt.Errorf("unknown generation option: %s", o.Kind)
		}
	}

	if raw.Cloud != nil {
		opts := map[CloudOption]struct{}{}
		for _, o := range raw.Cloud.Options {
			opts[CloudOption(o)] = struct{}{}
		}
		cfg.Cloud = &Cloud{URL: raw.Cloud.URL, ProjectID: raw.Cloud.ProjectID, Options: opts}
	}
	if raw.Cache != nil {
		cfg.CacheConfig = &Cache{Enabled: raw.Cache.Enabled}
	}

	return cfg, nil
}

// firstValue returns the value of the first occurrence of kind among the
// options, honoring the invariant that later duplicates are silently
// discarded (spec.md §3).
func (c *Config) firstValue(kind OptionKind) (string, bool) {
	for _, o := range c.Options {
		if o.Kind == kind {
			return o.Value, true
		}
	}
	return "", false
}

// XcodeProjectNameTemplate returns the first xcode_project_name option's
// template string, if present.
func (c *Config) XcodeProjectNameTemplate() (string, bool) {
	return c.firstValue(OptXcodeProjectName)
}

// OrganizationName returns the first organization_name option's value, if
// present.
func (c *Config) OrganizationName() (string, bool) {
	return c.firstValue(OptOrganizationName)
}

// DevelopmentRegion returns the first development_region option's value.
func (c *Config) DevelopmentRegion() (string, bool) {
	return c.firstValue(OptDevelopmentRegion)
}

// SwiftToolsVersion returns the first swift_tools_version option's value.
func (c *Config) SwiftToolsVersion() (string, bool) {
	return c.firstValue(OptSwiftToolsVersion)
}

func (c *Config) hasFlag(kind OptionKind) bool {
	_, ok := c.firstValue(kind)
	return ok
}

func (c *Config) DisableAutogeneratedSchemes() bool { return c.hasFlag(OptDisableAutogeneratedSchemes) }
func (c *Config) DisableSynthesizedResourceAccessors() bool {
	return c.hasFlag(OptDisableSynthesizedResourceAccessors)
}
func (c *Config) DisableShowEnvironmentVarsInScriptPhases() bool {
	return c.hasFlag(OptDisableShowEnvironmentVarsInScriptPhases)
}
func (c *Config) EnableCodeCoverage() bool          { return c.hasFlag(OptEnableCodeCoverage) }
func (c *Config) ResolveDependenciesWithSystemSCM() bool {
	return c.hasFlag(OptResolveDependenciesWithSystemSCM)
}
func (c *Config) DisablePackageVersionLocking() bool { return c.hasFlag(OptDisablePackageVersionLocking) }

// ManifestTargetCompatEnabled reports whether the legacy synthetic
// manifest-project target (spec.md §8 S1) should be injected for
// zero-target projects.
func (c *Config) ManifestTargetCompatEnabled() bool { return c.hasFlag(OptGenerateManifestTarget) }

// IsIDEVersionCompatible reports whether ideVersion satisfies at least one
// of the configured compatible_ide_versions constraints. An empty
// CompatibleIDEVersions list means "all versions compatible". Constraint
// strings follow Masterminds/semver syntax (e.g. ">=15.0.0, <16.0.0").
func (c *Config) IsIDEVersionCompatible(ideVersion string) (bool, error) {
	if len(c.CompatibleIDEVersions) == 0 {
		return true, nil
	}
	v, err := semver.NewVersion(ideVersion)
	if err != nil {
		return false, fmt.Errorf("parse IDE version %q: %w", ideVersion, err)
	}
	for _, raw := range c.CompatibleIDEVersions {
		constraint, err := semver.NewConstraint(raw)
		if err != nil {
			return false, fmt.Errorf("parse compatible_ide_versions constraint %q: %w", raw, err)
		}
		if constraint.Check(v) {
			return true, nil
		}
	}
	return false, nil
}

// IsSwiftToolsVersionCompatible checks a package's declared
// swift-tools-version against this config's swift_tools_version floor, if
// one is set. No floor configured means any version is accepted.
func (c *Config) IsSwiftToolsVersionCompatible(packageVersion string) (bool, error) {
	floor, ok := c.SwiftToolsVersion()
	if !ok {
		return true, nil
	}
	floorVer, err := semver.NewVersion(floor)
	if err != nil {
		return false, fmt.Errorf("parse swift_tools_version %q: %w", floor, err)
	}
	pkgVer, err := semver.NewVersion(packageVersion)
	if err != nil {
		return false, fmt.Errorf("parse package swift-tools-version %q: %w", packageVersion, err)
	}
	return !pkgVer.LessThan(floorVer), nil
}
