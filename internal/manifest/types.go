// Package manifest holds the on-disk manifest shapes (spec.md §4.B) and
// the loaders that turn a manifest file into a typed manifest value.
// Parsing is value-level only — no code execution inside the trust
// boundary (spec.md §4.B) — via gopkg.in/yaml.v3.
package manifest

// Kind enumerates the manifest file kinds manifests_at reports.
type Kind string

const (
	KindProject  Kind = "project"
	KindWorkspace Kind = "workspace"
	KindConfig   Kind = "config"
	KindTemplate Kind = "template"
)

// Project mirrors Project.yml's shape.
type Project struct {
	Name                                string              `yaml:"name"`
	OrganizationName                    string              `yaml:"organization_name,omitempty"`
	Targets                             []Target            `yaml:"targets"`
	Schemes                             []Scheme            `yaml:"schemes,omitempty"`
	Settings                            Settings            `yaml:"settings,omitempty"`
	AdditionalFiles                     []FileElement       `yaml:"additional_files,omitempty"`
	ResourceSynthesizers                []string            `yaml:"resource_synthesizers,omitempty"`
	DefaultDebugBuildConfigurationName string              `yaml:"default_debug_build_configuration_name,omitempty"`
}

// FileElement is a glob pattern or folder reference declared in
// additional_files.
type FileElement struct {
	Glob            string `yaml:"glob,omitempty"`
	FolderReference string `yaml:"folder_reference,omitempty"`
}

// Target mirrors one entry of Project.targets.
type Target struct {
	Name             string            `yaml:"name"`
	Platform         string            `yaml:"platform"`
	Product          string            `yaml:"product"`
	BundleID         string            `yaml:"bundle_id"`
	DeploymentTarget string            `yaml:"deployment_target,omitempty"`
	InfoPlist        InfoPlist         `yaml:"info_plist,omitempty"`
	Entitlements     string            `yaml:"entitlements,omitempty"`
	Sources          []string          `yaml:"sources,omitempty"`
	Resources        ResourceList      `yaml:"resources,omitempty"`
	Headers          *Headers          `yaml:"headers,omitempty"`
	Dependencies     []Dependency      `yaml:"dependencies,omitempty"`
	Settings         Settings          `yaml:"settings,omitempty"`
	Environment      map[string]string `yaml:"environment,omitempty"`
	LaunchArguments  []string          `yaml:"launch_arguments,omitempty"`
	CoreDataModels   []CoreDataModel   `yaml:"core_data_models,omitempty"`
	Actions          Actions           `yaml:"actions,omitempty"`
}

// InfoPlist is either {path: "..."} or {dictionary: {...}}.
type InfoPlist struct {
	Path       string         `yaml:"path,omitempty"`
	Dictionary map[string]any `yaml:"dictionary,omitempty"`
}

// ResourceList is a glob list plus excludes.
type ResourceList struct {
	Include []string `yaml:"include,omitempty"`
	Exclude []string `yaml:"exclude,omitempty"`
}

// Headers groups the public/private/project header glob buckets.
type Headers struct {
	Public  string `yaml:"public,omitempty"`
	Private string `yaml:"private,omitempty"`
	Project string `yaml:"project,omitempty"`
}

// CoreDataModel mirrors one core_data_models entry.
type CoreDataModel struct {
	Path           string `yaml:"path"`
	CurrentVersion string `yaml:"current_version,omitempty"`
}

// ScriptAction mirrors one pre_actions/post_actions entry.
type ScriptAction struct {
	Name                 string   `yaml:"name"`
	Script               string   `yaml:"script"`
	InputPaths           []string `yaml:"input_paths,omitempty"`
	OutputPaths          []string `yaml:"output_paths,omitempty"`
	ShowEnvVarsInLog     bool     `yaml:"show_env_vars_in_log,omitempty"`
}

// Actions groups a target's pre/post build scripts.
type Actions struct {
	Pre  []ScriptAction `yaml:"pre,omitempty"`
	Post []ScriptAction `yaml:"post,omitempty"`
}

// Dependency mirrors one tagged dependency entry, exactly one of whose
// kind-specific fields is populated (spec.md §3).
type Dependency struct {
	Target         string `yaml:"target,omitempty"`
	Project        string `yaml:"project,omitempty"`
	ProjectPath    string `yaml:"path,omitempty"`
	Framework      string `yaml:"framework,omitempty"`
	XCFramework    string `yaml:"xcframework,omitempty"`
	Library        string `yaml:"library,omitempty"`
	PublicHeaders  string `yaml:"public_headers,omitempty"`
	SwiftModuleMap string `yaml:"swift_module_map,omitempty"`
	SDK            string `yaml:"sdk,omitempty"`
	SDKStatus      string `yaml:"status,omitempty"`
	PackageProduct string `yaml:"package_product,omitempty"`
	Cocoapods      string `yaml:"cocoapods,omitempty"`
	External       string `yaml:"external,omitempty"`
}

// Settings mirrors the base/configurations shape.
type Settings struct {
	Base           map[string]any             `yaml:"base,omitempty"`
	Configurations map[string]ConfigurationDef `yaml:"configurations,omitempty"`
}

// ConfigurationDef mirrors one configurations entry.
type ConfigurationDef struct {
	Variant  string         `yaml:"variant,omitempty"`
	Settings map[string]any `yaml:"settings,omitempty"`
	XCConfig string         `yaml:"xcconfig,omitempty"`
}

// Scheme mirrors one Project.schemes / Workspace.schemes entry.
type Scheme struct {
	Name   string `yaml:"name"`
	Shared *bool  `yaml:"shared,omitempty"`
	// BuildTargets/TestTargets/RunTarget reference targets by
	// "project_path:target_name" (workspace scope) or bare target name
	// (project scope, implying the owning project's path).
	BuildTargets []string `yaml:"build_targets,omitempty"`
	TestTargets  []string `yaml:"test_targets,omitempty"`
	RunTarget    string   `yaml:"run_target,omitempty"`
}

// Workspace mirrors Workspace.yml's shape.
type Workspace struct {
	Name            string        `yaml:"name"`
	Projects        []string      `yaml:"projects"`
	AdditionalFiles []FileElement `yaml:"additional_files,omitempty"`
	Schemes         []Scheme      `yaml:"schemes,omitempty"`
}

// Template mirrors Template.yml — a named macro-expansion dictionary
// consumed via Config's template_macros option.
type Template struct {
	Name   string         `yaml:"name"`
	Macros map[string]any `yaml:"macros,omitempty"`
}
