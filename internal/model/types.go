// Package model holds the typed, post-conversion representation used
// throughout the core (spec.md §3): Workspace, Project, Target, Scheme,
// Settings, and the tagged Dependency variants. Values are immutable once
// constructed; mappers in internal/mapper return new instances rather
// than mutating in place.
package model

import "sort"

// Platform is one of the four Apple platforms spec.md §3 enumerates.
type Platform string

const (
	PlatformIOS      Platform = "ios"
	PlatformMacOS    Platform = "macos"
	PlatformTVOS     Platform = "tvos"
	PlatformWatchOS  Platform = "watchos"
)

// Product enumerates the closed set of buildable product kinds.
type Product string

const (
	ProductApp                 Product = "app"
	ProductFramework            Product = "framework"
	ProductStaticFramework      Product = "static_framework"
	ProductStaticLibrary        Product = "static_library"
	ProductDynamicLibrary       Product = "dynamic_library"
	ProductUnitTests            Product = "unit_tests"
	ProductUITests              Product = "ui_tests"
	ProductBundle                Product = "bundle"
	ProductAppExtension         Product = "app_extension"
	ProductMessagesExtension    Product = "messages_extension"
	ProductWatch2App            Product = "watch2_app"
	ProductWatch2Extension      Product = "watch2_extension"
	ProductTVTopShelfExtension  Product = "tv_top_shelf_extension"
	ProductStickerPackExtension Product = "sticker_pack_extension"
	ProductAppClip              Product = "app_clip"
	ProductCommandLineTool      Product = "command_line_tool"
)

// IsTestBundle reports whether the product is a unit- or UI-test bundle.
func (p Product) IsTestBundle() bool {
	return p == ProductUnitTests || p == ProductUITests
}

// IsRunnable reports whether the product can be the subject of a run
// action directly (apps, command-line tools). Extensions and libraries
// are not runnable on their own (spec.md §4.G rule 1).
func (p Product) IsRunnable() bool {
	switch p {
	case ProductApp, ProductCommandLineTool, ProductWatch2App, ProductAppClip:
		return true
	default:
		return false
	}
}

// CanHostTests reports whether this product type can act as a host
// application for a test bundle (spec.md §4.G: "a target whose product
// can host tests").
func (p Product) CanHostTests() bool {
	switch p {
	case ProductApp, ProductWatch2App:
		return true
	default:
		return false
	}
}

// SDKStatus is the required/optional tag on an sdk() dependency.
type SDKStatus string

const (
	SDKStatusRequired SDKStatus = "required"
	SDKStatusOptional SDKStatus = "optional"
)

// DependencyKind tags the Dependency sum type's active variant.
type DependencyKind string

const (
	DependencyTarget         DependencyKind = "target"
	DependencyProject        DependencyKind = "project"
	DependencyFramework      DependencyKind = "framework"
	DependencyXCFramework    DependencyKind = "xcframework"
	DependencyLibrary        DependencyKind = "library"
	DependencySDK            DependencyKind = "sdk"
	DependencyPackageProduct DependencyKind = "package_product"
	DependencyCocoapods      DependencyKind = "cocoapods"
	DependencyExternal       DependencyKind = "external"
)

// Dependency is the tagged sum type from spec.md §3. Exactly the field(s)
// relevant to Kind are populated; consumers must exhaustively switch on
// Kind (spec.md §9 design notes).
type Dependency struct {
	Kind DependencyKind

	// DependencyTarget / DependencyProject
	Name string
	Path string // also used by framework/xcframework/library/cocoapods

	// DependencyLibrary extras
	PublicHeaders   string
	SwiftModuleMap  string

	// DependencySDK
	SDKStatus SDKStatus

	// DependencyExternal
	ExternalName string
}

func TargetDependency(name string) Dependency {
	return Dependency{Kind: DependencyTarget, Name: name}
}

func ProjectDependency(targetName, path string) Dependency {
	return Dependency{Kind: DependencyProject, Name: targetName, Path: path}
}

func FrameworkDependency(path string) Dependency {
	return Dependency{Kind: DependencyFramework, Path: path}
}

func XCFrameworkDependency(path string) Dependency {
	return Dependency{Kind: DependencyXCFramework, Path: path}
}

func LibraryDependency(path, publicHeaders, swiftModuleMap string) Dependency {
	return Dependency{Kind: DependencyLibrary, Path: path, PublicHeaders: publicHeaders, SwiftModuleMap: swiftModuleMap}
}

func SDKDependency(name string, status SDKStatus) Dependency {
	return Dependency{Kind: DependencySDK, Name: name, SDKStatus: status}
}

func PackageProductDependency(name string) Dependency {
	return Dependency{Kind: DependencyPackageProduct, Name: name}
}

func CocoapodsDependency(path string) Dependency {
	return Dependency{Kind: DependencyCocoapods, Path: path}
}

func ExternalDependency(name string) Dependency {
	return Dependency{Kind: DependencyExternal, ExternalName: name}
}

// SettingValue is a single build setting's value: either a scalar string
// or an ordered list of strings (e.g. HEADER_SEARCH_PATHS).
type SettingValue struct {
	Scalar string
	List   []string
	IsList bool
}

func StringSetting(v string) SettingValue  { return SettingValue{Scalar: v} }
func ListSetting(v []string) SettingValue  { return SettingValue{List: v, IsList: true} }

// BuildVariant is debug or release.
type BuildVariant string

const (
	VariantDebug   BuildVariant = "debug"
	VariantRelease BuildVariant = "release"
)

// BuildConfiguration names one configuration slot (e.g. "Debug", "Beta").
type BuildConfiguration struct {
	Name    string
	Variant BuildVariant
}

// Configuration is the settings + optional xcconfig attached to one
// BuildConfiguration.
type Configuration struct {
	Settings map[string]SettingValue
	XCConfig string // path, empty if none
}

// Settings is the base dict plus the per-configuration overlay
// (spec.md §3). Configuration name is unique within a Settings value.
type Settings struct {
	Base           map[string]SettingValue
	Configurations map[BuildConfiguration]Configuration
}

// NewSettings returns an empty Settings value.
func NewSettings() Settings {
	return Settings{
		Base:           map[string]SettingValue{},
		Configurations: map[BuildConfiguration]Configuration{},
	}
}

// SortedConfigurations returns the Configurations map's keys sorted
// ascending by name, ties broken debug-before-release (spec.md §3, §8
// testable property 3).
func (s Settings) SortedConfigurations() []BuildConfiguration {
	keys := make([]BuildConfiguration, 0, len(s.Configurations))
	for k := range s.Configurations {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Name != keys[j].Name {
			return keys[i].Name < keys[j].Name
		}
		return variantRank(keys[i].Variant) < variantRank(keys[j].Variant)
	})
	return keys
}

func variantRank(v BuildVariant) int {
	if v == VariantDebug {
		return 0
	}
	return 1
}

// FileElementKind tags an additional_files entry.
type FileElementKind string

const (
	FileElementFile   FileElementKind = "file"
	FileElementFolder FileElementKind = "folder_reference"
)

// FileElement is one entry in a Project's or Workspace's additional_files
// list.
type FileElement struct {
	Kind FileElementKind
	Path string
}

// CoreDataModel describes a target's .xcdatamodeld reference.
type CoreDataModel struct {
	Path           string
	CurrentVersion string
}

// ScriptAction is a pre- or post-build run-script action.
type ScriptAction struct {
	Name           string
	Script         string
	InputPaths     []string
	OutputPaths    []string
	ShowEnvVarsInLog bool
}

// Actions groups a target's pre- and post-build script actions.
type Actions struct {
	PreActions  []ScriptAction
	PostActions []ScriptAction
}

// InfoPlist is either a path to an existing plist, or a dictionary to be
// synthesized by GenerateInfoPlistProjectMapper (spec.md §4.G rule 4).
type InfoPlist struct {
	Path       string // set when the manifest declares a path
	Dictionary map[string]any // set when the manifest declares inline content
}

func (p InfoPlist) IsSynthesized() bool {
	return p.Path == "" && p.Dictionary != nil
}

// Target is a single buildable product description (spec.md §3).
type Target struct {
	Name             string
	Platform         Platform
	Product          Product
	BundleID         string
	DeploymentTarget string // empty if unset

	InfoPlist    InfoPlist
	Entitlements string // path, empty if none

	Sources           []string // glob patterns, pre-expansion
	ResolvedSources   []string // expanded absolute paths
	Resources         []string
	ResourceExcludes  []string
	ResolvedResources []string

	HeadersPublic  []string
	HeadersPrivate []string
	HeadersProject []string

	Dependencies []Dependency
	Settings     *Settings // nil if target has no target-level overrides

	Environment     map[string]string
	LaunchArguments []string

	CoreDataModels []CoreDataModel
	Actions        Actions

	// CachedArtifactPath is set by the graph mapper pipeline's cache-hit
	// pruning step (spec.md §4.H): when non-empty, this target is a
	// pre-compiled stand-in and carries no buildable sources of its own.
	CachedArtifactPath string
}

// Scheme is a named set of actions targeting one or more targets
// (spec.md §3).
type Scheme struct {
	Name   string
	Shared bool

	BuildAction   *BuildAction
	TestAction    *TestAction
	RunAction     *RunAction
	ProfileAction *ProfileAction
	AnalyzeAction *AnalyzeAction
	ArchiveAction *ArchiveAction
}

// TargetReference names a target by (project_path, target_name).
type TargetReference struct {
	ProjectPath string
	TargetName  string
}

type BuildAction struct {
	Targets []TargetReference
}

type TestAction struct {
	Targets             []TargetReference
	Coverage            bool
	CodeCoverageTargets  []TargetReference
	Configuration        string
	DiagnosticsMainThreadChecker bool
}

type Arguments struct {
	Environment     map[string]string
	LaunchArguments []string
}

type RunAction struct {
	Executable                   *TargetReference // nil if nothing runnable
	Configuration                 string
	Arguments                     *Arguments
	DiagnosticsMainThreadChecker  bool
}

type ProfileAction struct {
	Executable                       *TargetReference
	Configuration                     string
	ShouldUseLaunchSchemeArgsEnv       bool
	EnableTestabilityWhenProfilingTests bool
}

type AnalyzeAction struct {
	Configuration string
}

type ArchiveAction struct {
	Configuration               string
	RevealArchiveInOrganizer bool
}

// Project is one .xcodeproj worth of content (spec.md §3).
type Project struct {
	Path                               string // directory containing the manifest
	Name                               string // logical name
	FileName                           string // display name, may differ after ProjectNameAndOrganizationMapper
	OrganizationName                   string
	Targets                            []Target
	Schemes                            []Scheme
	Settings                           Settings
	AdditionalFiles                    []FileElement
	ResourceSynthesizers               []string
	DefaultDebugBuildConfigurationName string
}

// TargetByName returns the target named name, if present.
func (p Project) TargetByName(name string) (Target, bool) {
	for _, t := range p.Targets {
		if t.Name == name {
			return t, true
		}
	}
	return Target{}, false
}

// Workspace is the top-level manifest (spec.md §3).
type Workspace struct {
	Path            string
	Name            string
	Projects        []string // ordered, deduped absolute directory paths
	AdditionalFiles []FileElement
	Schemes         []Scheme
}

// AppendProjectPath appends path to Projects if not already present,
// preserving first-occurrence order (spec.md §3 invariant).
func (w *Workspace) AppendProjectPath(path string) {
	for _, p := range w.Projects {
		if p == path {
			return
		}
	}
	w.Projects = append(w.Projects, path)
}
