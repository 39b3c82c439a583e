// Package depsgraph implements the external-dependencies graph generator
// (spec.md §4.D): given a resolved package-manager workspace state, it
// synthesizes projects, targets, and linker edges the same shape as
// manifest-declared ones, so the rest of the pipeline never has to know a
// target came from a package manager rather than a Project.yml.
package depsgraph

import "github.com/arnavsurve/xcgen/internal/model"

// PackageRefKind tags how a dependency.packageRef resolves to an on-disk
// folder.
type PackageRefKind string

const (
	PackageRefRemote PackageRefKind = "remote"
	PackageRefLocal  PackageRefKind = "local"
)

// PackageRef is one entry decoded from workspace-state.json.
type PackageRef struct {
	Name string
	Kind PackageRefKind
	// Path is the declared absolute path for a "local" ref; empty for
	// "remote" refs, whose folder is derived from the checkouts tree.
	Path string
}

// PlatformEntry is one platform a package declares support for.
type PlatformEntry struct {
	Name       string
	MinVersion string
}

// ProductKind is the closed set of product kinds a package product can
// declare.
type ProductKind string

const (
	ProductKindStaticLibrary  ProductKind = "library_static"
	ProductKindAutomatic      ProductKind = "library_automatic"
	ProductKindDynamicLibrary ProductKind = "library_dynamic"
	ProductKindExecutable     ProductKind = "executable"
	ProductKindPlugin         ProductKind = "plugin"
	ProductKindTest           ProductKind = "test"
)

// PackageProduct mirrors one entry of PackageInfo.Products.
type PackageProduct struct {
	Name    string
	Kind    ProductKind
	Targets []string
}

// PackageTargetKind is the closed set of target kinds a package target
// declares. Only "regular" targets become synthetic model.Targets; the
// rest are skipped with a debug log (spec.md §4.D rule 4).
type PackageTargetKind string

const (
	PackageTargetRegular PackageTargetKind = "regular"
	PackageTargetTest    PackageTargetKind = "test"
	PackageTargetBinary  PackageTargetKind = "binary"
	PackageTargetPlugin  PackageTargetKind = "plugin"
	PackageTargetMacro   PackageTargetKind = "macro"
)

// PackageDependencyKind tags one PackageTarget dependency entry.
type PackageDependencyKind string

const (
	PackageDependencyTarget  PackageDependencyKind = "target"
	PackageDependencyProduct PackageDependencyKind = "product"
	PackageDependencyByName  PackageDependencyKind = "by_name"
)

// PackageTargetDependency is one dependency entry on a PackageTarget.
type PackageTargetDependency struct {
	Kind PackageDependencyKind
	Name string
	// Package names the owning package for a product-kind dependency;
	// empty when the product's owner must be resolved via product_to_package.
	Package string
}

// SettingEntry is one (tool, name, value) build-settings declaration from
// a package target, e.g. (c, define, "FOO=1").
type SettingEntry struct {
	Tool  string
	Name  string
	Value string
}

// PackageTarget mirrors one entry of PackageInfo.Targets.
type PackageTarget struct {
	Name         string
	Kind         PackageTargetKind
	Path         string // source root, relative to the package folder
	ExcludePaths []string
	Resources    []string
	Dependencies []PackageTargetDependency
	Settings     []SettingEntry
}

// PackageInfo is what the package-info loader collaborator returns for one
// resolved package folder (spec.md §4.D step 2).
type PackageInfo struct {
	Platforms []PlatformEntry
	Products  []PackageProduct
	Targets   []PackageTarget
}

// PackageInfoLoader is the external collaborator spec.md §4.D calls "the
// package-info loader" — it inspects a resolved package folder (e.g. by
// shelling out to the package manager's describe command) and reports its
// platforms/products/targets.
type PackageInfoLoader interface {
	Load(folder string) (PackageInfo, error)
}

// DependenciesGraph is the output of Generate (spec.md §4.D).
type DependenciesGraph struct {
	// ExternalDependencies maps a product name to the dependency edges a
	// consumer that depends on that product should carry.
	ExternalDependencies map[string][]model.Dependency
	// ExternalProjects maps a synthetic project's folder path to its
	// synthesized model.Project.
	ExternalProjects map[string]model.Project
}
