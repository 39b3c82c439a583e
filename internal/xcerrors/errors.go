// Package xcerrors defines the closed taxonomy of fatal and recoverable
// errors the generation pipeline can produce. Every variant wraps enough
// context to render a user-facing message without a type switch at the
// call site; callers that need to branch on kind use errors.As.
package xcerrors

import "fmt"

// ManifestNotFound is fatal: a manifest file referenced by path does not
// exist or could not be loaded.
type ManifestNotFound struct {
	Path string
}

func (e *ManifestNotFound) Error() string {
	return fmt.Sprintf("manifest not found: %s", e.Path)
}

// FeatureNotYetSupported is fatal: the manifest requires behavior this
// generator does not implement (e.g. an unsupported platform).
type FeatureNotYetSupported struct {
	Description string
}

func (e *FeatureNotYetSupported) Error() string {
	return fmt.Sprintf("feature not yet supported: %s", e.Description)
}

// MissingFile is fatal: a path the manifest declares as required (an
// Info.plist, entitlements file, xcconfig) does not exist on disk.
type MissingFile struct {
	Path string
}

func (e *MissingFile) Error() string {
	return fmt.Sprintf("missing file: %s", e.Path)
}

// NonExistentGlobDirectory is fatal: the longest non-wildcard prefix of a
// glob pattern does not resolve to an existing directory.
type NonExistentGlobDirectory struct {
	Pattern      string
	ResolvedRoot string
}

func (e *NonExistentGlobDirectory) Error() string {
	return fmt.Sprintf("non-existent directory %q resolved from pattern %q", e.ResolvedRoot, e.Pattern)
}

// NoFilesMatchGlob is recoverable: downgraded to a warning, the glob
// yields zero files.
type NoFilesMatchGlob struct {
	Pattern string
}

func (e *NoFilesMatchGlob) Error() string {
	return fmt.Sprintf("No files found at: %s", e.Pattern)
}

// GlobPointsToDirectory is recoverable: a file glob pattern resolved to a
// directory rather than files.
type GlobPointsToDirectory struct {
	Path string
}

func (e *GlobPointsToDirectory) Error() string {
	return fmt.Sprintf("%s is a directory, try using: '%s/**' to list its files", e.Path, e.Path)
}

// FolderReferenceNotDirectory is recoverable: a folder-reference path
// exists but is not a directory.
type FolderReferenceNotDirectory struct {
	Path string
}

func (e *FolderReferenceNotDirectory) Error() string {
	return fmt.Sprintf("folder reference is not a directory: %s", e.Path)
}

// FolderReferenceMissing is recoverable: a folder-reference path does not
// exist at all.
type FolderReferenceMissing struct {
	Path string
}

func (e *FolderReferenceMissing) Error() string {
	return fmt.Sprintf("folder reference missing: %s", e.Path)
}

// CyclicDependency is fatal: the target dependency graph contains a cycle.
type CyclicDependency struct {
	Path string
}

func (e *CyclicDependency) Error() string {
	return fmt.Sprintf("cyclic dependency detected at: %s", e.Path)
}

// UnsupportedDependencyKind is fatal: workspace-state.json declared a
// package dependency kind this generator does not know how to resolve.
type UnsupportedDependencyKind struct {
	Kind string
}

func (e *UnsupportedDependencyKind) Error() string {
	return fmt.Sprintf("unsupported dependency kind: %s", e.Kind)
}

// UnknownByNameDependency is fatal: a package target's byName dependency
// could not be resolved against any target or product in the workspace.
type UnknownByNameDependency struct {
	Name string
}

func (e *UnknownByNameDependency) Error() string {
	return fmt.Sprintf("unknown by-name dependency: %s", e.Name)
}

// UnknownProductDependency is fatal: a package product dependency could
// not be resolved to a package in the workspace state.
type UnknownProductDependency struct {
	Product string
	Package string
}

func (e *UnknownProductDependency) Error() string {
	return fmt.Sprintf("unknown product dependency %q in package %q", e.Product, e.Package)
}

// UnknownPlatform is fatal: a platform name in a manifest or package
// description is not one this generator recognizes.
type UnknownPlatform struct {
	Name string
}

func (e *UnknownPlatform) Error() string {
	return fmt.Sprintf("unknown platform: %s", e.Name)
}

// NoSupportedPlatforms is fatal: the intersection of user-configured and
// package-declared platforms is empty.
type NoSupportedPlatforms struct {
	Name      string
	Package   string
	Configured []string
}

func (e *NoSupportedPlatforms) Error() string {
	return fmt.Sprintf("no supported platforms for %s in package %s (configured: %v)", e.Name, e.Package, e.Configured)
}

// UnsupportedSetting is fatal: a (tool, name) settings pair from a
// package description has no mapping to a build setting or dependency.
type UnsupportedSetting struct {
	Tool string
	Name string
}

func (e *UnsupportedSetting) Error() string {
	return fmt.Sprintf("unsupported setting: (%s, %s)", e.Tool, e.Name)
}

// CartfileNotFound and CarthageNotFound are fatal, raised only while
// resolving an optional Carthage-managed dependency install; xcgen itself
// never invokes Carthage (see SPEC_FULL.md, Non-goals) but the type is
// part of the closed taxonomy so callers that do shell out for it can
// report uniformly.
type CartfileNotFound struct{}

func (e *CartfileNotFound) Error() string { return "Cartfile not found" }

type CarthageNotFound struct{}

func (e *CarthageNotFound) Error() string { return "carthage executable not found" }
