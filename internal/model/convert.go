package model

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/arnavsurve/xcgen/internal/manifest"
	"github.com/arnavsurve/xcgen/internal/pathglob"
	"github.com/arnavsurve/xcgen/internal/services"
	"github.com/arnavsurve/xcgen/internal/xcerrors"
)

// headerExtensions is the set of file extensions convertHeaders keeps;
// everything else (.m, .mm, .swift, ...) a header glob happens to match
// is filtered out (spec.md §8 S4).
var headerExtensions = map[string]struct{}{
	".h": {}, ".hpp": {}, ".hh": {},
}

// ConvertProject lowers a manifest.Project into a model.Project,
// resolving every relative path against dir and expanding glob patterns
// via internal/pathglob (spec.md §4.E).
func ConvertProject(dir string, m *manifest.Project, svc *services.Services) (Project, error) {
	p := Project{
		Path:             dir,
		Name:             m.Name,
		FileName:         m.Name,
		OrganizationName: m.OrganizationName,
		ResourceSynthesizers: m.ResourceSynthesizers,
		DefaultDebugBuildConfigurationName: m.DefaultDebugBuildConfigurationName,
	}
	if p.DefaultDebugBuildConfigurationName == "" {
		p.DefaultDebugBuildConfigurationName = "Debug"
	}

	settings, err := convertSettings(m.Settings)
	if err != nil {
		return Project{}, err
	}
	p.Settings = settings

	for _, f := range m.AdditionalFiles {
		elems, err := convertFileElement(dir, f, svc)
		if err != nil {
			return Project{}, err
		}
		p.AdditionalFiles = append(p.AdditionalFiles, elems...)
	}

	seenTargets := map[string]struct{}{}
	for _, t := range m.Targets {
		if _, dup := seenTargets[t.Name]; dup {
			return Project{}, fmt.Errorf("duplicate target name %q in project %q", t.Name, m.Name)
		}
		seenTargets[t.Name] = struct{}{}

		target, err := convertTarget(dir, t, svc)
		if err != nil {
			return Project{}, err
		}
		p.Targets = append(p.Targets, target)
	}

	for _, s := range m.Schemes {
		p.Schemes = append(p.Schemes, convertScheme(dir, s))
	}

	return p, nil
}

func convertTarget(dir string, t manifest.Target, svc *services.Services) (Target, error) {
	platform, err := convertPlatform(t.Platform)
	if err != nil {
		return Target{}, err
	}
	product, err := convertProduct(t.Product)
	if err != nil {
		return Target{}, err
	}

	target := Target{
		Name:             t.Name,
		Platform:         platform,
		Product:          product,
		BundleID:         t.BundleID,
		DeploymentTarget: t.DeploymentTarget,
		Environment:      t.Environment,
		LaunchArguments:  t.LaunchArguments,
	}

	if t.InfoPlist.Path != "" {
		target.InfoPlist = InfoPlist{Path: resolvePath(dir, t.InfoPlist.Path)}
	} else if t.InfoPlist.Dictionary != nil {
		target.InfoPlist = InfoPlist{Dictionary: t.InfoPlist.Dictionary}
	}
	if t.Entitlements != "" {
		target.Entitlements = resolvePath(dir, t.Entitlements)
	}

	resolvedSources, err := convertGlobList(dir, t.Sources, svc, "sources")
	if err != nil {
		return Target{}, err
	}
	target.Sources = t.Sources
	target.ResolvedSources = resolvedSources

	resolvedResources, err := convertResourceList(dir, t.Resources, svc)
	if err != nil {
		return Target{}, err
	}
	target.Resources = t.Resources.Include
	target.ResourceExcludes = t.Resources.Exclude
	target.ResolvedResources = resolvedResources

	if t.Headers != nil {
		pub, priv, proj, err := convertHeaders(dir, *t.Headers, svc)
		if err != nil {
			return Target{}, err
		}
		target.HeadersPublic = pub
		target.HeadersPrivate = priv
		target.HeadersProject = proj
	}

	for _, d := range t.Dependencies {
		dep, err := convertDependency(dir, d)
		if err != nil {
			return Target{}, err
		}
		target.Dependencies = append(target.Dependencies, dep)
	}

	if len(t.Settings.Base) > 0 || len(t.Settings.Configurations) > 0 {
		s, err := convertSettings(t.Settings)
		if err != nil {
			return Target{}, err
		}
		target.Settings = &s
	}

	for _, cdm := range t.CoreDataModels {
		target.CoreDataModels = append(target.CoreDataModels, CoreDataModel{
			Path:           resolvePath(dir, cdm.Path),
			CurrentVersion: cdm.CurrentVersion,
		})
	}

	target.Actions = Actions{
		PreActions:  convertScriptActions(t.Actions.Pre),
		PostActions: convertScriptActions(t.Actions.Post),
	}

	return target, nil
}

func convertScriptActions(in []manifest.ScriptAction) []ScriptAction {
	out := make([]ScriptAction, 0, len(in))
	for _, a := range in {
		out = append(out, ScriptAction{
			Name:             a.Name,
			Script:           a.Script,
			InputPaths:       a.InputPaths,
			OutputPaths:      a.OutputPaths,
			ShowEnvVarsInLog: a.ShowEnvVarsInLog,
		})
	}
	return out
}

func convertPlatform(raw string) (Platform, error) {
	switch strings.ToLower(raw) {
	case "ios":
		return PlatformIOS, nil
	case "macos":
		return PlatformMacOS, nil
	case "tvos":
		return PlatformTVOS, nil
	case "watchos":
		return PlatformWatchOS, nil
	default:
		return "", &xcerrors.FeatureNotYetSupported{Description: fmt.Sprintf("%s platform", raw)}
	}
}

func convertProduct(raw string) (Product, error) {
	switch raw {
	case "app":
		return ProductApp, nil
	case "framework":
		return ProductFramework, nil
	case "static_framework":
		return ProductStaticFramework, nil
	case "static_library":
		return ProductStaticLibrary, nil
	case "dynamic_library":
		return ProductDynamicLibrary, nil
	case "unit_tests":
		return ProductUnitTests, nil
	case "ui_tests":
		return ProductUITests, nil
	case "bundle":
		return ProductBundle, nil
	case "app_extension":
		return ProductAppExtension, nil
	case "messages_extension":
		return ProductMessagesExtension, nil
	case "watch2_app":
		return ProductWatch2App, nil
	case "watch2_extension":
		return ProductWatch2Extension, nil
	case "tv_top_shelf_extension":
		return ProductTVTopShelfExtension, nil
	case "sticker_pack_extension":
		return ProductStickerPackExtension, nil
	case "app_clip":
		return ProductAppClip, nil
	case "command_line_tool":
		return ProductCommandLineTool, nil
	default:
		return "", &xcerrors.FeatureNotYetSupported{Description: fmt.Sprintf("%s product type", raw)}
	}
}

func convertDependency(dir string, d manifest.Dependency) (Dependency, error) {
	switch {
	case d.Target != "":
		return TargetDependency(d.Target), nil
	case d.Project != "":
		return ProjectDependency(d.Project, resolvePath(dir, d.ProjectPath)), nil
	case d.Framework != "":
		return FrameworkDependency(resolvePath(dir, d.Framework)), nil
	case d.XCFramework != "":
		return XCFrameworkDependency(resolvePath(dir, d.XCFramework)), nil
	case d.Library != "":
		pubHeaders := d.PublicHeaders
		if pubHeaders != "" {
			pubHeaders = resolvePath(dir, pubHeaders)
		}
		return LibraryDependency(resolvePath(dir, d.Library), pubHeaders, d.SwiftModuleMap), nil
	case d.SDK != "":
		status := SDKStatusRequired
		if d.SDKStatus == string(SDKStatusOptional) {
			status = SDKStatusOptional
		}
		return SDKDependency(d.SDK, status), nil
	case d.PackageProduct != "":
		return PackageProductDependency(d.PackageProduct), nil
	case d.Cocoapods != "":
		return CocoapodsDependency(resolvePath(dir, d.Cocoapods)), nil
	case d.External != "":
		return ExternalDependency(d.External), nil
	default:
		return Dependency{}, fmt.Errorf("dependency entry has no recognized variant set")
	}
}

func convertScheme(dir string, s manifest.Scheme) Scheme {
	shared := true
	if s.Shared != nil {
		shared = *s.Shared
	}

	scheme := Scheme{Name: s.Name, Shared: shared}
	if len(s.BuildTargets) > 0 {
		var refs []TargetReference
		for _, t := range s.BuildTargets {
			refs = append(refs, resolveTargetRef(dir, t))
		}
		scheme.BuildAction = &BuildAction{Targets: refs}
	}
	if len(s.TestTargets) > 0 {
		var refs []TargetReference
		for _, t := range s.TestTargets {
			refs = append(refs, resolveTargetRef(dir, t))
		}
		scheme.TestAction = &TestAction{Targets: refs}
	}
	if s.RunTarget != "" {
		ref := resolveTargetRef(dir, s.RunTarget)
		scheme.RunAction = &RunAction{Executable: &ref}
	}
	return scheme
}

// resolveTargetRef parses "project_path:target_name" references used at
// workspace scope; a bare name implies the owning project's own path.
func resolveTargetRef(dir, ref string) TargetReference {
	if idx := strings.LastIndex(ref, ":"); idx >= 0 {
		return TargetReference{ProjectPath: resolvePath(dir, ref[:idx]), TargetName: ref[idx+1:]}
	}
	return TargetReference{ProjectPath: dir, TargetName: ref}
}

func resolvePath(dir, rel string) string {
	if filepath.IsAbs(rel) {
		return filepath.Clean(rel)
	}
	return filepath.Clean(filepath.Join(dir, rel))
}

func hasWildcard(pattern string) bool {
	return strings.ContainsAny(pattern, "*{}")
}

// convertGlobList expands a list of source/header-style glob patterns,
// reporting warnings through svc.Reporter for empty matches or
// directory-shaped literal paths, and failing fatally if a pattern's
// non-wildcard root does not exist on disk.
func convertGlobList(dir string, patterns []string, svc *services.Services, scope string) ([]string, error) {
	var out []string
	for _, pattern := range patterns {
		full := resolvePath(dir, pattern)

		if !hasWildcard(pattern) && pathglob.IsFolder(full) {
			if svc != nil && svc.Reporter != nil {
				svc.Reporter.Warn(scope, "%s", (&xcerrors.GlobPointsToDirectory{Path: full}).Error())
			}
			continue
		}

		matches, err := pathglob.ThrowingGlob(dir, pattern)
		if err != nil {
			return nil, err
		}
		if len(matches) == 0 {
			if svc != nil && svc.Reporter != nil {
				svc.Reporter.Warn(scope, "%s", (&xcerrors.NoFilesMatchGlob{Pattern: pattern}).Error())
			}
			continue
		}
		out = append(out, matches...)
	}
	sort.Strings(out)
	return out, nil
}

func convertResourceList(dir string, rl manifest.ResourceList, svc *services.Services) ([]string, error) {
	included, err := convertGlobList(dir, rl.Include, svc, "resources")
	if err != nil {
		return nil, err
	}
	if len(rl.Exclude) == 0 {
		return included, nil
	}

	excluded := map[string]struct{}{}
	for _, pattern := range rl.Exclude {
		matches, err := pathglob.Glob(dir, pattern)
		if err != nil {
			return nil, err
		}
		for _, m := range matches {
			excluded[m] = struct{}{}
		}
	}

	out := included[:0]
	for _, m := range included {
		if _, skip := excluded[m]; !skip {
			out = append(out, m)
		}
	}
	return out, nil
}

func convertHeaders(dir string, h manifest.Headers, svc *services.Services) (pub, priv, proj []string, err error) {
	if h.Public != "" {
		pub, err = convertHeaderGlob(dir, h.Public, svc)
		if err != nil {
			return nil, nil, nil, err
		}
	}
	if h.Private != "" {
		priv, err = convertHeaderGlob(dir, h.Private, svc)
		if err != nil {
			return nil, nil, nil, err
		}
	}
	if h.Project != "" {
		proj, err = convertHeaderGlob(dir, h.Project, svc)
		if err != nil {
			return nil, nil, nil, err
		}
	}
	return pub, priv, proj, nil
}

func convertHeaderGlob(dir, pattern string, svc *services.Services) ([]string, error) {
	matches, err := convertGlobList(dir, []string{pattern}, svc, "headers")
	if err != nil {
		return nil, err
	}
	out := matches[:0]
	for _, m := range matches {
		if _, ok := headerExtensions[strings.ToLower(filepath.Ext(m))]; ok {
			out = append(out, m)
		}
	}
	return out, nil
}

// convertFileElement lowers one additional_files entry. Unlike source and
// resource globs, a missing root or zero matches here is always a
// warning — never fatal — matching spec.md §4.E's description of
// additional_files handling specifically.
func convertFileElement(dir string, f manifest.FileElement, svc *services.Services) ([]FileElement, error) {
	if f.FolderReference != "" {
		full := resolvePath(dir, f.FolderReference)
		info, err := os.Lstat(full)
		switch {
		case err != nil:
			if svc != nil && svc.Reporter != nil {
				svc.Reporter.Warn("additional_files", "%s", (&xcerrors.FolderReferenceMissing{Path: full}).Error())
			}
			return nil, nil
		case !info.IsDir():
			if svc != nil && svc.Reporter != nil {
				svc.Reporter.Warn("additional_files", "%s", (&xcerrors.FolderReferenceNotDirectory{Path: full}).Error())
			}
			return nil, nil
		default:
			return []FileElement{{Kind: FileElementFolder, Path: full}}, nil
		}
	}

	if f.Glob == "" {
		return nil, nil
	}

	full := resolvePath(dir, f.Glob)
	if !hasWildcard(f.Glob) && pathglob.IsFolder(full) {
		if svc != nil && svc.Reporter != nil {
			svc.Reporter.Warn("additional_files", "%s", (&xcerrors.GlobPointsToDirectory{Path: full}).Error())
		}
		return nil, nil
	}

	matches, err := pathglob.Glob(dir, f.Glob)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		if svc != nil && svc.Reporter != nil {
			svc.Reporter.Warn("additional_files", "%s", (&xcerrors.NoFilesMatchGlob{Pattern: f.Glob}).Error())
		}
		return nil, nil
	}

	out := make([]FileElement, 0, len(matches))
	for _, m := range matches {
		out = append(out, FileElement{Kind: FileElementFile, Path: m})
	}
	return out, nil
}

func convertSettings(s manifest.Settings) (Settings, error) {
	out := NewSettings()
	for k, v := range s.Base {
		out.Base[k] = toSettingValue(v)
	}
	for name, def := range s.Configurations {
		variant := VariantDebug
		if strings.EqualFold(def.Variant, "release") {
			variant = VariantRelease
		}
		cfg := Configuration{Settings: map[string]SettingValue{}, XCConfig: def.XCConfig}
		for k, v := range def.Settings {
			cfg.Settings[k] = toSettingValue(v)
		}
		out.Configurations[BuildConfiguration{Name: name, Variant: variant}] = cfg
	}
	return out, nil
}

func toSettingValue(v any) SettingValue {
	switch val := v.(type) {
	case []any:
		strs := make([]string, 0, len(val))
		for _, e := range val {
			strs = append(strs, fmt.Sprintf("%v", e))
		}
		return ListSetting(strs)
	case []string:
		return ListSetting(val)
	default:
		return StringSetting(fmt.Sprintf("%v", val))
	}
}
