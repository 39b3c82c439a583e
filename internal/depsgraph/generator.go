package depsgraph

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/arnavsurve/xcgen/internal/model"
	"github.com/arnavsurve/xcgen/internal/pathglob"
	"github.com/arnavsurve/xcgen/internal/services"
	"github.com/arnavsurve/xcgen/internal/xcerrors"
)

// Generator runs the external-dependencies graph algorithm of spec.md
// §4.D over one resolved package-manager workspace state.
type Generator struct {
	Services *services.Services
	Loader   PackageInfoLoader

	// ConfiguredPlatforms is the user-configured platform set every
	// synthetic target's platform is intersected against.
	ConfiguredPlatforms []model.Platform

	// ProductOverrides maps a package target name to a forced product
	// type, taking precedence over the kind derived from its product.
	ProductOverrides map[string]model.Product
}

// NewGenerator builds a Generator. ConfiguredPlatforms must be non-empty.
func NewGenerator(svc *services.Services, loader PackageInfoLoader, platforms []model.Platform, overrides map[string]model.Product) *Generator {
	if overrides == nil {
		overrides = map[string]model.Product{}
	}
	return &Generator{Services: svc, Loader: loader, ConfiguredPlatforms: platforms, ProductOverrides: overrides}
}

// Generate implements spec.md §4.D. stateDir holds workspace-state.json,
// checkoutsDir is the "remote" packages' checkout tree, artifactsDir is
// where binary-target xcframeworks live.
func (g *Generator) Generate(stateDir, checkoutsDir, artifactsDir string) (*DependenciesGraph, error) {
	data, err := g.Services.FS.ReadFile(filepath.Join(stateDir, "workspace-state.json"))
	if err != nil {
		return nil, fmt.Errorf("read workspace-state.json: %w", err)
	}

	refs, err := decodeWorkspaceState(data)
	if err != nil {
		return nil, err
	}
	sort.Slice(refs, func(i, j int) bool { return refs[i].Name < refs[j].Name })

	folders := make(map[string]string, len(refs))
	for _, ref := range refs {
		switch ref.Kind {
		case PackageRefRemote:
			folders[ref.Name] = filepath.Join(checkoutsDir, ref.Name)
		case PackageRefLocal:
			folders[ref.Name] = ref.Path
		default:
			return nil, &xcerrors.UnsupportedDependencyKind{Kind: string(ref.Kind)}
		}
	}

	names := make([]string, 0, len(folders))
	for name := range folders {
		names = append(names, name)
	}
	sort.Strings(names)

	infos := make(map[string]PackageInfo, len(names))
	for _, name := range names {
		info, err := g.Loader.Load(folders[name])
		if err != nil {
			return nil, fmt.Errorf("load package info for %s: %w", name, err)
		}
		infos[name] = info
	}

	productToPackage := map[string]string{}
	targetToFramework := map[string]string{}
	for _, name := range names {
		info := infos[name]
		for _, p := range info.Products {
			if existing, dup := productToPackage[p.Name]; dup && existing != name {
				g.Services.Reporter.Warn("depsgraph", "product %q is declared by both %q and %q; %q wins", p.Name, existing, name, name)
			}
			productToPackage[p.Name] = name
		}
		for _, t := range info.Targets {
			if t.Kind == PackageTargetBinary {
				targetToFramework[name+"/"+t.Name] = filepath.Join(artifactsDir, name, t.Name+".xcframework")
			}
		}
	}

	externalDeps := map[string][]model.Dependency{}
	for _, name := range names {
		info := infos[name]
		for _, p := range info.Products {
			var targets []model.Dependency
			for _, t := range p.Targets {
				targets = append(targets, model.ProjectDependency(t, folders[name]))
			}
			externalDeps[p.Name] = targets
		}
	}

	projects := map[string]model.Project{}
	for _, name := range names {
		info := infos[name]
		folder := folders[name]

		proj := model.Project{
			Path:                               folder,
			Name:                               name,
			FileName:                           name,
			DefaultDebugBuildConfigurationName: "Debug",
		}

		targetsByName := map[string]PackageTarget{}
		for _, t := range info.Targets {
			targetsByName[t.Name] = t
		}

		for _, t := range info.Targets {
			if t.Kind != PackageTargetRegular {
				g.Services.Logger.Sugar().Debugf("depsgraph: skipping non-regular target %s/%s (kind=%s)", name, t.Name, t.Kind)
				continue
			}

			target, skip, err := g.convertTarget(name, folder, t, info, targetsByName, productToPackage, targetToFramework, infos, folders)
			if err != nil {
				return nil, err
			}
			if skip {
				continue
			}
			proj.Targets = append(proj.Targets, target)
		}

		projects[folder] = proj
	}

	return &DependenciesGraph{ExternalDependencies: externalDeps, ExternalProjects: projects}, nil
}

func (g *Generator) convertTarget(
	pkgName, folder string,
	t PackageTarget,
	info PackageInfo,
	targetsByName map[string]PackageTarget,
	productToPackage map[string]string,
	targetToFramework map[string]string,
	infos map[string]PackageInfo,
	folders map[string]string,
) (model.Target, bool, error) {
	platform, err := g.resolvePlatform(t.Name, pkgName, info)
	if err != nil {
		return model.Target{}, false, err
	}
	deploymentTarget := deploymentTargetFor(info, platform)

	product, skip, err := g.resolveProduct(t.Name, info)
	if err != nil {
		return model.Target{}, false, err
	}
	if skip {
		return model.Target{}, true, nil
	}

	sourcePattern, resolvedSources, err := resolveSources(folder, t)
	if err != nil {
		return model.Target{}, false, err
	}

	resourcePatterns, resolvedResources, err := resolveResources(folder, t)
	if err != nil {
		return model.Target{}, false, err
	}

	deps, err := resolveDependencies(pkgName, t, targetsByName, productToPackage, targetToFramework, infos, folders)
	if err != nil {
		return model.Target{}, false, err
	}

	settings, sdkDeps, err := convertPackageSettings(t.Settings)
	if err != nil {
		return model.Target{}, false, err
	}
	deps = append(deps, sdkDeps...)

	return model.Target{
		Name:              t.Name,
		Platform:          platform,
		Product:           product,
		DeploymentTarget:  deploymentTarget,
		Sources:           sourcePattern,
		ResolvedSources:   resolvedSources,
		Resources:         resourcePatterns,
		ResolvedResources: resolvedResources,
		Dependencies:      deps,
		Settings:          &settings,
	}, false, nil
}

func (g *Generator) resolvePlatform(targetName, pkgName string, info PackageInfo) (model.Platform, error) {
	configured := map[model.Platform]struct{}{}
	for _, p := range g.ConfiguredPlatforms {
		configured[p] = struct{}{}
	}

	if len(info.Platforms) == 0 {
		return g.pickPlatform(targetName, pkgName, configured)
	}

	declared := map[model.Platform]struct{}{}
	for _, entry := range info.Platforms {
		if p, ok := parsePlatform(entry.Name); ok {
			declared[p] = struct{}{}
		}
	}

	intersection := map[model.Platform]struct{}{}
	for p := range configured {
		if _, ok := declared[p]; ok {
			intersection[p] = struct{}{}
		}
	}
	return g.pickPlatform(targetName, pkgName, intersection)
}

func (g *Generator) pickPlatform(targetName, pkgName string, set map[model.Platform]struct{}) (model.Platform, error) {
	if len(set) == 0 {
		var configured []string
		for _, p := range g.ConfiguredPlatforms {
			configured = append(configured, string(p))
		}
		return "", &xcerrors.NoSupportedPlatforms{Name: targetName, Package: pkgName, Configured: configured}
	}
	if _, ok := set[model.PlatformIOS]; ok {
		return model.PlatformIOS, nil
	}
	var sorted []string
	for p := range set {
		sorted = append(sorted, string(p))
	}
	sort.Strings(sorted)
	return model.Platform(sorted[0]), nil
}

func parsePlatform(name string) (model.Platform, bool) {
	switch strings.ToLower(name) {
	case "ios":
		return model.PlatformIOS, true
	case "macos":
		return model.PlatformMacOS, true
	case "tvos":
		return model.PlatformTVOS, true
	case "watchos":
		return model.PlatformWatchOS, true
	default:
		return "", false
	}
}

func deploymentTargetFor(info PackageInfo, platform model.Platform) string {
	for _, entry := range info.Platforms {
		if p, ok := parsePlatform(entry.Name); ok && p == platform {
			return entry.MinVersion
		}
	}
	return ""
}

func mapProductKind(k ProductKind) (model.Product, bool) {
	switch k {
	case ProductKindStaticLibrary, ProductKindAutomatic:
		return model.ProductStaticFramework, true
	case ProductKindDynamicLibrary:
		return model.ProductFramework, true
	case ProductKindExecutable, ProductKindPlugin, ProductKindTest:
		return "", false
	default:
		return model.ProductStaticFramework, true
	}
}

func findOwningProduct(info PackageInfo, targetName string) (PackageProduct, bool) {
	for _, p := range info.Products {
		for _, t := range p.Targets {
			if t == targetName {
				return p, true
			}
		}
	}
	return PackageProduct{}, false
}

func (g *Generator) resolveProduct(targetName string, info PackageInfo) (model.Product, bool, error) {
	if override, ok := g.ProductOverrides[targetName]; ok {
		return override, false, nil
	}
	if p, ok := findOwningProduct(info, targetName); ok {
		mapped, ok := mapProductKind(p.Kind)
		if !ok {
			return "", true, nil
		}
		return mapped, false, nil
	}
	return model.ProductStaticFramework, false, nil
}

func resolveSources(folder string, t PackageTarget) ([]string, []string, error) {
	pattern := filepath.ToSlash(filepath.Join(t.Path, "**"))
	matches, err := pathglob.Glob(folder, pattern)
	if err != nil {
		return nil, nil, err
	}

	if len(t.ExcludePaths) > 0 {
		excluded := map[string]struct{}{}
		for _, ex := range t.ExcludePaths {
			exPattern := filepath.ToSlash(filepath.Join(t.Path, ex))
			exMatches, err := pathglob.Glob(folder, exPattern)
			if err != nil {
				return nil, nil, err
			}
			for _, m := range exMatches {
				excluded[m] = struct{}{}
			}
		}
		filtered := matches[:0]
		for _, m := range matches {
			if _, skip := excluded[m]; !skip {
				filtered = append(filtered, m)
			}
		}
		matches = filtered
	}

	sort.Strings(matches)
	return []string{pattern}, matches, nil
}

func resolveResources(folder string, t PackageTarget) ([]string, []string, error) {
	var patterns, resolved []string
	for _, r := range t.Resources {
		pattern := r
		if filepath.Ext(r) == "" {
			pattern = filepath.ToSlash(filepath.Join(r, "**"))
		}
		patterns = append(patterns, pattern)

		matches, err := pathglob.Glob(folder, pattern)
		if err != nil {
			return nil, nil, err
		}
		resolved = append(resolved, matches...)
	}
	sort.Strings(resolved)
	return patterns, resolved, nil
}

func resolveProductTargets(owner, productName string, infos map[string]PackageInfo, folders map[string]string) ([]model.Dependency, error) {
	info, ok := infos[owner]
	if !ok {
		return nil, &xcerrors.UnknownProductDependency{Product: productName, Package: owner}
	}
	for _, p := range info.Products {
		if p.Name != productName {
			continue
		}
		var out []model.Dependency
		for _, t := range p.Targets {
			out = append(out, model.ProjectDependency(t, folders[owner]))
		}
		return out, nil
	}
	return nil, &xcerrors.UnknownProductDependency{Product: productName, Package: owner}
}

func resolveDependencies(
	pkgName string,
	t PackageTarget,
	targetsByName map[string]PackageTarget,
	productToPackage map[string]string,
	targetToFramework map[string]string,
	infos map[string]PackageInfo,
	folders map[string]string,
) ([]model.Dependency, error) {
	var deps []model.Dependency
	for _, d := range t.Dependencies {
		switch d.Kind {
		case PackageDependencyTarget:
			deps = append(deps, model.TargetDependency(d.Name))

		case PackageDependencyProduct:
			owner := d.Package
			if owner == "" {
				owner = productToPackage[d.Name]
			}
			if owner == "" {
				return nil, &xcerrors.UnknownProductDependency{Product: d.Name, Package: d.Package}
			}
			expanded, err := resolveProductTargets(owner, d.Name, infos, folders)
			if err != nil {
				return nil, err
			}
			deps = append(deps, expanded...)

		case PackageDependencyByName:
			if local, ok := targetsByName[d.Name]; ok {
				if local.Kind == PackageTargetBinary {
					deps = append(deps, model.XCFrameworkDependency(targetToFramework[pkgName+"/"+d.Name]))
				} else {
					deps = append(deps, model.TargetDependency(d.Name))
				}
				continue
			}
			if owner, ok := productToPackage[d.Name]; ok {
				expanded, err := resolveProductTargets(owner, d.Name, infos, folders)
				if err != nil {
					return nil, err
				}
				deps = append(deps, expanded...)
				continue
			}
			return nil, &xcerrors.UnknownByNameDependency{Name: d.Name}
		}
	}
	return deps, nil
}

func convertPackageSettings(entries []SettingEntry) (model.Settings, []model.Dependency, error) {
	settings := model.NewSettings()
	listAccum := map[string][]string{}
	defines := map[string]string{}
	var sdkDeps []model.Dependency

	for _, e := range entries {
		switch {
		case (e.Tool == "c" || e.Tool == "cxx") && e.Name == "header_search_path":
			listAccum["HEADER_SEARCH_PATHS"] = append(listAccum["HEADER_SEARCH_PATHS"], e.Value)
		case (e.Tool == "c" || e.Tool == "cxx") && e.Name == "define":
			key, val := splitDefine(e.Value)
			defines[key] = val
		case e.Tool == "c" && e.Name == "unsafe_flags":
			listAccum["OTHER_CFLAGS"] = append(listAccum["OTHER_CFLAGS"], e.Value)
		case e.Tool == "cxx" && e.Name == "unsafe_flags":
			listAccum["OTHER_CPLUSPLUSFLAGS"] = append(listAccum["OTHER_CPLUSPLUSFLAGS"], e.Value)
		case e.Tool == "swift" && e.Name == "define":
			listAccum["SWIFT_ACTIVE_COMPILATION_CONDITIONS"] = append(listAccum["SWIFT_ACTIVE_COMPILATION_CONDITIONS"], e.Value)
		case e.Tool == "swift" && e.Name == "unsafe_flags":
			listAccum["OTHER_SWIFT_FLAGS"] = append(listAccum["OTHER_SWIFT_FLAGS"], e.Value)
		case e.Tool == "linker" && e.Name == "linked_framework":
			sdkDeps = append(sdkDeps, model.SDKDependency(e.Value+".framework", model.SDKStatusRequired))
		case e.Tool == "linker" && e.Name == "linked_library":
			sdkDeps = append(sdkDeps, model.SDKDependency(e.Value+".tbd", model.SDKStatusRequired))
		default:
			return model.Settings{}, nil, &xcerrors.UnsupportedSetting{Tool: e.Tool, Name: e.Name}
		}
	}

	if len(defines) > 0 {
		keys := make([]string, 0, len(defines))
		for k := range defines {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, k+"="+defines[k])
		}
		listAccum["GCC_PREPROCESSOR_DEFINITIONS"] = parts
	}

	for k, v := range listAccum {
		settings.Base[k] = model.ListSetting(v)
	}
	return settings, sdkDeps, nil
}

func splitDefine(v string) (key, val string) {
	if idx := strings.IndexByte(v, '='); idx >= 0 {
		return v[:idx], v[idx+1:]
	}
	return v, "1"
}
