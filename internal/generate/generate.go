// Package generate wires spec.md's components A–J together behind the
// one public entry point the CLI shell (internal/cli) and any other
// caller drives generation through. It owns no component's algorithm;
// it only sequences them in the order spec.md §2's data-flow table
// describes: B/C (manifests) → E (models) → F (graph) → G+H (mapped
// graph) → I (descriptors) → external writer.
package generate

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"

	"github.com/arnavsurve/xcgen/internal/config"
	"github.com/arnavsurve/xcgen/internal/depsgraph"
	"github.com/arnavsurve/xcgen/internal/descriptor"
	"github.com/arnavsurve/xcgen/internal/diag"
	"github.com/arnavsurve/xcgen/internal/graph"
	"github.com/arnavsurve/xcgen/internal/installer"
	"github.com/arnavsurve/xcgen/internal/manifest"
	"github.com/arnavsurve/xcgen/internal/mapper"
	"github.com/arnavsurve/xcgen/internal/model"
	"github.com/arnavsurve/xcgen/internal/pathglob"
	"github.com/arnavsurve/xcgen/internal/services"
)

// SystemSCMInstaller is the install-and-report collaborator spec.md §1
// keeps external to the core ("package-manager integrations ... invoked
// via an install-and-report interface"). It resolves a package
// workspace's dependencies before depsgraph.Generate runs against the
// resulting state directory. internal/installer.SystemSCMInstaller
// satisfies this.
type SystemSCMInstaller interface {
	Install(ctx context.Context, projectDir string) (installer.Report, error)
}

// Options configures one generation run.
type Options struct {
	// Path is the root directory: either a Workspace.yml directory, or
	// (when ProjectOnly is set) a single Project.yml directory.
	Path string

	// ProjectOnly generates a single project without a surrounding
	// workspace manifest (the `generate --project-only` CLI flag).
	ProjectOnly bool

	// ConfiguredPlatforms feeds the external-dependencies graph generator
	// (spec.md §4.D); empty means external package dependencies are
	// skipped entirely.
	ConfiguredPlatforms []model.Platform

	// PackageStateDir, PackageCheckoutsDir, PackageArtifactsDir locate
	// workspace-state.json / checkouts / artifacts for depsgraph.Generate.
	// Any one left empty skips external-dependency resolution.
	PackageStateDir     string
	PackageCheckoutsDir string
	PackageArtifactsDir string

	PackageInfoLoader    depsgraph.PackageInfoLoader
	ProductOverrides     map[string]model.Product
	CertificateLookup    mapper.CertificateLookup
	ArtifactCache        mapper.ArtifactCache

	// SystemSCMInstaller resolves the package workspace's dependencies via
	// the system-installed package manager when the Config option
	// resolve_dependencies_with_system_scm is set and
	// PackageStateDir/CheckoutsDir/ArtifactsDir were left empty. Nil skips
	// this step (the caller is expected to have already resolved
	// dependencies and populated those three directories itself).
	SystemSCMInstaller SystemSCMInstaller
}

// Result is everything one generation run produced: the descriptor tree
// ready for the external writer, plus every recoverable warning
// accumulated along the way (spec.md §7: warnings never fail the run).
type Result struct {
	Workspace *descriptor.WorkspaceDescriptor
	Warnings  []diag.Warning
}

// Generate runs the full pipeline over opts.Path and returns the
// resulting descriptor tree. Nothing is written to disk — that is the
// external writer collaborator's job (spec.md §3 Lifecycle).
func Generate(svc *services.Services, opts Options) (*Result, error) {
	root, err := filepath.Abs(opts.Path)
	if err != nil {
		return nil, fmt.Errorf("resolve root path: %w", err)
	}

	cfg, err := loadConfig(root)
	if err != nil {
		return nil, err
	}

	if err := installDependenciesWithSystemSCM(cfg, root, &opts); err != nil {
		return nil, err
	}

	extGraph, err := resolveExternalDependencies(svc, opts)
	if err != nil {
		return nil, err
	}

	loader, err := manifest.NewRecursiveLoader(4096)
	if err != nil {
		return nil, err
	}

	var lookup manifest.ExternalDependencyLookup = manifest.NoExternalDependencies
	if extGraph != nil {
		lookup = extGraph
	}

	ws, projects, paths, err := loadManifests(loader, root, opts, lookup)
	if err != nil {
		return nil, err
	}

	modelWS, modelProjects, err := model.ConvertWorkspace(root, ws, paths, projects, svc)
	if err != nil {
		return nil, err
	}

	if extGraph != nil {
		mergeExternalProjects(&modelWS, modelProjects, extGraph)
		expandExternalDependencies(modelProjects, extGraph)
	}

	g, err := graph.Load(modelWS, modelProjects)
	if err != nil {
		return nil, err
	}

	mapperCtx := &mapper.Context{
		Config:            cfg,
		Services:          svc,
		CertificateLookup: opts.CertificateLookup,
	}

	var allEffects []diagSideEffect
	for _, path := range g.Workspace.Projects {
		proj, ok := g.Project(path)
		if !ok {
			continue
		}
		mapped, effects, err := mapper.RunProjectPipeline(proj, mapperCtx)
		if err != nil {
			return nil, fmt.Errorf("mapping project %s: %w", path, err)
		}
		g.ReplaceProject(path, mapped)
		allEffects = append(allEffects, effects...)
	}

	graphMappers := []mapper.GraphMapper{
		mapper.CacheHitPruningGraphMapper{Cache: opts.ArtifactCache},
		mapper.AutomationGraphMapper{},
	}
	graphEffects, err := mapper.RunGraphPipeline(g, mapperCtx, graphMappers)
	if err != nil {
		return nil, err
	}
	allEffects = append(allEffects, graphEffects...)

	wd, err := descriptor.Generate(g)
	if err != nil {
		return nil, err
	}
	attachSideEffects(wd, allEffects)

	return &Result{Workspace: wd, Warnings: svc.Reporter.Warnings()}, nil
}

// diagSideEffect is a type alias kept local so this file reads as one
// pipeline without importing mapper.SideEffect under two names.
type diagSideEffect = mapper.SideEffect

func loadConfig(root string) (*config.Config, error) {
	data, _, err := manifest.LoadConfig(root)
	if err != nil {
		return config.Default(), nil
	}
	return config.Parse(data)
}

// installDependenciesWithSystemSCM runs opts.SystemSCMInstaller, strictly
// before graph construction begins and never concurrently with mapper
// execution (spec.md §5), when the resolve_dependencies_with_system_scm
// option is set and the caller has not already supplied resolved package
// directories. It mutates opts in place so resolveExternalDependencies
// picks up the reported directories.
func installDependenciesWithSystemSCM(cfg *config.Config, root string, opts *Options) error {
	if !cfg.ResolveDependenciesWithSystemSCM() || opts.SystemSCMInstaller == nil {
		return nil
	}
	if opts.PackageStateDir != "" || opts.PackageCheckoutsDir != "" || opts.PackageArtifactsDir != "" {
		return nil
	}

	report, err := opts.SystemSCMInstaller.Install(context.Background(), root)
	if err != nil {
		return fmt.Errorf("resolve dependencies with system scm: %w", err)
	}

	opts.PackageStateDir = report.StateDir
	opts.PackageCheckoutsDir = report.CheckoutsDir
	opts.PackageArtifactsDir = report.ArtifactsDir
	return nil
}

func resolveExternalDependencies(svc *services.Services, opts Options) (*depsgraph.DependenciesGraph, error) {
	if opts.PackageStateDir == "" || opts.PackageCheckoutsDir == "" || opts.PackageArtifactsDir == "" {
		return nil, nil
	}
	if opts.PackageInfoLoader == nil {
		return nil, nil
	}
	if len(opts.ConfiguredPlatforms) == 0 {
		return nil, nil
	}

	g := depsgraph.NewGenerator(svc, opts.PackageInfoLoader, opts.ConfiguredPlatforms, opts.ProductOverrides)
	return g.Generate(opts.PackageStateDir, opts.PackageCheckoutsDir, opts.PackageArtifactsDir)
}

func loadManifests(loader *manifest.RecursiveLoader, root string, opts Options, lookup manifest.ExternalDependencyLookup) (*manifest.Workspace, *manifest.LoadedProjects, []string, error) {
	if opts.ProjectOnly {
		loaded, err := loader.LoadProject(root, lookup)
		if err != nil {
			return nil, nil, nil, err
		}
		ws := &manifest.Workspace{Name: filepath.Base(root), Projects: []string{root}}
		return ws, loaded, loaded.SortedPaths(), nil
	}

	ws, loaded, err := loader.LoadWorkspace(root, lookup, pathglob.Glob)
	if err != nil {
		return nil, nil, nil, err
	}
	return ws, loaded, loaded.SortedPaths(), nil
}

// mergeExternalProjects appends every synthesized package project to the
// workspace's project list and project map, in deterministic path order
// (spec.md §9 Open Question 2).
func mergeExternalProjects(ws *model.Workspace, projects map[string]model.Project, extGraph *depsgraph.DependenciesGraph) {
	paths := make([]string, 0, len(extGraph.ExternalProjects))
	for p := range extGraph.ExternalProjects {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	for _, p := range paths {
		projects[p] = extGraph.ExternalProjects[p]
		ws.AppendProjectPath(p)
	}
}

// expandExternalDependencies replaces every target's external()
// dependency entries with the concrete dependency edges
// DependenciesGraph.ExternalDependencies resolved for that product name
// (spec.md §4.C: "for each external(name) dependency, look up name in
// deps_graph.external_dependencies").
func expandExternalDependencies(projects map[string]model.Project, extGraph *depsgraph.DependenciesGraph) {
	for path, proj := range projects {
		changed := false
		for i := range proj.Targets {
			t := &proj.Targets[i]
			var expanded []model.Dependency
			for _, d := range t.Dependencies {
				if d.Kind != model.DependencyExternal {
					expanded = append(expanded, d)
					continue
				}
				if resolved, ok := extGraph.ExternalDependencies[d.ExternalName]; ok {
					expanded = append(expanded, resolved...)
					changed = true
					continue
				}
				expanded = append(expanded, d)
			}
			t.Dependencies = expanded
		}
		if changed {
			projects[path] = proj
		}
	}
}

func attachSideEffects(wd *descriptor.WorkspaceDescriptor, effects []mapper.SideEffect) {
	for i := range wd.Projects {
		wd.Projects[i].SideEffects = matchingEffects(wd.Projects[i].Path, effects)
	}
	wd.SideEffects = effects
}

func matchingEffects(projectPath string, effects []mapper.SideEffect) []mapper.SideEffect {
	var out []mapper.SideEffect
	for _, e := range effects {
		if filepath.Dir(e.Path) == projectPath || filepathHasPrefix(e.Path, projectPath) {
			out = append(out, e)
		}
	}
	return out
}

func filepathHasPrefix(path, prefix string) bool {
	rel, err := filepath.Rel(prefix, path)
	if err != nil {
		return false
	}
	return rel != ".." && !isParentEscape(rel)
}

func isParentEscape(rel string) bool {
	return len(rel) >= 2 && rel[0] == '.' && rel[1] == '.'
}
