package mapper

import (
	"fmt"
	"sort"

	"github.com/arnavsurve/xcgen/internal/graph"
	"github.com/arnavsurve/xcgen/internal/model"
)

// GraphMapper is one whole-graph transform spec.md §4.H describes: unlike
// a ProjectMapper it sees every project at once, which cache-hit pruning
// and automation-scheme injection both need (a target's cache fingerprint
// depends on its resolved dependencies elsewhere in the graph; the
// automation scheme enumerates every target in every project).
type GraphMapper interface {
	Name() string
	Map(g *graph.Graph, ctx *Context) ([]SideEffect, error)
}

// ArtifactCache is the external collaborator cache-hit pruning consults:
// given a target's fingerprint, it reports the on-disk path of a
// previously-built artifact, if one is still valid.
type ArtifactCache interface {
	Lookup(fingerprint string) (artifactPath string, hit bool)
}

// CacheHitPruningGraphMapper replaces any target whose fingerprint
// matches a cached artifact with a pre-compiled stand-in (spec.md §4.H),
// so the mapped graph never re-describes sources the cache already built.
type CacheHitPruningGraphMapper struct {
	Cache       ArtifactCache
	Fingerprint func(g *graph.Graph, key graph.NodeKey) string
}

func (CacheHitPruningGraphMapper) Name() string { return "CacheHitPruningGraphMapper" }

func (m CacheHitPruningGraphMapper) Map(g *graph.Graph, ctx *Context) ([]SideEffect, error) {
	if m.Cache == nil {
		return nil, nil
	}
	fingerprintFn := m.Fingerprint
	if fingerprintFn == nil {
		fingerprintFn = defaultFingerprint
	}

	for _, key := range g.Targets() {
		target, ok := g.Target(key)
		if !ok || target.CachedArtifactPath != "" {
			continue
		}
		fp := fingerprintFn(g, key)
		path, hit := m.Cache.Lookup(fp)
		if !hit {
			continue
		}
		target.CachedArtifactPath = path
		g.ReplaceTarget(key, target)
	}
	return nil, nil
}

// defaultFingerprint is a stand-in deterministic fingerprint: project
// path, target name, and resolved source count. Production callers
// inject a real content-hash fingerprint function; this default exists so
// the mapper is usable without one configured.
func defaultFingerprint(g *graph.Graph, key graph.NodeKey) string {
	target, _ := g.Target(key)
	return fmt.Sprintf("%s:%d", key.String(), len(target.ResolvedSources))
}

// automationSchemeSuffix is appended to the workspace name to name the
// synthetic workspace-wide scheme AutomationGraphMapper injects.
const automationSchemeSuffix = "-Project"

// AutomationGraphMapper injects a single "<Workspace>-Project" scheme
// enumerating every target and every test-bundle target across the whole
// graph, for scripted (CI) testing (spec.md §4.H).
type AutomationGraphMapper struct{}

func (AutomationGraphMapper) Name() string { return "AutomationGraphMapper" }

func (m AutomationGraphMapper) Map(g *graph.Graph, ctx *Context) ([]SideEffect, error) {
	if len(g.Workspace.Projects) == 0 {
		return nil, nil
	}

	var buildTargets []model.TargetReference
	var testTargets []model.TargetReference

	for _, path := range g.Workspace.Projects {
		proj, ok := g.Project(path)
		if !ok {
			continue
		}
		names := make([]string, 0, len(proj.Targets))
		byName := map[string]model.Target{}
		for _, t := range proj.Targets {
			names = append(names, t.Name)
			byName[t.Name] = t
		}
		sort.Strings(names)
		for _, name := range names {
			t := byName[name]
			buildTargets = append(buildTargets, model.TargetReference{ProjectPath: path, TargetName: name})
			if t.Product.IsTestBundle() {
				testTargets = append(testTargets, model.TargetReference{ProjectPath: path, TargetName: name})
			}
		}
	}

	if len(buildTargets) == 0 {
		return nil, nil
	}

	scheme := model.Scheme{
		Name:        g.Workspace.Name + automationSchemeSuffix,
		Shared:      true,
		BuildAction: &model.BuildAction{Targets: buildTargets},
	}
	if len(testTargets) > 0 {
		scheme.TestAction = &model.TestAction{
			Targets:                      testTargets,
			DiagnosticsMainThreadChecker: true,
		}
	}

	g.Workspace.Schemes = append(g.Workspace.Schemes, scheme)
	return nil, nil
}

// RunGraphPipeline runs every whole-graph mapper in order (spec.md §4.H:
// graph mappers run after all project mappers on all projects).
func RunGraphPipeline(g *graph.Graph, ctx *Context, mappers []GraphMapper) ([]SideEffect, error) {
	var effects []SideEffect
	for _, m := range mappers {
		fx, err := m.Map(g, ctx)
		if err != nil {
			return nil, err
		}
		effects = append(effects, fx...)
	}
	return effects, nil
}
