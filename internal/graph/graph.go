// Package graph builds the cross-project dependency graph spec.md §4.F
// describes: target nodes keyed by (project_path, target_name), resolved
// dependency edges, and cycle detection over the target-to-target subset
// of those edges.
package graph

import (
	"fmt"
	"sort"

	"github.com/arnavsurve/xcgen/internal/model"
	"github.com/arnavsurve/xcgen/internal/xcerrors"
)

// NodeKey identifies a target node.
type NodeKey struct {
	ProjectPath string
	TargetName  string
}

func (k NodeKey) String() string { return k.ProjectPath + ":" + k.TargetName }

// EdgeKind tags a resolved dependency edge's destination kind.
type EdgeKind string

const (
	EdgeTarget         EdgeKind = "target"
	EdgePrecompiled    EdgeKind = "precompiled"
	EdgeSDK            EdgeKind = "sdk"
	EdgePackageProduct EdgeKind = "package_product"
)

// Edge is one resolved dependency edge out of a target node.
type Edge struct {
	Kind EdgeKind

	// Target is set when Kind == EdgeTarget.
	Target NodeKey

	// PrecompiledPath/PrecompiledKind are set when Kind == EdgePrecompiled:
	// an existing framework/xcframework/library/cocoapods artifact on disk.
	PrecompiledPath string
	PrecompiledKind model.DependencyKind

	// SDKName/SDKStatus are set when Kind == EdgeSDK.
	SDKName   string
	SDKStatus model.SDKStatus

	// PackageProduct is set when Kind == EdgePackageProduct.
	PackageProduct string
}

// Graph is the fully-resolved cross-project dependency graph (spec.md §3).
type Graph struct {
	Workspace model.Workspace

	projects     map[string]model.Project
	projectOrder []string

	targets     map[NodeKey]model.Target
	targetOrder []NodeKey

	edges map[NodeKey][]Edge
}

// Projects returns every project in insertion order, which Load makes
// ascending project-path order, so it is stable across runs given a
// stable input set.
func (g *Graph) Projects() []model.Project {
	out := make([]model.Project, 0, len(g.projectOrder))
	for _, path := range g.projectOrder {
		out = append(out, g.projects[path])
	}
	return out
}

func (g *Graph) Project(path string) (model.Project, bool) {
	p, ok := g.projects[path]
	return p, ok
}

// Targets returns every target node in insertion order.
func (g *Graph) Targets() []NodeKey {
	out := make([]NodeKey, len(g.targetOrder))
	copy(out, g.targetOrder)
	return out
}

func (g *Graph) Target(key NodeKey) (model.Target, bool) {
	t, ok := g.targets[key]
	return t, ok
}

// ReplaceTarget overwrites an existing target node's value in place; it is
// a no-op if key is not a node of g. Used by the graph mapper pipeline's
// cache-hit pruning step (spec.md §4.H).
func (g *Graph) ReplaceTarget(key NodeKey, t model.Target) {
	if _, ok := g.targets[key]; ok {
		g.targets[key] = t
	}
}

// ReplaceProject overwrites an existing project's value in place; it is a
// no-op if path is not a project of g. Used by generate to store each
// project's project-mapper pipeline result (spec.md §4.G).
func (g *Graph) ReplaceProject(path string, p model.Project) {
	if _, ok := g.projects[path]; ok {
		g.projects[path] = p
	}
}

// TargetDependencies returns key's direct dependency edges, in manifest
// insertion order (spec.md §4.F).
func (g *Graph) TargetDependencies(key NodeKey) []Edge {
	return g.edges[key]
}

// LinkableDependencies returns the transitive closure of key's
// dependencies filtered to linkable products: precompiled artifacts, SDKs,
// package products, and (transitively) any such products reachable
// through other target nodes.
func (g *Graph) LinkableDependencies(key NodeKey) []Edge {
	visitedTargets := map[NodeKey]struct{}{}
	seenEdge := map[Edge]struct{}{}
	var out []Edge

	var walk func(k NodeKey)
	walk = func(k NodeKey) {
		if _, ok := visitedTargets[k]; ok {
			return
		}
		visitedTargets[k] = struct{}{}
		for _, e := range g.edges[k] {
			switch e.Kind {
			case EdgeTarget:
				walk(e.Target)
			default:
				if _, ok := seenEdge[e]; !ok {
					seenEdge[e] = struct{}{}
					out = append(out, e)
				}
			}
		}
	}
	walk(key)
	return out
}

// Load builds a Graph from a workspace and its resolved projects (spec.md
// §4.F). projects is keyed by project directory path.
func Load(ws model.Workspace, projects map[string]model.Project) (*Graph, error) {
	g := &Graph{
		Workspace: ws,
		projects:  map[string]model.Project{},
		targets:   map[NodeKey]model.Target{},
		edges:     map[NodeKey][]Edge{},
	}

	paths := make([]string, 0, len(projects))
	for path := range projects {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	for _, path := range paths {
		proj := projects[path]
		g.projects[path] = proj
		g.projectOrder = append(g.projectOrder, path)
		for _, t := range proj.Targets {
			key := NodeKey{ProjectPath: path, TargetName: t.Name}
			g.targets[key] = t
			g.targetOrder = append(g.targetOrder, key)
		}
	}

	for _, key := range g.targetOrder {
		target := g.targets[key]
		for _, dep := range target.Dependencies {
			edge, err := g.resolveEdge(key, dep)
			if err != nil {
				return nil, err
			}
			g.edges[key] = append(g.edges[key], edge)
		}
	}

	if err := g.detectCycles(); err != nil {
		return nil, err
	}

	return g, nil
}

func (g *Graph) resolveEdge(from NodeKey, dep model.Dependency) (Edge, error) {
	switch dep.Kind {
	case model.DependencyTarget:
		target := NodeKey{ProjectPath: from.ProjectPath, TargetName: dep.Name}
		if _, ok := g.targets[target]; !ok {
			return Edge{}, fmt.Errorf("target dependency %q not found in project %q", dep.Name, from.ProjectPath)
		}
		return Edge{Kind: EdgeTarget, Target: target}, nil

	case model.DependencyProject:
		target := NodeKey{ProjectPath: dep.Path, TargetName: dep.Name}
		if _, ok := g.targets[target]; !ok {
			return Edge{}, fmt.Errorf("project dependency %q not found in project %q", dep.Name, dep.Path)
		}
		return Edge{Kind: EdgeTarget, Target: target}, nil

	case model.DependencyFramework, model.DependencyXCFramework, model.DependencyLibrary, model.DependencyCocoapods:
		return Edge{Kind: EdgePrecompiled, PrecompiledPath: dep.Path, PrecompiledKind: dep.Kind}, nil

	case model.DependencySDK:
		return Edge{Kind: EdgeSDK, SDKName: dep.Name, SDKStatus: dep.SDKStatus}, nil

	case model.DependencyPackageProduct:
		return Edge{Kind: EdgePackageProduct, PackageProduct: dep.Name}, nil

	case model.DependencyExternal:
		// An unresolved external() dependency reaching the graph loader
		// means the recursive loader's lookup found no further project to
		// load for it (spec.md §4.C) — treat it as an opaque linkable
		// product by name, same as a package product.
		return Edge{Kind: EdgePackageProduct, PackageProduct: dep.ExternalName}, nil

	default:
		return Edge{}, fmt.Errorf("unrecognized dependency kind %q", dep.Kind)
	}
}

type color int

const (
	white color = iota
	gray
	black
)

func (g *Graph) detectCycles() error {
	colors := make(map[NodeKey]color, len(g.targetOrder))

	var visit func(key NodeKey) error
	visit = func(key NodeKey) error {
		colors[key] = gray
		for _, e := range g.edges[key] {
			if e.Kind != EdgeTarget {
				continue
			}
			switch colors[e.Target] {
			case gray:
				return &xcerrors.CyclicDependency{Path: e.Target.String()}
			case white:
				if err := visit(e.Target); err != nil {
					return err
				}
			}
		}
		colors[key] = black
		return nil
	}

	for _, key := range g.targetOrder {
		if colors[key] == white {
			if err := visit(key); err != nil {
				return err
			}
		}
	}
	return nil
}
