package model

import (
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/arnavsurve/xcgen/internal/manifest"
	"github.com/arnavsurve/xcgen/internal/services"
)

// ConvertWorkspace lowers a manifest.Workspace plus its recursively
// loaded projects into a model.Workspace and the {path -> model.Project}
// map the graph loader (internal/graph) consumes (spec.md §4.E, §3).
//
// ConvertWorkspace appends each project's directory to Workspace.Projects
// in the order given by paths, dropping repeats (first occurrence wins);
// the caller is responsible for that ordering since
// *manifest.LoadedProjects itself makes no ordering guarantee (spec.md
// §4.C). generate passes LoadedProjects.SortedPaths, ascending by path.
func ConvertWorkspace(dir string, w *manifest.Workspace, paths []string, loaded *manifest.LoadedProjects, svc *services.Services) (Workspace, map[string]Project, error) {
	ws := Workspace{
		Path: dir,
		Name: w.Name,
	}
	for _, p := range paths {
		ws.AppendProjectPath(p)
	}
	for _, f := range w.AdditionalFiles {
		elems, err := convertFileElement(dir, f, svc)
		if err != nil {
			return Workspace{}, nil, err
		}
		ws.AdditionalFiles = append(ws.AdditionalFiles, elems...)
	}
	for _, s := range w.Schemes {
		ws.Schemes = append(ws.Schemes, convertScheme(dir, s))
	}

	projects, err := ConvertProjectsParallel(paths, loaded, svc)
	if err != nil {
		return Workspace{}, nil, err
	}
	return ws, projects, nil
}

// ConvertProjectsParallel converts every manifest project reachable at
// paths into a model.Project, one goroutine per manifest (spec.md §5:
// "the manifest→model conversion step MAY be performed in parallel across
// independent manifests (they share no mutable state)"). The other
// goroutines are not cancelled on an error; once all have returned, the
// first error is returned to the caller and no models are, matching
// spec.md §3's "models are produced strictly after all manifests resolve
// successfully (fail-fast)".
func ConvertProjectsParallel(paths []string, loaded *manifest.LoadedProjects, svc *services.Services) (map[string]Project, error) {
	sorted := make([]string, len(paths))
	copy(sorted, paths)
	sort.Strings(sorted)

	results := make([]Project, len(sorted))
	var g errgroup.Group
	for i, path := range sorted {
		i, path := i, path
		g.Go(func() error {
			m, ok := loaded.Get(path)
			if !ok {
				return nil
			}
			p, err := ConvertProject(path, m, svc)
			if err != nil {
				return err
			}
			results[i] = p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make(map[string]Project, len(sorted))
	for i, path := range sorted {
		if _, ok := loaded.Get(path); ok {
			out[path] = results[i]
		}
	}
	return out, nil
}
