package manifest

import (
	"path/filepath"

	lru "github.com/hashicorp/golang-lru/v2"
)

// ExternalDependencyLookup resolves an `external(name)` dependency tag to
// a local project path (spec.md §4.C): "source" external dependencies
// contribute their local project path; xcframework externals contribute
// nothing, so ok is false.
type ExternalDependencyLookup interface {
	ResolveExternal(name string) (projectPath string, ok bool)
}

// noExternalDependencies is used when the caller has no resolved external
// dependency state yet (e.g. loading before external deps are resolved).
type noExternalDependencies struct{}

func (noExternalDependencies) ResolveExternal(string) (string, bool) { return "", false }

// NoExternalDependencies is the zero ExternalDependencyLookup.
var NoExternalDependencies ExternalDependencyLookup = noExternalDependencies{}

// LoadedProjects is the {path -> project manifest} map the recursive
// loader produces. Ordering beyond "all referenced projects present" is
// not guaranteed by this type (spec.md §4.C) — callers that need
// deterministic iteration use SortedPaths.
type LoadedProjects struct {
	byPath map[string]*Project
	// loadOrder tracks insertion order for diagnostics only; it is not a
	// correctness guarantee per spec.md §4.C.
	loadOrder []string
}

func newLoadedProjects() *LoadedProjects {
	return &LoadedProjects{byPath: map[string]*Project{}}
}

func (l *LoadedProjects) Get(path string) (*Project, bool) {
	p, ok := l.byPath[path]
	return p, ok
}

func (l *LoadedProjects) set(path string, p *Project) {
	if _, exists := l.byPath[path]; !exists {
		l.loadOrder = append(l.loadOrder, path)
	}
	l.byPath[path] = p
}

// SortedPaths returns every loaded project path in ascending lexical
// order (spec.md §9 Open Question: "this spec requires deterministic
// ordering (by path string) for reproducibility").
func (l *LoadedProjects) SortedPaths() []string {
	paths := make([]string, 0, len(l.byPath))
	for p := range l.byPath {
		paths = append(paths, p)
	}
	sortStrings(paths)
	return paths
}

func (l *LoadedProjects) Len() int { return len(l.byPath) }

// RecursiveLoader follows project-to-project manifest edges, deduping via
// a path-keyed cache so cycles are tolerated by short-circuit rather than
// rejected (spec.md §4.C, §9 design notes).
//
// The manifest cache is bounded with an LRU so a pathological
// dependency fan-out (thousands of distinct project paths reachable from
// one root) cannot grow it without limit; in practice one generation run
// touches far fewer projects than the cap.
type RecursiveLoader struct {
	cache *lru.Cache[string, *Project]
}

// NewRecursiveLoader creates a loader whose manifest cache holds up to
// cacheSize entries. A generation run should create exactly one loader
// and discard it afterward (spec.md §5: "the manifest cache is owned by
// the recursive loader for one generation run; it is not shared across
// runs").
func NewRecursiveLoader(cacheSize int) (*RecursiveLoader, error) {
	if cacheSize <= 0 {
		cacheSize = 4096
	}
	c, err := lru.New[string, *Project](cacheSize)
	if err != nil {
		return nil, err
	}
	return &RecursiveLoader{cache: c}, nil
}

// LoadProject runs the stack-based traversal described in spec.md §4.C
// starting from rootPath, following project() and source-kind external()
// dependency edges.
func (l *RecursiveLoader) LoadProject(rootPath string, deps ExternalDependencyLookup) (*LoadedProjects, error) {
	if deps == nil {
		deps = NoExternalDependencies
	}

	loaded := newLoadedProjects()
	visited := map[string]struct{}{}
	stack := []string{filepath.Clean(rootPath)}

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if _, seen := visited[p]; seen {
			continue
		}
		visited[p] = struct{}{}

		manifest, err := l.loadCached(p)
		if err != nil {
			return nil, err
		}
		loaded.set(p, manifest)

		for _, t := range manifest.Targets {
			for _, dep := range t.Dependencies {
				switch {
				case dep.Project != "":
					depPath := filepath.Clean(filepath.Join(p, dep.ProjectPath))
					if _, seen := visited[depPath]; !seen {
						stack = append(stack, depPath)
					}
				case dep.External != "":
					if projPath, ok := deps.ResolveExternal(dep.External); ok {
						depPath := filepath.Clean(projPath)
						if _, seen := visited[depPath]; !seen {
							stack = append(stack, depPath)
						}
					}
					// xcframework (or unresolved) external dependencies
					// contribute nothing further to traverse.
				}
			}
		}
	}

	return loaded, nil
}

func (l *RecursiveLoader) loadCached(dir string) (*Project, error) {
	if cached, ok := l.cache.Get(dir); ok {
		return cached, nil
	}
	p, _, err := LoadProject(dir)
	if err != nil {
		return nil, err
	}
	l.cache.Add(dir, p)
	return p, nil
}

// LoadWorkspace loads the workspace manifest at rootPath, expands its
// projects list (each entry may be a glob pattern) against rootPath,
// filters to directories that contain a project manifest, and then loads
// every reachable project via LoadProject (spec.md §4.C).
func (l *RecursiveLoader) LoadWorkspace(rootPath string, deps ExternalDependencyLookup, globFn func(root, pattern string) ([]string, error)) (*Workspace, *LoadedProjects, error) {
	ws, _, err := LoadWorkspace(rootPath)
	if err != nil {
		return nil, nil, err
	}

	var initial []string
	seen := map[string]struct{}{}
	for _, pattern := range ws.Projects {
		matches, err := globFn(rootPath, pattern)
		if err != nil {
			return nil, nil, err
		}
		for _, m := range matches {
			dir := m
			if !isDir(dir) {
				dir = filepath.Dir(dir)
			}
			if _, ok := ManifestsAt(dir)[KindProject]; !ok {
				continue
			}
			if _, ok := seen[dir]; ok {
				continue
			}
			seen[dir] = struct{}{}
			initial = append(initial, dir)
		}
	}

	loaded := newLoadedProjects()
	for _, dir := range initial {
		sub, err := l.LoadProject(dir, deps)
		if err != nil {
			return nil, nil, err
		}
		for _, path := range sub.loadOrder {
			p, _ := sub.Get(path)
			loaded.set(path, p)
		}
	}

	return ws, loaded, nil
}
