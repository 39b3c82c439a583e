package depsgraph

import (
	"github.com/arnavsurve/xcgen/internal/manifest"
	"github.com/arnavsurve/xcgen/internal/model"
)

// ResolveExternal implements manifest.ExternalDependencyLookup (spec.md
// §4.C): it only reports a further-loadable project path for a checked-out
// package that itself carries a Project.yml (a local path dependency
// participating in manifest-driven generation) — pure registry packages
// resolved entirely from workspace-state.json have no manifest to load,
// so they report ok=false the same as an xcframework-kind product would.
func (g *DependenciesGraph) ResolveExternal(name string) (string, bool) {
	for _, dep := range g.ExternalDependencies[name] {
		if dep.Kind != model.DependencyProject {
			continue
		}
		if _, ok := manifest.ManifestsAt(dep.Path)[manifest.KindProject]; ok {
			return dep.Path, true
		}
	}
	return "", false
}
