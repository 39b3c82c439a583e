package mapper

import "github.com/arnavsurve/xcgen/internal/model"

// ManifestTargetProjectMapper injects a synthetic "<ProjectName>-Manifest"
// target into any project that declares zero targets, so the IDE has
// something to show for it (SPEC_FULL.md supplement 1). It runs first in
// the pipeline: AutogeneratedSchemesProjectMapper must see the synthetic
// target to decide whether schemes are even possible (S1: zero targets,
// zero schemes when the flag is off).
//
// The synthetic target carries no sources, is a macOS bundle product, and
// is never runnable or testable — it exists purely as a project-browser leaf.
type ManifestTargetProjectMapper struct{}

func (ManifestTargetProjectMapper) Name() string { return "ManifestTargetProjectMapper" }

func (m ManifestTargetProjectMapper) Map(p model.Project, ctx *Context) (model.Project, []SideEffect, error) {
	if len(p.Targets) > 0 {
		return p, nil, nil
	}
	if !ctx.Config.ManifestTargetCompatEnabled() {
		return p, nil, nil
	}

	p.Targets = append(p.Targets, model.Target{
		Name:     p.Name + "-Manifest",
		Platform: model.PlatformMacOS,
		Product:  model.ProductBundle,
	})
	return p, nil, nil
}
