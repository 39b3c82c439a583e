package mapper

import "github.com/arnavsurve/xcgen/internal/model"

// resourceHostProducts is the set of product kinds ResourcesProjectMapper
// treats as "library/framework" per spec.md §4.G rule 3 — products that
// cannot embed loose resources directly and need a companion bundle
// target instead.
var resourceHostProducts = map[model.Product]struct{}{
	model.ProductFramework:       {},
	model.ProductStaticFramework: {},
	model.ProductStaticLibrary:   {},
	model.ProductDynamicLibrary:  {},
}

// ResourcesProjectMapper generates a companion bundle target for any
// library/framework target that declares resources, and rewrites the
// host target's dependencies to include it (spec.md §4.G rule 3).
type ResourcesProjectMapper struct{}

func (ResourcesProjectMapper) Name() string { return "ResourcesProjectMapper" }

func (m ResourcesProjectMapper) Map(p model.Project, ctx *Context) (model.Project, []SideEffect, error) {
	var extraTargets []model.Target

	for i := range p.Targets {
		t := &p.Targets[i]
		if _, isHost := resourceHostProducts[t.Product]; !isHost {
			continue
		}
		if len(t.ResolvedResources) == 0 {
			continue
		}

		bundleName := t.Name + "Resources"
		bundle := model.Target{
			Name:              bundleName,
			Platform:          t.Platform,
			Product:           model.ProductBundle,
			DeploymentTarget:  t.DeploymentTarget,
			Resources:         t.Resources,
			ResourceExcludes:  t.ResourceExcludes,
			ResolvedResources: t.ResolvedResources,
		}
		extraTargets = append(extraTargets, bundle)

		t.Resources = nil
		t.ResourceExcludes = nil
		t.ResolvedResources = nil
		t.Dependencies = append(t.Dependencies, model.TargetDependency(bundleName))
	}

	p.Targets = append(p.Targets, extraTargets...)
	return p, nil, nil
}
