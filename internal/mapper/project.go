package mapper

import (
	"fmt"

	"github.com/arnavsurve/xcgen/internal/model"
)

// ProjectMapper is one ordered transform in the pipeline spec.md §4.G
// defines. Each mapper returns a new Project value plus any side effects
// it requests; it never mutates its input in place.
type ProjectMapper interface {
	Name() string
	Map(p model.Project, ctx *Context) (model.Project, []SideEffect, error)
}

// RunProjectPipeline runs the full ordered project mapper pipeline over p,
// skipping AutogeneratedSchemesProjectMapper and
// SynthesizedResourceInterfaceProjectMapper per the corresponding Config
// flags (spec.md §4.G).
func RunProjectPipeline(p model.Project, ctx *Context) (model.Project, []SideEffect, error) {
	mappers := []ProjectMapper{ManifestTargetProjectMapper{}}
	if !ctx.Config.DisableAutogeneratedSchemes() {
		mappers = append(mappers, AutogeneratedSchemesProjectMapper{})
	}
	mappers = append(mappers,
		DeleteDerivedDirectoryProjectMapper{},
		ResourcesProjectMapper{},
		GenerateInfoPlistProjectMapper{},
	)
	if !ctx.Config.DisableSynthesizedResourceAccessors() {
		mappers = append(mappers, SynthesizedResourceInterfaceProjectMapper{})
	}
	mappers = append(mappers,
		ProjectNameAndOrganizationMapper{},
		TargetBuildSettingsProjectMapper{},
		SigningMapper{},
	)

	var allEffects []SideEffect
	for _, m := range mappers {
		mapped, effects, err := m.Map(p, ctx)
		if err != nil {
			return model.Project{}, nil, fmt.Errorf("%s: %w", m.Name(), err)
		}
		p = mapped
		allEffects = append(allEffects, effects...)
	}
	return p, allEffects, nil
}
