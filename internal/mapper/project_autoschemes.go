package mapper

import (
	"sort"

	"github.com/arnavsurve/xcgen/internal/model"
)

// AutogeneratedSchemesProjectMapper synthesizes one shared scheme per
// target that has no user-defined scheme of the same name (spec.md §4.G
// rule 1). A user-defined scheme always wins over an auto-generated one
// with the same name (spec.md §3 Scheme-classification state machine).
type AutogeneratedSchemesProjectMapper struct{}

func (AutogeneratedSchemesProjectMapper) Name() string { return "AutogeneratedSchemesProjectMapper" }

func (m AutogeneratedSchemesProjectMapper) Map(p model.Project, ctx *Context) (model.Project, []SideEffect, error) {
	userSchemes := map[string]struct{}{}
	for _, s := range p.Schemes {
		userSchemes[s.Name] = struct{}{}
	}

	coverage := ctx.Config.EnableCodeCoverage()

	for _, t := range p.Targets {
		if _, exists := userSchemes[t.Name]; exists {
			continue
		}
		p.Schemes = append(p.Schemes, m.buildScheme(p, t, coverage))
	}
	return p, nil, nil
}

func (m AutogeneratedSchemesProjectMapper) buildScheme(p model.Project, t model.Target, coverage bool) model.Scheme {
	debugConfig := p.DefaultDebugBuildConfigurationName
	if debugConfig == "" {
		debugConfig = "Debug"
	}

	buildTargets := []model.TargetReference{ref(p, t)}
	if t.Product == model.ProductAppExtension || t.Product == model.ProductMessagesExtension {
		if hosts := hostAppTargets(p, t); len(hosts) > 0 {
			buildTargets = append(buildTargets, hosts...)
		}
	}

	scheme := model.Scheme{
		Name:   t.Name,
		Shared: true,
		BuildAction: &model.BuildAction{
			Targets: buildTargets,
		},
		AnalyzeAction: &model.AnalyzeAction{Configuration: debugConfig},
	}

	testTargets := m.testTargetsFor(p, t)
	scheme.TestAction = &model.TestAction{
		Targets:                      testTargets,
		Coverage:                     coverage,
		Configuration:                debugConfig,
		DiagnosticsMainThreadChecker: true,
	}
	if coverage {
		scheme.TestAction.CodeCoverageTargets = []model.TargetReference{ref(p, t)}
	}

	scheme.RunAction = m.runActionFor(p, t, debugConfig)
	scheme.ProfileAction = m.profileActionFor(p, t, "Release")

	return scheme
}

func (m AutogeneratedSchemesProjectMapper) testTargetsFor(p model.Project, t model.Target) []model.TargetReference {
	if t.Product.IsTestBundle() {
		return []model.TargetReference{ref(p, t)}
	}

	var out []model.TargetReference
	var names []string
	byName := map[string]model.Target{}
	for _, candidate := range p.Targets {
		if !candidate.Product.IsTestBundle() {
			continue
		}
		if !dependsOn(candidate, t.Name) {
			continue
		}
		names = append(names, candidate.Name)
		byName[candidate.Name] = candidate
	}
	sort.Strings(names)
	for _, n := range names {
		out = append(out, ref(p, byName[n]))
	}
	return out
}

func (m AutogeneratedSchemesProjectMapper) runActionFor(p model.Project, t model.Target, debugConfig string) *model.RunAction {
	action := &model.RunAction{
		Configuration:                debugConfig,
		DiagnosticsMainThreadChecker: true,
	}

	switch {
	case t.Product.IsRunnable():
		r := ref(p, t)
		action.Executable = &r
	case t.Product == model.ProductAppExtension || t.Product == model.ProductMessagesExtension:
		hosts := hostAppTargets(p, t)
		if len(hosts) == 0 {
			return action
		}
		action.Executable = &hosts[0]
	case t.Product == model.ProductWatch2Extension:
		host, ok := hostWatchAppTarget(p, t)
		if !ok {
			return action
		}
		r := ref(p, host)
		action.Executable = &r
	default:
		return action
	}

	if len(t.Environment) > 0 || len(t.LaunchArguments) > 0 {
		action.Arguments = &model.Arguments{
			Environment:     t.Environment,
			LaunchArguments: t.LaunchArguments,
		}
	}
	return action
}

// profileActionFor mirrors runActionFor's executable resolution (spec.md
// §6: "For runnable targets the run/profile action carries
// buildable_product_runnable ... For non-runnable targets the same data
// is placed in macro_expansion"), but always profiles against the
// "Release" configuration and never applies environment/launch
// arguments. EnableTestabilityWhenProfilingTests is true only when no
// executable could be resolved (the macro-expansion form).
func (m AutogeneratedSchemesProjectMapper) profileActionFor(p model.Project, t model.Target, releaseConfig string) *model.ProfileAction {
	action := &model.ProfileAction{
		Configuration:                releaseConfig,
		ShouldUseLaunchSchemeArgsEnv: true,
	}

	switch {
	case t.Product.IsRunnable():
		r := ref(p, t)
		action.Executable = &r
	case t.Product == model.ProductAppExtension || t.Product == model.ProductMessagesExtension:
		if hosts := hostAppTargets(p, t); len(hosts) > 0 {
			action.Executable = &hosts[0]
		}
	case t.Product == model.ProductWatch2Extension:
		if host, ok := hostWatchAppTarget(p, t); ok {
			r := ref(p, host)
			action.Executable = &r
		}
	}

	action.EnableTestabilityWhenProfilingTests = action.Executable == nil
	return action
}

func ref(p model.Project, t model.Target) model.TargetReference {
	return model.TargetReference{ProjectPath: p.Path, TargetName: t.Name}
}

// dependsOn reports whether t carries a direct target() dependency on
// targetName within the same project.
func dependsOn(t model.Target, targetName string) bool {
	for _, d := range t.Dependencies {
		if d.Kind == model.DependencyTarget && d.Name == targetName {
			return true
		}
	}
	return false
}

// hostAppTargets returns every target in p whose product can host tests
// and that depends on t, sorted by name (spec.md §4.G rule 1).
func hostAppTargets(p model.Project, t model.Target) []model.TargetReference {
	var names []string
	byName := map[string]model.Target{}
	for _, candidate := range p.Targets {
		if !candidate.Product.CanHostTests() {
			continue
		}
		if !dependsOn(candidate, t.Name) {
			continue
		}
		names = append(names, candidate.Name)
		byName[candidate.Name] = candidate
	}
	sort.Strings(names)
	out := make([]model.TargetReference, 0, len(names))
	for _, n := range names {
		out = append(out, ref(p, byName[n]))
	}
	return out
}

// hostWatchAppTarget returns the watch2_app target that depends on the
// given watch2_extension, if any.
func hostWatchAppTarget(p model.Project, t model.Target) (model.Target, bool) {
	for _, candidate := range p.Targets {
		if candidate.Product != model.ProductWatch2App {
			continue
		}
		if dependsOn(candidate, t.Name) {
			return candidate, true
		}
	}
	return model.Target{}, false
}
