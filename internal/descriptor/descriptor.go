// Package descriptor implements the descriptor generator (spec.md §4.I):
// a pure function from a resolved, mapped Graph to a filesystem-agnostic
// snapshot the external writer collaborator turns into the IDE's native
// container format. Nothing in this package touches disk.
package descriptor

import (
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/arnavsurve/xcgen/internal/graph"
	"github.com/arnavsurve/xcgen/internal/mapper"
	"github.com/arnavsurve/xcgen/internal/model"
)

// BuildableReference mirrors the IDE scheme format's
// BuildableReference element (spec.md §6 Scheme bit-level contract).
type BuildableReference struct {
	Container            string
	BuildableName         string
	BlueprintName         string
	BuildableIdentifier   string
	BlueprintIdentifier   string
}

// BuildableProductRunnable is the run/profile action payload for a
// runnable target (spec.md §6).
type BuildableProductRunnable struct {
	Reference             BuildableReference
	RunnableDebuggingMode string
}

// SchemeDescriptor is the IDE-agnostic rendering of one model.Scheme,
// with every target reference resolved to a concrete BuildableReference
// (spec.md §4.I).
type SchemeDescriptor struct {
	Scheme model.Scheme
	Shared bool

	// Scheme-wide flags spec.md §6 fixes regardless of which actions are
	// present.
	SavedToolIdentifier               string
	IgnoresPersistentStateOnLaunch bool
	UseCustomWorkingDirectory       bool
	DebugDocumentVersioning          bool

	BuildActionEntries []BuildableReference

	TestTargets              []BuildableReference
	TestCoverage             bool
	TestCodeCoverageTargets  []BuildableReference
	TestConfiguration        string

	// Exactly one of RunRunnable/RunMacroExpansion is set when RunAction
	// is non-nil, per spec.md §6: "For runnable targets ... buildable
	//_product_runnable ... For non-runnable targets the same data is
	// placed in macro_expansion and buildable_product_runnable is absent."
	RunRunnable        *BuildableProductRunnable
	RunMacroExpansion  *BuildableReference
	RunConfiguration   string
	RunArguments       *model.Arguments

	ProfileRunnable                     *BuildableProductRunnable
	ProfileMacroExpansion                *BuildableReference
	ProfileConfiguration                  string
	ProfileShouldUseLaunchSchemeArgsEnv    bool
	ProfileEnableTestabilityWhenProfiling  bool

	AnalyzeConfiguration string

	ArchiveConfiguration          string
	ArchiveRevealInOrganizer bool
}

// ProjectDescriptor is the filesystem-agnostic snapshot of one project
// container (spec.md §4.I, §6).
type ProjectDescriptor struct {
	Path          string
	ContainerPath string // "<Path>/<FileName>.xcodeproj"
	Project       model.Project

	SharedSchemes []SchemeDescriptor
	UserSchemes   []SchemeDescriptor

	SideEffects []mapper.SideEffect
}

// WorkspaceDescriptor is the top-level output of one generation run
// (spec.md §4.I, §6).
type WorkspaceDescriptor struct {
	Path           string
	WorkspacePath  string // "<Path>/<Name>.xcworkspace"
	Workspace      model.Workspace

	Projects []ProjectDescriptor

	SharedSchemes []SchemeDescriptor
	UserSchemes   []SchemeDescriptor

	SideEffects []mapper.SideEffect
}

// identifierNamespace roots the deterministic per-target object
// identifiers descriptors emit (the BlueprintIdentifier field;
// BuildableIdentifier is always "primary"). Using uuid.NewSHA1 against a
// fixed namespace plus the target's (project path, name) gives
// stable-looking 24-hex identifiers that are identical across runs over the same input
// — required by spec.md §8 testable property 4 ("loading the same
// workspace twice yields byte-identical descriptors").
var identifierNamespace = uuid.MustParse("6f6ae3f0-6e9d-4f5b-8a0a-2a7c9d9a9b10")

func stableIdentifier(parts ...string) string {
	id := uuid.NewSHA1(identifierNamespace, []byte(strings.Join(parts, "\x00")))
	hex := strings.ToUpper(strings.ReplaceAll(id.String(), "-", ""))
	return hex[:24]
}

// Generate lowers a mapped Graph into a WorkspaceDescriptor. It is a pure
// function: identical graphs produce byte-identical descriptors.
func Generate(g *graph.Graph) (*WorkspaceDescriptor, error) {
	wd := &WorkspaceDescriptor{
		Path:          g.Workspace.Path,
		WorkspacePath: g.Workspace.Path + "/" + g.Workspace.Name + ".xcworkspace",
		Workspace:     g.Workspace,
	}

	for _, path := range sortedWorkspaceProjectPaths(g) {
		proj, ok := g.Project(path)
		if !ok {
			continue
		}
		pd := ProjectDescriptor{
			Path:          path,
			ContainerPath: path + "/" + proj.FileName + ".xcodeproj",
			Project:       proj,
		}
		for _, s := range proj.Schemes {
			sd := renderScheme(proj, s)
			if s.Shared {
				pd.SharedSchemes = append(pd.SharedSchemes, sd)
			} else {
				pd.UserSchemes = append(pd.UserSchemes, sd)
			}
		}
		wd.Projects = append(wd.Projects, pd)
	}

	for _, s := range g.Workspace.Schemes {
		sd := renderWorkspaceScheme(g, s)
		if s.Shared {
			wd.SharedSchemes = append(wd.SharedSchemes, sd)
		} else {
			wd.UserSchemes = append(wd.UserSchemes, sd)
		}
	}

	return wd, nil
}

// sortedWorkspaceProjectPaths returns the workspace's project list
// intersected with the graph's resolved projects, in the workspace's
// declared (deduped, first-occurrence) order, falling back to every
// graph project sorted by path if the workspace declares none (a single-
// project generation run with no Workspace.yml).
func sortedWorkspaceProjectPaths(g *graph.Graph) []string {
	if len(g.Workspace.Projects) > 0 {
		return g.Workspace.Projects
	}
	var paths []string
	for _, p := range g.Projects() {
		paths = append(paths, p.Path)
	}
	sort.Strings(paths)
	return paths
}

func buildableRef(p model.Project, ref model.TargetReference) BuildableReference {
	t, _ := p.TargetByName(ref.TargetName)
	return BuildableReference{
		Container:           ref.ProjectPath + "/" + p.FileName + ".xcodeproj",
		BuildableName:       productName(t),
		BlueprintName:       ref.TargetName,
		BuildableIdentifier: "primary",
		BlueprintIdentifier: stableIdentifier(ref.ProjectPath, ref.TargetName),
	}
}

func productName(t model.Target) string {
	if t.Name == "" {
		return ""
	}
	return t.Name
}

func renderScheme(p model.Project, s model.Scheme) SchemeDescriptor {
	sd := SchemeDescriptor{
		Scheme:                   s,
		Shared:                   s.Shared,
		SavedToolIdentifier:      "",
		IgnoresPersistentStateOnLaunch: false,
		UseCustomWorkingDirectory: false,
		DebugDocumentVersioning:   true,
	}

	if s.BuildAction != nil {
		for _, ref := range s.BuildAction.Targets {
			sd.BuildActionEntries = append(sd.BuildActionEntries, buildableRef(p, ref))
		}
	}

	if s.TestAction != nil {
		for _, ref := range s.TestAction.Targets {
			sd.TestTargets = append(sd.TestTargets, buildableRef(p, ref))
		}
		for _, ref := range s.TestAction.CodeCoverageTargets {
			sd.TestCodeCoverageTargets = append(sd.TestCodeCoverageTargets, buildableRef(p, ref))
		}
		sd.TestCoverage = s.TestAction.Coverage
		sd.TestConfiguration = defaultConfig(s.TestAction.Configuration, "Debug")
	}

	if s.RunAction != nil {
		sd.RunConfiguration = defaultConfig(s.RunAction.Configuration, "Debug")
		sd.RunArguments = s.RunAction.Arguments
		if s.RunAction.Executable != nil {
			br := buildableRef(p, *s.RunAction.Executable)
			t, _ := p.TargetByName(s.RunAction.Executable.TargetName)
			if t.Product.IsRunnable() {
				sd.RunRunnable = &BuildableProductRunnable{Reference: br, RunnableDebuggingMode: "0"}
			} else {
				sd.RunMacroExpansion = &br
			}
		}
	}

	if s.ProfileAction != nil {
		sd.ProfileConfiguration = defaultConfig(s.ProfileAction.Configuration, "Release")
		sd.ProfileShouldUseLaunchSchemeArgsEnv = s.ProfileAction.ShouldUseLaunchSchemeArgsEnv
		sd.ProfileEnableTestabilityWhenProfiling = s.ProfileAction.EnableTestabilityWhenProfilingTests
		if s.ProfileAction.Executable != nil {
			br := buildableRef(p, *s.ProfileAction.Executable)
			t, _ := p.TargetByName(s.ProfileAction.Executable.TargetName)
			if t.Product.IsRunnable() {
				sd.ProfileRunnable = &BuildableProductRunnable{Reference: br, RunnableDebuggingMode: "0"}
			} else {
				sd.ProfileMacroExpansion = &br
			}
		}
	}

	if s.AnalyzeAction != nil {
		sd.AnalyzeConfiguration = defaultConfig(s.AnalyzeAction.Configuration, "Debug")
	}

	if s.ArchiveAction != nil {
		sd.ArchiveConfiguration = defaultConfig(s.ArchiveAction.Configuration, "Release")
		sd.ArchiveRevealInOrganizer = true
	} else {
		sd.ArchiveConfiguration = "Release"
		sd.ArchiveRevealInOrganizer = true
	}

	return sd
}

// renderWorkspaceScheme renders a workspace-scoped scheme (e.g. the
// automation scheme AutomationGraphMapper injects), whose target
// references may span multiple projects.
func renderWorkspaceScheme(g *graph.Graph, s model.Scheme) SchemeDescriptor {
	sd := SchemeDescriptor{Scheme: s, Shared: s.Shared, DebugDocumentVersioning: true}

	refFor := func(ref model.TargetReference) BuildableReference {
		proj, ok := g.Project(ref.ProjectPath)
		if !ok {
			return BuildableReference{BlueprintName: ref.TargetName, BuildableName: ref.TargetName}
		}
		return buildableRef(proj, ref)
	}

	if s.BuildAction != nil {
		for _, ref := range s.BuildAction.Targets {
			sd.BuildActionEntries = append(sd.BuildActionEntries, refFor(ref))
		}
	}
	if s.TestAction != nil {
		for _, ref := range s.TestAction.Targets {
			sd.TestTargets = append(sd.TestTargets, refFor(ref))
		}
		sd.TestCoverage = s.TestAction.Coverage
		sd.TestConfiguration = defaultConfig(s.TestAction.Configuration, "Debug")
	}
	return sd
}

func defaultConfig(configured, fallback string) string {
	if configured != "" {
		return configured
	}
	return fallback
}
