// Package installer is the install-and-report collaborator spec.md §1
// scopes out of the core ("package-manager integrations ... the core
// invokes them via an install-and-report interface"). It shells out
// through internal/process.Runner so the dependency resolution step
// (driven by the Config option resolve_dependencies_with_system_scm) can
// run strictly between pipeline stages, never concurrently with mapper
// execution (spec.md §5).
package installer

import (
	"context"
	"fmt"

	"github.com/arnavsurve/xcgen/internal/process"
)

// Report is what one install invocation reports back to the caller: the
// directories depsgraph.Generator needs (workspace-state.json's
// directory, the checkouts tree, the artifacts tree) once resolution
// completes.
type Report struct {
	StateDir     string
	CheckoutsDir string
	ArtifactsDir string
}

// SystemSCMInstaller resolves a package workspace's dependencies using
// the system-installed package manager (the `resolve_dependencies_with_
// system_scm` generation option), rather than a generator-bundled
// resolver.
type SystemSCMInstaller struct {
	Runner       *process.Runner
	Executable   string // e.g. "swift"
	ResolveArgs  []string
}

// NewSystemSCMInstaller builds a SystemSCMInstaller around the given
// executable (defaults to "swift" with "package resolve").
func NewSystemSCMInstaller(executable string) *SystemSCMInstaller {
	if executable == "" {
		executable = "swift"
	}
	return &SystemSCMInstaller{
		Runner:      process.NewRunner(),
		Executable:  executable,
		ResolveArgs: []string{"package", "resolve"},
	}
}

// Install runs the package manager's resolve step in projectDir and
// reports where the resolved state now lives.
func (s *SystemSCMInstaller) Install(ctx context.Context, projectDir string) (Report, error) {
	if !process.CommandExists(s.Executable) {
		return Report{}, fmt.Errorf("%s not found on PATH", s.Executable)
	}

	if _, err := s.Runner.RunSilent(ctx, s.Executable, append(s.ResolveArgs, "--package-path", projectDir)); err != nil {
		return Report{}, fmt.Errorf("%s %v: %w", s.Executable, s.ResolveArgs, err)
	}

	return Report{
		StateDir:     projectDir + "/.build",
		CheckoutsDir: projectDir + "/.build/checkouts",
		ArtifactsDir: projectDir + "/.build/artifacts",
	}, nil
}
