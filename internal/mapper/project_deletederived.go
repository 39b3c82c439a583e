package mapper

import "github.com/arnavsurve/xcgen/internal/model"

// DeleteDerivedDirectoryProjectMapper requests removal of the project's
// derived-artifact directory as a side effect (spec.md §4.G rule 2). It
// never touches the filesystem itself — the external writer collaborator
// executes the deferred SideEffect after every mapper has run.
type DeleteDerivedDirectoryProjectMapper struct{}

func (DeleteDerivedDirectoryProjectMapper) Name() string { return "DeleteDerivedDirectoryProjectMapper" }

func (m DeleteDerivedDirectoryProjectMapper) Map(p model.Project, ctx *Context) (model.Project, []SideEffect, error) {
	return p, []SideEffect{{
		Kind: SideEffectDeleteDirectory,
		Path: ctx.derivedDataPath(p.Path),
	}}, nil
}
