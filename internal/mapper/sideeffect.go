// Package mapper implements the project and graph mapper pipelines
// (spec.md §4.G, §4.H): ordered, pure transforms over the typed model that
// each return the transformed value plus any side effects the eventual
// disk writer must perform. Mappers never touch the filesystem themselves.
package mapper

// SideEffectKind tags one deferred filesystem action a mapper requests.
type SideEffectKind string

const (
	SideEffectDeleteDirectory SideEffectKind = "delete_directory"
	SideEffectWriteFile       SideEffectKind = "write_file"
)

// SideEffect is a deferred filesystem action. The descriptor generator
// (spec.md §4.I) and core never execute these directly; they are carried
// through to the external writer collaborator.
type SideEffect struct {
	Kind     SideEffectKind
	Path     string
	Contents []byte
}
