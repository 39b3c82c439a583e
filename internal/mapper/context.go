package mapper

import (
	"path/filepath"

	"github.com/arnavsurve/xcgen/internal/config"
	"github.com/arnavsurve/xcgen/internal/services"
)

// SigningIdentity is one certificate/provisioning-profile pair the signing
// directory collaborator reports.
type SigningIdentity struct {
	Name   string
	TeamID string
}

// CertificateLookup is the external collaborator SigningMapper calls to
// discover available signing identities (spec.md §4.G rule 7).
type CertificateLookup interface {
	Certificates(signingDir string) ([]SigningIdentity, error)
}

// InfoPlistContentProvider renders a synthesized Info.plist dictionary to
// its on-disk bytes (spec.md §4.G rule 4). It is an external collaborator
// so the core never depends on one specific plist serialization library.
type InfoPlistContentProvider interface {
	Render(dict map[string]any) ([]byte, error)
}

// Context carries the collaborators and configuration the project mapper
// pipeline needs but does not own.
type Context struct {
	Config   *config.Config
	Services *services.Services

	// DerivedDataPath returns the derived-artifact directory for a project
	// path; defaults to "<project>/.xcgen-derived" if nil.
	DerivedDataPath func(projectPath string) string

	// SigningDirectory returns the directory CertificateLookup should
	// inspect for a project path; defaults to "<project>/Signing" if nil.
	SigningDirectory func(projectPath string) string

	CertificateLookup CertificateLookup
	InfoPlistProvider InfoPlistContentProvider
}

func (c *Context) derivedDataPath(projectPath string) string {
	if c.DerivedDataPath != nil {
		return c.DerivedDataPath(projectPath)
	}
	return filepath.Join(projectPath, ".xcgen-derived")
}

func (c *Context) signingDirectory(projectPath string) string {
	if c.SigningDirectory != nil {
		return c.SigningDirectory(projectPath)
	}
	return filepath.Join(projectPath, "Signing")
}

func (c *Context) infoPlistProvider() InfoPlistContentProvider {
	if c.InfoPlistProvider != nil {
		return c.InfoPlistProvider
	}
	return DefaultInfoPlistProvider{}
}
