package mapper

import "github.com/arnavsurve/xcgen/internal/model"

// SigningMapper injects code-signing build settings derived from
// whatever certificates/provisioning profiles the CertificateLookup
// collaborator reports for the project's signing directory (spec.md
// §4.G rule 7). It is a no-op when no CertificateLookup is configured —
// generation never requires a signing identity to succeed.
type SigningMapper struct{}

func (SigningMapper) Name() string { return "SigningMapper" }

func (m SigningMapper) Map(p model.Project, ctx *Context) (model.Project, []SideEffect, error) {
	if ctx.CertificateLookup == nil {
		return p, nil, nil
	}

	identities, err := ctx.CertificateLookup.Certificates(ctx.signingDirectory(p.Path))
	if err != nil || len(identities) == 0 {
		return p, nil, nil
	}
	identity := identities[0]

	for i := range p.Targets {
		t := &p.Targets[i]
		if t.Settings == nil {
			s := model.NewSettings()
			t.Settings = &s
		}
		t.Settings.Base["CODE_SIGN_IDENTITY"] = model.StringSetting(identity.Name)
		t.Settings.Base["DEVELOPMENT_TEAM"] = model.StringSetting(identity.TeamID)
	}

	return p, nil, nil
}
