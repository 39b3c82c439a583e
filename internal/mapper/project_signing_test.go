package mapper

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arnavsurve/xcgen/internal/config"
	"github.com/arnavsurve/xcgen/internal/model"
	"github.com/arnavsurve/xcgen/internal/services"
)

type fakeCertificateLookup struct {
	identities []SigningIdentity
	err        error
}

func (f fakeCertificateLookup) Certificates(signingDir string) ([]SigningIdentity, error) {
	return f.identities, f.err
}

func TestSigningMapperAppliesFirstIdentityToAllTargets(t *testing.T) {
	lookup := fakeCertificateLookup{identities: []SigningIdentity{
		{Name: "Apple Distribution: Acme Inc.", TeamID: "ABCDE12345"},
		{Name: "Apple Development: Jane Doe", TeamID: "ABCDE12345"},
	}}
	ctx := &Context{Config: config.Default(), Services: services.Default(), CertificateLookup: lookup}

	p := model.Project{
		Path: "/repo/App",
		Targets: []model.Target{
			{Name: "App"},
			{Name: "Widget"},
		},
	}

	mapped, effects, err := SigningMapper{}.Map(p, ctx)
	require.NoError(t, err)
	require.Empty(t, effects)
	for _, target := range mapped.Targets {
		require.NotNil(t, target.Settings)
		require.Equal(t, model.StringSetting("Apple Distribution: Acme Inc."), target.Settings.Base["CODE_SIGN_IDENTITY"])
		require.Equal(t, model.StringSetting("ABCDE12345"), target.Settings.Base["DEVELOPMENT_TEAM"])
	}
}

func TestSigningMapperNoopWithoutCertificateLookup(t *testing.T) {
	ctx := &Context{Config: config.Default(), Services: services.Default()}
	p := model.Project{Targets: []model.Target{{Name: "App"}}}

	mapped, _, err := SigningMapper{}.Map(p, ctx)
	require.NoError(t, err)
	require.Nil(t, mapped.Targets[0].Settings)
}

func TestSigningMapperNoopWhenLookupFails(t *testing.T) {
	ctx := &Context{Config: config.Default(), Services: services.Default(), CertificateLookup: fakeCertificateLookup{err: errors.New("keychain locked")}}
	p := model.Project{Targets: []model.Target{{Name: "App"}}}

	mapped, _, err := SigningMapper{}.Map(p, ctx)
	require.NoError(t, err)
	require.Nil(t, mapped.Targets[0].Settings)
}
