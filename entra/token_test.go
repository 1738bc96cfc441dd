package entra

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenRequestPublicClientOmitsSecret(t *testing.T) {
	form := TokenRequest{
		ClientID:     "client",
		ClientSecret: "loaded-but-not-sent",
		GrantType:    GrantAuthorizationCode,
		Code:         "abc123",
		RedirectURI:  "https://example.com/cb",
		Scope:        "openid",
		CodeVerifier: "verifier",
		PublicClient: true,
	}.Form()

	assert.False(t, form.Has("client_secret"), "public clients must never send a secret")
	assert.Equal(t, "abc123", form.Get("code"))
	assert.Equal(t, "https://example.com/cb", form.Get("redirect_uri"))
	assert.Equal(t, "verifier", form.Get("code_verifier"))
	assert.Equal(t, "openid", form.Get("scope"))
}

func TestTokenRequestConfidentialClientSendsSecret(t *testing.T) {
	form := TokenRequest{
		ClientID:     "client",
		ClientSecret: "s3cret",
		GrantType:    GrantAuthorizationCode,
		Code:         "abc123",
		RedirectURI:  "https://example.com/cb",
	}.Form()

	assert.Equal(t, "s3cret", form.Get("client_secret"))
}

func TestTokenRequestRefreshGrant(t *testing.T) {
	form := TokenRequest{
		ClientID:     "client",
		GrantType:    GrantRefreshToken,
		RefreshToken: "refresh-value",
		Scope:        "openid offline_access",
		PublicClient: true,
	}.Form()

	assert.Equal(t, "refresh_token", form.Get("grant_type"))
	assert.Equal(t, "refresh-value", form.Get("refresh_token"))
	assert.False(t, form.Has("code"))
	assert.False(t, form.Has("client_secret"))
}

func TestTokenRequestClientCredentialsAlwaysSendsSecret(t *testing.T) {
	form := TokenRequest{
		ClientID:     "client",
		ClientSecret: "s3cret",
		GrantType:    GrantClientCredentials,
		Scope:        "api://app/.default",
		PublicClient: true, // even if mislabeled public, the grant requires the secret
	}.Form()

	assert.Equal(t, "s3cret", form.Get("client_secret"))
	assert.Equal(t, "api://app/.default", form.Get("scope"))
}

func TestTokenRequestOmitsVerifierWhenEmpty(t *testing.T) {
	form := TokenRequest{
		ClientID:    "client",
		GrantType:   GrantAuthorizationCode,
		Code:        "abc",
		RedirectURI: "https://example.com/cb",
	}.Form()

	assert.False(t, form.Has("code_verifier"))
}

func TestIsSPARedemptionError(t *testing.T) {
	assert.True(t, IsSPARedemptionError(`{"error_description":"AADSTS9002327: Tokens issued for the 'Single-Page Application' client-type..."}`))
	assert.False(t, IsSPARedemptionError("AADSTS700016: application not found"))
	assert.False(t, IsSPARedemptionError(""))
}
