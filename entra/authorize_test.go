package entra

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildAuthorizationURLIncludesPKCEParams(t *testing.T) {
	rawURL := BuildAuthorizationURL(AuthorizeParams{
		TenantID:            "tenant",
		ClientID:            "client",
		RedirectURI:         "https://example.com/cb",
		Scope:               "openid",
		ResponseMode:        "query",
		ResponseType:        "code",
		State:               "xyz",
		CodeChallenge:       "abc123",
		CodeChallengeMethod: "S256",
	})

	require.True(t, strings.HasPrefix(rawURL, "https://login.microsoftonline.com/tenant/oauth2/v2.0/authorize?"))

	parsed, err := url.Parse(rawURL)
	require.NoError(t, err)
	query := parsed.Query()
	assert.Equal(t, "abc123", query.Get("code_challenge"))
	assert.Equal(t, "S256", query.Get("code_challenge_method"))
	assert.Equal(t, "client", query.Get("client_id"))
	assert.Equal(t, "xyz", query.Get("state"))
}

func TestBuildAuthorizationURLWithoutPKCE(t *testing.T) {
	rawURL := BuildAuthorizationURL(AuthorizeParams{
		TenantID:     "tenant",
		ClientID:     "client",
		RedirectURI:  "https://example.com/cb",
		Scope:        "openid",
		ResponseMode: "query",
		ResponseType: "code",
	})

	parsed, err := url.Parse(rawURL)
	require.NoError(t, err)
	query := parsed.Query()
	assert.False(t, query.Has("code_challenge"))
	assert.False(t, query.Has("code_challenge_method"))
	assert.Equal(t, "none", query.Get("state"), "state should default to the placeholder")
}

func TestBuildAuthorizationURLDefaultsChallengeMethod(t *testing.T) {
	rawURL := BuildAuthorizationURL(AuthorizeParams{
		TenantID:      "tenant",
		ClientID:      "client",
		CodeChallenge: "abc",
	})

	parsed, err := url.Parse(rawURL)
	require.NoError(t, err)
	assert.Equal(t, "S256", parsed.Query().Get("code_challenge_method"))
}

func TestExtractCodeFromRedirectURL(t *testing.T) {
	code, err := ExtractCode("https://example.com/cb?code=abc123&state=xyz")
	require.NoError(t, err)
	assert.Equal(t, "abc123", code)
}

func TestExtractCodeBareValuePassesThrough(t *testing.T) {
	code, err := ExtractCode("  abc123  ")
	require.NoError(t, err)
	assert.Equal(t, "abc123", code)
}

func TestExtractCodeMissingParam(t *testing.T) {
	_, err := ExtractCode("https://example.com/cb?state=xyz")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not contain a `code` parameter")
}

func TestExtractCodeEmpty(t *testing.T) {
	_, err := ExtractCode("   ")
	require.Error(t, err)
}
