package entra

import (
	"fmt"
	"net/url"
	"strings"
)

// AuthorizeParams are the query parameters for a tenant-scoped
// authorization URL.
type AuthorizeParams struct {
	TenantID     string
	ClientID     string
	RedirectURI  string
	Scope        string
	ResponseMode string
	ResponseType string
	// State defaults to the "none" placeholder when empty. Callers relying
	// on CSRF protection must supply their own value.
	State string
	// CodeChallenge and CodeChallengeMethod are included only when a
	// challenge is set; the method defaults to S256.
	CodeChallenge       string
	CodeChallengeMethod string
}

// BuildAuthorizationURL constructs the authorization URL for the tenant.
func BuildAuthorizationURL(p AuthorizeParams) string {
	state := p.State
	if state == "" {
		state = "none"
	}

	params := url.Values{}
	params.Set("client_id", p.ClientID)
	params.Set("redirect_uri", p.RedirectURI)
	params.Set("response_mode", p.ResponseMode)
	params.Set("response_type", p.ResponseType)
	params.Set("scope", p.Scope)
	params.Set("state", state)
	if p.CodeChallenge != "" {
		params.Set("code_challenge", p.CodeChallenge)
		method := p.CodeChallengeMethod
		if method == "" {
			method = "S256"
		}
		params.Set("code_challenge_method", method)
	}

	return AuthorizeEndpoint(p.TenantID) + "?" + params.Encode()
}

// ExtractCode pulls the authorization code out of a pasted redirect URL.
// A value with a query string must carry a `code` parameter; a bare value
// (no query) is assumed to be the code itself and passed through.
func ExtractCode(value string) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", fmt.Errorf("authorization code not provided")
	}
	parsed, err := url.Parse(trimmed)
	if err != nil || parsed.RawQuery == "" {
		return trimmed, nil
	}
	code := parsed.Query().Get("code")
	if code == "" {
		return "", fmt.Errorf("redirect URL does not contain a `code` parameter; paste the full redirect URL or just the code")
	}
	return code, nil
}
