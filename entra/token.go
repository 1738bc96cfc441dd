package entra

import (
	"net/url"
	"strings"
)

// Grant types supported by the token endpoint.
const (
	GrantAuthorizationCode = "authorization_code"
	GrantRefreshToken      = "refresh_token"
	GrantClientCredentials = "client_credentials"
)

// spaErrorCode is the Entra error indicating the app registration is a
// single-page app, whose codes can only be redeemed cross-origin from a
// browser.
const spaErrorCode = "AADSTS9002327"

// TokenRequest describes one call to the token endpoint. Form renders the
// request body with the invariant that a public client never sends its
// secret on delegated grants.
type TokenRequest struct {
	ClientID     string
	ClientSecret string
	GrantType    string
	Scope        string

	// authorization_code grant
	Code         string
	RedirectURI  string
	CodeVerifier string

	// refresh_token grant
	RefreshToken string

	// PublicClient suppresses the client secret for delegated grants.
	PublicClient bool
}

// Form encodes the request as the token endpoint's form body.
func (r TokenRequest) Form() url.Values {
	form := url.Values{}
	form.Set("client_id", r.ClientID)
	form.Set("grant_type", r.GrantType)

	// The client_credentials grant always authenticates with the secret;
	// delegated grants send it only for confidential clients.
	needsSecret := r.GrantType == GrantClientCredentials || !r.PublicClient
	if needsSecret && r.ClientSecret != "" {
		form.Set("client_secret", r.ClientSecret)
	}

	if r.Scope != "" {
		form.Set("scope", r.Scope)
	}

	switch r.GrantType {
	case GrantAuthorizationCode:
		form.Set("code", r.Code)
		form.Set("redirect_uri", r.RedirectURI)
		if r.CodeVerifier != "" {
			form.Set("code_verifier", r.CodeVerifier)
		}
	case GrantRefreshToken:
		form.Set("refresh_token", r.RefreshToken)
	}

	return form
}

// IsSPARedemptionError reports whether an error detail carries the Entra
// single-page-app redemption error, which means the code must be redeemed
// from a browser origin rather than this CLI.
func IsSPARedemptionError(detail string) bool {
	return strings.Contains(detail, spaErrorCode)
}
