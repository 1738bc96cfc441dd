// Package entra performs the raw OAuth 2.0 / OIDC wire calls against
// Microsoft Entra: discovery, authorization URL construction, token grants
// and the Graph userinfo endpoint. Calls are deliberately low level so each
// protocol step stays observable; nothing here validates token signatures.
package entra

import (
	"fmt"

	"golang.org/x/oauth2/microsoft"
)

// Fixed vendor endpoints, templated by tenant where applicable.
const (
	wellKnownFormat = "https://login.microsoftonline.com/%s/v2.0/.well-known/openid-configuration"

	// UserinfoEndpoint is the Microsoft Graph OIDC userinfo endpoint. It is
	// tenant-independent.
	UserinfoEndpoint = "https://graph.microsoft.com/oidc/userinfo"
)

// AuthorizeEndpoint returns the tenant-scoped v2.0 authorization endpoint.
func AuthorizeEndpoint(tenantID string) string {
	return microsoft.AzureADEndpoint(tenantID).AuthURL
}

// TokenEndpoint returns the tenant-scoped v2.0 token endpoint.
func TokenEndpoint(tenantID string) string {
	return microsoft.AzureADEndpoint(tenantID).TokenURL
}

// WellKnownEndpoint returns the tenant-scoped OIDC discovery document URL.
func WellKnownEndpoint(tenantID string) string {
	return fmt.Sprintf(wellKnownFormat, tenantID)
}
