// Package config loads Microsoft Entra client settings from a key=value env
// file, with ENTRA_* environment-variable overrides layered on top. CLI flags
// override both; that merging happens in the command layer.
package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/kelseyhightower/envconfig"
)

// Process-wide defaults. These are fixed at build time; callers override
// them per invocation via the env file or flags.
const (
	// DefaultTenantID is used when neither the env file nor the discovery
	// URL identifies a tenant.
	DefaultTenantID = "14b77578-9773-42d5-8507-251ca2dc2b06"
	// DefaultScope is the scope set requested when none is supplied.
	DefaultScope = "email openid profile offline_access"
	// DefaultEnvFile is the env file consulted when --env-file is not set.
	DefaultEnvFile = ".env"
	// DefaultState is a placeholder state value. Callers relying on CSRF
	// protection must supply their own.
	DefaultState = "none"
)

// Defaults holds client settings resolved from the env file and the
// ENTRA_* environment variables. Loaded once per run, read-only thereafter.
type Defaults struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string
	DiscoveryURL string
	TenantID     string
}

// envOverrides maps ENTRA_* environment variables onto Defaults fields.
type envOverrides struct {
	ClientID     string `envconfig:"CLIENT_ID"`
	ClientSecret string `envconfig:"CLIENT_SECRET"`
	RedirectURI  string `envconfig:"REDIRECT_URI"`
	DiscoveryURL string `envconfig:"DISCOVERY_URL"`
	TenantID     string `envconfig:"TENANT_ID"`
}

// Load reads the env file at path and applies ENTRA_* environment overrides.
// A missing file is not an error; it yields empty defaults. The tenant ID is
// resolved from, in order: the tenant_id key, the discovery URL path, and
// DefaultTenantID.
func Load(path string) (Defaults, error) {
	var d Defaults

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return d, fmt.Errorf("failed to read env file %s: %w", path, err)
	}
	if err == nil {
		values := ParseKeyValueFormat(data)
		d.ClientID = values["client_id"]
		d.ClientSecret = values["client_secret"]
		d.RedirectURI = values["redirect_uri"]
		d.DiscoveryURL = values["discovery_url"]
		d.TenantID = values["tenant_id"]
	}

	var ov envOverrides
	if err := envconfig.Process("entra", &ov); err != nil {
		return d, fmt.Errorf("failed to process environment overrides: %w", err)
	}
	applyOverride(&d.ClientID, ov.ClientID)
	applyOverride(&d.ClientSecret, ov.ClientSecret)
	applyOverride(&d.RedirectURI, ov.RedirectURI)
	applyOverride(&d.DiscoveryURL, ov.DiscoveryURL)
	applyOverride(&d.TenantID, ov.TenantID)

	if d.TenantID == "" {
		d.TenantID = TenantFromDiscoveryURL(d.DiscoveryURL)
	}
	if d.TenantID == "" {
		d.TenantID = DefaultTenantID
	}

	return d, nil
}

func applyOverride(dst *string, value string) {
	if value != "" {
		*dst = value
	}
}

// ParseKeyValueFormat parses content in "key=value" format (one per line).
// Handles quoted values and skips empty lines and comments.
func ParseKeyValueFormat(data []byte) map[string]string {
	values := make(map[string]string)

	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		idx := strings.Index(line, "=")
		if idx <= 0 || idx == len(line)-1 {
			// Invalid line: no '=', '=' at start, or '=' at end
			continue
		}

		key := strings.TrimSpace(line[:idx])
		value := line[idx+1:]
		if key == "" {
			continue
		}

		// Remove surrounding quotes if present (handles both " and ')
		if len(value) >= 2 {
			if (value[0] == '"' && value[len(value)-1] == '"') ||
				(value[0] == '\'' && value[len(value)-1] == '\'') {
				value = value[1 : len(value)-1]
			}
		}

		values[key] = value
	}

	return values
}

// TenantFromDiscoveryURL extracts the tenant ID from a discovery URL of the
// form https://login.microsoftonline.com/{tenant}/v2.0/.well-known/...
// Returns "" when the URL is empty or has no path segments.
func TenantFromDiscoveryURL(rawURL string) string {
	if rawURL == "" {
		return ""
	}
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	for _, part := range strings.Split(parsed.Path, "/") {
		if part != "" {
			return part
		}
	}
	return ""
}

// ResolvePublicClient resolves the public-client flag. When the flag is
// unset (nil), the client is considered public exactly when no secret is
// configured.
func ResolvePublicClient(flag *bool, clientSecret string) bool {
	if flag == nil {
		return clientSecret == ""
	}
	return *flag
}
