package cli

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Python-AI-Solutions/entra-validation-app/version"
)

func execute(t *testing.T, args ...string) error {
	t.Helper()
	root := NewRootCommand(version.New("entra-validate"))
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	return root.Execute()
}

// writeEnvFile creates a temp env file and returns its path.
func writeEnvFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// missingEnvFile returns a path that does not exist, so no defaults load.
func missingEnvFile(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "absent.env")
}

func TestAuthorizeRequiresClientID(t *testing.T) {
	err := execute(t, "authorize", "--env-file", missingEnvFile(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--client-id is required")
}

func TestAuthorizeRequiresRedirectURI(t *testing.T) {
	err := execute(t, "authorize", "--env-file", missingEnvFile(t), "--client-id", "client")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--redirect-uri is required")
}

func TestAuthorizeUsesEnvFileDefaults(t *testing.T) {
	envFile := writeEnvFile(t, `
client_id=11111111-2222-3333-4444-555555555555
redirect_uri="https://example.com/callback"
discovery_url=https://login.microsoftonline.com/env-tenant/v2.0/.well-known/openid-configuration
`)
	err := execute(t, "authorize", "--env-file", envFile)
	assert.NoError(t, err)
}

func TestAuthorizeRejectsInvalidVerifier(t *testing.T) {
	envFile := writeEnvFile(t, "client_id=client\nredirect_uri=https://example.com/cb\n")
	err := execute(t, "authorize", "--env-file", envFile, "--code-verifier", "too-short")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid --code-verifier")
}

func TestTokenRequiresCode(t *testing.T) {
	err := execute(t, "token", "--env-file", missingEnvFile(t),
		"--client-id", "client", "--redirect-uri", "https://example.com/cb")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--code is required")
}

func TestTokenRequiresRedirectURI(t *testing.T) {
	err := execute(t, "token", "--env-file", missingEnvFile(t),
		"--client-id", "client", "--code", "abc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--redirect-uri is required")
}

func TestTokenRequiresRefreshToken(t *testing.T) {
	err := execute(t, "token", "--env-file", missingEnvFile(t),
		"--client-id", "client", "--grant-type", "refresh_token")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--refresh-token is required")
}

func TestTokenRejectsUnknownGrantType(t *testing.T) {
	err := execute(t, "token", "--env-file", missingEnvFile(t),
		"--client-id", "client", "--grant-type", "password")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid --grant-type")
}

func TestTokenClientCredentialsForbiddenForPublicClients(t *testing.T) {
	err := execute(t, "token", "--env-file", missingEnvFile(t),
		"--client-id", "client", "--grant-type", "client_credentials", "--public-client")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not available for public clients")
}

func TestTokenSecretRequiredWhenConfidential(t *testing.T) {
	err := execute(t, "token", "--env-file", missingEnvFile(t),
		"--client-id", "client", "--code", "abc", "--redirect-uri", "https://example.com/cb",
		"--public-client=false")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--client-secret is required")
}

func TestBrowserHelperRequiresClientIDAndRedirectURI(t *testing.T) {
	err := execute(t, "browser-helper", "--env-file", missingEnvFile(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--client-id and --redirect-uri are required")
}

func TestBrowserHelperRejectsInvalidRedirectURI(t *testing.T) {
	err := execute(t, "browser-helper", "--env-file", missingEnvFile(t),
		"--client-id", "client", "--redirect-uri", "not-a-url")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid redirect URI")
}

func TestBrowserHelperRejectsUnknownBrowserTarget(t *testing.T) {
	err := execute(t, "browser-helper", "--env-file", missingEnvFile(t),
		"--client-id", "client", "--redirect-uri", "https://example.com/cb",
		"--open-browser", "--browser", "chromium")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid --browser")
}

func TestGuidePrintsSnapshot(t *testing.T) {
	envFile := writeEnvFile(t, "client_id=client\n")
	assert.NoError(t, execute(t, "guide", "--env-file", envFile))
}

func TestRootRejectsInvalidOutputFormat(t *testing.T) {
	err := execute(t, "guide", "--env-file", missingEnvFile(t), "--output", "yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid output format")
}

func TestPublicClientFlagTriState(t *testing.T) {
	newFlags := func() *pflag.FlagSet {
		fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
		addPublicClientFlag(fs, "usage")
		return fs
	}

	fs := newFlags()
	require.NoError(t, fs.Parse(nil))
	assert.Nil(t, publicClientFlag(fs), "unset flag stays undecided")

	fs = newFlags()
	require.NoError(t, fs.Parse([]string{"--public-client"}))
	require.NotNil(t, publicClientFlag(fs))
	assert.True(t, *publicClientFlag(fs))

	fs = newFlags()
	require.NoError(t, fs.Parse([]string{"--public-client=false"}))
	require.NotNil(t, publicClientFlag(fs))
	assert.False(t, *publicClientFlag(fs))
}

func TestFirstNonEmpty(t *testing.T) {
	assert.Equal(t, "flag", firstNonEmpty("flag", "env"))
	assert.Equal(t, "env", firstNonEmpty("", "env"))
	assert.Equal(t, "", firstNonEmpty("", ""))
}
