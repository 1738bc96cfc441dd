package helper

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigConfidentialClientIncludesSecret(t *testing.T) {
	cfg := NewConfig(ConfigParams{
		ClientID:     "client",
		ClientSecret: "shh",
		RedirectURI:  "https://example.com/cb",
		Scope:        "openid profile",
		TenantID:     "tenant-1",
		State:        "none",
	})

	assert.Equal(t, "shh", cfg.ClientSecret)
	assert.Equal(t, "https://login.microsoftonline.com/tenant-1/oauth2/v2.0/token", cfg.TokenEndpoint)
	assert.Equal(t, "https://login.microsoftonline.com/tenant-1/oauth2/v2.0/authorize", cfg.AuthorizationEndpoint)
	assert.Equal(t, "https://login.microsoftonline.com/tenant-1/v2.0/.well-known/openid-configuration", cfg.DiscoveryURL)
	assert.False(t, cfg.PublicClient)
}

func TestNewConfigPublicClientDropsSecret(t *testing.T) {
	cfg := NewConfig(ConfigParams{
		ClientID:     "client",
		ClientSecret: "shh",
		RedirectURI:  "https://example.com/cb",
		TenantID:     "tenant-1",
		PublicClient: true,
	})

	assert.Empty(t, cfg.ClientSecret)
	assert.True(t, cfg.PublicClient)

	raw, err := json.Marshal(cfg)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "client_secret")
}

func TestNewConfigExplicitDiscoveryURLWins(t *testing.T) {
	cfg := NewConfig(ConfigParams{
		TenantID:     "tenant-1",
		DiscoveryURL: "https://login.microsoftonline.com/other/v2.0/.well-known/openid-configuration",
	})
	assert.Equal(t, "https://login.microsoftonline.com/other/v2.0/.well-known/openid-configuration", cfg.DiscoveryURL)
}

func TestHandlerServesPageAndConfig(t *testing.T) {
	s := &Server{Config: NewConfig(ConfigParams{
		ClientID:    "client",
		RedirectURI: "https://example.com/cb",
		TenantID:    "tenant-1",
		State:       "none",
	})}
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "Microsoft Entra Browser Helper")
	assert.Contains(t, string(body), "code_challenge_method")

	resp, err = http.Get(ts.URL + "/config")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var cfg Config
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&cfg))
	assert.Equal(t, "client", cfg.ClientID)
	assert.Equal(t, "tenant-1", cfg.TenantID)
}

func TestServerStartAndStop(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	s := &Server{
		Options: ServerOptions{Port: 0},
		Config:  NewConfig(ConfigParams{ClientID: "client", TenantID: "tenant-1"}),
	}
	require.NoError(t, s.Start(ctx))
	defer s.Stop()

	assert.NotZero(t, s.Port())
	assert.True(t, strings.HasPrefix(s.URL(), "http://127.0.0.1:"))

	resp, err := http.Get(s.URL() + "/config")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
