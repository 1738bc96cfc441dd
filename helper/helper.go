// Package helper serves the local browser-helper page. Microsoft Entra
// refuses to redeem authorization codes for SPA registrations from anything
// but a browser origin, so the helper moves the token exchange into the
// user's browser while the CLI only hosts the page and its configuration.
package helper

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/Python-AI-Solutions/entra-validation-app/entra"
	"github.com/Python-AI-Solutions/entra-validation-app/logutil"
)

//go:embed page.html
var pageHTML []byte

// Config is the payload served at /config. The page reads it once at load
// time and keeps any edits in the browser session only.
type Config struct {
	ClientID              string `json:"client_id"`
	ClientSecret          string `json:"client_secret,omitempty"`
	RedirectURI           string `json:"redirect_uri"`
	Scope                 string `json:"scope"`
	TenantID              string `json:"tenant_id"`
	TokenEndpoint         string `json:"token_endpoint"`
	AuthorizationEndpoint string `json:"authorization_endpoint"`
	UserinfoEndpoint      string `json:"userinfo_endpoint"`
	DiscoveryURL          string `json:"discovery_url"`
	State                 string `json:"state"`
	PublicClient          bool   `json:"public_client"`
}

// ConfigParams carries the resolved CLI inputs that feed the helper page.
type ConfigParams struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string
	Scope        string
	TenantID     string
	DiscoveryURL string
	State        string
	PublicClient bool
}

// NewConfig derives the full helper configuration, filling in the Entra
// endpoints for the tenant. The client secret is included only for
// confidential clients; public-client flows must never see it.
func NewConfig(p ConfigParams) Config {
	discovery := p.DiscoveryURL
	if discovery == "" {
		discovery = entra.WellKnownEndpoint(p.TenantID)
	}
	cfg := Config{
		ClientID:              p.ClientID,
		RedirectURI:           p.RedirectURI,
		Scope:                 p.Scope,
		TenantID:              p.TenantID,
		TokenEndpoint:         entra.TokenEndpoint(p.TenantID),
		AuthorizationEndpoint: entra.AuthorizeEndpoint(p.TenantID),
		UserinfoEndpoint:      entra.UserinfoEndpoint,
		DiscoveryURL:          discovery,
		State:                 p.State,
		PublicClient:          p.PublicClient,
	}
	if !p.PublicClient && p.ClientSecret != "" {
		cfg.ClientSecret = p.ClientSecret
	}
	return cfg
}

// ServerOptions holds the listen address for the helper server.
type ServerOptions struct {
	// Host to bind. Defaults to 127.0.0.1.
	Host string
	// Port to listen on. Use 0 for auto-assign.
	Port int
}

// Server hosts the helper page and its configuration endpoint.
type Server struct {
	Options ServerOptions
	Config  Config

	httpServer *http.Server
	listener   net.Listener
	port       int
	done       chan struct{} // closed when the serve goroutine exits
}

// Port returns the actual port the server is listening on.
func (s *Server) Port() int {
	return s.port
}

// URL returns the address users should open in a browser.
func (s *Server) URL() string {
	host := s.Options.Host
	if host == "" {
		host = "127.0.0.1"
	}
	return fmt.Sprintf("http://%s:%d", host, s.port)
}

// Handler builds the helper's router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/", s.handleIndex)
	r.Get("/config", s.handleConfig)
	return r
}

// Start begins listening and serves in a background goroutine.
func (s *Server) Start(ctx context.Context) error {
	host := s.Options.Host
	if host == "" {
		host = "127.0.0.1"
	}

	var lc net.ListenConfig
	listener, err := lc.Listen(ctx, "tcp", fmt.Sprintf("%s:%d", host, s.Options.Port))
	if err != nil {
		return fmt.Errorf("failed to create listener: %w", err)
	}
	s.listener = listener

	tcpAddr, ok := listener.Addr().(*net.TCPAddr)
	if !ok {
		_ = listener.Close()
		return fmt.Errorf("listener address is not a TCP address")
	}
	s.port = tcpAddr.Port

	s.httpServer = &http.Server{
		Handler:      s.Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.done = make(chan struct{})
	go func() {
		defer close(s.done)
		if err := s.httpServer.Serve(s.listener); err != nil && err != http.ErrServerClosed {
			logutil.Error("browser helper server error", "error", err)
		}
	}()

	logutil.Debug("browser helper listening", "url", s.URL())
	return nil
}

// Wait blocks until the server stops or the context is canceled. On
// cancellation the server is shut down gracefully.
func (s *Server) Wait(ctx context.Context) error {
	select {
	case <-s.done:
		return nil
	case <-ctx.Done():
		s.Stop()
		return ctx.Err()
	}
}

// Stop gracefully shuts down the server.
func (s *Server) Stop() {
	if s.httpServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.httpServer.Shutdown(ctx); err != nil {
			logutil.Error("browser helper shutdown error", "error", err)
		}
	}
	if s.done != nil {
		select {
		case <-s.done:
		case <-time.After(5 * time.Second):
			logutil.Warn("browser helper goroutine did not exit within 5s")
		}
	}
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(pageHTML)
}

func (s *Server) handleConfig(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(s.Config); err != nil {
		logutil.Error("failed to encode helper config", "error", err)
	}
}
