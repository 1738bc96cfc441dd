package report

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"golang.org/x/term"

	"github.com/Python-AI-Solutions/entra-validation-app/browser"
	"github.com/Python-AI-Solutions/entra-validation-app/entra"
	"github.com/Python-AI-Solutions/entra-validation-app/pkce"
)

// Options configures one validation run. Values come from the env file and
// CLI flags; they are read-only for the duration of the run.
type Options struct {
	EnvFile      string
	ClientID     string
	ClientSecret string
	RedirectURI  string
	TenantID     string
	Scope        string
	State        string
	DiscoveryURL string
	ResponseMode string
	ResponseType string

	// Step-specific inputs. Each substitutes for the output of an earlier
	// step when supplied.
	AuthorizationCode      string
	CodeVerifier           string
	RefreshToken           string
	AccessToken            string
	ClientCredentialsScope string

	DisablePKCE    bool
	PublicClient   bool
	NonInteractive bool
	OpenBrowser    bool

	Timeout time.Duration
}

// Runner executes the validation steps in order, threading values produced
// by earlier steps (verifier, code, tokens) to later ones.
type Runner struct {
	opts   Options
	client *entra.Client

	tokenEndpoint    string
	discoveryURL     string
	userinfoEndpoint string

	stdin      io.Reader
	stdout     io.Writer
	isTerminal func() bool
	openURL    func(string) error

	// session context, discarded when the run ends
	codeVerifier      string
	authorizationCode string
	exchangeTokens    map[string]any

	entries []Entry
}

// New creates a Runner for the given options.
func New(opts Options) *Runner {
	discovery := opts.DiscoveryURL
	if discovery == "" {
		discovery = entra.WellKnownEndpoint(opts.TenantID)
	}
	return &Runner{
		opts:             opts,
		client:           entra.NewClient(opts.Timeout),
		tokenEndpoint:    entra.TokenEndpoint(opts.TenantID),
		discoveryURL:     discovery,
		userinfoEndpoint: entra.UserinfoEndpoint,
		stdin:            os.Stdin,
		stdout:           os.Stdout,
		isTerminal: func() bool {
			return term.IsTerminal(int(os.Stdin.Fd()))
		},
		openURL: func(url string) error {
			return browser.Launch(browser.LaunchOptions{URL: url, Target: browser.TargetDefault})
		},
		codeVerifier: opts.CodeVerifier,
	}
}

// Run executes all steps in fixed order and returns the recorded entries.
func (r *Runner) Run(ctx context.Context) []Entry {
	r.runStep(ctx, fmt.Sprintf("Load configuration from %s", r.opts.EnvFile), r.stepConfig)
	r.runStep(ctx, "Fetch OIDC discovery metadata", r.stepDiscovery)
	r.runStep(ctx, "Client credentials grant", r.stepClientCredentials)
	r.runStep(ctx, "Authorization code capture", r.stepAuthorization)
	r.runStep(ctx, "Exchange authorization code for tokens", r.stepToken)
	r.runStep(ctx, "Refresh token exchange", r.stepRefresh)
	r.runStep(ctx, "Userinfo endpoint call", r.stepUserinfo)
	return r.entries
}

// runStep converts a step's return/skip/error uniformly into an Entry.
func (r *Runner) runStep(ctx context.Context, name string, fn func(context.Context) (string, error)) {
	detail, err := fn(ctx)
	switch {
	case err == nil:
		r.entries = append(r.entries, Entry{Name: name, Status: StatusPass, Detail: detail})
	case IsSkip(err):
		r.entries = append(r.entries, Entry{Name: name, Status: StatusSkip, Detail: err.Error()})
	default:
		r.entries = append(r.entries, Entry{Name: name, Status: StatusFail, Detail: err.Error()})
	}
}

func (r *Runner) usePKCE() bool {
	return !r.opts.DisablePKCE
}

func (r *Runner) stepConfig(ctx context.Context) (string, error) {
	required := []struct {
		label   string
		present bool
	}{
		{"client_id", r.opts.ClientID != ""},
		{"redirect_uri", r.opts.RedirectURI != ""},
	}
	if !r.opts.PublicClient {
		required = append(required, struct {
			label   string
			present bool
		}{"client_secret", r.opts.ClientSecret != ""})
	}

	var missing []string
	for _, req := range required {
		if !req.present {
			missing = append(missing, req.label)
		}
	}
	if len(missing) > 0 {
		return "", fmt.Errorf("missing required values in %s: %s", r.opts.EnvFile, strings.Join(missing, ", "))
	}

	var secretDetail string
	switch {
	case r.opts.PublicClient && r.opts.ClientSecret != "":
		secretDetail = "Client secret: loaded (not sent for public-client flow)"
	case r.opts.PublicClient:
		secretDetail = "Client secret: not required for public-client flow"
	default:
		secretDetail = "Client secret: loaded"
	}

	lines := []string{
		fmt.Sprintf("Client ID: loaded (%d chars)", len(r.opts.ClientID)),
		fmt.Sprintf("Redirect URI: %s", r.opts.RedirectURI),
		secretDetail,
	}
	return strings.Join(lines, "\n"), nil
}

func (r *Runner) stepDiscovery(ctx context.Context) (string, error) {
	resp, err := r.client.Get(ctx, r.discoveryURL, "")
	if err != nil {
		return "", err
	}
	var metadata map[string]any
	if err := resp.JSON(&metadata); err != nil {
		return "", err
	}
	issuer := stringClaim(metadata, "issuer")
	tokenEndpoint := stringClaim(metadata, "token_endpoint")
	return fmt.Sprintf("Issuer: %s\nToken endpoint: %s", issuer, tokenEndpoint), nil
}

func (r *Runner) stepClientCredentials(ctx context.Context) (string, error) {
	if r.opts.PublicClient {
		return "", skipf("Client credentials grant skipped because this app is registered as a public client.")
	}
	scope := r.opts.ClientCredentialsScope
	if scope == "" {
		return "", skipf("No client-credentials scope supplied. Provide `--client-credentials-scope` to exercise this step.")
	}

	form := entra.TokenRequest{
		ClientID:     r.opts.ClientID,
		ClientSecret: r.opts.ClientSecret,
		GrantType:    entra.GrantClientCredentials,
		Scope:        scope,
	}.Form()
	resp, err := r.client.PostForm(ctx, r.tokenEndpoint, form)
	if err != nil {
		return "", err
	}
	var parsed map[string]any
	if err := resp.JSON(&parsed); err != nil {
		return "", err
	}

	accessToken, _ := parsed["access_token"].(string)
	return fmt.Sprintf("Issued client_credentials access token (length %d chars, expires in %ss).",
		len(accessToken), expiresIn(parsed)), nil
}

func (r *Runner) stepAuthorization(ctx context.Context) (string, error) {
	if r.opts.AuthorizationCode != "" {
		if r.usePKCE() && r.codeVerifier == "" {
			return "", fmt.Errorf("PKCE is required for this flow. Supply --code-verifier with the value used when obtaining the code")
		}
		extracted, err := entra.ExtractCode(r.opts.AuthorizationCode)
		if err != nil {
			return "", err
		}
		r.authorizationCode = extracted
		return "Authorization code supplied via CLI options.", nil
	}

	if r.opts.NonInteractive || !r.isTerminal() {
		return "", skipf("Authorization code not provided and prompts are disabled (--non-interactive).")
	}

	if r.usePKCE() && r.codeVerifier == "" {
		r.codeVerifier = pkce.GenerateVerifier()
	}
	var challenge string
	if r.usePKCE() && r.codeVerifier != "" {
		challenge = pkce.ChallengeS256(r.codeVerifier)
	}
	authURL := entra.BuildAuthorizationURL(entra.AuthorizeParams{
		TenantID:      r.opts.TenantID,
		ClientID:      r.opts.ClientID,
		RedirectURI:   r.opts.RedirectURI,
		Scope:         r.opts.Scope,
		ResponseMode:  r.opts.ResponseMode,
		ResponseType:  r.opts.ResponseType,
		State:         r.opts.State,
		CodeChallenge: challenge,
	})

	fmt.Fprintf(r.stdout, "\nAuthorization URL:\n%s\n\n", authURL)
	if r.codeVerifier != "" {
		fmt.Fprintf(r.stdout, "PKCE code verifier for this session (you only need this if you re-run with --authorization-code):\n%s\n\n", r.codeVerifier)
	}
	fmt.Fprintln(r.stdout, "Open the authorization URL above in a browser.")
	fmt.Fprintln(r.stdout, "Complete the login and paste the resulting redirect URL or code.")
	if r.opts.OpenBrowser {
		// Best effort; a launch failure must not block the prompt.
		_ = r.openURL(authURL)
	}
	fmt.Fprint(r.stdout, "Paste the redirect URL or authorization code (leave blank to skip): ")

	line, err := bufio.NewReader(r.stdin).ReadString('\n')
	if err != nil && line == "" {
		return "", skipf("Authorization code not provided. Re-run with --authorization-code or allow interactive prompts.")
	}
	raw := strings.TrimSpace(line)
	if raw == "" {
		return "", skipf("Authorization code not provided. Re-run with --authorization-code or allow interactive prompts.")
	}
	extracted, err := entra.ExtractCode(raw)
	if err != nil {
		return "", err
	}
	r.authorizationCode = extracted
	return "Authorization code captured via interactive login.", nil
}

func (r *Runner) stepToken(ctx context.Context) (string, error) {
	if r.authorizationCode == "" {
		return "", skipf("No authorization code captured; token exchange skipped.")
	}
	if r.usePKCE() && r.codeVerifier == "" {
		return "", fmt.Errorf("PKCE code verifier missing. Capture the code and verifier in the same run or provide --code-verifier")
	}

	form := entra.TokenRequest{
		ClientID:     r.opts.ClientID,
		ClientSecret: r.opts.ClientSecret,
		GrantType:    entra.GrantAuthorizationCode,
		Code:         r.authorizationCode,
		RedirectURI:  r.opts.RedirectURI,
		Scope:        r.opts.Scope,
		CodeVerifier: r.codeVerifier,
		PublicClient: r.opts.PublicClient,
	}.Form()
	resp, err := r.client.PostForm(ctx, r.tokenEndpoint, form)
	if err != nil {
		return "", err
	}
	var parsed map[string]any
	if err := resp.JSON(&parsed); err != nil {
		return "", err
	}
	r.exchangeTokens = parsed

	accessToken, _ := parsed["access_token"].(string)
	_, hasRefresh := parsed["refresh_token"]
	lines := []string{
		fmt.Sprintf("Received access token (length %d chars).", len(accessToken)),
		fmt.Sprintf("Expires in: %s seconds.", expiresIn(parsed)),
		fmt.Sprintf("Refresh token issued: %s.", yesNo(hasRefresh)),
	}
	if summary := entra.SummarizeToken(accessToken); summary != "" {
		lines = append(lines, "Token claims: "+summary)
	}
	return strings.Join(lines, "\n"), nil
}

func (r *Runner) stepRefresh(ctx context.Context) (string, error) {
	refreshToken := r.opts.RefreshToken
	if refreshToken == "" && r.exchangeTokens != nil {
		refreshToken, _ = r.exchangeTokens["refresh_token"].(string)
	}
	if refreshToken == "" {
		return "", skipf("No refresh token available. Ensure offline_access scope is granted.")
	}

	form := entra.TokenRequest{
		ClientID:     r.opts.ClientID,
		ClientSecret: r.opts.ClientSecret,
		GrantType:    entra.GrantRefreshToken,
		RefreshToken: refreshToken,
		Scope:        r.opts.Scope,
		PublicClient: r.opts.PublicClient,
	}.Form()
	resp, err := r.client.PostForm(ctx, r.tokenEndpoint, form)
	if err != nil {
		return "", err
	}
	var parsed map[string]any
	if err := resp.JSON(&parsed); err != nil {
		return "", err
	}
	return fmt.Sprintf("Refresh token exchanged successfully (new access token expires in %ss).", expiresIn(parsed)), nil
}

func (r *Runner) stepUserinfo(ctx context.Context) (string, error) {
	accessToken := r.opts.AccessToken
	if accessToken == "" && r.exchangeTokens != nil {
		accessToken, _ = r.exchangeTokens["access_token"].(string)
	}
	if accessToken == "" {
		return "", skipf("No access token available for userinfo call.")
	}

	resp, err := r.client.Get(ctx, r.userinfoEndpoint, accessToken)
	if err != nil {
		return "", err
	}
	var claims map[string]any
	if err := resp.JSON(&claims); err != nil {
		return "", err
	}

	var lines []string
	for _, key := range []string{"sub", "email", "name", "preferred_username"} {
		if value, ok := claims[key]; ok && value != nil {
			lines = append(lines, fmt.Sprintf("%s: %v", key, value))
		}
	}
	if len(lines) == 0 {
		return "No standard claims returned.", nil
	}
	return strings.Join(lines, "\n"), nil
}

// expiresIn renders the expires_in value of a token response, or "unknown"
// when absent.
func expiresIn(parsed map[string]any) string {
	switch v := parsed["expires_in"].(type) {
	case float64:
		return fmt.Sprintf("%.0f", v)
	case string:
		return v
	default:
		return "unknown"
	}
}

func stringClaim(m map[string]any, key string) string {
	if v, ok := m[key].(string); ok && v != "" {
		return v
	}
	return "<unknown>"
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
