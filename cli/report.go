package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/Python-AI-Solutions/entra-validation-app/cliout"
	"github.com/Python-AI-Solutions/entra-validation-app/config"
	"github.com/Python-AI-Solutions/entra-validation-app/report"
)

func newReportCommand(root *rootOptions) *cobra.Command {
	var (
		clientID          string
		clientSecret      string
		redirectURI       string
		responseMode      string
		responseType      string
		state             string
		authorizationCode string
		codeVerifier      string
		refreshToken      string
		accessToken       string
		ccScope           string
		disablePKCE       bool
		nonInteractive    bool
		openBrowser       bool
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Run the full Entra validation workflow and emit a pass/fail report",
		RunE: func(cmd *cobra.Command, args []string) error {
			clientID = firstNonEmpty(clientID, root.defaults.ClientID)
			clientSecret = firstNonEmpty(clientSecret, root.defaults.ClientSecret)
			redirectURI = firstNonEmpty(redirectURI, root.defaults.RedirectURI)
			publicClient := config.ResolvePublicClient(publicClientFlag(cmd.Flags()), clientSecret)

			runner := report.New(report.Options{
				EnvFile:                root.envFile,
				ClientID:               clientID,
				ClientSecret:           clientSecret,
				RedirectURI:            redirectURI,
				TenantID:               root.tenantID,
				Scope:                  root.scope,
				State:                  state,
				DiscoveryURL:           root.discoveryURL,
				ResponseMode:           responseMode,
				ResponseType:           responseType,
				AuthorizationCode:      authorizationCode,
				CodeVerifier:           codeVerifier,
				RefreshToken:           refreshToken,
				AccessToken:            accessToken,
				ClientCredentialsScope: ccScope,
				DisablePKCE:            disablePKCE,
				PublicClient:           publicClient,
				NonInteractive:         nonInteractive,
				OpenBrowser:            openBrowser,
				Timeout:                root.httpTimeout(),
			})

			entries := runner.Run(cmd.Context())
			if err := report.Render(entries); err != nil {
				return err
			}
			if report.Failed(entries) {
				if report.NeedsBrowserHelperHint(entries) {
					cliout.Warning("Microsoft Entra treated this app as a SPA. Use the `browser-helper` subcommand to redeem the authorization code directly in the browser.")
				}
				return errors.New("one or more steps failed; see report above for details")
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&clientID, "client-id", "", "Application client ID (default: read from the env file)")
	flags.StringVar(&clientSecret, "client-secret", "", "Application client secret (default: read from the env file)")
	flags.StringVar(&redirectURI, "redirect-uri", "", "Registered redirect URL used in the authorization request")
	flags.StringVar(&responseMode, "response-mode", "query", "Response mode to request from Entra")
	flags.StringVar(&responseType, "response-type", "code", "OIDC response_type")
	flags.StringVar(&state, "state", "none", "Opaque state value")
	flags.StringVar(&authorizationCode, "authorization-code", "", "Authorization code or redirect URL to use instead of prompting")
	flags.StringVar(&codeVerifier, "code-verifier", "", "PKCE code verifier that matches the provided authorization code")
	flags.StringVar(&refreshToken, "refresh-token", "", "Refresh token to test. Defaults to the value returned during report execution")
	flags.StringVar(&accessToken, "access-token", "", "Access token to pass to the userinfo step. Defaults to the token retrieved earlier")
	flags.StringVar(&ccScope, "client-credentials-scope", "", "Scope to use for the client_credentials test (example: api://<app-id>/.default)")
	flags.BoolVar(&disablePKCE, "disable-pkce", false, "Do not include PKCE parameters when generating the authorization URL (not recommended)")
	addPublicClientFlag(flags, "Treat this registration as a public client (no client secret required for delegated grants). Defaults to true if no client secret is configured")
	flags.BoolVar(&nonInteractive, "non-interactive", false, "Do not prompt for missing inputs during the report run")
	flags.BoolVar(&openBrowser, "open-browser", false, "Attempt to open the authorization URL in the default browser when prompting for the code")
	return cmd
}
