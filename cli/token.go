package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Python-AI-Solutions/entra-validation-app/cliout"
	"github.com/Python-AI-Solutions/entra-validation-app/config"
	"github.com/Python-AI-Solutions/entra-validation-app/entra"
)

func newTokenCommand(root *rootOptions) *cobra.Command {
	var (
		clientID     string
		clientSecret string
		grantType    string
		code         string
		refreshToken string
		redirectURI  string
		codeVerifier string
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Call the Entra token endpoint",
		RunE: func(cmd *cobra.Command, args []string) error {
			clientID = firstNonEmpty(clientID, root.defaults.ClientID)
			clientSecret = firstNonEmpty(clientSecret, root.defaults.ClientSecret)
			redirectURI = firstNonEmpty(redirectURI, root.defaults.RedirectURI)
			publicClient := config.ResolvePublicClient(publicClientFlag(cmd.Flags()), clientSecret)

			switch grantType {
			case entra.GrantAuthorizationCode, entra.GrantRefreshToken, entra.GrantClientCredentials:
			default:
				return fmt.Errorf("invalid --grant-type %q (valid options: authorization_code, refresh_token, client_credentials)", grantType)
			}
			if clientID == "" {
				return fmt.Errorf("--client-id is required when the env file does not define client_id")
			}
			switch grantType {
			case entra.GrantAuthorizationCode:
				if code == "" {
					return fmt.Errorf("--code is required for the authorization_code grant")
				}
				if redirectURI == "" {
					return fmt.Errorf("--redirect-uri is required for the authorization_code grant")
				}
			case entra.GrantRefreshToken:
				if refreshToken == "" {
					return fmt.Errorf("--refresh-token is required for the refresh_token grant")
				}
			case entra.GrantClientCredentials:
				if publicClient {
					return fmt.Errorf("client credentials flow is not available for public clients; remove --public-client")
				}
				if root.scope == "" {
					return fmt.Errorf("--scope is required for the client_credentials grant")
				}
			}

			needsSecret := grantType == entra.GrantClientCredentials || !publicClient
			if needsSecret && clientSecret == "" {
				return fmt.Errorf("--client-secret is required unless you set --public-client for the authorization_code/refresh_token grants")
			}

			form := entra.TokenRequest{
				ClientID:     clientID,
				ClientSecret: clientSecret,
				GrantType:    grantType,
				Scope:        root.scope,
				Code:         code,
				RedirectURI:  redirectURI,
				CodeVerifier: codeVerifier,
				RefreshToken: refreshToken,
				PublicClient: publicClient,
			}.Form()

			client := entra.NewClient(root.httpTimeout())
			resp, err := client.PostForm(cmd.Context(), entra.TokenEndpoint(root.tenantID), form)
			if err != nil {
				return err
			}
			cliout.Plain("%s", resp.Pretty())
			if grantType == entra.GrantAuthorizationCode {
				cliout.Newline()
				cliout.Plain("To continue with Step 3 from the onboarding guide, call the `userinfo` subcommand with the access token that was just returned.")
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&clientID, "client-id", "", "Application client ID (default: read from the env file)")
	flags.StringVar(&clientSecret, "client-secret", "", "Application client secret (default: read from the env file). Optional when --public-client is supplied")
	flags.StringVar(&grantType, "grant-type", entra.GrantAuthorizationCode, "Token grant type to execute (authorization_code, refresh_token, client_credentials)")
	flags.StringVar(&code, "code", "", "Authorization code returned from Entra")
	flags.StringVar(&refreshToken, "refresh-token", "", "Refresh token to exchange")
	flags.StringVar(&redirectURI, "redirect-uri", "", "Redirect URI used during the authorization request")
	flags.StringVar(&codeVerifier, "code-verifier", "", "PKCE code verifier used when initiating the authorization request")
	addPublicClientFlag(flags, "Indicate whether this registration is a public client (PKCE + no client secret). Defaults to true when no client secret is configured")
	return cmd
}
