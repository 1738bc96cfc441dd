package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Python-AI-Solutions/entra-validation-app/cliout"
	"github.com/Python-AI-Solutions/entra-validation-app/entra"
	"github.com/Python-AI-Solutions/entra-validation-app/pkce"
)

func newAuthorizeCommand(root *rootOptions) *cobra.Command {
	var (
		clientID     string
		redirectURI  string
		responseMode string
		responseType string
		state        string
		codeVerifier string
		disablePKCE  bool
	)

	cmd := &cobra.Command{
		Use:   "authorize",
		Short: "Generate an authorization URL",
		RunE: func(cmd *cobra.Command, args []string) error {
			clientID = firstNonEmpty(clientID, root.defaults.ClientID)
			redirectURI = firstNonEmpty(redirectURI, root.defaults.RedirectURI)
			if clientID == "" {
				return fmt.Errorf("--client-id is required when the env file does not define client_id")
			}
			if redirectURI == "" {
				return fmt.Errorf("--redirect-uri is required when the env file does not define redirect_uri")
			}

			cliout.Plain("Step 1 (Authorization Request) from %s. Send the user to the following URL and complete the login to capture the code.", guideDocPath)

			var verifier, challenge string
			if disablePKCE {
				cliout.Newline()
				cliout.Warning("PKCE is disabled for this request. Only do this if you are certain the Entra app registration does not enforce PKCE.")
			} else {
				verifier = codeVerifier
				if verifier == "" {
					verifier = pkce.GenerateVerifier()
				} else if err := pkce.ValidateVerifier(verifier); err != nil {
					return fmt.Errorf("invalid --code-verifier: %w", err)
				}
				challenge = pkce.ChallengeS256(verifier)
			}

			authURL := entra.BuildAuthorizationURL(entra.AuthorizeParams{
				TenantID:      root.tenantID,
				ClientID:      clientID,
				RedirectURI:   redirectURI,
				Scope:         root.scope,
				ResponseMode:  responseMode,
				ResponseType:  responseType,
				State:         state,
				CodeChallenge: challenge,
			})

			cliout.Newline()
			cliout.Plain("Paste this authorization URL into a browser and complete the login flow to obtain a code. Once redirected back, copy the `code` parameter.")
			cliout.Plain("%s", cliout.URL(authURL))
			if verifier != "" {
				cliout.Newline()
				cliout.Plain("PKCE code verifier (required for the token request):\n%s", verifier)
				cliout.Plain("Run the token command with `--code-verifier` set to this value.")
			}
			cliout.Newline()
			cliout.Plain("Next: run the `token` subcommand with the copied code and redirect URI to perform Step 2 from the onboarding guide.")
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&clientID, "client-id", "", "Application client ID (default: read from the env file)")
	flags.StringVar(&redirectURI, "redirect-uri", "", "Registered redirect URL that Entra should send the code to")
	flags.StringVar(&responseMode, "response-mode", "query", "Response mode to request from Entra")
	flags.StringVar(&responseType, "response-type", "code", "OIDC response_type")
	flags.StringVar(&state, "state", "none", "Opaque state value")
	flags.StringVar(&codeVerifier, "code-verifier", "", "PKCE code verifier to use. If omitted, a secure random value is generated")
	flags.BoolVar(&disablePKCE, "disable-pkce", false, "Do not attach PKCE parameters. Only use if the app registration does not require PKCE")
	return cmd
}
