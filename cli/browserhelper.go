package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Python-AI-Solutions/entra-validation-app/browser"
	"github.com/Python-AI-Solutions/entra-validation-app/cliout"
	"github.com/Python-AI-Solutions/entra-validation-app/config"
	"github.com/Python-AI-Solutions/entra-validation-app/helper"
	"github.com/Python-AI-Solutions/entra-validation-app/urlutil"
)

func newBrowserHelperCommand(root *rootOptions) *cobra.Command {
	var (
		clientID      string
		clientSecret  string
		redirectURI   string
		state         string
		host          string
		port          int
		openBrowser   bool
		browserTarget string
	)

	cmd := &cobra.Command{
		Use:   "browser-helper",
		Short: "Launch a local browser UI to perform SPA-style token exchanges",
		RunE: func(cmd *cobra.Command, args []string) error {
			clientID = firstNonEmpty(clientID, root.defaults.ClientID)
			clientSecret = firstNonEmpty(clientSecret, root.defaults.ClientSecret)
			redirectURI = firstNonEmpty(redirectURI, root.defaults.RedirectURI)
			publicClient := config.ResolvePublicClient(publicClientFlag(cmd.Flags()), clientSecret)

			if clientID == "" || redirectURI == "" {
				return fmt.Errorf("both --client-id and --redirect-uri are required to launch the browser helper")
			}
			if err := urlutil.Validate(redirectURI); err != nil {
				return fmt.Errorf("invalid redirect URI: %w", err)
			}
			if openBrowser && !browser.IsValid(browserTarget) {
				return fmt.Errorf("invalid --browser %q (valid options: %s)", browserTarget, browser.FormatValidTargets())
			}

			srv := &helper.Server{
				Options: helper.ServerOptions{Host: host, Port: port},
				Config: helper.NewConfig(helper.ConfigParams{
					ClientID:     clientID,
					ClientSecret: clientSecret,
					RedirectURI:  redirectURI,
					Scope:        root.scope,
					TenantID:     root.tenantID,
					DiscoveryURL: root.discoveryURL,
					State:        state,
					PublicClient: publicClient,
				}),
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := srv.Start(ctx); err != nil {
				return err
			}

			cliout.Plain("Browser helper running at %s", cliout.URL(srv.URL()))
			cliout.Newline()
			cliout.Item("1. Open the URL above in a browser.")
			cliout.Item("2. Click \"Launch authorization URL\" and complete the login with your credentials.")
			cliout.Item("3. Paste the redirect URL (or just the code) back into the helper page and use it to")
			cliout.Item("   redeem tokens via the browser, which satisfies Microsoft Entra's SPA restrictions.")

			if openBrowser {
				// Best effort; a launch failure is a warning, not a fatal error.
				if err := browser.Launch(browser.LaunchOptions{URL: srv.URL(), Target: browser.Target(browserTarget)}); err != nil {
					cliout.Warning("Failed to launch %s: %v", browser.GetTargetDisplayName(browser.Target(browserTarget)), err)
				}
			}

			err := srv.Wait(ctx)
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&clientID, "client-id", "", "Application client ID (default: read from the env file)")
	flags.StringVar(&clientSecret, "client-secret", "", "Client secret to expose to the browser helper (only when --public-client=false is supplied)")
	flags.StringVar(&redirectURI, "redirect-uri", "", "Registered redirect URL that receives the authorization code")
	flags.StringVar(&state, "state", "none", "Opaque state value included in the authorization URL")
	flags.StringVar(&host, "host", "127.0.0.1", "Host/IP to bind the helper web server to")
	flags.IntVar(&port, "port", 8765, "Port to bind the helper web server to")
	flags.BoolVar(&openBrowser, "open-browser", false, "Open the helper URL in a browser after starting the server")
	flags.StringVar(&browserTarget, "browser", string(browser.TargetDefault), "When used with --open-browser, choose which browser to launch (default, firefox, none)")
	addPublicClientFlag(flags, "Treat the registration as a public client (PKCE only, no client secret). Defaults to true if no client secret is configured")
	return cmd
}
