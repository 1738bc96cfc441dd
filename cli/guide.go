package cli

import (
	"github.com/spf13/cobra"

	"github.com/Python-AI-Solutions/entra-validation-app/cliout"
)

func newGuideCommand(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "guide",
		Short: "Summarize the onboarding steps and show which values were loaded from the env file",
		RunE: func(cmd *cobra.Command, args []string) error {
			d := root.defaults

			cliout.Header("Microsoft Entra OIDC validation walkthrough")
			cliout.Plain("This CLI mirrors the steps called out in %s.", guideDocPath)
			cliout.Newline()
			cliout.Plain("Recommended sequence:")
			cliout.Item("1. Authorization Request:")
			cliout.Item("   entra-validate authorize --env-file %s", root.envFile)
			cliout.Newline()
			cliout.Item("2. Token Exchange (authorization_code grant):")
			cliout.Item("   entra-validate token --code <value> --redirect-uri \"<redirect>\"")
			cliout.Newline()
			cliout.Item("3. User Info lookup:")
			cliout.Item("   entra-validate userinfo --access-token <token>")
			cliout.Newline()
			cliout.Item("4. Metadata inspection:")
			cliout.Item("   entra-validate well-known")
			cliout.Newline()
			cliout.Plain("Configuration snapshot (%s):", root.envFile)
			cliout.Bullet("Client ID present: %s", yesNo(d.ClientID != ""))
			cliout.Bullet("Client secret present: %s", yesNo(d.ClientSecret != ""))
			cliout.Bullet("Redirect URI present: %s", yesNo(d.RedirectURI != ""))
			cliout.Bullet("Discovery URL present: %s", yesNo(d.DiscoveryURL != ""))
			cliout.Bullet("Tenant ID default: %s", d.TenantID)
			cliout.Bullet("Scope default: %s", root.scope)
			cliout.Newline()
			cliout.Plain("You can override any parameter on the CLI if you want to test alternate tenants or app registrations without editing your application settings.")
			return nil
		},
	}
}
