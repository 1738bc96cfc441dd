package cli

import (
	"github.com/spf13/cobra"

	"github.com/Python-AI-Solutions/entra-validation-app/cliout"
	"github.com/Python-AI-Solutions/entra-validation-app/entra"
)

func newUserinfoCommand(root *rootOptions) *cobra.Command {
	var accessToken string

	cmd := &cobra.Command{
		Use:   "userinfo",
		Short: "Call the Microsoft Graph OIDC userinfo endpoint",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := entra.NewClient(root.httpTimeout())
			resp, err := client.Get(cmd.Context(), entra.UserinfoEndpoint, accessToken)
			if err != nil {
				return err
			}
			cliout.Plain("%s", resp.Pretty())
			cliout.Newline()
			cliout.Plain("If you need to refresh tokens without another browser login, store the refresh_token from the previous step and invoke the `token` command with `--grant-type refresh_token`.")
			return nil
		},
	}

	cmd.Flags().StringVar(&accessToken, "access-token", "", "Bearer token returned from the token endpoint")
	_ = cmd.MarkFlagRequired("access-token")
	return cmd
}
