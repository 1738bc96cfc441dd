package cli

import (
	"github.com/spf13/cobra"

	"github.com/Python-AI-Solutions/entra-validation-app/cliout"
	"github.com/Python-AI-Solutions/entra-validation-app/entra"
)

func newWellKnownCommand(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "well-known",
		Short: "Inspect the tenant's OIDC discovery document",
		RunE: func(cmd *cobra.Command, args []string) error {
			url := root.discoveryURL
			if url == "" {
				url = entra.WellKnownEndpoint(root.tenantID)
			}
			client := entra.NewClient(root.httpTimeout())
			resp, err := client.Get(cmd.Context(), url, "")
			if err != nil {
				return err
			}
			cliout.Plain("%s", resp.Pretty())
			cliout.Newline()
			cliout.Plain("These metadata values can be plugged into Postman or other tooling if you need to compare your CLI results with external validators.")
			return nil
		},
	}
}
