// Package cli wires the entra-validate command tree. Every subcommand layers
// its flags over the defaults loaded from the env file: flags win, then
// ENTRA_* environment variables, then the file itself.
package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/Python-AI-Solutions/entra-validation-app/cliout"
	"github.com/Python-AI-Solutions/entra-validation-app/config"
	"github.com/Python-AI-Solutions/entra-validation-app/logutil"
	"github.com/Python-AI-Solutions/entra-validation-app/version"
)

// guideDocPath locates the onboarding document the subcommand help refers to.
const guideDocPath = "docs/entra-guide.docx"

// rootOptions carries the persistent flag values plus the defaults resolved
// from the env file. Populated once in PersistentPreRunE.
type rootOptions struct {
	envFile      string
	tenantID     string
	scope        string
	discoveryURL string
	timeout      int
	debug        bool
	output       string

	defaults config.Defaults
}

func (o *rootOptions) httpTimeout() time.Duration {
	return time.Duration(o.timeout) * time.Second
}

// NewRootCommand builds the entra-validate command tree.
func NewRootCommand(info *version.Info) *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "entra-validate",
		Short: "Validate Microsoft Entra OIDC credentials from the command line",
		Long: fmt.Sprintf(`Validate Microsoft Entra OIDC credentials before wiring them into your application.

Typical flow from %s:
  1. Run 'authorize' to build the login URL and sign in.
  2. Execute 'token --code ... --redirect-uri ...' to obtain tokens.
  3. Call 'userinfo' with the access token to confirm claims.
  4. Inspect tenant metadata via 'well-known'.`, guideDocPath),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logutil.SetupLogger(opts.debug || logutil.IsDebugEnabled(), false)
			if err := cliout.SetFormat(opts.output); err != nil {
				return err
			}

			defaults, err := config.Load(opts.envFile)
			if err != nil {
				return err
			}
			opts.defaults = defaults

			// Unset flags fall back to the env-file defaults.
			if !cmd.Flags().Changed("tenant-id") && defaults.TenantID != "" {
				opts.tenantID = defaults.TenantID
			}
			if !cmd.Flags().Changed("discovery-url") && defaults.DiscoveryURL != "" {
				opts.discoveryURL = defaults.DiscoveryURL
			}
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&opts.envFile, "env-file", "e", config.DefaultEnvFile, "Path to the .env file containing Entra settings")
	pf.StringVar(&opts.tenantID, "tenant-id", config.DefaultTenantID, "Entra tenant ID (defaults to the tenant from the env file or discovery URL)")
	pf.StringVar(&opts.scope, "scope", config.DefaultScope, "Requested scopes when contacting Entra")
	pf.StringVar(&opts.discoveryURL, "discovery-url", "", "Full OIDC discovery URL (defaults to a URL derived from the tenant ID)")
	pf.IntVar(&opts.timeout, "timeout", 30, "HTTP timeout in seconds")
	pf.BoolVar(&opts.debug, "debug", false, "Enable debug logging")
	pf.StringVarP(&opts.output, "output", "o", "default", "Output format (default, json)")

	root.AddCommand(
		newAuthorizeCommand(opts),
		newTokenCommand(opts),
		newUserinfoCommand(opts),
		newWellKnownCommand(opts),
		newGuideCommand(opts),
		newReportCommand(opts),
		newBrowserHelperCommand(opts),
		version.NewCommand(info, &opts.output),
	)
	return root
}

// Execute runs the root command and reports the error, if any, on stderr.
func Execute(info *version.Info) error {
	root := NewRootCommand(info)
	if err := root.Execute(); err != nil {
		cliout.Error("%s", err.Error())
		return err
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// addPublicClientFlag registers the tri-state --public-client flag. A bare
// --public-client means true, --public-client=false means false, and an
// absent flag leaves the decision to the client-secret heuristic.
func addPublicClientFlag(flags *pflag.FlagSet, usage string) {
	flags.Bool("public-client", false, usage)
	flags.Lookup("public-client").NoOptDefVal = "true"
}

// publicClientFlag returns the flag value, or nil when the flag was not set.
func publicClientFlag(flags *pflag.FlagSet) *bool {
	if !flags.Changed("public-client") {
		return nil
	}
	v, err := flags.GetBool("public-client")
	if err != nil {
		return nil
	}
	return &v
}
