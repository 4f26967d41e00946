package cmd

import (
	"github.com/spf13/cobra"
)

var secretsCmd = &cobra.Command{
	Use:   "secrets",
	Short: "Manage secrets in the active secret backend",
	Long: `Stores, reads and deletes secrets in the active backend.

The backend is selected by the provider setting: local (your OS keychain,
the default) or gcp (Google Cloud Secret Manager).

Examples:
  fragment secrets provider gcp --project my-project
  fragment secrets set github-token
  fragment secrets get github-token`,
}

func init() {
	secretsCmd.AddCommand(secretsProviderCmd)
	secretsCmd.AddCommand(secretsSetCmd)
	secretsCmd.AddCommand(secretsGetCmd)
	secretsCmd.AddCommand(secretsDeleteCmd)
}
