package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fragmentid/fragment-cli/internal/secrets"
	"github.com/fragmentid/fragment-cli/internal/workflows"
)

var secretsGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print a secret",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSecrets(cmd.Context(), func(store secrets.Store) error {
			result, err := workflows.GetSecret(cmd.Context(), workflows.SecretOptions{
				Secrets: store,
				Key:     args[0],
				Log:     Logger,
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), result.Value)
			return nil
		})
	},
}
