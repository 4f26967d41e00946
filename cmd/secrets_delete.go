package cmd

import (
	"github.com/spf13/cobra"

	"github.com/fragmentid/fragment-cli/internal/secrets"
	"github.com/fragmentid/fragment-cli/internal/ui"
	"github.com/fragmentid/fragment-cli/internal/workflows"
)

var secretsDeleteCmd = &cobra.Command{
	Use:   "delete <key>",
	Short: "Delete a secret",
	Long: `Deletes the secret stored under key. Deleting a missing key is not an error.

Asks for confirmation unless --yes is given.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		key := args[0]

		spinner, cleanup := startSpinner("Deleting secret...")
		defer cleanup()

		ok, err := confirm(spinner, "Delete secret "+key)
		if err != nil {
			return fail(spinner, err)
		}
		if !ok {
			spinner.FinalMSG = ui.Warning.Sprint(ui.WarningMark) + " Nothing deleted."
			return nil
		}

		return withSecrets(cmd.Context(), func(store secrets.Store) error {
			result, err := workflows.DeleteSecret(cmd.Context(), workflows.SecretOptions{
				Secrets: store,
				Trail:   auditTrail(),
				Key:     key,
				User:    lastUser(),
				Log:     Logger,
			})
			if err != nil {
				return fail(spinner, err)
			}
			warnAudit(result.AuditErr)

			if !result.Existed {
				spinner.FinalMSG = ui.Info.Sprint(ui.HintMark) + " " + ui.Highlight.Sprint(key) + " was not set"
				return nil
			}
			spinner.FinalMSG = ui.Success.Sprint(ui.SuccessMark) + " Deleted " + ui.Highlight.Sprint(key)
			return nil
		})
	},
}
