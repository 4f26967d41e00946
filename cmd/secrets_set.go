package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	kerrors "github.com/fragmentid/fragment-cli/internal/errors"
	"github.com/fragmentid/fragment-cli/internal/secrets"
	"github.com/fragmentid/fragment-cli/internal/ui"
	"github.com/fragmentid/fragment-cli/internal/utils"
	"github.com/fragmentid/fragment-cli/internal/workflows"
)

var secretsSetCmd = &cobra.Command{
	Use:   "set <key> [value]",
	Short: "Store a secret",
	Long: `Stores a secret under key, replacing any previous value.

When value is omitted it is read without echo. Pass "-" as the value to
read it from stdin instead, for example:

  cat token.txt | fragment secrets set api-token -`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key := args[0]

		spinner, cleanup := startSpinner("Storing secret...")
		defer cleanup()

		value := ""
		switch {
		case len(args) == 2 && args[1] == "-":
			v, err := utils.ReadStdin()
			if err != nil {
				return fail(spinner, fmt.Errorf("%w: %v", kerrors.ErrInvalidInput, err))
			}
			value = v
		case len(args) == 2:
			value = args[1]
		default:
			resume := pauseSpinner(spinner)
			v, err := prompter.GetPassword("Value for " + key)
			resume()
			if err != nil {
				return fail(spinner, err)
			}
			value = v
		}

		return withSecrets(cmd.Context(), func(store secrets.Store) error {
			result, err := workflows.SetSecret(cmd.Context(), workflows.SecretOptions{
				Secrets: store,
				Trail:   auditTrail(),
				Key:     key,
				Value:   value,
				User:    lastUser(),
				Log:     Logger,
			})
			if err != nil {
				return fail(spinner, err)
			}
			warnAudit(result.AuditErr)

			verb := "Stored"
			if result.Existed {
				verb = "Replaced"
			}
			spinner.FinalMSG = ui.Success.Sprint(ui.SuccessMark) + " " + verb + " " + ui.Highlight.Sprint(key) +
				" in the " + string(result.Provider) + " backend"
			return nil
		})
	},
}
