package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	kerrors "github.com/fragmentid/fragment-cli/internal/errors"
	"github.com/fragmentid/fragment-cli/internal/identity"
	"github.com/fragmentid/fragment-cli/internal/secrets"
	"github.com/fragmentid/fragment-cli/internal/ui"
	"github.com/fragmentid/fragment-cli/internal/workflows"
)

var deviceRegisterCmd = &cobra.Command{
	Use:   "register",
	Short: "Generate and store a device key for this machine",
	Long: `Generates a new device key, stores it in the active secret backend and
records its key ID for enrolment with the identity service.

If this machine already has a device key you are warned and asked to confirm
the replacement. The old key stops working. Use --yes to skip the question.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		deviceID, err := currentDevice()
		if err != nil {
			return err
		}

		spinner, cleanup := startSpinner("Registering device key...")
		defer cleanup()

		return withSecrets(ctx, func(store secrets.Store) error {
			opts := workflows.RegisterDeviceOptions{
				Secrets:   store,
				Registrar: &identity.ConfigRegistrar{Config: configStore},
				Trail:     auditTrail(),
				DeviceID:  deviceID,
				Force:     assumeYes,
				User:      lastUser(),
				Log:       Logger,
			}

			result, err := workflows.RegisterDevice(ctx, opts)
			if errors.Is(err, kerrors.ErrDeviceKeyExists) {
				resume := pauseSpinner(spinner)
				Logger.Warnf("A device key for %s already exists in the %s backend. Replacing it makes the old key unusable.", deviceID, store.Provider())
				ok, confirmErr := prompter.Confirm("Replace the existing device key")
				resume()
				if confirmErr != nil {
					return fail(spinner, confirmErr)
				}
				if !ok {
					spinner.FinalMSG = ui.Warning.Sprint(ui.WarningMark) + " Kept the existing device key."
					return nil
				}
				opts.Force = true
				result, err = workflows.RegisterDevice(ctx, opts)
			}
			if err != nil {
				return fail(spinner, err)
			}
			warnAudit(result.AuditErr)

			verb := "Registered"
			if result.Replaced {
				verb = "Replaced"
			}
			spinner.FinalMSG = ui.Success.Sprint(ui.SuccessMark) + " " + verb + " device key " + ui.Highlight.Sprint(result.KeyID) +
				"\n" + ui.Info.Sprint(ui.HintMark) + " Stored in the " + string(result.Provider) + " backend"
			return nil
		})
	},
}
