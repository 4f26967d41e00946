package cmd

import (
	"github.com/spf13/cobra"

	"github.com/fragmentid/fragment-cli/internal/secrets"
	"github.com/fragmentid/fragment-cli/internal/ui"
	"github.com/fragmentid/fragment-cli/internal/workflows"
)

var deviceRemoveCmd = &cobra.Command{
	Use:   "remove",
	Short: "Delete this machine's device key",
	Long: `Deletes the device key from the active secret backend. The identity SDK
can no longer unlock your keychain with it.

Asks for confirmation unless --yes is given.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		deviceID, err := currentDevice()
		if err != nil {
			return err
		}

		spinner, cleanup := startSpinner("Removing device key...")
		defer cleanup()

		ok, err := confirm(spinner, "Delete the device key for "+deviceID)
		if err != nil {
			return fail(spinner, err)
		}
		if !ok {
			spinner.FinalMSG = ui.Warning.Sprint(ui.WarningMark) + " Kept the device key."
			return nil
		}

		return withSecrets(cmd.Context(), func(store secrets.Store) error {
			result, err := workflows.RemoveDevice(cmd.Context(), workflows.RemoveDeviceOptions{
				Secrets:  store,
				Trail:    auditTrail(),
				Config:   configStore,
				DeviceID: deviceID,
				User:     lastUser(),
				Log:      Logger,
			})
			if err != nil {
				return fail(spinner, err)
			}
			warnAudit(result.AuditErr)

			if !result.Removed {
				spinner.FinalMSG = ui.Info.Sprint(ui.HintMark) + " No device key stored for " + ui.Highlight.Sprint(deviceID)
				return nil
			}
			spinner.FinalMSG = ui.Success.Sprint(ui.SuccessMark) + " Removed the device key for " + ui.Highlight.Sprint(deviceID)
			return nil
		})
	},
}
