package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fragmentid/fragment-cli/internal/secrets"
	"github.com/fragmentid/fragment-cli/internal/ui"
	"github.com/fragmentid/fragment-cli/internal/workflows"
)

var deviceStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show whether this machine has a device key",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		deviceID, err := currentDevice()
		if err != nil {
			return err
		}

		return withSecrets(cmd.Context(), func(store secrets.Store) error {
			result, err := workflows.DeviceStatus(cmd.Context(), workflows.DeviceStatusOptions{
				Secrets:  store,
				Client:   clientConfig(store),
				Config:   configStore,
				DeviceID: deviceID,
				Log:      Logger,
			})
			if err != nil {
				return err
			}

			const width = 10
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Field("Device ID", width, result.DeviceID))
			fmt.Fprintln(out, ui.Field("Provider", width, string(result.Provider)))

			stored := ui.Warning.Sprint("not registered")
			if result.KeyStored {
				stored = ui.Success.Sprint("stored")
			}
			fmt.Fprintln(out, ui.Field("Device key", width, stored))

			if result.PendingKeyID != "" {
				fmt.Fprintln(out, ui.Field("Key ID", width, result.PendingKeyID))

				resolves := ui.Success.Sprint("yes")
				if !result.KeyResolves {
					resolves = ui.Warning.Sprint("no") + " " + ui.Muted.Sprint(result.ResolveErr.Error())
				}
				fmt.Fprintln(out, ui.Field("Resolves", width, resolves))
			}
			if !result.RegisteredAt.IsZero() {
				fmt.Fprintln(out, ui.Field("Created", width, result.RegisteredAt.Local().Format("2006-01-02 15:04:05")))
			}
			return nil
		})
	},
}
