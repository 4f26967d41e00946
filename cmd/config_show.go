package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fragmentid/fragment-cli/internal/secrets"
	"github.com/fragmentid/fragment-cli/internal/ui"
	"github.com/fragmentid/fragment-cli/internal/workflows"
)

var configShowJSON bool

func init() {
	configShowCmd.Flags().BoolVar(&configShowJSON, "json", false, "output in JSON format")
}

// resetConfigShowState resets the config show command's global state for testing.
func resetConfigShowState() {
	configShowJSON = false
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Display the effective configuration",
	Long: `Displays the settings this invocation would use and where they came from.

The API base URL is taken from --api-url, then the apiBaseUrl setting, then
the production default.

Examples:
  fragment config show
  fragment config show --api-url http://localhost:5173 --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		deviceID, err := currentDevice()
		if err != nil {
			return err
		}

		// The backend only binds the device key callbacks here; nothing is read.
		var store secrets.Store
		if opened, err := openSecrets(cmd.Context()); err != nil {
			Logger.Debugf("Secret backend not available, device key callbacks left unbound: %v", err)
		} else {
			store = opened
			defer closeSecrets(store)
		}

		result, err := workflows.ShowConfig(cmd.Context(), workflows.ShowConfigOptions{
			Config:     configStore,
			ConfigPath: configStore.Path(),
			APIURLFlag: apiURLFlag,
			Client:     clientConfig(store),
			DeviceID:   deviceID,
			Log:        Logger,
		})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if configShowJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(map[string]any{
				"config_path":  result.ConfigPath,
				"api_base_url": result.APIBaseURL,
				"api_source":   result.APISource,
				"provider":     result.Provider,
				"device_id":    result.DeviceID,
				"last_user":    result.LastUser,
				"client_id":    result.ClientID,
				"scopes":       result.Scopes,
				"providers":    result.Providers,
			})
		}

		const width = 12
		fmt.Fprintln(out, ui.Highlight.Sprint("Configuration"))
		fmt.Fprintln(out, ui.Field("Config file", width, ui.Path.Sprint(result.ConfigPath)))
		fmt.Fprintln(out, ui.Field("API URL", width, result.APIBaseURL+" "+ui.Muted.Sprint(string(result.APISource))))
		fmt.Fprintln(out, ui.Field("Provider", width, string(result.Provider)))
		fmt.Fprintln(out, ui.Field("Device ID", width, result.DeviceID))
		if result.LastUser != "" {
			fmt.Fprintln(out, ui.Field("Last user", width, result.LastUser))
		}
		fmt.Fprintln(out, ui.Field("Client ID", width, result.ClientID))
		fmt.Fprintln(out, ui.Field("Scopes", width, strings.Join(result.Scopes, " ")))
		fmt.Fprintln(out, ui.Field("Providers", width, strings.Join(result.Providers, ", ")))
		return nil
	},
}
