package cmd

import (
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage fragment configuration",
	Long: `Reads and writes the settings persisted in config.toml.

Known keys:
  apiBaseUrl      identity service base URL
  lastUser        account last used to sign in
  provider        secret backend: local or gcp
  gcpProject      Google Cloud project for the gcp backend
  keyringBackend  restrict the local backend (keychain, secret-service, kwallet, wincred, pass, keyctl, file)
  deviceKeyId     key ID of the most recently registered device key

Examples:
  # Point the CLI at a local identity service
  fragment config set apiBaseUrl http://localhost:5173

  # See where every effective setting comes from
  fragment config show`,
}

func init() {
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configUnsetCmd)
	configCmd.AddCommand(configListCmd)
	configCmd.AddCommand(configShowCmd)
}
