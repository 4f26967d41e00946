package cmd

import (
	"fmt"
	"net/url"
	"slices"

	"github.com/spf13/cobra"

	"github.com/fragmentid/fragment-cli/internal/configs"
	kerrors "github.com/fragmentid/fragment-cli/internal/errors"
	"github.com/fragmentid/fragment-cli/internal/secrets"
	"github.com/fragmentid/fragment-cli/internal/ui"
)

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Persist a setting",
	Long: `Persists a setting in config.toml.

Examples:
  fragment config set apiBaseUrl https://api.fragmentid.com
  fragment config set provider gcp
  fragment config set gcpProject my-project`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := args[0], args[1]
		Logger.Debugf("Setting %s=%q in %s", key, value, configStore.Path())

		if err := configs.ValidateKey(key); err != nil {
			return err
		}
		normalized, err := validateSettingValue(key, value)
		if err != nil {
			return err
		}

		if err := configStore.Set(key, normalized); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), ui.Success.Sprint(ui.SuccessMark)+" Set "+ui.Highlight.Sprint(key)+" to "+ui.Highlight.Sprint(normalized))
		return nil
	},
}

// validateSettingValue rejects values the CLI would fail on later.
func validateSettingValue(key, value string) (string, error) {
	switch key {
	case configs.KeyProvider:
		p, err := secrets.ParseProvider(value)
		return string(p), err

	case configs.KeyAPIBaseURL:
		u, err := url.Parse(value)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return "", fmt.Errorf("%w: %s must be an http(s) URL, got %q", kerrors.ErrInvalidInput, key, value)
		}

	case configs.KeyKeyringBackend:
		if !slices.Contains(secrets.KeyringBackendNames(), value) {
			return "", fmt.Errorf("%w: unknown keyring backend %q", kerrors.ErrInvalidInput, value)
		}
	}
	return value, nil
}
