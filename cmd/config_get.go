package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fragmentid/fragment-cli/internal/configs"
	kerrors "github.com/fragmentid/fragment-cli/internal/errors"
)

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print a persisted setting",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		key := args[0]
		Logger.Infof("Reading %s from %s", key, configStore.Path())

		if err := configs.ValidateKey(key); err != nil {
			return err
		}

		value, ok := configStore.Get(key)
		if !ok {
			return fmt.Errorf("setting %s %w", key, kerrors.ErrNotFound)
		}
		fmt.Fprintln(cmd.OutOrStdout(), value)
		return nil
	},
}
