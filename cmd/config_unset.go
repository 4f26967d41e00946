package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fragmentid/fragment-cli/internal/configs"
	"github.com/fragmentid/fragment-cli/internal/ui"
)

var configUnsetCmd = &cobra.Command{
	Use:   "unset <key>",
	Short: "Remove a persisted setting",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		key := args[0]
		if err := configs.ValidateKey(key); err != nil {
			return err
		}

		if !configStore.Has(key) {
			fmt.Fprintln(cmd.OutOrStdout(), ui.Info.Sprint(ui.HintMark)+" "+key+" is not set")
			return nil
		}
		if err := configStore.Delete(key); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), ui.Success.Sprint(ui.SuccessMark)+" Removed "+ui.Highlight.Sprint(key))
		return nil
	},
}
