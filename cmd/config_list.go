package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fragmentid/fragment-cli/internal/ui"
)

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "List persisted settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		keys := configStore.Keys()
		if len(keys) == 0 {
			fmt.Fprintln(out, "No settings in "+ui.Path.Sprint(configStore.Path()))
			return nil
		}

		width := 0
		for _, k := range keys {
			width = max(width, len(k))
		}
		for _, k := range keys {
			v, _ := configStore.Get(k)
			fmt.Fprintln(out, ui.Field(k, width, v))
		}
		return nil
	},
}
