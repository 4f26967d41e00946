package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var deviceIDCmd = &cobra.Command{
	Use:   "id",
	Short: "Print this machine's device ID",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := currentDevice()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), id)
		return nil
	},
}
