package cmd

import (
	"github.com/spf13/cobra"
)

var deviceCmd = &cobra.Command{
	Use:   "device",
	Short: "Manage this machine's device key",
	Long: `A device key is 32 random bytes kept in the active secret backend. The
identity SDK uses it to unlock your keychain on this machine without a password.

The device ID is derived from the platform, hostname and OS username. It is
stable on one machine but machines with identical values share an ID.

Examples:
  fragment device id
  fragment device register
  fragment device status`,
}

func init() {
	deviceCmd.AddCommand(deviceIDCmd)
	deviceCmd.AddCommand(deviceRegisterCmd)
	deviceCmd.AddCommand(deviceStatusCmd)
	deviceCmd.AddCommand(deviceRemoveCmd)
}
