package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fragmentid/fragment-cli/internal/keys"
	"github.com/fragmentid/fragment-cli/internal/ui"
	"github.com/fragmentid/fragment-cli/internal/workflows"
)

var sshCmd = &cobra.Command{
	Use:   "ssh",
	Short: "Inspect the SSH key used to unlock your keychain",
}

var sshCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Show which SSH key would be used",
	Long: `Resolves the SSH private key the identity SDK would be given: --ssh-key,
then ~/.ssh/id_ed25519, then ~/.ssh/id_rsa, then a prompt.

Passphrase-protected keys ask for the passphrase and check it. Key material
is never printed.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := workflows.CheckSSHKey(cmd.Context(), workflows.SSHCheckOptions{
			Resolve: clientConfig(nil).SSHKeyProvider,
			Log:     Logger,
		})
		if err != nil {
			return err
		}

		const width = 11
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, ui.Success.Sprint(ui.SuccessMark)+" SSH key found")
		fmt.Fprintln(out, ui.Field("Path", width, ui.Path.Sprint(result.Path)))
		if result.KeyType != "" {
			fmt.Fprintln(out, ui.Field("Type", width, result.KeyType))
			fmt.Fprintln(out, ui.Field("Fingerprint", width, result.Fingerprint))
		}

		protection := "none"
		switch {
		case result.Encrypted && result.HasPassphrase:
			protection = "passphrase (verified)"
		case result.Encrypted:
			protection = "passphrase (not supplied)"
		}
		fmt.Fprintln(out, ui.Field("Protection", width, protection))

		if candidates := keys.CandidateKeys(settings.SSHDir); len(candidates) > 1 {
			Logger.Infof("Other keys in %s: %v", settings.SSHDir, candidates)
		}
		return nil
	},
}

func init() {
	sshCmd.AddCommand(sshCheckCmd)
}
