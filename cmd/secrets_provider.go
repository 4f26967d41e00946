package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fragmentid/fragment-cli/internal/configs"
	"github.com/fragmentid/fragment-cli/internal/secrets"
	"github.com/fragmentid/fragment-cli/internal/ui"
)

var providerProject string

func init() {
	secretsProviderCmd.Flags().StringVar(&providerProject, "project", "", "Google Cloud project for the gcp provider")
}

// resetSecretsProviderState resets the provider command's global state for testing.
func resetSecretsProviderState() {
	providerProject = ""
}

var secretsProviderCmd = &cobra.Command{
	Use:       "provider [local|gcp]",
	Short:     "Show or select the secret backend",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{string(secrets.ProviderLocal), string(secrets.ProviderGCP)},
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		if len(args) == 0 {
			name, _ := configStore.Get(configs.KeyProvider)
			provider, err := secrets.ParseProvider(name)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, string(provider))
			if project, ok := configStore.Get(configs.KeyGCPProject); ok && provider == secrets.ProviderGCP {
				Logger.Infof("GCP project: %s", project)
			}
			return nil
		}

		provider, err := secrets.ParseProvider(args[0])
		if err != nil {
			return err
		}
		if err := configStore.Set(configs.KeyProvider, string(provider)); err != nil {
			return err
		}
		if providerProject != "" {
			if err := configStore.Set(configs.KeyGCPProject, providerProject); err != nil {
				return err
			}
		}

		fmt.Fprintln(out, ui.Success.Sprint(ui.SuccessMark)+" Secret provider set to "+ui.Highlight.Sprint(string(provider)))
		if provider == secrets.ProviderGCP && !configStore.Has(configs.KeyGCPProject) {
			fmt.Fprintln(out, ui.Info.Sprint(ui.HintMark)+" Set the project with "+ui.Code.Sprint("fragment config set gcpProject <project>")+" or "+ui.Flag.Sprint("--project"))
		}
		return nil
	},
}
