package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/common-nighthawk/go-figure"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/fragmentid/fragment-cli/internal/configs"
	"github.com/fragmentid/fragment-cli/internal/device"
	kerrors "github.com/fragmentid/fragment-cli/internal/errors"
	logger "github.com/fragmentid/fragment-cli/internal/logging"
	"github.com/fragmentid/fragment-cli/internal/prompt"
	"github.com/fragmentid/fragment-cli/internal/secrets"
	"github.com/fragmentid/fragment-cli/internal/ui"
)

var (
	verbose    bool
	debug      bool
	assumeYes  bool
	apiURLFlag string
	sshKeyFlag string
	Logger     logger.Logger

	settings    *configs.Settings
	configStore *configs.Store
	prompter    prompt.Prompter

	// Replaced in tests.
	openSecrets   = defaultOpenSecrets
	currentDevice = device.CurrentDeviceID

	rootCmd = &cobra.Command{
		Use:   "fragment",
		Short: "fragment - manage your Fragment identity, device keys and local secrets",
		Long: `fragment is the command-line client for the Fragment identity service.

It keeps the credentials the identity SDK needs on this machine:
  - a per-device key stored in your OS keychain or Google Cloud Secret Manager
  - the SSH key used to unlock your keychain
  - the API endpoint and secret provider settings

Run 'fragment help <command>' for more details on a specific command.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: initRuntime,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println()
			figure.NewColorFigure("fragment", "standard", "cyan", true).Print()
			fmt.Println()
			fmt.Println("Run " + ui.Code.Sprint("fragment --help") + " to see available commands.")
		},
	}
)

func init() {
	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	flags.BoolVarP(&debug, "debug", "d", false, "enable debug output")
	flags.BoolVarP(&assumeYes, "yes", "y", false, "confirm destructive operations without prompting")
	flags.StringVar(&apiURLFlag, "api-url", "", "identity service base URL (overrides the apiBaseUrl setting)")
	flags.StringVar(&sshKeyFlag, "ssh-key", "", "path to the SSH private key used to unlock your keychain")

	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(secretsCmd)
	rootCmd.AddCommand(deviceCmd)
	rootCmd.AddCommand(sshCmd)
	rootCmd.AddCommand(logCmd)
}

// Execute runs the CLI and returns the process exit code. A cancelled
// prompt exits cleanly.
func Execute() int {
	err := rootCmd.Execute()
	if err == nil || errors.Is(err, kerrors.ErrCancelled) {
		return 0
	}

	var shown *reportedError
	if !errors.As(err, &shown) {
		fmt.Fprintln(os.Stderr, formatError(err))
	}
	return 1
}

func initRuntime(cmd *cobra.Command, args []string) error {
	Logger = logger.Logger{
		Verbose: verbose,
		Debug:   debug,
	}
	Logger.Debugf("Initializing %s with verbose=%t, debug=%t", cmd.CommandPath(), verbose, debug)

	s, err := configs.DefaultSettings()
	if err != nil {
		return err
	}
	settings = s
	Logger.Debugf("Using config directory %s", settings.ConfigDir)

	store, err := configs.OpenStore(settings.ConfigPath)
	if err != nil {
		return err
	}
	configStore = store

	if prompter == nil {
		prompter = prompt.NewConsole()
	}
	return nil
}

func defaultOpenSecrets(ctx context.Context) (secrets.Store, error) {
	return secrets.Open(ctx, secrets.OpenOptions{
		Config:     configStore,
		KeyringDir: settings.KeyringDir,
		Prompter:   prompter,
	})
}

// Helper functions for testing

// GetRootCmd returns the root command for testing.
func GetRootCmd() *cobra.Command {
	return rootCmd
}

// ResetGlobalState resets all global variables to their default values for testing.
func ResetGlobalState() {
	ResetFlags()
	settings = nil
	configStore = nil
	prompter = nil
	openSecrets = defaultOpenSecrets
	currentDevice = device.CurrentDeviceID
}

// ResetFlags clears parsed flag values between invocations while keeping
// injected test doubles.
func ResetFlags() {
	verbose = false
	debug = false
	assumeYes = false
	apiURLFlag = ""
	sshKeyFlag = ""
	resetCommandState()
	resetCobraFlagState(rootCmd)
}

// SetPrompter replaces the console prompter for testing.
func SetPrompter(p prompt.Prompter) {
	prompter = p
}

// SetSecretStore makes every command use store instead of the configured backend.
func SetSecretStore(store secrets.Store) {
	openSecrets = func(context.Context) (secrets.Store, error) {
		return store, nil
	}
}

// SetDeviceID pins the derived device ID for testing.
func SetDeviceID(id string) {
	currentDevice = func() (string, error) {
		return id, nil
	}
}

// SetLogger sets the logger for testing.
func SetLogger(l logger.Logger) {
	Logger = l
}

// resetCobraFlagState resets the flag state for all commands to prevent test pollution.
func resetCobraFlagState(c *cobra.Command) {
	reset := func(flag *pflag.Flag) {
		_ = flag.Value.Set(flag.DefValue)
		flag.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetCobraFlagState(sub)
	}
}
