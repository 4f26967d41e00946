package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/briandowns/spinner"

	"github.com/fragmentid/fragment-cli/internal/audit"
	"github.com/fragmentid/fragment-cli/internal/configs"
	kerrors "github.com/fragmentid/fragment-cli/internal/errors"
	"github.com/fragmentid/fragment-cli/internal/identity"
	"github.com/fragmentid/fragment-cli/internal/keys"
	"github.com/fragmentid/fragment-cli/internal/secrets"
	"github.com/fragmentid/fragment-cli/internal/ui"
)

// reportedError marks an error whose message has already been printed.
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

// startSpinner creates and starts a spinner with the given message when not in verbose or debug mode.
// Returns the spinner and a function that should be deferred to clean up.
//
// IMPORTANT: spinner.FinalMSG values do NOT need trailing newlines. The cleanup function
// automatically calls ui.EnsureNewline() on the final message before printing it.
func startSpinner(message string) (*spinner.Spinner, func()) {
	Logger.Debugf("Starting spinner with message: %s", message)
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " " + message

	// Ignore color errors - continue without colored spinner if it fails.
	_ = s.Color("cyan")

	quiet := !verbose && !debug
	if quiet {
		s.Start()
		// Ensure log output is discarded unless in verbose mode.
		log.SetOutput(io.Discard)
	} else {
		Logger.Infof("%s", message)
	}

	cleanup := func() {
		if quiet {
			log.SetOutput(os.Stderr)
		}

		finalMsg := ""
		if s.FinalMSG != "" {
			finalMsg = ui.EnsureNewline(s.FinalMSG)
			// Clear FinalMSG so s.Stop() doesn't print it.
			s.FinalMSG = ""
		}

		if quiet {
			s.Stop()
		}

		if finalMsg != "" {
			fmt.Print(finalMsg)
		}
	}

	return s, cleanup
}

// pauseSpinner stops the spinner around an interactive prompt.
func pauseSpinner(s *spinner.Spinner) func() {
	if verbose || debug {
		return func() {}
	}
	s.Stop()
	return s.Restart
}

// fail puts err in the spinner's final message and marks it reported.
// Cancellation prints a short notice and stays unwrapped so it exits cleanly.
func fail(s *spinner.Spinner, err error) error {
	if errors.Is(err, kerrors.ErrCancelled) {
		s.FinalMSG = ui.Warning.Sprint(ui.WarningMark) + " Cancelled."
		return err
	}
	s.FinalMSG = formatError(err)
	return &reportedError{err: err}
}

// formatError renders err with a hint for the error categories users can act on.
func formatError(err error) string {
	msg := ui.Error.Sprint(ui.ErrorMark) + " " + err.Error()

	hint := ""
	switch {
	case errors.Is(err, kerrors.ErrBackendUnavailable):
		hint = "Check the secret provider with " + ui.Code.Sprint("fragment secrets provider") + " and your credentials"
	case errors.Is(err, kerrors.ErrDeviceKeyNotFound):
		hint = "Run " + ui.Code.Sprint("fragment device register") + " to create a device key"
	case errors.Is(err, kerrors.ErrSSHKeyNotFound):
		hint = "Pass the key path with " + ui.Flag.Sprint("--ssh-key")
	case errors.Is(err, kerrors.ErrUnknownConfigKey):
		hint = "Known keys: " + strings.Join(configs.KnownKeys, ", ")
	case errors.Is(err, kerrors.ErrUnknownProvider):
		hint = "Run " + ui.Code.Sprint("fragment secrets provider local") + " or " + ui.Code.Sprint("fragment secrets provider gcp")
	}

	if hint != "" {
		msg += "\n" + ui.Info.Sprint(ui.HintMark) + " " + hint
	}
	return msg
}

// withSecrets opens the configured backend and closes it after fn returns.
func withSecrets(ctx context.Context, fn func(secrets.Store) error) error {
	store, err := openSecrets(ctx)
	if err != nil {
		return err
	}
	defer closeSecrets(store)

	Logger.Debugf("Using %s secret backend", store.Provider())
	return fn(store)
}

func closeSecrets(store secrets.Store) {
	if err := secrets.Close(store); err != nil {
		Logger.Debugf("Closing secret backend: %v", err)
	}
}

// clientConfig builds the identity SDK configuration for this invocation.
// A nil store leaves the device key callbacks unbound.
func clientConfig(store secrets.Store) identity.ClientConfig {
	opts := identity.Options{
		APIBaseURL: configs.ResolveAPIBaseURL(configStore, apiURLFlag, Logger),
		Debug:      debug,
		Prompter:   prompter,
		SSHKeys:    sshKeyProvider(),
	}
	if store != nil {
		opts.DeviceKeys = keys.NewDeviceKeyProvider(store, Logger)
		opts.Secrets = store
	}
	return identity.NewClientConfig(opts)
}

// confirm asks before a destructive operation. --yes answers for the user.
func confirm(s *spinner.Spinner, question string) (bool, error) {
	if assumeYes {
		Logger.Debugf("Auto-confirming: %s", question)
		return true, nil
	}

	resume := pauseSpinner(s)
	defer resume()
	return prompter.Confirm(question)
}

func auditTrail() *audit.Trail {
	return audit.NewTrail(settings.AuditLogPath)
}

func lastUser() string {
	user, _ := configStore.Get(configs.KeyLastUser)
	return user
}

func warnAudit(err error) {
	if err != nil {
		Logger.Warnf("Could not write audit log: %v", err)
	}
}

func sshKeyProvider() *keys.SSHKeyProvider {
	return &keys.SSHKeyProvider{
		ExplicitPath: sshKeyFlag,
		SSHDir:       settings.SSHDir,
		Prompter:     prompter,
		Log:          Logger,
	}
}

// resetCommandState resets per-command flag variables for testing.
func resetCommandState() {
	resetLogCommandState()
	resetSecretsProviderState()
	resetConfigShowState()
}
