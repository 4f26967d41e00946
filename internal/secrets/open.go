package secrets

import (
	"context"
	"os"

	"github.com/fragmentid/fragment-cli/internal/configs"
	"github.com/fragmentid/fragment-cli/internal/prompt"
)

// OpenOptions carries what the backends need to initialise.
type OpenOptions struct {
	// Config supplies provider, gcpProject and keyringBackend.
	Config configs.ValueReader

	// KeyringDir is where the file keyring backend keeps its data.
	KeyringDir string

	// Prompter answers the file keyring's password prompt. May be nil.
	Prompter prompt.CredentialPrompter
}

// Open returns the backend selected by the persisted provider setting.
func Open(ctx context.Context, opts OpenOptions) (Store, error) {
	name := configValue(opts.Config, configs.KeyProvider)
	provider, err := ParseProvider(name)
	if err != nil {
		return nil, err
	}

	switch provider {
	case ProviderGCP:
		project := configValue(opts.Config, configs.KeyGCPProject)
		if project == "" {
			project = os.Getenv(GCPProjectEnv)
		}
		return NewGCPStore(ctx, project)
	default:
		return NewKeyringStore(KeyringOptions{
			Backend:  configValue(opts.Config, configs.KeyKeyringBackend),
			FileDir:  opts.KeyringDir,
			Prompter: opts.Prompter,
		})
	}
}

func configValue(cfg configs.ValueReader, key string) string {
	if cfg == nil {
		return ""
	}
	v, _ := cfg.Get(key)
	return v
}
