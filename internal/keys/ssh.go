package keys

import (
	"context"
	"crypto/x509"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/crypto/ssh"

	kerrors "github.com/fragmentid/fragment-cli/internal/errors"
	logger "github.com/fragmentid/fragment-cli/internal/logging"
	"github.com/fragmentid/fragment-cli/internal/prompt"
)

// Default key file names, in lookup order.
const (
	DefaultEd25519Key = "id_ed25519"
	DefaultRSAKey     = "id_rsa"
)

const encryptedMarker = "ENCRYPTED"

// SSHKeyMaterial is a private key as read from disk. An empty Passphrase
// means none was supplied.
type SSHKeyMaterial struct {
	Path               string
	PrivateKeyMaterial string
	Passphrase         string
	Encrypted          bool
}

// SSHKeyProvider locates an SSH private key and collects its passphrase.
type SSHKeyProvider struct {
	// ExplicitPath is the --ssh-key flag value. It wins over the defaults.
	ExplicitPath string

	// SSHDir is searched for the default keys, usually ~/.ssh.
	SSHDir string

	Prompter prompt.CredentialPrompter
	Log      logger.Logger
}

// Resolve returns the key material for keyID. keyID only appears in prompts
// and logs; the key file is chosen by path priority.
func (p *SSHKeyProvider) Resolve(ctx context.Context, keyID string) (*SSHKeyMaterial, error) {
	path, err := p.keyPath(keyID)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w at %s", kerrors.ErrSSHKeyNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to stat ssh key %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", kerrors.ErrInvalidInput, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read ssh key %s: %w", path, err)
	}

	material := &SSHKeyMaterial{
		Path:               path,
		PrivateKeyMaterial: string(data),
		Encrypted:          IsEncrypted(data),
	}
	if !material.Encrypted {
		p.Log.Debugf("SSH key %s is not passphrase protected", path)
		return material, nil
	}

	if p.Prompter == nil {
		return nil, fmt.Errorf("%w: %s is passphrase protected and no prompt is available", kerrors.ErrInvalidInput, path)
	}
	passphrase, err := p.Prompter.GetPassword(fmt.Sprintf("Passphrase for %s (leave empty for none)", path))
	if err != nil {
		return nil, err
	}
	if passphrase == "" {
		return material, nil
	}

	if err := checkPassphrase(data, passphrase); err != nil {
		return nil, fmt.Errorf("%w for %s", err, path)
	}
	material.Passphrase = passphrase
	return material, nil
}

func (p *SSHKeyProvider) keyPath(keyID string) (string, error) {
	if p.ExplicitPath != "" {
		p.Log.Debugf("Using SSH key from flag: %s", p.ExplicitPath)
		return expandHome(p.ExplicitPath)
	}

	if p.SSHDir != "" {
		for _, name := range []string{DefaultEd25519Key, DefaultRSAKey} {
			candidate := filepath.Join(p.SSHDir, name)
			if _, err := os.Stat(candidate); err == nil {
				p.Log.Debugf("Using default SSH key %s", candidate)
				return candidate, nil
			}
		}
	}

	if p.Prompter == nil {
		return "", fmt.Errorf("%w: no SSH key found in %s", kerrors.ErrSSHKeyNotFound, p.SSHDir)
	}

	question := "Path to SSH private key"
	if keyID != "" {
		question += " for " + keyID
	}
	if candidates := CandidateKeys(p.SSHDir); len(candidates) > 0 {
		question += " (found: " + strings.Join(candidates, ", ") + ")"
	}

	answer, err := p.Prompter.GetText(question)
	if err != nil {
		return "", err
	}
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return "", fmt.Errorf("%w: no SSH key path given", kerrors.ErrInvalidInput)
	}

	// Bare names refer to files in the SSH directory.
	if !strings.ContainsRune(answer, filepath.Separator) && !strings.HasPrefix(answer, "~") && p.SSHDir != "" {
		if _, err := os.Stat(answer); err != nil {
			return filepath.Join(p.SSHDir, answer), nil
		}
	}
	return expandHome(answer)
}

// CandidateKeys lists private key files named id_* in dir, without .pub files.
func CandidateKeys(dir string) []string {
	if dir == "" {
		return nil
	}
	matches, err := doublestar.Glob(os.DirFS(dir), "id_*", doublestar.WithFilesOnly())
	if err != nil {
		return nil
	}

	var keys []string
	for _, m := range matches {
		if !strings.HasSuffix(m, ".pub") {
			keys = append(keys, m)
		}
	}
	sort.Strings(keys)
	return keys
}

// IsEncrypted reports whether the private key needs a passphrase. PEM keys
// carry an ENCRYPTED marker; OpenSSH-format keys only reveal it when parsed.
func IsEncrypted(data []byte) bool {
	if strings.Contains(string(data), encryptedMarker) {
		return true
	}
	_, err := ssh.ParseRawPrivateKey(data)
	var missing *ssh.PassphraseMissingError
	return errors.As(err, &missing)
}

// checkPassphrase rejects a passphrase the key cannot be decrypted with.
// Keys x/crypto/ssh cannot parse are left for the SDK to judge.
func checkPassphrase(data []byte, passphrase string) error {
	_, err := ssh.ParseRawPrivateKeyWithPassphrase(data, []byte(passphrase))
	if errors.Is(err, x509.IncorrectPasswordError) {
		return kerrors.ErrIncorrectPassphrase
	}
	return nil
}

func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("error getting home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
