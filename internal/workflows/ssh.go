package workflows

import (
	"context"
	"fmt"

	"golang.org/x/crypto/ssh"

	kerrors "github.com/fragmentid/fragment-cli/internal/errors"
	"github.com/fragmentid/fragment-cli/internal/identity"
	logger "github.com/fragmentid/fragment-cli/internal/logging"
)

// SSHCheckOptions configures the SSH key check workflow.
type SSHCheckOptions struct {
	// Resolve is the SSH key callback handed to the identity SDK.
	Resolve identity.SSHKeyFunc
	KeyID   string
	Log     logger.Logger
}

// SSHCheckResult describes the resolved key. It never carries key material.
type SSHCheckResult struct {
	Path          string
	Encrypted     bool
	HasPassphrase bool

	// Fingerprint is the SHA256 fingerprint of the public key, empty when
	// the key could not be decoded locally.
	Fingerprint string
	KeyType     string
}

// CheckSSHKey resolves the SSH key the identity SDK would be given.
func CheckSSHKey(ctx context.Context, opts SSHCheckOptions) (*SSHCheckResult, error) {
	if opts.Resolve == nil {
		return nil, fmt.Errorf("%w: no SSH key provider configured", kerrors.ErrInvalidInput)
	}

	material, err := opts.Resolve(ctx, opts.KeyID)
	if err != nil {
		return nil, err
	}

	result := &SSHCheckResult{
		Path:          material.Path,
		Encrypted:     material.Encrypted,
		HasPassphrase: material.Passphrase != "",
	}

	var signer ssh.Signer
	if material.Passphrase != "" {
		signer, err = ssh.ParsePrivateKeyWithPassphrase([]byte(material.PrivateKeyMaterial), []byte(material.Passphrase))
	} else {
		signer, err = ssh.ParsePrivateKey([]byte(material.PrivateKeyMaterial))
	}
	if err == nil {
		result.Fingerprint = ssh.FingerprintSHA256(signer.PublicKey())
		result.KeyType = signer.PublicKey().Type()
	} else {
		opts.Log.Debugf("Could not decode %s locally: %v", material.Path, err)
	}

	return result, nil
}
