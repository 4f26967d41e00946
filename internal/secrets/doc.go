// Package secrets is the secret resolution layer: a uniform get/set/delete
// interface over a pluggable backend, keyed by (service, key).
//
// # Backends
//
// Exactly one backend is active per invocation, selected by the persisted
// "provider" setting:
//
//   - local (default): the OS keychain through 99designs/keyring (macOS
//     Keychain, Secret Service, KWallet, Windows Credential Manager, pass,
//     keyctl, or an encrypted file when keyringBackend=file).
//   - gcp: Google Cloud Secret Manager using application default credentials.
//     Each (service, key) pair is one secret; its latest version is the value.
//
// # Semantics
//
//   - Get returns found=false for an absent entry. That is not an error.
//   - Set creates or replaces; callers never observe a partial write.
//   - Delete of an absent entry is a no-op.
//   - Backend failures (no keychain daemon, missing cloud credentials) wrap
//     errors.ErrBackendUnavailable and are never reported as "not found".
//
// No retries happen here; failures go straight back to the caller.
//
// All CLI-managed secrets live under ServiceName. StorageAdapter binds a Store
// to that namespace for the identity SDK.
package secrets
