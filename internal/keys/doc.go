// Package keys supplies raw key material to the identity SDK.
//
// DeviceKeyProvider resolves device keys from the secret backend. Keys are
// stored base64-encoded under "device-key-<deviceId>". A lookup first tries
// the identifier exactly as given; when that misses and the identifier is a
// composite key ID (device:<deviceId>:<millis>), it retries with the embedded
// device ID. The second step keeps keys stored by older releases reachable and
// is deliberately a separate lookup.
//
// SSHKeyProvider locates an SSH private key on disk, detects whether it is
// passphrase-protected and asks for the passphrase when it is. Key material
// is returned to the caller and never cached.
package keys
