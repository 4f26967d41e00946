// Package device derives the local device identity and the identifiers
// built from it.
//
// A device ID is the first 16 hex characters of
// SHA-256("<platform>-<hostname>-<username>"). It is stable for a given
// machine and account and changes whenever any of the three inputs change.
// It is a lookup discriminator, not a cryptographic identifier: two machines
// with the same platform, hostname and username share a device ID.
//
// Device key IDs have the form "device:<deviceID>:<unix millis>" and the raw
// key is stored in the secret backend under "device-key-<deviceID>".
package device
