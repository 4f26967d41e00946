// Package configs manages persisted CLI configuration.
//
// Configuration is a flat string-to-string mapping stored as TOML at
// <config dir>/config.toml, where <config dir> is $FRAGMENT_CONFIG_DIR or
// <os config dir>/fragment. Writes replace the file atomically.
//
// # Keys
//
//   - apiBaseUrl: identity service URL, overridden by --api-url
//   - lastUser: the most recently signed-in user
//   - provider: secret backend, "local" (default) or "gcp"
//   - gcpProject: Google Cloud project for the gcp backend
//   - keyringBackend: restricts the local backend to one keyring implementation
//   - deviceKeyId: key ID of the most recently generated device key
//
// # API Base URL
//
// ResolveAPIBaseURL applies the precedence flag > apiBaseUrl > default and
// strips a single trailing slash. It never fails.
//
// # Settings
//
// There is no process-wide config singleton. Commands build a Settings value
// with DefaultSettings, open a Store and pass both down explicitly.
package configs
