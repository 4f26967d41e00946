// Package audit records a local trail of operations that change stored
// credentials: device key registration and removal, and user secret writes
// and deletions.
//
// # Log Format
//
// The trail is JSON Lines (one JSON object per line) at:
//
//	<config dir>/audit.jsonl
//
// Each entry contains:
//   - A UUID and a UTC timestamp with microseconds
//   - The operation name (device.register, device.remove, secret.set, secret.delete)
//   - The secret key or device ID it touched, and the backend used
//
// Values and key material are never written.
//
// # Failure Handling
//
// Audit logging is best-effort. Log returns its error so the caller can warn,
// and the operation itself still succeeds.
//
// # Reading Logs
//
// ReadEntries parses the trail for display. Malformed entries are skipped to
// tolerate partial writes.
package audit
