// Package workflows provides the business logic behind fragment commands.
//
// Each workflow handles a single command's logic, independent of CLI
// concerns like flag parsing, spinners and output formatting. The cmd
// package parses flags, calls a workflow and formats its result.
//
// # Available Workflows
//
//   - RegisterDevice, RemoveDevice, DeviceStatus: device key lifecycle
//   - SetSecret, GetSecret, DeleteSecret: user secrets in the active backend
//   - CheckSSHKey: which SSH key the identity SDK would be handed
//   - ShowConfig: effective configuration and where it came from
//   - Log: the local audit trail
//
// # Error Handling
//
// Workflows return errors wrapping the sentinels in internal/errors. Use
// errors.Is to tell them apart:
//
//	result, err := workflows.RegisterDevice(ctx, opts)
//	if errors.Is(err, kerrors.ErrDeviceKeyExists) {
//	    // confirm, then retry with Force
//	}
//
// Audit failures never fail a workflow. They are returned in the result's
// AuditErr field for the caller to warn about.
package workflows
