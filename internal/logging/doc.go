// Package logger provides leveled console logging for fragment CLI commands.
//
// # Verbosity Levels
//
// Logging behavior is controlled by two flags:
//
//   - --verbose: shows info messages
//   - --debug: shows info and debug messages
//
// Warnings and errors are always written to stderr.
//
// # Log Methods
//
//	Logger.Infof()  // Shown with --verbose or --debug
//	Logger.Debugf() // Shown only with --debug
//	Logger.Warnf()  // Always shown
//	Logger.Errorf() // Always shown
//
// # Usage
//
//	log := Logger{Verbose: verbose, Debug: debug}
//	log.Debugf("resolved %s from %s", url, source)
//
// Out and Err may be replaced with buffers in tests.
package logger
