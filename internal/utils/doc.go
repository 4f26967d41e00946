// Package utils holds small I/O helpers shared by commands.
//
// # I/O Utilities
//
//   - ReadStdin: reads a piped secret value from standard input
//   - ReadValue: reads a value from any reader, dropping the trailing newline
package utils
