package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/fragmentid/fragment-cli/internal/audit"
	"github.com/fragmentid/fragment-cli/internal/workflows"
)

var (
	logLimit     int
	logReverse   bool
	logOperation string
	logSince     string
	logUntil     string
	logJSON      bool
)

func init() {
	logCmd.Flags().IntVarP(&logLimit, "number", "n", 0, "limit number of entries shown")
	logCmd.Flags().BoolVar(&logReverse, "reverse", false, "show most recent entries first")
	logCmd.Flags().StringVar(&logOperation, "operation", "", "filter by operation type (comma-separated)")
	logCmd.Flags().StringVar(&logSince, "since", "", "show entries after date (YYYY-MM-DD)")
	logCmd.Flags().StringVar(&logUntil, "until", "", "show entries before date (YYYY-MM-DD)")
	logCmd.Flags().BoolVar(&logJSON, "json", false, "output as JSON array")
}

// resetLogCommandState resets the log command's global state for testing.
func resetLogCommandState() {
	logLimit = 0
	logReverse = false
	logOperation = ""
	logSince = ""
	logUntil = ""
	logJSON = false
}

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "View the local audit log",
	Long: `Displays changes made to device keys and secrets from this machine.

Examples:
  fragment log                                   # View full log
  fragment log -n 10                             # Last 10 entries
  fragment log --reverse                         # Most recent first
  fragment log --operation secret.set,secret.delete
  fragment log --since 2024-01-01                # Filter by date
  fragment log --json                            # JSON output`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := workflows.Log(cmd.Context(), workflows.LogOptions{
			Trail:      auditTrail(),
			Limit:      logLimit,
			Reverse:    logReverse,
			Operations: logOperation,
			Since:      logSince,
			Until:      logUntil,
		})
		if err != nil {
			return err
		}

		Logger.Debugf("Parsed %d entries from %s", result.TotalEntriesBeforeFilter, settings.AuditLogPath)
		out := cmd.OutOrStdout()

		if logJSON {
			entries := result.Entries
			if entries == nil {
				entries = []audit.Entry{}
			}
			return outputLogJSON(out, entries)
		}

		if len(result.Entries) == 0 {
			if result.TotalEntriesBeforeFilter == 0 {
				fmt.Fprintln(out, "No audit log entries found.")
			} else {
				fmt.Fprintln(out, "No audit log entries found matching the filters.")
			}
			return nil
		}

		for _, e := range result.Entries {
			fmt.Fprintf(out, "%-19s  %-16s  %-8s  %s\n",
				workflows.FormatDateTime(e.Timestamp), e.Operation, e.Provider, workflows.FormatDetails(e))
		}
		return nil
	},
}

func outputLogJSON(out io.Writer, entries []audit.Entry) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal entries to JSON: %w", err)
	}
	fmt.Fprintln(out, string(data))
	return nil
}
