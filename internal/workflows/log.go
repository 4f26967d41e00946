package workflows

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fragmentid/fragment-cli/internal/audit"
	kerrors "github.com/fragmentid/fragment-cli/internal/errors"
)

// LogOptions configures the log workflow.
type LogOptions struct {
	Trail *audit.Trail

	// Limit is the maximum number of entries to return. 0 means no limit.
	Limit int

	// Reverse orders entries from most recent to oldest when true.
	Reverse bool

	// Operations filters entries by operation types (comma-separated).
	Operations string

	// Since filters entries after this date (YYYY-MM-DD format).
	Since string

	// Until filters entries before this date (YYYY-MM-DD format).
	Until string
}

// LogResult contains the outcome of a log operation.
type LogResult struct {
	Entries []audit.Entry

	// TotalEntriesBeforeFilter is the count of entries before filtering.
	TotalEntriesBeforeFilter int
}

// Log reads and filters the audit trail. A missing trail yields no entries.
//
// Returns ErrInvalidInput if a date is not YYYY-MM-DD.
func Log(ctx context.Context, opts LogOptions) (*LogResult, error) {
	entries, err := opts.Trail.ReadEntries()
	if err != nil {
		return nil, fmt.Errorf("reading audit log: %w", err)
	}

	result := &LogResult{TotalEntriesBeforeFilter: len(entries)}
	filtered := entries

	if opts.Operations != "" {
		filtered = filterByOperations(filtered, strings.Split(opts.Operations, ","))
	}

	if opts.Since != "" {
		since, err := time.Parse("2006-01-02", opts.Since)
		if err != nil {
			return nil, fmt.Errorf("%w: --since date format invalid, use YYYY-MM-DD", kerrors.ErrInvalidInput)
		}
		filtered = filterByTime(filtered, func(t time.Time) bool { return !t.Before(since) })
	}

	if opts.Until != "" {
		until, err := time.Parse("2006-01-02", opts.Until)
		if err != nil {
			return nil, fmt.Errorf("%w: --until date format invalid, use YYYY-MM-DD", kerrors.ErrInvalidInput)
		}
		// Include the entire day.
		until = until.Add(24*time.Hour - time.Nanosecond)
		filtered = filterByTime(filtered, func(t time.Time) bool { return !t.After(until) })
	}

	if opts.Reverse {
		for i, j := 0, len(filtered)-1; i < j; i, j = i+1, j-1 {
			filtered[i], filtered[j] = filtered[j], filtered[i]
		}
	}

	// The limit always keeps the most recent entries.
	if opts.Limit > 0 && len(filtered) > opts.Limit {
		if opts.Reverse {
			filtered = filtered[:opts.Limit]
		} else {
			filtered = filtered[len(filtered)-opts.Limit:]
		}
	}

	result.Entries = filtered
	return result, nil
}

func filterByOperations(entries []audit.Entry, ops []string) []audit.Entry {
	opSet := make(map[string]bool)
	for _, op := range ops {
		opSet[strings.ToLower(strings.TrimSpace(op))] = true
	}

	var result []audit.Entry
	for _, e := range entries {
		if opSet[strings.ToLower(e.Operation)] {
			result = append(result, e)
		}
	}
	return result
}

func filterByTime(entries []audit.Entry, keep func(time.Time) bool) []audit.Entry {
	var result []audit.Entry
	for _, e := range entries {
		t, ok := parseTimestamp(e.Timestamp)
		if ok && keep(t) {
			result = append(result, e)
		}
	}
	return result
}

func parseTimestamp(ts string) (time.Time, bool) {
	t, err := time.Parse("2006-01-02T15:04:05.000000Z", ts)
	if err != nil {
		t, err = time.Parse(time.RFC3339, ts)
	}
	return t, err == nil
}

// FormatDateTime formats a timestamp string to YYYY-MM-DD HH:MM:SS format.
func FormatDateTime(ts string) string {
	t, ok := parseTimestamp(ts)
	if !ok {
		if len(ts) >= 19 {
			return ts[:19]
		}
		return ts
	}
	return t.Format("2006-01-02 15:04:05")
}

// FormatDetails summarises what an entry touched.
func FormatDetails(e audit.Entry) string {
	switch e.Operation {
	case audit.OpSecretSet:
		if e.Replaced {
			return e.Key + " (replaced)"
		}
		return e.Key
	case audit.OpSecretDelete:
		return e.Key
	case audit.OpDeviceRegister:
		if e.Replaced {
			return e.KeyID + " (replaced)"
		}
		return e.KeyID
	case audit.OpDeviceRemove:
		return e.DeviceID
	default:
		return ""
	}
}
