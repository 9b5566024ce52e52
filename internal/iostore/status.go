package iostore

import (
	"fmt"
	"io"
	"slices"

	"github.com/huangsam/nestscore/schema"
)

const statusTimeLayout = "2006-01-02 15:04:05"

// PrintRecordStatus prints record store status information.
func PrintRecordStatus(w io.Writer, status schema.RecordStatus) {
	_, _ = fmt.Fprintf(w, "Record Backend: %s\n", status.Backend)
	_, _ = fmt.Fprintf(w, "Connected: %t\n", status.Connected)
	if !status.Connected {
		return
	}
	_, _ = fmt.Fprintf(w, "Total Properties: %d\n", status.TotalProperties)
	if status.TotalProperties > 0 {
		_, _ = fmt.Fprintf(w, "Newest Property: %s\n", status.NewestCreatedAt.Local().Format(statusTimeLayout))
		_, _ = fmt.Fprintf(w, "Oldest Property: %s\n", status.OldestCreatedAt.Local().Format(statusTimeLayout))
	}
	_, _ = fmt.Fprintf(w, "Custom Settings: %t\n", status.SettingsModified)
}

// PrintHistoryStatus prints history store status information.
func PrintHistoryStatus(w io.Writer, status schema.HistoryStatus) {
	_, _ = fmt.Fprintf(w, "History Backend: %s\n", status.Backend)
	_, _ = fmt.Fprintf(w, "Connected: %t\n", status.Connected)
	if !status.Connected {
		return
	}
	_, _ = fmt.Fprintf(w, "Total Runs: %d\n", status.TotalRuns)
	if status.TotalRuns > 0 {
		_, _ = fmt.Fprintf(w, "Last Run ID: %d\n", status.LastRunID)
		_, _ = fmt.Fprintf(w, "Last Run: %s\n", status.LastRunTime.Local().Format(statusTimeLayout))
		_, _ = fmt.Fprintf(w, "Oldest Run: %s\n", status.OldestRunTime.Local().Format(statusTimeLayout))
		_, _ = fmt.Fprintf(w, "Total Properties Scored: %d\n", status.TotalPropertiesScored)
	}
	_, _ = fmt.Fprintln(w, "Table Sizes:")
	tables := make([]string, 0, len(status.TableSizes))
	for table := range status.TableSizes {
		tables = append(tables, table)
	}
	slices.Sort(tables)
	for _, table := range tables {
		_, _ = fmt.Fprintf(w, "  %s: %d rows\n", table, status.TableSizes[table])
	}
}
