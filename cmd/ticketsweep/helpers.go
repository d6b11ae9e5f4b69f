package main

import (
	"io"
	"os"
	"sort"

	"github.com/mattn/go-isatty"

	"ticketsweep/internal/textutil"
	"ticketsweep/internal/ticket"
)

// closedAtDisplayLayout matches what operators see in the remote system.
const closedAtDisplayLayout = "2006-01-02 15:04:05 MST"

func isTerminalWriter(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// sortRecords orders records by ticket id. The pipeline returns completion
// order, which varies run to run.
func sortRecords(records []ticket.Record) {
	sort.Slice(records, func(i, j int) bool {
		return records[i].ID < records[j].ID
	})
}

func filterReady(records []ticket.Record) []ticket.Record {
	var ready []ticket.Record
	for _, record := range records {
		if record.ReadyForDeletion {
			ready = append(ready, record)
		}
	}
	return ready
}

func formatClosedAt(record ticket.Record) string {
	if record.ClosedAt == nil {
		return "open"
	}
	return record.ClosedAt.Format(closedAtDisplayLayout)
}

// renderRecords writes records as a rounded table on a terminal and
// tab-separated when piped.
func renderRecords(out io.Writer, title string, records []ticket.Record) {
	if isTerminalWriter(out) {
		renderTable(out, title, recordHeaders, recordRows(records), recordAligns)
		return
	}
	renderTSV(out, recordHeaders, recordRows(records))
}

var recordHeaders = []string{"Ticket", "Size", "Closed At (Local)", "Closed By", "Retention Hold", "Ready for Deletion"}

var recordAligns = []columnAlignment{alignLeft, alignRight, alignLeft, alignLeft, alignLeft, alignLeft}

func recordRows(records []ticket.Record) [][]string {
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			record.ID.String(),
			textutil.HumanSize(record.FolderSizeBytes),
			formatClosedAt(record),
			record.ClosedBy,
			yesNo(record.HasRetentionHold),
			yesNo(record.ReadyForDeletion),
		})
	}
	return rows
}

// recordJSON is the machine-readable projection of a ticket record.
type recordJSON struct {
	Ticket           string `json:"ticket"`
	RemoteID         string `json:"remote_id"`
	ClosedAt         string `json:"closed_at,omitempty"`
	ClosedBy         string `json:"closed_by"`
	RetentionHold    bool   `json:"retention_hold"`
	FolderSizeBytes  uint64 `json:"folder_size_bytes"`
	FolderSize       string `json:"folder_size"`
	ReadyForDeletion bool   `json:"ready_for_deletion"`
	DeepLink         string `json:"deep_link"`
}

func recordsToJSON(records []ticket.Record) []recordJSON {
	out := make([]recordJSON, 0, len(records))
	for _, record := range records {
		entry := recordJSON{
			Ticket:           record.ID.String(),
			RemoteID:         record.RemoteID,
			ClosedBy:         record.ClosedBy,
			RetentionHold:    record.HasRetentionHold,
			FolderSizeBytes:  record.FolderSizeBytes,
			FolderSize:       textutil.HumanSize(record.FolderSizeBytes),
			ReadyForDeletion: record.ReadyForDeletion,
			DeepLink:         record.DeepLink,
		}
		if record.ClosedAt != nil {
			entry.ClosedAt = record.ClosedAt.Format(closedAtDisplayLayout)
		}
		out = append(out, entry)
	}
	return out
}
