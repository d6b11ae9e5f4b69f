package main

import (
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

// renderTable writes a rounded table to out. Columns beyond the row length
// render empty; aligns may be shorter than headers and defaults to left.
func renderTable(out io.Writer, title string, headers []string, rows [][]string, aligns []columnAlignment) {
	tw := buildTable(out, title, headers, rows, aligns)
	if tw == nil {
		return
	}
	tw.Render()
}

// renderTSV writes the same data tab-separated for piped output.
func renderTSV(out io.Writer, headers []string, rows [][]string) {
	tw := buildTable(out, "", headers, rows, nil)
	if tw == nil {
		return
	}
	tw.RenderTSV()
}

func buildTable(out io.Writer, title string, headers []string, rows [][]string, aligns []columnAlignment) table.Writer {
	columns := len(headers)
	if columns == 0 {
		return nil
	}

	tw := table.NewWriter()
	tw.SetOutputMirror(out)
	tw.SetStyle(table.StyleRounded)
	if title != "" {
		tw.SetTitle(title)
	}

	header := make(table.Row, columns)
	for i := range header {
		header[i] = headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := 0; i < columns; i++ {
			if i < len(row) {
				r[i] = row[i]
			}
		}
		tw.AppendRow(r)
	}

	configs := make([]table.ColumnConfig, 0, columns)
	for i := 0; i < columns; i++ {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == alignRight {
			align = text.AlignRight
		}
		configs = append(configs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(configs)

	return tw
}
