package main

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

type column struct {
	Header string
	Align  text.Align
}

var (
	convertColumns = []column{
		{"Video", text.AlignLeft},
		{"Status", text.AlignLeft},
		{"Bitrate", text.AlignRight},
		{"Audio", text.AlignLeft},
	}
	entryColumns = []column{
		{"Audio", text.AlignLeft},
		{"Analysis", text.AlignLeft},
		{"Size", text.AlignRight},
		{"Updated", text.AlignLeft},
	}
)

// renderTable lays rows out under columns. A non-empty summary becomes a
// footer spanning the whole table.
func renderTable(columns []column, rows [][]string, summary string) string {
	if len(columns) == 0 {
		return ""
	}

	style := table.StyleRounded
	style.Format.Footer = text.FormatDefault

	tw := table.NewWriter()
	tw.SetStyle(style)

	header := make(table.Row, len(columns))
	configs := make([]table.ColumnConfig, len(columns))
	for i, c := range columns {
		header[i] = c.Header
		configs[i] = table.ColumnConfig{Number: i + 1, Align: c.Align, AlignHeader: text.AlignLeft}
	}
	tw.AppendHeader(header)
	tw.SetColumnConfigs(configs)

	for _, row := range rows {
		r := make(table.Row, len(columns))
		for i := range r {
			r[i] = ""
			if i < len(row) {
				r[i] = row[i]
			}
		}
		tw.AppendRow(r)
	}

	if summary != "" {
		footer := make(table.Row, len(columns))
		for i := range footer {
			footer[i] = summary
		}
		tw.AppendFooter(footer, table.RowConfig{AutoMerge: true})
	}

	return tw.Render()
}
