package cliutil

import (
	"fmt"
	"io"
)

// RenderTable writes rows under headers as fixed-width columns. In quiet
// mode the headers are left out and cells are tab-separated for piping.
func RenderTable(w io.Writer, headers []string, rows [][]string, quiet bool) {
	if len(rows) == 0 {
		return
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	writeRow := func(cells []string) {
		for i, cell := range cells {
			switch {
			case quiet && i > 0:
				_, _ = fmt.Fprint(w, "\t")
			case i > 0:
				_, _ = fmt.Fprint(w, "  ")
			}
			if quiet || i == len(cells)-1 || i >= len(widths) {
				_, _ = fmt.Fprint(w, cell)
				continue
			}
			_, _ = fmt.Fprintf(w, "%-*s", widths[i], cell)
		}
		_, _ = fmt.Fprintln(w)
	}

	if !quiet {
		writeRow(headers)
	}
	for _, row := range rows {
		writeRow(row)
	}
}
