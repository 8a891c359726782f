package stats

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

// column is one column of a history table. Cells wider than max are cut
// with "..."; max 0 leaves them whole.
type column struct {
	title string
	right bool
	max   int
}

// tableLines lays rows out under cols, padding to terminal display width so
// Japanese translations line up with ASCII rows. Trailing blanks are dropped.
func tableLines(cols []column, rows [][]string) []string {
	if len(cols) == 0 {
		return nil
	}
	cells := make([][]string, 0, len(rows)+1)
	header := make([]string, len(cols))
	for i, c := range cols {
		header[i] = c.title
	}
	cells = append(cells, header)
	for _, row := range rows {
		line := make([]string, len(cols))
		for i, c := range cols {
			if i >= len(row) {
				continue
			}
			line[i] = row[i]
			if c.max > 0 {
				line[i] = runewidth.Truncate(line[i], c.max, "...")
			}
		}
		cells = append(cells, line)
	}

	widths := make([]int, len(cols))
	for _, line := range cells {
		for i, cell := range line {
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}

	out := make([]string, 0, len(cells))
	for _, line := range cells {
		parts := make([]string, len(cols))
		for i, cell := range line {
			if cols[i].right {
				parts[i] = runewidth.FillLeft(cell, widths[i])
			} else {
				parts[i] = runewidth.FillRight(cell, widths[i])
			}
		}
		out = append(out, strings.TrimRight(strings.Join(parts, " "), " "))
	}
	return out
}

func writeTable(w io.Writer, title string, cols []column, rows [][]string) error {
	if _, err := fmt.Fprintln(w, title); err != nil {
		return err
	}
	for _, line := range tableLines(cols, rows) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
