package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

// speakMarker fills the pronunciation column of speakable rows.
const speakMarker = "[speak]"

// TextMount prints tables as aligned plain text. It is append-only: each
// Replace writes a full new listing after whatever W already holds, so it
// suits one-shot output rather than redrawing.
type TextMount struct {
	W        io.Writer
	MaxWidth int
}

// Replace appends a listing of tables to W. Earlier output is not erased.
func (m *TextMount) Replace(tables []Table) {
	for i, t := range tables {
		if i > 0 {
			fmt.Fprintln(m.W)
		}
		fmt.Fprintf(m.W, "# %s\n", t.Title)
		m.writeTable(t)
	}
}

func (m *TextMount) writeTable(t Table) {
	cells := [][]string{append([]string(nil), Headers...)}
	for _, row := range t.Rows {
		speak := ""
		if row.Speakable {
			speak = speakMarker
		}
		cells = append(cells, []string{row.Word, row.Meaning, speak})
	}

	widths := make([]int, len(Headers))
	for r := range cells {
		for c := range cells[r] {
			cells[r][c] = m.clip(cells[r][c])
			if w := runewidth.StringWidth(cells[r][c]); w > widths[c] {
				widths[c] = w
			}
		}
	}

	for _, row := range cells {
		parts := make([]string, len(row))
		for c, cell := range row {
			parts[c] = runewidth.FillRight(cell, widths[c])
		}
		fmt.Fprintln(m.W, strings.TrimRight(strings.Join(parts, "  "), " "))
	}
}

func (m *TextMount) clip(s string) string {
	if m.MaxWidth <= 0 {
		return s
	}
	return runewidth.Truncate(s, m.MaxWidth, "…")
}
