package main

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/mattn/go-runewidth"

	"vocab-viewer/internal/render"
)

// rowKey addresses one row of one rendered table.
type rowKey struct {
	table int
	row   int
}

// tablePane is the mount the section controller renders into. It keeps the
// rendered tables, the row cursor and the transient pronounced marks.
type tablePane struct {
	tables     []render.Table
	cursor     int
	pronounced map[rowKey]int
	seq        int
	width      int
}

func newTablePane() *tablePane {
	return &tablePane{pronounced: make(map[rowKey]int)}
}

// Replace implements render.Mount. Previous tables, cursor and marks are
// discarded.
func (p *tablePane) Replace(tables []render.Table) {
	p.tables = tables
	p.cursor = 0
	p.pronounced = make(map[rowKey]int)
}

func (p *tablePane) rowCount() int {
	n := 0
	for _, t := range p.tables {
		n += len(t.Rows)
	}
	return n
}

func (p *tablePane) keyAt(flat int) (rowKey, bool) {
	for ti, t := range p.tables {
		if flat < len(t.Rows) {
			return rowKey{table: ti, row: flat}, true
		}
		flat -= len(t.Rows)
	}
	return rowKey{}, false
}

// Current returns the row under the cursor.
func (p *tablePane) Current() (rowKey, render.TableRow, bool) {
	key, ok := p.keyAt(p.cursor)
	if !ok {
		return rowKey{}, render.TableRow{}, false
	}
	return key, p.tables[key.table].Rows[key.row], true
}

func (p *tablePane) Move(delta int) {
	n := p.rowCount()
	if n == 0 {
		p.cursor = 0
		return
	}
	p.cursor = max(0, min(n-1, p.cursor+delta))
}

// MarkPronounced applies the pronounced state to key and returns the token
// that must be presented to clear it again.
func (p *tablePane) MarkPronounced(key rowKey) int {
	p.seq++
	p.pronounced[key] = p.seq
	return p.seq
}

// ClearPronounced removes the mark only if seq is still the latest one for
// key, so an older timer cannot cut a re-applied highlight short.
func (p *tablePane) ClearPronounced(key rowKey, seq int) bool {
	if cur, ok := p.pronounced[key]; ok && cur == seq {
		delete(p.pronounced, key)
		return true
	}
	return false
}

func (p *tablePane) IsPronounced(key rowKey) bool {
	_, ok := p.pronounced[key]
	return ok
}

// CursorLine returns the line of the cursor row within View output.
func (p *tablePane) CursorLine() int {
	key, ok := p.keyAt(p.cursor)
	if !ok {
		return 0
	}
	line := 0
	for ti := 0; ti < key.table; ti++ {
		line += lipgloss.Height(p.renderTable(ti, false)) + 1
	}
	// title, top border, header, header separator
	return line + 4 + key.row
}

// View draws every table. focused controls whether the cursor is shown.
func (p *tablePane) View(focused bool) string {
	if len(p.tables) == 0 {
		return ""
	}
	parts := make([]string, 0, len(p.tables))
	for ti := range p.tables {
		parts = append(parts, p.renderTable(ti, focused))
	}
	return strings.Join(parts, "\n\n")
}

func (p *tablePane) renderTable(ti int, focused bool) string {
	t := p.tables[ti]
	accent := lipgloss.Color(t.Accent)
	tint := lipgloss.Color(t.Tint)

	wordWidth, meaningWidth := p.columnWidths()

	rows := make([][]string, 0, len(t.Rows))
	for _, r := range t.Rows {
		speak := ""
		if r.Speakable {
			speak = speakLabel
		}
		rows = append(rows, []string{
			runewidth.Truncate(r.Word, wordWidth, "…"),
			runewidth.Truncate(r.Meaning, meaningWidth, "…"),
			speak,
		})
	}

	cursorKey, hasCursor := p.keyAt(p.cursor)
	hasCursor = hasCursor && focused && cursorKey.table == ti

	tbl := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(accent)).
		Headers(render.Headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return tableHeaderStyle
			}
			style := tableCellStyle
			key := rowKey{table: ti, row: row}
			if p.IsPronounced(key) {
				style = style.Background(tint)
			}
			if hasCursor && cursorKey.row == row {
				style = style.Bold(true).Foreground(accent)
			}
			if col == 2 && row < len(t.Rows) && t.Rows[row].Speakable {
				style = style.Foreground(lipgloss.Color("#FFFFFF")).Background(accent)
			}
			return style
		})

	title := blockTitleStyle.BorderForeground(accent).Render(t.Title)
	return lipgloss.JoinVertical(lipgloss.Left, title, tbl.Render())
}

func (p *tablePane) columnWidths() (word, meaning int) {
	word, meaning = 24, 40
	if p.width > 0 {
		avail := p.width - runewidth.StringWidth(speakLabel) - 12
		word = max(8, avail/3)
		meaning = max(8, avail-word)
	}
	return word, meaning
}
