// Package render turns vocabulary blocks into table view models and hands
// them to a Mount. It knows nothing about terminals; the TUI and the plain
// text printer are both just Mounts.
package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/lucasb-eyer/go-colorful"

	"vocab-viewer/internal/vocab"
)

// PronouncedFor is how long a row keeps its pronounced highlight.
const PronouncedFor = 700 * time.Millisecond

// Headers are the column titles of every table.
var Headers = []string{"Word", "Meaning", "Pronunciation"}

// TableRow is one rendered word entry.
type TableRow struct {
	Word      string
	Meaning   string
	Speakable bool
}

// Table is the rendered form of one block. ID scopes block styling so one
// block's accent never leaks into another.
type Table struct {
	ID     string
	Title  string
	Accent string
	Tint   string
	Rows   []TableRow
}

// Mount receives a full replacement of the displayed tables.
type Mount interface {
	Replace(tables []Table)
}

// Theme supplies the styling inputs that are not carried by the blocks.
type Theme struct {
	Background string
	TintAlpha  float64
}

// DefaultTheme matches a dark terminal background.
var DefaultTheme = Theme{Background: "#1E1E1E", TintAlpha: 0.2}

// Renderer builds tables from blocks.
type Renderer struct {
	Theme Theme
}

// New returns a renderer using theme.
func New(theme Theme) *Renderer {
	return &Renderer{Theme: theme}
}

// Render replaces everything on mount with freshly built tables.
func (r *Renderer) Render(blocks []vocab.Block, mount Mount) {
	mount.Replace(r.Tables(blocks))
}

// Tables builds the table view models without touching any mount.
func (r *Renderer) Tables(blocks []vocab.Block) []Table {
	tables := make([]Table, 0, len(blocks))
	for i, b := range blocks {
		t := Table{
			ID:     fmt.Sprintf("block-%d", i),
			Title:  b.Category,
			Accent: b.Color,
			Tint:   Tint(b.Color, r.Theme.Background, r.Theme.TintAlpha),
			Rows:   make([]TableRow, 0, len(b.Words)),
		}
		for _, w := range b.Words {
			t.Rows = append(t.Rows, TableRow{
				Word:      w.Word,
				Meaning:   w.Meaning,
				Speakable: Speakable(w.Word),
			})
		}
		tables = append(tables, t)
	}
	return tables
}

// Speakable reports whether a word gets a pronunciation control.
func Speakable(word string) bool {
	return strings.TrimSpace(word) != ""
}

// Tint blends accent over background at the given opacity. Colors that are
// not hex strings are returned unchanged.
func Tint(accent, background string, alpha float64) string {
	fg, err := colorful.Hex(accent)
	if err != nil {
		return accent
	}
	bg, err := colorful.Hex(background)
	if err != nil {
		return accent
	}
	return bg.BlendRgb(fg, alpha).Clamped().Hex()
}
