package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vocab-viewer/internal/render"
)

func paneWith(tables ...render.Table) *tablePane {
	p := newTablePane()
	p.Replace(tables)
	return p
}

func sampleTables() []render.Table {
	return []render.Table{
		{ID: "block-0", Title: "Greetings", Accent: "#AAB8AB", Tint: "#3A3E3A", Rows: []render.TableRow{
			{Word: "bonjour", Meaning: "hello", Speakable: true},
			{Word: "", Meaning: "thanks"},
		}},
		{ID: "block-1", Title: "Farewell", Accent: "#97A5C0", Tint: "#3A3E45", Rows: []render.TableRow{
			{Word: "au revoir", Meaning: "goodbye", Speakable: true},
		}},
	}
}

func TestTablePane_Move(t *testing.T) {
	p := paneWith(sampleTables()...)

	key, row, ok := p.Current()
	require.True(t, ok)
	assert.Equal(t, rowKey{0, 0}, key)
	assert.Equal(t, "bonjour", row.Word)

	p.Move(2)
	key, row, _ = p.Current()
	assert.Equal(t, rowKey{1, 0}, key)
	assert.Equal(t, "au revoir", row.Word)

	p.Move(5)
	key, _, _ = p.Current()
	assert.Equal(t, rowKey{1, 0}, key)

	p.Move(-10)
	key, _, _ = p.Current()
	assert.Equal(t, rowKey{0, 0}, key)
}

func TestTablePane_Empty(t *testing.T) {
	p := newTablePane()

	p.Move(1)
	_, _, ok := p.Current()
	assert.False(t, ok)
	assert.Equal(t, "", p.View(true))
	assert.Equal(t, 0, p.CursorLine())
}

func TestTablePane_PronouncedMarks(t *testing.T) {
	p := paneWith(sampleTables()...)
	a, b := rowKey{0, 0}, rowKey{1, 0}

	first := p.MarkPronounced(a)
	second := p.MarkPronounced(b)
	assert.True(t, p.IsPronounced(a))
	assert.True(t, p.IsPronounced(b))

	assert.True(t, p.ClearPronounced(a, first))
	assert.False(t, p.IsPronounced(a))
	assert.True(t, p.IsPronounced(b), "clearing one row leaves the others")

	again := p.MarkPronounced(b)
	assert.False(t, p.ClearPronounced(b, second))
	assert.True(t, p.IsPronounced(b))
	assert.True(t, p.ClearPronounced(b, again))
}

func TestTablePane_ReplaceResets(t *testing.T) {
	p := paneWith(sampleTables()...)
	p.Move(1)
	p.MarkPronounced(rowKey{0, 0})

	p.Replace(sampleTables()[1:])

	key, row, ok := p.Current()
	require.True(t, ok)
	assert.Equal(t, rowKey{0, 0}, key)
	assert.Equal(t, "au revoir", row.Word)
	assert.False(t, p.IsPronounced(rowKey{0, 0}))
}

func TestTablePane_View(t *testing.T) {
	p := paneWith(sampleTables()...)
	p.width = 80

	out := p.View(true)
	for _, want := range []string{"Greetings", "Farewell", "Word", "Meaning", "Pronunciation", "bonjour", "au revoir", speakLabel} {
		assert.Contains(t, out, want)
	}
}

func TestTablePane_CursorLine(t *testing.T) {
	p := paneWith(sampleTables()...)

	assert.Equal(t, 4, p.CursorLine())
	p.Move(1)
	assert.Equal(t, 5, p.CursorLine())
	p.Move(1)
	assert.Greater(t, p.CursorLine(), 5)
}

func TestTablePane_ColumnWidths(t *testing.T) {
	p := newTablePane()
	w, m := p.columnWidths()
	assert.Equal(t, 24, w)
	assert.Equal(t, 40, m)

	p.width = 10
	w, m = p.columnWidths()
	assert.Equal(t, 8, w)
	assert.Equal(t, 8, m)
}
