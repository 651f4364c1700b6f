package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vocab-viewer/internal/config"
	"vocab-viewer/internal/section"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestResolveEntries_FromList(t *testing.T) {
	entries, err := resolveEntries(config.SectionsConfig{
		Dir: t.TempDir(),
		List: []config.SectionConfig{
			{Title: "Greetings", Path: "a.csv"},
			{Path: "unit_02-food.csv"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, []section.Entry{
		{Title: "Greetings", Path: "a.csv"},
		{Title: "Unit 02 food", Path: "unit_02-food.csv"},
	}, entries)
}

func TestResolveEntries_Discovered(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.csv", unitTwo)
	writeFile(t, dir, "a.csv", unitOne)
	writeFile(t, dir, "notes.txt", "ignored")

	entries, err := resolveEntries(config.SectionsConfig{Dir: dir})
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "a.csv", entries[0].Path)
	assert.Equal(t, "b.csv", entries[1].Path)
}

func TestPrintSection(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "u1.csv", unitOne)

	cfg := &config.Config{
		Sections: config.SectionsConfig{Dir: dir},
		UI:       config.UIConfig{Background: "#1E1E1E", TintAlpha: 0.2},
		Log:      config.LogConfig{Level: "error"},
	}
	var out, logs bytes.Buffer
	require.NoError(t, printSection(cfg, "u1.csv", &out, &logs))

	got := out.String()
	assert.Contains(t, got, "# Greetings")
	assert.Contains(t, got, "# Farewell")
	assert.Contains(t, got, "bonjour")
	assert.Contains(t, got, "[speak]")
}

func TestPrintSection_Missing(t *testing.T) {
	cfg := &config.Config{
		Sections: config.SectionsConfig{Dir: t.TempDir()},
		Log:      config.LogConfig{Level: "error"},
	}
	var out, logs bytes.Buffer
	assert.Error(t, printSection(cfg, "nope.csv", &out, &logs))
	assert.Empty(t, out.String())
}
