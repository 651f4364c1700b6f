// Package loader fetches section CSV resources and turns them into
// vocabulary blocks.
package loader

import (
	"context"
	"log/slog"

	"vocab-viewer/internal/vocab"
)

// Loader produces the ordered blocks of one section.
type Loader interface {
	Load(ctx context.Context, path string) ([]vocab.Block, error)
}

// CSVLoader fetches a resource and parses it as header-aware CSV.
type CSVLoader struct {
	fetcher Fetcher
	palette vocab.Palette
	logger  *slog.Logger
}

// NewCSVLoader creates a loader. A nil logger falls back to slog.Default and
// an empty palette to vocab.DefaultPalette.
func NewCSVLoader(fetcher Fetcher, palette vocab.Palette, logger *slog.Logger) *CSVLoader {
	if logger == nil {
		logger = slog.Default()
	}
	if len(palette) == 0 {
		palette = vocab.DefaultPalette
	}
	return &CSVLoader{fetcher: fetcher, palette: palette, logger: logger}
}

// Load fetches path and groups its records. Only fetch failures are
// returned; bad records are skipped.
func (l *CSVLoader) Load(ctx context.Context, path string) ([]vocab.Block, error) {
	data, err := l.fetcher.Fetch(ctx, path)
	if err != nil {
		return nil, err
	}

	rows := ParseRows(data, l.logger.With("path", path))
	blocks := vocab.Group(rows, l.palette)

	l.logger.Debug("section parsed", "path", path, "blocks", len(blocks), "words", len(rows))
	return blocks, nil
}
