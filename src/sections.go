package main

import (
	"log/slog"
	"net/http"
	"os"

	"vocab-viewer/internal/config"
	"vocab-viewer/internal/loader"
	"vocab-viewer/internal/render"
	"vocab-viewer/internal/section"
)

// resolveEntries returns the configured sections, or the CSV files found in
// the sections directory when none are listed.
func resolveEntries(cfg config.SectionsConfig) ([]section.Entry, error) {
	if len(cfg.List) > 0 {
		entries := make([]section.Entry, 0, len(cfg.List))
		for _, s := range cfg.List {
			title := s.Title
			if title == "" {
				title = section.TitleFromPath(s.Path)
			}
			entries = append(entries, section.Entry{Title: title, Path: s.Path})
		}
		return entries, nil
	}
	return section.Discover(os.DirFS(cfg.Dir))
}

func newFetcher(cfg config.SectionsConfig) loader.Fetcher {
	return loader.Router{
		Local:  loader.FSFetcher{FS: os.DirFS(cfg.Dir)},
		Remote: loader.HTTPFetcher{Client: http.DefaultClient},
	}
}

func newController(cfg *config.Config, entries []section.Entry, mount render.Mount, logger *slog.Logger) *section.Controller {
	l := loader.NewCSVLoader(newFetcher(cfg.Sections), cfg.UI.PaletteOrDefault(), logger)
	r := render.New(render.Theme{Background: cfg.UI.Background, TintAlpha: cfg.UI.TintAlpha})
	return section.New(entries, l, r, mount, logger)
}
