package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"vocab-viewer/internal/config"
	"vocab-viewer/internal/render"
	"vocab-viewer/internal/section"
	"vocab-viewer/internal/speech"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	configPath  = flag.String("config", "", "path to config file (default $VOCAB_CONFIG or ./vocab.yaml)")
	printPath   = flag.String("print", "", "print one section as plain text and exit")
	versionFlag = flag.Bool("version", false, "print version and exit")
)

func main() {
	flag.Parse()

	if *versionFlag {
		fmt.Println(version)
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if *printPath != "" {
		if err := printSection(cfg, *printPath, os.Stdout, os.Stderr); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to print section: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// The terminal belongs to the UI, so logs go to a file.
	f, err := tea.LogToFile(cfg.Log.File, "")
	if err != nil {
		fmt.Println("could not create log file:", err)
		os.Exit(1)
	}
	defer f.Close()
	logger := newLogger(cfg.Log, f)

	entries, err := resolveEntries(cfg.Sections)
	if err != nil {
		logger.Warn("section discovery failed", "dir", cfg.Sections.Dir, "err", err)
	}
	logger.Info("starting", "version", version, "sections", len(entries))

	var events <-chan section.Entry
	if len(cfg.Sections.List) == 0 && !cfg.Sections.NoWatch {
		w, err := section.Watch(cfg.Sections.Dir, logger)
		if err != nil {
			logger.Warn("sections watcher unavailable", "dir", cfg.Sections.Dir, "err", err)
		} else {
			defer w.Close()
			events = w.Events()
		}
	}

	pane := newTablePane()
	ctrl := newController(cfg, entries, pane, logger)
	m := initialModel(ctrl, pane, options{
		speaker:       speech.NewCommandSpeaker(cfg.Speech.Command, cfg.Speech.Args, logger),
		lang:          cfg.Speech.Lang,
		pronouncedFor: cfg.UI.PronouncedFor,
		events:        events,
		logger:        logger,
	})

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Alas, there's been an error: %v", err)
		os.Exit(1)
	}
}

// printSection renders one section to out without starting the UI.
func printSection(cfg *config.Config, path string, out, logOut io.Writer) error {
	logger := newLogger(cfg.Log, logOut)
	ctrl := newController(cfg, nil, &render.TextMount{W: out}, logger)
	return ctrl.ShowSection(context.Background(), path)
}
