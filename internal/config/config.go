// Package config loads the viewer configuration from YAML and environment.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"vocab-viewer/internal/vocab"
)

// Config is the root application configuration.
type Config struct {
	Sections SectionsConfig `yaml:"sections"`
	Speech   SpeechConfig   `yaml:"speech"`
	UI       UIConfig       `yaml:"ui"`
	Log      LogConfig      `yaml:"log"`
}

// SectionsConfig says where section CSVs come from. When List is empty the
// directory is scanned for *.csv files and watched for new ones unless
// NoWatch is set.
type SectionsConfig struct {
	Dir     string          `yaml:"dir"      env:"VOCAB_SECTIONS_DIR"      env-default:"."`
	NoWatch bool            `yaml:"no_watch" env:"VOCAB_SECTIONS_NO_WATCH"`
	List    []SectionConfig `yaml:"list"`
}

// SectionConfig is one explicitly configured navigation entry. Path is
// relative to Dir or an http(s) URL.
type SectionConfig struct {
	Title string `yaml:"title"`
	Path  string `yaml:"path"`
}

// SpeechConfig configures the pronunciation command.
type SpeechConfig struct {
	Lang    string   `yaml:"lang"    env:"VOCAB_SPEECH_LANG"    env-default:"fr-FR"`
	Command string   `yaml:"command" env:"VOCAB_SPEECH_COMMAND" env-default:"espeak-ng"`
	Args    []string `yaml:"args"    env:"VOCAB_SPEECH_ARGS"    env-default:"-v,{lang},{text}"`
}

// UIConfig configures colors and timings of the viewer.
type UIConfig struct {
	Palette       []string      `yaml:"palette"        env:"VOCAB_UI_PALETTE"        env-default:"#AAB8AB,#97A5C0,#8D8FA4,#BFB3B3,#D3BBB7"`
	PronouncedFor time.Duration `yaml:"pronounced_for" env:"VOCAB_UI_PRONOUNCED_FOR" env-default:"700ms"`
	Background    string        `yaml:"background"     env:"VOCAB_UI_BACKGROUND"     env-default:"#1E1E1E"`
	TintAlpha     float64       `yaml:"tint_alpha"     env:"VOCAB_UI_TINT_ALPHA"     env-default:"0.2"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"VOCAB_LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"VOCAB_LOG_FORMAT" env-default:"text"`
	File   string `yaml:"file"   env:"VOCAB_LOG_FILE"   env-default:"debug.log"`
}

// PaletteOrDefault returns the configured fallback palette.
func (c UIConfig) PaletteOrDefault() vocab.Palette {
	if len(c.Palette) == 0 {
		return vocab.DefaultPalette
	}
	return vocab.Palette(c.Palette)
}

// Validate fills soft defaults and rejects values the viewer cannot use.
func (c *Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.Sections.Dir) == "" {
		c.Sections.Dir = "."
	}
	for i, s := range c.Sections.List {
		if strings.TrimSpace(s.Path) == "" {
			errs = append(errs, fmt.Errorf("sections.list[%d]: path is required", i))
		}
	}

	if strings.TrimSpace(c.Speech.Lang) == "" {
		c.Speech.Lang = "fr-FR"
	}

	var palette []string
	for _, p := range c.UI.Palette {
		if p = strings.TrimSpace(p); p != "" {
			palette = append(palette, p)
		}
	}
	if len(palette) == 0 {
		palette = append(palette, vocab.DefaultPalette...)
	}
	c.UI.Palette = palette

	if c.UI.PronouncedFor <= 0 {
		errs = append(errs, fmt.Errorf("ui.pronounced_for must be positive, got %s", c.UI.PronouncedFor))
	}
	if c.UI.TintAlpha < 0 || c.UI.TintAlpha > 1 {
		errs = append(errs, fmt.Errorf("ui.tint_alpha must be within [0,1], got %g", c.UI.TintAlpha))
	}

	return errors.Join(errs...)
}
