// Package speech starts text-to-speech playback for a word.
package speech

import (
	"context"
	"errors"
	"log/slog"
	"os/exec"
	"strings"
	"sync"
)

// Speaker starts pronouncing text in the given language. Implementations
// return once playback has been started, not when it finishes.
type Speaker interface {
	Speak(ctx context.Context, text, lang string) error
}

// Placeholders substituted in CommandSpeaker arguments.
const (
	PlaceholderText = "{text}"
	PlaceholderLang = "{lang}"
)

// CommandSpeaker runs an external TTS program such as espeak-ng or say.
type CommandSpeaker struct {
	Command string
	Args    []string
	Logger  *slog.Logger
}

// NewCommandSpeaker creates a speaker for command with templated args.
func NewCommandSpeaker(command string, args []string, logger *slog.Logger) *CommandSpeaker {
	if logger == nil {
		logger = slog.Default()
	}
	return &CommandSpeaker{Command: command, Args: args, Logger: logger}
}

// Speak starts the command and reaps it in the background.
func (s *CommandSpeaker) Speak(_ context.Context, text, lang string) error {
	if s.Command == "" {
		return errors.New("speech: no command configured")
	}

	// Playback outlives the request that triggered it.
	cmd := exec.Command(s.Command, ExpandArgs(s.Args, text, lang)...)
	if err := cmd.Start(); err != nil {
		return err
	}

	go func() {
		if err := cmd.Wait(); err != nil {
			s.Logger.Warn("speech command failed", "command", s.Command, "err", err)
		}
	}()
	return nil
}

// ExpandArgs replaces {text} and {lang} in each argument. When no argument
// mentions {text}, the text is appended as the last argument.
func ExpandArgs(args []string, text, lang string) []string {
	out := make([]string, 0, len(args)+1)
	hasText := false
	for _, a := range args {
		if strings.Contains(a, PlaceholderText) {
			hasText = true
		}
		a = strings.ReplaceAll(a, PlaceholderLang, lang)
		a = strings.ReplaceAll(a, PlaceholderText, text)
		out = append(out, a)
	}
	if !hasText {
		out = append(out, text)
	}
	return out
}

// Utterance is one recorded Speak call.
type Utterance struct {
	Text string
	Lang string
}

// Recorder is a Speaker that only records what it was asked to say.
type Recorder struct {
	mu    sync.Mutex
	calls []Utterance
	Err   error
}

func (r *Recorder) Speak(_ context.Context, text, lang string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, Utterance{Text: text, Lang: lang})
	return r.Err
}

// Calls returns the recorded utterances in order.
func (r *Recorder) Calls() []Utterance {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Utterance(nil), r.calls...)
}
