package speech

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandArgs(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []string
	}{
		{"espeak", []string{"-v", "{lang}", "{text}"}, []string{"-v", "fr-fr", "au revoir"}},
		{"appended", []string{"-v", "Amelie"}, []string{"-v", "Amelie", "au revoir"}},
		{"embedded", []string{"--say={text}"}, []string{"--say=au revoir"}},
		{"empty", nil, []string{"au revoir"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandArgs(tt.args, "au revoir", "fr-fr"))
		})
	}
}

func TestCommandSpeaker_NoCommand(t *testing.T) {
	s := NewCommandSpeaker("", nil, nil)
	assert.Error(t, s.Speak(context.Background(), "bonjour", "fr-FR"))
}

func TestCommandSpeaker_MissingBinary(t *testing.T) {
	s := NewCommandSpeaker("vocab-viewer-no-such-tts", nil, slog.New(slog.NewTextHandler(io.Discard, nil)))
	assert.Error(t, s.Speak(context.Background(), "bonjour", "fr-FR"))
}

func TestCommandSpeaker_StartsCommand(t *testing.T) {
	bin, err := exec.LookPath("true")
	if err != nil {
		t.Skip("true not available")
	}
	s := NewCommandSpeaker(bin, []string{"{lang}", "{text}"}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, s.Speak(context.Background(), "bonjour", "fr-FR"))
}

func TestRecorder(t *testing.T) {
	r := &Recorder{}
	require.NoError(t, r.Speak(context.Background(), "merci", "fr-FR"))
	require.NoError(t, r.Speak(context.Background(), "chat", "fr-FR"))

	assert.Equal(t, []Utterance{{"merci", "fr-FR"}, {"chat", "fr-FR"}}, r.Calls())

	r.Err = errors.New("boom")
	assert.Error(t, r.Speak(context.Background(), "x", "fr-FR"))
}
