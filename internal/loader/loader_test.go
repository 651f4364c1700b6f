package loader

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vocab-viewer/internal/vocab"
)

const scenarioCSV = "category,color,word,meaning\nGreetings,,bonjour,hello\nGreetings,,merci,thanks\nFarewell,#123456,au revoir,goodbye"

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestParseRows_Positional(t *testing.T) {
	rows := ParseRows([]byte(scenarioCSV), quietLogger())
	require.Len(t, rows, 3)
	assert.Equal(t, vocab.Row{Category: "Greetings", Word: "bonjour", Meaning: "hello"}, rows[0])
	assert.Equal(t, vocab.Row{Category: "Farewell", Color: "#123456", Word: "au revoir", Meaning: "goodbye"}, rows[2])
}

func TestParseRows_HeaderAnyOrder(t *testing.T) {
	data := "\xEF\xBB\xBFWord, Meaning ,CATEGORY,extra\nchat,cat,Animals,x\n"
	rows := ParseRows([]byte(data), quietLogger())
	require.Len(t, rows, 1)
	assert.Equal(t, vocab.Row{Category: "Animals", Word: "chat", Meaning: "cat"}, rows[0])
}

func TestParseRows_MissingTrailingFields(t *testing.T) {
	data := "category,color,word,meaning\nFood,,pain\nFood\n"
	rows := ParseRows([]byte(data), quietLogger())
	require.Len(t, rows, 2)
	assert.Equal(t, vocab.Row{Category: "Food", Word: "pain"}, rows[0])
	assert.Equal(t, vocab.Row{Category: "Food"}, rows[1])
}

func TestParseRows_SkipsEmptyLines(t *testing.T) {
	data := "category,color,word,meaning\n\nFood,,pain,bread\n\n,,,\n  \nFood,,eau,water\n"
	rows := ParseRows([]byte(data), quietLogger())
	require.Len(t, rows, 2)
	assert.Equal(t, "pain", rows[0].Word)
	assert.Equal(t, "eau", rows[1].Word)
}

func TestParseRows_HeaderOnlyAndEmpty(t *testing.T) {
	assert.Empty(t, ParseRows([]byte("category,color,word,meaning\n"), quietLogger()))
	assert.Empty(t, ParseRows(nil, quietLogger()))
}

func TestParseRows_QuotedFields(t *testing.T) {
	data := "category,color,word,meaning\nPhrases,,\"s'il vous plaît\",\"please, kindly\"\n"
	rows := ParseRows([]byte(data), quietLogger())
	require.Len(t, rows, 1)
	assert.Equal(t, "s'il vous plaît", rows[0].Word)
	assert.Equal(t, "please, kindly", rows[0].Meaning)
}

func TestCSVLoader_Load(t *testing.T) {
	fsys := fstest.MapFS{
		"unit1.csv": {Data: []byte(scenarioCSV)},
	}
	l := NewCSVLoader(FSFetcher{FS: fsys}, vocab.DefaultPalette, quietLogger())

	blocks, err := l.Load(context.Background(), "unit1.csv")
	require.NoError(t, err)
	require.Len(t, blocks, 2)
	assert.Equal(t, "Greetings", blocks[0].Category)
	assert.Equal(t, vocab.DefaultPalette[0], blocks[0].Color)
	assert.Equal(t, "#123456", blocks[1].Color)
}

func TestCSVLoader_DotSlashPath(t *testing.T) {
	fsys := fstest.MapFS{"unit1.csv": {Data: []byte(scenarioCSV)}}
	l := NewCSVLoader(FSFetcher{FS: fsys}, nil, quietLogger())

	blocks, err := l.Load(context.Background(), "./unit1.csv")
	require.NoError(t, err)
	assert.Len(t, blocks, 2)
}

func TestCSVLoader_MissingFile(t *testing.T) {
	l := NewCSVLoader(FSFetcher{FS: fstest.MapFS{}}, nil, quietLogger())

	_, err := l.Load(context.Background(), "nope.csv")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrResourceUnavailable)
}

func TestHTTPFetcher(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/unit.csv":
			_, _ = io.WriteString(w, scenarioCSV)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	f := HTTPFetcher{Client: srv.Client()}

	data, err := f.Fetch(context.Background(), srv.URL+"/unit.csv")
	require.NoError(t, err)
	assert.Equal(t, scenarioCSV, string(data))

	_, err = f.Fetch(context.Background(), srv.URL+"/missing.csv")
	assert.ErrorIs(t, err, ErrResourceUnavailable)
}

func TestRouter(t *testing.T) {
	local := &recordingFetcher{}
	remote := &recordingFetcher{}
	r := Router{Local: local, Remote: remote}

	_, _ = r.Fetch(context.Background(), "units/a.csv")
	_, _ = r.Fetch(context.Background(), "https://example.com/b.csv")
	_, _ = r.Fetch(context.Background(), "http://example.com/c.csv")

	assert.Equal(t, []string{"units/a.csv"}, local.paths)
	assert.Equal(t, []string{"https://example.com/b.csv", "http://example.com/c.csv"}, remote.paths)

	_, err := Router{Local: local}.Fetch(context.Background(), "https://example.com/d.csv")
	assert.ErrorIs(t, err, ErrResourceUnavailable)
}

type recordingFetcher struct {
	paths []string
}

func (f *recordingFetcher) Fetch(_ context.Context, path string) ([]byte, error) {
	f.paths = append(f.paths, path)
	return nil, nil
}
