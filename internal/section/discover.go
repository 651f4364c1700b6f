package section

import (
	"io/fs"
	"path"
	"sort"
	"strings"
	"unicode"
)

// Discover lists the *.csv files at the root of fsys as entries, sorted by
// file name.
func Discover(fsys fs.FS) ([]Entry, error) {
	names, err := fs.Glob(fsys, "*.csv")
	if err != nil {
		return nil, err
	}
	sort.Strings(names)

	entries := make([]Entry, 0, len(names))
	for _, name := range names {
		entries = append(entries, Entry{Title: TitleFromPath(name), Path: name})
	}
	return entries, nil
}

// TitleFromPath derives a display title from a file name:
// "unit_01-greetings.csv" becomes "Unit 01 greetings".
func TitleFromPath(p string) string {
	base := path.Base(p)
	base = strings.TrimSuffix(base, path.Ext(base))
	base = strings.NewReplacer("_", " ", "-", " ").Replace(base)
	base = strings.Join(strings.Fields(base), " ")
	if base == "" {
		return p
	}

	r := []rune(base)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
