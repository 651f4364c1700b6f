package loader

import (
	"bytes"
	"encoding/csv"
	"errors"
	"io"
	"log/slog"
	"strings"

	"vocab-viewer/internal/vocab"
)

// Column names recognized in the header row.
const (
	ColumnCategory = "category"
	ColumnColor    = "color"
	ColumnWord     = "word"
	ColumnMeaning  = "meaning"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ParseRows reads header-aware CSV text into rows. Header names are matched
// case-insensitively in any order; unknown columns are ignored and missing
// ones read as "". Blank lines and all-blank records are skipped, and
// malformed records are dropped rather than failing the parse.
func ParseRows(data []byte, logger *slog.Logger) []vocab.Row {
	if logger == nil {
		logger = slog.Default()
	}

	r := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, utf8BOM)))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	rows := make([]vocab.Row, 0)
	var columns map[string]int

	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				logger.Debug("skipping malformed record", "line", parseErr.Line, "err", parseErr.Err)
				continue
			}
			logger.Debug("stopping csv parse", "err", err)
			break
		}

		if columns == nil {
			columns = headerIndex(record)
			continue
		}
		if isBlank(record) {
			continue
		}

		rows = append(rows, vocab.Row{
			Category: field(record, columns, ColumnCategory),
			Color:    strings.TrimSpace(field(record, columns, ColumnColor)),
			Word:     field(record, columns, ColumnWord),
			Meaning:  field(record, columns, ColumnMeaning),
		})
	}

	return rows
}

func headerIndex(header []string) map[string]int {
	columns := make(map[string]int, len(header))
	for i, name := range header {
		key := strings.ToLower(strings.TrimSpace(name))
		if _, dup := columns[key]; !dup {
			columns[key] = i
		}
	}
	return columns
}

func field(record []string, columns map[string]int, name string) string {
	i, ok := columns[name]
	if !ok || i >= len(record) {
		return ""
	}
	return record[i]
}

func isBlank(record []string) bool {
	for _, f := range record {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
