// Package vocab holds the vocabulary data model and the category grouping
// that turns flat CSV rows into colored blocks.
package vocab

// Row is one parsed CSV record. Absent fields are empty strings.
type Row struct {
	Category string
	Color    string
	Word     string
	Meaning  string
}

// WordEntry is a single word/meaning pair inside a Block.
type WordEntry struct {
	Word    string
	Meaning string
}

// Block groups the entries of one category under a resolved accent color.
type Block struct {
	Category string
	Color    string
	Words    []WordEntry
}

// Palette is the fixed list of fallback accent colors, used cyclically.
type Palette []string

// DefaultPalette is a soft, muted set of accents.
var DefaultPalette = Palette{"#AAB8AB", "#97A5C0", "#8D8FA4", "#BFB3B3", "#D3BBB7"}

// Color returns the palette entry for the i-th block, wrapping around.
// An empty palette yields "".
func (p Palette) Color(i int) string {
	if len(p) == 0 {
		return ""
	}
	return p[i%len(p)]
}

// Group folds rows into blocks keyed by category. Blocks keep the order in
// which their category first appears and entries keep source order. A block
// uses the color of the row that created it, or the next palette color when
// that row has none.
func Group(rows []Row, palette Palette) []Block {
	blocks := make([]Block, 0)
	index := make(map[string]int)

	for _, row := range rows {
		i, ok := index[row.Category]
		if !ok {
			color := row.Color
			if color == "" {
				color = palette.Color(len(blocks))
			}
			blocks = append(blocks, Block{Category: row.Category, Color: color})
			i = len(blocks) - 1
			index[row.Category] = i
		}
		blocks[i].Words = append(blocks[i].Words, WordEntry{Word: row.Word, Meaning: row.Meaning})
	}

	return blocks
}

// WordCount returns the total number of entries across blocks.
func WordCount(blocks []Block) int {
	n := 0
	for _, b := range blocks {
		n += len(b.Words)
	}
	return n
}
