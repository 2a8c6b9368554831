package sassas

import "sort"

// LineMap converts byte offsets in a source buffer into 0-based line and
// column coordinates. Diagnostics carry only byte ranges; renderers and
// protocol front ends build a LineMap once per source to translate them.
type LineMap struct {
	// lineStarts[i] is the byte offset of the first character of line i.
	lineStarts []int
	size       int
}

func NewLineMap(source string) *LineMap {
	starts := []int{0}
	for i := 0; i < len(source); i++ {
		if source[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &LineMap{lineStarts: starts, size: len(source)}
}

// Position returns the 0-based line and column of the given byte offset.
// Offsets beyond the end of the source are clamped to the last position.
func (m *LineMap) Position(offset int) (line, col int) {
	if offset > m.size {
		offset = m.size
	}
	if offset < 0 {
		offset = 0
	}
	line = sort.Search(len(m.lineStarts), func(i int) bool {
		return m.lineStarts[i] > offset
	}) - 1
	return line, offset - m.lineStarts[line]
}
