package sassas

import (
	"fmt"
	"io"
	"strconv"
)

// MatchAny is the wildcard key value produced by the `-` table element. A
// table key holding MatchAny matches any query value.
const MatchAny = ^uint32(0)

// Table is one table from the TABLES section: a mapping from a fixed-length
// key sequence to a single value, all unsigned integers.
//
// Rows are stored flattened in a single slice, keySize keys followed by the
// row's value, so the table
//
//	1 0 0 -> 0
//	2 2 0 -> 5
//
// is stored as {1, 0, 0, 0, 2, 2, 0, 5} with keySize 3. Lookup scans rows
// top to bottom and returns the value of the first row whose every key
// equals the query key or is MatchAny.
type Table struct {
	content []uint32
	keySize int
}

func NewTable(keySize int) *Table {
	return &Table{keySize: keySize}
}

func (t *Table) SetKeySize(keySize int) {
	t.keySize = keySize
}

func (t *Table) KeySize() int {
	return t.keySize
}

// RowCount returns the number of rows appended so far.
func (t *Table) RowCount() int {
	if t.keySize+1 == 0 {
		return 0
	}
	return len(t.content) / (t.keySize + 1)
}

// AppendRow adds a row to the end of the table. The caller must pass exactly
// keySize keys; a mismatch is a programming error.
func (t *Table) AppendRow(keys []uint32, value uint32) {
	if len(keys) != t.keySize {
		panic("Table.AppendRow: key size mismatch")
	}
	t.content = append(t.content, keys...)
	t.content = append(t.content, value)
}

// Lookup returns the value of the first row matching the query keys.
func (t *Table) Lookup(keys []uint32) (uint32, bool) {
	if len(keys) != t.keySize {
		panic("Table.Lookup: key size mismatch")
	}

	stride := t.keySize + 1
	for row := 0; row < len(t.content); row += stride {
		match := true
		for i, key := range keys {
			if stored := t.content[row+i]; stored != key && stored != MatchAny {
				match = false
				break
			}
		}
		if match {
			return t.content[row+t.keySize], true
		}
	}

	return 0, false
}

// Dump writes the table rows to w with right-aligned columns. Wildcard keys
// print as "Any".
func (t *Table) Dump(w io.Writer, indent int) {
	cells := make([]string, len(t.content))
	for i, value := range t.content {
		if value == MatchAny {
			cells[i] = "Any"
		} else {
			cells[i] = strconv.FormatUint(uint64(value), 10)
		}
	}

	stride := t.keySize + 1
	widths := make([]int, stride)
	for i, cell := range cells {
		if n := len(cell); n > widths[i%stride] {
			widths[i%stride] = n
		}
	}

	for row := 0; row < len(cells); row += stride {
		if row != 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "%*s", indent, "")
		for i := 0; i < t.keySize; i++ {
			fmt.Fprintf(w, "%*s", widths[i]+1, cells[row+i])
		}
		fmt.Fprintf(w, " -> %*s", widths[t.keySize], cells[row+t.keySize])
	}
}
