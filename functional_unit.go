package sassas

import (
	"fmt"
	"io"
	"strings"
)

// BitRange is a contiguous run of set bits in a bitmask. Start counts from
// the least significant bit of the encoding.
type BitRange struct {
	Start uint32
	Size  uint32
}

// BitMask names the bits of an instruction encoding that belong to one part
// of the instruction, as a list of bit ranges ordered from the most
// significant run to the least.
type BitMask []BitRange

// NewBitMask builds a BitMask from a string description written most
// significant bit first, where '.' marks a clear bit and 'X' a set bit. The
// description must contain only those two characters.
func NewBitMask(description string) BitMask {
	var mask BitMask
	for i := 0; i < len(description); {
		runBegin := strings.IndexByte(description[i:], 'X')
		if runBegin < 0 {
			break
		}
		runBegin += i

		runEnd := strings.IndexByte(description[runBegin:], '.')
		if runEnd < 0 {
			runEnd = len(description)
		} else {
			runEnd += runBegin
		}

		// The string is written MSB first, so the bit position of a run is
		// its distance from the end of the string.
		start := uint32(len(description) - runEnd)
		mask = append(mask, BitRange{Start: start, Size: uint32(runEnd - runBegin)})
		i = runEnd
	}
	return mask
}

// Dump writes the bit ranges to w, least significant range first, as
// "[a-b, c, ...]". A single-bit range prints as its position alone.
func (m BitMask) Dump(w io.Writer) {
	if len(m) == 0 {
		fmt.Fprint(w, "[Empty]")
		return
	}

	printRange := func(r BitRange) {
		if r.Size == 1 {
			fmt.Fprintf(w, "%d", r.Start)
		} else {
			fmt.Fprintf(w, "%d-%d", r.Start, r.Start+r.Size-1)
		}
	}

	fmt.Fprint(w, "[")
	printRange(m[len(m)-1])
	for i := len(m) - 2; i >= 0; i-- {
		fmt.Fprint(w, ", ")
		printRange(m[i])
	}
	fmt.Fprint(w, "]")
}

// FunctionalUnit holds the contents of the FUNIT section: the unit name, the
// instruction encoding width in bits, and the named bitmasks carving up that
// encoding.
type FunctionalUnit struct {
	name          string
	encodingWidth uint32
	bitmasks      map[string]BitMask
}

func (u *FunctionalUnit) SetName(name string) {
	u.name = name
}

func (u *FunctionalUnit) Name() string {
	return u.name
}

func (u *FunctionalUnit) SetEncodingWidth(width uint32) {
	u.encodingWidth = width
}

func (u *FunctionalUnit) EncodingWidth() uint32 {
	return u.encodingWidth
}

// AddBitmask records a named bitmask. It reports false if the name is
// already taken, leaving the existing mask in place.
func (u *FunctionalUnit) AddBitmask(name string, mask BitMask) bool {
	if u.bitmasks == nil {
		u.bitmasks = make(map[string]BitMask)
	}
	if _, exists := u.bitmasks[name]; exists {
		return false
	}
	u.bitmasks[name] = mask
	return true
}

// FindBitmask returns the bitmask registered under name.
func (u *FunctionalUnit) FindBitmask(name string) (BitMask, bool) {
	mask, ok := u.bitmasks[name]
	return mask, ok
}

// BitmaskNames returns the registered bitmask names in sorted order.
func (u *FunctionalUnit) BitmaskNames() []string {
	return sortedKeys(u.bitmasks)
}

// Dump writes the unit name, encoding width and bitmasks to w.
func (u *FunctionalUnit) Dump(w io.Writer, indent int) {
	fmt.Fprintf(w, "%*sname: %s\n", indent, "", u.name)
	fmt.Fprintf(w, "%*sencoding width: %d\n", indent, "", u.encodingWidth)

	fmt.Fprintf(w, "%*sBitmasks\n", indent, "")
	for _, name := range u.BitmaskNames() {
		fmt.Fprintf(w, "%*s%s    ", indent+4, "", name)
		u.bitmasks[name].Dump(w)
		fmt.Fprintln(w)
	}
}
