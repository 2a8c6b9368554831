package sassas

import (
	"fmt"
	"io"
	"strings"
)

// Register is a single name/value pair within a register category.
type Register struct {
	Name  string
	Value uint32
}

// RegisterGroup holds all registers of one category, in definition order.
//
// A value may correspond to multiple names and a name may be redefined, so
// lookups must follow a specific search order. That rules out a map; the
// group keeps a slice and searches it backwards so the last definition wins.
type RegisterGroup struct {
	registers []Register
}

// Append adds a register with an explicit value to the end of the group.
func (g *RegisterGroup) Append(name string, value uint32) {
	g.registers = append(g.registers, Register{Name: name, Value: value})
}

// AppendNext adds a register whose value defaults to the previous register's
// value plus one, or 0 when the group is empty.
func (g *RegisterGroup) AppendNext(name string) {
	var value uint32
	if n := len(g.registers); n != 0 {
		value = g.registers[n-1].Value + 1
	}
	g.Append(name, value)
}

// ConcatWith appends a copy of another group's registers to this group.
func (g *RegisterGroup) ConcatWith(other *RegisterGroup) {
	g.registers = append(g.registers, other.registers...)
}

// Len returns the number of registers in the group.
func (g *RegisterGroup) Len() int {
	return len(g.registers)
}

// Front returns the value of the first register in the group. The group must
// not be empty.
func (g *RegisterGroup) Front() uint32 {
	return g.registers[0].Value
}

// Find searches for a register by name from the end of the group, so a later
// redefinition shadows an earlier one.
//
// The comparison is case-insensitive: description files reference register
// names from TABLES with inconsistent case, such as `DC@noDC` against a
// register defined as `nodc`.
func (g *RegisterGroup) Find(name string) (uint32, bool) {
	for i := len(g.registers) - 1; i >= 0; i-- {
		if strings.EqualFold(g.registers[i].Name, name) {
			return g.registers[i].Value, true
		}
	}
	return 0, false
}

// FindValue searches for a register by value from the end of the group and
// returns the name of the first match.
func (g *RegisterGroup) FindValue(value uint32) (string, bool) {
	for i := len(g.registers) - 1; i >= 0; i-- {
		if g.registers[i].Value == value {
			return g.registers[i].Name, true
		}
	}
	return "", false
}

// Dump writes the register names and values to w, five per line, with
// columns padded to the widest entry of each column.
func (g *RegisterGroup) Dump(w io.Writer, indent int) {
	var widths [5]int
	for i, reg := range g.registers {
		if n := len(reg.Name); n > widths[i%5] {
			widths[i%5] = n
		}
	}

	for i, reg := range g.registers {
		if i%5 == 0 {
			if i != 0 {
				fmt.Fprintln(w)
			}
			fmt.Fprintf(w, "%*s", indent, "")
		}
		fmt.Fprintf(w, "%-*s %-5s ", widths[i%5], reg.Name, fmt.Sprintf("(%d)", reg.Value))
	}
}

// RegisterTable maps register category names to their groups. It represents
// the whole REGISTERS section.
type RegisterTable map[string]*RegisterGroup

// Find returns the group for a category name.
func (t RegisterTable) Find(name string) (*RegisterGroup, bool) {
	group, ok := t[name]
	return group, ok
}
