package sassas

import (
	"fmt"
	"io"
	"sort"
	"strings"
)

// ISA gathers everything parsed from an instruction description file. It is
// produced by ISAParser.
type ISA struct {
	// Architecture holds the key-value items of the ARCHITECTURE section.
	Architecture Architecture
	// ConditionTypes lists the CONDITION TYPES items in source order.
	ConditionTypes []ConditionType
	// Parameters and Constants map names to signed 32-bit values, from the
	// PARAMETERS and CONSTANTS sections.
	Parameters map[string]int32
	Constants  map[string]int32
	// StringMap maps names to names, from the STRING_MAP section.
	StringMap map[string]string
	// Registers maps register category names to their groups, from the
	// REGISTERS section.
	Registers RegisterTable
	// Tables maps table names to key-to-value tables, from the TABLES
	// section.
	Tables map[string]*Table
	// OperationProperties and OperationPredicates are the identifier lists
	// of the OPERATION PROPERTIES and OPERATION PREDICATES sections.
	OperationProperties []string
	OperationPredicates []string
	// FunctionalUnit holds the FUNIT section.
	FunctionalUnit FunctionalUnit
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func dumpTitle(w io.Writer, title string) {
	fmt.Fprintf(w, "%s\n%s\n", title, strings.Repeat("=", len(title)))
}

func dumpStringList(w io.Writer, title string, list []string) {
	fmt.Fprintf(w, "%s\n%s", title, strings.Repeat("=", len(title)))

	// Print 5 items per line, padding each column to its widest entry.
	var widths [5]int
	for i, item := range list {
		if n := len(item); n > widths[i%5] {
			widths[i%5] = n
		}
	}

	for i, item := range list {
		if i%5 == 0 {
			fmt.Fprint(w, "\n    ")
		}
		fmt.Fprintf(w, "%-*s ", widths[i%5], item)
	}

	fmt.Fprint(w, "\n\n")
}

// Dump writes a human-readable rendering of the whole model to w. Map-backed
// sections are printed in sorted key order so the output is stable.
func (isa *ISA) Dump(w io.Writer) {
	fmt.Fprintln(w, "ISA dump:")

	dumpTitle(w, fmt.Sprintf("Architecture (%s)", isa.Architecture.Name))
	for _, detail := range isa.Architecture.Details {
		value := detail.Value
		if len(value) > 65 {
			value = fmt.Sprintf("%s... (%d more characters)", value[:65], len(value)-65)
		}
		fmt.Fprintf(w, "    %s: %s\n", detail.Name, value)
	}
	fmt.Fprintln(w)

	dumpTitle(w, "Condition Types")
	for _, ct := range isa.ConditionTypes {
		fmt.Fprintf(w, "    %s: %d\n", ct.Name, ct.Kind)
	}
	fmt.Fprintln(w)

	dumpTitle(w, "Parameters")
	for _, name := range sortedKeys(isa.Parameters) {
		fmt.Fprintf(w, "    %s = %d\n", name, isa.Parameters[name])
	}
	fmt.Fprintln(w)

	dumpTitle(w, "Constants")
	for _, name := range sortedKeys(isa.Constants) {
		fmt.Fprintf(w, "    %s = %d\n", name, isa.Constants[name])
	}
	fmt.Fprintln(w)

	dumpTitle(w, "String Map")
	for _, name := range sortedKeys(isa.StringMap) {
		fmt.Fprintf(w, "    %s: %s\n", name, isa.StringMap[name])
	}
	fmt.Fprintln(w)

	dumpTitle(w, "Registers")
	for _, category := range sortedKeys(isa.Registers) {
		fmt.Fprintf(w, "    %s\n", category)
		isa.Registers[category].Dump(w, 8)
		fmt.Fprintln(w)
	}
	fmt.Fprintln(w)

	dumpTitle(w, "Tables")
	for _, name := range sortedKeys(isa.Tables) {
		fmt.Fprintf(w, "    %s\n", name)
		isa.Tables[name].Dump(w, 8)
		fmt.Fprintln(w)
	}
	fmt.Fprintln(w)

	dumpStringList(w, "Operation Properties", isa.OperationProperties)
	dumpStringList(w, "Operation Predicates", isa.OperationPredicates)

	dumpTitle(w, "Functional Unit")
	isa.FunctionalUnit.Dump(w, 4)
	fmt.Fprintln(w)
}
