package sassas

import (
	"strings"
	"testing"
)

func Test_Table_Lookup_FirstMatchWins(t *testing.T) {
	table := NewTable(2)
	table.AppendRow([]uint32{1, 0}, 5)
	table.AppendRow([]uint32{2, 2}, 9)

	if value, ok := table.Lookup([]uint32{2, 2}); !ok || value != 9 {
		t.Fatalf("Lookup(2,2) = %d, %v; want 9, true", value, ok)
	}
	if value, ok := table.Lookup([]uint32{1, 0}); !ok || value != 5 {
		t.Fatalf("Lookup(1,0) = %d, %v; want 5, true", value, ok)
	}
	if _, ok := table.Lookup([]uint32{3, 3}); ok {
		t.Fatal("Lookup(3,3) must fail")
	}
}

func Test_Table_Lookup_WildcardRow_ShadowsLaterRows(t *testing.T) {
	table := NewTable(2)
	table.AppendRow([]uint32{MatchAny, MatchAny}, 0)
	table.AppendRow([]uint32{1, 0}, 5)
	table.AppendRow([]uint32{2, 2}, 9)

	for _, keys := range [][]uint32{{2, 2}, {1, 0}, {7, 7}} {
		if value, ok := table.Lookup(keys); !ok || value != 0 {
			t.Fatalf("Lookup(%v) = %d, %v; want 0, true", keys, value, ok)
		}
	}
}

func Test_Table_AppendRow_KeySizeMismatch_Panics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("AppendRow with wrong key count must panic")
		}
	}()

	table := NewTable(2)
	table.AppendRow([]uint32{1}, 0)
}

func Test_Table_Dump_WildcardPrintsAsAny(t *testing.T) {
	table := NewTable(2)
	table.AppendRow([]uint32{1, MatchAny}, 5)
	table.AppendRow([]uint32{12, 3}, 900)

	var b strings.Builder
	table.Dump(&b, 0)
	out := b.String()

	if !strings.Contains(out, "Any") {
		t.Fatalf("dump does not render the wildcard:\n%s", out)
	}
	if !strings.Contains(out, "-> 900") {
		t.Fatalf("dump does not render values:\n%s", out)
	}
	if lines := strings.Split(out, "\n"); len(lines) != 2 {
		t.Fatalf("dump has %d lines, want 2:\n%s", len(lines), out)
	}
}

func Test_Table_RowCount(t *testing.T) {
	table := NewTable(3)
	if table.RowCount() != 0 {
		t.Fatalf("RowCount() = %d, want 0", table.RowCount())
	}
	table.AppendRow([]uint32{1, 2, 3}, 4)
	table.AppendRow([]uint32{5, 6, 7}, 8)
	if table.RowCount() != 2 {
		t.Fatalf("RowCount() = %d, want 2", table.RowCount())
	}
}
