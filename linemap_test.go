package sassas

import "testing"

func wantPosition(t *testing.T, m *LineMap, offset, wantLine, wantCol int) {
	t.Helper()
	line, col := m.Position(offset)
	if line != wantLine || col != wantCol {
		t.Fatalf("Position(%d) = (%d, %d), want (%d, %d)", offset, line, col, wantLine, wantCol)
	}
}

func Test_LineMap_Position(t *testing.T) {
	m := NewLineMap("ab\ncd\n\nef")

	wantPosition(t, m, 0, 0, 0)
	wantPosition(t, m, 1, 0, 1)
	wantPosition(t, m, 2, 0, 2) // the newline itself
	wantPosition(t, m, 3, 1, 0)
	wantPosition(t, m, 6, 2, 0) // empty line
	wantPosition(t, m, 7, 3, 0)
	wantPosition(t, m, 8, 3, 1)
}

func Test_LineMap_Position_Clamped(t *testing.T) {
	m := NewLineMap("ab\ncd")

	wantPosition(t, m, 100, 1, 2)
	wantPosition(t, m, -1, 0, 0)
}

func Test_LineMap_EmptySource(t *testing.T) {
	m := NewLineMap("")
	wantPosition(t, m, 0, 0, 0)
}

func Test_LineMap_TrailingNewline(t *testing.T) {
	m := NewLineMap("a\n")
	wantPosition(t, m, 2, 1, 0)
}
