package sassas

import (
	"strings"
	"testing"
)

// evalInt runs the integer evaluator over content as a single token.
func evalInt(content string, bits uint, signed bool) (uint64, bool, []Diag) {
	core := newParserCore("test", content)
	value, ok := core.getIntegerConstant(Token{Kind: Integer, Content: content}, bits, signed)
	return value, ok, core.TakeDiagnostics()
}

func wantInt(t *testing.T, content string, bits uint, signed bool, want uint64) {
	t.Helper()
	got, ok, diags := evalInt(content, bits, signed)
	if !ok {
		t.Fatalf("%q (w%d, signed=%v) failed: %v", content, bits, signed, diags)
	}
	if got != want {
		t.Fatalf("%q (w%d, signed=%v) = %#x, want %#x", content, bits, signed, got, want)
	}
}

func wantIntError(t *testing.T, content string, bits uint, signed bool, messagePart string) {
	t.Helper()
	_, ok, diags := evalInt(content, bits, signed)
	if ok {
		t.Fatalf("%q (w%d, signed=%v) unexpectedly succeeded", content, bits, signed)
	}
	if len(diags) != 1 {
		t.Fatalf("%q produced %d diagnostics, want 1: %v", content, len(diags), diags)
	}
	combined := diags[0].Message
	for _, ann := range diags[0].Annotations {
		combined += " " + ann.Label
	}
	if !strings.Contains(combined, messagePart) {
		t.Fatalf("%q diagnostic %q does not mention %q", content, combined, messagePart)
	}
}

func Test_Integer_Bases(t *testing.T) {
	wantInt(t, "0x1F", 8, false, 31)
	wantInt(t, "0b1010", 8, false, 10)
	wantInt(t, "0B11", 8, false, 3)
	wantInt(t, "017", 8, false, 15)
	wantInt(t, "42", 8, false, 42)
	wantInt(t, "0", 8, false, 0)
	wantInt(t, "0XfF", 8, false, 255)
}

func Test_Integer_Separators(t *testing.T) {
	wantInt(t, "1_000", 32, false, 1000)
	wantInt(t, "0b1010_1010", 32, false, 0xAA)
}

func Test_Integer_Separator_Placement(t *testing.T) {
	wantIntError(t, "1__0", 32, false, "separator")
	wantIntError(t, "_1", 32, false, "separator")
	wantIntError(t, "10_", 32, false, "separator")
}

func Test_Integer_Signed_TwosComplement(t *testing.T) {
	wantInt(t, "-1", 8, true, 0xFF)
	wantInt(t, "-128", 8, true, 0x80)
	wantInt(t, "127", 8, true, 127)
	wantInt(t, "+5", 8, true, 5)
	wantInt(t, "-1", 32, true, 0xFFFFFFFF)
}

func Test_Integer_Signed_MergedTokenWhitespace(t *testing.T) {
	// Token merging can leave whitespace between the sign and the digits.
	wantInt(t, "- 2", 8, true, 0xFE)
}

func Test_Integer_Range_Checks(t *testing.T) {
	wantInt(t, "255", 8, false, 255)
	wantIntError(t, "256", 8, false, "range")
	wantIntError(t, "128", 8, true, "range")
	wantIntError(t, "-129", 8, true, "range")
	wantInt(t, "1", 1, false, 1)
	wantIntError(t, "2", 1, false, "range")
}

func Test_Integer_Width64(t *testing.T) {
	wantInt(t, "0xFFFFFFFFFFFFFFFF", 64, false, ^uint64(0))
	wantIntError(t, "0x10000000000000000", 64, false, "")
}

func Test_Integer_InvalidDigits(t *testing.T) {
	wantIntError(t, "0b12", 32, false, "binary")
	wantIntError(t, "0x1G", 32, false, "hexadecimal")
	wantIntError(t, "08", 32, false, "octal")
	wantIntError(t, "12a", 32, false, "decimal")
}

func Test_Integer_Sign_RequiresSignedness(t *testing.T) {
	wantIntError(t, "-1", 8, false, "sign")
	wantIntError(t, "+1", 8, false, "sign")
}

func Test_Integer_Diagnostic_PointsAtOffendingChar(t *testing.T) {
	core := newParserCore("test", "xx 1__0")
	// Token offsets are absolute, so the diagnostic range must be too.
	_, ok := core.getIntegerConstant(Token{Kind: Integer, Content: "1__0", Offset: 3}, 32, false)
	if ok {
		t.Fatal("expected failure")
	}
	diags := core.TakeDiagnostics()
	if len(diags) != 1 || len(diags[0].Annotations) != 1 {
		t.Fatalf("diagnostics = %v", diags)
	}
	r := diags[0].Annotations[0].Range
	if r.Begin != 5 || r.End != 6 {
		t.Fatalf("annotation range = [%d, %d), want [5, 6)", r.Begin, r.End)
	}
}
