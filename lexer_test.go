// lexer_test.go
package sassas

import (
	"reflect"
	"testing"
)

func scan(src string) []Token {
	l := NewLexer(src)
	var out []Token
	for {
		tok := l.NextToken()
		if tok.Is(End) {
			return out
		}
		out = append(out, tok)
	}
}

func kindsOf(tokens []Token) []TokenKind {
	out := make([]TokenKind, 0, len(tokens))
	for _, tok := range tokens {
		out = append(out, tok.Kind)
	}
	return out
}

func wantKinds(t *testing.T, src string, want []TokenKind) []Token {
	t.Helper()
	got := scan(src)
	gotKinds := kindsOf(got)
	if !reflect.DeepEqual(gotKinds, want) {
		t.Fatalf("\nsource:\n%s\nwant kinds:\n%v\ngot kinds:\n%v\n", src, want, gotKinds)
	}
	return got
}

func Test_Lexer_Keywords_And_Identifiers(t *testing.T) {
	got := wantKinds(t, "REGISTERS Predicate registers ENCODING", []TokenKind{
		KeywordRegisters, Identifier, Identifier, KeywordEncoding,
	})
	if got[1].Content != "Predicate" {
		t.Fatalf("identifier content = %q, want %q", got[1].Content, "Predicate")
	}
	if got[2].Content != "registers" {
		t.Fatalf("keyword lookup must be case-sensitive, got kind for %q", got[2].Content)
	}
}

func Test_Lexer_Integers_MaximalRun(t *testing.T) {
	// The lexer does not validate integer format, so a malformed run still
	// lexes as a single Integer token.
	got := wantKinds(t, "0x1F 123abc 1__0 9", []TokenKind{
		Integer, Integer, Integer, Integer,
	})
	want := []string{"0x1F", "123abc", "1__0", "9"}
	for i, tok := range got {
		if tok.Content != want[i] {
			t.Fatalf("token %d content = %q, want %q", i, tok.Content, want[i])
		}
	}
}

func Test_Lexer_Strings_BothQuotes(t *testing.T) {
	got := wantKinds(t, `"sm_90" 'X..X'`, []TokenKind{String, String})
	if got[0].Content != `"sm_90"` || got[1].Content != `'X..X'` {
		t.Fatalf("string contents = %q, %q", got[0].Content, got[1].Content)
	}
}

func Test_Lexer_String_Unterminated_StopsAtNewline(t *testing.T) {
	got := wantKinds(t, "\"abc\nX", []TokenKind{String, Identifier})
	if got[0].Content != `"abc` {
		t.Fatalf("unterminated string content = %q, want %q", got[0].Content, `"abc`)
	}
}

func Test_Lexer_Punctuators_TwoCharForms(t *testing.T) {
	wantKinds(t, "-> != <= << >= >> == && ||", []TokenKind{
		PunctuatorArrow, PunctuatorExclaimEqual, PunctuatorLessEqual,
		PunctuatorLessLess, PunctuatorGreaterEqual, PunctuatorGreaterGreater,
		PunctuatorEqualEqual, PunctuatorAmpAmp, PunctuatorPipePipe,
	})
}

func Test_Lexer_Punctuators_SingleCharPrefixes(t *testing.T) {
	// Single-char punctuators that share a prefix with two-char forms.
	wantKinds(t, "- ! < > = & | . .. ;", []TokenKind{
		PunctuatorMinus, PunctuatorExclaim, PunctuatorLess, PunctuatorGreater,
		PunctuatorEqual, PunctuatorAmp, PunctuatorPipe, PunctuatorDot,
		PunctuatorDot, PunctuatorDot, PunctuatorSemi,
	})
}

func Test_Lexer_Unknown_Character(t *testing.T) {
	got := wantKinds(t, "#", []TokenKind{Unknown})
	if got[0].Content != "#" {
		t.Fatalf("unknown token content = %q", got[0].Content)
	}
}

func Test_Lexer_Offsets(t *testing.T) {
	got := scan("AB  CD")
	if got[0].Offset != 0 || got[1].Offset != 4 {
		t.Fatalf("offsets = %d, %d; want 0, 4", got[0].Offset, got[1].Offset)
	}

	l := NewLexer("AB")
	l.NextToken()
	end := l.NextToken()
	if end.IsNot(End) || end.Offset != 2 || end.Content != "" {
		t.Fatalf("end token = %+v", end)
	}
}

func Test_Lexer_LexUntil_ChecksCurrentFirst(t *testing.T) {
	l := NewLexer("; A")
	l.NextToken()
	if !l.LexUntilKind(PunctuatorSemi, false) {
		t.Fatal("LexUntilKind must match the current token")
	}
	if l.CurrentToken().IsNot(PunctuatorSemi) {
		t.Fatalf("current token = %v, want `;`", l.CurrentToken().Kind)
	}
}

func Test_Lexer_LexUntil_ConsumeAdvancesPastMatch(t *testing.T) {
	l := NewLexer("A B ; C")
	l.NextToken()
	if !l.LexUntilKind(PunctuatorSemi, true) {
		t.Fatal("expected to find `;`")
	}
	if l.CurrentToken().Content != "C" {
		t.Fatalf("current token = %q, want %q", l.CurrentToken().Content, "C")
	}
}

func Test_Lexer_LexUntil_EOF_ReturnsFalse(t *testing.T) {
	l := NewLexer("A B")
	l.NextToken()
	if l.LexUntilKind(PunctuatorSemi, false) {
		t.Fatal("LexUntilKind must report false at end of input")
	}
	if l.CurrentToken().IsNot(End) {
		t.Fatalf("current token = %v, want End", l.CurrentToken().Kind)
	}
}
