package sassas

import "testing"

func Test_Token_KindDescription(t *testing.T) {
	cases := []struct {
		kind TokenKind
		want string
	}{
		{End, "`EOF`"},
		{Identifier, "identifier"},
		{Integer, "integer"},
		{String, "string"},
		{KeywordRegisters, "keyword `REGISTERS`"},
		{KeywordStringMap, "keyword `STRING_MAP`"},
		{PunctuatorSemi, "`;`"},
		{PunctuatorArrow, "`->`"},
	}
	for _, c := range cases {
		if got := KindDescription(c.kind); got != c.want {
			t.Fatalf("KindDescription(%v) = %q, want %q", c.kind, got, c.want)
		}
	}
}

func Test_Token_KeywordTable_Complete(t *testing.T) {
	for _, spelling := range []string{
		"ARCHITECTURE", "CONDITION", "TYPES", "PARAMETERS", "CONSTANTS",
		"STRING_MAP", "REGISTERS", "TABLES", "OPERATION", "PROPERTIES",
		"PREDICATES", "FUNIT", "ENCODING",
	} {
		kind, ok := keywords[spelling]
		if !ok {
			t.Fatalf("keyword %q missing from table", spelling)
		}
		tok := Token{Kind: kind, Content: spelling}
		if !tok.IsKeyword() {
			t.Fatalf("kind of %q is not classified as a keyword", spelling)
		}
	}
}

func Test_Token_Merge_PreservesInterveningText(t *testing.T) {
	source := "HAS  ISSUE_SLOTS"
	l := NewLexer(source)
	first := l.NextToken()
	second := l.NextToken()

	merged := MergeTokens(source, first, second, String)
	if merged.Kind != String {
		t.Fatalf("merged kind = %v, want String", merged.Kind)
	}
	if merged.Content != "HAS  ISSUE_SLOTS" {
		t.Fatalf("merged content = %q", merged.Content)
	}
	if merged.Offset != 0 {
		t.Fatalf("merged offset = %d, want 0", merged.Offset)
	}
}

func Test_Token_Merge_OrderIndependent(t *testing.T) {
	source := "A B"
	l := NewLexer(source)
	a := l.NextToken()
	b := l.NextToken()

	forward := MergeTokens(source, a, b, Identifier)
	backward := MergeTokens(source, b, a, Identifier)
	if forward != backward {
		t.Fatalf("merge is not order independent: %+v vs %+v", forward, backward)
	}
}

func Test_Token_Merge_SelfMerge_IsNoOp(t *testing.T) {
	source := "VALUE"
	l := NewLexer(source)
	tok := l.NextToken()

	merged := MergeTokens(source, tok, tok, String)
	if merged.Content != "VALUE" || merged.Offset != 0 {
		t.Fatalf("self merge changed the token: %+v", merged)
	}
}

func Test_TokenRange_Content(t *testing.T) {
	source := "AB CD"
	r := TokenRange{Begin: 3, End: 5}
	if r.Size() != 2 || r.Content(source) != "CD" {
		t.Fatalf("range size = %d, content = %q", r.Size(), r.Content(source))
	}
}
