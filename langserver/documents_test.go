package langserver

import (
	"strings"
	"testing"

	sassas "github.com/Pluto-Zy/SASS-Assembler"
)

func Test_Diagnose_CleanParse_ReturnsEmptySlice(t *testing.T) {
	doc := TextDocumentItem{
		URI:  "file:///isa.txt",
		Text: "CONSTANTS a = 1",
	}

	items := diagnose(doc)
	if items == nil {
		t.Fatal("a clean parse must return a non-nil slice so stale diagnostics get cleared")
	}
	if len(items) != 0 {
		t.Fatalf("diagnostics = %v", items)
	}
}

func Test_Diagnose_ReportsParserErrors(t *testing.T) {
	doc := TextDocumentItem{
		URI:  "file:///isa.txt",
		Text: "CONSTANTS a = 1 a = 2",
	}

	items := diagnose(doc)
	if len(items) != 1 {
		t.Fatalf("got %d diagnostics, want 1: %v", len(items), items)
	}
	d := items[0]
	if d.Severity != SeverityError || d.Source != "sassas" {
		t.Fatalf("diagnostic = %+v", d)
	}
	if d.Message != "Duplicate constant name" {
		t.Fatalf("message = %q", d.Message)
	}
	// The duplicate name sits on the first line at byte offset 16.
	if d.Range.Start != (Position{Line: 0, Character: 16}) {
		t.Fatalf("range = %+v", d.Range)
	}
}

func Test_ConvertDiagnostic_LabelAndNotes(t *testing.T) {
	source := "line one\nline two"
	lines := sassas.NewLineMap(source)

	diag := sassas.NewDiag(sassas.DiagError, "boom").
		WithAnnotation(sassas.TokenRange{Begin: 9, End: 13}, "here").
		WithAnnotation(sassas.TokenRange{Begin: 0, End: 4}, "").
		WithNote(sassas.DiagNote, "try something else")

	result := convertDiagnostic("file:///x", lines, diag)

	if result.Message != "boom: here" {
		t.Fatalf("message = %q", result.Message)
	}
	want := Range{
		Start: Position{Line: 1, Character: 0},
		End:   Position{Line: 1, Character: 4},
	}
	if result.Range != want {
		t.Fatalf("range = %+v", result.Range)
	}

	if len(result.RelatedInformation) != 2 {
		t.Fatalf("related = %v", result.RelatedInformation)
	}
	// An unlabeled secondary annotation falls back to the primary message.
	if result.RelatedInformation[0].Message != "boom" {
		t.Fatalf("secondary message = %q", result.RelatedInformation[0].Message)
	}
	if !strings.HasPrefix(result.RelatedInformation[1].Message, "note: ") {
		t.Fatalf("note message = %q", result.RelatedInformation[1].Message)
	}
}

func Test_ConvertSeverity(t *testing.T) {
	cases := map[sassas.DiagLevel]DiagnosticSeverity{
		sassas.DiagError:   SeverityError,
		sassas.DiagWarning: SeverityWarning,
		sassas.DiagNote:    SeverityInformation,
		sassas.DiagHelp:    SeverityHint,
	}
	for level, want := range cases {
		if got := convertSeverity(level); got != want {
			t.Fatalf("convertSeverity(%s) = %d, want %d", level, got, want)
		}
	}
}

func Test_DocumentStore_Lifecycle(t *testing.T) {
	store := newDocumentStore()
	doc := TextDocumentItem{URI: "file:///a", Text: "x", Version: 1}

	store.set(doc)
	got, ok := store.get(doc.URI)
	if !ok || got != doc {
		t.Fatalf("get = %+v, %v", got, ok)
	}

	store.delete(doc.URI)
	if _, ok := store.get(doc.URI); ok {
		t.Fatal("document must be gone after delete")
	}
}
