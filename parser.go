// parser.go implements the shared parser core used by the section grammar in
// isa_parser.go.
//
// The core owns the lexer, the origin label and the diagnostic sink, and
// provides the token-expectation and literal-extraction helpers every section
// parser builds on. Parse routines signal local success or failure through
// their return values; the reason for a failure always lands in the shared
// diagnostic sink. This two-channel shape keeps control flow boolean while
// the caller of the whole parse still receives every independent diagnostic
// collected in one pass.
package sassas

import (
	"fmt"
	"strings"
)

type parserCore struct {
	// origin names the source for diagnostics, typically the file path.
	origin string
	lexer  *Lexer
	diags  []Diag
}

func newParserCore(origin, source string) parserCore {
	return parserCore{origin: origin, lexer: NewLexer(source)}
}

// TakeDiagnostics returns the diagnostics collected so far and resets the
// sink. The caller owns the returned slice.
func (p *parserCore) TakeDiagnostics() []Diag {
	diags := p.diags
	p.diags = nil
	return diags
}

func (p *parserCore) report(d Diag) {
	p.diags = append(p.diags, d)
}

// diagAtRange builds a diagnostic annotated at the given source range. The
// label and note are optional; an empty note adds no entry. The diagnostic is
// returned rather than reported so callers can extend it first.
func (p *parserCore) diagAtRange(r TokenRange, level DiagLevel, message, label, note string) Diag {
	d := NewDiag(level, message).WithOrigin(p.origin).WithAnnotation(r, label)
	if note != "" {
		d = d.WithNote(DiagNote, note)
	}
	return d
}

func (p *parserCore) diagAtToken(tok Token, level DiagLevel, message, label, note string) Diag {
	return p.diagAtRange(tok.Range(), level, message, label, note)
}

// expect reports whether tok is one of the expected kinds. A mismatch
// produces an "Unexpected token" diagnostic naming both sides.
func (p *parserCore) expect(tok Token, kinds ...TokenKind) bool {
	for _, kind := range kinds {
		if tok.Is(kind) {
			return true
		}
	}

	descs := make([]string, len(kinds))
	for i, kind := range kinds {
		descs[i] = KindDescription(kind)
	}
	label := fmt.Sprintf(
		"expected %s, but got %s",
		strings.Join(descs, " or "),
		tok.KindDescription(),
	)
	p.report(p.diagAtToken(tok, DiagError, "Unexpected token", label, ""))
	return false
}

func (p *parserCore) expectCurrent(kinds ...TokenKind) bool {
	return p.expect(p.lexer.CurrentToken(), kinds...)
}

func (p *parserCore) expectNext(kinds ...TokenKind) bool {
	return p.expect(p.lexer.NextToken(), kinds...)
}

// getStringLiteral strips the quotes from a String token. The token must be
// of kind String; a string the lexer left unterminated (or an empty quote
// run) is rejected here with a diagnostic.
func (p *parserCore) getStringLiteral(tok Token) (string, bool) {
	if tok.IsNot(String) {
		panic("getStringLiteral: token is not a string literal")
	}
	content := tok.Content
	if len(content) > 1 && content[0] == content[len(content)-1] {
		return content[1 : len(content)-1], true
	}

	p.report(p.diagAtToken(
		tok, DiagError,
		"Invalid string literal",
		"string literal must be enclosed in quotes",
		"",
	))
	return "", false
}

func (p *parserCore) expectStringLiteral(tok Token) (string, bool) {
	if !p.expect(tok, String) {
		return "", false
	}
	return p.getStringLiteral(tok)
}

// getIdentifierOrString returns the spelling of an identifier token or the
// unquoted content of a string token.
func (p *parserCore) getIdentifierOrString(tok Token) (string, bool) {
	if tok.Is(Identifier) {
		return tok.Content, true
	}
	return p.getStringLiteral(tok)
}

func (p *parserCore) expectIdentifierOrString(tok Token) (string, bool) {
	if !p.expect(tok, Identifier, String) {
		return "", false
	}
	return p.getIdentifierOrString(tok)
}
