package langserver

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/sourcegraph/jsonrpc2"

	sassas "github.com/Pluto-Zy/SASS-Assembler"
)

// documentStore tracks the open documents of one client connection, keyed by
// URI.
type documentStore struct {
	mu   sync.Mutex
	docs map[DocumentURI]TextDocumentItem
}

func newDocumentStore() *documentStore {
	return &documentStore{docs: make(map[DocumentURI]TextDocumentItem)}
}

func (s *documentStore) set(doc TextDocumentItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[doc.URI] = doc
}

func (s *documentStore) get(uri DocumentURI) (TextDocumentItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.docs[uri]
	return doc, ok
}

func (s *documentStore) delete(uri DocumentURI) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.docs, uri)
}

// diagnose parses the document and converts the parser's diagnostics to LSP
// diagnostics. A clean parse returns an empty, non-nil slice so the client
// clears stale diagnostics.
func diagnose(doc TextDocumentItem) []Diagnostic {
	_, diags := sassas.Parse(string(doc.URI), doc.Text)

	lines := sassas.NewLineMap(doc.Text)
	result := make([]Diagnostic, 0, len(diags))
	for _, diag := range diags {
		result = append(result, convertDiagnostic(doc.URI, lines, diag))
	}
	return result
}

func convertPosition(lines *sassas.LineMap, offset int) Position {
	line, col := lines.Position(offset)
	return Position{Line: line, Character: col}
}

func convertRange(lines *sassas.LineMap, r sassas.TokenRange) Range {
	return Range{
		Start: convertPosition(lines, r.Begin),
		End:   convertPosition(lines, r.End),
	}
}

func convertSeverity(level sassas.DiagLevel) DiagnosticSeverity {
	switch level {
	case sassas.DiagError:
		return SeverityError
	case sassas.DiagWarning:
		return SeverityWarning
	case sassas.DiagHelp:
		return SeverityHint
	default:
		return SeverityInformation
	}
}

// convertDiagnostic maps one parser diagnostic to an LSP diagnostic. The
// first annotated range becomes the diagnostic's range; further annotations
// and the chained notes become related information.
func convertDiagnostic(uri DocumentURI, lines *sassas.LineMap, diag sassas.Diag) Diagnostic {
	result := Diagnostic{
		Severity: convertSeverity(diag.Level),
		Source:   "sassas",
		Message:  diag.Message,
	}

	if len(diag.Annotations) != 0 {
		primary := diag.Annotations[0]
		result.Range = convertRange(lines, primary.Range)
		if primary.Label != "" {
			result.Message = fmt.Sprintf("%s: %s", diag.Message, primary.Label)
		}

		for _, ann := range diag.Annotations[1:] {
			message := ann.Label
			if message == "" {
				message = diag.Message
			}
			result.RelatedInformation = append(result.RelatedInformation, DiagnosticRelatedInformation{
				Location: Location{URI: uri, Range: convertRange(lines, ann.Range)},
				Message:  message,
			})
		}
	}

	for _, note := range diag.Notes {
		info := DiagnosticRelatedInformation{
			Location: Location{URI: uri, Range: result.Range},
			Message:  fmt.Sprintf("%s: %s", note.Level, note.Message),
		}
		if len(note.Annotations) != 0 {
			info.Location.Range = convertRange(lines, note.Annotations[0].Range)
		}
		result.RelatedInformation = append(result.RelatedInformation, info)
	}

	return result
}

func (h *handler) publishDiagnostics(ctx context.Context, conn *jsonrpc2.Conn, doc TextDocumentItem) {
	conn.Notify(ctx, "textDocument/publishDiagnostics", PublishDiagnosticsParams{
		URI:         doc.URI,
		Version:     doc.Version,
		Diagnostics: diagnose(doc),
	})
}

func (h *handler) didOpen(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) {
	var params DidOpenTextDocumentParams
	if err := json.Unmarshal(*req.Params, &params); err != nil {
		replyInvalidParams(ctx, conn, req)
		return
	}

	h.docs.set(params.TextDocument)
	h.publishDiagnostics(ctx, conn, params.TextDocument)
}

func (h *handler) didChange(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) {
	var params DidChangeTextDocumentParams
	if err := json.Unmarshal(*req.Params, &params); err != nil || len(params.ContentChanges) == 0 {
		replyInvalidParams(ctx, conn, req)
		return
	}

	doc, ok := h.docs.get(params.TextDocument.URI)
	if !ok {
		return
	}

	// The server registers full-document sync, so the last change event
	// carries the complete text.
	doc.Text = params.ContentChanges[len(params.ContentChanges)-1].Text
	doc.Version = params.TextDocument.Version
	h.docs.set(doc)
	h.publishDiagnostics(ctx, conn, doc)
}

func (h *handler) didClose(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) {
	var params DidCloseTextDocumentParams
	if err := json.Unmarshal(*req.Params, &params); err != nil {
		replyInvalidParams(ctx, conn, req)
		return
	}

	h.docs.delete(params.TextDocument.URI)
}

func (h *handler) documentDiagnostic(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) {
	var params DocumentDiagnosticParams
	if err := json.Unmarshal(*req.Params, &params); err != nil {
		replyInvalidParams(ctx, conn, req)
		return
	}

	items := []Diagnostic{}
	if doc, ok := h.docs.get(params.TextDocument.URI); ok {
		items = diagnose(doc)
	}
	conn.Reply(ctx, req.ID, DocumentDiagnosticReport{Kind: "full", Items: items})
}
