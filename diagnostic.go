package sassas

// DiagLevel is the severity of a diagnostic entry.
type DiagLevel int

const (
	DiagError DiagLevel = iota
	DiagWarning
	DiagNote
	DiagHelp
)

func (l DiagLevel) String() string {
	switch l {
	case DiagError:
		return "error"
	case DiagWarning:
		return "warning"
	case DiagNote:
		return "note"
	case DiagHelp:
		return "help"
	default:
		return "unknown"
	}
}

// Annotation marks a byte range of the source a diagnostic entry points at,
// with an optional label explaining what is wrong with that range.
type Annotation struct {
	Range TokenRange
	Label string
}

// DiagEntry is one message of a diagnostic: a level, the message text and
// zero or more annotated source ranges. Diag embeds one as the primary entry
// and chains further entries as notes.
type DiagEntry struct {
	Level       DiagLevel
	Message     string
	Annotations []Annotation
}

// Diag is the diagnostic value produced by the parser. It owns all of its
// text and carries only byte ranges into the source, so it stays valid for
// as long as the caller needs it; rendering against the source is the
// consumer's job.
type Diag struct {
	DiagEntry
	// Origin names the source the byte ranges refer to, typically a file
	// path. Purely informational.
	Origin string
	Notes  []DiagEntry
}

func NewDiag(level DiagLevel, message string) Diag {
	return Diag{DiagEntry: DiagEntry{Level: level, Message: message}}
}

// WithOrigin sets the origin label and returns the modified diagnostic.
func (d Diag) WithOrigin(origin string) Diag {
	d.Origin = origin
	return d
}

// WithAnnotation adds an annotated source range to the primary entry.
func (d Diag) WithAnnotation(r TokenRange, label string) Diag {
	d.Annotations = append(d.Annotations, Annotation{Range: r, Label: label})
	return d
}

// WithNote chains a note entry (without annotations) onto the diagnostic.
func (d Diag) WithNote(level DiagLevel, message string) Diag {
	d.Notes = append(d.Notes, DiagEntry{Level: level, Message: message})
	return d
}
