package sassas

// TokenKind identifies the lexical class of a token.
type TokenKind uint8

const (
	// Unknown marks characters the lexer cannot classify. The lexer never
	// rejects input; the parser decides whether an Unknown token is an error.
	Unknown TokenKind = iota
	// End marks the end of the source buffer.
	End
	Identifier
	Integer
	String

	// Keywords. Case-sensitive, uppercase spellings.
	KeywordArchitecture
	KeywordCondition
	KeywordTypes
	KeywordParameters
	KeywordConstants
	KeywordStringMap
	KeywordRegisters
	KeywordTables
	KeywordOperation
	KeywordProperties
	KeywordPredicates
	KeywordFUnit
	KeywordEncoding

	// Punctuators.
	PunctuatorLeftSquare
	PunctuatorRightSquare
	PunctuatorLeftParen
	PunctuatorRightParen
	PunctuatorLeftBrace
	PunctuatorRightBrace
	PunctuatorPlus
	PunctuatorMinus
	PunctuatorStar
	PunctuatorSlash
	PunctuatorPercent
	PunctuatorTilde
	PunctuatorExclaim
	PunctuatorLess
	PunctuatorGreater
	PunctuatorEqual
	PunctuatorAmp
	PunctuatorPipe
	PunctuatorDot
	PunctuatorQuestion
	PunctuatorColon
	PunctuatorSemi
	PunctuatorComma
	PunctuatorAt
	PunctuatorDollar
	PunctuatorBackTick
	PunctuatorArrow
	PunctuatorExclaimEqual
	PunctuatorLessEqual
	PunctuatorLessLess
	PunctuatorGreaterEqual
	PunctuatorGreaterGreater
	PunctuatorEqualEqual
	PunctuatorAmpAmp
	PunctuatorPipePipe

	firstKeyword    = KeywordArchitecture
	lastKeyword     = KeywordEncoding
	firstPunctuator = PunctuatorLeftSquare
	lastPunctuator  = PunctuatorPipePipe
)

// tokenSpellings is the single source of truth for the spelling of every
// keyword and punctuator kind. The keyword lookup table and the kind
// descriptions used in diagnostics are both derived from it.
var tokenSpellings = map[TokenKind]string{
	KeywordArchitecture: "ARCHITECTURE",
	KeywordCondition:    "CONDITION",
	KeywordTypes:        "TYPES",
	KeywordParameters:   "PARAMETERS",
	KeywordConstants:    "CONSTANTS",
	KeywordStringMap:    "STRING_MAP",
	KeywordRegisters:    "REGISTERS",
	KeywordTables:       "TABLES",
	KeywordOperation:    "OPERATION",
	KeywordProperties:   "PROPERTIES",
	KeywordPredicates:   "PREDICATES",
	KeywordFUnit:        "FUNIT",
	KeywordEncoding:     "ENCODING",

	PunctuatorLeftSquare:     "[",
	PunctuatorRightSquare:    "]",
	PunctuatorLeftParen:      "(",
	PunctuatorRightParen:     ")",
	PunctuatorLeftBrace:      "{",
	PunctuatorRightBrace:     "}",
	PunctuatorPlus:           "+",
	PunctuatorMinus:          "-",
	PunctuatorStar:           "*",
	PunctuatorSlash:          "/",
	PunctuatorPercent:        "%",
	PunctuatorTilde:          "~",
	PunctuatorExclaim:        "!",
	PunctuatorLess:           "<",
	PunctuatorGreater:        ">",
	PunctuatorEqual:          "=",
	PunctuatorAmp:            "&",
	PunctuatorPipe:           "|",
	PunctuatorDot:            ".",
	PunctuatorQuestion:       "?",
	PunctuatorColon:          ":",
	PunctuatorSemi:           ";",
	PunctuatorComma:          ",",
	PunctuatorAt:             "@",
	PunctuatorDollar:         "$",
	PunctuatorBackTick:       "`",
	PunctuatorArrow:          "->",
	PunctuatorExclaimEqual:   "!=",
	PunctuatorLessEqual:      "<=",
	PunctuatorLessLess:       "<<",
	PunctuatorGreaterEqual:   ">=",
	PunctuatorGreaterGreater: ">>",
	PunctuatorEqualEqual:     "==",
	PunctuatorAmpAmp:         "&&",
	PunctuatorPipePipe:       "||",
}

// keywords maps a keyword spelling to its token kind, derived from
// tokenSpellings so the two can never drift apart.
var keywords = func() map[string]TokenKind {
	m := make(map[string]TokenKind)
	for kind, spelling := range tokenSpellings {
		if kind >= firstKeyword && kind <= lastKeyword {
			m[spelling] = kind
		}
	}
	return m
}()

// KindDescription returns a short string describing the token kind, suitable
// for use in diagnostic messages ("expected X, but got Y").
func KindDescription(kind TokenKind) string {
	switch kind {
	case Unknown:
		return "unknown"
	case End:
		return "`EOF`"
	case Identifier:
		return "identifier"
	case Integer:
		return "integer"
	case String:
		return "string"
	}
	spelling := tokenSpellings[kind]
	if kind >= firstKeyword && kind <= lastKeyword {
		return "keyword `" + spelling + "`"
	}
	return "`" + spelling + "`"
}

// TokenRange is a half-open byte interval [Begin, End) in the source buffer.
// It carries no reference to the source itself, so it can be stored long
// after the token that produced it.
type TokenRange struct {
	Begin int
	End   int
}

func (r TokenRange) Size() int { return r.End - r.Begin }

// Content returns the text the range covers in source.
func (r TokenRange) Content(source string) string { return source[r.Begin:r.End] }

// Token is one lexical unit. Content is a slice of the source buffer, so a
// token must not outlive the source it was produced from.
type Token struct {
	Kind    TokenKind
	Content string
	Offset  int
}

func (t Token) LocationBegin() int { return t.Offset }
func (t Token) LocationEnd() int   { return t.Offset + len(t.Content) }

func (t Token) Range() TokenRange {
	return TokenRange{Begin: t.LocationBegin(), End: t.LocationEnd()}
}

func (t Token) Is(kind TokenKind) bool    { return t.Kind == kind }
func (t Token) IsNot(kind TokenKind) bool { return t.Kind != kind }

func (t Token) IsKeyword() bool {
	return t.Kind >= firstKeyword && t.Kind <= lastKeyword
}

func (t Token) IsPunctuator() bool {
	return t.Kind >= firstPunctuator && t.Kind <= lastPunctuator
}

// KindDescription returns the description of this token's kind.
func (t Token) KindDescription() string { return KindDescription(t.Kind) }

// MergeTokens combines two tokens from the same source buffer into one token
// of kind newKind, spanning from the earlier start to the later end. Any
// source text between the two tokens (typically whitespace) is preserved in
// the merged content. Neither input is modified.
func MergeTokens(source string, a, b Token, newKind TokenKind) Token {
	begin := a.LocationBegin()
	if b.LocationBegin() < begin {
		begin = b.LocationBegin()
	}
	end := a.LocationEnd()
	if b.LocationEnd() > end {
		end = b.LocationEnd()
	}
	return Token{Kind: newKind, Content: source[begin:end], Offset: begin}
}
