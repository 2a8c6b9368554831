package sassas

// Lexer is a single-pass scanner over an instruction-set description source.
// It produces one token at a time and caches the most recent one, giving the
// parser exactly one token of lookahead. The lexer itself never reports
// errors: malformed integers, unterminated strings and unrecognized
// characters all come out as ordinary tokens whose legality the parser
// checks later.
type Lexer struct {
	source string
	pos    int
	cur    Token
}

func NewLexer(source string) *Lexer {
	return &Lexer{source: source}
}

// Source returns the buffer the lexer scans. Tokens slice into it.
func (l *Lexer) Source() string { return l.source }

// CurrentToken returns the token most recently produced by NextToken.
func (l *Lexer) CurrentToken() Token { return l.cur }

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func isIdentByte(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || isDigit(b) || b == '_'
}

// NextToken consumes whitespace and produces the next token, caching it as
// the current token.
func (l *Lexer) NextToken() Token {
	for l.pos < len(l.source) && isSpace(l.source[l.pos]) {
		l.pos++
	}

	if l.pos >= len(l.source) {
		l.cur = Token{Kind: End, Content: "", Offset: len(l.source)}
		return l.cur
	}

	begin := l.pos
	form := func(kind TokenKind) Token {
		l.cur = Token{Kind: kind, Content: l.source[begin:l.pos], Offset: begin}
		return l.cur
	}

	ch := l.source[l.pos]
	l.pos++

	switch {
	case isDigit(ch):
		// Integer literal: a maximal alphanumeric/underscore run. The format
		// is validated later by the integer evaluator, not here.
		for l.pos < len(l.source) && isIdentByte(l.source[l.pos]) {
			l.pos++
		}
		return form(Integer)

	case isIdentByte(ch):
		for l.pos < len(l.source) && isIdentByte(l.source[l.pos]) {
			l.pos++
		}
		tok := form(Identifier)
		if kind, ok := keywords[tok.Content]; ok {
			tok.Kind = kind
			l.cur = tok
		}
		return l.cur

	case ch == '"' || ch == '\'':
		// Scan to the matching quote, a newline, or end of input, whichever
		// comes first. An unterminated string is still a String token.
		for l.pos < len(l.source) && l.source[l.pos] != ch && l.source[l.pos] != '\n' {
			l.pos++
		}
		if l.pos < len(l.source) && l.source[l.pos] == ch {
			l.pos++
		}
		return form(String)
	}

	switch ch {
	case '[':
		return form(PunctuatorLeftSquare)
	case ']':
		return form(PunctuatorRightSquare)
	case '(':
		return form(PunctuatorLeftParen)
	case ')':
		return form(PunctuatorRightParen)
	case '{':
		return form(PunctuatorLeftBrace)
	case '}':
		return form(PunctuatorRightBrace)

	case '+':
		return form(PunctuatorPlus)
	case '-':
		if l.peekIs('>') {
			l.pos++
			return form(PunctuatorArrow)
		}
		return form(PunctuatorMinus)
	case '*':
		return form(PunctuatorStar)
	case '/':
		return form(PunctuatorSlash)
	case '%':
		return form(PunctuatorPercent)

	case '~':
		return form(PunctuatorTilde)
	case '!':
		if l.peekIs('=') {
			l.pos++
			return form(PunctuatorExclaimEqual)
		}
		return form(PunctuatorExclaim)
	case '<':
		if l.peekIs('=') {
			l.pos++
			return form(PunctuatorLessEqual)
		}
		if l.peekIs('<') {
			l.pos++
			return form(PunctuatorLessLess)
		}
		return form(PunctuatorLess)
	case '>':
		if l.peekIs('=') {
			l.pos++
			return form(PunctuatorGreaterEqual)
		}
		if l.peekIs('>') {
			l.pos++
			return form(PunctuatorGreaterGreater)
		}
		return form(PunctuatorGreater)
	case '=':
		if l.peekIs('=') {
			l.pos++
			return form(PunctuatorEqualEqual)
		}
		return form(PunctuatorEqual)

	case '&':
		if l.peekIs('&') {
			l.pos++
			return form(PunctuatorAmpAmp)
		}
		return form(PunctuatorAmp)
	case '|':
		if l.peekIs('|') {
			l.pos++
			return form(PunctuatorPipePipe)
		}
		return form(PunctuatorPipe)

	case '.':
		return form(PunctuatorDot)
	case '?':
		return form(PunctuatorQuestion)
	case ':':
		return form(PunctuatorColon)
	case ';':
		return form(PunctuatorSemi)
	case ',':
		return form(PunctuatorComma)
	case '@':
		return form(PunctuatorAt)
	case '$':
		return form(PunctuatorDollar)
	case '`':
		return form(PunctuatorBackTick)
	}

	return form(Unknown)
}

func (l *Lexer) peekIs(b byte) bool {
	return l.pos < len(l.source) && l.source[l.pos] == b
}

// LexUntil produces tokens until cond is satisfied or the end of input is
// reached. If a satisfying token is found it becomes the current token
// (unless consume is set, in which case the lexer advances past it) and
// LexUntil reports true. Reaching the end first reports false.
func (l *Lexer) LexUntil(cond func(Token) bool, consume bool) bool {
	for l.cur.IsNot(End) && !cond(l.cur) {
		l.NextToken()
	}
	if l.cur.Is(End) {
		return false
	}
	if consume {
		l.NextToken()
	}
	return true
}

// LexUntilKind is LexUntil with a token-kind condition.
func (l *Lexer) LexUntilKind(kind TokenKind, consume bool) bool {
	return l.LexUntil(func(t Token) bool { return t.Is(kind) }, consume)
}
