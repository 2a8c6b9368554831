// isa_parser.go implements the section grammar of the instruction
// description format. Each section parser assumes the lexer's current token
// is its section keyword and leaves the current token at the next section
// keyword (or end of input) on success.
//
// Error handling follows a two-level recovery scheme: a failed item inside a
// section resynchronizes at the next `;`, and a failed section makes the
// driver resynchronize at the next keyword. Each failure appends to the
// shared diagnostic sink and parsing continues, so one pass reports as many
// independent problems as possible. The overall parse succeeds only when no
// section failed.
package sassas

import "fmt"

// ISAParser parses a whole instruction description file into an ISA model.
type ISAParser struct {
	parserCore
}

func NewISAParser(origin, source string) *ISAParser {
	return &ISAParser{parserCore: newParserCore(origin, source)}
}

// Parse is the package-level entry point: it parses source into an ISA
// model. On failure the model is nil and the diagnostics explain why; on
// success the diagnostic list is empty.
func Parse(origin, source string) (*ISA, []Diag) {
	parser := NewISAParser(origin, source)
	isa, ok := parser.Parse()
	if !ok {
		return nil, parser.TakeDiagnostics()
	}
	return isa, nil
}

// Parse runs the top-level driver loop. It reports false if any section
// failed, even though the returned diagnostics may describe independent
// problems from several sections.
func (p *ISAParser) Parse() (*ISA, bool) {
	// Generate the first token.
	p.lexer.NextToken()

	hasErrors := false
	result := &ISA{}
	for p.lexer.CurrentToken().IsNot(End) {
		tok := p.lexer.CurrentToken()
		if !tok.IsKeyword() {
			p.report(p.diagAtToken(
				tok, DiagError,
				"Unexpected token",
				fmt.Sprintf("expected a keyword, but got %s", tok.KindDescription()),
				"",
			))
			return nil, false
		}

		ok := false
		switch tok.Kind {
		case KeywordArchitecture:
			if arch, archOK := p.parseArchitecture(); archOK {
				result.Architecture = arch
				ok = true
			}

		case KeywordCondition:
			if p.expectNext(KeywordTypes) {
				if types, typesOK := p.parseConditionTypes(); typesOK {
					result.ConditionTypes = types
					ok = true
				}
			}

		case KeywordParameters:
			if params, paramsOK := p.parseParameters(); paramsOK {
				result.Parameters = params
				ok = true
			}

		case KeywordConstants:
			if consts, constsOK := p.parseConstants(); constsOK {
				result.Constants = consts
				ok = true
			}

		case KeywordStringMap:
			if strs, strsOK := p.parseStringMap(); strsOK {
				result.StringMap = strs
				ok = true
			}

		case KeywordRegisters:
			if regs, regsOK := p.parseRegisters(); regsOK {
				result.Registers = regs
				ok = true
			}

		case KeywordTables:
			if tables, tablesOK := p.parseTables(result.Registers); tablesOK {
				result.Tables = tables
				ok = true
			}

		case KeywordOperation:
			if p.expectNext(KeywordProperties, KeywordPredicates) {
				if p.lexer.CurrentToken().Is(KeywordProperties) {
					if props, propsOK := p.parseOperationProperties(); propsOK {
						result.OperationProperties = props
						ok = true
					}
				} else {
					if preds, predsOK := p.parseOperationPredicates(); predsOK {
						result.OperationPredicates = preds
						ok = true
					}
				}
			}

		case KeywordFUnit:
			if unit, unitOK := p.parseFunctionalUnit(); unitOK {
				result.FunctionalUnit = unit
				ok = true
			}

		default:
			// A keyword without a section parser ends the file as far as we
			// are concerned. Trailing content is not itself an error.
			if hasErrors {
				return nil, false
			}
			return result, true
		}

		if ok {
			continue
		}

		// The current section failed. Recover at the next keyword.
		hasErrors = true
		p.lexer.LexUntil(Token.IsKeyword, false)
	}

	if hasErrors {
		return nil, false
	}
	return result, true
}

// recoverUntil skips tokens up to the next token of the given kind. Reaching
// the end of input instead produces a diagnostic.
func (p *ISAParser) recoverUntil(kind TokenKind, consume bool) {
	if !p.lexer.LexUntilKind(kind, consume) {
		p.report(p.diagAtToken(
			p.lexer.CurrentToken(), DiagError,
			fmt.Sprintf("Expected %s", KindDescription(kind)),
			"", "",
		))
	}
}

func (p *ISAParser) parseArchitecture() (Architecture, bool) {
	hasErrors := false
	var result Architecture

	if name, ok := p.expectStringLiteral(p.lexer.NextToken()); ok {
		result.Name = name
	} else {
		hasErrors = true
	}

	// Each detail is an identifier followed by free-form content up to a
	// `;`. The content is kept verbatim by merging every token before the
	// `;` into one string value.
	for p.lexer.NextToken().Is(Identifier) {
		itemName := p.lexer.CurrentToken().Content
		itemValue := p.lexer.NextToken()

		if itemValue.Is(PunctuatorSemi) {
			p.report(p.diagAtToken(
				itemValue, DiagError,
				"Expected content",
				"missing value for architecture item",
				"",
			))
			hasErrors = true
			continue
		}

		hasSemi := p.lexer.LexUntil(func(tok Token) bool {
			if tok.Is(PunctuatorSemi) {
				return true
			}
			itemValue = MergeTokens(p.lexer.Source(), itemValue, tok, String)
			return false
		}, false)

		if !hasSemi {
			p.report(p.diagAtToken(itemValue, DiagError, "Expected ';'", "", ""))
			hasErrors = true
			continue
		}

		result.Details = append(result.Details, ArchitectureDetail{
			Name:  itemName,
			Value: itemValue.Content,
		})
	}

	if hasErrors {
		return Architecture{}, false
	}
	return result, true
}

func (p *ISAParser) parseConditionTypes() ([]ConditionType, bool) {
	hasErrors := false
	var results []ConditionType

	// Each item has the form `name : kind`.
	for p.lexer.NextToken().Is(Identifier) {
		name := p.lexer.CurrentToken().Content
		if !p.expectNext(PunctuatorColon) || !p.expectNext(Identifier) {
			// TODO: Better error recovery.
			return nil, false
		}
		kind := p.lexer.CurrentToken().Content

		if ct, ok := ConditionTypeFromString(kind, name); ok {
			results = append(results, ct)
		} else {
			note := "Valid kinds are: "
			for i, valid := range ConditionKinds() {
				if i != 0 {
					note += ", "
				}
				note += "`" + valid + "`"
			}
			p.report(p.diagAtToken(
				p.lexer.CurrentToken(), DiagError,
				"Invalid kind of condition type",
				"", note,
			))
			hasErrors = true
		}
	}

	if hasErrors {
		return nil, false
	}
	return results, true
}

// parseConstantMap handles the shared grammar of the PARAMETERS and
// CONSTANTS sections: repeated `name = value` entries.
func (p *ISAParser) parseConstantMap() (map[string]int32, bool) {
	hasErrors := false
	result := make(map[string]int32)

	for p.lexer.NextToken().Is(Identifier) {
		nameToken := p.lexer.CurrentToken()

		if !p.expectNext(PunctuatorEqual) {
			hasErrors = true
			continue
		}

		constant, ok := p.expectIntegerConstant(p.lexer.NextToken(), 32, true)
		if !ok {
			hasErrors = true
			continue
		}

		if _, exists := result[nameToken.Content]; exists {
			p.report(p.diagAtToken(nameToken, DiagError, "Duplicate constant name", "", ""))
			hasErrors = true
			continue
		}
		result[nameToken.Content] = int32(uint32(constant))
	}

	if hasErrors {
		return nil, false
	}
	return result, true
}

func (p *ISAParser) parseParameters() (map[string]int32, bool) {
	return p.parseConstantMap()
}

func (p *ISAParser) parseConstants() (map[string]int32, bool) {
	return p.parseConstantMap()
}

func (p *ISAParser) parseStringMap() (map[string]string, bool) {
	hasErrors := false
	result := make(map[string]string)

	for p.lexer.NextToken().Is(Identifier) {
		nameToken := p.lexer.CurrentToken()

		if !p.expectNext(PunctuatorArrow) || !p.expectNext(Identifier) {
			hasErrors = true
			continue
		}

		if _, exists := result[nameToken.Content]; exists {
			p.report(p.diagAtToken(nameToken, DiagError, "Duplicate string map item", "", ""))
			hasErrors = true
			continue
		}
		result[nameToken.Content] = p.lexer.CurrentToken().Content
	}

	if hasErrors {
		return nil, false
	}
	return result, true
}

// rangeExpr is an inclusive numeric range from a `(begin..end)` expression,
// or a single scalar when begin == end.
type rangeExpr struct {
	tokRange TokenRange
	begin    uint32
	end      uint32
}

func (r rangeExpr) size() uint32 {
	return r.end - r.begin + 1
}

func (r rangeExpr) at(i uint32) uint32 {
	return r.begin + i
}

// registerName is a register name prefix with an optional numeric range, as
// in `SR(0..255)`. Without a range it names a single register.
type registerName struct {
	tokRange TokenRange
	prefix   string
	rng      *rangeExpr
}

func (n registerName) nameCount() uint32 {
	if n.rng == nil {
		return 1
	}
	return n.rng.size()
}

func (p *ISAParser) parseRangeExpr() (rangeExpr, bool) {
	exprBegin := p.lexer.CurrentToken().LocationBegin()

	begin, ok := p.expectIntegerConstant(p.lexer.NextToken(), 32, false)
	if !ok || !p.expectNext(PunctuatorDot) || !p.expectNext(PunctuatorDot) {
		return rangeExpr{}, false
	}

	end, ok := p.expectIntegerConstant(p.lexer.NextToken(), 32, false)
	if !ok || !p.expectNext(PunctuatorRightParen) {
		return rangeExpr{}, false
	}

	exprRange := TokenRange{Begin: exprBegin, End: p.lexer.CurrentToken().LocationEnd()}
	// Eat the `)`.
	p.lexer.NextToken()

	if begin > end {
		p.report(p.diagAtRange(
			exprRange, DiagError,
			"The start of the range is greater than the end",
			"", "",
		))
		return rangeExpr{}, false
	}

	return rangeExpr{tokRange: exprRange, begin: uint32(begin), end: uint32(end)}, true
}

func (p *ISAParser) parseRegisterName() (registerName, bool) {
	nameBegin := p.lexer.CurrentToken().LocationBegin()

	name, ok := p.expectIdentifierOrString(p.lexer.CurrentToken())
	if !ok {
		return registerName{}, false
	}

	switch p.lexer.NextToken().Kind {
	case PunctuatorLeftParen:
		rng, rngOK := p.parseRangeExpr()
		if !rngOK {
			return registerName{}, false
		}
		return registerName{
			tokRange: TokenRange{Begin: nameBegin, End: rng.tokRange.End},
			prefix:   name,
			rng:      &rng,
		}, true

	case PunctuatorStar:
		// Consume the `*` without doing anything with it. Its meaning in the
		// context of register names is unknown.
		p.lexer.NextToken()
	}

	return registerName{
		tokRange: TokenRange{Begin: nameBegin, End: p.lexer.CurrentToken().LocationEnd()},
		prefix:   name,
	}, true
}

func (p *ISAParser) parseRegisterValue() (rangeExpr, bool) {
	if !p.expectCurrent(PunctuatorLeftParen, Integer) {
		return rangeExpr{}, false
	}

	if p.lexer.CurrentToken().Is(PunctuatorLeftParen) {
		return p.parseRangeExpr()
	}

	integerToken := p.lexer.CurrentToken()
	value, ok := p.expectIntegerConstant(integerToken, 32, false)
	if !ok {
		return rangeExpr{}, false
	}

	// Eat the integer token.
	p.lexer.NextToken()
	return rangeExpr{
		tokRange: integerToken.Range(),
		begin:    uint32(value),
		end:      uint32(value),
	}, true
}

func (p *ISAParser) parseRegisterList() (*RegisterGroup, bool) {
	result := &RegisterGroup{}
	for {
		names, ok := p.parseRegisterName()
		if !ok {
			return nil, false
		}

		if p.lexer.CurrentToken().Is(PunctuatorEqual) {
			// Eat the `=`.
			p.lexer.NextToken()

			values, valuesOK := p.parseRegisterValue()
			if !valuesOK {
				return nil, false
			}

			nameCount := names.nameCount()
			valueCount := values.size()

			if nameCount != valueCount {
				d := NewDiag(
					DiagError,
					"The number of register names and initial values do not match",
				).WithOrigin(p.origin)
				d = d.WithAnnotation(names.tokRange, fmt.Sprintf("%d name%s", nameCount, plural(nameCount)))
				d = d.WithAnnotation(values.tokRange, fmt.Sprintf("%d value%s", valueCount, plural(valueCount)))
				p.report(d)
				return nil, false
			}

			if names.rng != nil {
				for i := uint32(0); i != nameCount; i++ {
					result.Append(
						fmt.Sprintf("%s%d", names.prefix, names.rng.at(i)),
						values.at(i),
					)
				}
			} else {
				result.Append(names.prefix, values.begin)
			}
		} else {
			if names.rng != nil {
				for i := uint32(0); i != names.rng.size(); i++ {
					result.AppendNext(fmt.Sprintf("%s%d", names.prefix, names.rng.at(i)))
				}
			} else {
				result.AppendNext(names.prefix)
			}
		}

		if p.lexer.CurrentToken().Is(PunctuatorComma) {
			// Eat the `,`.
			p.lexer.NextToken()
		} else {
			break
		}
	}

	return result, true
}

// parseRegisterCategoryConcatenation handles a category defined by combining
// previously defined categories, e.g.
//
//	Integer = Integer8 + Integer16 + Integer32 + Integer64;
func (p *ISAParser) parseRegisterCategoryConcatenation(registers RegisterTable) (*RegisterGroup, bool) {
	result := &RegisterGroup{}
	for {
		if !p.expectNext(Identifier) {
			return nil, false
		}

		categoryName := p.lexer.CurrentToken().Content
		group, found := registers.Find(categoryName)
		if !found {
			p.report(p.diagAtToken(
				p.lexer.CurrentToken(), DiagError,
				"Unknown register category", "", "",
			))
			return nil, false
		}
		result.ConcatWith(group)

		if p.lexer.NextToken().IsNot(PunctuatorPlus) {
			break
		}
	}

	return result, true
}

func (p *ISAParser) parseRegisterCategory(registers RegisterTable) (*RegisterGroup, bool) {
	if !p.expectNext(Identifier, PunctuatorEqual, String) {
		return nil, false
	}

	if p.lexer.CurrentToken().Is(PunctuatorEqual) {
		return p.parseRegisterCategoryConcatenation(registers)
	}
	return p.parseRegisterList()
}

func (p *ISAParser) parseRegisters() (RegisterTable, bool) {
	result := make(RegisterTable)
	hasErrors := false

	for p.lexer.NextToken().Is(Identifier) {
		categoryNameToken := p.lexer.CurrentToken()

		if group, ok := p.parseRegisterCategory(result); ok {
			if _, exists := result[categoryNameToken.Content]; exists {
				p.report(p.diagAtToken(
					categoryNameToken, DiagError,
					"Duplicate register category name", "", "",
				))
				hasErrors = true
			} else {
				result[categoryNameToken.Content] = group
			}

			if p.expectCurrent(PunctuatorSemi) {
				continue
			}
		}

		// The category is invalid. Skip to the terminating semicolon.
		hasErrors = true
		p.recoverUntil(PunctuatorSemi, false)
	}

	if hasErrors {
		return nil, false
	}
	return result, true
}

// resolveTableElement evaluates one key or value element of a table row: a
// plain integer, the wildcard `-`, a `category@name` register reference, or
// a bare single character standing for its ordinal value.
//
// The lexer is advanced exactly once on every exit path, via defer so new
// failure paths cannot desynchronize the token stream.
func (p *ISAParser) resolveTableElement(registers RegisterTable) (uint32, bool) {
	if !p.expectCurrent(Integer, Identifier, String, PunctuatorMinus) {
		return 0, false
	}

	defer p.lexer.NextToken()

	switch tok := p.lexer.CurrentToken(); tok.Kind {
	case Integer:
		value, ok := p.expectIntegerConstant(tok, 32, false)
		return uint32(value), ok

	case PunctuatorMinus:
		return MatchAny, true

	default:
		// Cases like `Predicate@P0` or `'&'`.
		categoryToken := tok
		category, ok := p.getIdentifierOrString(categoryToken)
		if !ok {
			return 0, false
		}

		if p.lexer.NextToken().Is(PunctuatorAt) {
			name, nameOK := p.expectIdentifierOrString(p.lexer.NextToken())
			if !nameOK {
				return 0, false
			}

			group, found := registers.Find(category)
			if !found {
				p.report(p.diagAtToken(
					categoryToken, DiagError,
					"Unknown register category", "", "",
				))
				return 0, false
			}

			value, valueOK := group.Find(name)
			if !valueOK {
				p.report(p.diagAtToken(
					p.lexer.CurrentToken(), DiagError,
					"Unknown register name", "", "",
				))
				return 0, false
			}
			return value, true
		}

		// Special case used by the FixLatDestMap table: a bare single
		// character stands for its ordinal value.
		if len(category) != 1 {
			p.report(p.diagAtToken(categoryToken, DiagError, "Invalid table element", "", ""))
			return 0, false
		}
		return uint32(category[0]), true
	}
}

func (p *ISAParser) parseSingleTable(registers RegisterTable) (*Table, bool) {
	result := &Table{}
	for p.lexer.CurrentToken().IsNot(PunctuatorSemi) {
		var keys []uint32
		var keyRanges []TokenRange

		for p.lexer.CurrentToken().IsNot(PunctuatorArrow) {
			keyRanges = append(keyRanges, p.lexer.CurrentToken().Range())

			key, ok := p.resolveTableElement(registers)
			if !ok {
				p.recoverUntil(PunctuatorSemi, false)
				return nil, false
			}
			keys = append(keys, key)
		}

		if result.KeySize() == 0 {
			// The first row determines the key count.
			result.SetKeySize(len(keys))
		} else if result.KeySize() != len(keys) {
			verb := "is"
			if len(keys) > 1 {
				verb = "are"
			}
			d := NewDiag(DiagError, fmt.Sprintf(
				"The table expects %d key%s, but %d %s provided.",
				result.KeySize(), plural(uint32(result.KeySize())), len(keys), verb,
			)).WithOrigin(p.origin)

			if result.KeySize() < len(keys) {
				for _, r := range keyRanges[result.KeySize() : len(keyRanges)-1] {
					d = d.WithAnnotation(r, "")
				}
				d = d.WithAnnotation(keyRanges[len(keyRanges)-1], "unexpected keys")
			} else {
				missing := result.KeySize() - len(keys)
				// A row may have no keys at all (a stray `->`); anchor the
				// annotation at the current token then.
				anchor := p.lexer.CurrentToken().Range()
				if len(keyRanges) != 0 {
					end := keyRanges[len(keyRanges)-1].End
					anchor = TokenRange{Begin: end, End: end}
				}
				d = d.WithAnnotation(
					anchor,
					fmt.Sprintf("missing %d key%s", missing, plural(uint32(missing))),
				)
			}

			p.report(d)
			p.recoverUntil(PunctuatorSemi, false)
			return nil, false
		}

		// Eat the `->`.
		p.lexer.NextToken()

		value, ok := p.resolveTableElement(registers)
		if !ok {
			p.recoverUntil(PunctuatorSemi, false)
			return nil, false
		}
		result.AppendRow(keys, value)
	}

	return result, true
}

func (p *ISAParser) parseTables(registers RegisterTable) (map[string]*Table, bool) {
	result := make(map[string]*Table)
	hasErrors := false

	for p.lexer.NextToken().Is(Identifier) {
		tableNameToken := p.lexer.CurrentToken()
		// Consume the name token.
		p.lexer.NextToken()

		table, ok := p.parseSingleTable(registers)
		if !ok {
			hasErrors = true
			continue
		}

		if _, exists := result[tableNameToken.Content]; exists {
			p.report(p.diagAtToken(tableNameToken, DiagError, "Duplicate table name", "", ""))
			hasErrors = true
			continue
		}
		result[tableNameToken.Content] = table
	}

	if hasErrors {
		return nil, false
	}
	return result, true
}

// parseIdentifierList parses a whitespace-separated identifier list
// terminated by a `;`. The list may be empty.
func (p *ISAParser) parseIdentifierList() ([]string, bool) {
	var result []string
	for {
		if !p.expectCurrent(Identifier, PunctuatorSemi) {
			p.recoverUntil(PunctuatorSemi, true)
			return nil, false
		}
		if p.lexer.CurrentToken().Is(PunctuatorSemi) {
			break
		}

		result = append(result, p.lexer.CurrentToken().Content)
		p.lexer.NextToken()
	}

	// Eat the `;`.
	p.lexer.NextToken()
	return result, true
}

func (p *ISAParser) parseOperationProperties() ([]string, bool) {
	// Eat the keyword.
	p.lexer.NextToken()
	return p.parseIdentifierList()
}

func (p *ISAParser) parseOperationPredicates() ([]string, bool) {
	// Eat the keyword.
	p.lexer.NextToken()
	return p.parseIdentifierList()
}

func (p *ISAParser) parseEncodingWidth() (uint32, bool) {
	if val, ok := p.expectIntegerConstant(p.lexer.CurrentToken(), 32, false); ok {
		width := uint32(val)
		if width == 0 || width > 128 {
			p.report(p.diagAtToken(
				p.lexer.CurrentToken(), DiagError,
				"Invalid encoding width", "", "",
			))
		} else if p.expectNext(PunctuatorSemi) {
			return width, true
		}
	}

	p.recoverUntil(PunctuatorSemi, false)
	return 0, false
}

func (p *ISAParser) parseBitmask(encodingWidth uint32) (BitMask, bool) {
	bitmaskToken := p.lexer.CurrentToken()
	bitmaskStr, ok := p.getStringLiteral(bitmaskToken)
	if !ok {
		return nil, false
	}

	if uint32(len(bitmaskStr)) != encodingWidth {
		p.report(p.diagAtToken(
			bitmaskToken, DiagError,
			fmt.Sprintf(
				"The bitmask must be %d bits long, but got %d bits",
				encodingWidth, len(bitmaskStr),
			),
			"", "",
		))
		return nil, false
	}

	for i := 0; i < len(bitmaskStr); i++ {
		if c := bitmaskStr[i]; c != '.' && c != 'X' {
			// The +1 skips the opening quote of the string literal.
			charPos := bitmaskToken.LocationBegin() + 1 + i
			p.report(p.diagAtRange(
				TokenRange{Begin: charPos, End: charPos + 1},
				DiagError,
				fmt.Sprintf("Invalid character `%c` in bitmask", c),
				"",
				"Only `X` and `.` are allowed",
			))
			return nil, false
		}
	}

	return NewBitMask(bitmaskStr), true
}

func (p *ISAParser) parseFunctionalUnit() (FunctionalUnit, bool) {
	hasErrors := false
	var result FunctionalUnit

	if p.expectNext(Identifier) {
		result.SetName(p.lexer.CurrentToken().Content)
	} else {
		hasErrors = true
	}

	// ENCODING is a keyword, so an item name starting with it needs the
	// extra disjunct below.
	for p.lexer.NextToken().Is(Identifier) || p.lexer.CurrentToken().Is(KeywordEncoding) {
		// An item name may consist of several identifiers, merged into one.
		itemName := p.lexer.CurrentToken()

		p.lexer.NextToken()
		p.lexer.LexUntil(func(tok Token) bool {
			if tok.Is(Identifier) {
				itemName = MergeTokens(p.lexer.Source(), itemName, tok, Identifier)
				return false
			}
			return true
		}, false)

		if itemName.Content == "ENCODING WIDTH" {
			if width, ok := p.parseEncodingWidth(); ok {
				result.SetEncodingWidth(width)
			} else {
				hasErrors = true
			}
		} else if p.lexer.CurrentToken().Is(String) {
			// String values are recognized as bitmasks.
			if mask, ok := p.parseBitmask(result.EncodingWidth()); ok {
				if result.AddBitmask(itemName.Content, mask) {
					continue
				}
				p.report(p.diagAtToken(itemName, DiagError, "Duplicate bitmask name", "", ""))
			}
			hasErrors = true
		} else {
			// Items of any other shape are not understood; skip them.
			p.recoverUntil(PunctuatorSemi, false)
		}
	}

	if hasErrors {
		return FunctionalUnit{}, false
	}
	return result, true
}

func plural(n uint32) string {
	if n > 1 {
		return "s"
	}
	return ""
}
