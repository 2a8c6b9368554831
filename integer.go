package sassas

import (
	"fmt"
	"math"
)

// getIntegerConstant evaluates the content of an Integer token (optionally
// preceded by a sign the parser folded into the token) against a bit width.
// The result is the value reduced to the requested width, so a negative
// signed constant comes back as its two's-complement bit pattern. Diagnostics
// point at the offending characters inside the token, not just the token as a
// whole.
//
// 0b/0B selects binary, 0x/0X hexadecimal, a leading 0 with more digits
// octal, anything else decimal. Underscores may separate digits but cannot
// lead, trail or repeat.
func (p *parserCore) getIntegerConstant(tok Token, bits uint, signed bool) (uint64, bool) {
	if bits == 0 || bits > 64 {
		panic("getIntegerConstant: invalid bit width")
	}

	content := tok.Content
	// charRange maps an index range inside the token content back to source
	// offsets for a precise annotation.
	charRange := func(begin, end int) TokenRange {
		return TokenRange{Begin: tok.Offset + begin, End: tok.Offset + end}
	}
	fail := func(r TokenRange, message, label string) (uint64, bool) {
		p.report(p.diagAtRange(r, DiagError, message, label, ""))
		return 0, false
	}

	i := 0
	for i < len(content) && isSpace(content[i]) {
		i++
	}

	negative := false
	if i < len(content) && (content[i] == '+' || content[i] == '-') {
		if !signed {
			return fail(
				charRange(i, i+1),
				"Invalid integer constant",
				"sign is not allowed in an unsigned constant",
			)
		}
		negative = content[i] == '-'
		i++
		for i < len(content) && isSpace(content[i]) {
			i++
		}
	}

	if i == len(content) {
		return fail(tok.Range(), "Invalid integer constant", "missing digits")
	}

	base := uint64(10)
	baseName := "decimal"
	if content[i] == '0' && i+1 < len(content) {
		switch content[i+1] {
		case 'b', 'B':
			base, baseName = 2, "binary"
			i += 2
		case 'x', 'X':
			base, baseName = 16, "hexadecimal"
			i += 2
		default:
			base, baseName = 8, "octal"
			i++
		}
	}

	digitValue := func(c byte) (uint64, bool) {
		switch {
		case c >= '0' && c <= '9':
			return uint64(c - '0'), true
		case c >= 'a' && c <= 'f':
			return uint64(c-'a') + 10, true
		case c >= 'A' && c <= 'F':
			return uint64(c-'A') + 10, true
		}
		return 0, false
	}

	var value uint64
	sawDigit := false
	lastWasSep := false
	digitsBegin := i
	for ; i < len(content); i++ {
		c := content[i]
		if c == '_' {
			if !sawDigit || lastWasSep {
				return fail(
					charRange(i, i+1),
					"Invalid integer constant",
					"a digit separator must be surrounded by digits",
				)
			}
			lastWasSep = true
			continue
		}
		lastWasSep = false

		d, ok := digitValue(c)
		if !ok || d >= base {
			return fail(
				charRange(i, i+1),
				"Invalid integer constant",
				fmt.Sprintf("invalid digit `%c` in a %s constant", c, baseName),
			)
		}
		if value > (math.MaxUint64-d)/base {
			return fail(
				tok.Range(),
				"Integer constant is too large",
				fmt.Sprintf("the value does not fit in %d bits", bits),
			)
		}
		value = value*base + d
		sawDigit = true
	}

	if !sawDigit {
		return fail(
			charRange(digitsBegin, len(content)),
			"Invalid integer constant",
			"missing digits",
		)
	}
	if lastWasSep {
		return fail(
			charRange(len(content)-1, len(content)),
			"Invalid integer constant",
			"a digit separator must be surrounded by digits",
		)
	}

	mask := uint64(math.MaxUint64)
	if bits < 64 {
		mask = (uint64(1) << bits) - 1
	}

	if signed {
		maxPositive := (mask >> 1)
		maxNegative := maxPositive + 1
		if negative {
			if value > maxNegative {
				return fail(
					tok.Range(),
					"Integer constant is out of range",
					fmt.Sprintf(
						"the value must be in the range [-%d, %d]",
						maxNegative, maxPositive,
					),
				)
			}
			return (-value) & mask, true
		}
		if value > maxPositive {
			return fail(
				tok.Range(),
				"Integer constant is out of range",
				fmt.Sprintf(
					"the value must be in the range [-%d, %d]",
					maxNegative, maxPositive,
				),
			)
		}
		return value, true
	}

	if value > mask {
		return fail(
			tok.Range(),
			"Integer constant is out of range",
			fmt.Sprintf("the value must be in the range [0, %d]", mask),
		)
	}
	return value, true
}

// expectIntegerConstant checks the token kind before evaluating it.
func (p *parserCore) expectIntegerConstant(tok Token, bits uint, signed bool) (uint64, bool) {
	if !p.expect(tok, Integer) {
		return 0, false
	}
	return p.getIntegerConstant(tok, bits, signed)
}
