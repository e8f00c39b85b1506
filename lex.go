package calc

import (
	"errors"
	"math"
	"strconv"
)

// at returns the byte at i, or 0 past the end of the input. A NUL byte also
// terminates the input.
func at(src string, i int) byte {
	if i < len(src) {
		return src[i]
	}
	return 0
}

// isSpace reports whether ch is skipped between tokens. Every control byte
// counts, not just the usual whitespace.
func isSpace(ch byte) bool {
	return ch <= ' '
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}

// isNameStart and isNameChar classify identifier bytes. Names are lowercase.
func isNameStart(ch byte) bool {
	return 'a' <= ch && ch <= 'z'
}

func isNameChar(ch byte) bool {
	return isNameStart(ch) || isDigit(ch)
}

// isPrimaryStart reports whether ch begins a number, group, or identifier.
func isPrimaryStart(ch byte) bool {
	return isDigit(ch) || ch == '.' || ch == '(' || isNameStart(ch)
}

// radix returns the base selected by the marker byte following a leading 0,
// or 0 if ch is not a marker. Case is ignored by folding in the lowercase bit.
func radix(ch byte) int {
	switch ch | 0x20 {
	case 'x':
		return 16
	case 'b':
		return 2
	case 'o':
		return 8
	}
	return 0
}

// scanNumber scans a numeric literal starting at pos, which must hold a digit
// or '.'. It returns the value and the position following the literal. If no
// literal could be scanned, ok is false and end is the failure position.
func scanNumber(src string, pos int) (v float64, end int, ok bool) {
	if src[pos] == '0' {
		if base := radix(at(src, pos+1)); base != 0 {
			n, end, ok := scanInt(src, pos+2, base)
			return float64(n), end, ok
		}
	}
	return scanDecimal(src, pos)
}

// scanDecimal scans the longest prefix at pos that is a valid decimal
// floating-point literal: digits, an optional fraction, and an optional
// exponent. An exponent marker with no digits after it is left unconsumed.
func scanDecimal(src string, pos int) (float64, int, bool) {
	i := pos
	digits := 0
	for isDigit(at(src, i)) {
		i++
		digits++
	}
	if at(src, i) == '.' {
		i++
		for isDigit(at(src, i)) {
			i++
			digits++
		}
	}
	if digits == 0 {
		return 0, pos, false
	}
	if c := at(src, i); c == 'e' || c == 'E' {
		j := i + 1
		if c := at(src, j); c == '+' || c == '-' {
			j++
		}
		if isDigit(at(src, j)) {
			for isDigit(at(src, j)) {
				j++
			}
			i = j
		}
	}
	v, err := strconv.ParseFloat(src[pos:i], 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		// The scan above only admits valid syntax.
		panic("calc: bad decimal literal " + strconv.Quote(src[pos:i]) + ": " + err.Error())
	}
	// On ErrRange, v is already ±Inf or 0.
	return v, i, true
}

// scanInt scans a signed integer in the given base starting at pos, the way
// C's strtoll does: leading space and a sign are allowed, a base 16 number
// may repeat its 0x prefix, and out of range values saturate.
func scanInt(src string, pos, base int) (int64, int, bool) {
	i := pos
	for isCSpace(at(src, i)) {
		i++
	}
	neg := false
	switch at(src, i) {
	case '-':
		neg = true
		i++
	case '+':
		i++
	}
	if base == 16 && at(src, i) == '0' && at(src, i+1)|0x20 == 'x' && digitVal(at(src, i+2)) < 16 {
		i += 2
	}
	var (
		n    uint64
		over bool
	)
	start := i
	for {
		d := digitVal(at(src, i))
		if d >= base {
			break
		}
		if !over {
			if n > (math.MaxUint64-uint64(d))/uint64(base) {
				over = true
			} else {
				n = n*uint64(base) + uint64(d)
			}
		}
		i++
	}
	if i == start {
		return 0, pos, false
	}
	switch {
	case neg && (over || n > 1<<63):
		return math.MinInt64, i, true
	case neg:
		return -int64(n), i, true
	case over || n > math.MaxInt64:
		return math.MaxInt64, i, true
	}
	return int64(n), i, true
}

// isCSpace is C's isspace, which strtoll uses to skip leading blanks.
func isCSpace(ch byte) bool {
	switch ch {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

// digitVal returns the value of ch as a digit in bases up to 36, or 36 if it
// is not a digit.
func digitVal(ch byte) int {
	switch {
	case '0' <= ch && ch <= '9':
		return int(ch - '0')
	case 'a' <= ch|0x20 && ch|0x20 <= 'z':
		return int(ch|0x20-'a') + 10
	}
	return 36
}

// lexOperator resolves the operator starting at pos. held tells whether the
// evaluator already holds a value, which decides whether + and - are signs
// or additive operators. The result is the operator, its precedence, and the
// position after it. An unrecognized byte yields precNone.
func lexOperator(src string, pos int, held bool) (operator, precedence, int) {
	next := at(src, pos+1)
	switch src[pos] {
	case '+':
		if held {
			return opAdd, precAdditive, pos + 1
		}
		return opAdd, precUnaryPrefix, pos + 1
	case '-':
		if held {
			return opSubtract, precAdditive, pos + 1
		}
		return opSubtract, precUnaryPrefix, pos + 1
	case '*':
		if next == '*' {
			return opExponent, precExponentiation, pos + 2
		}
		return opMultiply, precMultiplicative, pos + 1
	case '/':
		if next == '/' {
			return opFloorDivide, precMultiplicative, pos + 2
		}
		return opDivide, precMultiplicative, pos + 1
	case '%':
		return opRemainder, precMultiplicative, pos + 1
	case '!':
		if next == '=' {
			return opUnequal, precEquality, pos + 2
		}
		return opLogicalNot, precUnaryPrefix, pos + 1
	case '~':
		return opBitwiseNot, precUnaryPrefix, pos + 1
	case '<':
		switch next {
		case '<':
			return opLeftShift, precShift, pos + 2
		case '=':
			return opLessEqual, precRelational, pos + 2
		}
		return opLessThan, precRelational, pos + 1
	case '>':
		switch next {
		case '>':
			return opRightShift, precShift, pos + 2
		case '=':
			return opGreaterEqual, precRelational, pos + 2
		}
		return opGreaterThan, precRelational, pos + 1
	case '=':
		if next == '=' {
			return opEqual, precEquality, pos + 2
		}
	case '&':
		if next == '&' {
			return opLogicalAnd, precLogicalAnd, pos + 2
		}
		return opBitwiseAnd, precBitwiseAnd, pos + 1
	case '^':
		return opBitwiseXor, precBitwiseXor, pos + 1
	case '|':
		if next == '|' {
			return opLogicalOr, precLogicalOr, pos + 2
		}
		return opBitwiseOr, precBitwiseOr, pos + 1
	case '?':
		if next == ':' || next == '?' {
			return opCoalesce, precCoalescing, pos + 2
		}
		return opTernary, precTernary, pos + 1
	}
	return opNone, precNone, pos
}
