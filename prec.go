package calc

import (
	"math"
	"strconv"
)

// precedence is a binding strength. Higher binds tighter.
type precedence uint8

const (
	precNone precedence = iota
	// precPrimary is the threshold for parenthesized groups and function
	// arguments. Every operator meets it.
	precPrimary
	precTernary
	precCoalescing
	precLogicalOr
	precLogicalAnd
	precBitwiseOr
	precBitwiseXor
	precBitwiseAnd
	precEquality
	precRelational
	precShift
	precAdditive
	precMultiplicative
	precUnaryPrefix
	precExponentiation
)

var precnames = [...]string{
	precNone:           "None",
	precPrimary:        "Primary",
	precTernary:        "Ternary",
	precCoalescing:     "Coalescing",
	precLogicalOr:      "LogicalOr",
	precLogicalAnd:     "LogicalAnd",
	precBitwiseOr:      "BitwiseOr",
	precBitwiseXor:     "BitwiseXor",
	precBitwiseAnd:     "BitwiseAnd",
	precEquality:       "Equality",
	precRelational:     "Relational",
	precShift:          "Shift",
	precAdditive:       "Additive",
	precMultiplicative: "Multiplicative",
	precUnaryPrefix:    "UnaryPrefix",
	precExponentiation: "Exponentiation",
}

func (p precedence) String() string {
	if int(p) < len(precnames) {
		return precnames[p]
	}
	return "precedence(" + strconv.Itoa(int(p)) + ")"
}

// binds reports whether an operator of precedence p may be consumed by an
// evaluation level whose threshold is parent. A unary sign is always allowed
// as the right operand of exponentiation, so that 2**-1 works.
func (p precedence) binds(parent precedence) bool {
	return p >= parent || parent == precExponentiation && p == precUnaryPrefix
}

// operator is an operator resolved by the lexer. It lives only for the
// duration of one combination step.
type operator uint8

const (
	opNone operator = iota
	opAdd
	opSubtract
	opMultiply
	opDivide
	opFloorDivide
	opRemainder
	opExponent
	opLogicalNot
	opBitwiseNot
	opLeftShift
	opRightShift
	opLessThan
	opLessEqual
	opGreaterThan
	opGreaterEqual
	opEqual
	opUnequal
	opBitwiseAnd
	opBitwiseXor
	opBitwiseOr
	opLogicalAnd
	opLogicalOr
	opCoalesce
	opTernary
)

var opnames = [...]string{
	opNone:         "",
	opAdd:          "+",
	opSubtract:     "-",
	opMultiply:     "*",
	opDivide:       "/",
	opFloorDivide:  "//",
	opRemainder:    "%",
	opExponent:     "**",
	opLogicalNot:   "!",
	opBitwiseNot:   "~",
	opLeftShift:    "<<",
	opRightShift:   ">>",
	opLessThan:     "<",
	opLessEqual:    "<=",
	opGreaterThan:  ">",
	opGreaterEqual: ">=",
	opEqual:        "==",
	opUnequal:      "!=",
	opBitwiseAnd:   "&",
	opBitwiseXor:   "^",
	opBitwiseOr:    "|",
	opLogicalAnd:   "&&",
	opLogicalOr:    "||",
	opCoalesce:     "??",
	opTernary:      "?",
}

func (op operator) String() string {
	if int(op) < len(opnames) {
		return opnames[op]
	}
	return "operator(" + strconv.Itoa(int(op)) + ")"
}

// rhs returns the threshold at which to evaluate the right operand of an
// operator lexed with precedence p.
//
// By default every operator recurses at its own precedence, so a chain of
// equal-precedence operators is absorbed by the right-hand call and folds
// right: 2-3-4 is 2-(3-4). With left set, binary operators from logical-or
// through multiplicative recurse one level higher and chains fold left in
// the caller's loop instead.
func (p precedence) rhs(left bool) precedence {
	if left && p >= precLogicalOr && p <= precMultiplicative {
		return p + 1
	}
	return p
}

// apply combines the held value with the right operand. Unary operators
// receive the zero accumulator as result. Ternary is handled by the
// evaluator, since it needs a second operand.
func (op operator) apply(result, value float64) float64 {
	switch op {
	case opAdd:
		return result + value
	case opSubtract:
		return result - value
	case opMultiply:
		return result * value
	case opDivide:
		return result / value
	case opFloorDivide:
		return math.Floor(result / value)
	case opRemainder:
		return math.Mod(result, value)
	case opExponent:
		return math.Pow(result, value)
	case opLogicalNot:
		return truth(value == 0)
	case opBitwiseNot:
		return float64(^int64(value))
	case opLeftShift:
		return float64(int64(result) << shiftCount(value))
	case opRightShift:
		return float64(int64(result) >> shiftCount(value))
	case opLessThan:
		return truth(result < value)
	case opLessEqual:
		return truth(result <= value)
	case opGreaterThan:
		return truth(result > value)
	case opGreaterEqual:
		return truth(result >= value)
	case opEqual:
		return truth(result == value)
	case opUnequal:
		return truth(result != value)
	case opBitwiseAnd:
		return float64(int64(result) & int64(value))
	case opBitwiseXor:
		return float64(int64(result) ^ int64(value))
	case opBitwiseOr:
		return float64(int64(result) | int64(value))
	case opLogicalAnd:
		return truth(result != 0 && value != 0)
	case opLogicalOr:
		return truth(result != 0 || value != 0)
	case opCoalesce:
		if result == 0 {
			return value
		}
		return result
	default:
		panic("calc: apply on " + op.String())
	}
}

// truth converts a comparison to 1 or 0.
func truth(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// shiftCount truncates a shift operand the way amd64 does: only the low six
// bits of the count matter.
func shiftCount(value float64) uint {
	return uint(int(value)) & 63
}
