// Package calc implements a float64 calculator that scans, parses, and
// evaluates an expression in one pass, without building a syntax tree.
//
// The operator set borrows from several languages. From lowest to highest
// precedence:
//
//	a ? b : c          conditional
//	a ?? b, a ?: b     coalescing: b if a is 0
//	a || b             logical or
//	a && b             logical and
//	a | b              bitwise or
//	a ^ b              bitwise xor
//	a & b              bitwise and
//	a == b, a != b     equality
//	<  <=  >  >=       relational
//	a << b, a >> b     shifts
//	a + b, a - b       additive
//	*  /  //  %        multiplicative; // is floor division
//	+a -a !a ~a        prefix
//	a ** b             exponentiation
//
// Logical operators do not short-circuit, and both branches of a conditional
// are always evaluated. Bitwise and shift operators truncate their operands
// to int64. Any nonzero value is true; comparisons produce 1 or 0.
//
// A chain of operators with equal precedence folds to the right by default,
// so 2-3-4 is 3 and 2**3**2 is 512. LeftAssociative changes that for the
// binary operators from || through the multiplicative ones.
//
// Numbers are decimal floating-point literals like 1, .5, or 2.5e-3, or
// integers with a radix prefix: 0x1A, 0b101, 0o17. The constants e and pi
// and the functions listed by Funcs are available, e.g. sqrt(2) or
// atan2(1, 1).
//
// Functions and ** use the math package, which is not always correctly
// rounded, so a result may differ from the C library's in the last ulp.
package calc
