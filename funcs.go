package calc

import "math"

// Func is a named math function of one or two float64 arguments that can be
// called from an expression. The set of functions is fixed; see Funcs.
type Func struct {
	name   string
	unary  func(x float64) float64
	binary func(x, y float64) float64
}

// monadic wraps a function of one variable.
func monadic(name string, f func(x float64) float64) Func {
	return Func{name: name, unary: f}
}

// dyadic wraps a function of two variables.
func dyadic(name string, f func(x, y float64) float64) Func {
	return Func{name: name, binary: f}
}

// Name returns the name used to call the function.
func (f Func) Name() string {
	return f.name
}

// Arity returns the number of arguments the function takes, 1 or 2.
func (f Func) Arity() int {
	if f.binary != nil {
		return 2
	}
	return 1
}

// Call calls the function. The result is false if the number of arguments
// does not match its arity.
func (f Func) Call(args ...float64) (float64, bool) {
	if len(args) != f.Arity() {
		return 0, false
	}
	if f.binary != nil {
		return f.binary(args[0], args[1]), true
	}
	return f.unary(args[0]), true
}

// maxFuncName is the length of the longest function name. Longer identifiers
// are never looked up.
const maxFuncName = 5

// funcs is the function table, scanned linearly by lookupFunc.
var funcs = [...]Func{
	monadic("abs", math.Abs),
	monadic("ceil", math.Ceil),
	monadic("floor", math.Floor),
	monadic("round", math.Round),
	monadic("trunc", math.Trunc),
	dyadic("min", fmin),
	dyadic("max", fmax),

	monadic("cbrt", math.Cbrt),
	monadic("exp", math.Exp),
	monadic("exp2", math.Exp2),
	dyadic("hypot", math.Hypot),
	monadic("log", math.Log),
	monadic("log10", math.Log10),
	monadic("log2", math.Log2),
	dyadic("pow", math.Pow),
	monadic("sqrt", math.Sqrt),

	monadic("acos", math.Acos),
	monadic("asin", math.Asin),
	monadic("atan", math.Atan),
	dyadic("atan2", math.Atan2),
	monadic("cos", math.Cos),
	monadic("sin", math.Sin),
	monadic("tan", math.Tan),
}

// Funcs returns a copy of the function table in lookup order.
func Funcs() []Func {
	r := make([]Func, len(funcs))
	copy(r, funcs[:])
	return r
}

// Constants returns the names of the built-in constants.
func Constants() []string {
	return []string{"e", "pi"}
}

// lookupFunc finds a function by exact name. The table is small enough that
// a linear scan beats hashing.
func lookupFunc(name string) (Func, bool) {
	for _, f := range funcs {
		if len(f.name) == len(name) && f.name == name {
			return f, true
		}
	}
	return Func{}, false
}

// fmin and fmax follow C: a NaN argument is ignored unless both are NaN.
// math.Min and math.Max propagate NaN instead.
func fmin(x, y float64) float64 {
	switch {
	case math.IsNaN(x):
		return y
	case math.IsNaN(y):
		return x
	}
	return math.Min(x, y)
}

func fmax(x, y float64) float64 {
	switch {
	case math.IsNaN(x):
		return y
	case math.IsNaN(y):
		return x
	}
	return math.Max(x, y)
}
