package calc

import "math"

// DefaultMaxDepth is the recursion limit of a context created without the
// MaxDepth option.
const DefaultMaxDepth = 10000

// Context is a context for evaluating expressions. It remembers where the
// last evaluation stopped and whether it failed. It is not safe to use a
// Context concurrently; use Clone to get an independent one.
type Context struct {
	src      string
	end      int
	failed   bool
	maxDepth int
	left     bool
}

// ContextOption is an option used when creating a context.
type ContextOption interface {
	ctxOption()
}

type (
	depthopt int
	assocopt bool
)

func (depthopt) ctxOption() {}
func (assocopt) ctxOption() {}

// MaxDepth limits how deeply evaluation may recurse. Nesting parentheses,
// function arguments, and chains of operators all recurse. Evaluation fails
// at the position where the limit is exceeded. A limit of zero or less
// removes the bound entirely.
func MaxDepth(n int) ContextOption {
	return depthopt(n)
}

// LeftAssociative sets whether chains of equal-precedence binary operators
// fold left. By default the right operand of every operator is evaluated at
// that operator's own precedence, which absorbs the rest of the chain, so
// that 2-3-4 is 3. With LeftAssociative(true), 2-3-4 is -5.
// Exponentiation, coalescing, and the conditional operator are unaffected.
func LeftAssociative(on bool) ContextOption {
	return assocopt(on)
}

// NewContext creates a new evaluation context.
func NewContext(opts ...ContextOption) *Context {
	ctx := Context{maxDepth: DefaultMaxDepth}
	return ctx.Clone(opts...)
}

// Clone creates a copy of the context's configuration and applies options to
// it. The returned context has no result.
func (ctx *Context) Clone(opts ...ContextOption) *Context {
	n := Context{
		maxDepth: ctx.maxDepth,
		left:     ctx.left,
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		switch opt := opt.(type) {
		case depthopt:
			n.maxDepth = int(opt)
		case assocopt:
			n.left = bool(opt)
		default:
			panic("calc: unknown option type")
		}
	}
	return &n
}

// Reset clears the result of the last evaluation.
func (ctx *Context) Reset() {
	ctx.src = ""
	ctx.end = 0
	ctx.failed = false
}

// Eval evaluates an expression and returns the result. Evaluation stops at
// the first byte that cannot continue the expression; End reports where.
// Input after that point is ignored unless the expression is incomplete
// there, in which case Failed reports true. On failure the result is the
// value accumulated before the failure.
func (ctx *Context) Eval(src string) float64 {
	ctx.Reset()
	e := evaluator{src: src, maxDepth: ctx.maxDepth, left: ctx.left}
	r, end, ok := e.expr(0, precNone, 0)
	ctx.src = src
	ctx.end = end
	ctx.failed = !ok
	return r
}

// EvalBytes is like Eval but takes the expression as bytes.
func (ctx *Context) EvalBytes(src []byte) float64 {
	return ctx.Eval(string(src))
}

// End returns the byte offset at which the last evaluation stopped.
func (ctx *Context) End() int {
	return ctx.end
}

// Failed returns whether the last evaluation failed.
func (ctx *Context) Failed() bool {
	return ctx.failed
}

// Err returns a *SyntaxError describing the failure of the last evaluation,
// or nil if it succeeded.
func (ctx *Context) Err() error {
	if !ctx.failed {
		return nil
	}
	near := ""
	if ctx.end < len(ctx.src) {
		near = ctx.src[ctx.end:]
	}
	return &SyntaxError{Offset: ctx.end, Near: near}
}

// MaxDepth returns the context's recursion limit.
func (ctx *Context) MaxDepth() int {
	return ctx.maxDepth
}

// Eval is a shortcut to evaluate an expression with a new context. If
// evaluation fails, the error is a *SyntaxError.
func Eval(src []byte, opts ...ContextOption) (float64, error) {
	return EvalString(string(src), opts...)
}

// EvalString is a shortcut to evaluate a string expression.
func EvalString(src string, opts ...ContextOption) (float64, error) {
	ctx := NewContext(opts...)
	r := ctx.Eval(src)
	return r, ctx.Err()
}

// evaluator scans, parses, and evaluates in a single pass. It holds only
// immutable input and configuration; positions travel through arguments and
// return values.
type evaluator struct {
	src      string
	maxDepth int
	left     bool
}

// expr evaluates operators of at least the parent precedence starting at pos.
// It returns the accumulated value, the position where it stopped, and
// whether it produced a value. When ok is false, end is where the failure was
// detected and no caller may combine r.
func (e *evaluator) expr(pos int, parent precedence, depth int) (r float64, end int, ok bool) {
	if e.maxDepth > 0 && depth > e.maxDepth {
		return 0, pos, false
	}
	held := false
	for {
		ch := at(e.src, pos)
		if ch == 0 {
			break
		}
		if isSpace(ch) {
			pos++
			continue
		}
		if isPrimaryStart(ch) {
			if held {
				// Two primaries with no operator between them.
				return r, pos, false
			}
			v, n, ok := e.primary(pos, depth)
			if !ok {
				return v, n, false
			}
			r, pos, held = v, n, true
			continue
		}

		op, prec, n := lexOperator(e.src, pos, held)
		if prec == precNone || held != (prec != precUnaryPrefix) {
			break
		}
		if !prec.binds(parent) {
			break
		}
		v, n, ok := e.expr(n, prec.rhs(e.left), depth+1)
		if !ok {
			return r, n, false
		}
		pos = n
		if op == opTernary {
			if at(e.src, pos) != ':' {
				return r, pos, false
			}
			w, n, ok := e.expr(pos+1, prec, depth+1)
			if !ok {
				return r, n, false
			}
			pos = n
			if r != 0 {
				r = v
			} else {
				r = w
			}
			held = true
			continue
		}
		r = op.apply(r, v)
		held = true
	}
	return r, pos, held
}

// primary evaluates one number, parenthesized group, or identifier at pos.
// A group that fails still reports what it accumulated.
func (e *evaluator) primary(pos, depth int) (float64, int, bool) {
	switch ch := e.src[pos]; {
	case isDigit(ch), ch == '.':
		return scanNumber(e.src, pos)
	case ch == '(':
		v, n, ok := e.expr(pos+1, precPrimary, depth+1)
		if !ok || at(e.src, n) != ')' {
			return v, n, false
		}
		return v, n + 1, true
	default:
		return e.ident(pos, depth)
	}
}

// ident evaluates a constant or function call at pos.
func (e *evaluator) ident(pos, depth int) (float64, int, bool) {
	end := pos + 1
	for isNameChar(at(e.src, end)) {
		end++
	}
	name := e.src[pos:end]
	switch {
	case len(name) == 1:
		if name == "e" {
			return math.E, end, true
		}
		return 0, pos, false
	case len(name) == 2:
		if name == "pi" {
			return math.Pi, end, true
		}
		return 0, pos, false
	case len(name) > maxFuncName:
		return 0, pos, false
	}
	p := end
	for c := at(e.src, p); c != 0 && isSpace(c); c = at(e.src, p) {
		p++
	}
	if at(e.src, p) != '(' {
		return 0, pos, false
	}
	f, ok := lookupFunc(name)
	if !ok {
		return 0, pos, false
	}
	x, n, ok := e.expr(p+1, precPrimary, depth+1)
	if !ok {
		return 0, n, false
	}
	if f.binary == nil {
		if at(e.src, n) != ')' {
			return 0, n, false
		}
		return f.unary(x), n + 1, true
	}
	if at(e.src, n) != ',' {
		return 0, n, false
	}
	y, n, ok := e.expr(n+1, precPrimary, depth+1)
	if !ok {
		return 0, n, false
	}
	if at(e.src, n) != ')' {
		return 0, n, false
	}
	return f.binary(x, y), n + 1, true
}
