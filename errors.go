package calc

import "strconv"

// SyntaxError is the failure of an evaluation. Every way an expression can
// fail, e.g. an unknown function, a missing close parenthesis, or recursion
// past the context's depth limit, produces this one kind of error; the only
// detail is where the evaluator stopped. It implements InputError.
type SyntaxError struct {
	// Offset is the byte offset at which scanning stopped.
	Offset int
	// Near is the unconsumed input starting at Offset.
	Near string
}

func (err *SyntaxError) Error() string {
	if err.Near == "" {
		return errpos(err.Offset, "failed at end of input")
	}
	return errpos(err.Offset, "failed near "+strconv.Quote(err.Near))
}

func (err *SyntaxError) Pos() int {
	return err.Offset
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// InputError is an error with position information. Every error resulting from
// invalid input implements InputError.
type InputError interface {
	error
	// Pos returns the position of the error as a byte offset into the input.
	Pos() int
}

var _ InputError = (*SyntaxError)(nil)
