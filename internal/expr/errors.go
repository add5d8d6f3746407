package expr

import "errors"

var (
	// ErrParse indicates malformed expression text.
	ErrParse = errors.New("expr: cannot parse expression")

	// ErrEval indicates the expression could not be evaluated at a point.
	ErrEval = errors.New("expr: evaluation failed")
)
