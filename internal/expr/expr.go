package expr

import (
	"fmt"
	"math"
	"strconv"

	"github.com/Knetic/govaluate"
)

// Expression is a compiled, immutable single-variable expression.
type Expression struct {
	src      string
	compiled *govaluate.EvaluableExpression
	constant *float64
}

// Compile parses src. Errors wrap ErrParse.
func Compile(src string) (*Expression, error) {
	norm, err := Normalize(src)
	if err != nil {
		return nil, fmt.Errorf("%q: %w", src, err)
	}
	compiled, err := govaluate.NewEvaluableExpressionWithFunctions(norm, functions)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrParse, src, err)
	}
	for _, v := range compiled.Vars() {
		if v == Variable {
			continue
		}
		if _, ok := constants[v]; !ok {
			return nil, fmt.Errorf("%w: %q: unknown identifier %q", ErrParse, src, v)
		}
	}
	return &Expression{src: src, compiled: compiled}, nil
}

// MustCompile is like Compile but panics on error.
func MustCompile(src string) *Expression {
	e, err := Compile(src)
	if err != nil {
		panic(err)
	}
	return e
}

// Constant returns an expression that evaluates to v everywhere.
func Constant(v float64) *Expression {
	return &Expression{src: strconv.FormatFloat(v, 'g', -1, 64), constant: &v}
}

// Zero is the constant-zero expression.
func Zero() *Expression { return Constant(0) }

// Eval evaluates the expression at x. On failure it returns NaN and an error
// wrapping ErrEval.
func (e *Expression) Eval(x float64) (float64, error) {
	if e.constant != nil {
		return *e.constant, nil
	}
	params := make(map[string]interface{}, len(constants)+1)
	for k, v := range constants {
		params[k] = v
	}
	params[Variable] = x

	v, err := e.compiled.Evaluate(params)
	if err != nil {
		return math.NaN(), fmt.Errorf("%w: %s at x=%g: %v", ErrEval, e.src, x, err)
	}
	y, err := toFloat(v)
	if err != nil {
		return math.NaN(), fmt.Errorf("%s at x=%g: %w", e.src, x, err)
	}
	return y, nil
}

// Func adapts the expression to a plain function value.
func (e *Expression) Func() func(float64) (float64, error) {
	return e.Eval
}

func (e *Expression) String() string { return e.src }
