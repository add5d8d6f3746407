package expr

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompile_ImplicitMultiplication(t *testing.T) {
	e, err := Compile("3sin(x)")
	require.NoError(t, err)

	for _, x := range []float64{0, 0.5, 1, math.Pi / 2, 7.3} {
		y, err := e.Eval(x)
		require.NoError(t, err)
		assert.InDelta(t, 3*math.Sin(x), y, 1e-9)
	}
}

func TestCompile_Grammar(t *testing.T) {
	tests := []struct {
		src  string
		x    float64
		want float64
	}{
		{"x^2 + 1", 3, 10},
		{"2(x+1)", 2, 6},
		{"(x+1)(x-1)", 3, 8},
		{"-x", 4, -4},
		{"2pi", 0, 2 * math.Pi},
		{"e^x", 1, math.E},
		{"sqrt(x)", 9, 3},
		{"pow(x, 3)", 2, 8},
		{"max(x, 1)", 0, 1},
		{"abs(x) / 2", -5, 2.5},
		{"ln(e)", 0, 1},
		{"sin(2x)", math.Pi / 4, 1},
		{"-x^2", 3, -9},
		{"-2^2", 0, -4},
		{"2^3^2", 0, 512},
		{"-x^2 + 4", 1, 3},
		{"e^-x^2", 1, math.Exp(-1)},
		{"2^-1", 0, 0.5},
		{"10-2-3", 0, 5},
		{"8/2/2", 0, 2},
		{"2x^2", 3, 18},
		{"1/2x", 4, 2},
		{"x - -1", 1, 2},
	}
	for _, tt := range tests {
		e, err := Compile(tt.src)
		require.NoError(t, err, tt.src)
		got, err := e.Eval(tt.x)
		require.NoError(t, err, tt.src)
		assert.InDelta(t, tt.want, got, 1e-9, tt.src)
	}
}

func TestCompile_Errors(t *testing.T) {
	for _, src := range []string{"notanumber(", "y + 1", "foo(x)", "sin(", ""} {
		_, err := Compile(src)
		assert.True(t, errors.Is(err, ErrParse), "source %q: got %v", src, err)
	}
}

func TestEval_DomainErrorIsNaN(t *testing.T) {
	e := MustCompile("log(x)")
	y, err := e.Eval(-1)
	require.NoError(t, err)
	assert.True(t, math.IsNaN(y))
}

func TestEval_WrongArity(t *testing.T) {
	e := MustCompile("sin(x, 2)")
	y, err := e.Eval(1)
	assert.True(t, errors.Is(err, ErrEval))
	assert.True(t, math.IsNaN(y))
}

func TestConstant(t *testing.T) {
	z := Zero()
	for _, x := range []float64{-1, 0, 1e9} {
		y, err := z.Eval(x)
		require.NoError(t, err)
		assert.Equal(t, 0.0, y)
	}
	assert.Equal(t, "0", z.String())
	assert.Equal(t, "2.5", Constant(2.5).String())
}

func TestString(t *testing.T) {
	assert.Equal(t, "3sin(x)", MustCompile("3sin(x)").String())
}
