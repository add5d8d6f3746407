// Package expr compiles single-variable math expressions into callables.
//
// Parsing and evaluation are delegated to govaluate. Before the source is
// handed over it is normalized so that the conventional plotting grammar
// works:
//
//   - implicit multiplication: 3sin(x), 2x, 2(x+1), (x+1)(x-1), 2pi
//   - ^ as exponentiation, right-associative and binding tighter than a
//     leading minus: -x^2 is -(x^2), 2^3^2 is 2^9
//   - the constants pi, e and tau
//
// # Example
//
//	e, err := expr.Compile("3sin(x)")
//	if err != nil {
//	    return err
//	}
//	y, _ := e.Eval(math.Pi / 2) // 3
package expr
