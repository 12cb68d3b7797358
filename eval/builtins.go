/*
File    : numlang/eval/builtins.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)

Built-in catalogue of spec.md §4.5, grounded on the teacher's
std/math.go registration idiom (a flat table of name -> implementation,
installed once at construction) generalized from go-mix's Integer/Float
dual-typed arguments down to this language's single float64 domain --
so, unlike abs/sqrt/etc. in std/math.go, none of these need a type
switch or a type-mismatch diagnostic.

Domain errors (sqrt(-1), log(-1), ...) are allowed to produce NaN
rather than a diagnostic, matching IEEE-754 propagation -- the same
choice spec.md §4.4 makes for arithmetic.
*/
package eval

import (
	"math"
	"math/rand"

	"github.com/akashmaji946/numlang/environment"
)

func unary(f func(float64) float64) func([]float64) float64 {
	return func(args []float64) float64 { return f(args[0]) }
}

func binary(f func(a, b float64) float64) func([]float64) float64 {
	return func(args []float64) float64 { return f(args[0], args[1]) }
}

var builtinConstants = map[string]float64{
	"PI":    math.Pi,
	"E":     math.E,
	"TAU":   2 * math.Pi,
	"PHI":   math.Phi,
	"SQRT2": math.Sqrt2,
	"LN2":   math.Ln2,
	"LN10":  math.Log(10),
}

var unaryFuncs = map[string]func(float64) float64{
	"sin":   math.Sin,
	"cos":   math.Cos,
	"tan":   math.Tan,
	"asin":  math.Asin,
	"acos":  math.Acos,
	"atan":  math.Atan,
	"sinh":  math.Sinh,
	"cosh":  math.Cosh,
	"tanh":  math.Tanh,
	"log":   math.Log,
	"log10": math.Log10,
	"log2":  math.Log2,
	"exp":   math.Exp,
	"sqrt":  math.Sqrt,
	"abs":   math.Abs,
	"floor": math.Floor,
	"ceil":  math.Ceil,
	"round": math.Round,
	"sign": func(x float64) float64 {
		switch {
		case math.IsNaN(x):
			return math.NaN()
		case x > 0:
			return 1
		case x < 0:
			return -1
		default:
			return 0
		}
	},
}

var binaryFuncs = map[string]func(a, b float64) float64{
	"min":   math.Min,
	"max":   math.Max,
	"atan2": math.Atan2,
	"pow":   math.Pow,
	"hypot": math.Hypot,
}

// NewEnvironment builds an Environment with every spec.md §4.5 built-in
// installed in its global frame.
func NewEnvironment() *environment.Environment {
	env := environment.New()

	for name, v := range builtinConstants {
		env.DeclareBuiltin(name, &environment.Binding{Value: v})
	}
	for name, f := range unaryFuncs {
		env.DeclareBuiltin(name, &environment.Binding{
			Arity: environment.Arity{Allowed: []int{1}},
			Impl:  unary(f),
		})
	}
	for name, f := range binaryFuncs {
		env.DeclareBuiltin(name, &environment.Binding{
			Arity: environment.Arity{Allowed: []int{2}},
			Impl:  binary(f),
		})
	}
	env.DeclareBuiltin("rand", &environment.Binding{
		Arity: environment.Arity{Allowed: []int{0, 2}},
		Impl: func(args []float64) float64 {
			if len(args) == 0 {
				return rand.Float64()
			}
			lo, hi := args[0], args[1]
			return lo + rand.Float64()*(hi-lo)
		},
	})

	return env
}
