package eval

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akashmaji946/numlang/diag"
	"github.com/akashmaji946/numlang/parser"
)

func run(t *testing.T, src string) (float64, *diag.Diagnostic) {
	t.Helper()
	p := parser.NewParser(src)
	prog, perr := p.Parse()
	require.Nil(t, perr, "parse error: %v", perr)

	ev := NewEvaluator(NewEnvironment(), Limits{})
	return ev.Run(prog)
}

func mustRun(t *testing.T, src string) float64 {
	t.Helper()
	v, d := run(t, src)
	require.Nil(t, d, "eval error: %v", d)
	return v
}

// spec.md §8 scenario 1: precedence, with ^ binding tighter than *.
func TestPrecedenceAndPower(t *testing.T) {
	assert.Equal(t, 2.0+3.0*math.Pow(4, 2)-8.0/2.0, mustRun(t, "2 + 3 * 4 ^ 2 - 8 / 2"))
}

// spec.md §8 scenario 2: `end` short-circuits the program value and
// later statements have no observable effect on the result.
func TestEndTerminatesWholeProgram(t *testing.T) {
	assert.Equal(t, 30.0, mustRun(t, "let x = 10; let y = 20; end x + y; let z = 30;"))
}

func TestWhileLoopThenTrailingIdentifier(t *testing.T) {
	src := `
		let i = 0;
		let total = 0;
		while i < 5 {
			total = total + i;
			i = i + 1;
		}
		total
	`
	assert.Equal(t, 10.0, mustRun(t, src))
}

func TestRecursiveFunctionIfWithoutSemicolon(t *testing.T) {
	src := `
		fn fact(n) {
			if n <= 1 {
				return 1
			}
			return n * fact(n - 1)
		}
		fact(5)
	`
	assert.Equal(t, 120.0, mustRun(t, src))
}

func TestBlockShadowingReadsOuterDuringInit(t *testing.T) {
	src := `
		let x = 10;
		let y = {
			let x = x + 1;
			x
		};
		x + y
	`
	// inner `let x = x + 1` reads the outer x (10) before shadowing it,
	// so y is 11 and the outer x is untouched.
	assert.Equal(t, 21.0, mustRun(t, src))
}

func TestConstReassignmentIsRuntimeError(t *testing.T) {
	_, d := run(t, "const PI2 = 6.28; PI2 = 0;")
	require.NotNil(t, d)
	assert.Equal(t, diag.AssignToConstError, d.Kind)
}

func TestProcMutatesTopLevelVariable(t *testing.T) {
	src := `
		let total = 0;
		proc bump() {
			total = total + 1;
		}
		let local = 100;
		bump();
		bump();
		total
	`
	assert.Equal(t, 2.0, mustRun(t, src))
}

// A call frame parents on Global directly, so a block's shadowed local
// is invisible to a function called from inside that block: reveal()
// sees the global secret (42), not the block's shadowed 0.
func TestFnIsNotAClosureOverCallSiteLocals(t *testing.T) {
	src := `
		let secret = 42;
		fn reveal() {
			return secret;
		}
		{
			let secret = 0;
			reveal()
		}
	`
	assert.Equal(t, 42.0, mustRun(t, src))
}

// A parameter or local declared only inside a function body must not
// leak back out to be visible from the call site.
func TestCallFrameLocalsDoNotLeakToCallSite(t *testing.T) {
	src := `
		fn f(n) {
			let doubled = n * 2;
			return doubled;
		}
		f(3);
		doubled
	`
	_, d := run(t, src)
	require.NotNil(t, d)
	assert.Equal(t, diag.UnknownIdentifierError, d.Kind)
}

func TestDivisionByZeroYieldsInfNotError(t *testing.T) {
	assert.True(t, math.IsInf(mustRun(t, "1 / 0"), 1))
	assert.True(t, math.IsNaN(mustRun(t, "0 / 0")))
}

func TestModulusSignFollowsDividend(t *testing.T) {
	assert.Equal(t, -1.0, mustRun(t, "-7 % 2"))
}

func TestEqualityIsIEEEBitwise(t *testing.T) {
	assert.Equal(t, 1.0, mustRun(t, "(0/0) != (0/0)"))
	assert.Equal(t, 0.0, mustRun(t, "(0/0) == (0/0)"))
}

func TestShortCircuitAndSkipsRightOperand(t *testing.T) {
	src := `
		let calls = 0;
		fn sideEffect() {
			calls = calls + 1;
			return 1;
		}
		let r = false && sideEffect() == 1;
		calls
	`
	assert.Equal(t, 0.0, mustRun(t, src))
}

func TestShortCircuitOrSkipsRightOperand(t *testing.T) {
	src := `
		let calls = 0;
		fn sideEffect() {
			calls = calls + 1;
			return 1;
		}
		let r = true || sideEffect() == 1;
		calls
	`
	assert.Equal(t, 0.0, mustRun(t, src))
}

func TestBreakAndContinue(t *testing.T) {
	src := `
		let i = 0;
		let sum = 0;
		while i < 10 {
			i = i + 1;
			if i % 2 == 0 {
				continue
			}
			if i > 7 {
				break
			}
			sum = sum + i;
		}
		sum
	`
	// odd i in 1..7: 1+3+5+7 = 16
	assert.Equal(t, 16.0, mustRun(t, src))
}

func TestArityErrorOnBuiltin(t *testing.T) {
	_, d := run(t, "sqrt(1, 2)")
	require.NotNil(t, d)
	assert.Equal(t, diag.ArityError, d.Kind)
}

func TestArityErrorOnUserFunction(t *testing.T) {
	_, d := run(t, "fn f(a, b) { return a + b; } f(1)")
	require.NotNil(t, d)
	assert.Equal(t, diag.ArityError, d.Kind)
}

func TestUnknownIdentifier(t *testing.T) {
	_, d := run(t, "x + 1")
	require.NotNil(t, d)
	assert.Equal(t, diag.UnknownIdentifierError, d.Kind)
}

func TestRedeclaringBuiltinIsRedeclarationError(t *testing.T) {
	_, d := run(t, "let PI = 3;")
	require.NotNil(t, d)
	assert.Equal(t, diag.RedeclarationError, d.Kind)
}

func TestCallingAFunctionByBareNameIsMisuse(t *testing.T) {
	_, d := run(t, "fn f() { return 1; } f")
	require.NotNil(t, d)
	assert.Equal(t, diag.MisuseError, d.Kind)
}

func TestBuiltinConstantsInstalled(t *testing.T) {
	assert.InDelta(t, math.Pi, mustRun(t, "PI"), 1e-12)
	assert.InDelta(t, 2*math.Pi, mustRun(t, "TAU"), 1e-12)
}

func TestRandWithinBounds(t *testing.T) {
	v := mustRun(t, "rand(5, 10)")
	assert.True(t, v >= 5 && v < 10)
	v0 := mustRun(t, "rand()")
	assert.True(t, v0 >= 0 && v0 < 1)
}

func TestRecursionDepthGuard(t *testing.T) {
	src := `
		fn loop(n) {
			return loop(n + 1);
		}
		loop(0)
	`
	_, d := run(t, src)
	require.NotNil(t, d)
	assert.Equal(t, diag.MisuseError, d.Kind)
}

func TestStepBudgetExceeded(t *testing.T) {
	p := parser.NewParser(`
		let i = 0;
		while true {
			i = i + 1;
		}
	`)
	prog, perr := p.Parse()
	require.Nil(t, perr)

	ev := NewEvaluator(NewEnvironment(), Limits{MaxSteps: 1000})
	_, d := ev.Run(prog)
	require.NotNil(t, d)
	assert.Equal(t, diag.TimeoutError, d.Kind)
}
