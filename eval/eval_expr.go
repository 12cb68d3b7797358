/*
File    : numlang/eval/eval_expr.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)

Expression-level evaluation. Every case checks the sub-signal it gets
back before using its Value, so a Return/End/Break/Continue raised deep
inside an operand (e.g. a block-as-expression containing `return`)
propagates to the nearest statement that knows how to handle it,
instead of being silently discarded.
*/
package eval

import (
	"math"

	"github.com/akashmaji946/numlang/diag"
	"github.com/akashmaji946/numlang/environment"
	"github.com/akashmaji946/numlang/parser"
)

func isTruthy(v float64) bool {
	return !math.IsNaN(v) && v != 0
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

func (ev *Evaluator) evalExpr(expr parser.Expr) (Signal, *diag.Diagnostic) {
	if d := ev.tick(expr.Span()); d != nil {
		return Signal{}, d
	}

	switch e := expr.(type) {
	case *parser.NumberExpr:
		return normal(e.Value), nil

	case *parser.IdentifierExpr:
		return ev.evalIdentifier(e)

	case *parser.PrefixExpr:
		return ev.evalPrefix(e)

	case *parser.InfixExpr:
		return ev.evalInfix(e)

	case *parser.CallExpr:
		return ev.evalCall(e)

	case *parser.AssignExpr:
		return ev.evalAssign(e)

	case *parser.BlockExpr:
		return ev.evalBlock(e)

	case *parser.IfExpr:
		return ev.evalIf(e)

	default:
		return Signal{}, diag.New(diag.MisuseError, expr.Span(), "unhandled expression type %T", expr)
	}
}

// evalIdentifier looks up a bare name. Referencing a fn/proc/builtin
// function by name without a call is not auto-invocation (spec.md
// §4.4): it is a MisuseError, since the value domain has no callable
// values to produce instead.
func (ev *Evaluator) evalIdentifier(e *parser.IdentifierExpr) (Signal, *diag.Diagnostic) {
	b, ok := ev.Env.Lookup(e.Name)
	if !ok {
		return Signal{}, diag.New(diag.UnknownIdentifierError, e.Span(), "undeclared identifier %q", e.Name)
	}
	switch b.Kind {
	case environment.FnKind, environment.ProcKind:
		return Signal{}, diag.New(diag.MisuseError, e.Span(), "%q is callable; call it with ()", e.Name)
	case environment.BuiltinKind:
		if b.Impl != nil {
			return Signal{}, diag.New(diag.MisuseError, e.Span(), "%q is a built-in function; call it with ()", e.Name)
		}
		return normal(b.Value), nil
	default:
		return normal(b.Value), nil
	}
}

func (ev *Evaluator) evalPrefix(e *parser.PrefixExpr) (Signal, *diag.Diagnostic) {
	sig, d := ev.evalExpr(e.Operand)
	if d != nil {
		return Signal{}, d
	}
	if !sig.isNormal() {
		return sig, nil
	}
	switch e.Op {
	case "+":
		return normal(sig.Value), nil
	case "-":
		return normal(-sig.Value), nil
	case "!":
		return normal(boolToFloat(!isTruthy(sig.Value))), nil
	default:
		return Signal{}, diag.New(diag.MisuseError, e.Span(), "unknown prefix operator %q", e.Op)
	}
}

func (ev *Evaluator) evalInfix(e *parser.InfixExpr) (Signal, *diag.Diagnostic) {
	left, d := ev.evalExpr(e.Left)
	if d != nil {
		return Signal{}, d
	}
	if !left.isNormal() {
		return left, nil
	}

	switch e.Op {
	case "&&":
		if !isTruthy(left.Value) {
			return normal(0), nil
		}
		right, d := ev.evalExpr(e.Right)
		if d != nil {
			return Signal{}, d
		}
		if !right.isNormal() {
			return right, nil
		}
		return normal(boolToFloat(isTruthy(right.Value))), nil

	case "||":
		if isTruthy(left.Value) {
			return normal(1), nil
		}
		right, d := ev.evalExpr(e.Right)
		if d != nil {
			return Signal{}, d
		}
		if !right.isNormal() {
			return right, nil
		}
		return normal(boolToFloat(isTruthy(right.Value))), nil
	}

	right, d := ev.evalExpr(e.Right)
	if d != nil {
		return Signal{}, d
	}
	if !right.isNormal() {
		return right, nil
	}

	v, d := binOp(e.Op, left.Value, right.Value, e.Span())
	if d != nil {
		return Signal{}, d
	}
	return normal(v), nil
}

// binOp applies a non-short-circuit infix operator. Arithmetic follows
// IEEE-754 throughout: division by zero yields ±Inf/NaN rather than an
// error, % takes the sign of the dividend (math.Mod), and ^ is pow.
// Comparisons produce 0.0/1.0, and ==/!= use Go's native float
// comparison, which already gives NaN != NaN the IEEE answer spec.md
// §4.4 asks for.
func binOp(op string, l, r float64, span diag.Span) (float64, *diag.Diagnostic) {
	switch op {
	case "+":
		return l + r, nil
	case "-":
		return l - r, nil
	case "*":
		return l * r, nil
	case "/":
		return l / r, nil
	case "%":
		return math.Mod(l, r), nil
	case "^":
		return math.Pow(l, r), nil
	case "<":
		return boolToFloat(l < r), nil
	case "<=":
		return boolToFloat(l <= r), nil
	case ">":
		return boolToFloat(l > r), nil
	case ">=":
		return boolToFloat(l >= r), nil
	case "==":
		return boolToFloat(l == r), nil
	case "!=":
		return boolToFloat(l != r), nil
	default:
		return 0, diag.New(diag.MisuseError, span, "unknown infix operator %q", op)
	}
}

func (ev *Evaluator) evalAssign(e *parser.AssignExpr) (Signal, *diag.Diagnostic) {
	sig, d := ev.evalExpr(e.Value)
	if d != nil {
		return Signal{}, d
	}
	if !sig.isNormal() {
		return sig, nil
	}
	if d := ev.Env.Assign(e.Name, sig.Value); d != nil {
		d.Span = e.Span()
		return Signal{}, d
	}
	return normal(sig.Value), nil
}

// evalBlock pushes a frame, runs statements in order, and propagates
// the first non-Normal signal immediately -- popping the frame on
// every exit path, including that one (spec.md §4.4).
func (ev *Evaluator) evalBlock(b *parser.BlockExpr) (Signal, *diag.Diagnostic) {
	ev.Env.PushFrame()
	defer ev.Env.PopFrame()

	for _, stmt := range b.Stmts {
		sig, d := ev.evalStmt(stmt)
		if d != nil {
			return Signal{}, d
		}
		if !sig.isNormal() {
			return sig, nil
		}
	}
	if b.Trailing == nil {
		return normal(0), nil
	}
	return ev.evalExpr(b.Trailing)
}

func (ev *Evaluator) evalIf(e *parser.IfExpr) (Signal, *diag.Diagnostic) {
	cond, d := ev.evalExpr(e.Cond)
	if d != nil {
		return Signal{}, d
	}
	if !cond.isNormal() {
		return cond, nil
	}
	if isTruthy(cond.Value) {
		return ev.evalBlock(e.Then)
	}
	if e.Else == nil {
		return normal(0), nil
	}
	return ev.evalExpr(e.Else)
}
