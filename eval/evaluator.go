/*
File    : numlang/eval/evaluator.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)

Package eval is the tree-walking evaluator of spec.md §4.4, grounded
on the teacher's eval/evaluator.go (an Evaluator struct bundling parser/
scope/builtins state) and generalized to this language's float-only
value domain and Normal/Break/Continue/Return/End signal model.

Unlike the teacher's single long-lived Evaluator tied to one parser
instance, this one is constructed per interpret() call (spec.md §5:
"each environment handle must be owned by exactly one evaluation at a
time") and carries only the step/deadline budget and call-depth guard
needed to host a cooperative timeout and a StackOverflow-shaped
MisuseError, neither of which the teacher's recursive-descent tree
walker needed to worry about.
*/
package eval

import (
	"time"

	"github.com/akashmaji946/numlang/diag"
	"github.com/akashmaji946/numlang/environment"
	"github.com/akashmaji946/numlang/parser"
)

// MaxCallDepth bounds fn/proc call nesting. Recursion past this depth
// is reported as MisuseError rather than letting the host process's
// goroutine stack grow unbounded, per spec.md §9's call to guard
// runaway recursion.
const MaxCallDepth = 512

// Limits bounds one evaluation per spec.md §5's cooperative-cancellation
// model: no suspension points exist inside eval, so these are checked
// between statements and loop iterations rather than preemptively.
// A zero Limits value means "no budget" -- run to completion.
type Limits struct {
	MaxSteps int       // 0 means unbounded
	Deadline time.Time // zero value means unbounded
}

// Evaluator walks an AST against one Environment, enforcing Limits and
// the non-closure call-frame discipline of environment.EnterCallFrame.
type Evaluator struct {
	Env    *environment.Environment
	Limits Limits

	steps int
	depth int
}

// NewEvaluator builds an Evaluator over env, bounded by limits.
func NewEvaluator(env *environment.Environment, limits Limits) *Evaluator {
	return &Evaluator{Env: env, Limits: limits}
}

// tick advances the step counter and checks the budget, returning a
// TimeoutError diagnostic the moment either bound is exceeded.
func (ev *Evaluator) tick(span diag.Span) *diag.Diagnostic {
	ev.steps++
	if ev.Limits.MaxSteps > 0 && ev.steps > ev.Limits.MaxSteps {
		return diag.New(diag.TimeoutError, span, "step budget of %d exceeded", ev.Limits.MaxSteps)
	}
	if !ev.Limits.Deadline.IsZero() && time.Now().After(ev.Limits.Deadline) {
		return diag.New(diag.TimeoutError, span, "evaluation deadline exceeded")
	}
	return nil
}

// Run executes every top-level statement in order and returns the
// program's value per spec.md §4.4: the value carried by a propagated
// End, else the last expression-statement's value, else 0.
func (ev *Evaluator) Run(prog *parser.Program) (float64, *diag.Diagnostic) {
	var last float64
	for _, stmt := range prog.Stmts {
		sig, d := ev.evalStmt(stmt)
		if d != nil {
			return 0, d
		}
		switch sig.Kind {
		case SigNormal:
			if _, ok := stmt.(*parser.ExprStmt); ok {
				last = sig.Value
			}
		case SigEnd:
			return sig.Value, nil
		default:
			// The parser legalizes break/continue/return only inside a
			// loop/function body, so one surfacing here means a bug in
			// that gating rather than a program the user could write.
			return 0, diag.New(diag.MisuseError, stmt.Span(), "%s escaped to top level", sig.Kind)
		}
	}
	return last, nil
}
