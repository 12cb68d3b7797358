/*
File    : numlang/numlang.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)

Package numlang is the single entry point spec.md §1/§6 describes:
collaborators (a chat command, a CLI, a library caller) only ever see
Interpret plus the small environment-lifecycle API around it. Grounded
on the teacher's main/main.go executeFileWithRecovery, which plays the
same role (parse, check errors, evaluate, format) but inline in main;
here it is pulled out into a reusable façade so cmd/numlang and repl
can both call it without duplicating the pipeline.
*/
package numlang

import (
	"math"
	"strconv"
	"time"

	"github.com/akashmaji946/numlang/diag"
	"github.com/akashmaji946/numlang/environment"
	"github.com/akashmaji946/numlang/eval"
	"github.com/akashmaji946/numlang/parser"
)

// Environment is a persistent symbol table handle, reused across
// successive Interpret calls (spec.md §3/§6's "optional persistent
// symbol environment handle").
type Environment = environment.Environment

// Limits bounds one Interpret call per spec.md §5's cooperative
// cancellation model (step budget, wall-clock deadline). The zero
// value means "unbounded".
type Limits = eval.Limits

// Diagnostic is the structured error shape of spec.md §6/§7.
type Diagnostic = diag.Diagnostic

// NewEnvironment builds a fresh Environment with every spec.md §4.5
// built-in constant and function installed.
func NewEnvironment() *Environment {
	return eval.NewEnvironment()
}

// ClearEnvironment resets env to its just-constructed state: every
// user-declared var/const/fn/proc is removed, built-ins are untouched.
func ClearEnvironment(env *Environment) {
	env.ClearUserBindings()
}

// VarInfo is one row of ListVariables' result.
type VarInfo = environment.VarInfo

// ListVariables enumerates user-declared (non-builtin) global bindings,
// per spec.md §6.
func ListVariables(env *Environment) []VarInfo {
	return env.ListVariables()
}

// WithDeadline returns Limits that additionally expire after d elapses
// from now, for collaborators that want a wall-clock bound rather than
// (or in addition to) a step budget.
func WithDeadline(limits Limits, d time.Duration) Limits {
	limits.Deadline = time.Now().Add(d)
	return limits
}

// Interpret is the single entry point of spec.md §1: it lexes, parses,
// and evaluates source against env, returning a numeric result or a
// structured Diagnostic. env persists across calls, so declarations
// from an earlier Interpret call are visible to a later one -- the
// same model a REPL or chat session needs.
func Interpret(source string, env *Environment, limits Limits) (float64, *Diagnostic) {
	p := parser.NewParser(source)
	prog, d := p.Parse()
	if d != nil {
		return 0, d
	}

	ev := eval.NewEvaluator(env, limits)
	return ev.Run(prog)
}

// FormatResult renders a value per spec.md §6's "shortest round-trip
// decimal; integral values within ±2^53 rendered without a decimal
// point" rule.
func FormatResult(v float64) string {
	if math.IsInf(v, 1) {
		return "inf"
	}
	if math.IsInf(v, -1) {
		return "-inf"
	}
	if math.IsNaN(v) {
		return "nan"
	}
	if v == math.Trunc(v) && math.Abs(v) < (1<<53) {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}
