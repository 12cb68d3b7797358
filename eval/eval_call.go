/*
File    : numlang/eval/eval_call.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)

Call dispatch: spec.md §4.4's Call(name, args) rule, generalized from
the teacher's function/function.go CallFunction. The key divergence
from the teacher is environment.EnterCallFrame: user fn/proc are not
closures, so the body runs over globals plus a fresh parameter frame
only, never the call site's locals.
*/
package eval

import (
	"strconv"

	"github.com/akashmaji946/numlang/diag"
	"github.com/akashmaji946/numlang/environment"
	"github.com/akashmaji946/numlang/parser"
)

func (ev *Evaluator) evalCall(e *parser.CallExpr) (Signal, *diag.Diagnostic) {
	b, ok := ev.Env.Lookup(e.Callee)
	if !ok {
		return Signal{}, diag.New(diag.UnknownIdentifierError, e.Span(), "undeclared identifier %q", e.Callee)
	}

	args := make([]float64, 0, len(e.Args))
	for _, a := range e.Args {
		sig, d := ev.evalExpr(a)
		if d != nil {
			return Signal{}, d
		}
		if !sig.isNormal() {
			return sig, nil
		}
		args = append(args, sig.Value)
	}

	switch b.Kind {
	case environment.BuiltinKind:
		return ev.callBuiltin(e, b, args)
	case environment.FnKind:
		return ev.callUser(e, b, args, true)
	case environment.ProcKind:
		return ev.callUser(e, b, args, false)
	default:
		return Signal{}, diag.New(diag.MisuseError, e.Span(), "%q is not callable", e.Callee)
	}
}

func (ev *Evaluator) callBuiltin(e *parser.CallExpr, b *environment.Binding, args []float64) (Signal, *diag.Diagnostic) {
	if b.Impl == nil {
		return Signal{}, diag.New(diag.MisuseError, e.Span(), "%q is a constant, not a function", e.Callee)
	}
	if !b.Arity.Accepts(len(args)) {
		return Signal{}, diag.New(diag.ArityError, e.Span(), "%q expects %s argument(s), got %d", e.Callee, arityDesc(b.Arity), len(args))
	}
	return normal(b.Impl(args)), nil
}

// callUser runs a user fn/proc body in a fresh call frame parented
// directly on Global (environment.EnterCallFrame), not the call site's
// frame -- the non-closure rule of spec.md §4.3. wantsValue
// distinguishes fn (Return(v) or the block's trailing value, else 0)
// from proc (always 0; any `return` inside one is rejected at parse
// time, so reaching SigReturn here would be a parser bug).
func (ev *Evaluator) callUser(e *parser.CallExpr, b *environment.Binding, args []float64, wantsValue bool) (Signal, *diag.Diagnostic) {
	if len(args) != len(b.Params) {
		return Signal{}, diag.New(diag.ArityError, e.Span(), "%q expects %d argument(s), got %d", e.Callee, len(b.Params), len(args))
	}

	ev.depth++
	if ev.depth > MaxCallDepth {
		ev.depth--
		return Signal{}, diag.New(diag.MisuseError, e.Span(), "call depth exceeded %d (possible unbounded recursion in %q)", MaxCallDepth, e.Callee)
	}
	defer func() { ev.depth-- }()

	restore := ev.Env.EnterCallFrame()
	defer restore()

	for i, name := range b.Params {
		if d := ev.Env.DeclareVar(name, args[i]); d != nil {
			d.Span = e.Span()
			return Signal{}, d
		}
	}

	sig, d := ev.evalBlock(b.Body)
	if d != nil {
		return Signal{}, d
	}

	switch sig.Kind {
	case SigReturn:
		if !wantsValue {
			return normal(0), nil
		}
		return normal(sig.Value), nil
	case SigEnd:
		// end terminates the whole program (spec.md §9's Open Question,
		// decided in favor of "whole program"), so it propagates past
		// the call frame unchanged rather than being consumed here.
		return sig, nil
	case SigBreak, SigContinue:
		return Signal{}, diag.New(diag.MisuseError, e.Span(), "%s escaped a function body", sig.Kind)
	default:
		if !wantsValue {
			return normal(0), nil
		}
		return normal(sig.Value), nil
	}
}

func arityDesc(a environment.Arity) string {
	out := ""
	for i, n := range a.Allowed {
		if i > 0 {
			out += " or "
		}
		out += strconv.Itoa(n)
	}
	return out
}
