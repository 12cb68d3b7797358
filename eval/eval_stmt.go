/*
File    : numlang/eval/eval_stmt.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)

Statement-level evaluation, split into its own file the way the
teacher splits eval/eval_controls.go and eval/eval_statements.go from
eval/evaluator.go.
*/
package eval

import (
	"github.com/akashmaji946/numlang/diag"
	"github.com/akashmaji946/numlang/parser"
)

// evalStmt executes one statement, returning the signal it produces.
// Only ExprStmt's signal value is meaningful to a caller (per Run's
// "last expression-statement's value" rule); every other statement
// kind yields Normal(0) on success.
func (ev *Evaluator) evalStmt(stmt parser.Stmt) (Signal, *diag.Diagnostic) {
	if d := ev.tick(stmt.Span()); d != nil {
		return Signal{}, d
	}

	switch s := stmt.(type) {
	case *parser.LetStmt:
		sig, d := ev.evalExpr(s.Init)
		if d != nil {
			return Signal{}, d
		}
		if !sig.isNormal() {
			return sig, nil
		}
		if d := ev.Env.DeclareVar(s.Name, sig.Value); d != nil {
			d.Span = s.Span()
			return Signal{}, d
		}
		return normal(0), nil

	case *parser.ConstStmt:
		sig, d := ev.evalExpr(s.Init)
		if d != nil {
			return Signal{}, d
		}
		if !sig.isNormal() {
			return sig, nil
		}
		if d := ev.Env.DeclareConst(s.Name, sig.Value); d != nil {
			d.Span = s.Span()
			return Signal{}, d
		}
		return normal(0), nil

	case *parser.ExprStmt:
		return ev.evalExpr(s.Expr)

	case *parser.WhileStmt:
		return ev.evalWhile(s)

	case *parser.BreakStmt:
		return Signal{Kind: SigBreak}, nil

	case *parser.ContinueStmt:
		return Signal{Kind: SigContinue}, nil

	case *parser.ReturnStmt:
		if s.Value == nil {
			return Signal{Kind: SigReturn, Value: 0}, nil
		}
		sig, d := ev.evalExpr(s.Value)
		if d != nil {
			return Signal{}, d
		}
		if !sig.isNormal() {
			return sig, nil
		}
		return Signal{Kind: SigReturn, Value: sig.Value}, nil

	case *parser.EndStmt:
		if s.Value == nil {
			return Signal{Kind: SigEnd, Value: 0}, nil
		}
		sig, d := ev.evalExpr(s.Value)
		if d != nil {
			return Signal{}, d
		}
		if !sig.isNormal() {
			return sig, nil
		}
		return Signal{Kind: SigEnd, Value: sig.Value}, nil

	case *parser.FnDeclStmt:
		if d := ev.Env.DeclareFn(s.Name, s.Params, s.Body); d != nil {
			d.Span = s.Span()
			return Signal{}, d
		}
		return normal(0), nil

	case *parser.ProcDeclStmt:
		if d := ev.Env.DeclareProc(s.Name, s.Params, s.Body); d != nil {
			d.Span = s.Span()
			return Signal{}, d
		}
		return normal(0), nil

	default:
		return Signal{}, diag.New(diag.MisuseError, stmt.Span(), "unhandled statement type %T", stmt)
	}
}

// evalWhile runs the loop body in a fresh frame per iteration
// (spec.md §4.4). Break terminates with value 0; Continue skips to the
// next condition check; Return/End propagate outward unchanged.
func (ev *Evaluator) evalWhile(s *parser.WhileStmt) (Signal, *diag.Diagnostic) {
	for {
		if d := ev.tick(s.Span()); d != nil {
			return Signal{}, d
		}

		condSig, d := ev.evalExpr(s.Cond)
		if d != nil {
			return Signal{}, d
		}
		if !condSig.isNormal() {
			return condSig, nil
		}
		if !isTruthy(condSig.Value) {
			return normal(0), nil
		}

		bodySig, d := ev.evalBlock(s.Body)
		if d != nil {
			return Signal{}, d
		}
		switch bodySig.Kind {
		case SigNormal, SigContinue:
			continue
		case SigBreak:
			return normal(0), nil
		case SigReturn, SigEnd:
			return bodySig, nil
		}
	}
}
