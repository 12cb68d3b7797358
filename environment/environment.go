/*
File    : numlang/environment/environment.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)

Package environment implements the lexical scope manager of spec.md
§3/§4.3: a stack of Frames, each a mapping from identifier to a
Binding. It is grounded on the teacher's scope/scope.go (a Scope with
a Parent chain and a LookUp/Bind pair), generalized from the teacher's
per-kind boolean maps (Consts/LetVars/LetTypes) to a single Binding
struct carrying a Kind tag, matching spec.md's Var/Const/Fn/Proc/
Builtin taxonomy.
*/
package environment

import (
	"github.com/akashmaji946/numlang/diag"
	"github.com/akashmaji946/numlang/parser"
)

// Kind distinguishes what a name is bound to.
type Kind string

const (
	VarKind     Kind = "var"
	ConstKind   Kind = "const"
	FnKind      Kind = "fn"
	ProcKind    Kind = "proc"
	BuiltinKind Kind = "builtin"
)

// Arity lists the argument counts a builtin accepts, e.g. []int{1} for
// a unary function, []int{2} for a binary one, or []int{0, 2} for
// rand's "zero or two arguments" rule (spec.md §4.5).
type Arity struct {
	Allowed []int
}

// Accepts reports whether n arguments is one of the allowed counts.
func (a Arity) Accepts(n int) bool {
	for _, want := range a.Allowed {
		if want == n {
			return true
		}
	}
	return false
}

// Binding is one entry in a Frame. Var/Const carry Value directly; Fn/
// Proc carry their AST so the evaluator can run the body; Builtin
// carries a native implementation.
type Binding struct {
	Kind   Kind
	Value  float64
	Params []string
	Body   *parser.BlockExpr
	Arity  Arity
	Impl   func(args []float64) float64
}

// Frame is a single lexical scope's bindings, with a link to the
// enclosing frame. A nil Parent marks the global frame.
type Frame struct {
	Bindings map[string]*Binding
	Parent   *Frame
}

// NewFrame creates an empty Frame nested inside parent (nil for the
// global frame).
func NewFrame(parent *Frame) *Frame {
	return &Frame{Bindings: make(map[string]*Binding), Parent: parent}
}

// Environment is the frame stack backing one interpreter session. Top
// is the innermost frame currently in scope; Global is the outermost
// frame, created once and persisted across interpret calls that share
// this handle (spec.md §3's "global frame... persists across
// successive interpret calls").
type Environment struct {
	Global *Frame
	Top    *Frame
}

// New creates an Environment with an empty global frame. Built-in
// constants/functions are installed by the eval package's
// NewEnvironment wrapper, keeping this package free of any built-in
// catalogue.
func New() *Environment {
	g := NewFrame(nil)
	return &Environment{Global: g, Top: g}
}

// PushFrame enters a new, empty frame nested inside the current Top.
// Callers pair this with PopFrame, typically via defer, so frames
// unwind on every exit path including propagating control signals
// (spec.md §4.3's with_frame and §5's resource-lifetime guarantee).
func (e *Environment) PushFrame() {
	e.Top = NewFrame(e.Top)
}

// PopFrame discards the current Top frame, returning to its parent. It
// is a no-op (beyond a sanity check) if called on the global frame,
// which should never happen in well-formed evaluator code.
func (e *Environment) PopFrame() {
	if e.Top.Parent != nil {
		e.Top = e.Top.Parent
	}
}

// EnterCallFrame installs a fresh frame, parented directly on Global,
// as Top -- bypassing whatever frame was active at the call site. This
// is what makes user fn/proc non-closures (spec.md §4.3/§9): the
// returned restore function puts the caller's frame back and must be
// deferred by callers.
func (e *Environment) EnterCallFrame() (restore func()) {
	saved := e.Top
	e.Top = NewFrame(e.Global)
	return func() { e.Top = saved }
}

func redeclarationError(name string) *diag.Diagnostic {
	return diag.New(diag.RedeclarationError, diag.Span{}, "%q is already declared in this scope", name)
}

// declare inserts a binding into the innermost frame, failing if name
// already exists there (shadowing an outer frame is fine).
func (e *Environment) declare(name string, b *Binding) *diag.Diagnostic {
	if _, exists := e.Top.Bindings[name]; exists {
		return redeclarationError(name)
	}
	e.Top.Bindings[name] = b
	return nil
}

// DeclareVar inserts a mutable variable into the innermost frame.
func (e *Environment) DeclareVar(name string, value float64) *diag.Diagnostic {
	return e.declare(name, &Binding{Kind: VarKind, Value: value})
}

// DeclareConst inserts an immutable constant into the innermost frame.
func (e *Environment) DeclareConst(name string, value float64) *diag.Diagnostic {
	return e.declare(name, &Binding{Kind: ConstKind, Value: value})
}

// DeclareFn installs a user function in the innermost frame (normally
// the global frame, since fn/proc declarations are top-level-shaped).
func (e *Environment) DeclareFn(name string, params []string, body *parser.BlockExpr) *diag.Diagnostic {
	return e.declare(name, &Binding{Kind: FnKind, Params: params, Body: body})
}

// DeclareProc installs a user procedure.
func (e *Environment) DeclareProc(name string, params []string, body *parser.BlockExpr) *diag.Diagnostic {
	return e.declare(name, &Binding{Kind: ProcKind, Params: params, Body: body})
}

// DeclareBuiltin installs a native built-in constant or function. It
// is meant to be called only while constructing a fresh global frame.
func (e *Environment) DeclareBuiltin(name string, b *Binding) {
	b.Kind = BuiltinKind
	e.Global.Bindings[name] = b
}

// Lookup walks outward from Top, innermost frame first.
func (e *Environment) Lookup(name string) (*Binding, bool) {
	for f := e.Top; f != nil; f = f.Parent {
		if b, ok := f.Bindings[name]; ok {
			return b, true
		}
	}
	return nil, false
}

// Assign updates the nearest Var binding for name. It fails with
// AssignToConstError if the nearest binding exists but is not a Var,
// and UnknownIdentifierError if no binding exists at all (assignment
// never creates a binding).
func (e *Environment) Assign(name string, value float64) *diag.Diagnostic {
	for f := e.Top; f != nil; f = f.Parent {
		if b, ok := f.Bindings[name]; ok {
			if b.Kind != VarKind {
				return diag.New(diag.AssignToConstError, diag.Span{}, "cannot assign to %q (%s)", name, b.Kind)
			}
			b.Value = value
			return nil
		}
	}
	return diag.New(diag.UnknownIdentifierError, diag.Span{}, "undeclared identifier %q", name)
}

// VarInfo is one row of ListVariables' result.
type VarInfo struct {
	Name  string
	Kind  Kind
	Value float64
}

// ListVariables enumerates user-installed bindings in the global
// frame, omitting built-ins, per spec.md §6.
func (e *Environment) ListVariables() []VarInfo {
	out := make([]VarInfo, 0, len(e.Global.Bindings))
	for name, b := range e.Global.Bindings {
		if b.Kind == BuiltinKind {
			continue
		}
		out = append(out, VarInfo{Name: name, Kind: b.Kind, Value: b.Value})
	}
	return out
}

// ClearUserBindings resets the environment to its initial built-in
// state: every non-builtin global binding is removed and Top is reset
// to Global, discarding any stray frames.
func (e *Environment) ClearUserBindings() {
	for name, b := range e.Global.Bindings {
		if b.Kind != BuiltinKind {
			delete(e.Global.Bindings, name)
		}
	}
	e.Top = e.Global
}
