/*
File    : numlang/diag/diagnostic.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)

Package diag carries the structured error shape used across the lexer,
parser, and evaluator. A Diagnostic is returned instead of panicking so
that every stage can unwind its frames/positions cleanly before the
interpret boundary reports it to the collaborator.
*/
package diag

import "fmt"

// Kind is the taxonomy of error kinds a Diagnostic can carry.
type Kind string

const (
	LexError               Kind = "LexError"
	SyntaxError            Kind = "SyntaxError"
	UnknownIdentifierError Kind = "UnknownIdentifierError"
	RedeclarationError     Kind = "RedeclarationError"
	AssignToConstError     Kind = "AssignToConstError"
	ArityError             Kind = "ArityError"
	MisuseError            Kind = "MisuseError"
	TimeoutError           Kind = "TimeoutError"
)

// Span locates a diagnostic in the original source: byte offsets plus
// 1-indexed line/column, sufficient for a host to underline the region.
type Span struct {
	Start  int
	End    int
	Line   int
	Column int
}

// Diagnostic is the structured result carried out of lex/parse/eval to
// the interpret boundary. It implements error so it can be threaded
// through ordinary Go error-return plumbing.
type Diagnostic struct {
	Kind    Kind
	Message string
	Span    Span
}

func (d *Diagnostic) Error() string {
	return fmt.Sprintf("[%d:%d] %s: %s", d.Span.Line, d.Span.Column, d.Kind, d.Message)
}

// New builds a Diagnostic with a formatted message, mirroring the
// teacher's CreateError convention of sprintf-then-wrap.
func New(kind Kind, span Span, format string, args ...interface{}) *Diagnostic {
	return &Diagnostic{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
		Span:    span,
	}
}
