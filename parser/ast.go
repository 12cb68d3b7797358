/*
File    : numlang/parser/ast.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)

The AST node set is deliberately small: spec.md §3 names exactly eight
expression shapes and ten statement shapes, and this file has exactly
those. Every node carries a diag.Span so the evaluator can build
precise diagnostics without re-deriving source position.
*/
package parser

import "github.com/akashmaji946/numlang/diag"

// Node is the common shape of every AST element: it knows where in the
// source it came from.
type Node interface {
	Span() diag.Span
}

// Expr is an AST node that produces a value when evaluated.
type Expr interface {
	Node
	exprNode()
}

// Stmt is an AST node executed for effect; it may or may not contribute
// a value to its enclosing block.
type Stmt interface {
	Node
	stmtNode()
}

type base struct {
	span diag.Span
}

func (b base) Span() diag.Span { return b.span }

// ---- Expressions ----

type NumberExpr struct {
	base
	Value float64
}

type IdentifierExpr struct {
	base
	Name string
}

type PrefixExpr struct {
	base
	Op      string // "+" "-" "!"
	Operand Expr
}

type InfixExpr struct {
	base
	Op    string
	Left  Expr
	Right Expr
}

type CallExpr struct {
	base
	Callee string
	Args   []Expr
}

// AssignExpr is an expression: it yields the assigned value. The left
// side is always a bare identifier (spec.md §4.2: "no compound targets").
type AssignExpr struct {
	base
	Name  string
	Value Expr
}

// BlockExpr is `{ stmt* expr? }`; its value is Trailing's value, or 0
// if Trailing is nil.
type BlockExpr struct {
	base
	Stmts    []Stmt
	Trailing Expr // nil if the block has no trailing (unterminated) expression
}

// IfExpr is `if <expr> <block> (else (<if> | <block>))?`. Else is nil,
// an *IfExpr, or a *BlockExpr.
type IfExpr struct {
	base
	Cond Expr
	Then *BlockExpr
	Else Expr // nil, *IfExpr, or *BlockExpr
}

func (*NumberExpr) exprNode()     {}
func (*IdentifierExpr) exprNode() {}
func (*PrefixExpr) exprNode()     {}
func (*InfixExpr) exprNode()      {}
func (*CallExpr) exprNode()       {}
func (*AssignExpr) exprNode()     {}
func (*BlockExpr) exprNode()      {}
func (*IfExpr) exprNode()         {}

// ---- Statements ----

type LetStmt struct {
	base
	Name string
	Init Expr
}

type ConstStmt struct {
	base
	Name string
	Init Expr
}

type ExprStmt struct {
	base
	Expr Expr
}

type WhileStmt struct {
	base
	Cond Expr
	Body *BlockExpr
}

type BreakStmt struct{ base }
type ContinueStmt struct{ base }

type ReturnStmt struct {
	base
	Value Expr // nil for bare `return`
}

type EndStmt struct {
	base
	Value Expr // nil for bare `end`
}

type FnDeclStmt struct {
	base
	Name   string
	Params []string
	Body   *BlockExpr
}

type ProcDeclStmt struct {
	base
	Name   string
	Params []string
	Body   *BlockExpr
}

func (*LetStmt) stmtNode()      {}
func (*ConstStmt) stmtNode()    {}
func (*ExprStmt) stmtNode()     {}
func (*WhileStmt) stmtNode()    {}
func (*BreakStmt) stmtNode()    {}
func (*ContinueStmt) stmtNode() {}
func (*ReturnStmt) stmtNode()   {}
func (*EndStmt) stmtNode()      {}
func (*FnDeclStmt) stmtNode()   {}
func (*ProcDeclStmt) stmtNode() {}

// Program is the root node: a sequence of top-level statements.
type Program struct {
	Stmts []Stmt
}
