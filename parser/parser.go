/*
File    : numlang/parser/parser.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)

Parser is a Pratt (top-down operator-precedence) driver over the
lexer's token stream. Unlike the teacher's parser, this one never
evaluates anything while parsing — it only builds a tree — so that the
evaluator stage is the sole owner of step budgets, deadlines, and
runtime semantics (spec.md §5).

Internally, parse errors are reported by panicking with a parseAbort
and recovered at the top of Parse; this keeps every nud/led helper
free of manual error-propagation plumbing, the same trick the standard
library's text/template parser uses.
*/
package parser

import (
	"strconv"

	"github.com/akashmaji946/numlang/diag"
	"github.com/akashmaji946/numlang/lexer"
)

// Parser drives lex token-by-token with one token of lookahead (Cur,
// Peek), tracking whether the current parse position is lexically
// inside a function body (FnDepth) or a loop body (LoopDepth) so that
// return/break/continue are legalized at parse time per spec.md §4.2.
type Parser struct {
	Lex  *lexer.Lexer
	Cur  lexer.Token
	Peek lexer.Token

	FnDepth   int
	LoopDepth int
}

type parseAbort struct {
	d *diag.Diagnostic
}

// NewParser creates a Parser over source text. The first two tokens are
// read when Parse starts, so a lexical error among them is reported by
// Parse like any other.
func NewParser(source string) *Parser {
	lex := lexer.NewLexer(source)
	return &Parser{Lex: &lex}
}

// bump shifts Peek into Cur and reads a new Peek token. A lexical
// error aborts the parse immediately, matching the "evaluation never
// continues past an error" rule of spec.md §7 applied to lexing too.
func (p *Parser) bump() {
	p.Cur = p.Peek
	tok, d := p.Lex.NextToken()
	if d != nil {
		panic(parseAbort{d})
	}
	p.Peek = tok
}

func (p *Parser) curSpan() diag.Span {
	return diag.Span{Start: p.Cur.Start, End: p.Cur.End, Line: p.Cur.Line, Column: p.Cur.Column}
}

func (p *Parser) errorf(kind diag.Kind, span diag.Span, format string, args ...interface{}) {
	panic(parseAbort{diag.New(kind, span, format, args...)})
}

// expect consumes Cur if it has type tt, else aborts with a SyntaxError
// naming what was expected.
func (p *Parser) expect(tt lexer.TokenType) lexer.Token {
	if p.Cur.Type != tt {
		p.errorf(diag.SyntaxError, p.curSpan(), "expected %q, found %q", tt, p.Cur.Literal)
	}
	tok := p.Cur
	p.bump()
	return tok
}

func (p *Parser) expectIdent() string {
	tok := p.expect(lexer.IDENTIFIER_ID)
	return tok.Literal
}

func (p *Parser) skipSeparators() {
	for p.Cur.Type == lexer.SEMICOLON_DELIM {
		p.bump()
	}
}

func isStmtKeyword(tt lexer.TokenType) bool {
	switch tt {
	case lexer.LET_KEY, lexer.CONST_KEY, lexer.WHILE_KEY, lexer.BREAK_KEY, lexer.CONTINUE_KEY,
		lexer.RETURN_KEY, lexer.END_KEY, lexer.FN_KEY, lexer.PROC_KEY:
		return true
	default:
		return false
	}
}

func isBlockLike(e Expr) bool {
	switch e.(type) {
	case *IfExpr, *BlockExpr:
		return true
	default:
		return false
	}
}

func spanAcross(from, to diag.Span) diag.Span {
	return diag.Span{Start: from.Start, End: to.End, Line: from.Line, Column: from.Column}
}

// Parse consumes the entire token stream and returns the resulting
// Program, or nil and a single Diagnostic on the first error. Unlike
// the teacher's HasErrors()/GetErrors() multi-error collection, this
// parser stops at the first diagnostic: spec.md's interpret facade
// returns one Result<Value, Diagnostic>, not a batch.
func (p *Parser) Parse() (prog *Program, err *diag.Diagnostic) {
	defer func() {
		if r := recover(); r != nil {
			if pa, ok := r.(parseAbort); ok {
				err = pa.d
				return
			}
			panic(r)
		}
	}()

	p.bump()
	p.bump()
	stmts, trailing := p.parseStmtsUntil(lexer.EOF_TYPE)
	if trailing != nil {
		stmts = append(stmts, &ExprStmt{base{trailing.Span()}, trailing})
	}
	p.expect(lexer.EOF_TYPE)
	return &Program{Stmts: stmts}, nil
}

// parseStmtsUntil parses statements (and, if the grammar allows one, a
// trailing expression) up to but not including a token of type term.
// It is shared by the top-level program and by `{ ... }` blocks.
func (p *Parser) parseStmtsUntil(term lexer.TokenType) ([]Stmt, Expr) {
	stmts := make([]Stmt, 0)
	var trailing Expr

	p.skipSeparators()
	for p.Cur.Type != term {
		if p.Cur.Type == lexer.EOF_TYPE {
			p.errorf(diag.SyntaxError, p.curSpan(), "unexpected end of input, expected %q", term)
		}

		if isStmtKeyword(p.Cur.Type) {
			stmts = append(stmts, p.parseKeywordStmt())
			p.skipSeparators()
			continue
		}

		e := p.parseExpr(LOWEST_BP)
		switch {
		case p.Cur.Type == lexer.SEMICOLON_DELIM:
			stmts = append(stmts, &ExprStmt{base{e.Span()}, e})
			p.skipSeparators()
		case p.Cur.Type == term:
			trailing = e
		case isBlockLike(e):
			stmts = append(stmts, &ExprStmt{base{e.Span()}, e})
			p.skipSeparators()
		default:
			p.errorf(diag.SyntaxError, p.curSpan(), "expected ';' before %q", p.Cur.Literal)
		}
	}
	return stmts, trailing
}

// ---- Pratt expression driver ----

func (p *Parser) parseExpr(minBP int) Expr {
	left := p.parseNud()
	for {
		tt := p.Cur.Type
		lbp := infixBindingPower(tt)
		if lbp == -1 || lbp <= minBP {
			break
		}
		left = p.parseInfix(left, tt)
	}
	return left
}

func (p *Parser) parseNud() Expr {
	switch p.Cur.Type {
	case lexer.NUMBER_LIT:
		tok := p.Cur
		p.bump()
		v, convErr := strconv.ParseFloat(tok.Literal, 64)
		if convErr != nil {
			p.errorf(diag.LexError, diag.Span{Start: tok.Start, End: tok.End, Line: tok.Line, Column: tok.Column},
				"malformed number %q", tok.Literal)
		}
		return &NumberExpr{base{diag.Span{Start: tok.Start, End: tok.End, Line: tok.Line, Column: tok.Column}}, v}

	case lexer.TRUE_KEY:
		span := p.curSpan()
		p.bump()
		return &NumberExpr{base{span}, 1}

	case lexer.FALSE_KEY:
		span := p.curSpan()
		p.bump()
		return &NumberExpr{base{span}, 0}

	case lexer.IDENTIFIER_ID:
		tok := p.Cur
		span := diag.Span{Start: tok.Start, End: tok.End, Line: tok.Line, Column: tok.Column}
		name := tok.Literal
		p.bump()
		if p.Cur.Type == lexer.ASSIGN_OP {
			p.bump()
			value := p.parseExpr(ASSIGN_BP)
			return &AssignExpr{base{span}, name, value}
		}
		if p.Cur.Type == lexer.LEFT_PAREN {
			return p.parseCall(name, span)
		}
		return &IdentifierExpr{base{span}, name}

	case lexer.PLUS_OP, lexer.MINUS_OP, lexer.NOT_OP:
		op := string(p.Cur.Type)
		span := p.curSpan()
		p.bump()
		operand := p.parseExpr(PREFIX_BP)
		return &PrefixExpr{base{span}, op, operand}

	case lexer.LEFT_PAREN:
		p.bump()
		e := p.parseExpr(LOWEST_BP)
		p.expect(lexer.RIGHT_PAREN)
		return e

	case lexer.LEFT_BRACE:
		return p.parseBlockExpr()

	case lexer.IF_KEY:
		return p.parseIfExpr()

	default:
		p.errorf(diag.SyntaxError, p.curSpan(), "unexpected token %q", p.Cur.Literal)
		panic("unreachable")
	}
}

func (p *Parser) parseInfix(left Expr, tt lexer.TokenType) Expr {
	op := string(tt)
	p.bump()
	right := p.parseExpr(rightBindingPower(tt))
	return &InfixExpr{base{spanAcross(left.Span(), right.Span())}, op, left, right}
}

func (p *Parser) parseCall(name string, span diag.Span) Expr {
	p.expect(lexer.LEFT_PAREN)
	args := make([]Expr, 0)
	if p.Cur.Type != lexer.RIGHT_PAREN {
		args = append(args, p.parseExpr(LOWEST_BP))
		for p.Cur.Type == lexer.COMMA_DELIM {
			p.bump()
			args = append(args, p.parseExpr(LOWEST_BP))
		}
	}
	closeTok := p.expect(lexer.RIGHT_PAREN)
	return &CallExpr{base{spanAcross(span, diag.Span{Start: closeTok.Start, End: closeTok.End, Line: closeTok.Line, Column: closeTok.Column})}, name, args}
}

func (p *Parser) parseBlockExpr() *BlockExpr {
	span := p.curSpan()
	p.expect(lexer.LEFT_BRACE)
	stmts, trailing := p.parseStmtsUntil(lexer.RIGHT_BRACE)
	p.expect(lexer.RIGHT_BRACE)
	return &BlockExpr{base{span}, stmts, trailing}
}

func (p *Parser) parseIfExpr() Expr {
	span := p.curSpan()
	p.expect(lexer.IF_KEY)
	cond := p.parseExpr(LOWEST_BP)
	then := p.parseBlockExpr()

	var elseExpr Expr
	if p.Cur.Type == lexer.ELSE_KEY {
		p.bump()
		if p.Cur.Type == lexer.IF_KEY {
			elseExpr = p.parseIfExpr()
		} else {
			elseExpr = p.parseBlockExpr()
		}
	}
	return &IfExpr{base{span}, cond, then, elseExpr}
}

// ---- Statements ----

func (p *Parser) parseKeywordStmt() Stmt {
	switch p.Cur.Type {
	case lexer.LET_KEY:
		return p.parseLetStmt()
	case lexer.CONST_KEY:
		return p.parseConstStmt()
	case lexer.WHILE_KEY:
		return p.parseWhileStmt()
	case lexer.BREAK_KEY:
		return p.parseBreakStmt()
	case lexer.CONTINUE_KEY:
		return p.parseContinueStmt()
	case lexer.RETURN_KEY:
		return p.parseReturnStmt()
	case lexer.END_KEY:
		return p.parseEndStmt()
	case lexer.FN_KEY:
		return p.parseFnDecl()
	case lexer.PROC_KEY:
		return p.parseProcDecl()
	default:
		p.errorf(diag.SyntaxError, p.curSpan(), "unexpected token %q", p.Cur.Literal)
		panic("unreachable")
	}
}

func (p *Parser) parseLetStmt() Stmt {
	span := p.curSpan()
	p.expect(lexer.LET_KEY)
	name := p.expectIdent()
	p.expect(lexer.ASSIGN_OP)
	init := p.parseExpr(LOWEST_BP)
	return &LetStmt{base{span}, name, init}
}

func (p *Parser) parseConstStmt() Stmt {
	span := p.curSpan()
	p.expect(lexer.CONST_KEY)
	name := p.expectIdent()
	p.expect(lexer.ASSIGN_OP)
	init := p.parseExpr(LOWEST_BP)
	return &ConstStmt{base{span}, name, init}
}

func (p *Parser) parseWhileStmt() Stmt {
	span := p.curSpan()
	p.expect(lexer.WHILE_KEY)
	cond := p.parseExpr(LOWEST_BP)
	p.LoopDepth++
	body := p.parseBlockExpr()
	p.LoopDepth--
	return &WhileStmt{base{span}, cond, body}
}

func (p *Parser) parseBreakStmt() Stmt {
	span := p.curSpan()
	p.expect(lexer.BREAK_KEY)
	if p.LoopDepth == 0 {
		p.errorf(diag.SyntaxError, span, "'break' used outside a loop")
	}
	return &BreakStmt{base{span}}
}

func (p *Parser) parseContinueStmt() Stmt {
	span := p.curSpan()
	p.expect(lexer.CONTINUE_KEY)
	if p.LoopDepth == 0 {
		p.errorf(diag.SyntaxError, span, "'continue' used outside a loop")
	}
	return &ContinueStmt{base{span}}
}

func (p *Parser) atStmtEnd() bool {
	return p.Cur.Type == lexer.SEMICOLON_DELIM || p.Cur.Type == lexer.RIGHT_BRACE || p.Cur.Type == lexer.EOF_TYPE
}

func (p *Parser) parseReturnStmt() Stmt {
	span := p.curSpan()
	p.expect(lexer.RETURN_KEY)
	if p.FnDepth == 0 {
		p.errorf(diag.SyntaxError, span, "'return' used outside a function body")
	}
	var value Expr
	if !p.atStmtEnd() {
		value = p.parseExpr(LOWEST_BP)
	}
	return &ReturnStmt{base{span}, value}
}

func (p *Parser) parseEndStmt() Stmt {
	span := p.curSpan()
	p.expect(lexer.END_KEY)
	var value Expr
	if !p.atStmtEnd() {
		value = p.parseExpr(LOWEST_BP)
	}
	return &EndStmt{base{span}, value}
}

func (p *Parser) parseParamList() []string {
	p.expect(lexer.LEFT_PAREN)
	params := make([]string, 0)
	if p.Cur.Type != lexer.RIGHT_PAREN {
		params = append(params, p.expectIdent())
		for p.Cur.Type == lexer.COMMA_DELIM {
			p.bump()
			params = append(params, p.expectIdent())
		}
	}
	p.expect(lexer.RIGHT_PAREN)
	return params
}

func (p *Parser) parseFnDecl() Stmt {
	span := p.curSpan()
	p.expect(lexer.FN_KEY)
	name := p.expectIdent()
	params := p.parseParamList()

	savedFn, savedLoop := p.FnDepth, p.LoopDepth
	p.FnDepth, p.LoopDepth = 1, 0
	body := p.parseBlockExpr()
	p.FnDepth, p.LoopDepth = savedFn, savedLoop

	return &FnDeclStmt{base{span}, name, params, body}
}

func (p *Parser) parseProcDecl() Stmt {
	span := p.curSpan()
	p.expect(lexer.PROC_KEY)
	name := p.expectIdent()
	params := p.parseParamList()

	// A proc body is not a function body: `return` is illegal inside it
	// (spec.md §4.4) even if the proc is declared lexically inside a fn.
	savedFn, savedLoop := p.FnDepth, p.LoopDepth
	p.FnDepth, p.LoopDepth = 0, 0
	body := p.parseBlockExpr()
	p.FnDepth, p.LoopDepth = savedFn, savedLoop

	return &ProcDeclStmt{base{span}, name, params, body}
}
