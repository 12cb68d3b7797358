/*
File    : numlang/parser/precedence.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)

Binding-power table, straight out of spec.md §4.2. Right-associativity
is encoded the usual Pratt way: the operator's rbp used when parsing
its right operand is lbp for left-assoc operators, lbp-1 for `^`
(the one right-assoc binary operator in this grammar).
*/
package parser

import "github.com/akashmaji946/numlang/lexer"

const (
	LOWEST_BP = 0
	ASSIGN_BP = 5

	OR_BP         = 10
	AND_BP        = 20
	EQUALITY_BP   = 30
	RELATIONAL_BP = 40
	ADDITIVE_BP   = 50
	MULT_BP       = 60
	POWER_BP      = 70
	PREFIX_BP     = 80
	CALL_BP       = 90
)

// infixBindingPower returns the left binding power of tok when used as
// an infix/postfix operator, or -1 if tok never appears there.
func infixBindingPower(tokType lexer.TokenType) int {
	switch tokType {
	case lexer.POW_OP:
		return POWER_BP
	case lexer.MUL_OP, lexer.DIV_OP, lexer.MOD_OP:
		return MULT_BP
	case lexer.PLUS_OP, lexer.MINUS_OP:
		return ADDITIVE_BP
	case lexer.LT_OP, lexer.LE_OP, lexer.GT_OP, lexer.GE_OP:
		return RELATIONAL_BP
	case lexer.EQ_OP, lexer.NE_OP:
		return EQUALITY_BP
	case lexer.AND_OP:
		return AND_BP
	case lexer.OR_OP:
		return OR_BP
	default:
		return -1
	}
}

// rightBindingPower returns the minimum binding power used to parse the
// right-hand operand of tok: equal to its lbp for left-associative
// operators, one less for the right-associative `^`.
func rightBindingPower(tokType lexer.TokenType) int {
	if tokType == lexer.POW_OP {
		return POWER_BP - 1
	}
	return infixBindingPower(tokType)
}
