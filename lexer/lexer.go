/*
File    : numlang/lexer/lexer.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)

Package lexer turns numlang source text into a stream of Tokens. It
tracks byte position plus line/column so every token (and every
lexical error) carries a span the parser and evaluator can forward
into a diag.Diagnostic.
*/
package lexer

import (
	"unicode"

	"github.com/akashmaji946/numlang/diag"
)

// Lexer scans UTF-8 source byte by byte. Identifiers and numbers are
// ASCII in practice; multi-byte runes simply fail isAlpha/isNumeric and
// surface as an illegal-character LexError, which is the behavior
// spec.md §4.1 asks for.
type Lexer struct {
	Src       string
	Current   byte
	Position  int
	SrcLength int
	Line      int
	Column    int
}

// NewLexer creates a Lexer positioned at the start of src, line 1
// column 1.
func NewLexer(src string) Lexer {
	current := byte(0)
	if len(src) > 0 {
		current = src[0]
	}
	return Lexer{
		Src:       src,
		Current:   current,
		Position:  0,
		SrcLength: len(src),
		Line:      1,
		Column:    1,
	}
}

// Peek looks at the next byte without consuming it, returning 0 at EOF.
func (lex *Lexer) Peek() byte {
	if lex.Position+1 >= lex.SrcLength {
		return 0
	}
	return lex.Src[lex.Position+1]
}

// Advance consumes the current byte and moves to the next one,
// updating Position/Column. Line is bumped separately wherever a
// newline is actually consumed (IgnoreWhitespaceAndComments,
// skipBlockComment); the number and identifier scanners never cross a
// physical line.
func (lex *Lexer) Advance() {
	lex.Position++
	lex.Column++
	if lex.Position >= lex.SrcLength {
		lex.Current = 0
		lex.Position = lex.SrcLength
	} else {
		lex.Current = lex.Src[lex.Position]
	}
}

func (lex *Lexer) here(tokenType TokenType, literal string, startLine, startColumn, startPos int) Token {
	return NewToken(tokenType, literal, startPos, lex.Position, startLine, startColumn)
}

// IgnoreWhitespaceAndComments skips whitespace, line comments (//...)
// and block comments (/* ... */) ahead of the next token. It is called
// at the top of NextToken and reports an unterminated block comment as
// a LexError via the returned diagnostic (nil if none was hit).
func (lex *Lexer) IgnoreWhitespaceAndComments() *diag.Diagnostic {
	for {
		if isWhitespace(lex.Current) {
			if lex.Current == '\n' {
				lex.Line++
				lex.Column = 0 // Advance() below brings it to 1
			}
			lex.Advance()
		} else if lex.Current == '/' && lex.Peek() == '/' {
			lex.skipLineComment()
		} else if lex.Current == '/' && lex.Peek() == '*' {
			if d := lex.skipBlockComment(); d != nil {
				return d
			}
		} else {
			return nil
		}
	}
}

func (lex *Lexer) skipLineComment() {
	lex.Advance() // first '/'
	lex.Advance() // second '/'
	for lex.Current != '\n' && lex.Current != 0 {
		lex.Advance()
	}
}

// skipBlockComment consumes "/* ... */". Block comments do not nest;
// running off the end of the source before seeing the closer is a
// LexError (spec.md §4.1).
func (lex *Lexer) skipBlockComment() *diag.Diagnostic {
	startLine, startColumn, startPos := lex.Line, lex.Column, lex.Position
	lex.Advance() // '/'
	lex.Advance() // '*'
	for {
		if lex.Current == 0 {
			return diag.New(diag.LexError, diag.Span{Start: startPos, End: lex.Position, Line: startLine, Column: startColumn},
				"unterminated block comment")
		}
		if lex.Current == '*' && lex.Peek() == '/' {
			lex.Advance()
			lex.Advance()
			return nil
		}
		if lex.Current == '\n' {
			lex.Line++
			lex.Column = 0
		}
		lex.Advance()
	}
}

// NextToken returns the next token, skipping leading whitespace and
// comments. On a lexical error (illegal character, unterminated block
// comment) it returns an INVALID_TYPE token and a non-nil diagnostic;
// the parser is expected to stop at the first one. Number literals are
// not converted here; the parser reports a literal that fails to convert.
func (lex *Lexer) NextToken() (Token, *diag.Diagnostic) {
	if d := lex.IgnoreWhitespaceAndComments(); d != nil {
		return NewToken(INVALID_TYPE, "", d.Span.Start, d.Span.End, d.Span.Line, d.Span.Column), d
	}

	line, column, pos := lex.Line, lex.Column, lex.Position

	switch {
	case lex.Current == 0:
		return lex.here(EOF_TYPE, "", line, column, pos), nil

	case lex.Current == '=':
		if lex.Peek() == '=' {
			lex.Advance()
			lex.Advance()
			return lex.here(EQ_OP, "==", line, column, pos), nil
		}
		lex.Advance()
		return lex.here(ASSIGN_OP, "=", line, column, pos), nil

	case lex.Current == '!':
		if lex.Peek() == '=' {
			lex.Advance()
			lex.Advance()
			return lex.here(NE_OP, "!=", line, column, pos), nil
		}
		lex.Advance()
		return lex.here(NOT_OP, "!", line, column, pos), nil

	case lex.Current == '<':
		if lex.Peek() == '=' {
			lex.Advance()
			lex.Advance()
			return lex.here(LE_OP, "<=", line, column, pos), nil
		}
		lex.Advance()
		return lex.here(LT_OP, "<", line, column, pos), nil

	case lex.Current == '>':
		if lex.Peek() == '=' {
			lex.Advance()
			lex.Advance()
			return lex.here(GE_OP, ">=", line, column, pos), nil
		}
		lex.Advance()
		return lex.here(GT_OP, ">", line, column, pos), nil

	case lex.Current == '&':
		if lex.Peek() == '&' {
			lex.Advance()
			lex.Advance()
			return lex.here(AND_OP, "&&", line, column, pos), nil
		}
		d := diag.New(diag.LexError, diag.Span{Start: pos, End: pos + 1, Line: line, Column: column}, "unexpected character '&'")
		lex.Advance()
		return lex.here(INVALID_TYPE, "&", line, column, pos), d

	case lex.Current == '|':
		if lex.Peek() == '|' {
			lex.Advance()
			lex.Advance()
			return lex.here(OR_OP, "||", line, column, pos), nil
		}
		d := diag.New(diag.LexError, diag.Span{Start: pos, End: pos + 1, Line: line, Column: column}, "unexpected character '|'")
		lex.Advance()
		return lex.here(INVALID_TYPE, "|", line, column, pos), d

	case lex.Current == '+':
		lex.Advance()
		return lex.here(PLUS_OP, "+", line, column, pos), nil
	case lex.Current == '-':
		lex.Advance()
		return lex.here(MINUS_OP, "-", line, column, pos), nil
	case lex.Current == '*':
		lex.Advance()
		return lex.here(MUL_OP, "*", line, column, pos), nil
	case lex.Current == '/':
		lex.Advance()
		return lex.here(DIV_OP, "/", line, column, pos), nil
	case lex.Current == '%':
		lex.Advance()
		return lex.here(MOD_OP, "%", line, column, pos), nil
	case lex.Current == '^':
		lex.Advance()
		return lex.here(POW_OP, "^", line, column, pos), nil
	case lex.Current == '(':
		lex.Advance()
		return lex.here(LEFT_PAREN, "(", line, column, pos), nil
	case lex.Current == ')':
		lex.Advance()
		return lex.here(RIGHT_PAREN, ")", line, column, pos), nil
	case lex.Current == '{':
		lex.Advance()
		return lex.here(LEFT_BRACE, "{", line, column, pos), nil
	case lex.Current == '}':
		lex.Advance()
		return lex.here(RIGHT_BRACE, "}", line, column, pos), nil
	case lex.Current == ',':
		lex.Advance()
		return lex.here(COMMA_DELIM, ",", line, column, pos), nil
	case lex.Current == ';':
		lex.Advance()
		return lex.here(SEMICOLON_DELIM, ";", line, column, pos), nil

	case isNumeric(lex.Current):
		return lex.readNumber()

	case isAlpha(lex.Current) || lex.Current == '_':
		return lex.readIdentifier()

	default:
		c := lex.Current
		d := diag.New(diag.LexError, diag.Span{Start: pos, End: pos + 1, Line: line, Column: column}, "unexpected character %q", c)
		lex.Advance()
		return lex.here(INVALID_TYPE, string(c), line, column, pos), d
	}
}

// readNumber scans one or more digits, an optional "." followed by one
// or more digits, and an optional e/E exponent with optional sign.
// Signs are never part of a number token; `-5` is prefix-minus applied
// to `5`.
func (lex *Lexer) readNumber() (Token, *diag.Diagnostic) {
	line, column, pos := lex.Line, lex.Column, lex.Position

	for isNumeric(lex.Current) {
		lex.Advance()
	}

	if lex.Current == '.' && isNumeric(lex.Peek()) {
		lex.Advance() // '.'
		for isNumeric(lex.Current) {
			lex.Advance()
		}
	}

	if lex.Current == 'e' || lex.Current == 'E' {
		lookahead := lex.Position + 1
		if lookahead < lex.SrcLength && (lex.Src[lookahead] == '+' || lex.Src[lookahead] == '-') {
			lookahead++
		}
		if lookahead < lex.SrcLength && isDigitByte(lex.Src[lookahead]) {
			lex.Advance() // e/E
			if lex.Current == '+' || lex.Current == '-' {
				lex.Advance()
			}
			for isNumeric(lex.Current) {
				lex.Advance()
			}
		}
	}

	literal := lex.Src[pos:lex.Position]
	return NewToken(NUMBER_LIT, literal, pos, lex.Position, line, column), nil
}

// readIdentifier scans a run of identifier characters and classifies
// it as a keyword or a plain identifier.
func (lex *Lexer) readIdentifier() (Token, *diag.Diagnostic) {
	line, column, pos := lex.Line, lex.Column, lex.Position
	for isAlpha(lex.Current) || isNumeric(lex.Current) || lex.Current == '_' {
		lex.Advance()
	}
	literal := lex.Src[pos:lex.Position]
	return NewToken(lookupIdent(literal), literal, pos, lex.Position, line, column), nil
}

// ConsumeTokens tokenizes the entire source, stopping at EOF or the
// first lexical error. Mainly useful for tests and debugging.
func (lex *Lexer) ConsumeTokens() ([]Token, *diag.Diagnostic) {
	tokens := make([]Token, 0)
	for {
		tok, d := lex.NextToken()
		if d != nil {
			return tokens, d
		}
		if tok.Type == EOF_TYPE {
			break
		}
		tokens = append(tokens, tok)
	}
	return tokens, nil
}

func isWhitespace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == '\v'
}

func isDigitByte(c byte) bool {
	return c >= '0' && c <= '9'
}

func isNumeric(c byte) bool {
	return isDigitByte(c)
}

func isAlpha(c byte) bool {
	return c < 0x80 && unicode.IsLetter(rune(c))
}
