// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

// Query Grammar (EBNF):

// query    = WS? or_expr { WS token } WS? EOF ;  (trailing tokens are not consumed)
// or_expr  = and_expr { WS "OR" WS and_expr } ;
// and_expr = not_expr { WS "AND" WS not_expr } ;
// not_expr = term { WS "NOT" WS term } ;
// term     = WORD ;
//
// Notes:
// - Operator keywords are matched case-insensitively ("and", "Or" and "NOT" are all operators)
// - Precedence from tightest to loosest is NOT, AND, OR; every level is left-associative
// - "x NOT y" means "x but not y" and is built as And(x, Not(y))
// - There are no parentheses, grouping is decided only by precedence
// - Parsing stops at a term that does not follow an operator; the rest is ignored

package searchparser

import (
	"fmt"
)

// --- Parser Definition ---

// Parser is single use and not safe for concurrent use. Separate Parsers share
// no state, so independent queries can be parsed in parallel.
type Parser struct {
	tokens   []Token // from the tokenizer, always terminated by EOF
	position int
	input    string // original input (for error reporting)
}

// NewParser creates a parser and tokenizes the input.
func NewParser(input string) *Parser {
	tokenizer := NewTokenizer(input)
	return &Parser{
		tokens:   tokenizer.GetAllTokens(),
		position: 0,
		input:    input,
	}
}

// Parse is shorthand for NewParser(query).Parse().
func Parse(query string) (*Node, error) {
	return NewParser(query).Parse()
}

// --- Helper Functions ---

func (p *Parser) current() Token {
	if p.position < len(p.tokens) {
		return p.tokens[p.position]
	}
	return Token{Type: TokenEOF, Value: "", Position: Position{Start: len(p.input), End: len(p.input)}}
}

func (p *Parser) atEOF() bool {
	return p.current().Type == TokenEOF
}

func (p *Parser) advance() {
	if !p.atEOF() {
		p.position++
	}
}

// consumeToken advances past the current token if it has the given type.
func (p *Parser) consumeToken(tokenType TokenType) bool {
	if p.current().Type != tokenType {
		return false
	}
	p.advance()
	return true
}

func (p *Parser) makeError(tok Token, format string, args ...any) *ParseError {
	return &ParseError{
		Msg:      fmt.Sprintf(format, args...),
		Position: tok.Position,
		Query:    p.input,
	}
}

// --- Top-Level Parse Function ---

// Parse builds the tree for the query. Parsing stops at the first term that
// does not follow an operator; that term and everything after it are left
// unconsumed (see Unparsed), so "foo bar" parses as TERM("foo").
// Errors always satisfy errors.Is(err, ErrMalformedQuery).
func (p *Parser) Parse() (*Node, error) {
	return p.parseOrExpr()
}

// Unparsed returns the tokens Parse left unconsumed, EOF excluded
func (p *Parser) Unparsed() []Token {
	var rtn []Token
	for _, tok := range p.tokens[p.position:] {
		if tok.Type == TokenEOF {
			break
		}
		rtn = append(rtn, tok)
	}
	return rtn
}

// Tokens returns every token of the query, EOF included
func (p *Parser) Tokens() []Token {
	return p.tokens
}

// --- Parsing Functions Corresponding to the EBNF ---

// or_expr = and_expr { "OR" and_expr } ;
func (p *Parser) parseOrExpr() (*Node, error) {
	left, err := p.parseAndExpr()
	if err != nil {
		return nil, err
	}
	for p.consumeToken(TokenOr) {
		right, err := p.parseAndExpr()
		if err != nil {
			return nil, err
		}
		left = MakeOrNode(left, right)
	}
	return left, nil
}

// and_expr = not_expr { "AND" not_expr } ;
func (p *Parser) parseAndExpr() (*Node, error) {
	left, err := p.parseNotExpr()
	if err != nil {
		return nil, err
	}
	for p.consumeToken(TokenAnd) {
		right, err := p.parseNotExpr()
		if err != nil {
			return nil, err
		}
		left = MakeAndNode(left, right)
	}
	return left, nil
}

// not_expr = term { "NOT" term } ;
// each NOT folds the accumulated expression into And(left, Not(term))
func (p *Parser) parseNotExpr() (*Node, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for p.consumeToken(TokenNot) {
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		left = MakeAndNode(left, MakeNotNode(right))
	}
	return left, nil
}

// term = WORD ;
func (p *Parser) parseTerm() (*Node, error) {
	cur := p.current()
	switch {
	case cur.Type == TokenEOF:
		return nil, p.makeError(cur, "unexpected end of query")
	case cur.IsOperator():
		return nil, p.makeError(cur, "unexpected operator %s", cur.Value)
	}
	p.advance()
	node := MakeTermNode(cur.Value)
	node.Position = cur.Position
	return node, nil
}
