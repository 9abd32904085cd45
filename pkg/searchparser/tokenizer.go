// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package searchparser

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// TokenType represents the type of token
type TokenType string

const (
	TokenTerm TokenType = "TERM" // Any non-operator word, kept verbatim
	TokenAnd  TokenType = "AND"
	TokenOr   TokenType = "OR"
	TokenNot  TokenType = "NOT"
	TokenEOF  TokenType = "EOF" // End of input
)

// Token represents a token in the query
type Token struct {
	Type     TokenType // Type of the token
	Value    string    // Term text, or the uppercased operator keyword
	Position Position  // Byte offsets in the source
}

// IsOperator reports whether the token is one of AND, OR or NOT.
func (t Token) IsOperator() bool {
	return t.Type == TokenAnd || t.Type == TokenOr || t.Type == TokenNot
}

// Tokenizer splits a query on runs of whitespace
type Tokenizer struct {
	input        string // Input string
	position     int    // Current position in input (points to current char)
	readPosition int    // Current reading position in input (after current char)
	ch           rune   // Current character
}

// NewTokenizer creates a new tokenizer for the given input
func NewTokenizer(input string) *Tokenizer {
	t := &Tokenizer{input: input}
	t.readChar()
	return t
}

// readChar decodes the next rune from the input
func (t *Tokenizer) readChar() {
	t.position = t.readPosition
	if t.readPosition >= len(t.input) {
		t.ch = 0 // EOF
		return
	}
	r, size := utf8.DecodeRuneInString(t.input[t.readPosition:])
	t.ch = r
	t.readPosition += size
}

func (t *Tokenizer) atEOF() bool {
	return t.position >= len(t.input)
}

func (t *Tokenizer) skipWhitespace() {
	for !t.atEOF() && unicode.IsSpace(t.ch) {
		t.readChar()
	}
}

// readWord reads up to the next whitespace or end of input
func (t *Tokenizer) readWord() string {
	startPos := t.position
	for !t.atEOF() && !unicode.IsSpace(t.ch) {
		t.readChar()
	}
	return t.input[startPos:t.position]
}

// keywordType returns the operator type for word, matched case-insensitively
func keywordType(word string) (TokenType, bool) {
	switch strings.ToUpper(word) {
	case "AND":
		return TokenAnd, true
	case "OR":
		return TokenOr, true
	case "NOT":
		return TokenNot, true
	}
	return "", false
}

// NextToken returns the next token from the input. Whitespace is never
// returned as a token, so empty pieces from repeated whitespace are dropped.
func (t *Tokenizer) NextToken() Token {
	t.skipWhitespace()
	startPos := t.position
	if t.atEOF() {
		return Token{Type: TokenEOF, Value: "", Position: Position{Start: startPos, End: startPos}}
	}
	word := t.readWord()
	pos := Position{Start: startPos, End: t.position}
	if opType, ok := keywordType(word); ok {
		return Token{Type: opType, Value: string(opType), Position: pos}
	}
	return Token{Type: TokenTerm, Value: word, Position: pos}
}

// GetAllTokens tokenizes the entire input; the last token is always EOF
func (t *Tokenizer) GetAllTokens() []Token {
	var tokens []Token
	for {
		tok := t.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == TokenEOF {
			break
		}
	}
	return tokens
}

// TokensToString joins token values with single spaces (EOF excluded)
func TokensToString(tokens []Token) string {
	parts := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if tok.Type == TokenEOF {
			continue
		}
		parts = append(parts, tok.Value)
	}
	return strings.Join(parts, " ")
}
