// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package searchparser

import (
	"errors"
	"testing"
)

func term(s string) *Node { return MakeTermNode(s) }

func and(l, r *Node) *Node { return MakeAndNode(l, r) }

func or(l, r *Node) *Node { return MakeOrNode(l, r) }

func not(operand *Node) *Node { return MakeNotNode(operand) }

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  *Node
	}{
		{
			name:  "single term",
			input: "aaa",
			want:  term("aaa"),
		},
		{
			name:  "single term with surrounding whitespace",
			input: "   aaa \t",
			want:  term("aaa"),
		},
		{
			name:  "term case is preserved",
			input: "FooBar",
			want:  term("FooBar"),
		},
		{
			name:  "and",
			input: "aaa AND bbb",
			want:  and(term("aaa"), term("bbb")),
		},
		{
			name:  "or",
			input: "aaa OR bbb",
			want:  or(term("aaa"), term("bbb")),
		},
		{
			name:  "not desugars to and-not",
			input: "aaa NOT bbb",
			want:  and(term("aaa"), not(term("bbb"))),
		},
		{
			name:  "lowercase operators",
			input: "aaa and bbb or ccc",
			want:  or(and(term("aaa"), term("bbb")), term("ccc")),
		},
		{
			name:  "and is left associative",
			input: "aaa AND bbb AND ccc",
			want:  and(and(term("aaa"), term("bbb")), term("ccc")),
		},
		{
			name:  "or is left associative",
			input: "aaa OR bbb OR ccc",
			want:  or(or(term("aaa"), term("bbb")), term("ccc")),
		},
		{
			name:  "and binds tighter than or (and first)",
			input: "aaa AND bbb OR ccc",
			want:  or(and(term("aaa"), term("bbb")), term("ccc")),
		},
		{
			name:  "and binds tighter than or (or first)",
			input: "aaa OR bbb AND ccc",
			want:  or(term("aaa"), and(term("bbb"), term("ccc"))),
		},
		{
			name:  "not binds tighter than and",
			input: "aaa AND bbb NOT ccc",
			want:  and(term("aaa"), and(term("bbb"), not(term("ccc")))),
		},
		{
			name:  "chained not folds left",
			input: "aaa NOT bbb NOT ccc",
			want:  and(and(term("aaa"), not(term("bbb"))), not(term("ccc"))),
		},
		{
			name:  "and with chained not",
			input: "aaa AND bbb NOT ccc NOT ddd",
			want:  and(term("aaa"), and(and(term("bbb"), not(term("ccc"))), not(term("ddd")))),
		},
		{
			name:  "all three operators",
			input: "aaa OR bbb AND ccc NOT ddd",
			want:  or(term("aaa"), and(term("bbb"), and(term("ccc"), not(term("ddd"))))),
		},
		{
			name:  "punctuation inside terms",
			input: "err!=nil AND return",
			want:  and(term("err!=nil"), term("return")),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse(%q) returned error: %v", tt.input, err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("Parse(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantMsg string
		wantPos int
	}{
		{name: "empty", input: "", wantMsg: "unexpected end of query", wantPos: 0},
		{name: "whitespace only", input: "   ", wantMsg: "unexpected end of query", wantPos: 3},
		{name: "leading operator", input: "AND bbb", wantMsg: "unexpected operator AND", wantPos: 0},
		{name: "trailing operator", input: "aaa AND", wantMsg: "unexpected end of query", wantPos: 7},
		{name: "only operator", input: "or", wantMsg: "unexpected operator OR", wantPos: 0},
		{name: "leading not", input: "NOT aaa", wantMsg: "unexpected operator NOT", wantPos: 0},
		{name: "double operator", input: "aaa AND OR bbb", wantMsg: "unexpected operator OR", wantPos: 8},
		{name: "dangling not", input: "aaa NOT", wantMsg: "unexpected end of query", wantPos: 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node, err := Parse(tt.input)
			if err == nil {
				t.Fatalf("Parse(%q) = %s, want error", tt.input, node)
			}
			if !errors.Is(err, ErrMalformedQuery) {
				t.Errorf("Parse(%q) error %v is not ErrMalformedQuery", tt.input, err)
			}
			var perr *ParseError
			if !errors.As(err, &perr) {
				t.Fatalf("Parse(%q) error %T is not *ParseError", tt.input, err)
			}
			if perr.Msg != tt.wantMsg {
				t.Errorf("Parse(%q) msg = %q, want %q", tt.input, perr.Msg, tt.wantMsg)
			}
			if perr.Position.Start != tt.wantPos {
				t.Errorf("Parse(%q) position = %d, want %d", tt.input, perr.Position.Start, tt.wantPos)
			}
		})
	}
}

func TestParseWithoutOperator(t *testing.T) {
	tests := []struct {
		input        string
		want         *Node
		wantUnparsed string
	}{
		{input: "foo", want: term("foo"), wantUnparsed: ""},
		{input: "  foo  ", want: term("foo"), wantUnparsed: ""},
		{input: "foo bar", want: term("foo"), wantUnparsed: "bar"},
		{input: "foo bar baz", want: term("foo"), wantUnparsed: "bar baz"},
		{input: "foo AND bar baz OR qux", want: and(term("foo"), term("bar")), wantUnparsed: "baz OR qux"},
		{input: "foo NOT bar baz", want: and(term("foo"), not(term("bar"))), wantUnparsed: "baz"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			p := NewParser(tt.input)
			got, err := p.Parse()
			if err != nil {
				t.Fatalf("Parse(%q) returned error: %v", tt.input, err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("Parse(%q) = %s, want %s", tt.input, got, tt.want)
			}
			if unparsed := TokensToString(p.Unparsed()); unparsed != tt.wantUnparsed {
				t.Errorf("Parse(%q) unparsed = %q, want %q", tt.input, unparsed, tt.wantUnparsed)
			}
		})
	}
}

func TestParseIsDeterministic(t *testing.T) {
	queries := []string{"a", "a AND b OR c", "a OR b AND c NOT d", "x NOT y NOT z"}
	for _, q := range queries {
		first, err := Parse(q)
		if err != nil {
			t.Fatalf("Parse(%q): %v", q, err)
		}
		second, err := Parse(q)
		if err != nil {
			t.Fatalf("Parse(%q): %v", q, err)
		}
		if !first.Equal(second) || first.String() != second.String() {
			t.Errorf("Parse(%q) not stable: %s vs %s", q, first, second)
		}
	}
}

func TestTermPositions(t *testing.T) {
	node, err := Parse("foo  AND bar")
	if err != nil {
		t.Fatal(err)
	}
	if node.Left.Position != (Position{Start: 0, End: 3}) {
		t.Errorf("left position = %+v", node.Left.Position)
	}
	if node.Right.Position != (Position{Start: 9, End: 12}) {
		t.Errorf("right position = %+v", node.Right.Position)
	}
	if node.Position != (Position{Start: 0, End: 12}) {
		t.Errorf("and position = %+v", node.Position)
	}
}

func TestNodeString(t *testing.T) {
	node, err := Parse("a AND b NOT c OR d")
	if err != nil {
		t.Fatal(err)
	}
	want := `OR(AND(TERM("a"), AND(TERM("b"), NOT(TERM("c")))), TERM("d"))`
	if got := node.String(); got != want {
		t.Errorf("String() = %s, want %s", got, want)
	}
}

func TestPrettyPrintMultiline(t *testing.T) {
	node, err := Parse("aaa AND bbb NOT ccc")
	if err != nil {
		t.Fatal(err)
	}
	want := `AND
  TERM: "aaa"
  AND
    TERM: "bbb"
    NOT
      TERM: "ccc"`
	if got := PrettyPrintMultiline(node); got != want {
		t.Errorf("PrettyPrintMultiline() =\n%s\nwant\n%s", got, want)
	}
}

func TestNodeEqual(t *testing.T) {
	if !term("a").Equal(term("a")) {
		t.Error("equal terms reported unequal")
	}
	if term("a").Equal(term("A")) {
		t.Error("terms differing in case reported equal")
	}
	if and(term("a"), term("b")).Equal(or(term("a"), term("b"))) {
		t.Error("and/or reported equal")
	}
	var nilNode *Node
	if !nilNode.Equal(nil) {
		t.Error("nil nodes reported unequal")
	}
	if term("a").Equal(nil) {
		t.Error("term equal to nil")
	}
}
