// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package gensearch

import (
	"reflect"
	"testing"

	"github.com/outrigdev/boolsearch/pkg/searchparser"
)

func TestSatisfies(t *testing.T) {
	tests := []struct {
		name          string
		haystack      string
		query         string
		caseSensitive bool
		want          bool
	}{
		{name: "term present", haystack: "hello world", query: "world", want: true},
		{name: "term absent", haystack: "hello world", query: "mars", want: false},
		{name: "substring inside word", haystack: "foobar", query: "oba", want: true},
		{name: "and both", haystack: "a b", query: "a AND b", want: true},
		{name: "and one missing", haystack: "a", query: "a AND b", want: false},
		{name: "or either", haystack: "b", query: "a OR b", want: true},
		{name: "or neither", haystack: "c", query: "a OR b", want: false},
		{name: "not without negated term", haystack: "a only", query: "a NOT b", want: true},
		{name: "not with both", haystack: "a and b", query: "a NOT b", want: false},
		{name: "precedence or last", haystack: "c", query: "a AND b OR c", want: true},
		{name: "precedence or first", haystack: "a", query: "a OR b AND c", want: true},
		{name: "precedence or first needs both", haystack: "b", query: "a OR b AND c", want: false},
		{name: "case folded", haystack: "HELLO", query: "hello", want: true},
		{name: "case folded term", haystack: "hello", query: "HeLLo", want: true},
		{name: "case sensitive mismatch", haystack: "Foo", query: "foo", caseSensitive: true, want: false},
		{name: "case sensitive match", haystack: "foo", query: "foo", caseSensitive: true, want: true},
		{name: "case sensitive not", haystack: "foo BAR", query: "foo NOT bar", caseSensitive: true, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Satisfies(tt.haystack, mustParse(t, tt.query), tt.caseSensitive)
			if err != nil {
				t.Fatalf("Satisfies returned error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Satisfies(%q, %q) = %v, want %v", tt.haystack, tt.query, got, tt.want)
			}
		})
	}
}

func mustSearcher(t *testing.T, query string, caseSensitive bool) Searcher {
	t.Helper()
	searcher, err := MakeSearcherFromNode(mustParse(t, query), caseSensitive)
	if err != nil {
		t.Fatal(err)
	}
	return searcher
}

func TestMakeSearcherFromNode(t *testing.T) {
	searcher := mustSearcher(t, "foo AND bar NOT baz", false)
	if searcher.GetType() != SearchTypeAnd {
		t.Errorf("GetType() = %q, want %q", searcher.GetType(), SearchTypeAnd)
	}
	if !searcher.Match(MakeTextSearchObject("FOO BAR")) {
		t.Error("expected match")
	}
	if searcher.Match(MakeTextSearchObject("foo bar baz")) {
		t.Error("expected no match")
	}

	if _, err := MakeSearcherFromNode(nil, false); err == nil {
		t.Error("expected error for nil node")
	}
	if _, err := MakeSearcherFromNode(&searchparser.Node{Type: "xor"}, false); err == nil {
		t.Error("expected error for unknown node type")
	}
}

func TestPositiveTerms(t *testing.T) {
	tests := []struct {
		query string
		want  []string
	}{
		{query: "foo", want: []string{"foo"}},
		{query: "foo AND bar", want: []string{"foo", "bar"}},
		{query: "foo OR bar AND baz", want: []string{"foo", "bar", "baz"}},
		{query: "foo NOT bar", want: []string{"foo"}},
		{query: "foo NOT bar NOT baz OR qux", want: []string{"foo", "qux"}},
		{query: "foo OR foo AND Foo", want: []string{"foo", "Foo"}},
	}
	for _, tt := range tests {
		got := PositiveTerms(mustParse(t, tt.query))
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("PositiveTerms(%q) = %v, want %v", tt.query, got, tt.want)
		}
	}

	if got := PositiveTerms(nil); len(got) != 0 {
		t.Errorf("PositiveTerms(nil) = %v, want empty", got)
	}
	notOnly := searchparser.MakeNotNode(searchparser.MakeTermNode("x"))
	if got := PositiveTerms(notOnly); len(got) != 0 {
		t.Errorf("PositiveTerms(NOT x) = %v, want empty", got)
	}
}

func TestPrettyPrint(t *testing.T) {
	searcher := mustSearcher(t, "Foo NOT bar OR baz", false)
	want := `OrSearcher{AndSearcher{ExactSearcher{term: "foo", case-insensitive} AND NotSearcher{ExactSearcher{term: "bar", case-insensitive}}} OR ExactSearcher{term: "baz", case-insensitive}}`
	if got := PrettyPrint(searcher); got != want {
		t.Errorf("PrettyPrint() =\n%s\nwant\n%s", got, want)
	}
	if got := PrettyPrint(nil); got != "<nil>" {
		t.Errorf("PrettyPrint(nil) = %q", got)
	}
}

func TestTextSearchObjectCachesLowercase(t *testing.T) {
	obj := MakeTextSearchObject("MiXeD")
	if got := obj.GetText(0); got != "MiXeD" {
		t.Errorf("GetText(0) = %q", got)
	}
	if got := obj.GetText(FieldMod_ToLower); got != "mixed" {
		t.Errorf("GetText(ToLower) = %q", got)
	}
	if got := obj.GetText(FieldMod_ToLower); got != "mixed" {
		t.Errorf("cached GetText(ToLower) = %q", got)
	}
}
