// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package gensearch

import (
	"fmt"
	"strings"

	"github.com/outrigdev/boolsearch/pkg/searchparser"
)

// Scope selects the haystack the full query is evaluated against
type Scope string

const (
	// FileScope evaluates the query once against the whole file, then selects
	// every line containing any positive term.
	FileScope Scope = "file"
	// LineScope evaluates the full query against each line on its own.
	LineScope Scope = "line"
)

func ParseScope(s string) (Scope, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(FileScope):
		return FileScope, nil
	case string(LineScope):
		return LineScope, nil
	}
	return "", fmt.Errorf("invalid scope %q (expected %q or %q)", s, FileScope, LineScope)
}

// Match is one selected line of a file
type Match struct {
	Line    int    `json:"line"`    // 1-based
	Content string `json:"content"` // raw line text
	Column  int    `json:"column"`  // 0-based offset of the earliest positive term, 0 if none
}

// Evaluator is a compiled query ready to run against many files.
// It holds no mutable state and may be shared between goroutines.
type Evaluator struct {
	searcher     Searcher
	highlighters []*ExactSearcher // one per positive term
	scope        Scope
}

func MakeEvaluator(node *searchparser.Node, caseSensitive bool, scope Scope) (*Evaluator, error) {
	if scope != FileScope && scope != LineScope {
		return nil, fmt.Errorf("invalid scope %q", scope)
	}
	searcher, err := MakeSearcherFromNode(node, caseSensitive)
	if err != nil {
		return nil, err
	}
	terms := PositiveTerms(node)
	highlighters := make([]*ExactSearcher, 0, len(terms))
	for _, term := range terms {
		highlighters = append(highlighters, MakeExactSearcher(term, caseSensitive))
	}
	return &Evaluator{
		searcher:     searcher,
		highlighters: highlighters,
		scope:        scope,
	}, nil
}

func (ev *Evaluator) Scope() Scope {
	return ev.scope
}

func (ev *Evaluator) Searcher() Searcher {
	return ev.searcher
}

// Evaluate runs the compiled query over text and returns the selected
// lines in ascending line order. A nil result means the text does not match.
func (ev *Evaluator) Evaluate(text string) []Match {
	if ev.scope == FileScope {
		return ev.evaluateFile(text)
	}
	return ev.evaluateLines(text)
}

func (ev *Evaluator) evaluateFile(text string) []Match {
	if !ev.searcher.Match(MakeTextSearchObject(text)) {
		return nil
	}
	var matches []Match
	for idx, line := range strings.Split(text, "\n") {
		column, found := ev.findColumn(MakeTextSearchObject(line))
		if !found {
			continue
		}
		matches = append(matches, Match{Line: idx + 1, Content: line, Column: column})
	}
	return matches
}

func (ev *Evaluator) evaluateLines(text string) []Match {
	var matches []Match
	for idx, line := range strings.Split(text, "\n") {
		obj := MakeTextSearchObject(line)
		if !ev.searcher.Match(obj) {
			continue
		}
		column, found := ev.findColumn(obj)
		if !found {
			column = 0
		}
		matches = append(matches, Match{Line: idx + 1, Content: line, Column: column})
	}
	return matches
}

// findColumn returns the smallest offset at which any positive term occurs
func (ev *Evaluator) findColumn(obj SearchObject) (int, bool) {
	column := -1
	for _, hl := range ev.highlighters {
		pos := hl.Index(obj)
		if pos >= 0 && (column < 0 || pos < column) {
			column = pos
		}
	}
	return column, column >= 0
}

// Evaluate compiles node and runs it once over text
func Evaluate(text string, node *searchparser.Node, caseSensitive bool, scope Scope) ([]Match, error) {
	ev, err := MakeEvaluator(node, caseSensitive, scope)
	if err != nil {
		return nil, err
	}
	return ev.Evaluate(text), nil
}
