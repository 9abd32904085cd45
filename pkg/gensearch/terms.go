// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package gensearch

import (
	"github.com/emirpasic/gods/sets/linkedhashset"
	"github.com/outrigdev/boolsearch/pkg/searchparser"
)

// PositiveTerms returns every term reachable without passing through a NOT,
// in left-to-right query order with duplicates removed. These are the terms
// used to pick and highlight lines; negated terms are never highlighted.
func PositiveTerms(node *searchparser.Node) []string {
	set := linkedhashset.New()
	collectPositiveTerms(node, set)
	terms := make([]string, 0, set.Size())
	for _, v := range set.Values() {
		terms = append(terms, v.(string))
	}
	return terms
}

func collectPositiveTerms(node *searchparser.Node, set *linkedhashset.Set) {
	if node == nil {
		return
	}
	switch node.Type {
	case searchparser.NodeTypeTerm:
		if node.Term != "" {
			set.Add(node.Term)
		}
	case searchparser.NodeTypeAnd, searchparser.NodeTypeOr:
		collectPositiveTerms(node.Left, set)
		collectPositiveTerms(node.Right, set)
	case searchparser.NodeTypeNot:
		// negated subtree contributes nothing
	}
}
