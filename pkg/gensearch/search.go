// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package gensearch

import (
	"fmt"

	"github.com/outrigdev/boolsearch/pkg/searchparser"
)

const (
	SearchTypeExact     = "exact"
	SearchTypeExactCase = "exactcase"
	SearchTypeAnd       = "and"
	SearchTypeOr        = "or"
	SearchTypeNot       = "not"
)

const (
	FieldMod_ToLower = 1
)

// SearchObject is the haystack a Searcher runs against (a whole file or one line)
type SearchObject interface {
	GetText(fieldMods int) string
}

// Searcher defines the interface for the compiled form of a query node.
// Searchers are immutable once built and safe to share between goroutines.
type Searcher interface {
	// Match checks if a search object matches the search criteria
	Match(obj SearchObject) bool

	// GetType returns the search type identifier
	GetType() string
}

// MakeSearcherFromNode compiles a parsed query tree into a Searcher tree of the same shape
func MakeSearcherFromNode(node *searchparser.Node, caseSensitive bool) (Searcher, error) {
	if node == nil {
		return nil, fmt.Errorf("cannot build searcher from nil node")
	}
	switch node.Type {
	case searchparser.NodeTypeTerm:
		return MakeExactSearcher(node.Term, caseSensitive), nil

	case searchparser.NodeTypeAnd, searchparser.NodeTypeOr:
		left, err := MakeSearcherFromNode(node.Left, caseSensitive)
		if err != nil {
			return nil, err
		}
		right, err := MakeSearcherFromNode(node.Right, caseSensitive)
		if err != nil {
			return nil, err
		}
		if node.Type == searchparser.NodeTypeAnd {
			return MakeAndSearcher(left, right), nil
		}
		return MakeOrSearcher(left, right), nil

	case searchparser.NodeTypeNot:
		operand, err := MakeSearcherFromNode(node.Operand, caseSensitive)
		if err != nil {
			return nil, err
		}
		return MakeNotSearcher(operand), nil

	default:
		return nil, fmt.Errorf("unknown node type %q", node.Type)
	}
}

// Satisfies reports whether haystack as a whole satisfies the query tree
func Satisfies(haystack string, node *searchparser.Node, caseSensitive bool) (bool, error) {
	searcher, err := MakeSearcherFromNode(node, caseSensitive)
	if err != nil {
		return false, err
	}
	return searcher.Match(MakeTextSearchObject(haystack)), nil
}
