// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package gensearch

import (
	"fmt"
	"strings"
)

// PrettyPrint returns a human-readable string representation of a searcher
func PrettyPrint(s Searcher) string {
	if s == nil {
		return "<nil>"
	}

	switch searcher := s.(type) {
	case *ExactSearcher:
		sensitivity := "case-insensitive"
		if searcher.caseSensitive {
			sensitivity = "case-sensitive"
		}
		return fmt.Sprintf("ExactSearcher{term: %q, %s}", searcher.searchTerm, sensitivity)

	case *AndSearcher:
		return fmt.Sprintf("AndSearcher{%s}", joinChildren(searcher.searchers, " AND "))

	case *OrSearcher:
		return fmt.Sprintf("OrSearcher{%s}", joinChildren(searcher.searchers, " OR "))

	case *NotSearcher:
		return fmt.Sprintf("NotSearcher{%s}", PrettyPrint(searcher.searcher))

	default:
		return fmt.Sprintf("UnknownSearcher{type: %s}", s.GetType())
	}
}

func joinChildren(searchers []Searcher, sep string) string {
	children := make([]string, 0, len(searchers))
	for _, child := range searchers {
		children = append(children, PrettyPrint(child))
	}
	return strings.Join(children, sep)
}
