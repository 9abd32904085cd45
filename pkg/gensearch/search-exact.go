// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package gensearch

import (
	"strings"
)

// ExactSearcher matches objects whose text contains the term as a substring
type ExactSearcher struct {
	searchTerm    string // already lowercased when !caseSensitive
	caseSensitive bool
}

// MakeExactSearcher creates a new substring searcher
func MakeExactSearcher(searchTerm string, caseSensitive bool) *ExactSearcher {
	if !caseSensitive {
		searchTerm = strings.ToLower(searchTerm)
	}
	return &ExactSearcher{
		searchTerm:    searchTerm,
		caseSensitive: caseSensitive,
	}
}

func (s *ExactSearcher) fieldMods() int {
	if s.caseSensitive {
		return 0
	}
	return FieldMod_ToLower
}

// Match checks if the search object contains the search term
func (s *ExactSearcher) Match(obj SearchObject) bool {
	return strings.Contains(obj.GetText(s.fieldMods()), s.searchTerm)
}

// Index returns the byte offset of the first occurrence of the term, or -1
func (s *ExactSearcher) Index(obj SearchObject) int {
	return strings.Index(obj.GetText(s.fieldMods()), s.searchTerm)
}

// GetType returns the search type identifier
func (s *ExactSearcher) GetType() string {
	if s.caseSensitive {
		return SearchTypeExactCase
	}
	return SearchTypeExact
}
