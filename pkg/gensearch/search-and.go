// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package gensearch

// AndSearcher implements a searcher that requires all contained searchers to match
type AndSearcher struct {
	searchers []Searcher
}

// MakeAndSearcher creates a new AND searcher
func MakeAndSearcher(searchers ...Searcher) *AndSearcher {
	return &AndSearcher{
		searchers: searchers,
	}
}

// Match checks if the search object matches all contained searchers
func (s *AndSearcher) Match(obj SearchObject) bool {
	for _, searcher := range s.searchers {
		if !searcher.Match(obj) {
			return false
		}
	}
	return true
}

// GetType returns the search type identifier
func (s *AndSearcher) GetType() string {
	return SearchTypeAnd
}
