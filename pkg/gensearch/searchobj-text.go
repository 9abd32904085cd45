// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package gensearch

import (
	"strings"
)

// TextSearchObject wraps a haystack and caches its lowercased form.
// Not safe for concurrent use; make one per goroutine.
type TextSearchObject struct {
	Text string

	textToLower string
	lowered     bool
}

func MakeTextSearchObject(text string) *TextSearchObject {
	return &TextSearchObject{Text: text}
}

func (tso *TextSearchObject) GetText(fieldMods int) string {
	if fieldMods&FieldMod_ToLower != 0 {
		if !tso.lowered {
			tso.textToLower = strings.ToLower(tso.Text)
			tso.lowered = true
		}
		return tso.textToLower
	}
	return tso.Text
}
