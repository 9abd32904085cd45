// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package searchparser

import (
	"errors"
	"fmt"
)

// ErrMalformedQuery is matched (via errors.Is) by every error the parser returns.
var ErrMalformedQuery = errors.New("malformed query")

type ParseError struct {
	Msg      string
	Position Position
	Query    string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("malformed query: %s (at offset %d)", e.Msg, e.Position.Start)
}

func (e *ParseError) Unwrap() error {
	return ErrMalformedQuery
}
