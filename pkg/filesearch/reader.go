// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package filesearch

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"unicode/utf8"
)

// BinarySniffLen is how many leading bytes are checked for NUL
const BinarySniffLen = 8000

// ErrReadFailed is matched by every error a Reader returns for a file that
// should be skipped
var ErrReadFailed = errors.New("file read failed")

type ReadError struct {
	Path   string
	Reason string
	Err    error // underlying os error, may be nil
}

func (e *ReadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("cannot read %s: %s: %v", e.Path, e.Reason, e.Err)
	}
	return fmt.Sprintf("cannot read %s: %s", e.Path, e.Reason)
}

func (e *ReadError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrReadFailed, e.Err}
	}
	return []error{ErrReadFailed}
}

// Reader returns the full UTF-8 text of a file
type Reader interface {
	ReadText(path string) (string, error)
}

// ReaderFunc adapts a function to the Reader interface
type ReaderFunc func(path string) (string, error)

func (f ReaderFunc) ReadText(path string) (string, error) {
	return f(path)
}

// TextReader reads files from disk and refuses anything that is not text
type TextReader struct {
	MaxFileSize int64 // 0 means no limit
}

func (r TextReader) ReadText(path string) (string, error) {
	if r.MaxFileSize > 0 {
		info, err := os.Stat(path)
		if err != nil {
			return "", &ReadError{Path: path, Reason: "stat failed", Err: err}
		}
		if info.Size() > r.MaxFileSize {
			return "", &ReadError{Path: path, Reason: fmt.Sprintf("size %d exceeds limit %d", info.Size(), r.MaxFileSize)}
		}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", &ReadError{Path: path, Reason: "read failed", Err: err}
	}
	if isBinary(data) {
		return "", &ReadError{Path: path, Reason: "binary content"}
	}
	if !utf8.Valid(data) {
		return "", &ReadError{Path: path, Reason: "invalid UTF-8"}
	}
	return string(data), nil
}

func isBinary(data []byte) bool {
	sniff := data
	if len(sniff) > BinarySniffLen {
		sniff = sniff[:BinarySniffLen]
	}
	return bytes.IndexByte(sniff, 0) >= 0
}
