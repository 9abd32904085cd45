// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

// Package logutil configures logrus for the boolsearch binary and provides
// a few logging helpers.
package logutil

import (
	"io"
	"os"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	// loggedKeys tracks which keys have already been logged
	loggedKeys = make(map[string]struct{})
	// mutex protects access to the loggedKeys map
	mutex sync.Mutex
)

// Init sets the global logrus level and formatter. Logs always go to stderr
// (or w when non-nil) so they never mix with search output on stdout.
func Init(level string, w io.Writer) error {
	if level == "" {
		level = "warn"
	}
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return err
	}
	if w == nil {
		w = os.Stderr
	}
	logrus.SetOutput(w)
	logrus.SetLevel(lvl)
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
	return nil
}

// shouldLog checks if a message with the given key should be logged
// and marks the key as logged if it hasn't been seen before.
func shouldLog(key string) bool {
	mutex.Lock()
	defer mutex.Unlock()
	if _, exists := loggedKeys[key]; exists {
		return false
	}
	loggedKeys[key] = struct{}{}
	return true
}

// LogfOnce logs a warning with the given key only once per process.
func LogfOnce(key string, format string, args ...interface{}) {
	if !shouldLog(key) {
		return
	}
	logrus.Warnf(format, args...)
}
