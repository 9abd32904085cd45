// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package filesearch

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/outrigdev/boolsearch/pkg/logutil"
	"github.com/sirupsen/logrus"
)

// Lister enumerates candidate files under root. Patterns are doublestar globs
// matched against slash-separated paths relative to root.
type Lister interface {
	ListFiles(ctx context.Context, root string, include string, exclude string) ([]string, error)
}

// GlobLister walks the filesystem in lexical order
type GlobLister struct{}

func (GlobLister) ListFiles(ctx context.Context, root string, include string, exclude string) ([]string, error) {
	if include == "" {
		include = "**/*"
	}
	if !doublestar.ValidatePattern(include) {
		return nil, fmt.Errorf("invalid include pattern %q: %w", include, doublestar.ErrBadPattern)
	}
	if exclude != "" && !doublestar.ValidatePattern(exclude) {
		return nil, fmt.Errorf("invalid exclude pattern %q: %w", exclude, doublestar.ErrBadPattern)
	}
	// "dir/**" style excludes let us skip whole directories without walking them
	dirExclude := ""
	if strings.HasSuffix(exclude, "/**") {
		dirExclude = strings.TrimSuffix(exclude, "/**")
	}

	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			// unreadable entries are skipped, never fatal
			logrus.WithError(err).WithField("path", path).Debug("skipping unreadable path")
			if d != nil && d.IsDir() && path != root {
				return filepath.SkipDir
			}
			return nil
		}
		if path == root {
			return nil
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)
		if d.IsDir() {
			if dirExclude != "" && matchPattern(dirExclude, rel) {
				return filepath.SkipDir
			}
			if dirExclude == "" && exclude != "" && matchPattern(exclude, rel) {
				logutil.LogfOnce("exclude-dir:"+exclude,
					"exclude pattern %q matches directory %q but only files are excluded, use %q to skip its contents",
					exclude, rel, exclude+"/**")
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if !matchPattern(include, rel) {
			return nil
		}
		if exclude != "" && matchPattern(exclude, rel) {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

func matchPattern(pattern string, rel string) bool {
	// patterns were validated up front so Match cannot fail
	matched, _ := doublestar.Match(pattern, rel)
	return matched
}
