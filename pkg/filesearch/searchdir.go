// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package filesearch

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/outrigdev/boolsearch/pkg/searchparser"
	"github.com/sirupsen/logrus"
)

// ErrNoRoot is returned when the search root is missing or not a directory
var ErrNoRoot = errors.New("no search root")

type DirOptions struct {
	Options
	Include     string
	Exclude     string
	MaxFileSize int64
	Lister      Lister // defaults to GlobLister
	Reader      Reader // defaults to TextReader{MaxFileSize}
}

// DirResult is the outcome of one SearchDir call
type DirResult struct {
	RunId   string         `json:"runid"`
	Root    string         `json:"root"`
	Query   string         `json:"query"`
	Results []SearchResult `json:"results"`
	Stats   SearchStats    `json:"stats"`
}

// SearchDir parses query, lists the files under root and searches them.
// Parse failures are returned as-is (errors.Is(err, searchparser.ErrMalformedQuery)).
func SearchDir(ctx context.Context, root string, query string, opts DirOptions) (*DirResult, error) {
	if root == "" {
		return nil, ErrNoRoot
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoRoot, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrNoRoot, root)
	}
	node, err := searchparser.Parse(query)
	if err != nil {
		return nil, err
	}

	lister := opts.Lister
	if lister == nil {
		lister = GlobLister{}
	}
	reader := opts.Reader
	if reader == nil {
		reader = TextReader{MaxFileSize: opts.MaxFileSize}
	}

	runId := uuid.New().String()
	log := logrus.WithFields(logrus.Fields{
		"runid": runId,
		"root":  root,
		"query": query,
	})
	files, err := lister.ListFiles(ctx, root, opts.Include, opts.Exclude)
	if err != nil {
		return nil, fmt.Errorf("listing files: %w", err)
	}
	log.WithField("files", len(files)).Debug("listed files")

	results, stats, err := SearchWithStats(ctx, files, reader, node, opts.Options)
	if err != nil {
		return nil, err
	}
	if results == nil {
		results = []SearchResult{}
	}
	log.WithFields(logrus.Fields{
		"matched":  stats.FilesMatched,
		"skipped":  stats.FilesSkipped,
		"matches":  stats.TotalMatches,
		"duration": stats.SearchDuration,
	}).Info("search complete")

	return &DirResult{
		RunId:   runId,
		Root:    root,
		Query:   query,
		Results: results,
		Stats:   stats,
	}, nil
}
