// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package filesearch

import (
	"context"
	"runtime"
	"time"

	"github.com/outrigdev/boolsearch/pkg/gensearch"
	"github.com/outrigdev/boolsearch/pkg/panichandler"
	"github.com/outrigdev/boolsearch/pkg/searchparser"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// SearchResult is one file with at least one match
type SearchResult struct {
	File    string            `json:"file"`
	Matches []gensearch.Match `json:"matches"`
}

type Options struct {
	CaseSensitive bool
	Scope         gensearch.Scope
	Workers       int // <= 0 means runtime.NumCPU()
}

// SearchStats contains statistics about a search operation
type SearchStats struct {
	FilesListed    int           `json:"fileslisted"`
	FilesSearched  int           `json:"filessearched"`
	FilesSkipped   int           `json:"filesskipped"` // unreadable, binary or too large
	FilesMatched   int           `json:"filesmatched"`
	TotalMatches   int           `json:"totalmatches"`
	SearchDuration time.Duration `json:"searchduration"`
}

// per-file outcome, written only by the goroutine that owns the slot
type fileSlot struct {
	matches []gensearch.Match
	skipped bool
}

// Search evaluates node against every file and returns the files with matches,
// in the order they appear in files. Files the reader cannot read are skipped
// silently. The only error returned is ctx's when the caller cancels.
func Search(ctx context.Context, files []string, reader Reader, node *searchparser.Node, opts Options) ([]SearchResult, error) {
	results, _, err := SearchWithStats(ctx, files, reader, node, opts)
	return results, err
}

// SearchWithStats is Search plus counters about the run
func SearchWithStats(ctx context.Context, files []string, reader Reader, node *searchparser.Node, opts Options) ([]SearchResult, SearchStats, error) {
	startTime := time.Now()
	stats := SearchStats{FilesListed: len(files)}
	if opts.Scope == "" {
		opts.Scope = gensearch.FileScope
	}
	ev, err := gensearch.MakeEvaluator(node, opts.CaseSensitive, opts.Scope)
	if err != nil {
		return nil, stats, err
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	slots := make([]fileSlot, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for idx, path := range files {
		if gctx.Err() != nil {
			break
		}
		idx, path := idx, path
		g.Go(func() error {
			defer func() {
				if perr := panichandler.PanicHandler("filesearch:"+path, recover()); perr != nil {
					slots[idx].skipped = true
				}
			}()
			if err := gctx.Err(); err != nil {
				return err
			}
			text, err := reader.ReadText(path)
			if err != nil {
				logrus.WithError(err).WithField("path", path).Debug("skipping file")
				slots[idx].skipped = true
				return nil
			}
			slots[idx].matches = ev.Evaluate(text)
			return nil
		})
	}
	waitErr := g.Wait()
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, stats, ctxErr
	}
	if waitErr != nil {
		return nil, stats, waitErr
	}

	var results []SearchResult
	for idx, slot := range slots {
		if slot.skipped {
			stats.FilesSkipped++
			continue
		}
		stats.FilesSearched++
		if len(slot.matches) == 0 {
			continue
		}
		stats.FilesMatched++
		stats.TotalMatches += len(slot.matches)
		results = append(results, SearchResult{File: files[idx], Matches: slot.matches})
	}
	stats.SearchDuration = time.Since(startTime)
	return results, stats, nil
}
