// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

// Package resultfmt renders search results for people and tools. Truncation
// only happens here; filesearch always returns every match.
package resultfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/outrigdev/boolsearch/pkg/config"
	"github.com/outrigdev/boolsearch/pkg/filesearch"
	"github.com/outrigdev/boolsearch/pkg/utilfn"
)

const DefaultMaxMatchesPerFile = 5

// MaxLineDisplayLen caps a rendered line so minified files stay readable
const MaxLineDisplayLen = 500

type FormatOpts struct {
	Full              bool   // show every match (panel mode)
	MaxMatchesPerFile int    // compact mode limit, 0 means DefaultMaxMatchesPerFile
	BaseDir           string // paths under BaseDir are shown relative to it
}

func (o FormatOpts) limit() int {
	if o.Full {
		return 0
	}
	if o.MaxMatchesPerFile <= 0 {
		return DefaultMaxMatchesPerFile
	}
	return o.MaxMatchesPerFile
}

// Write renders results in one of the config.Format* formats
func Write(w io.Writer, format string, query string, results []filesearch.SearchResult, opts FormatOpts) error {
	switch format {
	case config.FormatText, "":
		return FormatText(w, results, opts)
	case config.FormatFull:
		opts.Full = true
		return FormatText(w, results, opts)
	case config.FormatJson:
		return FormatJSON(w, query, results, opts)
	case config.FormatHtml:
		return FormatHTML(w, query, results, opts)
	case config.FormatVimgrep:
		return FormatVimgrep(w, results, opts)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

// CountMatches returns the total number of matches across all files
func CountMatches(results []filesearch.SearchResult) int {
	total := 0
	for _, r := range results {
		total += len(r.Matches)
	}
	return total
}

// FormatText renders the summary, per-file groups and per-match lines
func FormatText(w io.Writer, results []filesearch.SearchResult, opts FormatOpts) error {
	if len(results) == 0 {
		_, err := fmt.Fprintln(w, "No results found.")
		return err
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "Found %d file(s) with matches:\n\n", len(results))
	limit := opts.limit()
	for _, result := range results {
		fmt.Fprintf(&sb, "%s\n", utilfn.DisplayPath(opts.BaseDir, result.File))
		fmt.Fprintf(&sb, "   %d match(es):\n", len(result.Matches))
		shown := result.Matches
		if limit > 0 && len(shown) > limit {
			shown = shown[:limit]
		}
		for _, m := range shown {
			fmt.Fprintf(&sb, "   Line %d: %s\n", m.Line, displayLine(m.Content))
		}
		if hidden := len(result.Matches) - len(shown); hidden > 0 {
			fmt.Fprintf(&sb, "   ... and %d more match(es)\n", hidden)
		}
		sb.WriteString("\n")
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

// FormatVimgrep renders one path:line:col:content record per match (1-based col)
func FormatVimgrep(w io.Writer, results []filesearch.SearchResult, opts FormatOpts) error {
	var sb strings.Builder
	for _, result := range results {
		path := utilfn.DisplayPath(opts.BaseDir, result.File)
		for _, m := range result.Matches {
			fmt.Fprintf(&sb, "%s:%d:%d:%s\n", path, m.Line, m.Column+1, strings.TrimRight(m.Content, "\r"))
		}
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

type jsonMatch struct {
	Line    int    `json:"line"`
	Column  int    `json:"column"`
	Content string `json:"content"`
}

type jsonFile struct {
	File    string      `json:"file"`
	Matches []jsonMatch `json:"matches"`
}

type jsonOutput struct {
	Query        string     `json:"query"`
	TotalFiles   int        `json:"totalfiles"`
	TotalMatches int        `json:"totalmatches"`
	Results      []jsonFile `json:"results"`
}

// FormatJSON writes every match regardless of opts.Full
func FormatJSON(w io.Writer, query string, results []filesearch.SearchResult, opts FormatOpts) error {
	out := jsonOutput{
		Query:        query,
		TotalFiles:   len(results),
		TotalMatches: CountMatches(results),
		Results:      make([]jsonFile, 0, len(results)),
	}
	for _, result := range results {
		jf := jsonFile{
			File:    utilfn.DisplayPath(opts.BaseDir, result.File),
			Matches: make([]jsonMatch, 0, len(result.Matches)),
		}
		for _, m := range result.Matches {
			jf.Matches = append(jf.Matches, jsonMatch{Line: m.Line, Column: m.Column, Content: m.Content})
		}
		out.Results = append(out.Results, jf)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func displayLine(content string) string {
	return utilfn.TruncateString(strings.TrimSpace(content), MaxLineDisplayLen)
}
