// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package resultfmt

import (
	"html/template"
	"io"
	"strings"

	"github.com/outrigdev/boolsearch/pkg/filesearch"
	"github.com/outrigdev/boolsearch/pkg/utilfn"
)

// each match-line carries data-file/data-line so a host can jump to the location
var resultsTemplate = template.Must(template.New("results").Parse(`{{if not .Files -}}
<div class="no-results">No results found for: <strong>{{.Query}}</strong></div>
{{else -}}
<div class="results-summary">Found {{len .Files}} file(s) with matches for: <strong>{{.Query}}</strong></div>
{{range .Files -}}
<div class="file-result">
<div class="file-header">{{.DisplayPath}} ({{.Total}} matches)</div>
{{range .Matches -}}
<div class="match-line" data-file="{{.File}}" data-line="{{.Line}}" data-column="{{.Column}}"><span class="line-number">Line {{.Line}}:</span> <span class="match-content">{{.Content}}</span></div>
{{end -}}
{{if .Hidden}}<div class="more-matches">... and {{.Hidden}} more match(es)</div>
{{end -}}
</div>
{{end -}}
{{end -}}
`))

type htmlMatch struct {
	File    string
	Line    int
	Column  int
	Content string
}

type htmlFile struct {
	DisplayPath string
	Total       int
	Hidden      int
	Matches     []htmlMatch
}

type htmlPage struct {
	Query string
	Files []htmlFile
}

// FormatHTML renders results as an HTML fragment; all text is escaped
func FormatHTML(w io.Writer, query string, results []filesearch.SearchResult, opts FormatOpts) error {
	page := htmlPage{Query: query}
	limit := opts.limit()
	for _, result := range results {
		hf := htmlFile{
			DisplayPath: utilfn.DisplayPath(opts.BaseDir, result.File),
			Total:       len(result.Matches),
		}
		shown := result.Matches
		if limit > 0 && len(shown) > limit {
			shown = shown[:limit]
		}
		hf.Hidden = len(result.Matches) - len(shown)
		for _, m := range shown {
			hf.Matches = append(hf.Matches, htmlMatch{
				File:    result.File,
				Line:    m.Line,
				Column:  m.Column,
				Content: strings.TrimSpace(m.Content),
			})
		}
		page.Files = append(page.Files, hf)
	}
	return resultsTemplate.Execute(w, page)
}
