// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package search queries a web search provider and returns organic results.
// It backs the industry research step and the search-driven dataset sources.
package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/research-studio/pkg/types"
)

// DefaultResults is the number of organic results requested per query.
const DefaultResults = 5

// Searcher runs a single web query. SerperClient is the production
// implementation; tests and offline runs substitute their own.
type Searcher interface {
	Search(ctx context.Context, query string, num int) ([]types.SearchHit, error)
}

// IndustryQuery builds the research query for a company or industry.
func IndustryQuery(subject string) string {
	return strings.TrimSpace(subject) + " industry overview AI digital transformation"
}

// ResearchIndustry searches for an overview of subject and its AI adoption.
// num <= 0 uses DefaultResults.
func ResearchIndustry(ctx context.Context, s Searcher, subject string, num int) ([]types.SearchHit, error) {
	if strings.TrimSpace(subject) == "" {
		return nil, fmt.Errorf("subject is empty: provide a company or industry name")
	}
	if num <= 0 {
		num = DefaultResults
	}
	hits, err := s.Search(ctx, IndustryQuery(subject), num)
	if err != nil {
		return nil, fmt.Errorf("researching %q: %w", subject, err)
	}
	return hits, nil
}

// FormatMarkdown writes hits as a markdown link list with quoted snippets.
func FormatMarkdown(hits []types.SearchHit, w io.Writer) {
	if len(hits) == 0 {
		fmt.Fprintln(w, "No results found.")
		return
	}
	for _, h := range hits {
		fmt.Fprintf(w, "- [%s](%s)\n", h.Title, h.Link)
		if h.Snippet != "" {
			fmt.Fprintf(w, "> %s\n", h.Snippet)
		}
	}
}

// FormatJSON writes hits as indented JSON to w.
func FormatJSON(hits []types.SearchHit, w io.Writer) error {
	if hits == nil {
		hits = []types.SearchHit{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(hits)
}
