// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dataset

import (
	"context"
	"strings"

	"github.com/pdiddy/research-studio/internal/search"
	"github.com/pdiddy/research-studio/pkg/types"
)

// datasetTerms mark a search hit as dataset-related.
var datasetTerms = []string{"dataset", "data-set", "training-data", "corpus", "data science"}

// GitHubSource finds GitHub repositories that look like datasets by running
// a site-restricted web search.
type GitHubSource struct {
	Searcher search.Searcher
	Limit    int
}

// Name returns the source identifier.
func (g *GitHubSource) Name() string { return "github" }

// Heading returns the report subsection heading.
func (g *GitHubSource) Heading() string { return "📊 Available GitHub Datasets" }

// Find searches for repositories matching query and keeps the hits that
// point at a repository (not a single file) and mention a dataset.
func (g *GitHubSource) Find(ctx context.Context, query string) ([]types.ResourceLink, error) {
	limit := g.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	hits, err := g.Searcher.Search(ctx, "site:github.com dataset "+query, limit)
	if err != nil {
		return nil, err
	}

	var links []types.ResourceLink
	for _, h := range hits {
		title := strings.ReplaceAll(h.Title, " · GitHub", "")
		title = strings.ReplaceAll(title, "GitHub - ", "")
		if !strings.Contains(h.Link, "github.com") || strings.Contains(h.Link, "/blob/") {
			continue
		}
		if !mentionsDataset(title + h.Snippet) {
			continue
		}
		links = append(links, types.ResourceLink{Title: title, URL: h.Link, Description: h.Snippet})
	}
	return links, nil
}

func mentionsDataset(s string) bool {
	s = strings.ToLower(s)
	for _, term := range datasetTerms {
		if strings.Contains(s, term) {
			return true
		}
	}
	return false
}
