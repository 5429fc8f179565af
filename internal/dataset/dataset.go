// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package dataset finds dataset links for a use case. Each provider (GitHub,
// Hugging Face, Kaggle) implements Source; live implementations call an API
// while stub implementations construct a search link from a fixed template.
package dataset

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pdiddy/research-studio/internal/search"
	"github.com/pdiddy/research-studio/pkg/types"
)

// DefaultLimit caps the links returned by a live source.
const DefaultLimit = 5

// Source looks up dataset links for a query.
type Source interface {
	// Name returns the source identifier (e.g. "github").
	Name() string

	// Heading returns the markdown subsection heading for this source's links.
	Heading() string

	// Find returns zero or more links for query.
	Find(ctx context.Context, query string) ([]types.ResourceLink, error)
}

// NewSources builds the configured sources in report order: GitHub,
// Hugging Face, Kaggle. Sources set to "off" are omitted. The GitHub source
// needs a Searcher; a nil searcher omits it.
func NewSources(cfg types.DatasetConfig, s search.Searcher) ([]Source, error) {
	limit := cfg.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}

	var sources []Source

	switch cfg.GitHub {
	case "", types.SourceLive:
		if s != nil {
			sources = append(sources, &GitHubSource{Searcher: s, Limit: limit})
		}
	case types.SourceOff:
	default:
		return nil, fmt.Errorf("github source: unsupported mode %q (want live or off)", cfg.GitHub)
	}

	switch cfg.HuggingFace {
	case "", types.SourceStub:
		sources = append(sources, HuggingFaceStub{})
	case types.SourceLive:
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		sources = append(sources, &HuggingFaceSource{
			Client:    &http.Client{Timeout: timeout},
			Token:     cfg.HuggingFaceToken,
			UserAgent: cfg.UserAgent,
			Limit:     limit,
		})
	case types.SourceOff:
	default:
		return nil, fmt.Errorf("huggingface source: unsupported mode %q (want live, stub, or off)", cfg.HuggingFace)
	}

	switch cfg.Kaggle {
	case "", types.SourceStub:
		sources = append(sources, KaggleStub{})
	case types.SourceOff:
	default:
		return nil, fmt.Errorf("kaggle source: unsupported mode %q (want stub or off)", cfg.Kaggle)
	}

	return sources, nil
}

// plusJoin escapes each word of query and joins the words with "+", the
// form both dataset search pages expect.
func plusJoin(query string) string {
	words := strings.Fields(query)
	for i, w := range words {
		words[i] = url.QueryEscape(w)
	}
	return strings.Join(words, "+")
}
