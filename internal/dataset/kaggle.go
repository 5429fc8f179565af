// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dataset

import (
	"context"

	"github.com/pdiddy/research-studio/pkg/types"
)

// kaggleSearchBase is the Kaggle site search page.
var kaggleSearchBase = "https://www.kaggle.com/search"

// KaggleStub builds a Kaggle dataset search link. Kaggle's API needs
// per-user credentials, so there is no live implementation.
type KaggleStub struct{}

// Name returns the source identifier.
func (KaggleStub) Name() string { return "kaggle" }

// Heading returns the report subsection heading.
func (KaggleStub) Heading() string { return "🏅 Available Kaggle Datasets" }

// Find returns a single search-page link for query.
func (KaggleStub) Find(_ context.Context, query string) ([]types.ResourceLink, error) {
	return []types.ResourceLink{{
		Title:       query + " dataset (Kaggle)",
		URL:         kaggleSearchBase + "?q=" + plusJoin(query) + "+dataset",
		Description: "Find ML datasets for your use case on Kaggle.",
	}}, nil
}
