// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dataset

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/pdiddy/research-studio/internal/httputil"
	"github.com/pdiddy/research-studio/pkg/types"
)

const huggingFaceHeading = "🤗 Available Hugging Face Datasets"

// Declared as vars so tests can substitute an httptest server.
var (
	huggingFaceAPIBase  = "https://huggingface.co/api/datasets"
	huggingFaceSiteBase = "https://huggingface.co"
)

// maxDescription bounds descriptions copied from dataset cards.
const maxDescription = 200

// HuggingFaceStub builds a Hugging Face dataset search link without calling
// the API.
type HuggingFaceStub struct{}

// Name returns the source identifier.
func (HuggingFaceStub) Name() string { return "huggingface" }

// Heading returns the report subsection heading.
func (HuggingFaceStub) Heading() string { return huggingFaceHeading }

// Find returns a single search-page link for query.
func (HuggingFaceStub) Find(_ context.Context, query string) ([]types.ResourceLink, error) {
	return []types.ResourceLink{{
		Title:       query + " dataset (Hugging Face)",
		URL:         huggingFaceSiteBase + "/datasets?search=" + plusJoin(query),
		Description: "Explore datasets for NLP, vision, and more on Hugging Face.",
	}}, nil
}

// HuggingFaceSource queries the Hugging Face Hub dataset listing API.
type HuggingFaceSource struct {
	Client    *http.Client
	Token     string
	UserAgent string
	Limit     int
}

// Name returns the source identifier.
func (h *HuggingFaceSource) Name() string { return "huggingface" }

// Heading returns the report subsection heading.
func (h *HuggingFaceSource) Heading() string { return huggingFaceHeading }

type hfDataset struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Downloads   int    `json:"downloads"`
	Likes       int    `json:"likes"`
}

// Find lists datasets matching query, most relevant first.
func (h *HuggingFaceSource) Find(ctx context.Context, query string) ([]types.ResourceLink, error) {
	limit := h.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	params := url.Values{
		"search": {query},
		"limit":  {strconv.Itoa(limit)},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, huggingFaceAPIBase+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if h.UserAgent != "" {
		req.Header.Set("User-Agent", h.UserAgent)
	}
	if h.Token != "" {
		req.Header.Set("Authorization", "Bearer "+h.Token)
	}

	client := h.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := httputil.DoWithRetry(ctx, client, req, 0)
	if err != nil {
		return nil, fmt.Errorf("Hugging Face API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Hugging Face API returned HTTP %d", resp.StatusCode)
	}

	var datasets []hfDataset
	if err := json.NewDecoder(resp.Body).Decode(&datasets); err != nil {
		return nil, fmt.Errorf("parsing Hugging Face response: %w", err)
	}

	links := make([]types.ResourceLink, 0, len(datasets))
	for _, d := range datasets {
		if d.ID == "" {
			continue
		}
		links = append(links, types.ResourceLink{
			Title:       d.ID,
			URL:         huggingFaceSiteBase + "/datasets/" + d.ID,
			Description: describeHF(d),
		})
	}
	return links, nil
}

func describeHF(d hfDataset) string {
	desc := strings.Join(strings.Fields(d.Description), " ")
	if r := []rune(desc); len(r) > maxDescription {
		desc = string(r[:maxDescription-3]) + "..."
	}
	if desc == "" && d.Downloads > 0 {
		desc = fmt.Sprintf("%d downloads, %d likes", d.Downloads, d.Likes)
	}
	return desc
}
