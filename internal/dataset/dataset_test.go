// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dataset

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/research-studio/internal/search"
	"github.com/pdiddy/research-studio/pkg/types"
)

type mockSearcher struct {
	hits    []types.SearchHit
	err     error
	queries []string
}

func (m *mockSearcher) Search(_ context.Context, query string, _ int) ([]types.SearchHit, error) {
	m.queries = append(m.queries, query)
	return m.hits, m.err
}

func TestGitHubSourceFind(t *testing.T) {
	m := &mockSearcher{hits: []types.SearchHit{
		{Title: "GitHub - acme/retail-dataset: Retail sales", Link: "https://github.com/acme/retail-dataset", Snippet: "A retail dataset."},
		{Title: "acme/corpus · GitHub", Link: "https://github.com/acme/corpus", Snippet: "Text corpus for NLP"},
		{Title: "data.csv", Link: "https://github.com/acme/x/blob/main/data.csv", Snippet: "dataset file"},
		{Title: "Retail blog", Link: "https://example.com/retail", Snippet: "dataset roundup"},
		{Title: "acme/app", Link: "https://github.com/acme/app", Snippet: "A web application"},
	}}
	g := &GitHubSource{Searcher: m}

	links, err := g.Find(context.Background(), "retail")
	require.NoError(t, err)

	assert.Equal(t, []string{"site:github.com dataset retail"}, m.queries)
	assert.Equal(t, []types.ResourceLink{
		{Title: "acme/retail-dataset: Retail sales", URL: "https://github.com/acme/retail-dataset", Description: "A retail dataset."},
		{Title: "acme/corpus", URL: "https://github.com/acme/corpus", Description: "Text corpus for NLP"},
	}, links)
	assert.Equal(t, "github", g.Name())
}

func TestGitHubSourceError(t *testing.T) {
	boom := errors.New("boom")
	g := &GitHubSource{Searcher: &mockSearcher{err: boom}}
	_, err := g.Find(context.Background(), "retail")
	assert.ErrorIs(t, err, boom)
}

func TestStubs(t *testing.T) {
	hf, err := HuggingFaceStub{}.Find(context.Background(), "Retail Banking")
	require.NoError(t, err)
	assert.Equal(t, []types.ResourceLink{{
		Title:       "Retail Banking dataset (Hugging Face)",
		URL:         "https://huggingface.co/datasets?search=Retail+Banking",
		Description: "Explore datasets for NLP, vision, and more on Hugging Face.",
	}}, hf)

	kg, err := KaggleStub{}.Find(context.Background(), "Retail Banking")
	require.NoError(t, err)
	assert.Equal(t, []types.ResourceLink{{
		Title:       "Retail Banking dataset (Kaggle)",
		URL:         "https://www.kaggle.com/search?q=Retail+Banking+dataset",
		Description: "Find ML datasets for your use case on Kaggle.",
	}}, kg)
}

func TestPlusJoin(t *testing.T) {
	assert.Equal(t, "a+b+c", plusJoin("  a b\tc "))
	assert.Equal(t, "R%26D+labs", plusJoin("R&D labs"))
	assert.Equal(t, "", plusJoin(""))
}

const sampleHFJSON = `[
  {"id": "acme/retail-sales", "description": "Daily   sales\nfor 40 stores.", "downloads": 1200, "likes": 3},
  {"id": "", "description": "no id"},
  {"id": "other/receipts", "downloads": 50, "likes": 1}
]`

func TestHuggingFaceSourceFind(t *testing.T) {
	var gotQuery, gotLimit, gotAuth string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("search")
		gotLimit = r.URL.Query().Get("limit")
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, sampleHFJSON)
	}))
	defer ts.Close()

	oldAPI, oldSite := huggingFaceAPIBase, huggingFaceSiteBase
	huggingFaceAPIBase, huggingFaceSiteBase = ts.URL+"/api/datasets", "https://hf.example"
	defer func() { huggingFaceAPIBase, huggingFaceSiteBase = oldAPI, oldSite }()

	h := &HuggingFaceSource{Client: ts.Client(), Token: "hf_tok", Limit: 3}
	links, err := h.Find(context.Background(), "retail sales")
	require.NoError(t, err)

	assert.Equal(t, "retail sales", gotQuery)
	assert.Equal(t, "3", gotLimit)
	assert.Equal(t, "Bearer hf_tok", gotAuth)
	assert.Equal(t, []types.ResourceLink{
		{Title: "acme/retail-sales", URL: "https://hf.example/datasets/acme/retail-sales", Description: "Daily sales for 40 stores."},
		{Title: "other/receipts", URL: "https://hf.example/datasets/other/receipts", Description: "50 downloads, 1 likes"},
	}, links)
}

func TestHuggingFaceSourceHTTPError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer ts.Close()

	old := huggingFaceAPIBase
	huggingFaceAPIBase = ts.URL
	defer func() { huggingFaceAPIBase = old }()

	_, err := (&HuggingFaceSource{Client: ts.Client()}).Find(context.Background(), "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 502")
}

func TestNewSources(t *testing.T) {
	s := &mockSearcher{}
	tests := []struct {
		name      string
		cfg       types.DatasetConfig
		searcher  *mockSearcher
		wantNames []string
		wantTypes []any
		wantErr   bool
	}{
		{
			name:      "defaults",
			cfg:       types.DatasetConfig{},
			searcher:  s,
			wantNames: []string{"github", "huggingface", "kaggle"},
			wantTypes: []any{&GitHubSource{}, HuggingFaceStub{}, KaggleStub{}},
		},
		{
			name:      "live hugging face",
			cfg:       types.DatasetConfig{HuggingFace: types.SourceLive},
			searcher:  s,
			wantNames: []string{"github", "huggingface", "kaggle"},
			wantTypes: []any{&GitHubSource{}, &HuggingFaceSource{}, KaggleStub{}},
		},
		{
			name:      "no searcher drops github",
			cfg:       types.DatasetConfig{},
			searcher:  nil,
			wantNames: []string{"huggingface", "kaggle"},
			wantTypes: []any{HuggingFaceStub{}, KaggleStub{}},
		},
		{
			name:      "sources switched off",
			cfg:       types.DatasetConfig{GitHub: types.SourceOff, Kaggle: types.SourceOff},
			searcher:  s,
			wantNames: []string{"huggingface"},
			wantTypes: []any{HuggingFaceStub{}},
		},
		{
			name:    "kaggle has no live mode",
			cfg:     types.DatasetConfig{Kaggle: types.SourceLive},
			wantErr: true,
		},
		{
			name:    "unknown github mode",
			cfg:     types.DatasetConfig{GitHub: "maybe"},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var searcher search.Searcher
			if tt.searcher != nil {
				searcher = tt.searcher
			}
			got, err := NewSources(tt.cfg, searcher)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Len(t, got, len(tt.wantNames))
			for i, src := range got {
				assert.Equal(t, tt.wantNames[i], src.Name())
				assert.IsType(t, tt.wantTypes[i], src)
				assert.NotEmpty(t, src.Heading())
			}
		})
	}
}
