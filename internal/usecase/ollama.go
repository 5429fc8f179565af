// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package usecase

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/ollama/ollama/api"
	"github.com/ollama/ollama/envconfig"

	"github.com/pdiddy/research-studio/internal/logger"
	"github.com/pdiddy/research-studio/pkg/types"
)

// DefaultOllamaModel is used when no model is configured.
const DefaultOllamaModel = "llama3.2"

const ollamaPrompt = `You are a market research analyst. List five concrete AI or GenAI use cases for %q.
Answer with exactly five entries and nothing else, in this format:

1. <short title>
**Description:** <one sentence>

2. <short title>
**Description:** <one sentence>
`

// generateClient is the subset of *api.Client used by OllamaGenerator.
type generateClient interface {
	Generate(ctx context.Context, req *api.GenerateRequest, fn api.GenerateResponseFunc) error
}

// OllamaGenerator asks a local Ollama model for use cases. When the model
// is unreachable or its answer holds no parseable entries it falls back to
// the keyword templates, so Generate never fails on model errors.
type OllamaGenerator struct {
	client generateClient
	model  string
}

// NewOllamaGenerator connects to host, or to OLLAMA_HOST when host is empty.
func NewOllamaGenerator(cfg types.UseCaseConfig) (*OllamaGenerator, error) {
	hostURL := envconfig.Host()
	if cfg.OllamaHost != "" {
		u, err := url.Parse(cfg.OllamaHost)
		if err != nil {
			return nil, fmt.Errorf("parsing ollama host %q: %w", cfg.OllamaHost, err)
		}
		hostURL = u
	}
	model := cfg.Model
	if model == "" {
		model = DefaultOllamaModel
	}
	return &OllamaGenerator{
		client: api.NewClient(hostURL, http.DefaultClient),
		model:  model,
	}, nil
}

// Generate implements Generator.
func (g *OllamaGenerator) Generate(ctx context.Context, subject string) (string, error) {
	stream := false
	req := &api.GenerateRequest{
		Model:  g.model,
		Prompt: fmt.Sprintf(ollamaPrompt, subject),
		Stream: &stream,
		Options: map[string]any{
			"temperature": 0.2,
		},
	}

	var out strings.Builder
	err := g.client.Generate(ctx, req, func(resp api.GenerateResponse) error {
		_, werr := out.WriteString(resp.Response)
		return werr
	})
	if err != nil {
		logger.Warn("ollama generation failed, using templates: %v", err)
		return FromTemplates(subject), nil
	}

	blocks := Parse(out.String())
	if len(blocks) == 0 {
		logger.Warn("ollama returned no numbered use cases, using templates")
		return FromTemplates(subject), nil
	}
	return Render(blocks), nil
}

// Render writes blocks back into the canonical list format, renumbering
// them from 1.
func Render(blocks []types.UseCaseBlock) string {
	parts := make([]string, len(blocks))
	for i, b := range blocks {
		parts[i] = fmt.Sprintf("%d. %s\n%s %s", i+1, b.Title, DescriptionMarker, b.Description)
	}
	return strings.Join(parts, "\n\n")
}

// NewGenerator returns the generator selected by cfg.
func NewGenerator(cfg types.UseCaseConfig) (Generator, error) {
	switch cfg.Generator {
	case "", types.GeneratorTemplate:
		return TemplateGenerator{}, nil
	case types.GeneratorOllama:
		return NewOllamaGenerator(cfg)
	default:
		return nil, fmt.Errorf("unknown use case generator %q (want template or ollama)", cfg.Generator)
	}
}
