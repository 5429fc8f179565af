// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report assembles the markdown resource report for a list of use
// cases, exports it to PDF, and records research runs on disk.
package report

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/pdiddy/research-studio/internal/dataset"
	"github.com/pdiddy/research-studio/internal/logger"
	"github.com/pdiddy/research-studio/internal/usecase"
	"github.com/pdiddy/research-studio/pkg/types"
)

const (
	// ResourcesFile is the markdown report written under the output directory.
	ResourcesFile = "resources.md"

	// PDFFile is the PDF export written under the output directory.
	PDFFile = "resources_report.pdf"

	// DefaultOutputDir is used when no output directory is configured.
	DefaultOutputDir = "outputs"

	resourcesHeader = "# Resource Links\n\n"
)

// Assembler collects dataset links for every use case of a list and renders
// them into one markdown document.
type Assembler struct {
	sources   []dataset.Source
	outputDir string
}

// NewAssembler returns an Assembler that consults sources in order and
// writes its report under cfg.OutputDir.
func NewAssembler(sources []dataset.Source, cfg types.ReportConfig) *Assembler {
	dir := cfg.OutputDir
	if dir == "" {
		dir = DefaultOutputDir
	}
	return &Assembler{sources: sources, outputDir: dir}
}

// ResourcesPath returns the path the report is persisted to.
func (a *Assembler) ResourcesPath() string {
	return filepath.Join(a.outputDir, ResourcesFile)
}

// Collect parses useCases and gathers resource groups for every entry, in
// input order. The search term is term when non-empty, else the entry title.
// A source that fails contributes an empty group.
func (a *Assembler) Collect(ctx context.Context, useCases, term string) []types.UseCaseResources {
	blocks := usecase.Parse(useCases)
	out := make([]types.UseCaseResources, 0, len(blocks))

	for _, b := range blocks {
		query := strings.TrimSpace(term)
		if query == "" {
			query = b.Title
		}
		logger.Debug("collecting resources for %q (query %q)", b.Title, query)
		out = append(out, types.UseCaseResources{
			UseCase: b,
			Groups:  a.lookup(ctx, query),
		})
	}
	return out
}

// lookup queries all sources concurrently and returns their groups in
// source order.
func (a *Assembler) lookup(ctx context.Context, query string) []types.ResourceGroup {
	groups := make([]types.ResourceGroup, len(a.sources))
	var wg sync.WaitGroup

	for i, src := range a.sources {
		groups[i] = types.ResourceGroup{Source: src.Name(), Heading: src.Heading()}
		wg.Add(1)
		go func(i int, src dataset.Source) {
			defer wg.Done()
			links, err := src.Find(ctx, query)
			if err != nil {
				logger.Warn("dataset source %s failed for %q: %v", src.Name(), query, err)
				return
			}
			groups[i].Links = links
		}(i, src)
	}

	wg.Wait()
	return groups
}

// Assemble renders the resource report for useCases.
func (a *Assembler) Assemble(ctx context.Context, useCases, term string) string {
	return Render(a.Collect(ctx, useCases, term))
}

// Run renders the report and writes it to ResourcesPath. The markdown is
// returned even when writing fails.
func (a *Assembler) Run(ctx context.Context, useCases, term string) (string, error) {
	md := a.Assemble(ctx, useCases, term)
	if err := writeFile(a.ResourcesPath(), []byte(md)); err != nil {
		return md, err
	}
	return md, nil
}

// Render formats collected resources as markdown. Groups without links are
// omitted.
func Render(items []types.UseCaseResources) string {
	var b strings.Builder
	b.WriteString(resourcesHeader)

	for _, it := range items {
		fmt.Fprintf(&b, "## %s\n\n", it.UseCase.Title)
		fmt.Fprintf(&b, "**Description:** %s\n\n", it.UseCase.Description)

		for _, g := range it.Groups {
			if len(g.Links) == 0 {
				continue
			}
			fmt.Fprintf(&b, "### %s\n\n", g.Heading)
			for _, l := range g.Links {
				fmt.Fprintf(&b, "📦 [%s](%s)\n", l.Title, l.URL)
				if l.Description != "" {
					fmt.Fprintf(&b, "📝 %s\n", l.Description)
				}
				b.WriteString("\n")
			}
		}
	}
	return b.String()
}

// writeFile writes data to path, creating parent directories.
func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
