// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/research-studio/internal/dataset"
	"github.com/pdiddy/research-studio/internal/logger"
	"github.com/pdiddy/research-studio/internal/report"
	"github.com/pdiddy/research-studio/internal/search"
	"github.com/pdiddy/research-studio/internal/usecase"
	"github.com/pdiddy/research-studio/pkg/types"
)

var researchCmd = &cobra.Command{
	Use:   "research <company or industry>",
	Short: "Run the full use case research workflow",
	Long: `Research runs the whole workflow for a company or industry:

  1. web research on the industry (Serper search)
  2. AI use case generation
  3. dataset links per use case, written to <output_dir>/resources.md
  4. optional PDF export of the report (--pdf)
  5. a closing proposal listing the top use cases and references

Search failures degrade to empty results; the report is still written.
With --save the run is recorded as YAML; export-pdf --run picks it up later.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runResearch,
}

func init() {
	researchCmd.Flags().String("term", "", "search term for dataset lookups instead of each use case title")
	researchCmd.Flags().Bool("pdf", false, "also export the report to PDF")
	researchCmd.Flags().String("save", "", "write a YAML record of the run to this path")
	researchCmd.Flags().Bool("json", false, "print the industry research results as JSON")

	rootCmd.AddCommand(researchCmd)
}

func runResearch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	subject := strings.Join(args, " ")
	term, _ := cmd.Flags().GetString("term")
	withPDF, _ := cmd.Flags().GetBool("pdf")
	savePath, _ := cmd.Flags().GetString("save")
	asJSON, _ := cmd.Flags().GetBool("json")

	cfg := studioConfig()
	searcher := newSearcher(cfg.Search)

	printSection(out, "Industry research: "+subject)
	var hits []types.SearchHit
	if searcher != nil {
		var err error
		hits, err = search.ResearchIndustry(ctx, searcher, subject, cfg.Search.Results)
		if err != nil {
			logger.Warn("industry research failed: %v", err)
		}
	}
	if asJSON {
		if err := search.FormatJSON(hits, out); err != nil {
			return err
		}
	} else {
		search.FormatMarkdown(hits, out)
	}

	printSection(out, "Use cases")
	useCases, err := generateUseCases(ctx, cfg.UseCases, subject)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, useCases)

	printSection(out, "Resources")
	asm, err := newAssembler(cfg, searcher)
	if err != nil {
		return err
	}
	md, err := asm.Run(ctx, useCases, term)
	fmt.Fprint(out, md)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Resources saved to %s\n", asm.ResourcesPath())

	artifacts := report.RunArtifacts{Markdown: asm.ResourcesPath()}
	if withPDF {
		pdfPath := filepath.Join(cfg.Report.OutputDir, report.PDFFile)
		if err := report.ExportPDF(md, pdfPath); err != nil {
			return err
		}
		artifacts.PDF = pdfPath
		fmt.Fprintf(out, "PDF saved to %s\n", pdfPath)
	}

	blocks := usecase.Parse(useCases)
	printSection(out, "Final proposal")
	report.WriteProposal(out, blocks, hits)

	if savePath != "" {
		rf := report.RunFile{
			Subject:   subject,
			Research:  hits,
			UseCases:  blocks,
			Artifacts: artifacts,
		}
		if err := report.WriteRunFile(savePath, rf); err != nil {
			return err
		}
		fmt.Fprintf(out, "Run saved to %s\n", savePath)
	}
	return nil
}

// newSearcher returns a web search client, or nil when no API key is
// configured. Callers treat a nil searcher as "no search results".
func newSearcher(cfg types.SearchConfig) search.Searcher {
	if cfg.APIKey == "" {
		logger.Warn("no search API key configured; web research and GitHub dataset links are skipped")
		return nil
	}
	return search.NewSerperClient(cfg)
}

func newAssembler(cfg types.StudioConfig, searcher search.Searcher) (*report.Assembler, error) {
	sources, err := dataset.NewSources(cfg.Datasets, searcher)
	if err != nil {
		return nil, err
	}
	return report.NewAssembler(sources, cfg.Report), nil
}

func generateUseCases(ctx context.Context, cfg types.UseCaseConfig, subject string) (string, error) {
	gen, err := usecase.NewGenerator(cfg)
	if err != nil {
		return "", err
	}
	return gen.Generate(ctx, subject)
}
