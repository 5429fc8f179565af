// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pdiddy/research-studio/internal/report"
)

var exportPDFCmd = &cobra.Command{
	Use:   "export-pdf",
	Short: "Export a markdown report to PDF",
	Long: `Export-pdf renders a markdown file as a plain-text A4 PDF, one paragraph
per line. Emoji and other non-ASCII characters are dropped. Defaults to
<output_dir>/resources.md and <output_dir>/resources_report.pdf.

With --run, the markdown path is taken from a run file saved by
"research --save", and the PDF path is recorded back into it.`,
	RunE: runExportPDF,
}

func init() {
	addExportPDFFlags(exportPDFCmd)

	rootCmd.AddCommand(exportPDFCmd)
}

func addExportPDFFlags(cmd *cobra.Command) {
	cmd.Flags().String("input", "", "markdown file to export")
	cmd.Flags().String("output", "", "PDF file to write")
	cmd.Flags().String("run", "", "run file whose report should be exported")
	cmd.MarkFlagsMutuallyExclusive("input", "run")
}

func runExportPDF(cmd *cobra.Command, args []string) error {
	outDir := studioConfig().Report.OutputDir
	input, _ := cmd.Flags().GetString("input")
	output, _ := cmd.Flags().GetString("output")
	runPath, _ := cmd.Flags().GetString("run")

	var rf *report.RunFile
	if runPath != "" {
		var err error
		rf, err = report.ReadRunFile(runPath)
		if err != nil {
			return err
		}
		if rf.Artifacts.Markdown == "" {
			return fmt.Errorf("run file %s records no markdown report", runPath)
		}
		input = rf.Artifacts.Markdown
		if output == "" {
			output = filepath.Join(filepath.Dir(input), report.PDFFile)
		}
	}
	if input == "" {
		input = filepath.Join(outDir, report.ResourcesFile)
	}
	if output == "" {
		output = filepath.Join(outDir, report.PDFFile)
	}

	if err := report.ExportPDFFile(input, output); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "PDF saved to %s\n", output)

	if rf != nil {
		rf.Artifacts.PDF = output
		if err := report.WriteRunFile(runPath, *rf); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Run updated: %s\n", runPath)
	}
	return nil
}
