// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/pdiddy/research-studio/internal/chunk"
)

var chunkCmd = &cobra.Command{
	Use:   "chunk",
	Short: "Split text into sentence-aligned chunks",
	Long: `Chunk splits text (from --text or --file) into chunks of at most
--max-length characters along sentence boundaries, and prints each chunk with
its estimated narration time. A single sentence longer than the limit becomes
its own chunk.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := textFromFlags(cmd)
		if err != nil {
			return err
		}
		maxLen, _ := cmd.Flags().GetInt("max-length")
		if maxLen <= 0 {
			maxLen = studioConfig().Chunking.MaxLength
		}

		chunks := chunk.Split(text, maxLen)
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			if chunks == nil {
				chunks = []string{}
			}
			return printJSON(cmd.OutOrStdout(), chunks)
		}

		out := cmd.OutOrStdout()
		for i, c := range chunks {
			fmt.Fprintf(out, "[%d] %d chars, ~%s\n%s\n\n",
				i+1, utf8.RuneCountInString(c), chunk.EstimateDuration(c, 0), c)
		}
		fmt.Fprintf(out, "%d chunks, ~%s total\n", len(chunks), chunk.EstimateDuration(text, 0))
		return nil
	},
}

func init() {
	addTextFlags(chunkCmd)
	chunkCmd.Flags().Int("max-length", 0, "maximum chunk length in characters (default chunking.max_length)")
	chunkCmd.Flags().Bool("json", false, "print chunks as a JSON array")

	rootCmd.AddCommand(chunkCmd)
}
