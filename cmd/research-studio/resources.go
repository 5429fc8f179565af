// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var resourcesCmd = &cobra.Command{
	Use:   "resources",
	Short: "Collect dataset links for a numbered use case list",
	Long: `Resources reads a numbered use case list (from --file, or stdin when the
file is "-"), looks up GitHub, Hugging Face and Kaggle datasets for every
entry, prints the markdown report and writes it to <output_dir>/resources.md.

Each entry is searched by its title unless --term is given.`,
	RunE: runResources,
}

func init() {
	resourcesCmd.Flags().String("file", "", `use case list to read ("-" for stdin)`)
	resourcesCmd.Flags().String("term", "", "search term to use for every entry")
	_ = resourcesCmd.MarkFlagRequired("file")

	rootCmd.AddCommand(resourcesCmd)
}

func runResources(cmd *cobra.Command, args []string) error {
	file, _ := cmd.Flags().GetString("file")
	term, _ := cmd.Flags().GetString("term")

	var data []byte
	var err error
	if file == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(file)
	}
	if err != nil {
		return fmt.Errorf("reading use case list: %w", err)
	}

	cfg := studioConfig()
	asm, err := newAssembler(cfg, newSearcher(cfg.Search))
	if err != nil {
		return err
	}

	md, err := asm.Run(cmd.Context(), string(data), term)
	fmt.Fprint(cmd.OutOrStdout(), md)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Resources saved to %s\n", asm.ResourcesPath())
	return nil
}
