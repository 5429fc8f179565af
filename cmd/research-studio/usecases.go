// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/research-studio/internal/usecase"
)

var usecasesCmd = &cobra.Command{
	Use:   "usecases <subject>",
	Short: "Generate a numbered list of AI use cases for a subject",
	Long: `Usecases prints five numbered use cases with descriptions. Subjects that
mention "voice" or "document" get dedicated templates; anything else gets a
generic set. With usecases.generator set to ollama, a local model writes the
list and the templates are the fallback.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		subject := strings.Join(args, " ")
		text, err := generateUseCases(cmd.Context(), studioConfig().UseCases, subject)
		if err != nil {
			return err
		}

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return printJSON(cmd.OutOrStdout(), usecase.Parse(text))
		}
		fmt.Fprintln(cmd.OutOrStdout(), text)
		return nil
	},
}

func init() {
	usecasesCmd.Flags().Bool("json", false, "print the parsed entries as JSON")

	rootCmd.AddCommand(usecasesCmd)
}
