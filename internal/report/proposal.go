// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"fmt"
	"io"

	"github.com/pdiddy/research-studio/pkg/types"
)

// WriteProposal prints the closing summary of a research run: the use case
// titles followed by the research links they were derived from.
func WriteProposal(w io.Writer, useCases []types.UseCaseBlock, refs []types.SearchHit) {
	fmt.Fprintln(w, "Top Use Cases:")
	if len(useCases) == 0 {
		fmt.Fprintln(w, "  (none)")
	}
	for _, uc := range useCases {
		fmt.Fprintf(w, "%d. %s\n", uc.Index, uc.Title)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "References:")
	if len(refs) == 0 {
		fmt.Fprintln(w, "  (none)")
	}
	for _, r := range refs {
		fmt.Fprintf(w, "- %s\n", r.Link)
	}
}
