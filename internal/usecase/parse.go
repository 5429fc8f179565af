// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package usecase

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/pdiddy/research-studio/pkg/types"
)

// NoDescription is used when an entry carries no description marker.
const NoDescription = "No description found."

// Parse splits a numbered use case list into blocks, in input order.
//
// An entry starts on a line beginning, at column 0, with digits followed by a
// period and then whitespace or the end of the line. Indented numbered lines
// belong to the current entry's body. The rest of that line is the
// title; every following line up to the next entry start is the entry body.
// The description is the text after the first DescriptionMarker, skipping
// leading whitespace and line breaks, up to the end of its line.
//
// Text before the first entry and entries with an empty title are skipped.
func Parse(text string) []types.UseCaseBlock {
	text = strings.ReplaceAll(text, "\r\n", "\n")

	var blocks []types.UseCaseBlock
	var cur *types.UseCaseBlock
	var body strings.Builder

	flush := func() {
		if cur != nil && cur.Title != "" {
			cur.Description = extractDescription(body.String())
			blocks = append(blocks, *cur)
		}
		cur = nil
		body.Reset()
	}

	for _, line := range strings.Split(text, "\n") {
		if idx, title, ok := numberedLine(line); ok {
			flush()
			cur = &types.UseCaseBlock{Index: idx, Title: title}
		}
		if cur != nil {
			body.WriteString(line)
			body.WriteByte('\n')
		}
	}
	flush()

	return blocks
}

// numberedLine reports whether line starts an entry and returns its ordinal
// and trimmed title.
func numberedLine(s string) (int, string, bool) {
	digits := 0
	for digits < len(s) && s[digits] >= '0' && s[digits] <= '9' {
		digits++
	}
	if digits == 0 || digits >= len(s) || s[digits] != '.' {
		return 0, "", false
	}

	rest := s[digits+1:]
	if rest != "" && !unicode.IsSpace(rune(rest[0])) {
		return 0, "", false
	}

	idx, err := strconv.Atoi(s[:digits])
	if err != nil {
		return 0, "", false
	}
	return idx, strings.TrimSpace(rest), true
}

func extractDescription(body string) string {
	i := strings.Index(body, DescriptionMarker)
	if i < 0 {
		return NoDescription
	}
	rest := strings.TrimLeftFunc(body[i+len(DescriptionMarker):], unicode.IsSpace)
	if end := strings.IndexByte(rest, '\n'); end >= 0 {
		rest = rest[:end]
	}
	if rest = strings.TrimSpace(rest); rest == "" {
		return NoDescription
	}
	return rest
}
