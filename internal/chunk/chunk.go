// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package chunk splits narration text into bounded-length chunks along
// sentence boundaries and provides small helpers for timing and display.
package chunk

import (
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/x/ansi"
)

const (
	// DefaultMaxLength is the chunk length limit in characters.
	DefaultMaxLength = 500

	// DefaultWordsPerMinute is the speaking rate used by EstimateDuration.
	DefaultWordsPerMinute = 150

	// DefaultWrapWidth is the display line width used by Wrap.
	DefaultWrapWidth = 40

	sentenceSep = ". "
)

// Split breaks text into chunks of at most maxLen characters. Sentences are
// delimited by ". " and packed greedily: a sentence joins the current chunk
// unless doing so would exceed maxLen, in which case the chunk is closed and
// the sentence starts the next one. A sentence longer than maxLen on its own
// becomes a single oversized chunk. Line breaks are treated as spaces.
//
// Empty or whitespace-only input yields nil. maxLen <= 0 uses DefaultMaxLength.
func Split(text string, maxLen int) []string {
	if maxLen <= 0 {
		maxLen = DefaultMaxLength
	}

	sentences := Sentences(text)
	if len(sentences) == 0 {
		return nil
	}

	var chunks []string
	var cur strings.Builder
	curLen := 0

	for _, s := range sentences {
		n := utf8.RuneCountInString(s)
		if curLen > 0 && curLen+1+n > maxLen {
			chunks = append(chunks, cur.String())
			cur.Reset()
			curLen = 0
		}
		if curLen > 0 {
			cur.WriteByte(' ')
			curLen++
		}
		cur.WriteString(s)
		curLen += n
	}
	if curLen > 0 {
		chunks = append(chunks, cur.String())
	}
	return chunks
}

// Sentences returns the trimmed, non-empty sentences of text in order. The
// period consumed by the ". " split is restored on every sentence but the last.
func Sentences(text string) []string {
	text = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(text)
	parts := strings.Split(text, sentenceSep)

	out := make([]string, 0, len(parts))
	for i, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if i < len(parts)-1 && !strings.HasSuffix(p, ".") {
			p += "."
		}
		out = append(out, p)
	}
	return out
}

// EstimateDuration approximates how long text takes to read aloud at wpm
// words per minute. wpm <= 0 uses DefaultWordsPerMinute.
func EstimateDuration(text string, wpm int) time.Duration {
	if wpm <= 0 {
		wpm = DefaultWordsPerMinute
	}
	words := len(strings.Fields(text))
	seconds := float64(words) / float64(wpm) * 60
	return time.Duration(math.Round(seconds * float64(time.Second)))
}

// Wrap reflows text into lines of at most width characters, breaking on
// spaces where possible. width <= 0 uses DefaultWrapWidth.
func Wrap(text string, width int) string {
	if width <= 0 {
		width = DefaultWrapWidth
	}
	flat := strings.Join(strings.Fields(text), " ")
	wrapped := ansi.Wrap(flat, width, "")
	lines := strings.Split(wrapped, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSpace(l)
	}
	return strings.Join(lines, "\n")
}
