// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package speech converts text to MP3 narration through a hosted
// text-to-speech service.
package speech

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/pdiddy/research-studio/internal/httputil"
	"github.com/pdiddy/research-studio/internal/logger"
	"github.com/pdiddy/research-studio/pkg/types"
)

// MaxPartLength is the longest text the service accepts in one request.
const MaxPartLength = 100

// DefaultLanguage is used when no language is configured.
const DefaultLanguage = "en"

// defaultEndpoint is declared as a var so tests can substitute an httptest server.
var defaultEndpoint = "https://translate.google.com/translate_tts"

// Synthesizer narrates text into an audio file.
type Synthesizer interface {
	// Synthesize writes MP3 audio for text to path.
	Synthesize(ctx context.Context, text, path string) error
}

// GoogleTTS calls the Google Translate speech endpoint.
type GoogleTTS struct {
	client    *http.Client
	endpoint  string
	language  string
	slow      bool
	userAgent string
}

var _ Synthesizer = (*GoogleTTS)(nil)

// NewGoogleTTS builds a client from cfg, filling defaults for empty fields.
func NewGoogleTTS(cfg types.SpeechConfig) *GoogleTTS {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = defaultEndpoint
	}
	lang := cfg.Language
	if lang == "" {
		lang = DefaultLanguage
	}
	return &GoogleTTS{
		client:    &http.Client{Timeout: timeout},
		endpoint:  endpoint,
		language:  lang,
		slow:      cfg.Slow,
		userAgent: cfg.UserAgent,
	}
}

// Synthesize splits text into service-sized parts, fetches each one and
// writes the concatenated MP3 stream to path.
func (g *GoogleTTS) Synthesize(ctx context.Context, text, path string) error {
	parts := SplitText(text, MaxPartLength)
	if len(parts) == 0 {
		return fmt.Errorf("no text to synthesize")
	}

	var audio bytes.Buffer
	for i, part := range parts {
		logger.Debug("speech: part %d/%d (%d chars)", i+1, len(parts), utf8.RuneCountInString(part))
		if err := g.fetch(ctx, part, i, len(parts), &audio); err != nil {
			return fmt.Errorf("synthesizing part %d: %w", i+1, err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", path, err)
	}
	if err := os.WriteFile(path, audio.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func (g *GoogleTTS) fetch(ctx context.Context, part string, idx, total int, w io.Writer) error {
	speed := "1"
	if g.slow {
		speed = "0.3"
	}
	params := url.Values{
		"ie":       {"UTF-8"},
		"client":   {"tw-ob"},
		"q":        {part},
		"tl":       {g.language},
		"ttsspeed": {speed},
		"idx":      {fmt.Sprint(idx)},
		"total":    {fmt.Sprint(total)},
		"textlen":  {fmt.Sprint(utf8.RuneCountInString(part))},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if g.userAgent != "" {
		req.Header.Set("User-Agent", g.userAgent)
	}

	resp, err := httputil.DoWithRetry(ctx, g.client, req, 0)
	if err != nil {
		return fmt.Errorf("speech request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("speech service returned HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	n, err := io.Copy(w, resp.Body)
	if err != nil {
		return fmt.Errorf("reading audio: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("speech service returned no audio")
	}
	return nil
}

// SplitText breaks text into parts of at most maxLen runes along word
// boundaries. Words longer than maxLen are cut.
func SplitText(text string, maxLen int) []string {
	if maxLen <= 0 {
		maxLen = MaxPartLength
	}

	var parts []string
	var cur strings.Builder
	curLen := 0

	flush := func() {
		if curLen > 0 {
			parts = append(parts, cur.String())
		}
		cur.Reset()
		curLen = 0
	}

	for _, word := range strings.Fields(text) {
		r := []rune(word)
		for len(r) > maxLen {
			flush()
			parts = append(parts, string(r[:maxLen]))
			r = r[maxLen:]
		}
		if len(r) == 0 {
			continue
		}
		if curLen > 0 && curLen+1+len(r) > maxLen {
			flush()
		}
		if curLen > 0 {
			cur.WriteByte(' ')
			curLen++
		}
		cur.WriteString(string(r))
		curLen += len(r)
	}
	flush()
	return parts
}
