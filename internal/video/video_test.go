// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package video

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/research-studio/pkg/types"
)

// fakeRunner records ffmpeg invocations. The final argument of every call
// is the output file, which it creates so later steps can find it.
type fakeRunner struct {
	calls    [][]string
	overlays []string
	list     string
	output   []byte
	failOn   int // 1-based call index that fails; 0 never fails
}

func (f *fakeRunner) Run(_ context.Context, args ...string) error {
	f.calls = append(f.calls, args)
	if f.failOn == len(f.calls) {
		return errors.New("exit status 1")
	}
	for i, a := range args {
		if a == "-vf" {
			f.overlays = append(f.overlays, readTextFile(args[i+1]))
		}
		if a == "concat" {
			data, _ := os.ReadFile(args[i+4])
			f.list = string(data)
		}
	}
	return os.WriteFile(args[len(args)-1], []byte("mp4"), 0o644)
}

func (f *fakeRunner) Output(_ context.Context, args ...string) ([]byte, error) {
	f.calls = append(f.calls, args)
	return f.output, nil
}

func readTextFile(filter string) string {
	_, rest, _ := strings.Cut(filter, "textfile='")
	path, _, _ := strings.Cut(rest, "'")
	data, _ := os.ReadFile(path)
	return string(data)
}

func writeAudio(t *testing.T, dir, name string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte("ID3"), 0o644))
	return p
}

func TestCompose(t *testing.T) {
	dir := t.TempDir()
	a1 := writeAudio(t, dir, "a1.mp3")
	a2 := writeAudio(t, dir, "a2.mp3")
	out := filepath.Join(dir, "videos", "video_x.mp4")

	ff := &fakeRunner{}
	c := NewCompositor(ff, types.VideoConfig{WrapWidth: 12})

	err := c.Compose(context.Background(), []Segment{
		{Text: "First chunk of narrated text.", AudioPath: a1},
		{Text: "Skipped.", AudioPath: filepath.Join(dir, "missing.mp3")},
		{Text: "Skipped too."},
		{Text: "Second.", AudioPath: a2},
	}, out)
	require.NoError(t, err)

	// Two clips plus the concat step.
	require.Len(t, ff.calls, 3)
	assert.Contains(t, ff.calls[0], "color=c=0x1e1e32:s=1280x720:r=24")
	assert.Contains(t, ff.calls[0], a1)
	assert.Contains(t, ff.calls[1], a2)
	assert.Equal(t, []string{"First chunk\nof narrated\ntext.", "Second."}, ff.overlays)

	assert.Equal(t, 2, strings.Count(ff.list, "file '"))
	assert.Equal(t, out, ff.calls[2][len(ff.calls[2])-1])
	assert.FileExists(t, out)
}

func TestComposeNoClips(t *testing.T) {
	ff := &fakeRunner{}
	c := NewCompositor(ff, types.VideoConfig{})
	err := c.Compose(context.Background(), []Segment{{Text: "x"}}, filepath.Join(t.TempDir(), "o.mp4"))
	assert.ErrorIs(t, err, ErrNoClips)
	assert.Empty(t, ff.calls)
}

func TestComposeEncoderFailure(t *testing.T) {
	dir := t.TempDir()
	ff := &fakeRunner{failOn: 1}
	c := NewCompositor(ff, types.VideoConfig{})
	err := c.Compose(context.Background(), []Segment{{Text: "x", AudioPath: writeAudio(t, dir, "a.mp3")}}, filepath.Join(dir, "o.mp4"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "segment 1")
}

func TestComposeLiteralOverlayText(t *testing.T) {
	dir := t.TempDir()
	ff := &fakeRunner{}
	c := NewCompositor(ff, types.VideoConfig{WrapWidth: 80})

	text := `Sales grew 20% in 2024 on C:\data.`
	err := c.Compose(context.Background(), []Segment{{Text: text, AudioPath: writeAudio(t, dir, "a.mp3")}}, filepath.Join(dir, "o.mp4"))
	require.NoError(t, err)

	assert.Equal(t, []string{text}, ff.overlays)
	filter := ff.calls[0][slices.Index(ff.calls[0], "-vf")+1]
	assert.Contains(t, filter, ":expansion=none:")
}

func TestDrawText(t *testing.T) {
	c := NewCompositor(nil, types.VideoConfig{TextColor: "yellow", FontSize: 30, FontFile: "/fonts/a.ttf"})
	got := c.drawText("/tmp/t.txt")
	assert.Equal(t,
		"drawtext=textfile='/tmp/t.txt':expansion=none:fontcolor=yellow:fontsize=30:line_spacing=10:x=(w-text_w)/2:y=(h-text_h)/2:fontfile='/fonts/a.ttf'",
		got)
}

func TestQuoteFilterValue(t *testing.T) {
	assert.Equal(t, `'a b'`, quoteFilterValue("a b"))
	assert.Equal(t, `'it'\''s'`, quoteFilterValue("it's"))
}

const sampleProbe = `{
  "streams": [
    {"codec_type": "audio"},
    {"codec_type": "video", "width": 1280, "height": 720, "avg_frame_rate": "24/1", "r_frame_rate": "24/1"}
  ],
  "format": {"duration": "12.500000"}
}`

func TestProbe(t *testing.T) {
	path := filepath.Join(t.TempDir(), "v.mp4")
	require.NoError(t, os.WriteFile(path, []byte("mp4"), 0o644))

	fp := &fakeRunner{output: []byte(sampleProbe)}
	info, err := Probe(context.Background(), fp, path)
	require.NoError(t, err)
	assert.Equal(t, Info{Duration: 12500 * time.Millisecond, FPS: 24, Width: 1280, Height: 720}, info)
	assert.Equal(t, path, fp.calls[0][len(fp.calls[0])-1])
}

func TestProbeMissingFile(t *testing.T) {
	_, err := Probe(context.Background(), &fakeRunner{}, filepath.Join(t.TempDir(), "none.mp4"))
	assert.ErrorContains(t, err, "video file not found")
}

func TestParseProbeErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"invalid json", "{"},
		{"bad duration", `{"format":{"duration":"abc"},"streams":[{"codec_type":"video"}]}`},
		{"no video stream", `{"format":{"duration":"1.0"},"streams":[{"codec_type":"audio"}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseProbe([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}

func TestParseRate(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"24/1", 24},
		{"30000/1001", 30000.0 / 1001},
		{"25", 25},
		{"0/0", 0},
		{"x/1", 0},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, parseRate(tt.in), 1e-9, tt.in)
	}
}
