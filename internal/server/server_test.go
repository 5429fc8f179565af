// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/research-studio/internal/jobs"
	"github.com/pdiddy/research-studio/pkg/types"
)

type fakeRunner struct {
	mu    sync.Mutex
	texts map[string]string
	store jobs.Store
}

func (f *fakeRunner) Run(ctx context.Context, id, text string) (string, error) {
	f.mu.Lock()
	f.texts[id] = text
	f.mu.Unlock()
	name := "video_" + id + ".mp4"
	err := f.store.Update(ctx, id, jobs.State{Status: types.JobCompleted, Progress: 100, Message: "done", VideoPath: name})
	return name, err
}

func (f *fakeRunner) text(id string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.texts[id]
}

func newTestServer(t *testing.T, cfg types.ServerConfig) (*Server, *fakeRunner, *httptest.Server) {
	t.Helper()
	dir := t.TempDir()
	if cfg.UploadDir == "" {
		cfg.UploadDir = filepath.Join(dir, "uploads")
	}
	if cfg.VideoDir == "" {
		cfg.VideoDir = filepath.Join(dir, "videos")
	}
	store := jobs.NewMemoryStore()
	runner := &fakeRunner{texts: map[string]string{}, store: store}
	s := New(context.Background(), store, runner, cfg)

	n := 0
	s.newID = func() string {
		n++
		return "job-" + string(rune('0'+n))
	}

	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return s, runner, ts
}

func decode(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var m map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&m))
	return m
}

func TestIndex(t *testing.T) {
	_, _, ts := newTestServer(t, types.ServerConfig{})
	resp, err := http.Get(ts.URL + "/")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := decode(t, resp)
	assert.Contains(t, body["endpoints"], "POST /process_text")
}

func TestProcessTextForm(t *testing.T) {
	s, runner, ts := newTestServer(t, types.ServerConfig{})

	resp, err := http.PostForm(ts.URL+"/process_text", url.Values{"text_input": {"  A long enough narration.  "}})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := decode(t, resp)
	assert.Equal(t, "job-1", body["job_id"])
	assert.Equal(t, "started", body["status"])

	s.Wait()
	assert.Equal(t, "A long enough narration.", runner.text("job-1"))

	resp, err = http.Get(ts.URL + "/status/job-1")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	status := decode(t, resp)
	assert.Equal(t, "completed", status["status"])
	assert.Equal(t, float64(100), status["progress"])
	assert.Equal(t, "video_job-1.mp4", status["video_path"])
}

func TestProcessTextTooShort(t *testing.T) {
	_, _, ts := newTestServer(t, types.ServerConfig{})

	for _, in := range []string{"", "short", "   123456789   "} {
		resp, err := http.PostForm(ts.URL+"/process_text", url.Values{"text_input": {in}})
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "input %q", in)
		assert.Equal(t, "Please provide text with at least 10 characters", decode(t, resp)["error"])
	}
}

func multipartBody(t *testing.T, fields map[string]string, fileName, fileContent string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if fileName != "" {
		fw, err := mw.CreateFormFile("text_file", fileName)
		require.NoError(t, err)
		_, err = io.WriteString(fw, fileContent)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestProcessTextUpload(t *testing.T) {
	tests := []struct {
		name     string
		field    string
		file     string
		content  string
		wantText string
	}{
		{name: "file overrides field", field: "field text is long", file: "notes.txt", content: "File content wins here.", wantText: "File content wins here."},
		{name: "markdown file", file: "doc.md", content: "# Heading\n\nBody of the doc.", wantText: "# Heading\n\nBody of the doc."},
		{name: "empty file falls back", field: "field text is long", file: "empty.txt", content: "   ", wantText: "field text is long"},
		{name: "unsupported type ignored", field: "field text is long", file: "clip.mp4", content: "binary", wantText: "field text is long"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, runner, ts := newTestServer(t, types.ServerConfig{})
			body, ct := multipartBody(t, map[string]string{"text_input": tt.field}, tt.file, tt.content)

			resp, err := http.Post(ts.URL+"/process_text", ct, body)
			require.NoError(t, err)
			assert.Equal(t, http.StatusOK, resp.StatusCode)
			resp.Body.Close()

			s.Wait()
			assert.Equal(t, tt.wantText, runner.text("job-1"))

			// Uploads are removed once read.
			entries, _ := os.ReadDir(s.cfg.UploadDir)
			assert.Empty(t, entries)
		})
	}
}

func TestProcessTextTooLarge(t *testing.T) {
	_, _, ts := newTestServer(t, types.ServerConfig{MaxUploadBytes: 64})

	body, ct := multipartBody(t, nil, "big.txt", strings.Repeat("x", 1024))
	resp, err := http.Post(ts.URL+"/process_text", ct, body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusRequestEntityTooLarge, resp.StatusCode)
	assert.Equal(t, "File too large. Maximum size is 64 bytes.", decode(t, resp)["error"])
}

func TestTooLargeDeclaredLength(t *testing.T) {
	s := New(context.Background(), jobs.NewMemoryStore(), &fakeRunner{texts: map[string]string{}}, types.ServerConfig{})

	req := httptest.NewRequest(http.MethodPost, "/process_text", strings.NewReader("x"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.ContentLength = DefaultMaxUploadBytes + 1

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.JSONEq(t, `{"error":"File too large. Maximum size is 16MB."}`, rec.Body.String())
}

func TestStatusNotFound(t *testing.T) {
	_, _, ts := newTestServer(t, types.ServerConfig{})
	resp, err := http.Get(ts.URL + "/status/nope")
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Job not found", decode(t, resp)["error"])
}

func TestDownloadAndPreview(t *testing.T) {
	s, _, ts := newTestServer(t, types.ServerConfig{})
	require.NoError(t, os.MkdirAll(s.cfg.VideoDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(s.cfg.VideoDir, "video_a.mp4"), []byte("MP4DATA"), 0o644))

	resp, err := http.Get(ts.URL + "/download/video_a.mp4")
	require.NoError(t, err)
	data, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "MP4DATA", string(data))
	assert.Equal(t, "video/mp4", resp.Header.Get("Content-Type"))
	assert.Equal(t, "attachment; filename=video_a.mp4", resp.Header.Get("Content-Disposition"))

	resp, err = http.Get(ts.URL + "/preview/video_a.mp4")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, resp.Header.Get("Content-Disposition"))
}

func TestDownloadNotFound(t *testing.T) {
	s, _, ts := newTestServer(t, types.ServerConfig{})
	require.NoError(t, os.MkdirAll(filepath.Join(s.cfg.VideoDir, "sub.mp4"), 0o755))

	for _, path := range []string{
		"/download/missing.mp4",
		"/preview/missing.mp4",
		"/download/sub.mp4",
		"/download/.hidden",
	} {
		resp, err := http.Get(ts.URL + path)
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode, path)
		assert.Equal(t, "Video file not found", decode(t, resp)["error"], path)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	_, _, ts := newTestServer(t, types.ServerConfig{})
	resp, err := http.Get(ts.URL + "/process_text")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestWithDefaults(t *testing.T) {
	cfg := WithDefaults(types.ServerConfig{})
	assert.Equal(t, types.ServerConfig{
		Addr:           ":5000",
		UploadDir:      "static/uploads",
		VideoDir:       "static/videos",
		MaxUploadBytes: 16 << 20,
		MinTextLength:  10,
	}, cfg)
}

// blockingRunner holds each job until the job context is cancelled.
type blockingRunner struct {
	started  chan struct{}
	once     sync.Once
	finished atomic.Bool
}

func (b *blockingRunner) Run(ctx context.Context, _, _ string) (string, error) {
	b.once.Do(func() { close(b.started) })
	<-ctx.Done()
	b.finished.Store(true)
	return "", ctx.Err()
}

func TestListenAndServeDrainsJobs(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	runner := &blockingRunner{started: make(chan struct{})}
	s := New(ctx, jobs.NewMemoryStore(), runner, types.ServerConfig{Addr: "127.0.0.1:0"})

	_, err := s.start(context.Background(), "some narration text")
	require.NoError(t, err)
	<-runner.started

	done := make(chan error, 1)
	go func() { done <- s.ListenAndServe(ctx) }()
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("ListenAndServe did not return after cancel")
	}
	assert.True(t, runner.finished.Load(), "running job finished before return")

	_, err = s.start(context.Background(), "too late for this job")
	assert.ErrorIs(t, err, ErrShuttingDown)
}

func TestProcessTextWhileDraining(t *testing.T) {
	s, _, ts := newTestServer(t, types.ServerConfig{})
	s.drain()

	resp, err := http.PostForm(ts.URL+"/process_text", url.Values{"text_input": {"A long enough narration."}})
	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Equal(t, ErrShuttingDown.Error(), decode(t, resp)["error"])
}
