// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/pdiddy/research-studio/internal/ingest"
	"github.com/pdiddy/research-studio/internal/jobs"
	"github.com/pdiddy/research-studio/internal/logger"
)

const errVideoNotFound = "Video file not found"

type errorResponse struct {
	Error string `json:"error"`
}

type startResponse struct {
	JobID  string `json:"job_id"`
	Status string `json:"status"`
}

type indexResponse struct {
	Name      string            `json:"name"`
	Endpoints map[string]string `json:"endpoints"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warn("writing response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, indexResponse{
		Name:      "research-studio text to video",
		Endpoints: map[string]string{
			"POST /process_text":       "Process text to video (form field text_input or file text_file)",
			"GET /status/{job_id}":     "Check processing status",
			"GET /download/{filename}": "Download video",
			"GET /preview/{filename}":  "Preview video",
		},
	})
}

func (s *Server) handleProcessText(w http.ResponseWriter, r *http.Request) {
	tooLarge := "File too large. Maximum size is " + sizeLabel(s.cfg.MaxUploadBytes) + "."
	if r.ContentLength > s.cfg.MaxUploadBytes {
		writeError(w, http.StatusRequestEntityTooLarge, tooLarge)
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)

	if err := parseForm(r, s.cfg.MaxUploadBytes); err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			writeError(w, http.StatusRequestEntityTooLarge, tooLarge)
			return
		}
		writeError(w, http.StatusBadRequest, "Invalid form data: "+err.Error())
		return
	}

	text := strings.TrimSpace(r.FormValue("text_input"))
	fileText, err := s.uploadedText(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if fileText != "" {
		text = fileText
	}

	if utf8.RuneCountInString(text) < s.cfg.MinTextLength {
		writeError(w, http.StatusBadRequest,
			fmt.Sprintf("Please provide text with at least %d characters", s.cfg.MinTextLength))
		return
	}

	id, err := s.start(r.Context(), text)
	if errors.Is(err, ErrShuttingDown) {
		writeError(w, http.StatusServiceUnavailable, err.Error())
		return
	}
	if err != nil {
		logger.Warn("starting job: %v", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, startResponse{JobID: id, Status: "started"})
}

func sizeLabel(n int64) string {
	if n >= 1<<20 {
		return fmt.Sprintf("%dMB", n>>20)
	}
	return fmt.Sprintf("%d bytes", n)
}

// parseForm parses urlencoded and multipart bodies.
func parseForm(r *http.Request, maxMemory int64) error {
	ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if ct == "multipart/form-data" {
		return r.ParseMultipartForm(maxMemory)
	}
	return r.ParseForm()
}

// uploadedText returns the trimmed text of the text_file upload, or "" when
// there is no usable upload. Files of unsupported types are ignored.
func (s *Server) uploadedText(r *http.Request) (string, error) {
	file, hdr, err := r.FormFile("text_file")
	if err != nil {
		return "", nil
	}
	defer file.Close()

	name := filepath.Base(hdr.Filename)
	if hdr.Filename == "" || !ingest.Allowed(name) {
		logger.Warn("ignoring upload %q: unsupported file type", hdr.Filename)
		return "", nil
	}

	if err := os.MkdirAll(s.cfg.UploadDir, 0o755); err != nil {
		return "", fmt.Errorf("saving upload: %w", err)
	}
	path := filepath.Join(s.cfg.UploadDir, uuid.NewString()+"_"+name)
	if err := saveUpload(file, path); err != nil {
		return "", err
	}
	defer os.Remove(path)

	text, err := ingest.ReadText(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", name, err)
	}
	return strings.TrimSpace(text), nil
}

func saveUpload(src io.Reader, path string) error {
	dst, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("saving upload: %w", err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return fmt.Errorf("saving upload: %w", err)
	}
	return dst.Close()
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	job, err := s.store.Get(r.Context(), r.PathValue("id"))
	if errors.Is(err, jobs.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Job not found")
		return
	}
	if err != nil {
		logger.Warn("reading job status: %v", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, job)
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	s.serveVideo(w, r, true)
}

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	s.serveVideo(w, r, false)
}

func (s *Server) serveVideo(w http.ResponseWriter, r *http.Request, attachment bool) {
	name := r.PathValue("filename")
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		writeError(w, http.StatusNotFound, errVideoNotFound)
		return
	}

	f, err := os.Open(filepath.Join(s.cfg.VideoDir, name))
	if err != nil {
		writeError(w, http.StatusNotFound, errVideoNotFound)
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil || info.IsDir() {
		writeError(w, http.StatusNotFound, errVideoNotFound)
		return
	}

	w.Header().Set("Content-Type", "video/mp4")
	if attachment {
		w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": name}))
	}
	http.ServeContent(w, r, name, info.ModTime(), f)
}
