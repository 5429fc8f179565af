// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "research-studio/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// SearchConfig holds settings for the web search client.
type SearchConfig struct {
	HTTPConfig `yaml:",inline"`

	// APIKey authenticates against the search provider.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// Endpoint is the search provider URL.
	Endpoint string `json:"endpoint" yaml:"endpoint"`

	// Results is the number of organic results requested per query (default 5).
	Results int `json:"results" yaml:"results"`

	// RequestsPerSecond throttles outgoing search calls (0 disables throttling).
	RequestsPerSecond float64 `json:"requests_per_second" yaml:"requests_per_second"`

	// MaxRetries bounds the retries on HTTP 429 responses.
	MaxRetries int `json:"max_retries" yaml:"max_retries"`
}

// SourceMode selects between a live dataset lookup and a fixed-template stub.
type SourceMode string

const (
	SourceLive SourceMode = "live"
	SourceStub SourceMode = "stub"
	SourceOff  SourceMode = "off"
)

// DatasetConfig selects which dataset sources contribute resource links
// and how each one is implemented.
type DatasetConfig struct {
	HTTPConfig `yaml:",inline"`

	// GitHub controls the search-backed GitHub source: live or off.
	GitHub SourceMode `json:"github" yaml:"github"`

	// HuggingFace controls the Hugging Face source: live, stub, or off.
	HuggingFace SourceMode `json:"huggingface" yaml:"huggingface"`

	// HuggingFaceToken is an optional bearer token for the Hugging Face API.
	HuggingFaceToken string `json:"huggingface_token,omitempty" yaml:"huggingface_token,omitempty"`

	// Kaggle controls the Kaggle source: stub or off.
	Kaggle SourceMode `json:"kaggle" yaml:"kaggle"`

	// Limit caps the number of links a live source returns (default 5).
	Limit int `json:"limit" yaml:"limit"`
}

// GeneratorKind identifies the use case generator implementation.
type GeneratorKind string

const (
	GeneratorTemplate GeneratorKind = "template"
	GeneratorOllama   GeneratorKind = "ollama"
)

// UseCaseConfig holds settings for use case generation.
type UseCaseConfig struct {
	// Generator selects template (default) or ollama.
	Generator GeneratorKind `json:"generator" yaml:"generator"`

	// Model is the Ollama model used when Generator is ollama.
	Model string `json:"model" yaml:"model"`

	// OllamaHost overrides OLLAMA_HOST when set.
	OllamaHost string `json:"ollama_host,omitempty" yaml:"ollama_host,omitempty"`
}

// ReportConfig holds settings for the resource report artifacts.
type ReportConfig struct {
	// OutputDir receives resources.md and the PDF export (default "outputs").
	OutputDir string `json:"output_dir" yaml:"output_dir"`
}

// ChunkConfig holds settings for text chunking in the video pipeline.
type ChunkConfig struct {
	// MaxLength is the maximum chunk length in characters (default 500).
	MaxLength int `json:"max_length" yaml:"max_length"`

	// MaxChunks limits how many chunks are narrated. Zero processes all chunks.
	MaxChunks int `json:"max_chunks" yaml:"max_chunks"`
}

// SpeechConfig holds settings for text-to-speech synthesis.
type SpeechConfig struct {
	HTTPConfig `yaml:",inline"`

	// Language is the synthesis language code (default "en").
	Language string `json:"language" yaml:"language"`

	// Slow requests the slower speaking rate.
	Slow bool `json:"slow" yaml:"slow"`

	// Endpoint is the text-to-speech service URL.
	Endpoint string `json:"endpoint" yaml:"endpoint"`
}

// VideoConfig holds settings for video compositing.
type VideoConfig struct {
	Width      int    `json:"width" yaml:"width"`
	Height     int    `json:"height" yaml:"height"`
	FPS        int    `json:"fps" yaml:"fps"`
	Background string `json:"background" yaml:"background"`
	TextColor  string `json:"text_color" yaml:"text_color"`
	FontSize   int    `json:"font_size" yaml:"font_size"`

	// FontFile is an optional TrueType font passed to the text overlay.
	FontFile string `json:"font_file,omitempty" yaml:"font_file,omitempty"`

	// WrapWidth is the overlay line width in characters (default 40).
	WrapWidth int `json:"wrap_width" yaml:"wrap_width"`

	// FFmpeg and FFprobe name the binaries (defaults "ffmpeg", "ffprobe").
	FFmpeg  string `json:"ffmpeg" yaml:"ffmpeg"`
	FFprobe string `json:"ffprobe" yaml:"ffprobe"`
}

// JobBackend identifies the job store implementation.
type JobBackend string

const (
	JobsMemory   JobBackend = "memory"
	JobsSQLite   JobBackend = "sqlite"
	JobsPostgres JobBackend = "postgres"
)

// JobsConfig selects the job store.
type JobsConfig struct {
	// Backend is memory (default), sqlite, or postgres.
	Backend JobBackend `json:"backend" yaml:"backend"`

	// DSN is the sqlite file path or the postgres connection string.
	DSN string `json:"dsn,omitempty" yaml:"dsn,omitempty"`
}

// ServerConfig holds settings for the text-to-video HTTP API.
type ServerConfig struct {
	Addr           string `json:"addr" yaml:"addr"`
	UploadDir      string `json:"upload_dir" yaml:"upload_dir"`
	VideoDir       string `json:"video_dir" yaml:"video_dir"`
	MaxUploadBytes int64  `json:"max_upload_bytes" yaml:"max_upload_bytes"`
	MinTextLength  int    `json:"min_text_length" yaml:"min_text_length"`
}

// StudioConfig groups all component configurations.
type StudioConfig struct {
	Search   SearchConfig  `json:"search" yaml:"search"`
	Datasets DatasetConfig `json:"datasets" yaml:"datasets"`
	UseCases UseCaseConfig `json:"usecases" yaml:"usecases"`
	Report   ReportConfig  `json:"report" yaml:"report"`
	Chunking ChunkConfig   `json:"chunking" yaml:"chunking"`
	Speech   SpeechConfig  `json:"speech" yaml:"speech"`
	Video    VideoConfig   `json:"video" yaml:"video"`
	Jobs     JobsConfig    `json:"jobs" yaml:"jobs"`
	Server   ServerConfig  `json:"server" yaml:"server"`
}
