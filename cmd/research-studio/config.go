// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/pdiddy/research-studio/internal/secrets"
	"github.com/pdiddy/research-studio/pkg/types"
)

func setDefaults(v *viper.Viper) {
	userAgent := fmt.Sprintf("research-studio/%s", version)

	v.SetDefault("search.endpoint", "https://google.serper.dev/search")
	v.SetDefault("search.results", 5)
	v.SetDefault("search.requests_per_second", 2.0)
	v.SetDefault("search.max_retries", 3)
	v.SetDefault("search.timeout", 30*time.Second)
	v.SetDefault("search.user_agent", userAgent)

	v.SetDefault("datasets.github", string(types.SourceLive))
	v.SetDefault("datasets.huggingface", string(types.SourceStub))
	v.SetDefault("datasets.kaggle", string(types.SourceStub))
	v.SetDefault("datasets.limit", 5)
	v.SetDefault("datasets.timeout", 30*time.Second)
	v.SetDefault("datasets.user_agent", userAgent)

	v.SetDefault("usecases.generator", string(types.GeneratorTemplate))
	v.SetDefault("usecases.model", "llama3.2")

	v.SetDefault("report.output_dir", "outputs")

	v.SetDefault("chunking.max_length", 500)
	v.SetDefault("chunking.max_chunks", 0)

	v.SetDefault("speech.language", "en")
	v.SetDefault("speech.slow", false)
	v.SetDefault("speech.endpoint", "https://translate.google.com/translate_tts")
	v.SetDefault("speech.timeout", 30*time.Second)
	v.SetDefault("speech.user_agent", userAgent)

	v.SetDefault("video.width", 1280)
	v.SetDefault("video.height", 720)
	v.SetDefault("video.fps", 24)
	v.SetDefault("video.background", "0x1e1e32")
	v.SetDefault("video.text_color", "white")
	v.SetDefault("video.font_size", 48)
	v.SetDefault("video.wrap_width", 40)
	v.SetDefault("video.ffmpeg", "ffmpeg")
	v.SetDefault("video.ffprobe", "ffprobe")

	v.SetDefault("jobs.backend", string(types.JobsMemory))

	v.SetDefault("server.addr", ":5000")
	v.SetDefault("server.upload_dir", "static/uploads")
	v.SetDefault("server.video_dir", "static/videos")
	v.SetDefault("server.max_upload_bytes", 16<<20)
	v.SetDefault("server.min_text_length", 10)
}

// loadConfig reads the typed configuration from v. API keys left empty in
// the config fall back to the loaded secrets and their environment variables.
func loadConfig(v *viper.Viper, s map[string]string) types.StudioConfig {
	cfg := types.StudioConfig{
		Search: types.SearchConfig{
			HTTPConfig:        httpConfig(v, "search"),
			APIKey:            v.GetString("search.api_key"),
			Endpoint:          v.GetString("search.endpoint"),
			Results:           v.GetInt("search.results"),
			RequestsPerSecond: v.GetFloat64("search.requests_per_second"),
			MaxRetries:        v.GetInt("search.max_retries"),
		},
		Datasets: types.DatasetConfig{
			HTTPConfig:       httpConfig(v, "datasets"),
			GitHub:           types.SourceMode(v.GetString("datasets.github")),
			HuggingFace:      types.SourceMode(v.GetString("datasets.huggingface")),
			HuggingFaceToken: v.GetString("datasets.huggingface_token"),
			Kaggle:           types.SourceMode(v.GetString("datasets.kaggle")),
			Limit:            v.GetInt("datasets.limit"),
		},
		UseCases: types.UseCaseConfig{
			Generator:  types.GeneratorKind(v.GetString("usecases.generator")),
			Model:      v.GetString("usecases.model"),
			OllamaHost: v.GetString("usecases.ollama_host"),
		},
		Report: types.ReportConfig{
			OutputDir: v.GetString("report.output_dir"),
		},
		Chunking: types.ChunkConfig{
			MaxLength: v.GetInt("chunking.max_length"),
			MaxChunks: v.GetInt("chunking.max_chunks"),
		},
		Speech: types.SpeechConfig{
			HTTPConfig: httpConfig(v, "speech"),
			Language:   v.GetString("speech.language"),
			Slow:       v.GetBool("speech.slow"),
			Endpoint:   v.GetString("speech.endpoint"),
		},
		Video: types.VideoConfig{
			Width:      v.GetInt("video.width"),
			Height:     v.GetInt("video.height"),
			FPS:        v.GetInt("video.fps"),
			Background: v.GetString("video.background"),
			TextColor:  v.GetString("video.text_color"),
			FontSize:   v.GetInt("video.font_size"),
			FontFile:   v.GetString("video.font_file"),
			WrapWidth:  v.GetInt("video.wrap_width"),
			FFmpeg:     v.GetString("video.ffmpeg"),
			FFprobe:    v.GetString("video.ffprobe"),
		},
		Jobs: types.JobsConfig{
			Backend: types.JobBackend(v.GetString("jobs.backend")),
			DSN:     v.GetString("jobs.dsn"),
		},
		Server: types.ServerConfig{
			Addr:           v.GetString("server.addr"),
			UploadDir:      v.GetString("server.upload_dir"),
			VideoDir:       v.GetString("server.video_dir"),
			MaxUploadBytes: v.GetInt64("server.max_upload_bytes"),
			MinTextLength:  v.GetInt("server.min_text_length"),
		},
	}

	if cfg.Search.APIKey == "" {
		cfg.Search.APIKey = secrets.Lookup(s, secrets.SerperAPIKey)
	}
	if cfg.Datasets.HuggingFaceToken == "" {
		cfg.Datasets.HuggingFaceToken = secrets.Lookup(s, secrets.HuggingFaceToken)
	}
	return cfg
}

func httpConfig(v *viper.Viper, section string) types.HTTPConfig {
	return types.HTTPConfig{
		Timeout:   v.GetDuration(section + ".timeout"),
		UserAgent: v.GetString(section + ".user_agent"),
	}
}

// studioConfig loads the configuration for the running command.
func studioConfig() types.StudioConfig {
	return loadConfig(viper.GetViper(), loadedSecrets)
}
