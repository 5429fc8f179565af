// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package narrate turns text into a narrated MP4: the text is chunked, each
// chunk is synthesized to speech, and the chunks are composited into one
// video. Progress is recorded in a job store.
package narrate

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pdiddy/research-studio/internal/chunk"
	"github.com/pdiddy/research-studio/internal/jobs"
	"github.com/pdiddy/research-studio/internal/logger"
	"github.com/pdiddy/research-studio/internal/speech"
	"github.com/pdiddy/research-studio/internal/video"
	"github.com/pdiddy/research-studio/pkg/types"
)

// Stage messages and their progress percentages.
const (
	MsgChunking  = "Chunking text..."
	MsgSpeech    = "Converting text to speech..."
	MsgVideo     = "Creating video..."
	MsgCompleted = "Video created successfully!"

	ProgressChunking = 20
	ProgressSpeech   = 40
	ProgressVideo    = 70
	ProgressDone     = 100
)

// ErrNoAudio is returned when no chunk could be synthesized.
var ErrNoAudio = errors.New("failed to generate audio files")

// Composer joins narrated segments into a video file.
type Composer interface {
	Compose(ctx context.Context, segments []video.Segment, outPath string) error
}

// Pipeline runs text-to-video jobs.
type Pipeline struct {
	store    jobs.Store
	tts      speech.Synthesizer
	composer Composer
	chunking types.ChunkConfig
	videoDir string

	// Notify, when set, is called after every recorded state change.
	Notify func(id string, st jobs.State)
}

// New returns a Pipeline writing videos to videoDir.
func New(store jobs.Store, tts speech.Synthesizer, composer Composer, chunking types.ChunkConfig, videoDir string) *Pipeline {
	return &Pipeline{
		store:    store,
		tts:      tts,
		composer: composer,
		chunking: chunking,
		videoDir: videoDir,
	}
}

// VideoName returns the output file name for job id.
func VideoName(id string) string {
	return "video_" + id + ".mp4"
}

// Run processes text for an existing job id and returns the video file name.
// Any failure is also recorded on the job as an error state.
func (p *Pipeline) Run(ctx context.Context, id, text string) (string, error) {
	name, err := p.run(ctx, id, text)
	if err != nil {
		logger.Warn("job %s failed: %v", id, err)
		p.set(ctx, id, jobs.State{
			Status:  types.JobError,
			Message: "Error: " + err.Error(),
		})
		return "", err
	}
	return name, nil
}

func (p *Pipeline) run(ctx context.Context, id, text string) (string, error) {
	p.set(ctx, id, stage(ProgressChunking, MsgChunking))
	chunks := chunk.Split(text, p.chunking.MaxLength)
	if len(chunks) == 0 {
		return "", fmt.Errorf("no text to narrate")
	}
	if limit := p.chunking.MaxChunks; limit > 0 && len(chunks) > limit {
		logger.Info("job %s: narrating %d of %d chunks", id, limit, len(chunks))
		chunks = chunks[:limit]
	}

	p.set(ctx, id, stage(ProgressSpeech, MsgSpeech))
	work, err := os.MkdirTemp("", "research-studio-audio-*")
	if err != nil {
		return "", fmt.Errorf("creating audio directory: %w", err)
	}
	defer os.RemoveAll(work)

	var segments []video.Segment
	for i, c := range chunks {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		audio := filepath.Join(work, fmt.Sprintf("audio_%d.mp3", i))
		if err := p.tts.Synthesize(ctx, c, audio); err != nil {
			logger.Warn("job %s: chunk %d speech failed: %v", id, i+1, err)
			continue
		}
		segments = append(segments, video.Segment{Text: c, AudioPath: audio})
	}
	if len(segments) == 0 {
		return "", ErrNoAudio
	}

	p.set(ctx, id, stage(ProgressVideo, MsgVideo))
	name := VideoName(id)
	if err := p.composer.Compose(ctx, segments, filepath.Join(p.videoDir, name)); err != nil {
		return "", fmt.Errorf("video generation failed: %w", err)
	}

	p.set(ctx, id, jobs.State{
		Status:    types.JobCompleted,
		Progress:  ProgressDone,
		Message:   MsgCompleted,
		VideoPath: name,
	})
	return name, nil
}

func stage(progress int, msg string) jobs.State {
	return jobs.State{Status: types.JobProcessing, Progress: progress, Message: msg}
}

// set records st. Store failures are logged; they do not abort the job.
func (p *Pipeline) set(ctx context.Context, id string, st jobs.State) {
	// The final state is written even if ctx was cancelled mid-run.
	if err := p.store.Update(context.WithoutCancel(ctx), id, st); err != nil {
		logger.Warn("job %s: recording state: %v", id, err)
	}
	if p.Notify != nil {
		p.Notify(id, st)
	}
}
