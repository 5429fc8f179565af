// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/pdiddy/research-studio/internal/ingest"
	"github.com/pdiddy/research-studio/internal/jobs"
	"github.com/pdiddy/research-studio/internal/media"
	"github.com/pdiddy/research-studio/internal/narrate"
	"github.com/pdiddy/research-studio/internal/speech"
	"github.com/pdiddy/research-studio/internal/video"
	"github.com/pdiddy/research-studio/pkg/types"
)

var videoCmd = &cobra.Command{
	Use:   "video",
	Short: "Turn text into a narrated MP4",
	Long: `Video chunks the text from --text or --file (.txt, .md, .pdf), narrates
every chunk with the text-to-speech service, and writes one MP4 with the chunk
text overlaid on a solid background. Progress is printed as the job runs.

Requires ffmpeg on PATH (video.ffmpeg).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := textFromFlags(cmd)
		if err != nil {
			return err
		}
		cfg := studioConfig()
		if dir, _ := cmd.Flags().GetString("output-dir"); dir != "" {
			cfg.Server.VideoDir = dir
		}

		store, err := jobs.Open(cmd.Context(), cfg.Jobs)
		if err != nil {
			return err
		}
		defer store.Close()

		pipeline, err := newPipeline(cfg, store)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		pipeline.Notify = func(_ string, st jobs.State) {
			fmt.Fprintf(out, "[%3d%%] %s\n", st.Progress, st.Message)
		}

		id := uuid.NewString()
		if _, err := store.Create(cmd.Context(), id); err != nil {
			return err
		}
		name, err := pipeline.Run(cmd.Context(), id, text)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Video saved to %s\n", filepath.Join(cfg.Server.VideoDir, name))
		return nil
	},
}

func init() {
	addTextFlags(videoCmd)
	videoCmd.Flags().String("output-dir", "", "directory for the MP4 (default server.video_dir)")

	rootCmd.AddCommand(videoCmd)
}

// newPipeline wires speech synthesis and ffmpeg compositing into a
// narrate.Pipeline recording progress in store.
func newPipeline(cfg types.StudioConfig, store jobs.Store) (*narrate.Pipeline, error) {
	bin := cfg.Video.FFmpeg
	if bin == "" {
		bin = media.DefaultFFmpeg
	}
	ffmpeg, err := media.Lookup(bin)
	if err != nil {
		return nil, err
	}
	return narrate.New(
		store,
		speech.NewGoogleTTS(cfg.Speech),
		video.NewCompositor(ffmpeg, cfg.Video),
		cfg.Chunking,
		cfg.Server.VideoDir,
	), nil
}

func addTextFlags(cmd *cobra.Command) {
	cmd.Flags().String("text", "", "input text")
	cmd.Flags().String("file", "", "input file (.txt, .md, .pdf)")
	cmd.MarkFlagsMutuallyExclusive("text", "file")
	cmd.MarkFlagsOneRequired("text", "file")
}

// textFromFlags returns the --text value or the contents of --file.
func textFromFlags(cmd *cobra.Command) (string, error) {
	if file, _ := cmd.Flags().GetString("file"); file != "" {
		return ingest.ReadText(file)
	}
	text, _ := cmd.Flags().GetString("text")
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("no input text")
	}
	return text, nil
}
