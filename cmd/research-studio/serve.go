// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/research-studio/internal/jobs"
	"github.com/pdiddy/research-studio/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the text-to-video job API",
	Long: `Serve starts the HTTP API:

  POST /process_text         start a job (form field text_input or file text_file)
  GET  /status/{job_id}      job status and progress
  GET  /download/{filename}  download a finished video
  GET  /preview/{filename}   stream a finished video

Jobs run in the background and are tracked in the configured job store
(jobs.backend: memory, sqlite, or postgres). Interrupt to shut down; running
jobs are cancelled.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := studioConfig()
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.Server.Addr = addr
		}
		cfg.Server = server.WithDefaults(cfg.Server)

		for _, dir := range []string{cfg.Server.UploadDir, cfg.Server.VideoDir} {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("creating %s: %w", dir, err)
			}
		}

		ctx := cmd.Context()
		store, err := jobs.Open(ctx, cfg.Jobs)
		if err != nil {
			return err
		}
		defer store.Close()

		pipeline, err := newPipeline(cfg, store)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Serving text to video on %s (job store: %s)\n", cfg.Server.Addr, cfg.Jobs.Backend)
		return server.New(ctx, store, pipeline, cfg.Server).ListenAndServe(ctx)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default server.addr)")

	rootCmd.AddCommand(serveCmd)
}
