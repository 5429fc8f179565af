// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/research-studio/internal/media"
	"github.com/pdiddy/research-studio/internal/video"
)

var probeCmd = &cobra.Command{
	Use:   "probe <video>",
	Short: "Print duration, frame rate and size of a video",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		bin := studioConfig().Video.FFprobe
		if bin == "" {
			bin = media.DefaultFFprobe
		}
		ffprobe, err := media.Lookup(bin)
		if err != nil {
			return err
		}

		info, err := video.Probe(cmd.Context(), ffprobe, args[0])
		if err != nil {
			return err
		}
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return printJSON(cmd.OutOrStdout(), info)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "duration: %s\nfps:      %.2f\nsize:     %dx%d\n",
			info.Duration, info.FPS, info.Width, info.Height)
		return nil
	},
}

func init() {
	probeCmd.Flags().Bool("json", false, "print as JSON")

	rootCmd.AddCommand(probeCmd)
}
