// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package video

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Info describes an encoded video file.
type Info struct {
	Duration time.Duration `json:"duration"`
	FPS      float64       `json:"fps"`
	Width    int           `json:"width"`
	Height   int           `json:"height"`
}

type probeOutput struct {
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
	Streams []struct {
		CodecType    string `json:"codec_type"`
		Width        int    `json:"width"`
		Height       int    `json:"height"`
		AvgFrameRate string `json:"avg_frame_rate"`
		RFrameRate   string `json:"r_frame_rate"`
	} `json:"streams"`
}

// Probe reads duration, frame rate and frame size of the video at path.
func Probe(ctx context.Context, ffprobe Runner, path string) (Info, error) {
	if _, err := os.Stat(path); err != nil {
		return Info{}, fmt.Errorf("video file not found: %w", err)
	}

	out, err := ffprobe.Output(ctx,
		"-v", "error",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		path,
	)
	if err != nil {
		return Info{}, fmt.Errorf("probing %s: %w", path, err)
	}
	return parseProbe(out)
}

func parseProbe(data []byte) (Info, error) {
	var po probeOutput
	if err := json.Unmarshal(data, &po); err != nil {
		return Info{}, fmt.Errorf("parsing ffprobe output: %w", err)
	}

	var info Info
	if po.Format.Duration != "" {
		secs, err := strconv.ParseFloat(po.Format.Duration, 64)
		if err != nil {
			return Info{}, fmt.Errorf("parsing duration %q: %w", po.Format.Duration, err)
		}
		info.Duration = time.Duration(secs * float64(time.Second))
	}

	for _, s := range po.Streams {
		if s.CodecType != "video" {
			continue
		}
		info.Width, info.Height = s.Width, s.Height
		rate := s.AvgFrameRate
		if rate == "" || rate == "0/0" {
			rate = s.RFrameRate
		}
		info.FPS = parseRate(rate)
		return info, nil
	}
	return Info{}, fmt.Errorf("no video stream found")
}

// parseRate converts an ffprobe rational such as "24000/1001" to a float.
func parseRate(r string) float64 {
	num, den, ok := strings.Cut(r, "/")
	n, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0
	}
	if !ok {
		return n
	}
	d, err := strconv.ParseFloat(den, 64)
	if err != nil || d == 0 {
		return 0
	}
	return n / d
}
