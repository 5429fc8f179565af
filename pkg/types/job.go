// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// JobStatus indicates where a text-to-video job is in its lifecycle.
type JobStatus string

const (
	JobProcessing JobStatus = "processing"
	JobCompleted  JobStatus = "completed"
	JobError      JobStatus = "error"
)

// Valid reports whether s is one of the known job statuses.
func (s JobStatus) Valid() bool {
	switch s {
	case JobProcessing, JobCompleted, JobError:
		return true
	}
	return false
}

// Job is the status record of one text-to-video pipeline run.
type Job struct {
	// ID is the opaque job identifier handed to the client.
	ID string `json:"id" yaml:"id"`

	Status JobStatus `json:"status" yaml:"status"`

	// Progress is a coarse completion percentage (0-100).
	Progress int `json:"progress" yaml:"progress"`

	// Message is a human-readable description of the current stage or error.
	Message string `json:"message" yaml:"message"`

	// VideoPath is the output file name once the job completes; empty otherwise.
	VideoPath string `json:"video_path,omitempty" yaml:"video_path,omitempty"`

	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
	UpdatedAt time.Time `json:"updated_at" yaml:"updated_at"`
}
