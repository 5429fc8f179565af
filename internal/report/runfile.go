// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/research-studio/pkg/types"
)

// RunFile is the on-disk record of one research run. It lets a user reload
// the research hits and use cases later without calling the search API again.
type RunFile struct {
	Subject   string                   `yaml:"subject"`
	Research  []types.SearchHit        `yaml:"research"`
	UseCases  []types.UseCaseBlock     `yaml:"use_cases"`
	Resources []types.UseCaseResources `yaml:"resources,omitempty"`
	Artifacts RunArtifacts             `yaml:"artifacts"`
	Timestamp time.Time                `yaml:"timestamp"`
}

// RunArtifacts lists the files a run produced.
type RunArtifacts struct {
	Markdown string `yaml:"markdown,omitempty"`
	PDF      string `yaml:"pdf,omitempty"`
}

// WriteRunFile saves rf to path as YAML. A zero Timestamp is set to now.
func WriteRunFile(path string, rf RunFile) error {
	if rf.Timestamp.IsZero() {
		rf.Timestamp = time.Now().UTC()
	}
	data, err := yaml.Marshal(&rf)
	if err != nil {
		return fmt.Errorf("marshaling run file: %w", err)
	}
	return writeFile(path, data)
}

// ReadRunFile loads a run file written by WriteRunFile.
func ReadRunFile(path string) (*RunFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading run file: %w", err)
	}
	var rf RunFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("parsing run file: %w", err)
	}
	if rf.Subject == "" {
		return nil, fmt.Errorf("run file %s: missing subject", path)
	}
	return &rf, nil
}
