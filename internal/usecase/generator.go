// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package usecase produces numbered lists of AI use cases for a company or
// industry and parses such lists back into typed blocks.
//
// A list is a sequence of entries separated by blank lines:
//
//	1. Title
//	**Description:** One line of description.
package usecase

import (
	"context"
	"fmt"
	"strings"
)

// DescriptionMarker introduces an entry's description.
const DescriptionMarker = "**Description:**"

// Generator produces a numbered use case list for subject.
type Generator interface {
	Generate(ctx context.Context, subject string) (string, error)
}

type template struct {
	title       string
	description string
}

var voiceTemplates = []template{
	{"Voice Agent Personalization", "Use GenAI to tailor voice agent responses to user profiles."},
	{"Speech-to-Text Enhancement", "ML models to improve accuracy of voice transcription."},
	{"Multilingual Voice Support", "LLMs for real-time translation in voice agents."},
	{"Sentiment Detection in Calls", "NLP models to analyze caller sentiment and intent."},
	{"Automated Call Summarization", "Use LLMs to generate summaries of voice interactions."},
}

var documentTemplates = []template{
	{"Document Search Automation", "GenAI-powered document search for internal knowledge management."},
	{"Automated Report Generation", "Use LLMs to generate business reports from raw data."},
	{"Intelligent Document Tagging", "ML models to classify and tag documents automatically."},
	{"Contract Analysis", "NLP models to extract key terms and risks from contracts."},
	{"Document Summarization", "Use LLMs to create concise summaries of lengthy documents."},
}

// genericTemplates take the subject as their single %s argument.
var genericTemplates = []template{
	{"%s Classification", "Use ML to classify and organize %s data."},
	{"%s Prediction", "ML models to predict trends and outcomes in %s."},
	{"%s Automation", "GenAI-powered automation for %s workflows."},
	{"%s Analytics", "Analyze %s data to gain actionable insights."},
	{"%s Enhancement", "Use LLMs to improve and optimize %s processes."},
}

// TemplateGenerator selects a fixed template family by keyword. It never
// fails and always returns the same list for the same subject.
type TemplateGenerator struct{}

// Generate implements Generator.
func (TemplateGenerator) Generate(_ context.Context, subject string) (string, error) {
	return FromTemplates(subject), nil
}

// FromTemplates returns five use cases for subject. A subject mentioning
// "voice" gets the voice family, one mentioning "document" the document
// family; anything else gets generic entries with subject substituted
// verbatim.
func FromTemplates(subject string) string {
	base := strings.ToLower(subject)

	var entries []template
	switch {
	case strings.Contains(base, "voice"):
		entries = voiceTemplates
	case strings.Contains(base, "document"):
		entries = documentTemplates
	default:
		entries = make([]template, len(genericTemplates))
		for i, g := range genericTemplates {
			entries[i] = template{
				title:       fmt.Sprintf(g.title, subject),
				description: fmt.Sprintf(g.description, subject),
			}
		}
	}

	blocks := make([]string, len(entries))
	for i, e := range entries {
		blocks[i] = fmt.Sprintf("%d. %s\n%s %s", i+1, e.title, DescriptionMarker, e.description)
	}
	return strings.Join(blocks, "\n\n")
}
