// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for research-studio: web
// search hits, use case blocks, dataset resource links, and video jobs.
package types

// SearchHit is one organic result returned by the web search provider.
type SearchHit struct {
	// Title is the page title as returned by the provider.
	Title string `json:"title" yaml:"title"`

	// Link is the result URL.
	Link string `json:"link" yaml:"link"`

	// Snippet is the provider's text excerpt for the result.
	Snippet string `json:"snippet" yaml:"snippet"`
}

// UseCaseBlock is one numbered entry of a generated use case list.
type UseCaseBlock struct {
	// Index is the ordinal written in front of the entry ("3." → 3).
	Index int `json:"index" yaml:"index"`

	// Title is the text on the numbering line.
	Title string `json:"title" yaml:"title"`

	// Description is the text following the **Description:** marker.
	Description string `json:"description" yaml:"description"`
}

// ResourceLink is a discovered or constructed dataset reference.
type ResourceLink struct {
	Title       string `json:"title" yaml:"title"`
	URL         string `json:"url" yaml:"url"`
	Description string `json:"description" yaml:"description"`
}

// ResourceGroup holds the links one dataset source produced for one use case.
type ResourceGroup struct {
	// Source is the source identifier (e.g. "github", "huggingface").
	Source string `json:"source" yaml:"source"`

	// Heading is the markdown subsection heading for the group.
	Heading string `json:"heading" yaml:"heading"`

	Links []ResourceLink `json:"links" yaml:"links"`
}

// UseCaseResources pairs a use case with the resource groups found for it.
type UseCaseResources struct {
	UseCase UseCaseBlock    `json:"use_case" yaml:"use_case"`
	Groups  []ResourceGroup `json:"groups" yaml:"groups"`
}
