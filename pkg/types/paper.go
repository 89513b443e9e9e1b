// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// AIEnhancement holds the generated summary fields attached to a paper by the
// enhancement pipeline.
type AIEnhancement struct {
	// TLDR is the one-paragraph short summary.
	TLDR string `json:"tldr" yaml:"tldr"`

	Motivation string `json:"motivation" yaml:"motivation"`
	Method     string `json:"method" yaml:"method"`
	Result     string `json:"result" yaml:"result"`
	Conclusion string `json:"conclusion" yaml:"conclusion"`
}

// Paper is one record of an enhancement file: arXiv metadata plus the AI block.
type Paper struct {
	// ID is the arXiv identifier (e.g. "2301.07041").
	ID string `json:"id" yaml:"id"`

	// Categories lists arXiv categories in source order (e.g. "cs.AI").
	Categories []string `json:"categories" yaml:"categories"`

	// Title is the paper title.
	Title string `json:"title" yaml:"title"`

	// Authors lists the paper authors in source order.
	Authors []string `json:"authors" yaml:"authors"`

	// Summary is the arXiv abstract.
	Summary string `json:"summary" yaml:"summary"`

	// AI is the generated enhancement block.
	AI AIEnhancement `json:"AI" yaml:"AI"`
}

// PaperFields lists the top-level keys every enhanced paper record must carry,
// in the order they are checked.
var PaperFields = []string{"id", "categories", "title", "authors", "summary", "AI"}

// AIFields lists the keys every AI block must carry, in the order they are checked.
var AIFields = []string{"tldr", "motivation", "method", "result", "conclusion"}
