// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Decision is the examination outcome recorded on a patent application.
type Decision string

const (
	DecisionAccepted Decision = "ACCEPTED"
	DecisionRejected Decision = "REJECTED"
)

// DecisionField is the record field that gates conversion.
const DecisionField = "decision"

// Renderable reports whether a record with this decision is converted to
// Markdown. Only granted and rejected applications carry a final outcome;
// pending, withdrawn, or absent decisions are skipped.
func (d Decision) Renderable() bool {
	return d == DecisionAccepted || d == DecisionRejected
}

// CorpusRecord holds the indexed metadata for one rendered patent record.
type CorpusRecord struct {
	// ID is the record slug, the shared base name of the JSON and
	// Markdown files (typically the application number).
	ID string `json:"id" yaml:"id"`

	// Decision is the examination outcome from the source record.
	Decision string `json:"decision" yaml:"decision"`

	// Title is the invention title.
	Title string `json:"title" yaml:"title"`

	// Abstract is the application abstract.
	Abstract string `json:"abstract,omitempty" yaml:"abstract,omitempty"`

	// FilingDate is the filing date string as it appears in the record.
	FilingDate string `json:"filing_date,omitempty" yaml:"filing_date,omitempty"`

	// MarkdownPath is the local path of the rendered Markdown document.
	MarkdownPath string `json:"markdown_path" yaml:"markdown_path"`

	// IndexedAt is the RFC 3339 time the record was last indexed.
	IndexedAt string `json:"indexed_at" yaml:"indexed_at"`
}
