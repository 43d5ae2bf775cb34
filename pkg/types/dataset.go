// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// Dataset describes one fetched and extracted annual archive.
type Dataset struct {
	// Repo is the Hugging Face dataset repository (e.g. "HUPD/hupd").
	Repo string `json:"repo" yaml:"repo"`

	// Year is the annual slice of the dataset (e.g. "2018").
	Year string `json:"year" yaml:"year"`

	// SourceURL is the URL the archive was downloaded from.
	SourceURL string `json:"source_url" yaml:"source_url"`

	// ArchivePath is the local path of the cached tar.gz archive.
	ArchivePath string `json:"archive_path" yaml:"archive_path"`

	// ExtractDir is the directory the archive was unpacked into.
	ExtractDir string `json:"extract_dir" yaml:"extract_dir"`

	// FileCount is the number of files written during extraction.
	FileCount int `json:"file_count" yaml:"file_count"`

	// FetchedAt is when the archive was downloaded and extracted.
	FetchedAt time.Time `json:"fetched_at" yaml:"fetched_at"`
}
