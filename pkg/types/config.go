package types

import "time"

// HTTPConfig holds shared HTTP settings for stages that hit the network.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "hupd-prep/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// FetchConfig holds settings for the archive acquisition stage.
type FetchConfig struct {
	HTTPConfig `yaml:",inline"`

	// Repo is the Hugging Face dataset repository (e.g. "HUPD/hupd").
	Repo string `json:"repo" yaml:"repo"`

	// Year selects the annual archive to download (e.g. "2018").
	Year string `json:"year" yaml:"year"`

	// CacheDir is where downloaded archives are kept.
	CacheDir string `json:"cache_dir" yaml:"cache_dir"`

	// ExtractDir is where archive contents are unpacked.
	ExtractDir string `json:"extract_dir" yaml:"extract_dir"`
}

// ConvertConfig holds settings for the JSON-to-Markdown conversion stage.
type ConvertConfig struct {
	// MaxFiles caps how many records are converted in one run.
	MaxFiles int `json:"max_files" yaml:"max_files"`

	// InputDir contains the extracted patent JSON files.
	InputDir string `json:"input_dir" yaml:"input_dir"`

	// OutputDir receives one Markdown file per converted record.
	OutputDir string `json:"output_dir" yaml:"output_dir"`
}

// CorpusConfig holds settings for the corpus index stage.
type CorpusConfig struct {
	// IndexDir is the directory holding corpus.db and export files.
	IndexDir string `json:"index_dir" yaml:"index_dir"`

	// MaxResults is the default maximum number of query results (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}
