// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pdiddy/hupd-prep/pkg/types"
)

const (
	jsonExt     = ".json"
	markdownExt = ".md"
)

// BatchResult holds the outcome of a batch conversion run.
type BatchResult struct {
	Processed int
	Skipped   int
	Failed    int
}

// Total returns the total number of files inspected.
func (r BatchResult) Total() int {
	return r.Processed + r.Skipped + r.Failed
}

// HasFailures reports whether any files failed conversion.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// ConvertDir renders every accepted JSON record in cfg.InputDir to a
// Markdown file of the same base name in cfg.OutputDir, writing per-file
// status to w. Files are visited in name order and conversion stops once
// cfg.MaxFiles records have been converted; files beyond the quota are
// not read. Records whose decision field is not a final outcome are
// skipped. Per-file failures (unreadable file, malformed JSON, write
// error) are reported and counted but never abort the batch; only an
// unenumerable input directory or an uncreatable output directory is
// fatal.
func ConvertDir(cfg types.ConvertConfig, w io.Writer) (BatchResult, error) {
	entries, err := os.ReadDir(cfg.InputDir)
	if err != nil {
		return BatchResult{}, fmt.Errorf("reading input directory %s: %w", cfg.InputDir, err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), jsonExt) {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return BatchResult{}, fmt.Errorf("creating output directory %s: %w", cfg.OutputDir, err)
	}

	var result BatchResult
	for _, name := range names {
		if result.Processed >= cfg.MaxFiles {
			fmt.Fprintf(w, "reached limit of %d converted files, stopping\n", cfg.MaxFiles)
			break
		}

		data, err := os.ReadFile(filepath.Join(cfg.InputDir, name))
		if err != nil {
			fmt.Fprintf(w, "failed:  %s (%v)\n", name, err)
			result.Failed++
			continue
		}

		record, err := Decode(data)
		if err != nil {
			fmt.Fprintf(w, "failed:  %s (invalid JSON: %v)\n", name, err)
			result.Failed++
			continue
		}

		decision := recordDecision(record)
		if !decision.Renderable() {
			fmt.Fprintf(w, "skipped: %s (decision %q)\n", name, string(decision))
			result.Skipped++
			continue
		}

		base := strings.TrimSuffix(name, jsonExt)
		outPath := filepath.Join(cfg.OutputDir, base+markdownExt)
		if err := os.WriteFile(outPath, []byte(Markdown(record)), 0o644); err != nil {
			fmt.Fprintf(w, "failed:  %s (%v)\n", name, err)
			result.Failed++
			continue
		}

		result.Processed++
		fmt.Fprintf(w, "converted: %s (decision %s)\n", name, string(decision))
	}

	fmt.Fprintf(w, "\nBatch summary: %d converted, %d skipped, %d failed (total: %d)\n",
		result.Processed, result.Skipped, result.Failed, result.Total())
	return result, nil
}

// recordDecision extracts the decision field from a record. A missing
// field or a non-string value yields an empty Decision, which is not
// renderable.
func recordDecision(record *Value) types.Decision {
	v, ok := record.Lookup(types.DecisionField)
	if !ok || v.Kind != KindString {
		return ""
	}
	return types.Decision(v.Str)
}
