// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pdiddy/hupd-prep/pkg/types"
)

// writeRecord drops a JSON file into dir.
func writeRecord(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func convertConfig(maxFiles int, inputDir, outputDir string) types.ConvertConfig {
	return types.ConvertConfig{MaxFiles: maxFiles, InputDir: inputDir, OutputDir: outputDir}
}

func TestConvertDir_FiltersByDecision(t *testing.T) {
	inputDir := t.TempDir()
	outputDir := filepath.Join(t.TempDir(), "md")

	writeRecord(t, inputDir, "a.json", `{"decision": "ACCEPTED", "title": "A"}`)
	writeRecord(t, inputDir, "b.json", `{"decision": "PENDING", "title": "B"}`)
	writeRecord(t, inputDir, "c.json", `{"decision": "REJECTED", "title": "C"}`)
	writeRecord(t, inputDir, "d.json", `{"title": "no decision at all"}`)

	var log bytes.Buffer
	result, err := ConvertDir(convertConfig(10, inputDir, outputDir), &log)
	if err != nil {
		t.Fatalf("ConvertDir: %v", err)
	}

	if result.Processed != 2 {
		t.Errorf("processed = %d, want 2", result.Processed)
	}
	if result.Skipped != 2 {
		t.Errorf("skipped = %d, want 2", result.Skipped)
	}
	if result.Failed != 0 {
		t.Errorf("failed = %d, want 0", result.Failed)
	}

	for _, name := range []string{"a.md", "c.md"} {
		if _, err := os.Stat(filepath.Join(outputDir, name)); err != nil {
			t.Errorf("expected output file %s: %v", name, err)
		}
	}
	for _, name := range []string{"b.md", "d.md"} {
		if _, err := os.Stat(filepath.Join(outputDir, name)); err == nil {
			t.Errorf("unexpected output file %s", name)
		}
	}
}

func TestConvertDir_QuotaStopsEarly(t *testing.T) {
	inputDir := t.TempDir()
	outputDir := filepath.Join(t.TempDir(), "md")

	for _, name := range []string{"a.json", "b.json", "c.json"} {
		writeRecord(t, inputDir, name, `{"decision": "ACCEPTED", "title": "T"}`)
	}

	var log bytes.Buffer
	result, err := ConvertDir(convertConfig(2, inputDir, outputDir), &log)
	if err != nil {
		t.Fatalf("ConvertDir: %v", err)
	}

	if result.Processed != 2 {
		t.Errorf("processed = %d, want 2", result.Processed)
	}
	// Files are visited in sorted order, so a and b convert and c is
	// never read.
	if _, err := os.Stat(filepath.Join(outputDir, "c.md")); err == nil {
		t.Error("c.md should not exist when the quota stops at 2")
	}
	if result.Skipped != 0 {
		t.Errorf("files beyond the quota must not count as skipped, got %d", result.Skipped)
	}
	if !strings.Contains(log.String(), "reached limit") {
		t.Errorf("log should mention the quota stop: %q", log.String())
	}
}

func TestConvertDir_MalformedJSONIsIsolated(t *testing.T) {
	inputDir := t.TempDir()
	outputDir := filepath.Join(t.TempDir(), "md")

	writeRecord(t, inputDir, "a.json", `{"decision": "ACCEPTED", "title": "A"}`)
	writeRecord(t, inputDir, "broken.json", `{"decision": "ACCEPTED", `)
	writeRecord(t, inputDir, "c.json", `{"decision": "ACCEPTED", "title": "C"}`)

	var log bytes.Buffer
	result, err := ConvertDir(convertConfig(5, inputDir, outputDir), &log)
	if err != nil {
		t.Fatalf("batch should complete despite the malformed file: %v", err)
	}

	if result.Processed != 2 {
		t.Errorf("processed = %d, want 2", result.Processed)
	}
	if result.Failed != 1 {
		t.Errorf("failed = %d, want 1", result.Failed)
	}
	if result.Skipped != 0 {
		t.Errorf("malformed files must not count as skipped, got %d", result.Skipped)
	}
	if !result.HasFailures() {
		t.Error("HasFailures should be true")
	}
	if !strings.Contains(log.String(), "failed:") {
		t.Errorf("log should report the malformed file: %q", log.String())
	}
}

func TestConvertDir_ExcludedFieldNeverWritten(t *testing.T) {
	inputDir := t.TempDir()
	outputDir := filepath.Join(t.TempDir(), "md")

	writeRecord(t, inputDir, "w.json",
		`{"decision": "ACCEPTED", "title": "Widget", "claims": "secret text"}`)

	var log bytes.Buffer
	if _, err := ConvertDir(convertConfig(1, inputDir, outputDir), &log); err != nil {
		t.Fatalf("ConvertDir: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(outputDir, "w.md"))
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	content := string(data)

	if !strings.Contains(content, "**Title:** Widget") {
		t.Errorf("output missing bolded title line:\n%s", content)
	}
	if strings.Contains(content, "secret text") {
		t.Errorf("excluded claims text leaked into output:\n%s", content)
	}
}

func TestConvertDir_IgnoresNonJSONFiles(t *testing.T) {
	inputDir := t.TempDir()
	outputDir := filepath.Join(t.TempDir(), "md")

	writeRecord(t, inputDir, "a.json", `{"decision": "ACCEPTED"}`)
	writeRecord(t, inputDir, "notes.txt", "not a record")
	if err := os.Mkdir(filepath.Join(inputDir, "sub.json"), 0o755); err != nil {
		t.Fatal(err)
	}

	var log bytes.Buffer
	result, err := ConvertDir(convertConfig(10, inputDir, outputDir), &log)
	if err != nil {
		t.Fatalf("ConvertDir: %v", err)
	}

	if result.Total() != 1 {
		t.Errorf("total = %d, want 1 (only a.json counts)", result.Total())
	}
}

func TestConvertDir_MissingInputDirIsFatal(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope")

	var log bytes.Buffer
	_, err := ConvertDir(convertConfig(1, missing, t.TempDir()), &log)
	if err == nil {
		t.Error("expected error for unenumerable input directory")
	}
}

func TestConvertDir_SummaryLine(t *testing.T) {
	inputDir := t.TempDir()
	writeRecord(t, inputDir, "a.json", `{"decision": "PENDING"}`)

	var log bytes.Buffer
	if _, err := ConvertDir(convertConfig(1, inputDir, filepath.Join(t.TempDir(), "md")), &log); err != nil {
		t.Fatalf("ConvertDir: %v", err)
	}

	if !strings.Contains(log.String(), "Batch summary: 0 converted, 1 skipped, 0 failed (total: 1)") {
		t.Errorf("missing or wrong summary line: %q", log.String())
	}
}
