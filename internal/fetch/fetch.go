// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fetch downloads annual HUPD archives from the Hugging Face Hub
// and unpacks them into the local corpus layout.
package fetch

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/hupd-prep/pkg/types"
)

// hubBase is the Hugging Face dataset download root. Declared as a var so
// tests can substitute an httptest server.
var hubBase = "https://huggingface.co/datasets/"

// ArchiveURL returns the download URL for one annual archive.
func ArchiveURL(repo, year string) string {
	return fmt.Sprintf("%s%s/resolve/main/data/%s.tar.gz", hubBase, repo, year)
}

// FetchArchive downloads the configured annual archive (unless already
// cached), extracts it into cfg.ExtractDir, and writes a dataset
// descriptor next to the extracted files. token, when non-empty, is sent
// as a bearer credential for gated datasets. Progress lines go to w.
func FetchArchive(client *http.Client, cfg types.FetchConfig, token string, w io.Writer) (*types.Dataset, error) {
	for _, dir := range []string{cfg.CacheDir, cfg.ExtractDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}

	url := ArchiveURL(cfg.Repo, cfg.Year)
	archivePath := filepath.Join(cfg.CacheDir, cfg.Year+".tar.gz")

	if _, err := os.Stat(archivePath); err == nil {
		fmt.Fprintf(w, "cached: %s (already downloaded)\n", archivePath)
	} else {
		fmt.Fprintf(w, "downloading: %s\n", url)
		if err := downloadFile(client, url, archivePath, cfg, token); err != nil {
			return nil, fmt.Errorf("downloading %s archive: %w", cfg.Year, err)
		}
	}

	fmt.Fprintf(w, "extracting: %s -> %s\n", archivePath, cfg.ExtractDir)
	count, err := ExtractArchive(archivePath, cfg.ExtractDir)
	if err != nil {
		return nil, fmt.Errorf("extracting %s: %w", archivePath, err)
	}
	fmt.Fprintf(w, "extracted %d files\n", count)

	ds := &types.Dataset{
		Repo:        cfg.Repo,
		Year:        cfg.Year,
		SourceURL:   url,
		ArchivePath: archivePath,
		ExtractDir:  cfg.ExtractDir,
		FileCount:   count,
		FetchedAt:   time.Now().UTC(),
	}

	if err := writeDescriptor(ds, descriptorPath(cfg)); err != nil {
		return nil, fmt.Errorf("writing dataset descriptor: %w", err)
	}

	// The archive carries a top-level year directory; that is where the
	// JSON records land.
	fmt.Fprintf(w, "records directory: %s\n", filepath.Join(cfg.ExtractDir, cfg.Year))
	return ds, nil
}

// downloadFile fetches url to destPath using a temporary file so a partial
// download never lands at the final path. It sets User-Agent and, when
// token is non-empty, an Authorization header. Failed downloads are not
// retried.
func downloadFile(client *http.Client, url, destPath string, cfg types.FetchConfig, token string) error {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", cfg.UserAgent)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("HTTP request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP %d from %s", resp.StatusCode, url)
	}

	tmpFile, err := os.CreateTemp(filepath.Dir(destPath), ".fetch-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	_, copyErr := io.Copy(tmpFile, resp.Body)
	closeErr := tmpFile.Close()
	if copyErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writing download: %w", copyErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", closeErr)
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

// descriptorPath is where the dataset descriptor YAML is written.
func descriptorPath(cfg types.FetchConfig) string {
	return filepath.Join(cfg.ExtractDir, cfg.Year+".yaml")
}

// writeDescriptor writes the Dataset record to a YAML file.
func writeDescriptor(ds *types.Dataset, path string) error {
	data, err := yaml.Marshal(ds)
	if err != nil {
		return fmt.Errorf("marshaling descriptor: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadDescriptor reads a Dataset record from a YAML file.
func ReadDescriptor(path string) (*types.Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var ds types.Dataset
	if err := yaml.Unmarshal(data, &ds); err != nil {
		return nil, err
	}
	return &ds, nil
}
