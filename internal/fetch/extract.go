// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetch

import (
	"archive/tar"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ExtractArchive unpacks a tar.gz archive into destDir and returns the
// number of regular files written. Entry names are confined to destDir:
// absolute paths and names escaping the destination are rejected rather
// than written.
func ExtractArchive(archivePath, destDir string) (int, error) {
	f, err := os.Open(archivePath)
	if err != nil {
		return 0, fmt.Errorf("opening archive: %w", err)
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return 0, fmt.Errorf("reading gzip stream: %w", err)
	}
	defer gz.Close()

	tr := tar.NewReader(gz)
	count := 0

	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return count, fmt.Errorf("reading tar entry: %w", err)
		}

		target, err := entryPath(destDir, hdr.Name)
		if err != nil {
			return count, err
		}

		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0o755); err != nil {
				return count, fmt.Errorf("creating directory %s: %w", target, err)
			}
		case tar.TypeReg:
			if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
				return count, fmt.Errorf("creating directory for %s: %w", target, err)
			}
			if err := writeEntry(target, tr); err != nil {
				return count, err
			}
			count++
		default:
			// Symlinks and other special entries are not expected in the
			// dataset archives; skip them.
		}
	}

	return count, nil
}

// entryPath resolves an archive entry name under destDir, rejecting
// absolute names and path traversal. A bare "./" entry (the root entry
// of archives created with "tar -czf x.tar.gz .") resolves to destDir
// itself and is valid.
func entryPath(destDir, name string) (string, error) {
	if filepath.IsAbs(name) {
		return "", fmt.Errorf("archive entry has absolute path: %s", name)
	}
	cleanDest := filepath.Clean(destDir)
	target := filepath.Join(destDir, name)
	if target != cleanDest && !strings.HasPrefix(target, cleanDest+string(os.PathSeparator)) {
		return "", fmt.Errorf("archive entry escapes destination: %s", name)
	}
	return target, nil
}

func writeEntry(target string, r io.Reader) error {
	out, err := os.Create(target)
	if err != nil {
		return fmt.Errorf("creating %s: %w", target, err)
	}
	_, copyErr := io.Copy(out, r)
	closeErr := out.Close()
	if copyErr != nil {
		return fmt.Errorf("writing %s: %w", target, copyErr)
	}
	if closeErr != nil {
		return fmt.Errorf("closing %s: %w", target, closeErr)
	}
	return nil
}
