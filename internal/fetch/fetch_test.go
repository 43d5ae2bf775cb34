// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetch

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/hupd-prep/pkg/types"
)

// makeArchive builds a tar.gz archive in memory from name -> content.
func makeArchive(t *testing.T, files map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gz)

	for name, content := range files {
		hdr := &tar.Header{
			Name:     name,
			Mode:     0o644,
			Size:     int64(len(content)),
			Typeflag: tar.TypeReg,
			ModTime:  time.Now(),
		}
		require.NoError(t, tw.WriteHeader(hdr))
		_, err := tw.Write([]byte(content))
		require.NoError(t, err)
	}

	require.NoError(t, tw.Close())
	require.NoError(t, gz.Close())
	return buf.Bytes()
}

// serveArchive points hubBase at an httptest server that returns archive
// for every request, and restores hubBase on cleanup.
func serveArchive(t *testing.T, archive []byte, gotAuth *string, calls *int32) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls != nil {
			atomic.AddInt32(calls, 1)
		}
		if gotAuth != nil {
			*gotAuth = r.Header.Get("Authorization")
		}
		w.Write(archive)
	}))
	t.Cleanup(ts.Close)

	old := hubBase
	hubBase = ts.URL + "/"
	t.Cleanup(func() { hubBase = old })
	return ts
}

func fetchConfig(t *testing.T) types.FetchConfig {
	t.Helper()
	base := t.TempDir()
	return types.FetchConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   5 * time.Second,
			UserAgent: "hupd-prep/test",
		},
		Repo:       "HUPD/hupd",
		Year:       "2018",
		CacheDir:   filepath.Join(base, "cache"),
		ExtractDir: filepath.Join(base, "raw"),
	}
}

func TestFetchArchive_DownloadsAndExtracts(t *testing.T) {
	archive := makeArchive(t, map[string]string{
		"2018/100001.json": `{"decision": "ACCEPTED"}`,
		"2018/100002.json": `{"decision": "REJECTED"}`,
	})
	serveArchive(t, archive, nil, nil)

	cfg := fetchConfig(t)
	var log bytes.Buffer

	ds, err := FetchArchive(http.DefaultClient, cfg, "", &log)
	require.NoError(t, err)

	assert.Equal(t, 2, ds.FileCount)
	assert.Equal(t, "2018", ds.Year)
	assert.Contains(t, ds.SourceURL, "/HUPD/hupd/resolve/main/data/2018.tar.gz")

	// Records landed under the year directory.
	data, err := os.ReadFile(filepath.Join(cfg.ExtractDir, "2018", "100001.json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "ACCEPTED")

	// The archive stays cached and the descriptor round-trips.
	_, err = os.Stat(filepath.Join(cfg.CacheDir, "2018.tar.gz"))
	assert.NoError(t, err)

	read, err := ReadDescriptor(filepath.Join(cfg.ExtractDir, "2018.yaml"))
	require.NoError(t, err)
	assert.Equal(t, ds.FileCount, read.FileCount)
	assert.Equal(t, ds.SourceURL, read.SourceURL)
}

func TestFetchArchive_SendsBearerToken(t *testing.T) {
	archive := makeArchive(t, map[string]string{"2018/a.json": `{}`})
	var gotAuth string
	serveArchive(t, archive, &gotAuth, nil)

	var log bytes.Buffer
	_, err := FetchArchive(http.DefaultClient, fetchConfig(t), "hf_secret", &log)
	require.NoError(t, err)

	assert.Equal(t, "Bearer hf_secret", gotAuth)
}

func TestFetchArchive_SkipsCachedDownload(t *testing.T) {
	archive := makeArchive(t, map[string]string{"2018/a.json": `{}`})
	var calls int32
	serveArchive(t, archive, nil, &calls)

	cfg := fetchConfig(t)
	require.NoError(t, os.MkdirAll(cfg.CacheDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(cfg.CacheDir, "2018.tar.gz"), archive, 0o644))

	var log bytes.Buffer
	ds, err := FetchArchive(http.DefaultClient, cfg, "", &log)
	require.NoError(t, err)

	assert.Equal(t, int32(0), atomic.LoadInt32(&calls), "cached archive should not be re-downloaded")
	assert.Equal(t, 1, ds.FileCount)
	assert.Contains(t, log.String(), "cached:")
}

func TestFetchArchive_HTTPErrorFails(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	t.Cleanup(ts.Close)
	old := hubBase
	hubBase = ts.URL + "/"
	t.Cleanup(func() { hubBase = old })

	var log bytes.Buffer
	_, err := FetchArchive(http.DefaultClient, fetchConfig(t), "", &log)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 404")
}

func TestExtractArchive_RelativeRootEntries(t *testing.T) {
	// Archives created with "tar -czf x.tar.gz ." carry a bare "./"
	// root entry and "./"-prefixed names; all of them stay inside the
	// destination and must extract.
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gz)

	for _, name := range []string{"./", "./2018/"} {
		require.NoError(t, tw.WriteHeader(&tar.Header{
			Name:     name,
			Mode:     0o755,
			Typeflag: tar.TypeDir,
			ModTime:  time.Now(),
		}))
	}
	content := `{"decision": "ACCEPTED"}`
	require.NoError(t, tw.WriteHeader(&tar.Header{
		Name:     "./2018/100001.json",
		Mode:     0o644,
		Size:     int64(len(content)),
		Typeflag: tar.TypeReg,
		ModTime:  time.Now(),
	}))
	_, err := tw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, tw.Close())
	require.NoError(t, gz.Close())

	dir := t.TempDir()
	archivePath := filepath.Join(dir, "dot.tar.gz")
	require.NoError(t, os.WriteFile(archivePath, buf.Bytes(), 0o644))

	destDir := filepath.Join(dir, "out")
	require.NoError(t, os.MkdirAll(destDir, 0o755))

	count, err := ExtractArchive(archivePath, destDir)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	data, err := os.ReadFile(filepath.Join(destDir, "2018", "100001.json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "ACCEPTED")
}

func TestExtractArchive_RejectsTraversal(t *testing.T) {
	archive := makeArchive(t, map[string]string{"../evil.json": `{}`})
	dir := t.TempDir()
	archivePath := filepath.Join(dir, "bad.tar.gz")
	require.NoError(t, os.WriteFile(archivePath, archive, 0o644))

	destDir := filepath.Join(dir, "out")
	require.NoError(t, os.MkdirAll(destDir, 0o755))

	_, err := ExtractArchive(archivePath, destDir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "escapes destination")

	_, statErr := os.Stat(filepath.Join(dir, "evil.json"))
	assert.True(t, os.IsNotExist(statErr), "traversal entry must not be written")
}

func TestExtractArchive_CorruptArchive(t *testing.T) {
	dir := t.TempDir()
	archivePath := filepath.Join(dir, "corrupt.tar.gz")
	require.NoError(t, os.WriteFile(archivePath, []byte("not gzip at all"), 0o644))

	_, err := ExtractArchive(archivePath, dir)
	require.Error(t, err)
}
