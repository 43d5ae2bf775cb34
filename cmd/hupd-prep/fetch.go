package main

import (
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/hupd-prep/internal/fetch"
	"github.com/pdiddy/hupd-prep/pkg/types"
)

const (
	defaultTimeout   = 10 * time.Minute
	defaultUserAgent = "hupd-prep/0.1"
	defaultRepo      = "HUPD/hupd"
	defaultYear      = "2018"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch [year]",
	Short: "Download and extract an annual HUPD archive",
	Long: `Fetch downloads one annual tar.gz archive of the Harvard USPTO Patent
Dataset from the Hugging Face Hub, extracts the patent JSON records, and
writes a dataset descriptor. Already-downloaded archives are reused.

A Hugging Face access token is read from .secrets/huggingface-token or the
--token flag for gated datasets.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().String("repo", defaultRepo, "Hugging Face dataset repository")
	fetchCmd.Flags().String("cache-dir", "hf-cache", "directory for downloaded archives")
	fetchCmd.Flags().String("extract-dir", "corpus/raw", "directory for extracted JSON records")
	fetchCmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 10m)")
	fetchCmd.Flags().String("token", "", "Hugging Face access token (overrides .secrets/huggingface-token)")

	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	year := defaultYear
	if len(args) > 0 {
		year = args[0]
	}

	repo, _ := cmd.Flags().GetString("repo")
	cacheDir, _ := cmd.Flags().GetString("cache-dir")
	extractDir, _ := cmd.Flags().GetString("extract-dir")
	timeout, _ := cmd.Flags().GetDuration("timeout")
	if timeout == 0 {
		timeout = defaultTimeout
	}
	token, _ := cmd.Flags().GetString("token")

	cfg := types.FetchConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   timeout,
			UserAgent: defaultUserAgent,
		},
		Repo:       repo,
		Year:       year,
		CacheDir:   cacheDir,
		ExtractDir: extractDir,
	}

	client := &http.Client{
		Timeout: cfg.Timeout,
	}

	_, err := fetch.FetchArchive(client, cfg, loadedSecrets.Get("huggingface-token", token), os.Stdout)
	return err
}
