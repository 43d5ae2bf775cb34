// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the hupd-prep CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/hupd-prep/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds credentials loaded from .secrets/ at startup.
var loadedSecrets secrets.Secrets

// rootCmd is the base command for the hupd-prep CLI.
var rootCmd = &cobra.Command{
	Use:   "hupd-prep",
	Short: "Prepare the HUPD patent corpus for retrieval ingestion",
	Long: `hupd-prep prepares the Harvard USPTO Patent Dataset for downstream
retrieval. It downloads annual dataset archives, converts decided patent
records into heading-structured Markdown, and maintains a SQLite corpus
index that a retrieval agent can query.

Each pipeline stage is a subcommand: fetch, convert, and corpus. A typical
run fetches one year, converts its records, and indexes the output.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./hupd-prep.yaml or ~/.config/hupd-prep/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("hupd-prep")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "hupd-prep"))
		}
	}

	viper.SetEnvPrefix("HUPD_PREP")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
