package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/pdiddy/hupd-prep/internal/render"
	"github.com/pdiddy/hupd-prep/pkg/types"
)

var convertCmd = &cobra.Command{
	Use:   "convert MAX_FILES INPUT_DIR OUTPUT_DIR",
	Short: "Convert patent JSON records to structured Markdown",
	Long: `Convert renders extracted patent JSON records as heading-structured
Markdown, one output file per record. Only records whose decision field is
ACCEPTED or REJECTED are converted; bulk prose fields (full description,
claims, background) are stripped at every nesting depth. Conversion stops
once MAX_FILES records have been converted.`,
	Args: cobra.ExactArgs(3),
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	maxFiles, err := strconv.Atoi(args[0])
	if err != nil || maxFiles <= 0 {
		return fmt.Errorf("MAX_FILES must be a positive integer, got %q", args[0])
	}

	cfg := types.ConvertConfig{
		MaxFiles:  maxFiles,
		InputDir:  args[1],
		OutputDir: args[2],
	}

	result, err := render.ConvertDir(cfg, os.Stdout)
	if err != nil {
		return err
	}
	if result.HasFailures() {
		return fmt.Errorf("%d file(s) failed conversion", result.Failed)
	}
	return nil
}
