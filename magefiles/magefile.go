//go:build mage

// Package main contains Mage build targets for hupd-prep developer tooling.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Default target when mage runs with no arguments.
var Default = Build

// projectDirs lists the working directories the pipeline expects.
var projectDirs = []string{
	"hf-cache",
	"corpus/raw",
	"corpus/markdown",
	"corpus/index",
}

// Init creates the project directory structure for the pipeline.
func Init() error {
	for _, dir := range projectDirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
		fmt.Println("  ", dir)
	}
	fmt.Println("Project directories initialized.")
	return nil
}

const (
	binDir  = "bin"
	binName = "hupd-prep"
	cmdPkg  = "./cmd/hupd-prep"
)

// Build compiles the CLI binary into bin/.
func Build() error {
	mg.Deps(Init)
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	out := filepath.Join(binDir, binName)
	if err := sh.RunV("go", "build", "-tags", "sqlite_fts5", "-o", out, cmdPkg); err != nil {
		return fmt.Errorf("go build: %w", err)
	}
	fmt.Printf("Built %s\n", out)
	return nil
}

// Test runs the full test suite. The sqlite_fts5 tag compiles SQLite
// with the FTS5 extension the corpus index schema requires.
func Test() error {
	return sh.RunV("go", "test", "-tags", "sqlite_fts5", "./...")
}

// Clean removes the built binary and generated corpus artifacts. Cached
// archive downloads in hf-cache/ are kept.
func Clean() error {
	for _, path := range []string{binDir, "corpus/markdown", "corpus/index"} {
		if err := sh.Rm(path); err != nil {
			return fmt.Errorf("removing %s: %w", path, err)
		}
		fmt.Println("removed", path)
	}
	return nil
}
