// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package corpus

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"
)

// exportLimit caps exports when the caller does not set a limit.
const exportLimit = 100000

// ExportYAML writes the corpus index (or a filtered subset) to
// indexDir/export.yaml. It supports the same filters as Retrieve;
// a non-positive MaxResults exports everything up to exportLimit.
func (s *Store) ExportYAML(ctx context.Context, opts QueryOptions) error {
	if opts.MaxResults <= 0 {
		opts.MaxResults = exportLimit
	}
	records, err := s.Retrieve(ctx, opts)
	if err != nil {
		return fmt.Errorf("querying for export: %w", err)
	}

	data, err := yaml.Marshal(records)
	if err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	return os.WriteFile(filepath.Join(s.indexDir, "export.yaml"), data, 0o644)
}

// ExportJSON writes the corpus index (or a filtered subset) to
// indexDir/export.json. It supports the same filters as Retrieve;
// a non-positive MaxResults exports everything up to exportLimit.
func (s *Store) ExportJSON(ctx context.Context, opts QueryOptions) error {
	if opts.MaxResults <= 0 {
		opts.MaxResults = exportLimit
	}
	records, err := s.Retrieve(ctx, opts)
	if err != nil {
		return fmt.Errorf("querying for export: %w", err)
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	return os.WriteFile(filepath.Join(s.indexDir, "export.json"), data, 0o644)
}
