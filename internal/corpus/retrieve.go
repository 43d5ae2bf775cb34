// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package corpus

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/pdiddy/hupd-prep/pkg/types"
)

// QueryOptions holds parameters for corpus index queries.
type QueryOptions struct {
	// Query is the FTS5 full-text search string over title and abstract.
	Query string

	// Decision filters by examination outcome.
	Decision types.Decision

	// MaxResults limits result count. Zero uses the store default.
	MaxResults int
}

// IsEmpty reports whether the query has no search terms or filters.
func (q QueryOptions) IsEmpty() bool {
	return q.Query == "" && q.Decision == ""
}

// Retrieve queries the corpus index with optional full-text search and a
// decision filter. Full-text queries are ranked by relevance; structured
// queries are sorted by record ID.
func (s *Store) Retrieve(ctx context.Context, opts QueryOptions) ([]types.CorpusRecord, error) {
	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = s.maxResults
	}

	var (
		qb     strings.Builder
		args   []any
		useFTS = opts.Query != ""
	)

	if useFTS {
		qb.WriteString(
			`SELECT r.id, r.decision, r.title, r.abstract, r.filing_date,
				r.markdown_path, r.indexed_at
			FROM records_fts
			JOIN records r ON r.rowid = records_fts.rowid
			WHERE records_fts MATCH ?`)
		args = append(args, opts.Query)
	} else {
		qb.WriteString(
			`SELECT r.id, r.decision, r.title, r.abstract, r.filing_date,
				r.markdown_path, r.indexed_at
			FROM records r
			WHERE 1=1`)
	}

	if opts.Decision != "" {
		qb.WriteString(` AND r.decision = ?`)
		args = append(args, string(opts.Decision))
	}

	if useFTS {
		qb.WriteString(` ORDER BY records_fts.rank`)
	} else {
		qb.WriteString(` ORDER BY r.id`)
	}

	qb.WriteString(` LIMIT ?`)
	args = append(args, maxResults)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying corpus index: %w", err)
	}
	defer rows.Close()

	var results []types.CorpusRecord
	for rows.Next() {
		var (
			rec                           types.CorpusRecord
			abstract, filingDate, indexed sql.NullString
		)
		if err := rows.Scan(
			&rec.ID, &rec.Decision, &rec.Title, &abstract, &filingDate,
			&rec.MarkdownPath, &indexed,
		); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		rec.Abstract = abstract.String
		rec.FilingDate = filingDate.String
		rec.IndexedAt = indexed.String
		results = append(results, rec)
	}

	return results, rows.Err()
}
