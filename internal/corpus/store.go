// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package corpus maintains a SQLite index over rendered patent records so
// downstream retrieval can locate documents by metadata or full text.
package corpus

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/hupd-prep/pkg/types"
)

const dbFile = "corpus.db"

// Store manages the corpus index SQLite database.
type Store struct {
	db         *sql.DB
	indexDir   string
	maxResults int
}

// NewStore opens or creates the corpus database at indexDir/corpus.db and
// creates the schema if it does not exist.
func NewStore(cfg types.CorpusConfig) (*Store, error) {
	if err := os.MkdirAll(cfg.IndexDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	dbPath := filepath.Join(cfg.IndexDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}

	s := &Store{
		db:         db,
		indexDir:   cfg.IndexDir,
		maxResults: maxResults,
	}

	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS records (
			id TEXT NOT NULL UNIQUE,
			decision TEXT,
			title TEXT,
			abstract TEXT,
			filing_date TEXT,
			markdown_path TEXT,
			indexed_at TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_records_decision ON records(decision)`,
		`CREATE TABLE IF NOT EXISTS indexing_status (
			record_id TEXT PRIMARY KEY,
			file_mod_time TEXT
		)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	// FTS5 virtual table over title and abstract, kept in sync by triggers.
	var ftsExists int
	if err := s.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='records_fts'`,
	).Scan(&ftsExists); err != nil {
		return fmt.Errorf("checking FTS table: %w", err)
	}

	if ftsExists == 0 {
		ftsStatements := []string{
			`CREATE VIRTUAL TABLE records_fts USING fts5(title, abstract, content=records, content_rowid=rowid)`,
			`CREATE TRIGGER records_ai AFTER INSERT ON records BEGIN
				INSERT INTO records_fts(rowid, title, abstract) VALUES (new.rowid, new.title, new.abstract);
			END`,
			`CREATE TRIGGER records_ad AFTER DELETE ON records BEGIN
				INSERT INTO records_fts(records_fts, rowid, title, abstract) VALUES('delete', old.rowid, old.title, old.abstract);
			END`,
			`CREATE TRIGGER records_au AFTER UPDATE ON records BEGIN
				INSERT INTO records_fts(records_fts, rowid, title, abstract) VALUES('delete', old.rowid, old.title, old.abstract);
				INSERT INTO records_fts(rowid, title, abstract) VALUES (new.rowid, new.title, new.abstract);
			END`,
		}
		for _, stmt := range ftsStatements {
			if _, err := s.db.Exec(stmt); err != nil {
				return fmt.Errorf("creating FTS infrastructure: %w", err)
			}
		}
	}

	return nil
}

// IngestSummary holds counts from a corpus indexing run.
type IngestSummary struct {
	Indexed int
	Updated int
	Skipped int
	Failed  int
}

// Total returns the number of records processed.
func (s IngestSummary) Total() int {
	return s.Indexed + s.Updated + s.Skipped + s.Failed
}

// recordMeta is the subset of a patent JSON record the index keeps.
type recordMeta struct {
	Decision   string `json:"decision"`
	Title      string `json:"title"`
	Abstract   string `json:"abstract"`
	FilingDate string `json:"filing_date"`
}

// Ingest scans mdDir for rendered Markdown documents, pairs each with its
// source JSON in jsonDir for metadata, and upserts index rows. Documents
// unchanged since the last run (by file modification time) are skipped.
func (s *Store) Ingest(ctx context.Context, jsonDir, mdDir string, w io.Writer) (IngestSummary, error) {
	entries, err := os.ReadDir(mdDir)
	if err != nil {
		return IngestSummary{}, fmt.Errorf("reading markdown directory %s: %w", mdDir, err)
	}

	var summary IngestSummary

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}

		select {
		case <-ctx.Done():
			return summary, ctx.Err()
		default:
		}

		id := strings.TrimSuffix(entry.Name(), ".md")
		mdPath := filepath.Join(mdDir, entry.Name())

		info, err := entry.Info()
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", id, err)
			summary.Failed++
			continue
		}
		modTime := info.ModTime().UTC().Format(time.RFC3339Nano)

		var storedModTime string
		err = s.db.QueryRowContext(ctx,
			`SELECT file_mod_time FROM indexing_status WHERE record_id = ?`, id,
		).Scan(&storedModTime)

		if err == nil && storedModTime == modTime {
			fmt.Fprintf(w, "skipped %s\n", id)
			summary.Skipped++
			continue
		}
		isUpdate := err == nil

		meta := loadRecordMeta(jsonDir, id)

		if err := s.ingestRecord(ctx, id, meta, mdPath, modTime); err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", id, err)
			summary.Failed++
			continue
		}

		if isUpdate {
			fmt.Fprintf(w, "updated %s\n", id)
			summary.Updated++
		} else {
			fmt.Fprintf(w, "indexed %s\n", id)
			summary.Indexed++
		}
	}

	fmt.Fprintf(w, "\nindexed: %d, updated: %d, skipped: %d, failed: %d\n",
		summary.Indexed, summary.Updated, summary.Skipped, summary.Failed)

	// Refresh the YAML export after a run that changed anything.
	if summary.Indexed > 0 || summary.Updated > 0 {
		if err := s.ExportYAML(ctx, QueryOptions{}); err != nil {
			fmt.Fprintf(w, "warning: export.yaml write failed: %v\n", err)
		}
	}

	return summary, nil
}

func (s *Store) ingestRecord(ctx context.Context, id string, meta *recordMeta, mdPath, modTime string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	indexedAt := time.Now().UTC().Format(time.RFC3339)

	if meta == nil {
		meta = &recordMeta{}
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO records (id, decision, title, abstract, filing_date, markdown_path, indexed_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			decision=excluded.decision, title=excluded.title, abstract=excluded.abstract,
			filing_date=excluded.filing_date, markdown_path=excluded.markdown_path,
			indexed_at=excluded.indexed_at`,
		id, meta.Decision, meta.Title, meta.Abstract, meta.FilingDate, mdPath, indexedAt,
	)
	if err != nil {
		return fmt.Errorf("upserting record: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO indexing_status (record_id, file_mod_time) VALUES (?, ?)
		 ON CONFLICT(record_id) DO UPDATE SET file_mod_time=excluded.file_mod_time`,
		id, modTime,
	)
	if err != nil {
		return fmt.Errorf("updating indexing status: %w", err)
	}

	return tx.Commit()
}

// loadRecordMeta reads metadata fields from jsonDir/[id].json. Returns nil
// if the file does not exist or cannot be parsed; the index row is then
// created with empty metadata.
func loadRecordMeta(jsonDir, id string) *recordMeta {
	data, err := os.ReadFile(filepath.Join(jsonDir, id+".json"))
	if err != nil {
		return nil
	}
	var meta recordMeta
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil
	}
	return &meta
}
