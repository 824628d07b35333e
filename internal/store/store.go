// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store persists scholarship records and clustering runs in a local
// SQLite database.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/scholarship-engine/pkg/types"
)

const (
	indexDir = "index"
	dbFile   = "scholarships.db"
)

const defaultMaxResults = 100

// Store manages the scholarship SQLite database.
type Store struct {
	db         *sql.DB
	dataDir    string
	maxResults int
}

// NewStore opens or creates the database at dataDir/index/scholarships.db,
// creating the schema if it does not exist.
func NewStore(cfg types.StoreConfig) (*Store, error) {
	dbDir := filepath.Join(cfg.DataDir, indexDir)
	if err := os.MkdirAll(dbDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	dbPath := filepath.Join(dbDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}

	s := &Store{
		db:         db,
		dataDir:    cfg.DataDir,
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
		`CREATE TABLE IF NOT EXISTS scholarships (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			amount REAL NOT NULL,
			category TEXT,
			target_demographics TEXT,
			gpa_requirement REAL,
			deadline TEXT,
			description TEXT,
			eligibility TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_scholarships_category ON scholarships(category)`,
		`CREATE TABLE IF NOT EXISTS cluster_runs (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			method TEXT NOT NULL,
			info TEXT NOT NULL,
			labels TEXT NOT NULL,
			created_at TEXT NOT NULL
		)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// ImportSummary holds counts from one import.
type ImportSummary struct {
	Added   int
	Updated int
	Failed  int
}

// Total returns the number of records processed.
func (s ImportSummary) Total() int {
	return s.Added + s.Updated + s.Failed
}

// Import upserts records into the scholarships table, reporting per-record
// progress to w.
func (s *Store) Import(ctx context.Context, records []types.Scholarship, w io.Writer) (ImportSummary, error) {
	var summary ImportSummary

	for _, rec := range records {
		select {
		case <-ctx.Done():
			return summary, ctx.Err()
		default:
		}

		demographics, err := json.Marshal(rec.TargetDemographics)
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", rec.ID, err)
			summary.Failed++
			continue
		}

		var exists int
		if err := s.db.QueryRowContext(ctx,
			`SELECT count(*) FROM scholarships WHERE id = ?`, rec.ID,
		).Scan(&exists); err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", rec.ID, err)
			summary.Failed++
			continue
		}

		_, err = s.db.ExecContext(ctx, `
			INSERT INTO scholarships
				(id, title, amount, category, target_demographics,
				 gpa_requirement, deadline, description, eligibility)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				title = excluded.title,
				amount = excluded.amount,
				category = excluded.category,
				target_demographics = excluded.target_demographics,
				gpa_requirement = excluded.gpa_requirement,
				deadline = excluded.deadline,
				description = excluded.description,
				eligibility = excluded.eligibility`,
			rec.ID, rec.Title, rec.Amount, rec.Category, string(demographics),
			rec.GPARequirement, rec.Deadline, rec.Description, rec.Eligibility)
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", rec.ID, err)
			summary.Failed++
			continue
		}

		if exists > 0 {
			fmt.Fprintf(w, "updated %s\n", rec.ID)
			summary.Updated++
		} else {
			fmt.Fprintf(w, "added   %s\n", rec.ID)
			summary.Added++
		}
	}
	return summary, nil
}

// ListOptions filters a scholarship listing. Zero values mean no filter.
type ListOptions struct {
	// Category restricts results to an exact category label.
	Category string

	// MinAmount and MaxAmount bound the award value. MaxAmount of 0 means
	// unbounded.
	MinAmount float64
	MaxAmount float64

	// MaxResults caps the result count; the store default applies when 0.
	MaxResults int
}

// List returns scholarships matching opts, ordered by descending amount.
func (s *Store) List(ctx context.Context, opts ListOptions) ([]types.Scholarship, error) {
	query := `SELECT id, title, amount, category, target_demographics,
		gpa_requirement, deadline, description, eligibility
		FROM scholarships WHERE 1=1`
	var args []any

	if opts.Category != "" {
		query += ` AND category = ?`
		args = append(args, opts.Category)
	}
	if opts.MinAmount > 0 {
		query += ` AND amount >= ?`
		args = append(args, opts.MinAmount)
	}
	if opts.MaxAmount > 0 {
		query += ` AND amount <= ?`
		args = append(args, opts.MaxAmount)
	}

	limit := opts.MaxResults
	if limit <= 0 {
		limit = s.maxResults
	}
	query += ` ORDER BY amount DESC, id LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying scholarships: %w", err)
	}
	defer rows.Close()

	var records []types.Scholarship
	for rows.Next() {
		var rec types.Scholarship
		var demographics string
		if err := rows.Scan(&rec.ID, &rec.Title, &rec.Amount, &rec.Category,
			&demographics, &rec.GPARequirement, &rec.Deadline,
			&rec.Description, &rec.Eligibility); err != nil {
			return nil, fmt.Errorf("scanning scholarship: %w", err)
		}
		if demographics != "" {
			if err := json.Unmarshal([]byte(demographics), &rec.TargetDemographics); err != nil {
				return nil, fmt.Errorf("parsing demographics for %s: %w", rec.ID, err)
			}
		}
		if rec.TargetDemographics == nil {
			rec.TargetDemographics = []string{}
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// SavedRun is a persisted clustering run.
type SavedRun struct {
	ID        int64          `json:"id" yaml:"id"`
	Info      types.RunInfo  `json:"info" yaml:"info"`
	Labels    map[string]int `json:"labels" yaml:"labels"`
	CreatedAt time.Time      `json:"created_at" yaml:"created_at"`
}

// SaveRun persists a run's metadata and its record-to-cluster assignment,
// returning the run's row id.
func (s *Store) SaveRun(ctx context.Context, info types.RunInfo, records []types.ClusteredScholarship) (int64, error) {
	labels := make(map[string]int, len(records))
	for _, rec := range records {
		labels[rec.ID] = rec.Cluster
	}

	infoJSON, err := json.Marshal(info)
	if err != nil {
		return 0, fmt.Errorf("marshaling run info: %w", err)
	}
	labelsJSON, err := json.Marshal(labels)
	if err != nil {
		return 0, fmt.Errorf("marshaling run labels: %w", err)
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO cluster_runs (method, info, labels, created_at) VALUES (?, ?, ?, ?)`,
		string(info.Method), string(infoJSON), string(labelsJSON),
		time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return 0, fmt.Errorf("inserting run: %w", err)
	}
	return res.LastInsertId()
}

// ListRuns returns saved runs, newest first.
func (s *Store) ListRuns(ctx context.Context) ([]SavedRun, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT rowid, info, labels, created_at FROM cluster_runs ORDER BY rowid DESC`)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []SavedRun
	for rows.Next() {
		var (
			run        SavedRun
			infoJSON   string
			labelsJSON string
			createdAt  string
		)
		if err := rows.Scan(&run.ID, &infoJSON, &labelsJSON, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		if err := json.Unmarshal([]byte(infoJSON), &run.Info); err != nil {
			return nil, fmt.Errorf("parsing run %d info: %w", run.ID, err)
		}
		if err := json.Unmarshal([]byte(labelsJSON), &run.Labels); err != nil {
			return nil, fmt.Errorf("parsing run %d labels: %w", run.ID, err)
		}
		if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
			run.CreatedAt = t
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// Count returns the number of stored scholarships.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM scholarships`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting scholarships: %w", err)
	}
	return n, nil
}
