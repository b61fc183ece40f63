// Package state persists report documents in SQLite.
package state

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/avenirlabs/scorecard-ai/internal/core"
)

//go:embed migrations/001_initial_schema.sql
var migrationV1 string

// SQLiteReportStore implements core.ReportStore with SQLite storage.
type SQLiteReportStore struct {
	dbPath string
	db     *sql.DB
	mu     sync.RWMutex
}

// NewSQLiteReportStore opens (creating if needed) the report database.
func NewSQLiteReportStore(dbPath string) (*SQLiteReportStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating store directory: %w", err)
	}

	// WAL keeps the HTML view readable while a report is being saved.
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &SQLiteReportStore{dbPath: dbPath, db: db}
	if err := s.migrate(); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			return nil, fmt.Errorf("running migrations: %w (close error: %v)", err, closeErr)
		}
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return s, nil
}

func (s *SQLiteReportStore) migrate() error {
	var version int
	err := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations").Scan(&version)
	if err != nil {
		version = 0
	}
	if version < 1 {
		if _, err := s.db.Exec(migrationV1); err != nil {
			return fmt.Errorf("applying migration v1: %w", err)
		}
	}
	return nil
}

// Close closes the database connection.
func (s *SQLiteReportStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Save persists a report document. Reports are immutable; saving an existing
// id is a conflict, not an upsert.
func (s *SQLiteReportStore) Save(ctx context.Context, r *core.Report) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	historyJSON, err := json.Marshal(r.History)
	if err != nil {
		return fmt.Errorf("marshaling answer history: %w", err)
	}

	createdAt := r.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO reports (id, markdown, tier, lead_name, company, industry, email, history, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		r.ID, r.Markdown, string(r.Tier),
		r.Lead.Name, r.Lead.Company, r.Lead.Industry, r.Lead.Email,
		string(historyJSON), createdAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("inserting report %s: %w", r.ID, err)
	}
	return nil
}

// Get retrieves a report by id.
func (s *SQLiteReportStore) Get(ctx context.Context, id string) (*core.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT id, markdown, tier, lead_name, company, industry, email, history, created_at
		FROM reports WHERE id = ?
	`, id)

	r, err := scanReport(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, core.ErrNotFound("report", id)
	}
	if err != nil {
		return nil, fmt.Errorf("loading report %s: %w", id, err)
	}
	return r, nil
}

// List returns all reports, newest first.
func (s *SQLiteReportStore) List(ctx context.Context) ([]*core.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, markdown, tier, lead_name, company, industry, email, history, created_at
		FROM reports ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("listing reports: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var reports []*core.Report
	for rows.Next() {
		r, err := scanReport(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning report row: %w", err)
		}
		reports = append(reports, r)
	}
	return reports, rows.Err()
}

// Delete removes a report by id.
func (s *SQLiteReportStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, "DELETE FROM reports WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting report %s: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return core.ErrNotFound("report", id)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReport(row rowScanner) (*core.Report, error) {
	var (
		r          core.Report
		tier       string
		historyRaw string
		createdRaw string
	)
	err := row.Scan(&r.ID, &r.Markdown, &tier,
		&r.Lead.Name, &r.Lead.Company, &r.Lead.Industry, &r.Lead.Email,
		&historyRaw, &createdRaw)
	if err != nil {
		return nil, err
	}

	r.Tier = core.Tier(tier)
	if err := json.Unmarshal([]byte(historyRaw), &r.History); err != nil {
		return nil, fmt.Errorf("unmarshaling answer history: %w", err)
	}
	if t, err := time.Parse(time.RFC3339Nano, createdRaw); err == nil {
		r.CreatedAt = t
	}
	return &r, nil
}

var _ core.ReportStore = (*SQLiteReportStore)(nil)
