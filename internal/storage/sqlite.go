package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

type SQLiteStore struct {
	path string

	mu sync.RWMutex
	db *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{path: path}
}

func (s *SQLiteStore) Init(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.path == "" {
		return errors.New("sqlite path is required")
	}
	if s.db != nil {
		return nil
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return err
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return err
	}

	if err := createTables(ctx, db); err != nil {
		_ = db.Close()
		return err
	}

	s.db = db
	return nil
}

func (s *SQLiteStore) SaveStageResult(ctx context.Context, r StageResult) error {
	db, err := s.getDB()
	if err != nil {
		return err
	}

	perm, err := json.Marshal(r.Permutation)
	if err != nil {
		return fmt.Errorf("encode permutation: %w", err)
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO stage_results (
			id, batch_id, experiment, run_index, seed, stage_order, stage, strategy,
			criterion, makespan, generations, evaluations, duration_ms, permutation, created_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			criterion = excluded.criterion,
			makespan = excluded.makespan,
			generations = excluded.generations,
			evaluations = excluded.evaluations,
			duration_ms = excluded.duration_ms,
			permutation = excluded.permutation
	`, r.ID, r.BatchID, r.Experiment, r.RunIndex, r.Seed, r.StageOrder, r.Stage, r.Strategy,
		r.Criterion, r.Makespan, r.Generations, r.Evaluations, r.DurationMs, string(perm),
		r.CreatedAt.UnixNano())
	return err
}

func (s *SQLiteStore) ListStageResults(ctx context.Context, experiment string) ([]StageResult, error) {
	db, err := s.getDB()
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, `
		SELECT id, batch_id, experiment, run_index, seed, stage_order, stage, strategy,
			criterion, makespan, generations, evaluations, duration_ms, permutation, created_at
		FROM stage_results
		WHERE experiment = ?
		ORDER BY run_index, stage_order, created_at
	`, experiment)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []StageResult
	for rows.Next() {
		var (
			r       StageResult
			perm    string
			created int64
		)
		if err := rows.Scan(&r.ID, &r.BatchID, &r.Experiment, &r.RunIndex, &r.Seed, &r.StageOrder,
			&r.Stage, &r.Strategy, &r.Criterion, &r.Makespan, &r.Generations, &r.Evaluations,
			&r.DurationMs, &perm, &created); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(perm), &r.Permutation); err != nil {
			return nil, fmt.Errorf("decode permutation %s: %w", r.ID, err)
		}
		r.CreatedAt = time.Unix(0, created)
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func (s *SQLiteStore) getDB() (*sql.DB, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.db == nil {
		return nil, errors.New("sqlite store is not initialized")
	}
	return s.db, nil
}

func createTables(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS stage_results (
			id TEXT PRIMARY KEY,
			batch_id TEXT NOT NULL,
			experiment TEXT NOT NULL,
			run_index INTEGER NOT NULL,
			seed INTEGER NOT NULL,
			stage_order INTEGER NOT NULL,
			stage TEXT NOT NULL,
			strategy TEXT NOT NULL,
			criterion REAL NOT NULL,
			makespan REAL NOT NULL,
			generations INTEGER NOT NULL,
			evaluations INTEGER NOT NULL,
			duration_ms REAL NOT NULL,
			permutation TEXT NOT NULL,
			created_at INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_stage_results_experiment ON stage_results (experiment)`,
	}
	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
