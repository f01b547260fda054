// Package storage persists run history in a local sqlite database.
package storage

import (
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"

	"github.com/Jade2451/LULC-ISA/core/area"
	"github.com/Jade2451/LULC-ISA/core/types"
	"github.com/Jade2451/LULC-ISA/internal/errors"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id           TEXT PRIMARY KEY,
	job_name     TEXT NOT NULL,
	started_at   TIMESTAMP NOT NULL,
	duration_ms  INTEGER NOT NULL,
	scene_count  INTEGER NOT NULL,
	total_pixels INTEGER NOT NULL,
	usable_pixels INTEGER NOT NULL,
	accuracy     DOUBLE,
	kappa        DOUBLE
);
CREATE TABLE IF NOT EXISTS run_areas (
	run_id      TEXT NOT NULL,
	class_label INTEGER NOT NULL,
	area_sqkm   DOUBLE NOT NULL,
	PRIMARY KEY (run_id, class_label),
	FOREIGN KEY (run_id) REFERENCES runs(id)
);
`

// RunRecord is one stored classification run.
type RunRecord struct {
	ID           string
	JobName      string
	StartedAt    time.Time
	Duration     time.Duration
	SceneCount   int
	TotalPixels  int
	UsablePixels int
	Accuracy     float64
	Kappa        float64
	Breakdown    area.Breakdown
}

// Store wraps the run-history database.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, errors.Storage("create database directory", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Storage("open database", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, errors.Storage("apply schema", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveRun inserts a run and its per-class areas in one transaction.
func (s *Store) SaveRun(rec *RunRecord) error {
	tx, err := s.db.Begin()
	if err != nil {
		return errors.Storage("begin transaction", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`INSERT INTO runs
		(id, job_name, started_at, duration_ms, scene_count, total_pixels, usable_pixels, accuracy, kappa)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.JobName, rec.StartedAt.UTC(), rec.Duration.Milliseconds(),
		rec.SceneCount, rec.TotalPixels, rec.UsablePixels, rec.Accuracy, rec.Kappa)
	if err != nil {
		return errors.Storage("insert run", err)
	}

	for _, label := range rec.Breakdown.SortedClasses() {
		_, err = tx.Exec(`INSERT INTO run_areas (run_id, class_label, area_sqkm) VALUES (?, ?, ?)`,
			rec.ID, int(label), rec.Breakdown.SqKm(label))
		if err != nil {
			return errors.Storage("insert run area", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.Storage("commit run", err)
	}
	return nil
}

// GetRun loads one run by ID.
func (s *Store) GetRun(id string) (*RunRecord, error) {
	rec := &RunRecord{Breakdown: make(area.Breakdown)}
	var durationMs int64
	err := s.db.QueryRow(`SELECT id, job_name, started_at, duration_ms, scene_count,
		total_pixels, usable_pixels, accuracy, kappa FROM runs WHERE id = ?`, id).
		Scan(&rec.ID, &rec.JobName, &rec.StartedAt, &durationMs, &rec.SceneCount,
			&rec.TotalPixels, &rec.UsablePixels, &rec.Accuracy, &rec.Kappa)
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("run", id)
	}
	if err != nil {
		return nil, errors.Storage("load run", err)
	}
	rec.Duration = time.Duration(durationMs) * time.Millisecond

	rows, err := s.db.Query(`SELECT class_label, area_sqkm FROM run_areas WHERE run_id = ? ORDER BY class_label`, id)
	if err != nil {
		return nil, errors.Storage("load run areas", err)
	}
	defer rows.Close()

	for rows.Next() {
		var labelInt int
		var sqkm float64
		if err := rows.Scan(&labelInt, &sqkm); err != nil {
			return nil, errors.Storage("scan run area", err)
		}
		label, err := types.ParseClassLabel(labelInt)
		if err != nil {
			return nil, errors.Storage("stored class label out of range", err)
		}
		rec.Breakdown[label] = decimal.NewFromFloat(sqkm)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Storage("iterate run areas", err)
	}
	return rec, nil
}

// ListRuns returns stored runs, most recent first, without breakdowns.
func (s *Store) ListRuns(limit int) ([]*RunRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.Query(`SELECT id, job_name, started_at, duration_ms, scene_count,
		total_pixels, usable_pixels, accuracy, kappa
		FROM runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, errors.Storage("list runs", err)
	}
	defer rows.Close()

	var out []*RunRecord
	for rows.Next() {
		rec := &RunRecord{}
		var durationMs int64
		if err := rows.Scan(&rec.ID, &rec.JobName, &rec.StartedAt, &durationMs, &rec.SceneCount,
			&rec.TotalPixels, &rec.UsablePixels, &rec.Accuracy, &rec.Kappa); err != nil {
			return nil, errors.Storage("scan run", err)
		}
		rec.Duration = time.Duration(durationMs) * time.Millisecond
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Storage("iterate runs", err)
	}
	return out, nil
}
