// Package tracedb persists imported trace datasets in sqlite so node
// files only need to be parsed once. Only raw input geometry is stored;
// derived statistics are always recomputed from a loaded store.
package tracedb

import (
	"database/sql"
	_ "embed"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/strata-data/fracture.report/internal/trace"
)

// TraceDB wraps the sqlite handle for trace dataset storage.
type TraceDB struct {
	*sql.DB
}

//go:embed schema.sql
var schemaSQL string

// NewTraceDB opens (or creates) the database at path and applies the base
// schema.
func NewTraceDB(path string) (*TraceDB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		return nil, fmt.Errorf("failed to apply trace schema: %w", err)
	}

	log.Println("initialized trace database schema")

	return &TraceDB{db}, nil
}

// Dataset describes one imported node file.
type Dataset struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	SourceFile  string    `json:"source_file"`
	TraceCount  int       `json:"trace_count"`
	VertexCount int       `json:"vertex_count"`
	CreatedAt   time.Time `json:"created_at"`
}

// ImportStore writes a parsed store as a new dataset and returns its ID.
// Trace and vertex order is preserved via seq columns, so a later
// LoadStore round-trips the store exactly.
func (db *TraceDB) ImportStore(name, sourceFile string, store *trace.Store) (string, error) {
	id := uuid.NewString()

	tx, err := db.Begin()
	if err != nil {
		return "", fmt.Errorf("failed to begin import transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO datasets (dataset_id, name, source_file, trace_count, vertex_count) VALUES (?, ?, ?, ?, ?)`,
		id, name, sourceFile, store.Len(), store.NumVertices(),
	)
	if err != nil {
		return "", fmt.Errorf("failed to insert dataset: %w", err)
	}

	insTrace, err := tx.Prepare(`INSERT INTO traces (dataset_id, seq) VALUES (?, ?)`)
	if err != nil {
		return "", fmt.Errorf("failed to prepare trace insert: %w", err)
	}
	defer insTrace.Close()

	insVertex, err := tx.Prepare(`INSERT INTO vertices (trace_id, seq, x, y) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return "", fmt.Errorf("failed to prepare vertex insert: %w", err)
	}
	defer insVertex.Close()

	for seq, t := range store.Traces() {
		res, err := insTrace.Exec(id, seq)
		if err != nil {
			return "", fmt.Errorf("failed to insert trace %d: %w", seq, err)
		}
		traceID, err := res.LastInsertId()
		if err != nil {
			return "", fmt.Errorf("failed to get trace ID: %w", err)
		}
		for vseq, v := range t.Vertices {
			if _, err := insVertex.Exec(traceID, vseq, v.X, v.Y); err != nil {
				return "", fmt.Errorf("failed to insert vertex %d of trace %d: %w", vseq, seq, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit import: %w", err)
	}

	log.Printf("imported dataset %s (%d traces, %d vertices)", id, store.Len(), store.NumVertices())
	return id, nil
}

// LoadStore reads a dataset back into a store, in original input order.
func (db *TraceDB) LoadStore(datasetID string) (*trace.Store, error) {
	rows, err := db.Query(`
		SELECT t.trace_id, v.x, v.y
		FROM traces t
		LEFT JOIN vertices v ON v.trace_id = t.trace_id
		WHERE t.dataset_id = ?
		ORDER BY t.seq, v.seq`, datasetID)
	if err != nil {
		return nil, fmt.Errorf("failed to query dataset %s: %w", datasetID, err)
	}
	defer rows.Close()

	store := trace.NewStore()
	var cur int64 = -1
	var pts []trace.Point
	flush := func() {
		if cur >= 0 {
			store.Add(trace.Trace{Vertices: pts})
		}
	}
	for rows.Next() {
		var traceID int64
		var x, y sql.NullFloat64
		if err := rows.Scan(&traceID, &x, &y); err != nil {
			return nil, fmt.Errorf("failed to scan vertex row: %w", err)
		}
		if traceID != cur {
			flush()
			cur = traceID
			pts = nil
		}
		if x.Valid && y.Valid {
			pts = append(pts, trace.Point{X: x.Float64, Y: y.Float64})
		}
	}
	flush()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read dataset %s: %w", datasetID, err)
	}
	if store.Len() == 0 {
		return nil, fmt.Errorf("dataset %s: %w", datasetID, trace.ErrEmptyInput)
	}
	return store, nil
}

// ListDatasets returns all datasets, newest first.
func (db *TraceDB) ListDatasets() ([]Dataset, error) {
	rows, err := db.Query(`
		SELECT dataset_id, name, COALESCE(source_file, ''), trace_count, vertex_count, created_at
		FROM datasets ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query datasets: %w", err)
	}
	defer rows.Close()

	var out []Dataset
	for rows.Next() {
		var d Dataset
		if err := rows.Scan(&d.ID, &d.Name, &d.SourceFile, &d.TraceCount, &d.VertexCount, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan dataset row: %w", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}
