/*
	cdb package provides a CockroachDB / PostgreSQL backed edge store from
	which immutable CSR graphs can be loaded.
*/

package cdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/mycok/hopsearch/graph"
)

var (
	createSchemaQuery = `
					CREATE TABLE IF NOT EXISTS hop_vertices (
						id INT8 PRIMARY KEY
					);
					CREATE TABLE IF NOT EXISTS hop_edges (
						src INT8 NOT NULL REFERENCES hop_vertices (id) ON DELETE CASCADE,
						dest INT8 NOT NULL REFERENCES hop_vertices (id) ON DELETE CASCADE,
						PRIMARY KEY (src, dest)
					);
					`

	upsertVertexQuery = "INSERT INTO hop_vertices (id) VALUES ($1) ON CONFLICT (id) DO NOTHING"
	upsertEdgeQuery   = "INSERT INTO hop_edges (src, dest) VALUES ($1, $2) ON CONFLICT (src, dest) DO NOTHING"
	countVertexQuery  = "SELECT COUNT(*), COALESCE(MIN(id), 0), COALESCE(MAX(id), -1) FROM hop_vertices"
	edgesQuery        = "SELECT src, dest FROM hop_edges ORDER BY src, dest"
)

// ErrUnknownEdgeVertices is returned when an edge refers to vertices that
// have not been inserted.
var ErrUnknownEdgeVertices = errors.New("unknown source and / or destination vertex")

// ErrSparseVertexIDs is returned when the stored vertex IDs do not form the
// dense [0, n) range required by graph.Graph.
var ErrSparseVertexIDs = errors.New("vertex ids are not dense")

// CockroachDBStore persists graph vertices and edges in a CockroachDB
// instance.
type CockroachDBStore struct {
	db *sql.DB
}

// NewCockroachDBStore returns a CockroachDBStore instance connected to dsn.
func NewCockroachDBStore(dsn string) (*CockroachDBStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()

		return nil, err
	}

	return &CockroachDBStore{db}, nil
}

// Close terminates the connection to the database.
func (s *CockroachDBStore) Close() error {
	return s.db.Close()
}

// EnsureSchema creates the vertex and edge tables if they do not exist.
func (s *CockroachDBStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, createSchemaQuery); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}

	return nil
}

// UpsertVertex inserts a vertex with the specified id if it does not exist.
func (s *CockroachDBStore) UpsertVertex(ctx context.Context, id uint32) error {
	if _, err := s.db.ExecContext(ctx, upsertVertexQuery, int64(id)); err != nil {
		return fmt.Errorf("upsert vertex: %w", err)
	}

	return nil
}

// UpsertEdge inserts a directed edge from src to dst. Both vertices must
// already exist.
func (s *CockroachDBStore) UpsertEdge(ctx context.Context, src, dst uint32) error {
	if _, err := s.db.ExecContext(ctx, upsertEdgeQuery, int64(src), int64(dst)); err != nil {
		if isForeignKeyViolationError(err) {
			err = ErrUnknownEdgeVertices
		}

		return fmt.Errorf("upsert edge: %w", err)
	}

	return nil
}

// LoadGraph reads every stored vertex and edge and returns them as an
// immutable CSR graph.
func (s *CockroachDBStore) LoadGraph(ctx context.Context) (*graph.CSR, error) {
	var count, minID, maxID int64
	if err := s.db.QueryRowContext(ctx, countVertexQuery).Scan(&count, &minID, &maxID); err != nil {
		return nil, fmt.Errorf("load graph: %w", err)
	}

	if err := checkDenseIDs(count, minID, maxID); err != nil {
		return nil, fmt.Errorf("load graph: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, edgesQuery)
	if err != nil {
		return nil, fmt.Errorf("load graph: %w", err)
	}
	defer func() { _ = rows.Close() }()

	b := graph.NewBuilder(int(count))
	for rows.Next() {
		var src, dst int64
		if err := rows.Scan(&src, &dst); err != nil {
			return nil, fmt.Errorf("load graph: scan edge: %w", err)
		}

		b.AddEdge(uint32(src), uint32(dst))
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load graph: %w", err)
	}

	g, err := b.Build()
	if err != nil {
		return nil, fmt.Errorf("load graph: %w", err)
	}

	return g, nil
}

// checkDenseIDs verifies that count distinct vertex IDs spanning
// [minID, maxID] are exactly the IDs 0 to count-1.
func checkDenseIDs(count, minID, maxID int64) error {
	if count == 0 {
		return nil
	}

	if minID != 0 || maxID+1 != count {
		return fmt.Errorf(
			"%d vertices with ids in [%d, %d]: %w", count, minID, maxID, ErrSparseVertexIDs,
		)
	}

	return nil
}

// isForeignKeyViolationError returns true if error is a foreign key
// constraint violation error.
func isForeignKeyViolationError(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}

	return pqErr.Code.Name() == "foreign_key_violation"
}
