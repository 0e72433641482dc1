package cdb

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	check "gopkg.in/check.v1"
)

var (
	_ = check.Suite(new(cockroachDBStoreTestSuite))
	_ = check.Suite(new(denseIDsTestSuite))
)

func Test(t *testing.T) {
	check.TestingT(t)
}

type cockroachDBStoreTestSuite struct {
	store *CockroachDBStore
}

func (s *cockroachDBStoreTestSuite) SetUpSuite(c *check.C) {
	dsn := os.Getenv("CDB_DSN")
	if dsn == "" {
		c.Skip("Missing CDB_DSN envvar: skipping cockroachDB backed test suite")
	}

	store, err := NewCockroachDBStore(dsn)
	if err != nil {
		c.Fatalf("Failed to make a database connection: %v", err)
	}

	c.Assert(store.EnsureSchema(context.TODO()), check.IsNil)
	s.store = store
}

func (s *cockroachDBStoreTestSuite) TearDownSuite(c *check.C) {
	if s.store != nil {
		s.flushDB(c)
		c.Assert(s.store.Close(), check.IsNil)
	}
}

func (s *cockroachDBStoreTestSuite) SetUpTest(c *check.C) {
	s.flushDB(c)
}

func (s *cockroachDBStoreTestSuite) flushDB(c *check.C) {
	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
	defer cancel()

	_, err := s.store.db.ExecContext(ctx, "TRUNCATE hop_vertices CASCADE")
	c.Assert(err, check.IsNil)
}

func (s *cockroachDBStoreTestSuite) TestLoadGraph(c *check.C) {
	ctx := context.TODO()
	for id := uint32(0); id < 4; id++ {
		c.Assert(s.store.UpsertVertex(ctx, id), check.IsNil)
	}

	edges := [][2]uint32{{0, 1}, {0, 2}, {2, 3}, {0, 1}}
	for _, e := range edges {
		c.Assert(s.store.UpsertEdge(ctx, e[0], e[1]), check.IsNil)
	}

	g, err := s.store.LoadGraph(ctx)
	c.Assert(err, check.IsNil)
	c.Assert(g.NumVertices(), check.Equals, 4)
	c.Assert(g.NumEdges(), check.Equals, 3)
	c.Assert(g.Neighbors(0), check.DeepEquals, []uint32{1, 2})
	c.Assert(g.Neighbors(2), check.DeepEquals, []uint32{3})
}

func (s *cockroachDBStoreTestSuite) TestUpsertEdgeWithUnknownVertices(c *check.C) {
	err := s.store.UpsertEdge(context.TODO(), 0, 9)
	c.Assert(errors.Is(err, ErrUnknownEdgeVertices), check.Equals, true)
}

func (s *cockroachDBStoreTestSuite) TestLoadGraphRejectsSparseIDs(c *check.C) {
	ctx := context.TODO()
	c.Assert(s.store.UpsertVertex(ctx, 0), check.IsNil)
	c.Assert(s.store.UpsertVertex(ctx, 5), check.IsNil)

	_, err := s.store.LoadGraph(ctx)
	c.Assert(errors.Is(err, ErrSparseVertexIDs), check.Equals, true)
}

func (s *cockroachDBStoreTestSuite) TestLoadGraphRejectsNegativeIDs(c *check.C) {
	ctx := context.TODO()
	c.Assert(s.store.UpsertVertex(ctx, 1), check.IsNil)
	_, err := s.store.db.ExecContext(ctx, "INSERT INTO hop_vertices (id) VALUES (-1)")
	c.Assert(err, check.IsNil)

	_, err = s.store.LoadGraph(ctx)
	c.Assert(errors.Is(err, ErrSparseVertexIDs), check.Equals, true)
}

func (s *cockroachDBStoreTestSuite) TestEmptyStore(c *check.C) {
	g, err := s.store.LoadGraph(context.TODO())
	c.Assert(err, check.IsNil)
	c.Assert(g.NumVertices(), check.Equals, 0)
}

type denseIDsTestSuite struct{}

func (s *denseIDsTestSuite) TestCheckDenseIDs(c *check.C) {
	specs := []struct {
		descr               string
		count, minID, maxID int64
		expErr              bool
	}{
		{descr: "empty", count: 0, minID: 0, maxID: -1},
		{descr: "dense", count: 4, minID: 0, maxID: 3},
		{descr: "gap", count: 2, minID: 0, maxID: 5, expErr: true},
		{descr: "negative id fills the gap", count: 2, minID: -1, maxID: 1, expErr: true},
		{descr: "shifted range", count: 3, minID: 1, maxID: 3, expErr: true},
	}

	for specIndex, spec := range specs {
		c.Logf("[spec %d] %s", specIndex, spec.descr)

		err := checkDenseIDs(spec.count, spec.minID, spec.maxID)
		if spec.expErr {
			c.Assert(errors.Is(err, ErrSparseVertexIDs), check.Equals, true)
			continue
		}
		c.Assert(err, check.IsNil)
	}
}
