package bsp_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	check "gopkg.in/check.v1"

	"github.com/mycok/hopsearch/bsp"
	"github.com/mycok/hopsearch/bsp/aggregator"
	"github.com/mycok/hopsearch/bsp/queue"
	"github.com/mycok/hopsearch/graph"
)

var _ = check.Suite(new(engineTestSuite))

func Test(t *testing.T) {
	check.TestingT(t)
}

type engineTestSuite struct{}

func (s *engineTestSuite) TestConfigValidation(c *check.C) {
	g := pathGraph(c, 3)
	noop := func(int, uint32, bsp.Emitter) error { return nil }

	_, err := bsp.NewEngine(bsp.EngineConfig{ExpandFn: noop, ComputeWorkers: 1})
	c.Assert(err, check.ErrorMatches, "(?ms).*graph not provided.*")

	_, err = bsp.NewEngine(bsp.EngineConfig{Graph: g, ComputeWorkers: 1})
	c.Assert(err, check.ErrorMatches, "(?ms).*expand function not provided.*")

	_, err = bsp.NewEngine(bsp.EngineConfig{Graph: g, ExpandFn: noop})
	c.Assert(errors.Is(err, bsp.ErrInvalidWorkerCount), check.Equals, true)

	cfg := bsp.EngineConfig{Graph: g, ExpandFn: noop, ComputeWorkers: 2}
	c.Assert(cfg.Validate(), check.IsNil)
	c.Assert(cfg.QueueFactory, check.NotNil, check.Commentf("default queue factory was not assigned"))
	c.Assert(cfg.Logger, check.NotNil, check.Commentf("default logger was not assigned"))
}

func (s *engineTestSuite) TestSeedValidation(c *check.C) {
	e, _ := newLevelEngine(c, pathGraph(c, 3), 1)

	err := e.Seed(3)
	c.Assert(errors.Is(err, bsp.ErrInvalidSeed), check.Equals, true)

	c.Assert(e.Seed(0), check.IsNil)
	c.Assert(e.FrontierLen(), check.Equals, 1)

	e.Reset()
	c.Assert(e.FrontierLen(), check.Equals, 0)
}

func (s *engineTestSuite) TestRoundsAreLayerSynchronous(c *check.C) {
	// A binary tree: vertex v has children 2v+1 and 2v+2.
	n := 127
	adj := make([][]uint32, n)
	for v := 0; v < n; v++ {
		for _, child := range []int{2*v + 1, 2*v + 2} {
			if child < n {
				adj[v] = append(adj[v], uint32(child))
			}
		}
	}
	g, err := graph.FromAdjacency(adj)
	c.Assert(err, check.IsNil)

	for _, workers := range []int{1, 2, 4, 8} {
		e, level := newLevelEngine(c, g, workers)
		c.Assert(e.Seed(0), check.IsNil)

		var frontiers []int
		ex := bsp.NewExecutor(e, bsp.ExecutorCallbacks{
			PostRound: func(_ context.Context, _ *bsp.Engine, _ int, frontierLen int) error {
				frontiers = append(frontiers, frontierLen)
				return nil
			},
		})
		c.Assert(ex.RunToCompletion(context.TODO()), check.IsNil)

		// Depth d of the tree holds 2^d vertices.
		c.Assert(frontiers, check.DeepEquals, []int{2, 4, 8, 16, 32, 64, 0})
		c.Assert(ex.Round(), check.Equals, 7)
		for v := 0; v < n; v++ {
			c.Assert(level[v], check.Equals, int32(depth(v)), check.Commentf("vertex %d, workers %d", v, workers))
		}
	}
}

func (s *engineTestSuite) TestRunRoundsKeepsPendingFrontier(c *check.C) {
	e, level := newLevelEngine(c, pathGraph(c, 6), 3)
	c.Assert(e.Seed(0), check.IsNil)

	ex := bsp.NewExecutor(e, bsp.ExecutorCallbacks{})
	c.Assert(ex.RunRounds(context.TODO(), 2), check.IsNil)
	c.Assert(ex.Round(), check.Equals, 2)
	c.Assert(e.FrontierLen(), check.Equals, 1)
	c.Assert(level[3], check.Equals, int32(-1))

	c.Assert(ex.RunToCompletion(context.TODO()), check.IsNil)
	c.Assert(ex.Round(), check.Equals, 6)
	c.Assert(level[5], check.Equals, int32(5))
}

func (s *engineTestSuite) TestShouldRunAnotherRoundStopsRun(c *check.C) {
	e, _ := newLevelEngine(c, pathGraph(c, 10), 2)
	c.Assert(e.Seed(0), check.IsNil)

	ex := bsp.NewExecutor(e, bsp.ExecutorCallbacks{
		ShouldRunAnotherRound: func(_ context.Context, _ *bsp.Engine, round, _ int) (bool, error) {
			return round < 3, nil
		},
	})
	c.Assert(ex.RunToCompletion(context.TODO()), check.IsNil)
	c.Assert(ex.Round(), check.Equals, 4)
}

func (s *engineTestSuite) TestExpandErrorIsReturned(c *check.C) {
	errBoom := errors.New("boom")
	e, err := bsp.NewEngine(bsp.EngineConfig{
		Graph:          pathGraph(c, 5),
		ComputeWorkers: 4,
		ExpandFn: func(_ int, v uint32, next bsp.Emitter) error {
			if v == 2 {
				return errBoom
			}
			return next.Emit(v + 1)
		},
	})
	c.Assert(err, check.IsNil)
	c.Assert(e.Seed(0), check.IsNil)

	err = bsp.NewExecutor(e, bsp.ExecutorCallbacks{}).RunToCompletion(context.TODO())
	c.Assert(errors.Is(err, errBoom), check.Equals, true)
	c.Assert(err, check.ErrorMatches, "expanding vertex 2 in round 2 failed: boom")
	c.Assert(e.FrontierLen(), check.Equals, 0)
}

func (s *engineTestSuite) TestFrontierOverflowIsReported(c *check.C) {
	e, err := bsp.NewEngine(bsp.EngineConfig{
		Graph:          pathGraph(c, 4),
		ComputeWorkers: 2,
		QueueFactory: func(int) queue.Queue[uint32] {
			return queue.NewLocked[uint32](1)
		},
		ExpandFn: func(_ int, v uint32, next bsp.Emitter) error {
			// Emitting the same vertex twice overflows a single slot queue.
			if err := next.Emit(v); err != nil {
				return err
			}
			return next.Emit(v)
		},
	})
	c.Assert(err, check.IsNil)
	c.Assert(e.Seed(0), check.IsNil)

	err = bsp.NewExecutor(e, bsp.ExecutorCallbacks{}).RunToCompletion(context.TODO())
	c.Assert(errors.Is(err, queue.ErrFull), check.Equals, true)
}

func (s *engineTestSuite) TestContextCancellationStopsAtRoundBoundary(c *check.C) {
	e, _ := newLevelEngine(c, pathGraph(c, 10), 4)
	c.Assert(e.Seed(0), check.IsNil)

	ctx, cancelFn := context.WithCancel(context.Background())
	defer cancelFn()

	ex := bsp.NewExecutor(e, bsp.ExecutorCallbacks{
		PostRound: func(_ context.Context, _ *bsp.Engine, round, _ int) error {
			if round == 1 {
				cancelFn()
			}
			return nil
		},
	})

	err := ex.RunToCompletion(ctx)
	c.Assert(errors.Is(err, context.Canceled), check.Equals, true)
	c.Assert(ex.Round(), check.Equals, 3)

	// An expired context is rejected before any worker starts.
	c.Assert(e.Seed(0), check.IsNil)
	c.Assert(ex.RunToCompletion(ctx), check.Equals, context.Canceled)
}

func (s *engineTestSuite) TestAggregators(c *check.C) {
	var (
		expanded int64
		e        *bsp.Engine
		err      error
	)

	visited := make([]int32, 101)
	visited[0] = 1
	e, err = bsp.NewEngine(bsp.EngineConfig{
		Graph:          starGraph(c, 100),
		ComputeWorkers: 4,
		ExpandFn: func(_ int, v uint32, next bsp.Emitter) error {
			atomic.AddInt64(&expanded, 1)
			g := e.Graph()
			e.Aggregator("edges").Aggregate(g.OutDegree(v))
			for i := 0; i < g.OutDegree(v); i++ {
				u := g.OutNeighbor(v, i)
				if atomic.CompareAndSwapInt32(&visited[u], 0, 1) {
					if err := next.Emit(u); err != nil {
						return err
					}
				}
			}
			return nil
		},
	})
	c.Assert(err, check.IsNil)
	e.RegisterAggregator("edges", new(aggregator.IntAccumulator))
	c.Assert(e.Aggregators(), check.HasLen, 1)
	c.Assert(e.Aggregator("missing"), check.IsNil)

	var (
		mu     sync.Mutex
		deltas []int
	)
	c.Assert(e.Seed(0), check.IsNil)
	err = bsp.NewExecutor(e, bsp.ExecutorCallbacks{
		PostRound: func(_ context.Context, e *bsp.Engine, _, _ int) error {
			mu.Lock()
			deltas = append(deltas, e.Aggregator("edges").Delta().(int))
			mu.Unlock()
			return nil
		},
	}).RunToCompletion(context.TODO())
	c.Assert(err, check.IsNil)

	c.Assert(atomic.LoadInt64(&expanded), check.Equals, int64(101))
	c.Assert(deltas, check.DeepEquals, []int{100, 0})
	c.Assert(e.Aggregator("edges").Get(), check.Equals, 100)
}

// newLevelEngine returns an engine whose expand function records the round
// in which each vertex was discovered. Undiscovered vertices hold -1.
func newLevelEngine(c *check.C, g graph.Graph, workers int) (*bsp.Engine, []int32) {
	level := make([]int32, g.NumVertices())
	for i := range level {
		level[i] = -1
	}
	if len(level) > 0 {
		level[0] = 0
	}

	e, err := bsp.NewEngine(bsp.EngineConfig{
		Graph:          g,
		ComputeWorkers: workers,
		ExpandFn: func(round int, v uint32, next bsp.Emitter) error {
			for i := 0; i < g.OutDegree(v); i++ {
				u := g.OutNeighbor(v, i)
				if atomic.CompareAndSwapInt32(&level[u], -1, int32(round+1)) {
					if err := next.Emit(u); err != nil {
						return err
					}
				}
			}
			return nil
		},
	})
	c.Assert(err, check.IsNil)

	return e, level
}

func pathGraph(c *check.C, n int) *graph.CSR {
	b := graph.NewBuilder(n)
	for v := 0; v+1 < n; v++ {
		b.AddEdge(uint32(v), uint32(v+1))
	}
	g, err := b.Build()
	c.Assert(err, check.IsNil)

	return g
}

func starGraph(c *check.C, leaves int) *graph.CSR {
	b := graph.NewBuilder(leaves + 1)
	for v := 1; v <= leaves; v++ {
		b.AddEdge(0, uint32(v))
	}
	g, err := b.Build()
	c.Assert(err, check.IsNil)

	return g
}

func depth(v int) int {
	d := 0
	for v > 0 {
		v = (v - 1) / 2
		d++
	}
	return d
}
