/*
	shortestpath package computes single-source shortest paths by hop count
	over unweighted directed graphs using a layer-synchronous parallel
	breadth-first search.
*/

package shortestpath

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync/atomic"

	"github.com/sirupsen/logrus"

	"github.com/mycok/hopsearch/bsp"
	"github.com/mycok/hopsearch/bsp/aggregator"
	"github.com/mycok/hopsearch/graph"
)

// Unvisited is the distance and predecessor value of vertices that cannot
// be reached from the source.
const Unvisited = math.MaxUint32

const edgesScannedAggr = "edges_scanned"

var (
	// ErrInvalidSource is returned when the source vertex is not part of
	// the graph.
	ErrInvalidSource = errors.New("source vertex is not part of the graph")

	// ErrArrayLength is returned when the distance or predecessor array
	// does not have one entry per graph vertex.
	ErrArrayLength = errors.New("distance and predecessor arrays must have one entry per vertex")
)

// Calculator computes hop-count shortest paths from a single source vertex
// to all other vertices of an immutable graph. A Calculator can be reused
// for any number of sources but must not run concurrent calculations.
type Calculator struct {
	g               graph.Graph
	n               int
	cfg             Config
	engine          *bsp.Engine
	executorFactory bsp.ExecutorFactory
	edgesScanned    bsp.Aggregator

	// Arrays of the calculation in progress.
	dist    []uint32
	pred    []uint32
	reached int
}

// NewCalculator returns a new shortest path calculator for g.
func NewCalculator(g graph.Graph, cfg Config) (*Calculator, error) {
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("shortest path calculator config validation failed: %w", err)
	}

	c := &Calculator{
		g:               g,
		cfg:             cfg,
		executorFactory: bsp.NewExecutor,
		edgesScanned:    new(aggregator.IntAccumulator),
	}

	engine, err := bsp.NewEngine(bsp.EngineConfig{
		Graph:          g,
		QueueFactory:   cfg.QueueFactory,
		ExpandFn:       c.expand,
		ComputeWorkers: cfg.Workers,
		Logger:         cfg.Logger,
	})
	if err != nil {
		return nil, err
	}

	engine.RegisterAggregator(edgesScannedAggr, c.edgesScanned)
	c.engine = engine
	c.n = g.NumVertices()

	return c, nil
}

// SetExecutorFactory configures the calculator to use a custom executor
// factory when a calculation is started.
func (c *Calculator) SetExecutorFactory(factory bsp.ExecutorFactory) {
	c.executorFactory = factory
}

// Graph returns the graph associated with the calculator.
func (c *Calculator) Graph() graph.Graph {
	return c.g
}

// NewArrays allocates distance and predecessor arrays for n vertices with
// every entry set to Unvisited.
func NewArrays(n int) (dist, pred []uint32) {
	dist = make([]uint32, n)
	pred = make([]uint32, n)
	for i := 0; i < n; i++ {
		dist[i] = Unvisited
		pred[i] = Unvisited
	}

	return dist, pred
}

// CalculateShortestPaths finds the hop-count distance and a predecessor on
// a shortest path from src to every vertex of the graph.
func (c *Calculator) CalculateShortestPaths(ctx context.Context, src uint32) (*Result, error) {
	dist, pred := NewArrays(c.n)

	stats, err := c.CalculateInto(ctx, src, dist, pred)
	if err != nil {
		return nil, err
	}

	return &Result{Source: src, Dist: dist, Pred: pred, Stats: stats}, nil
}

// CalculateInto runs the calculation using caller-provided arrays that must
// be initialized to Unvisited (see NewArrays). On success, every vertex
// reachable from src holds its distance and predecessor; every other vertex
// keeps the Unvisited sentinel. Only the parallel phase is timed.
func (c *Calculator) CalculateInto(ctx context.Context, src uint32, dist, pred []uint32) (Stats, error) {
	if int(src) >= c.n {
		return Stats{}, fmt.Errorf("source %d (n=%d): %w", src, c.n, ErrInvalidSource)
	}

	if len(dist) != c.n || len(pred) != c.n {
		return Stats{}, fmt.Errorf(
			"got %d distances and %d predecessors for %d vertices: %w",
			len(dist), len(pred), c.n, ErrArrayLength,
		)
	}

	c.engine.Reset()
	c.edgesScanned.Set(0)
	c.dist, c.pred, c.reached = dist, pred, 1
	defer func() { c.dist, c.pred = nil, nil }()

	dist[src] = 0
	pred[src] = src
	if err := c.engine.Seed(src); err != nil {
		return Stats{}, err
	}

	exec := c.executorFactory(c.engine, bsp.ExecutorCallbacks{
		PostRound: c.observeRound,
	})

	startedAt := c.cfg.Clock.Now()
	err := exec.RunToCompletion(ctx)
	stats := Stats{
		Workers:      c.cfg.Workers,
		Rounds:       exec.Round(),
		Reached:      c.reached,
		EdgesScanned: c.edgesScanned.Get().(int),
		Elapsed:      c.cfg.Clock.Now().Sub(startedAt),
	}

	c.cfg.Metrics.observeTraversal(modeParallel, stats, err)
	if err != nil {
		return stats, fmt.Errorf("calculate shortest paths from %d: %w", src, err)
	}

	c.cfg.Logger.WithFields(logrus.Fields{
		"source":        src,
		"workers":       stats.Workers,
		"rounds":        stats.Rounds,
		"reached":       stats.Reached,
		"edges_scanned": stats.EdgesScanned,
		"elapsed":       stats.Elapsed,
	}).Info("shortest path calculation completed")

	return stats, nil
}

// observeRound runs on the leader worker after every round.
func (c *Calculator) observeRound(_ context.Context, _ *bsp.Engine, _, frontierLen int) error {
	c.reached += frontierLen
	c.cfg.Metrics.observeRound(frontierLen, c.edgesScanned.Delta().(int))

	return nil
}

// expand visits the out-neighbors of v, which was discovered in round, and
// claims every unvisited one for round+1. A vertex is claimed by atomically
// swapping its distance from Unvisited, so only one worker ever records its
// predecessor and queues it.
func (c *Calculator) expand(round int, v uint32, next bsp.Emitter) error {
	deg := c.g.OutDegree(v)
	if deg == 0 {
		return nil
	}

	c.edgesScanned.Aggregate(deg)
	d := uint32(round + 1)

	for i := 0; i < deg; i++ {
		u := c.g.OutNeighbor(v, i)
		if int(u) >= c.n {
			return fmt.Errorf("edge %d -> %d (n=%d): %w", v, u, c.n, graph.ErrVertexOutOfRange)
		}

		if atomic.LoadUint32(&c.dist[u]) != Unvisited ||
			!atomic.CompareAndSwapUint32(&c.dist[u], Unvisited, d) {
			continue
		}

		c.pred[u] = v
		if err := next.Emit(u); err != nil {
			return err
		}
	}

	return nil
}
