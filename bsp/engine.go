/*
	bsp package implements a layer-synchronous frontier engine: a fixed pool
	of workers drains the current frontier in parallel, rendezvous at a
	barrier, swaps frontier roles and repeats until no vertex is left.
*/

package bsp

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/mycok/hopsearch/bsp/barrier"
	"github.com/mycok/hopsearch/bsp/queue"
	"github.com/mycok/hopsearch/graph"
)

// ErrInvalidSeed is returned when a seed vertex is not part of the graph.
var ErrInvalidSeed = errors.New("seed vertex is not part of the graph")

// Engine runs ExpandFunc over the frontiers of a graph one round at a time.
type Engine struct {
	g        graph.Graph
	expandFn ExpandFunc
	workers  int
	logger   *logrus.Entry

	// frontiers holds the two frontier queues; cur is the index of the one
	// drained by the next round and 1-cur the one it fills.
	frontiers [2]queue.Queue[uint32]
	emitters  [2]Emitter
	cur       int
	round     int

	barrier     *barrier.Barrier
	aggregators map[string]Aggregator

	// Per-run state shared by the workers.
	done    int32
	errChan chan error
	runErr  error
}

// NewEngine creates a new Engine instance using the provided configuration.
// Both frontier queues are sized to the number of graph vertices.
func NewEngine(cfg EngineConfig) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("engine config validation failed: %w", err)
	}

	b, err := barrier.New(cfg.ComputeWorkers)
	if err != nil {
		return nil, err
	}

	capacity := cfg.Graph.NumVertices()
	if capacity < 1 {
		capacity = 1
	}

	e := &Engine{
		g:           cfg.Graph,
		expandFn:    cfg.ExpandFn,
		workers:     cfg.ComputeWorkers,
		logger:      cfg.Logger,
		barrier:     b,
		aggregators: make(map[string]Aggregator),
		// A buffered channel lets the first failing worker record its error
		// without blocking; later errors are dropped.
		errChan: make(chan error, 1),
	}

	for i := range e.frontiers {
		e.frontiers[i] = cfg.QueueFactory(capacity)
		e.emitters[i] = frontierEmitter{q: e.frontiers[i]}
	}

	return e, nil
}

// Graph returns the graph traversed by the engine.
func (e *Engine) Graph() graph.Graph { return e.g }

// Workers returns the number of compute workers.
func (e *Engine) Workers() int { return e.workers }

// Round returns the number of rounds completed since the engine was created
// or last reset.
func (e *Engine) Round() int { return e.round }

// FrontierLen returns the number of vertices waiting to be expanded by the
// next round.
func (e *Engine) FrontierLen() int { return e.frontiers[e.cur].Len() }

// Seed queues v for expansion in the next round. Seed must not be called
// while the engine is running.
func (e *Engine) Seed(v uint32) error {
	if n := e.g.NumVertices(); int(v) >= n {
		return fmt.Errorf("seed %d (n=%d): %w", v, n, ErrInvalidSeed)
	}

	return e.emitters[e.cur].Emit(v)
}

// Reset discards any queued vertices and resets the round counter. The
// registered aggregators are kept.
func (e *Engine) Reset() {
	e.clearFrontiers()
	e.cur = 0
	e.round = 0
}

func (e *Engine) clearFrontiers() {
	for _, q := range e.frontiers {
		for _, ok := q.Dequeue(); ok; _, ok = q.Dequeue() {
		}
	}
}

// RegisterAggregator adds an aggregator with the specified name into the
// engine.
func (e *Engine) RegisterAggregator(name string, aggr Aggregator) {
	e.aggregators[name] = aggr
}

// Aggregator returns the aggregator with the specified name or nil if the
// aggregator does not exist.
func (e *Engine) Aggregator(name string) Aggregator {
	return e.aggregators[name]
}

// Aggregators returns a map of all currently registered aggregators.
func (e *Engine) Aggregators() map[string]Aggregator {
	return e.aggregators
}

type frontierEmitter struct {
	q queue.Queue[uint32]
}

func (f frontierEmitter) Emit(v uint32) error {
	if err := f.q.Enqueue(v); err != nil {
		return fmt.Errorf("emit vertex %d: %w", v, err)
	}

	return nil
}
