package shortestpath

import (
	"fmt"

	"github.com/mycok/hopsearch/graph"
)

// Sequential computes hop-count shortest paths from src on a single
// goroutine. dist and pred must be initialized to Unvisited. It serves as a
// correctness baseline for the parallel calculator.
func Sequential(g graph.Graph, src uint32, dist, pred []uint32) error {
	n := g.NumVertices()
	if int(src) >= n {
		return fmt.Errorf("source %d (n=%d): %w", src, n, ErrInvalidSource)
	}

	if len(dist) != n || len(pred) != n {
		return fmt.Errorf(
			"got %d distances and %d predecessors for %d vertices: %w",
			len(dist), len(pred), n, ErrArrayLength,
		)
	}

	dist[src] = 0
	pred[src] = src

	fifo := make([]uint32, 0, n)
	fifo = append(fifo, src)

	for head := 0; head < len(fifo); head++ {
		v := fifo[head]
		for i, deg := 0, g.OutDegree(v); i < deg; i++ {
			u := g.OutNeighbor(v, i)
			if int(u) >= n {
				return fmt.Errorf("edge %d -> %d (n=%d): %w", v, u, n, graph.ErrVertexOutOfRange)
			}

			if dist[u] == Unvisited {
				dist[u] = dist[v] + 1
				pred[u] = v
				fifo = append(fifo, u)
			}
		}
	}

	return nil
}

// CalculateSequential runs Sequential on the calculator's graph, timing it
// with the configured clock and reporting it to the configured metrics.
func (c *Calculator) CalculateSequential(src uint32) (*Result, error) {
	dist, pred := NewArrays(c.n)

	startedAt := c.cfg.Clock.Now()
	err := Sequential(c.g, src, dist, pred)
	elapsed := c.cfg.Clock.Now().Sub(startedAt)

	res := &Result{Source: src, Dist: dist, Pred: pred}
	res.Stats = Stats{
		Workers:      1,
		Rounds:       int(res.Eccentricity()) + 1,
		Reached:      res.NumReachable(),
		EdgesScanned: scannedEdges(c.g, dist),
		Elapsed:      elapsed,
	}

	c.cfg.Metrics.observeTraversal(modeSequential, res.Stats, err)
	if err != nil {
		return nil, err
	}

	return res, nil
}

func scannedEdges(g graph.Graph, dist []uint32) int {
	var total int
	for v, d := range dist {
		if d != Unvisited {
			total += g.OutDegree(uint32(v))
		}
	}

	return total
}
