package shortestpath

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrUnknownVertex is returned when a path is requested for a vertex
	// that is not part of the graph.
	ErrUnknownVertex = errors.New("unknown vertex")

	// ErrUnreachable is returned when a path is requested for a vertex that
	// cannot be reached from the source.
	ErrUnreachable = errors.New("vertex is not reachable from the source")
)

// Stats describes a completed calculation.
type Stats struct {
	// Number of workers that took part in the calculation.
	Workers int

	// Number of rounds executed. The last round is the one whose frontier
	// produced no new vertices, so a traversal from a source with
	// eccentricity k runs k+1 rounds.
	Rounds int

	// Number of vertices reached from the source, the source included.
	Reached int

	// Number of out-edges examined.
	EdgesScanned int

	// Duration of the traversal itself, excluding setup and reporting.
	Elapsed time.Duration
}

// Result holds the outcome of a shortest path calculation.
type Result struct {
	Source uint32
	Dist   []uint32
	Pred   []uint32
	Stats  Stats
}

// NumVertices returns the number of vertices covered by the result.
func (r *Result) NumVertices() int { return len(r.Dist) }

// Reachable returns true if v can be reached from the source.
func (r *Result) Reachable(v uint32) bool {
	return int(v) < len(r.Dist) && r.Dist[v] != Unvisited
}

// NumReachable returns the number of vertices reachable from the source,
// the source included.
func (r *Result) NumReachable() int {
	var count int
	for _, d := range r.Dist {
		if d != Unvisited {
			count++
		}
	}

	return count
}

// Eccentricity returns the largest finite distance from the source.
func (r *Result) Eccentricity() uint32 {
	var ecc uint32
	for _, d := range r.Dist {
		if d != Unvisited && d > ecc {
			ecc = d
		}
	}

	return ecc
}

// ShortestPathTo returns the vertices of a shortest path from the source to
// dst, both included, together with its length in hops.
func (r *Result) ShortestPathTo(dst uint32) ([]uint32, uint32, error) {
	if int(dst) >= len(r.Dist) {
		return nil, 0, fmt.Errorf("path to %d: %w", dst, ErrUnknownVertex)
	}

	if r.Dist[dst] == Unvisited {
		return nil, 0, fmt.Errorf("path to %d: %w", dst, ErrUnreachable)
	}

	path := make([]uint32, 0, r.Dist[dst]+1)
	for v := dst; v != r.Source; v = r.Pred[v] {
		path = append(path, v)
	}

	path = append(path, r.Source)

	// Reverse in place to get path from src->dst
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	return path, r.Dist[dst], nil
}
