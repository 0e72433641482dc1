/*
	graph package defines the read-only graph provider consumed by the
	traversal engine together with an immutable CSR implementation.
*/

package graph

//go:generate mockgen -package mocks -destination mocks/mock_graph.go github.com/mycok/hopsearch/graph Graph

// Graph should be implemented by directed graphs that can be traversed.
// Vertex IDs are dense integers in the [0, NumVertices) range and a Graph
// must not mutate while a traversal is in progress.
type Graph interface {
	// NumVertices returns the number of vertices in the graph.
	NumVertices() int

	// OutDegree returns the number of outgoing edges of vertex v.
	OutDegree(v uint32) int

	// OutNeighbor returns the destination of the i-th outgoing edge of
	// vertex v where i belongs to the [0, OutDegree(v)) range.
	OutNeighbor(v uint32, i int) uint32
}

// Validate checks that every neighbor reported by g resolves to a vertex
// that is part of g.
func Validate(g Graph) error {
	n := g.NumVertices()
	for v := 0; v < n; v++ {
		deg := g.OutDegree(uint32(v))
		for i := 0; i < deg; i++ {
			if u := g.OutNeighbor(uint32(v), i); int(u) >= n {
				return vertexOutOfRange("edge", uint32(v), u, n)
			}
		}
	}

	return nil
}
