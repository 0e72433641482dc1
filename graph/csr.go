package graph

import (
	"fmt"
	"sort"
)

// Static and compile-time check to ensure CSR implements Graph interface.
var _ Graph = (*CSR)(nil)

// CSR is an immutable directed graph stored in compressed sparse row form.
// The outgoing edges of vertex v are edges[offsets[v]:offsets[v+1]].
type CSR struct {
	offsets []uint64
	edges   []uint32
}

// FromCSR wraps the provided offsets and edges slices into a CSR graph after
// validating them. The slices are retained and must not be modified by the
// caller afterwards.
func FromCSR(offsets []uint64, edges []uint32) (*CSR, error) {
	if len(offsets) == 0 {
		return nil, fmt.Errorf("empty offsets: %w", ErrMalformedCSR)
	}

	n := len(offsets) - 1
	if offsets[0] != 0 || offsets[n] != uint64(len(edges)) {
		return nil, fmt.Errorf(
			"offsets span [%d, %d] but %d edges provided: %w",
			offsets[0], offsets[n], len(edges), ErrMalformedCSR,
		)
	}

	for v := 0; v < n; v++ {
		if offsets[v] > offsets[v+1] {
			return nil, fmt.Errorf("offsets decrease at vertex %d: %w", v, ErrMalformedCSR)
		}

		for _, u := range edges[offsets[v]:offsets[v+1]] {
			if int(u) >= n {
				return nil, vertexOutOfRange("edge", uint32(v), u, n)
			}
		}
	}

	return &CSR{offsets: offsets, edges: edges}, nil
}

// FromAdjacency builds a CSR graph from an adjacency list where adj[v] holds
// the out-neighbors of vertex v.
func FromAdjacency(adj [][]uint32) (*CSR, error) {
	b := NewBuilder(len(adj))
	for v, nbrs := range adj {
		for _, u := range nbrs {
			b.AddEdge(uint32(v), u)
		}
	}

	return b.Build()
}

// NumVertices returns the number of vertices in the graph.
func (g *CSR) NumVertices() int { return len(g.offsets) - 1 }

// NumEdges returns the number of directed edges in the graph.
func (g *CSR) NumEdges() int { return len(g.edges) }

// OutDegree returns the number of outgoing edges of vertex v.
func (g *CSR) OutDegree(v uint32) int {
	return int(g.offsets[v+1] - g.offsets[v])
}

// OutNeighbor returns the destination of the i-th outgoing edge of vertex v.
func (g *CSR) OutNeighbor(v uint32, i int) uint32 {
	return g.edges[g.offsets[v]+uint64(i)]
}

// Neighbors returns a read-only view of the out-neighbors of vertex v.
func (g *CSR) Neighbors(v uint32) []uint32 {
	return g.edges[g.offsets[v]:g.offsets[v+1]:g.offsets[v+1]]
}

// Offsets returns the CSR offsets slice. It must not be modified.
func (g *CSR) Offsets() []uint64 { return g.offsets }

// Edges returns the CSR edge slice. It must not be modified.
func (g *CSR) Edges() []uint32 { return g.edges }

type edge struct {
	src, dst uint32
}

// Builder accumulates directed edges and produces an immutable CSR graph.
// A Builder is not safe for concurrent use.
type Builder struct {
	n     int
	edges []edge
	err   error
}

// NewBuilder returns a Builder for a graph with n vertices.
func NewBuilder(n int) *Builder {
	return &Builder{n: n}
}

// AddEdge records a directed edge from src to dst. Out of range endpoints are
// reported by Build.
func (b *Builder) AddEdge(src, dst uint32) {
	if b.err != nil {
		return
	}

	if int(src) >= b.n || int(dst) >= b.n {
		b.err = vertexOutOfRange("add edge", src, dst, b.n)
		return
	}

	b.edges = append(b.edges, edge{src: src, dst: dst})
}

// Build returns the CSR graph for the edges added so far. Edges keep their
// insertion order within each source vertex.
func (b *Builder) Build() (*CSR, error) {
	if b.err != nil {
		return nil, b.err
	}

	sort.SliceStable(b.edges, func(i, j int) bool {
		return b.edges[i].src < b.edges[j].src
	})

	offsets := make([]uint64, b.n+1)
	edges := make([]uint32, len(b.edges))
	for i, e := range b.edges {
		offsets[e.src+1]++
		edges[i] = e.dst
	}

	for v := 0; v < b.n; v++ {
		offsets[v+1] += offsets[v]
	}

	return &CSR{offsets: offsets, edges: edges}, nil
}
