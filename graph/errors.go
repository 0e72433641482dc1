package graph

import (
	"errors"
	"fmt"
)

var (
	// ErrVertexOutOfRange is returned when a vertex ID does not belong to
	// the [0, n) range of a graph.
	ErrVertexOutOfRange = errors.New("vertex id out of range")

	// ErrMalformedCSR is returned when CSR offsets are not monotonic or do
	// not match the number of edges.
	ErrMalformedCSR = errors.New("malformed CSR arrays")
)

func vertexOutOfRange(what string, src, dst uint32, n int) error {
	return fmt.Errorf("%s %d -> %d (n=%d): %w", what, src, dst, n, ErrVertexOutOfRange)
}
