/*
	graphio package reads and writes graphs in the on-disk formats accepted
	by the hopsearch CLI.
*/

package graphio

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/mycok/hopsearch/graph"
)

// ErrSizeMismatch is returned when the size recorded in a binary graph
// header does not match the vertex and edge counts.
var ErrSizeMismatch = errors.New("binary graph size mismatch")

const (
	headerWords = 3

	// Offsets and edges are read in chunks of this many words so that
	// memory only grows with the data actually present in the input.
	readChunk = 1 << 16

	maxBinaryEdges = (math.MaxUint64 - headerWords*8) / 8
)

// binarySize returns the number of bytes occupied by a binary graph with n
// vertices and m edges.
func binarySize(n, m uint64) uint64 {
	return (n+1)*8 + m*4 + headerWords*8
}

// ReadBinary loads a graph stored in the binary CSR format:
//
//	n       uint64
//	m       uint64
//	size    uint64              total file size in bytes
//	offsets [n+1]uint64
//	edges   [m]uint32
//
// All values are little endian. If r reports its total length through a
// Size() int64 method (as *io.SectionReader, *bytes.Reader and
// *strings.Reader do), the header size must match it.
func ReadBinary(r io.Reader) (*graph.CSR, error) {
	br := bufio.NewReader(r)

	var header [headerWords]uint64
	if err := binary.Read(br, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	n, m, size := header[0], header[1], header[2]
	if n > math.MaxUint32 || m > maxBinaryEdges {
		return nil, fmt.Errorf("header declares %d vertices and %d edges: %w", n, m, ErrSizeMismatch)
	}

	if expected := binarySize(n, m); size != expected {
		return nil, fmt.Errorf("got %d, expected %d: %w", size, expected, ErrSizeMismatch)
	}

	if sr, ok := r.(interface{ Size() int64 }); ok && uint64(sr.Size()) != size {
		return nil, fmt.Errorf("header size %d, input size %d: %w", size, sr.Size(), ErrSizeMismatch)
	}

	offsets, err := readWords[uint64](br, n+1)
	if err != nil {
		return nil, fmt.Errorf("read offsets: %w", err)
	}

	edges, err := readWords[uint32](br, m)
	if err != nil {
		return nil, fmt.Errorf("read edges: %w", err)
	}

	return graph.FromCSR(offsets, edges)
}

func readWords[T uint32 | uint64](r io.Reader, count uint64) ([]T, error) {
	words := make([]T, 0, min(count, readChunk))
	chunk := make([]T, min(count, readChunk))

	for remaining := count; remaining > 0; {
		buf := chunk[:min(remaining, readChunk)]
		if err := binary.Read(r, binary.LittleEndian, buf); err != nil {
			return nil, err
		}

		words = append(words, buf...)
		remaining -= uint64(len(buf))
	}

	return words, nil
}

// WriteBinary serializes g using the format understood by ReadBinary.
func WriteBinary(w io.Writer, g *graph.CSR) error {
	bw := bufio.NewWriter(w)

	n, m := uint64(g.NumVertices()), uint64(g.NumEdges())
	header := [headerWords]uint64{n, m, binarySize(n, m)}

	for _, data := range []interface{}{header, g.Offsets(), g.Edges()} {
		if err := binary.Write(bw, binary.LittleEndian, data); err != nil {
			return fmt.Errorf("write binary graph: %w", err)
		}
	}

	return bw.Flush()
}
