package graphio

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mycok/hopsearch/graph"
)

// ErrSyntax is returned for edge-list lines that cannot be parsed.
var ErrSyntax = errors.New("edge list syntax error")

// MaxVertices caps the vertex count of edge lists, whether declared by an
// "n" line or implied by the largest vertex ID. The CSR offsets are
// allocated up front, so this bounds the memory a single line can claim.
var MaxVertices = 1 << 30

// ReadEdgeList loads a graph from a text edge list. Each non-empty line holds
// a "src dst" pair; lines starting with '#' are ignored. An optional
// "n <count>" line fixes the vertex count, otherwise the count is derived
// from the largest vertex ID seen.
func ReadEdgeList(r io.Reader) (*graph.CSR, error) {
	var (
		sc      = bufio.NewScanner(r)
		lineNo  int
		n       = -1
		maxID   = -1
		srcList []uint32
		dstList []uint32
	)

	for sc.Scan() {
		lineNo++

		tok := strings.Fields(sc.Text())
		if len(tok) == 0 || strings.HasPrefix(tok[0], "#") {
			continue
		}

		if len(tok) != 2 {
			return nil, fmt.Errorf("line %d: expected 2 fields, got %d: %w", lineNo, len(tok), ErrSyntax)
		}

		if tok[0] == "n" {
			count, err := strconv.ParseUint(tok[1], 10, 32)
			if err != nil {
				return nil, fmt.Errorf("line %d: vertex count: %w", lineNo, ErrSyntax)
			}
			if count > uint64(MaxVertices) {
				return nil, fmt.Errorf(
					"line %d: vertex count %d exceeds %d: %w", lineNo, count, MaxVertices, ErrSyntax,
				)
			}
			n = int(count)

			continue
		}

		src, err := parseVertex(tok[0])
		if err != nil {
			return nil, fmt.Errorf("line %d: source: %w", lineNo, err)
		}

		dst, err := parseVertex(tok[1])
		if err != nil {
			return nil, fmt.Errorf("line %d: destination: %w", lineNo, err)
		}

		if int(src) > maxID {
			maxID = int(src)
		}
		if int(dst) > maxID {
			maxID = int(dst)
		}

		srcList = append(srcList, src)
		dstList = append(dstList, dst)
	}

	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read edge list: %w", err)
	}

	if n < 0 {
		if maxID >= MaxVertices {
			return nil, fmt.Errorf("vertex id %d exceeds %d vertices: %w", maxID, MaxVertices, ErrSyntax)
		}
		n = maxID + 1
	}

	b := graph.NewBuilder(n)
	for i := range srcList {
		b.AddEdge(srcList[i], dstList[i])
	}

	return b.Build()
}

func parseVertex(s string) (uint32, error) {
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%q: %w", s, ErrSyntax)
	}

	return uint32(v), nil
}
