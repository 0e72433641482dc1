package graphio

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mycok/hopsearch/graph"
)

// Format identifies an on-disk graph encoding.
type Format string

// Supported graph formats.
const (
	FormatAuto     Format = "auto"
	FormatBinary   Format = "bin"
	FormatEdgeList Format = "edgelist"
)

// FormatFromPath infers the graph format from a file extension. Files with
// an unknown extension are assumed to be binary.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt", ".el", ".edges", ".edgelist":
		return FormatEdgeList
	default:
		return FormatBinary
	}
}

// Open loads the graph stored at path using the specified format.
func Open(path string, format Format) (*graph.CSR, error) {
	if format == "" || format == FormatAuto {
		format = FormatFromPath(path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	var g *graph.CSR
	switch format {
	case FormatBinary:
		var info os.FileInfo
		if info, err = f.Stat(); err != nil {
			return nil, fmt.Errorf("stat %s: %w", path, err)
		}
		g, err = ReadBinary(io.NewSectionReader(f, 0, info.Size()))
	case FormatEdgeList:
		g, err = ReadEdgeList(f)
	default:
		return nil, fmt.Errorf("unsupported graph format %q", format)
	}

	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}

	return g, nil
}
