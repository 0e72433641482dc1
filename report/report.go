/*
	report package renders shortest path results and run summaries in the
	plain-text layout printed by the hopsearch driver.
*/

package report

import (
	"bufio"
	"fmt"
	"io"

	"github.com/dustin/go-humanize"

	"github.com/mycok/hopsearch/shortestpath"
)

const resultHeader = "Vertex_id,    min_distance,     predecessor"

// WriteResult writes one line per vertex, in vertex id order, with its
// distance from the source and its predecessor on a shortest path.
// Vertices that cannot be reached are reported as having no path.
func WriteResult(w io.Writer, res *shortestpath.Result) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, resultHeader)
	for v, d := range res.Dist {
		if d == shortestpath.Unvisited {
			fmt.Fprintf(bw, "%d,    No path,    No previous vertex\n", v)
			continue
		}

		fmt.Fprintf(bw, "%d,   %d,   %d\n", v, d, res.Pred[v])
	}
	fmt.Fprintln(bw)

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write result: %w", err)
	}

	return nil
}

// SummaryInfo describes a completed run.
type SummaryInfo struct {
	// Location of the graph that was searched.
	GraphURI string

	// Number of vertices and edges of the graph.
	Vertices int
	Edges    int

	Source     uint32
	Sequential bool
	Stats      shortestpath.Stats
}

// WriteSummary writes a human-readable summary of a run.
func WriteSummary(w io.Writer, info SummaryInfo) error {
	bw := bufio.NewWriter(w)

	mode := "parallel"
	if info.Sequential {
		mode = "sequential"
	}

	fmt.Fprintf(bw, "Graph being tested: %s\n", info.GraphURI)
	fmt.Fprintf(bw, "Graph size: %s vertices, %s edges\n",
		humanize.Comma(int64(info.Vertices)), humanize.Comma(int64(info.Edges)))
	fmt.Fprintf(bw, "Mode: %s\n", mode)
	fmt.Fprintf(bw, "Number of threads: %d\n", info.Stats.Workers)
	fmt.Fprintf(bw, "Source vertex: %d\n", info.Source)
	fmt.Fprintf(bw, "Rounds: %d\n", info.Stats.Rounds)
	fmt.Fprintf(bw, "Reached vertices: %s\n", humanize.Comma(int64(info.Stats.Reached)))
	fmt.Fprintf(bw, "Edges scanned: %s\n", humanize.Comma(int64(info.Stats.EdgesScanned)))
	fmt.Fprintf(bw, "Total time taken: %g\n", info.Stats.Elapsed.Seconds())
	fmt.Fprintln(bw)

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}

	return nil
}
