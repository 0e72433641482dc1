package report_test

import (
	"bytes"
	"errors"
	"testing"
	"time"

	check "gopkg.in/check.v1"

	"github.com/mycok/hopsearch/report"
	"github.com/mycok/hopsearch/shortestpath"
)

var _ = check.Suite(new(reportTestSuite))

func Test(t *testing.T) {
	check.TestingT(t)
}

type reportTestSuite struct{}

func (s *reportTestSuite) TestWriteResult(c *check.C) {
	res := &shortestpath.Result{
		Source: 0,
		Dist:   []uint32{0, 1, shortestpath.Unvisited, 2},
		Pred:   []uint32{0, 0, shortestpath.Unvisited, 1},
	}

	var buf bytes.Buffer
	c.Assert(report.WriteResult(&buf, res), check.IsNil)

	exp := "Vertex_id,    min_distance,     predecessor\n" +
		"0,   0,   0\n" +
		"1,   1,   0\n" +
		"2,    No path,    No previous vertex\n" +
		"3,   2,   1\n" +
		"\n"
	c.Assert(buf.String(), check.Equals, exp)
}

func (s *reportTestSuite) TestWriteSummary(c *check.C) {
	var buf bytes.Buffer
	err := report.WriteSummary(&buf, report.SummaryInfo{
		GraphURI: "file://graphs/road.bin",
		Vertices: 1234567,
		Edges:    9876543,
		Source:   42,
		Stats: shortestpath.Stats{
			Workers:      8,
			Rounds:       17,
			Reached:      1200000,
			EdgesScanned: 9000000,
			Elapsed:      1500 * time.Millisecond,
		},
	})
	c.Assert(err, check.IsNil)

	exp := "Graph being tested: file://graphs/road.bin\n" +
		"Graph size: 1,234,567 vertices, 9,876,543 edges\n" +
		"Mode: parallel\n" +
		"Number of threads: 8\n" +
		"Source vertex: 42\n" +
		"Rounds: 17\n" +
		"Reached vertices: 1,200,000\n" +
		"Edges scanned: 9,000,000\n" +
		"Total time taken: 1.5\n" +
		"\n"
	c.Assert(buf.String(), check.Equals, exp)
}

func (s *reportTestSuite) TestWriteErrorsAreReturned(c *check.C) {
	res := &shortestpath.Result{Dist: []uint32{0}, Pred: []uint32{0}}

	err := report.WriteResult(failingWriter{}, res)
	c.Assert(errors.Is(err, errWriteFailed), check.Equals, true)

	err = report.WriteSummary(failingWriter{}, report.SummaryInfo{Sequential: true})
	c.Assert(errors.Is(err, errWriteFailed), check.Equals, true)
}

var errWriteFailed = errors.New("write failed")

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errWriteFailed }
