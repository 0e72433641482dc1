package bsp

import (
	"errors"
	"io"

	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"

	"github.com/mycok/hopsearch/bsp/queue"
	"github.com/mycok/hopsearch/graph"
)

// ErrInvalidWorkerCount is returned when an engine is configured with less
// than one compute worker.
var ErrInvalidWorkerCount = errors.New("compute workers must be > 0")

// EngineConfig encapsulates the configuration options for creating engines.
type EngineConfig struct {
	// Graph is the read-only graph traversed by the engine. It is required.
	Graph graph.Graph

	// QueueFactory is used to create the two frontier queues. If not
	// specified, lock-free bounded queues will be used.
	QueueFactory queue.Factory[uint32]

	// ExpandFn is invoked for every vertex drained from the current
	// frontier. It is required.
	ExpandFn ExpandFunc

	// ComputeWorkers specifies the number of workers that drain the
	// frontier in parallel. Worker 0 acts as the round leader.
	ComputeWorkers int

	// The logger to use. If not defined an output-discarding logger will
	// be used instead.
	Logger *logrus.Entry
}

// Validate checks whether an engine configuration is valid and sets the
// default values if required.
func (c *EngineConfig) Validate() error {
	var err error

	if c.Graph == nil {
		err = multierror.Append(err, errors.New("graph not provided"))
	}

	if c.ExpandFn == nil {
		err = multierror.Append(err, errors.New("expand function not provided"))
	}

	if c.ComputeWorkers <= 0 {
		err = multierror.Append(err, ErrInvalidWorkerCount)
	}

	if c.QueueFactory == nil {
		c.QueueFactory = queue.BoundedFactory[uint32]
	}

	if c.Logger == nil {
		c.Logger = logrus.NewEntry(&logrus.Logger{Out: io.Discard})
	}

	return err
}
