package shortestpath

import (
	"io"

	"github.com/hashicorp/go-multierror"
	"github.com/juju/clock"
	"github.com/sirupsen/logrus"

	"github.com/mycok/hopsearch/bsp"
	"github.com/mycok/hopsearch/bsp/queue"
)

// Config encapsulates the options for creating shortest path calculators.
type Config struct {
	// The number of workers that expand each frontier in parallel. It must
	// be at least 1.
	Workers int

	// QueueFactory creates the frontier queues. If not specified, lock-free
	// bounded queues will be used.
	QueueFactory queue.Factory[uint32]

	// A clock instance for measuring the duration of the parallel phase. If
	// not specified, the default wall-clock will be used instead.
	Clock clock.Clock

	// Metrics, if defined, receives traversal statistics.
	Metrics *Metrics

	// The logger to use. If not defined an output-discarding logger will
	// be used instead.
	Logger *logrus.Entry
}

func (cfg *Config) validate() error {
	var err error

	if cfg.Workers <= 0 {
		err = multierror.Append(err, bsp.ErrInvalidWorkerCount)
	}

	if cfg.QueueFactory == nil {
		cfg.QueueFactory = queue.BoundedFactory[uint32]
	}

	if cfg.Clock == nil {
		cfg.Clock = clock.WallClock
	}

	if cfg.Logger == nil {
		cfg.Logger = logrus.NewEntry(&logrus.Logger{Out: io.Discard})
	}

	return err
}
