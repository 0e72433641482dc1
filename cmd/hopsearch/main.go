package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/mycok/hopsearch/graph"
	"github.com/mycok/hopsearch/graph/graphio"
	"github.com/mycok/hopsearch/graph/store/cdb"
	"github.com/mycok/hopsearch/report"
	"github.com/mycok/hopsearch/shortestpath"
)

const appName = "hopsearch"

const (
	exitOK = iota
	exitFailure
	exitUsage
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	host, _ := os.Hostname()
	// Instantiate a root logger that will be passed to all components.
	rootLogger := logrus.New()
	rootLogger.SetOutput(stderr)
	logger := rootLogger.WithFields(logrus.Fields{
		"app":    appName,
		"run_id": uuid.New().String(),
		"host":   host,
	})

	cfg, err := loadConfig(args)
	if errors.Is(err, flag.ErrHelp) {
		return exitOK
	} else if err != nil {
		logger.WithField("err", err).Error("invalid configuration")

		return exitUsage
	}

	level, _ := logrus.ParseLevel(cfg.LogLevel)
	rootLogger.SetLevel(level)

	ctx, cancelFn := context.WithCancel(context.Background())
	defer cancelFn()

	// Stop the search at the next round boundary on SIGINT or SIGHUP.
	go func() {
		signalChan := make(chan os.Signal, 1)
		signal.Notify(signalChan, syscall.SIGINT, syscall.SIGHUP)
		defer signal.Stop(signalChan)

		select {
		case s := <-signalChan:
			logger.WithField("signal", s.String()).Info("cancelling search due to os signal")
			cancelFn()
		case <-ctx.Done():
		}
	}()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	metrics := shortestpath.NewMetrics(reg)

	if cfg.MetricsAddr != "" {
		srv := serveMetrics(cfg.MetricsAddr, reg, logger)
		defer func() { _ = srv.Close() }()
	}

	if err = search(ctx, cfg, metrics, logger, stdout); err != nil {
		logger.WithField("err", err).Error("search failed")

		return exitFailure
	}

	return exitOK
}

func search(
	ctx context.Context, cfg Config, metrics *shortestpath.Metrics,
	logger *logrus.Entry, out io.Writer,
) error {
	logger.Info("reading graph")
	g, graphURI, err := loadGraph(ctx, cfg, logger)
	if err != nil {
		return err
	}

	logger.WithFields(logrus.Fields{
		"vertices": g.NumVertices(),
		"edges":    g.NumEdges(),
	}).Info("created graph")

	calc, err := shortestpath.NewCalculator(g, shortestpath.Config{
		Workers: cfg.Threads,
		Metrics: metrics,
		Logger:  logger.WithField("component", "shortestpath"),
	})
	if err != nil {
		return err
	}

	src := uint32(cfg.Source)

	var res *shortestpath.Result
	if cfg.Sequential {
		res, err = calc.CalculateSequential(src)
	} else {
		res, err = calc.CalculateShortestPaths(ctx, src)
	}

	if err != nil {
		return err
	}

	if cfg.Display {
		if err = report.WriteResult(out, res); err != nil {
			return err
		}
	}

	return report.WriteSummary(out, report.SummaryInfo{
		GraphURI:   graphURI,
		Vertices:   g.NumVertices(),
		Edges:      g.NumEdges(),
		Source:     src,
		Sequential: cfg.Sequential,
		Stats:      res.Stats,
	})
}

// loadGraph returns the graph selected by cfg along with a printable
// description of where it was loaded from.
func loadGraph(ctx context.Context, cfg Config, logger *logrus.Entry) (*graph.CSR, string, error) {
	format := graphio.Format(cfg.Format)

	if cfg.Input != "" {
		g, err := graphio.Open(cfg.Input, format)

		return g, cfg.Input, err
	}

	uri, err := url.Parse(cfg.GraphURI)
	if err != nil {
		return nil, "", fmt.Errorf("failed to parse graph URI: %w", err)
	}

	switch uri.Scheme {
	case "file":
		logger.Info("using file graph store")
		path := uri.Host + uri.Path
		g, err := graphio.Open(path, format)

		return g, path, err
	case "postgresql":
		logger.Info("using CDB graph store")

		store, err := cdb.NewCockroachDBStore(cfg.GraphURI)
		if err != nil {
			return nil, "", err
		}
		defer func() { _ = store.Close() }()

		// Hide credentials from the summary.
		uri.User = nil
		g, err := store.LoadGraph(ctx)

		return g, uri.String(), err
	default:
		return nil, "", fmt.Errorf("unsupported graph URI scheme: %q", uri.Scheme)
	}
}

func serveMetrics(addr string, reg *prometheus.Registry, logger *logrus.Entry) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))

	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		logger.WithField("addr", addr).Info("serving metrics")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithField("err", err).Error("metrics server failed")
		}
	}()

	return srv
}
