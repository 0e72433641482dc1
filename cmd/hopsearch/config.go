package main

import (
	"errors"
	"flag"
	"fmt"
	"math"
	"runtime"

	"github.com/hashicorp/go-multierror"
	"github.com/kelseyhightower/envconfig"
	"github.com/sirupsen/logrus"

	"github.com/mycok/hopsearch/graph/graphio"
)

const envPrefix = "HOPSEARCH"

// Config validation errors
var (
	ErrInvalidThreads = errors.New("threads must be at least 1")
	ErrInvalidSource  = errors.New("source must be a valid vertex id")
	ErrMissingGraph   = errors.New("a graph must be specified with -input or -graph-uri")
	ErrInvalidFormat  = errors.New("format must be auto, bin or edgelist")
	ErrInvalidLevel   = errors.New("log-level must be a valid logrus level")
)

// Config holds the driver settings. Environment variables prefixed with
// HOPSEARCH_ provide the defaults and command line flags override them.
type Config struct {
	Threads     int    `envconfig:"THREADS"`
	Source      uint64 `envconfig:"SOURCE" default:"0"`
	Input       string `envconfig:"INPUT"`
	GraphURI    string `envconfig:"GRAPH_URI"`
	Format      string `envconfig:"FORMAT" default:"auto"`
	Display     bool   `envconfig:"DISPLAY" default:"false"`
	Sequential  bool   `envconfig:"SEQUENTIAL" default:"false"`
	MetricsAddr string `envconfig:"METRICS_ADDR"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`
}

func loadConfig(args []string) (Config, error) {
	cfg := Config{Threads: runtime.NumCPU()}
	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to process environment: %w", err)
	}

	fs := flag.NewFlagSet(appName, flag.ContinueOnError)
	fs.IntVar(
		&cfg.Threads, "threads", cfg.Threads,
		"Number of workers expanding each frontier.[defaults to number of CPU's]",
	)
	fs.Uint64Var(&cfg.Source, "source", cfg.Source, "Id of the source vertex")
	fs.StringVar(&cfg.Input, "input", cfg.Input, "Path of the graph file to search")
	fs.StringVar(
		&cfg.GraphURI, "graph-uri", cfg.GraphURI,
		"URI of the graph to search, used when -input is empty."+
			" [supported URI's: file:///path/to/graph.bin, postgresql://user@host:26257/hopsearch?sslmode=disable]",
	)
	fs.StringVar(
		&cfg.Format, "format", cfg.Format,
		"Format of graph files. Supported values are 'auto', 'bin' and 'edgelist'",
	)
	fs.BoolVar(&cfg.Display, "display", cfg.Display, "Print the distance and predecessor of every vertex")
	fs.BoolVar(&cfg.Sequential, "sequential", cfg.Sequential, "Run the single-threaded baseline instead")
	fs.StringVar(
		&cfg.MetricsAddr, "metrics-addr", cfg.MetricsAddr,
		"Address to expose prometheus metrics on while the search runs (disabled if empty)",
	)
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")

	if err := fs.Parse(args); err != nil {
		return cfg, err
	}

	return cfg, cfg.validate()
}

func (cfg *Config) validate() error {
	var err error

	if cfg.Threads < 1 {
		err = multierror.Append(err, ErrInvalidThreads)
	}

	if cfg.Source >= math.MaxUint32 {
		err = multierror.Append(err, ErrInvalidSource)
	}

	if cfg.Input == "" && cfg.GraphURI == "" {
		err = multierror.Append(err, ErrMissingGraph)
	}

	switch graphio.Format(cfg.Format) {
	case graphio.FormatAuto, graphio.FormatBinary, graphio.FormatEdgeList:
	default:
		err = multierror.Append(err, ErrInvalidFormat)
	}

	if _, lvlErr := logrus.ParseLevel(cfg.LogLevel); lvlErr != nil {
		err = multierror.Append(err, ErrInvalidLevel)
	}

	return err
}
