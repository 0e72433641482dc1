package bsp

// Aggregator is implemented by types that provide concurrent-safe aggregation
// primitives (e.g. counters, min/max, topN).
type Aggregator interface {
	// Type returns the type of this aggregator.
	Type() string

	// Set the aggregator to the specified value.
	Set(val interface{})

	// Get the current aggregator value.
	Get() interface{}

	// Aggregate updates the aggregator's value based on the provided value.
	Aggregate(val interface{})

	// Delta returns the change in the aggregator's value since the last
	// call to Delta. Round callbacks use it to obtain per-round figures
	// from counters that accumulate over a whole run.
	Delta() interface{}
}

// Emitter is implemented by the frontier that collects the vertices
// discovered during a round.
type Emitter interface {
	// Emit queues v for expansion in the following round.
	Emit(v uint32) error
}

// ExpandFunc is invoked once for each vertex drained from the current
// frontier. Newly discovered vertices must be passed to next. ExpandFunc is
// called concurrently by all workers and must be safe for concurrent use.
type ExpandFunc func(round int, v uint32, next Emitter) error
