package bsp

import "context"

// ExecutorCallbacks encapsulates a series of callbacks that are invoked by an
// Executor instance on an engine. All callbacks are optional and will be
// ignored if not specified. Callbacks run on the leader worker while every
// other worker is parked at the round barrier.
type ExecutorCallbacks struct {
	// PostRound, if defined, is invoked after every round. frontierLen is
	// the number of vertices discovered for the following round.
	PostRound func(ctx context.Context, e *Engine, round, frontierLen int) error

	// ShouldRunAnotherRound, if defined, is invoked after PostRound when the
	// next frontier is not empty. Returning false terminates the run.
	ShouldRunAnotherRound func(
		ctx context.Context, e *Engine, round, frontierLen int,
	) (bool, error)
}

func initWithDefaultCallbacks(cb *ExecutorCallbacks) {
	if cb.PostRound == nil {
		cb.PostRound = func(context.Context, *Engine, int, int) error {
			return nil
		}
	}

	if cb.ShouldRunAnotherRound == nil {
		cb.ShouldRunAnotherRound = func(context.Context, *Engine, int, int) (bool, error) {
			return true, nil
		}
	}
}

// ExecutorFactory is a function that creates new Executor instances.
type ExecutorFactory func(e *Engine, cbs ExecutorCallbacks) *Executor

// Executor serves as an orchestration layer for executing rounds until the
// frontier drains, an error occurs or an exit condition is met.
type Executor struct {
	e   *Engine
	cbs ExecutorCallbacks
}

// NewExecutor initializes and returns an Executor instance.
func NewExecutor(e *Engine, cbs ExecutorCallbacks) *Executor {
	initWithDefaultCallbacks(&cbs)

	return &Executor{
		e:   e,
		cbs: cbs,
	}
}

// Engine returns the engine instance associated with this executor.
func (ex *Executor) Engine() *Engine {
	return ex.e
}

// Round returns the number of rounds completed by the engine.
func (ex *Executor) Round() int {
	return ex.e.Round()
}

// RunToCompletion runs rounds until the frontier drains, the context
// expires, an error occurs or ShouldRunAnotherRound returns false.
func (ex *Executor) RunToCompletion(ctx context.Context) error {
	return ex.e.run(ctx, ex.cbs, -1)
}

// RunRounds executes at most numOfRounds rounds. Vertices discovered by the
// last executed round stay queued for a later run.
func (ex *Executor) RunRounds(ctx context.Context, numOfRounds int) error {
	return ex.e.run(ctx, ex.cbs, numOfRounds)
}

func ensureContextNotExpired(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil
	}
}
