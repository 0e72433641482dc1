package bsp

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/sirupsen/logrus"

	"github.com/mycok/hopsearch/bsp/queue"
)

const leaderID = 0

// run executes rounds until the frontier drains, a callback asks to stop,
// an error occurs, the context expires or maxRounds rounds have been
// executed. A negative maxRounds means no limit.
func (e *Engine) run(ctx context.Context, cbs ExecutorCallbacks, maxRounds int) error {
	if err := ensureContextNotExpired(ctx); err != nil {
		return err
	}

	if maxRounds == 0 || e.frontiers[e.cur].Len() == 0 {
		return nil
	}

	e.done = 0
	e.runErr = nil

	var wg sync.WaitGroup
	wg.Add(e.workers)
	for id := 0; id < e.workers; id++ {
		go func(id int) {
			defer wg.Done()
			e.worker(ctx, id, cbs, maxRounds)
		}(id)
	}

	wg.Wait()

	if e.runErr != nil {
		// A failed worker may have left vertices behind.
		e.clearFrontiers()
	}

	return e.runErr
}

// worker runs the round protocol. Every worker executes the same steps;
// only the leader evaluates the termination condition:
//
//  1. drain the current frontier, filling the next one;
//  2. wait until every worker has finished draining;
//  3. flip the frontier roles;
//  4. leader: decide whether another round is needed;
//  5. wait until the leader's decision is visible to every worker.
func (e *Engine) worker(ctx context.Context, id int, cbs ExecutorCallbacks, maxRounds int) {
	var (
		cur    = e.cur
		round  = e.round
		failed bool
	)

	for executed := 1; ; executed++ {
		if !failed {
			failed = !e.drain(round, e.frontiers[cur], e.emitters[cur^1])
		}

		e.barrier.Wait()
		cur ^= 1

		if id == leaderID {
			e.endRound(ctx, cbs, round, e.frontiers[cur].Len(), maxRounds > 0 && executed >= maxRounds)
		}

		e.barrier.Wait()
		round++

		if atomic.LoadInt32(&e.done) == 1 {
			break
		}
	}

	if id == leaderID {
		e.cur = cur
		e.round = round
	}
}

// drain expands vertices from current until it reports empty. It returns
// false if the expand function failed.
func (e *Engine) drain(round int, current queue.Queue[uint32], next Emitter) bool {
	for {
		v, ok := current.Dequeue()
		if !ok {
			return true
		}

		if err := e.expandFn(round, v, next); err != nil {
			tryToEmitErr(e.errChan, fmt.Errorf(
				"expanding vertex %d in round %d failed: %w", v, round, err,
			))

			return false
		}
	}
}

// endRound is invoked by the leader between the two barriers of a round.
// No worker touches the frontiers while it runs, so frontierLen is exact.
func (e *Engine) endRound(
	ctx context.Context, cbs ExecutorCallbacks, round, frontierLen int, limitReached bool,
) {
	stop, err := e.shouldStop(ctx, cbs, round, frontierLen)
	if err != nil {
		e.runErr = err
	}

	if stop || err != nil || limitReached {
		atomic.StoreInt32(&e.done, 1)
	}
}

func (e *Engine) shouldStop(
	ctx context.Context, cbs ExecutorCallbacks, round, frontierLen int,
) (bool, error) {
	select {
	case err := <-e.errChan:
		return true, err
	default:
	}

	if err := ensureContextNotExpired(ctx); err != nil {
		return true, err
	}

	e.logger.WithFields(logrus.Fields{
		"round":    round,
		"frontier": frontierLen,
	}).Debug("round completed")

	if err := cbs.PostRound(ctx, e, round, frontierLen); err != nil {
		return true, err
	}

	if frontierLen == 0 {
		return true, nil
	}

	keepRunning, err := cbs.ShouldRunAnotherRound(ctx, e, round, frontierLen)

	return !keepRunning, err
}

func tryToEmitErr(errChan chan<- error, err error) {
	select {
	// Try to enqueue an error.
	case errChan <- err:
	// Error channel already contains another error that has not been read yet.
	default:
	}
}
