/*
	barrier package provides a reusable rendezvous point for a fixed number
	of goroutines.
*/

package barrier

import (
	"errors"
	"sync"
)

// ErrInvalidParties is returned when a barrier is created for less than one
// party.
var ErrInvalidParties = errors.New("barrier parties must be > 0")

// Barrier blocks each caller of Wait until a fixed number of parties have
// arrived, then releases all of them. A Barrier can be reused immediately:
// every release advances a generation counter and waiters only return once
// the generation they arrived in has ended.
type Barrier struct {
	mu         sync.Mutex
	cond       *sync.Cond
	parties    int
	waiting    int
	generation uint64
}

// New returns a Barrier for the specified number of parties.
func New(parties int) (*Barrier, error) {
	if parties < 1 {
		return nil, ErrInvalidParties
	}

	b := &Barrier{parties: parties}
	b.cond = sync.NewCond(&b.mu)

	return b, nil
}

// Wait blocks until all parties have called Wait for the current generation.
// It returns true for exactly one caller per generation, the one whose
// arrival released the others.
func (b *Barrier) Wait() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	gen := b.generation
	b.waiting++

	if b.waiting == b.parties {
		b.waiting = 0
		b.generation++
		b.cond.Broadcast()

		return true
	}

	// Guard against spurious wake-ups and against a release that belongs to
	// a later generation.
	for gen == b.generation {
		b.cond.Wait()
	}

	return false
}

// Parties returns the number of goroutines required to trip the barrier.
func (b *Barrier) Parties() int { return b.parties }

// Generation returns the number of times the barrier has been tripped.
func (b *Barrier) Generation() uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.generation
}
