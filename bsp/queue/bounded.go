package queue

import (
	"sync/atomic"

	"golang.org/x/sys/cpu"
)

// Static and compile-time check to ensure Bounded implements Queue interface.
var _ Queue[int] = (*Bounded[int])(nil)

type slot[T any] struct {
	// seq equals the slot index when the slot is free for the enqueue at
	// that position and index+1 once it holds an item for the matching
	// dequeue.
	seq  uint64
	item T
}

// Bounded is a lock-free multi-producer multi-consumer FIFO queue backed by
// a fixed ring of slots. Producers and consumers claim positions by
// advancing the tail and head counters with compare-and-swap; per-slot
// sequence numbers hand items over without a global lock.
type Bounded[T any] struct {
	_    cpu.CacheLinePad
	tail uint64
	_    cpu.CacheLinePad
	head uint64
	_    cpu.CacheLinePad

	mask  uint64
	slots []slot[T]
}

// NewBounded returns a Bounded queue that can hold at least capacity items.
// The ring size is capacity rounded up to the next power of two. NewBounded
// panics if capacity is less than 1.
func NewBounded[T any](capacity int) *Bounded[T] {
	if capacity < 1 {
		panic("queue: capacity must be positive")
	}

	size := 1
	for size < capacity {
		size <<= 1
	}

	q := &Bounded[T]{
		mask:  uint64(size - 1),
		slots: make([]slot[T], size),
	}

	for i := range q.slots {
		q.slots[i].seq = uint64(i)
	}

	return q
}

// Enqueue adds item at the tail of the queue or returns ErrFull if every
// slot is occupied.
func (q *Bounded[T]) Enqueue(item T) error {
	pos := atomic.LoadUint64(&q.tail)
	for {
		s := &q.slots[pos&q.mask]
		seq := atomic.LoadUint64(&s.seq)

		switch dif := int64(seq - pos); {
		case dif == 0:
			if atomic.CompareAndSwapUint64(&q.tail, pos, pos+1) {
				s.item = item
				atomic.StoreUint64(&s.seq, pos+1)

				return nil
			}
		case dif < 0:
			// The slot still holds the item enqueued one lap ago.
			return ErrFull
		}

		pos = atomic.LoadUint64(&q.tail)
	}
}

// Dequeue removes and returns the item at the head of the queue. It returns
// false immediately if the queue is empty.
func (q *Bounded[T]) Dequeue() (T, bool) {
	var zero T

	pos := atomic.LoadUint64(&q.head)
	for {
		s := &q.slots[pos&q.mask]
		seq := atomic.LoadUint64(&s.seq)

		switch dif := int64(seq - (pos + 1)); {
		case dif == 0:
			if atomic.CompareAndSwapUint64(&q.head, pos, pos+1) {
				item := s.item
				s.item = zero
				// Free the slot for the enqueue one lap ahead.
				atomic.StoreUint64(&s.seq, pos+q.mask+1)

				return item, true
			}
		case dif < 0:
			return zero, false
		}

		pos = atomic.LoadUint64(&q.head)
	}
}

// Len returns the number of queued items.
func (q *Bounded[T]) Len() int {
	head := atomic.LoadUint64(&q.head)
	tail := atomic.LoadUint64(&q.tail)

	if tail <= head {
		return 0
	}

	if n := tail - head; n < uint64(len(q.slots)) {
		return int(n)
	}

	return len(q.slots)
}

// Cap returns the size of the ring.
func (q *Bounded[T]) Cap() int { return len(q.slots) }
