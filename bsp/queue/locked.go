package queue

import "sync"

// Static and compile-time check to ensure Locked implements Queue interface.
var _ Queue[int] = (*Locked[int])(nil)

// Locked is a bounded FIFO queue guarded by a single mutex. It is simpler
// but slower than Bounded under contention.
type Locked[T any] struct {
	mu    sync.Mutex
	items []T
	head  int
	size  int
}

// NewLocked returns a Locked queue that can hold capacity items. NewLocked
// panics if capacity is less than 1.
func NewLocked[T any](capacity int) *Locked[T] {
	if capacity < 1 {
		panic("queue: capacity must be positive")
	}

	return &Locked[T]{items: make([]T, capacity)}
}

// Enqueue adds item at the tail of the queue.
func (q *Locked[T]) Enqueue(item T) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.size == len(q.items) {
		return ErrFull
	}

	q.items[(q.head+q.size)%len(q.items)] = item
	q.size++

	return nil
}

// Dequeue removes and returns the item at the head of the queue.
func (q *Locked[T]) Dequeue() (T, bool) {
	var zero T

	q.mu.Lock()
	defer q.mu.Unlock()

	if q.size == 0 {
		return zero, false
	}

	item := q.items[q.head]
	q.items[q.head] = zero
	q.head = (q.head + 1) % len(q.items)
	q.size--

	return item, true
}

// Len returns the number of queued items.
func (q *Locked[T]) Len() int {
	q.mu.Lock()
	n := q.size
	q.mu.Unlock()

	return n
}

// Cap returns the maximum number of items the queue can hold.
func (q *Locked[T]) Cap() int { return len(q.items) }
