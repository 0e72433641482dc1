package queue

import "errors"

// ErrFull is returned by Enqueue when the queue has no free slot left.
var ErrFull = errors.New("queue capacity exceeded")

// Queue should be implemented by FIFO queues that can be used concurrently
// by any number of producers and consumers.
type Queue[T any] interface {
	// Enqueue adds item at the tail of the queue. It returns ErrFull if the
	// queue is at capacity.
	Enqueue(item T) error

	// Dequeue removes and returns the item at the head of the queue. The
	// boolean result is false if the queue is empty. Dequeue never blocks.
	Dequeue() (T, bool)

	// Len returns the number of queued items. The value is exact only
	// while no Enqueue or Dequeue call is in flight.
	Len() int

	// Cap returns the maximum number of items the queue can hold.
	Cap() int
}

// Factory creates new Queue instances with room for at least capacity items.
type Factory[T any] func(capacity int) Queue[T]

// BoundedFactory is a Factory that creates lock-free Bounded queues.
func BoundedFactory[T any](capacity int) Queue[T] {
	return NewBounded[T](capacity)
}

// LockedFactory is a Factory that creates mutex-protected Locked queues.
func LockedFactory[T any](capacity int) Queue[T] {
	return NewLocked[T](capacity)
}
