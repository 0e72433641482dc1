package aggregator

import "sync/atomic"

// IntAccumulator is a concurrent-safe accumulator for int values.
// It satisfies the bsp.Aggregator interface.
type IntAccumulator struct {
	prevSum int64
	currSum int64
}

// Type returns the type of this accumulator as a string.
func (a *IntAccumulator) Type() string {
	return "IntAccumulator"
}

// Get retrieves the current accumulator value.
func (a *IntAccumulator) Get() interface{} {
	return int(atomic.LoadInt64(&a.currSum))
}

// Set the accumulator's fields to the specified value.
func (a *IntAccumulator) Set(val interface{}) {
	value := int64(val.(int))
	atomic.StoreInt64(&a.currSum, value)
	atomic.StoreInt64(&a.prevSum, value)
}

// Aggregate adds the provided value to the accumulator's current sum.
func (a *IntAccumulator) Aggregate(val interface{}) {
	_ = atomic.AddInt64(&a.currSum, int64(val.(int)))
}

// Delta returns the change in the accumulator's value since the last
// call to Delta or Set.
func (a *IntAccumulator) Delta() interface{} {
	for {
		currSum := atomic.LoadInt64(&a.currSum)
		prevSum := atomic.LoadInt64(&a.prevSum)

		// Try to update the accumulator's prevSum value by copying currSum
		// value into the prevSum field and if successful return the difference.
		if atomic.CompareAndSwapInt64(&a.prevSum, prevSum, currSum) {
			return int(currSum - prevSum)
		}
	}
}
