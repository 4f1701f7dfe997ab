package hashing

import "sync"

// ThreadSafeDuplicateDetector is a DuplicateDetector shared by goroutines,
// such as live games that finish concurrently and record into one store.
type ThreadSafeDuplicateDetector struct {
	mu sync.Mutex
	d  *DuplicateDetector
}

// NewThreadSafeDuplicateDetector creates a shared detector. A maxCapacity of
// 0 means unlimited capacity.
func NewThreadSafeDuplicateDetector(exactMatch bool, maxCapacity int) *ThreadSafeDuplicateDetector {
	return &ThreadSafeDuplicateDetector{d: NewDuplicateDetector(exactMatch, maxCapacity)}
}

// CheckAndAdd reports whether sig repeats a remembered game and remembers it
// otherwise, as one step.
func (t *ThreadSafeDuplicateDetector) CheckAndAdd(sig GameSignature) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.d.CheckAndAdd(sig)
}

// Counts returns the duplicate and unique totals from a single read.
func (t *ThreadSafeDuplicateDetector) Counts() (duplicates, unique int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.d.DuplicateCount(), t.d.UniqueCount()
}

// IsFull reports whether the capacity limit has been reached.
func (t *ThreadSafeDuplicateDetector) IsFull() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.d.IsFull()
}

// Reset forgets every remembered game.
func (t *ThreadSafeDuplicateDetector) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.d.Reset()
}
