package growth

import "plum-bloom/internal/core"

// CompactThreshold is the number of consumed slots a Queue tolerates at the
// front of its backing slice before it considers dropping them.
const CompactThreshold = 4096

// Queue is a FIFO of pending branches. Popped entries stay in the backing
// slice behind the read cursor until compaction drops them.
type Queue struct {
	items []core.Branch
	head  int
}

// Push appends b to the back of the queue.
func (q *Queue) Push(b core.Branch) {
	q.items = append(q.items, b)
}

// Pop removes and returns the front branch.
func (q *Queue) Pop() (core.Branch, bool) {
	if q.head >= len(q.items) {
		return core.Branch{}, false
	}
	b := q.items[q.head]
	q.head++
	q.compact()
	return b, true
}

// Len returns the number of pending branches.
func (q *Queue) Len() int { return len(q.items) - q.head }

// Retained returns how many entries the backing slice currently holds,
// consumed ones included.
func (q *Queue) Retained() int { return len(q.items) }

// Reset empties the queue.
func (q *Queue) Reset() {
	clear(q.items)
	q.items = q.items[:0]
	q.head = 0
}

func (q *Queue) compact() {
	if q.head <= CompactThreshold || q.head*2 <= len(q.items) {
		return
	}
	n := copy(q.items, q.items[q.head:])
	clear(q.items[n:])
	q.items = q.items[:n]
	q.head = 0
}
