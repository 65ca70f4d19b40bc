package partition

import "container/heap"

// EdgeCandidate is a potential outgoing edge from a component: the node
// that owns it, the candidate foreign neighbour, and the priority it
// was queued with (squared Cartesian distance — see pkg/geo.SqDist3D).
type EdgeCandidate struct {
	From, To uint64
	Priority float64
}

// entry wraps a candidate with the index container/heap needs to keep
// Swap cheap. Modelled on pkg/ch's pqEntry/priorityQueue pair: an
// index-tracking heap.Interface implementation, chosen here (rather
// than the concrete struct heap used for the engine's round queue)
// because Queue must support merge, which needs to renumber every
// entry's heap index after concatenation.
type entry struct {
	cand  EdgeCandidate
	index int
}

type entryHeap []*entry

func (h entryHeap) Len() int            { return len(h) }
func (h entryHeap) Less(i, j int) bool  { return h[i].cand.Priority < h[j].cand.Priority }
func (h entryHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *entryHeap) Push(x any) {
	e := x.(*entry)
	e.index = len(*h)
	*h = append(*h, e)
}

func (h *entryHeap) Pop() any {
	old := *h
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	e.index = -1
	*h = old[:n-1]
	return e
}

// Queue is a mergeable min-priority queue of candidate outgoing edges,
// one per component root (spec §4.3.1). Priority is squared Cartesian
// distance; duplicate (priority, edge) pairs are permitted since the
// spec does not require elision, only correct ordering after merge.
type Queue struct {
	h entryHeap
}

// NewQueue returns an empty queue.
func NewQueue() *Queue {
	return &Queue{}
}

// Push inserts a candidate edge with the given priority.
func (q *Queue) Push(from, to uint64, priority float64) {
	heap.Push(&q.h, &entry{cand: EdgeCandidate{From: from, To: to, Priority: priority}})
}

// Pop removes and returns the lowest-priority candidate. Panics if empty;
// callers must check Empty first (mirrors the source's Top/Pop split).
func (q *Queue) Pop() EdgeCandidate {
	e := heap.Pop(&q.h).(*entry)
	return e.cand
}

// Top returns the lowest-priority candidate without removing it, and
// whether the queue was non-empty.
func (q *Queue) Top() (EdgeCandidate, bool) {
	if len(q.h) == 0 {
		return EdgeCandidate{}, false
	}
	return q.h[0].cand, true
}

// Empty reports whether the queue has no candidates.
func (q *Queue) Empty() bool {
	return len(q.h) == 0
}

// Len returns the number of queued candidates.
func (q *Queue) Len() int {
	return len(q.h)
}

// Merge absorbs other's contents into q. The source's Python
// implementation collapses the merged heap through a set conversion,
// which destroys heap order; this implementation instead concatenates
// the backing slices and re-heapifies, which is the fix the spec's
// open question (§4.3.1) requires: correct ordering on every
// subsequent Top/Pop, with duplicate collapse left optional (and not
// performed here — callers relying on exact counts should expect
// duplicates to survive a merge).
func (q *Queue) Merge(other *Queue) {
	if other == nil || len(other.h) == 0 {
		return
	}
	for _, e := range other.h {
		e.index = len(q.h)
		q.h = append(q.h, e)
	}
	other.h = nil
	heap.Init(&q.h)
}
