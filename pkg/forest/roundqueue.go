package forest

// roundItem is one candidate edge proposed by a component during a
// single round's gather phase (spec §4.5, Ep).
type roundItem struct {
	U, V uint64
	D    float64
}

// roundQueue is a concrete-typed min-heap over roundItem.D, mirroring
// pkg/routing's MinHeap (a concrete struct heap chosen there to avoid
// interface-boxing overhead on Dijkstra's hot path). The engine's round
// queue is rebuilt fresh every round and is smaller than a routing
// query's frontier, but the same shape — plain slice, sift up/down by
// hand — fits the same hot-path reasoning: it runs once per round, per
// live component.
type roundQueue struct {
	items []roundItem
}

func (h *roundQueue) Len() int { return len(h.items) }

func (h *roundQueue) Push(u, v uint64, d float64) {
	h.items = append(h.items, roundItem{U: u, V: v, D: d})
	h.siftUp(len(h.items) - 1)
}

func (h *roundQueue) Pop() roundItem {
	n := len(h.items)
	item := h.items[0]
	h.items[0] = h.items[n-1]
	h.items = h.items[:n-1]
	if len(h.items) > 0 {
		h.siftDown(0)
	}
	return item
}

func (h *roundQueue) siftUp(i int) {
	for i > 0 {
		parent := (i - 1) / 2
		if h.items[i].D >= h.items[parent].D {
			break
		}
		h.items[i], h.items[parent] = h.items[parent], h.items[i]
		i = parent
	}
}

func (h *roundQueue) siftDown(i int) {
	n := len(h.items)
	for {
		smallest := i
		left := 2*i + 1
		right := 2*i + 2
		if left < n && h.items[left].D < h.items[smallest].D {
			smallest = left
		}
		if right < n && h.items[right].D < h.items[smallest].D {
			smallest = right
		}
		if smallest == i {
			break
		}
		h.items[i], h.items[smallest] = h.items[smallest], h.items[i]
		i = smallest
	}
}
