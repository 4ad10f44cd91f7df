package action

import (
	"sort"
	"sync"
)

type queuedAction struct {
	tick   uint32
	seq    uint64
	action GameAction
}

// Queue orders submitted actions by (tick, arrival). Every participant that
// drains the same submissions gets the same order.
type Queue struct {
	mu    sync.Mutex
	items []queuedAction
	seq   uint64
}

// NewQueue creates an empty queue
func NewQueue() *Queue {
	return &Queue{}
}

// Enqueue schedules an action for the given tick and stamps the tick into its header
func (q *Queue) Enqueue(a GameAction, tick uint32) {
	q.mu.Lock()
	defer q.mu.Unlock()

	a.GetHeader().Tick = tick
	item := queuedAction{tick: tick, seq: q.seq, action: a}
	q.seq++

	i := sort.Search(len(q.items), func(i int) bool {
		return q.items[i].tick > tick
	})
	q.items = append(q.items, queuedAction{})
	copy(q.items[i+1:], q.items[i:])
	q.items[i] = item
}

// Drain removes and returns every action scheduled at or before tick, in order
func (q *Queue) Drain(tick uint32) []GameAction {
	q.mu.Lock()
	defer q.mu.Unlock()

	n := sort.Search(len(q.items), func(i int) bool {
		return q.items[i].tick > tick
	})
	out := make([]GameAction, n)
	for i := 0; i < n; i++ {
		out[i] = q.items[i].action
	}
	q.items = append(q.items[:0], q.items[n:]...)
	return out
}

// Len returns the number of pending actions
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Pending returns the pending actions in order without removing them
func (q *Queue) Pending() []GameAction {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]GameAction, len(q.items))
	for i, item := range q.items {
		out[i] = item.action
	}
	return out
}
