package system

import (
	"sync"

	"github.com/dungeoncore/server/internal/entity"
)

// Queue accumulates interaction results. Collision workers append; the
// interaction pipeline is the only consumer.
type Queue struct {
	mu    sync.Mutex
	items []entity.Result
}

func NewQueue() *Queue {
	return &Queue{items: make([]entity.Result, 0, 32)}
}

// Push appends r unless it carries no effect.
func (q *Queue) Push(r entity.Result) {
	if r.Empty() {
		return
	}
	q.mu.Lock()
	q.items = append(q.items, r)
	q.mu.Unlock()
}

// PushAll appends rs in order, skipping empty results.
func (q *Queue) PushAll(rs []entity.Result) {
	q.mu.Lock()
	for _, r := range rs {
		if !r.Empty() {
			q.items = append(q.items, r)
		}
	}
	q.mu.Unlock()
}

func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// PopFront removes and returns the oldest result.
func (q *Queue) PopFront() (entity.Result, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.items) == 0 {
		return entity.Result{}, false
	}
	r := q.items[0]
	q.items[0] = entity.Result{}
	q.items = q.items[1:]
	if len(q.items) == 0 {
		q.items = q.items[:0:0]
	}
	return r, true
}

// Discard drops every queued result and returns how many there were.
func (q *Queue) Discard() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	n := len(q.items)
	q.items = q.items[:0:0]
	return n
}
