package app

import "sync"

// Queue is an in-memory EventSource. It is safe for concurrent use, so
// events can be pushed from other goroutines while Run drains it.
type Queue struct {
	mu            sync.Mutex
	cond          *sync.Cond
	events        []Event
	redrawPending bool
	closed        bool
}

// NewQueue returns an empty queue.
func NewQueue(events ...Event) *Queue {
	q := &Queue{events: events}
	q.cond = sync.NewCond(&q.mu)
	return q
}

// Push appends ev. Events pushed after Close are dropped.
func (q *Queue) Push(ev Event) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return
	}
	q.events = append(q.events, ev)
	q.cond.Signal()
}

// RequestRedraw implements EventSource.
func (q *Queue) RequestRedraw() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed || q.redrawPending {
		return
	}
	q.redrawPending = true
	q.events = append(q.events, Event{Kind: EventRedrawRequested})
	q.cond.Signal()
}

// Close ends the queue. Next drains what is already queued and then
// returns false.
func (q *Queue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.closed = true
	q.cond.Broadcast()
}

// Next implements EventSource.
func (q *Queue) Next() (Event, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for len(q.events) == 0 && !q.closed {
		q.cond.Wait()
	}
	if len(q.events) == 0 {
		return Event{}, false
	}
	return q.pop(), true
}

// TryNext returns the next queued event without blocking.
func (q *Queue) TryNext() (Event, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.events) == 0 {
		return Event{}, false
	}
	return q.pop(), true
}

// Closed reports whether Close was called.
func (q *Queue) Closed() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.closed
}

func (q *Queue) pop() Event {
	ev := q.events[0]
	q.events = q.events[1:]
	if ev.Kind == EventRedrawRequested {
		q.redrawPending = false
	}
	return ev
}

// Len returns the number of queued events.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.events)
}
