package pipeline

// DefaultQueueDepth is the default queue capacity.
const DefaultQueueDepth = 8

// Queue is the fixed-capacity event queue between the capture path and
// the dispatch loop. It is the only synchronization point between the two
// contexts.
type Queue struct {
	ch chan Event
}

// NewQueue creates a queue with the given capacity.
func NewQueue(depth int) *Queue {
	if depth <= 0 {
		depth = DefaultQueueDepth
	}
	return &Queue{ch: make(chan Event, depth)}
}

// TryPush enqueues without blocking. It reports false and drops the event
// when the queue is full. This is the only enqueue the capture path may
// use: that path runs under the receiver's timing constraints and must
// never wait.
func (q *Queue) TryPush(e Event) bool {
	select {
	case q.ch <- e:
		return true
	default:
		return false
	}
}

// Push enqueues, blocking until a slot is free. Used by the input path so
// a termination request cannot be dropped.
func (q *Queue) Push(e Event) {
	q.ch <- e
}

// Pop blocks until an event is available. Single consumer.
func (q *Queue) Pop() Event {
	return <-q.ch
}

// Len returns the number of pending events.
func (q *Queue) Len() int {
	return len(q.ch)
}

// Cap returns the queue capacity.
func (q *Queue) Cap() int {
	return cap(q.ch)
}
