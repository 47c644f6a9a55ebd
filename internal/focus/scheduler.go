package focus

// Scheduler defers work until the host's current event has finished.
type Scheduler interface {
	Schedule(fn func())
}

// Queue is a Scheduler the host drains explicitly, typically after
// dispatching each event.
type Queue struct {
	pending []func()
}

// Schedule appends fn.
func (q *Queue) Schedule(fn func()) {
	q.pending = append(q.pending, fn)
}

// Len returns the number of pending callbacks.
func (q *Queue) Len() int { return len(q.pending) }

// Drain runs pending callbacks in order, including any they schedule.
func (q *Queue) Drain() {
	for len(q.pending) > 0 {
		fn := q.pending[0]
		q.pending = q.pending[1:]
		fn()
	}
}
