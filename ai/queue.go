package ai

import (
	"sync/atomic"

	"github.com/nelhage/isolation/isolation"
)

// Result is one published answer: the best move found by a
// completed search to Depth plies. Depth 0 means the move was chosen
// without searching.
type Result struct {
	Action isolation.Action
	Score  float64
	Depth  int
}

// Publisher receives each improved answer as soon as it is known.
type Publisher interface {
	Publish(r Result)
}

type PublisherFunc func(r Result)

func (f PublisherFunc) Publish(r Result) {
	f(r)
}

// Queue is a single-slot channel: each Publish replaces the previous
// value, and readers only ever observe complete Results.
type Queue struct {
	latest  atomic.Value
	updated chan struct{}
}

func NewQueue() *Queue {
	return &Queue{updated: make(chan struct{}, 1)}
}

func (q *Queue) Publish(r Result) {
	q.latest.Store(&r)
	select {
	case q.updated <- struct{}{}:
	default:
	}
}

// Latest returns the most recently published Result, if any.
func (q *Queue) Latest() (Result, bool) {
	r, _ := q.latest.Load().(*Result)
	if r == nil {
		return Result{}, false
	}
	return *r, true
}

// Updated receives a value after one or more Publish calls since the
// last receive.
func (q *Queue) Updated() <-chan struct{} {
	return q.updated
}
