package season

import (
	"context"
	"sync"
)

// Loop is the single actor owning a Tracker. Commands and queries are
// queued and run one at a time, in arrival order, each to completion, so
// the Tracker never needs a lock and is never observed mid-transition.
type Loop struct {
	tracker *Tracker
	jobs    chan job
	done    chan struct{}
	wg      sync.WaitGroup
	once    sync.Once
}

type job struct {
	ctx    context.Context
	fn     func(context.Context, *Tracker) error
	result chan error
}

// NewLoop starts the actor goroutine for t.
func NewLoop(t *Tracker) *Loop {
	l := &Loop{
		tracker: t,
		jobs:    make(chan job),
		done:    make(chan struct{}),
	}
	l.wg.Add(1)
	go l.run()
	return l
}

func (l *Loop) run() {
	defer l.wg.Done()
	for {
		select {
		case j := <-l.jobs:
			j.result <- j.fn(j.ctx, l.tracker)
		case <-l.done:
			return
		}
	}
}

// Do runs fn on the loop and returns its error. ctx only bounds the wait
// for a turn: once fn has started it always runs to completion.
func (l *Loop) Do(ctx context.Context, fn func(context.Context, *Tracker) error) error {
	j := job{ctx: ctx, fn: fn, result: make(chan error, 1)}
	select {
	case l.jobs <- j:
	case <-l.done:
		return ErrLoopClosed
	case <-ctx.Done():
		return ctx.Err()
	}
	return <-j.result
}

// Close stops the loop after the job in progress. Later calls to Do fail
// with ErrLoopClosed.
func (l *Loop) Close() {
	l.once.Do(func() { close(l.done) })
	l.wg.Wait()
}
