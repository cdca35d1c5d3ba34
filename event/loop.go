/*
 * MIT License
 *
 * Copyright (c) 2023 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

package event

import (
	"container/heap"
	"context"
	"sync"
	"sync/atomic"
	"time"

	liberr "github.com/nabbar/golib/errors"
)

const taskQueueSize = 4096

// Loop is a single goroutine draining a task queue and a timer heap. Every
// connection, handshake, and dispatcher in the engine schedules its callbacks
// here instead of running its own goroutine, so state transitions never race.
type Loop struct {
	context.Context

	cancel context.CancelFunc
	tasks  chan func()
	wake   chan struct{}
	closed int32

	mu     sync.Mutex
	timers timerHeap
	seq    uint64
}

// New builds a Loop bound to parent; cancelling parent (or calling Close)
// drains pending timers without running them and stops the goroutine.
func New(parent context.Context) *Loop {
	if parent == nil {
		parent = context.Background()
	}

	ctx, cancel := context.WithCancel(parent)

	return &Loop{
		Context: ctx,
		cancel:  cancel,
		tasks:   make(chan func(), taskQueueSize),
		wake:    make(chan struct{}, 1),
	}
}

// Run blocks, draining the loop until Close is called or the parent context
// is cancelled. Callers run this in exactly one goroutine.
func (l *Loop) Run() {
	timer := time.NewTimer(time.Hour)
	defer timer.Stop()

	for {
		l.rearm(timer)

		select {
		case <-l.Done():
			l.drain()
			return

		case fn := <-l.tasks:
			fn()

		case <-timer.C:
			l.fireDue()

		case <-l.wake:
			// loop again; rearm recomputes the deadline against the new
			// timer heap state
		}
	}
}

// Close stops the loop; Run returns once any in-flight callback completes.
func (l *Loop) Close() {
	if atomic.CompareAndSwapInt32(&l.closed, 0, 1) {
		l.cancel()
	}
}

// Schedule enqueues fn to run on the loop goroutine. Non-blocking: returns
// ErrorLoopFull rather than stalling the caller if the queue is saturated,
// and ErrorLoopClosed once Close has been called.
func (l *Loop) Schedule(fn func()) liberr.Error {
	if atomic.LoadInt32(&l.closed) == 1 {
		return ErrorLoopClosed.Error(nil)
	}

	select {
	case l.tasks <- fn:
		return nil
	default:
		return ErrorLoopFull.Error(nil)
	}
}

// Timer is a cancelable handle returned by After/Every.
type Timer struct {
	loop  *Loop
	entry *timerEntry
}

// Cancel prevents a pending timer from firing. Safe to call after it has
// already fired or been cancelled.
func (t *Timer) Cancel() {
	t.loop.mu.Lock()
	defer t.loop.mu.Unlock()
	t.entry.cancelled = true
}

// After schedules fn to run once, after d, on the loop goroutine.
func (l *Loop) After(d time.Duration, fn func()) *Timer {
	return l.schedule(d, 0, fn)
}

// Every schedules fn to run repeatedly every d, on the loop goroutine,
// starting after the first interval. Used for the generic-connection ping
// cadence and push-connection keepalive (spec.md §4.C6 pacing).
func (l *Loop) Every(d time.Duration, fn func()) *Timer {
	return l.schedule(d, d, fn)
}

func (l *Loop) schedule(d, interval time.Duration, fn func()) *Timer {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.seq++
	e := &timerEntry{
		at:       time.Now().Add(d),
		interval: interval,
		fn:       fn,
		seq:      l.seq,
	}
	heap.Push(&l.timers, e)

	select {
	case l.wake <- struct{}{}:
	default:
	}

	return &Timer{loop: l, entry: e}
}

func (l *Loop) rearm(timer *time.Timer) {
	l.mu.Lock()
	var d time.Duration
	if l.timers.Len() == 0 {
		d = time.Hour
	} else {
		d = time.Until(l.timers[0].at)
		if d < 0 {
			d = 0
		}
	}
	l.mu.Unlock()

	if !timer.Stop() {
		select {
		case <-timer.C:
		default:
		}
	}
	timer.Reset(d)
}

func (l *Loop) fireDue() {
	now := time.Now()

	for {
		l.mu.Lock()
		if l.timers.Len() == 0 || l.timers[0].at.After(now) {
			l.mu.Unlock()
			return
		}
		e := heap.Pop(&l.timers).(*timerEntry)

		if e.cancelled {
			l.mu.Unlock()
			continue
		}

		if e.interval > 0 {
			e.at = now.Add(e.interval)
			heap.Push(&l.timers, e)
		}
		l.mu.Unlock()

		e.fn()
	}
}

func (l *Loop) drain() {
	for {
		select {
		case fn := <-l.tasks:
			_ = fn // not run: loop is shutting down
		default:
			return
		}
	}
}

type timerEntry struct {
	at        time.Time
	interval  time.Duration
	fn        func()
	seq       uint64
	cancelled bool
	index     int
}

type timerHeap []*timerEntry

func (h timerHeap) Len() int { return len(h) }
func (h timerHeap) Less(i, j int) bool {
	if h[i].at.Equal(h[j].at) {
		return h[i].seq < h[j].seq
	}
	return h[i].at.Before(h[j].at)
}
func (h timerHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index, h[j].index = i, j
}

func (h *timerHeap) Push(x any) {
	e := x.(*timerEntry)
	e.index = len(*h)
	*h = append(*h, e)
}

func (h *timerHeap) Pop() any {
	old := *h
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return e
}
