package clock

import (
	"sync"
	"time"
)

// Fake is a manually advanced Clock for tests.
type Fake struct {
	mu      sync.Mutex
	now     time.Time
	waiters []*waiter
}

type waiter struct {
	when    time.Time
	period  time.Duration // 0 for one-shot
	ch      chan time.Time
	stopped bool
}

// NewFake returns a Fake clock frozen at start.
func NewFake(start time.Time) *Fake {
	return &Fake{now: start}
}

func (f *Fake) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

// Set jumps the clock to t without firing any pending waiters.
func (f *Fake) Set(t time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = t
}

// Advance moves the clock forward, firing timers and tickers that come due
// in chronological order. Sends are non-blocking; an unread tick is dropped.
func (f *Fake) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()

	target := f.now.Add(d)
	for {
		next := f.earliestLocked(target)
		if next == nil {
			break
		}
		f.now = next.when
		select {
		case next.ch <- next.when:
		default:
		}
		if next.period > 0 {
			next.when = next.when.Add(next.period)
		} else {
			next.stopped = true
		}
	}
	f.now = target
}

func (f *Fake) earliestLocked(limit time.Time) *waiter {
	var earliest *waiter
	for _, w := range f.waiters {
		if w.stopped || w.when.After(limit) {
			continue
		}
		if earliest == nil || w.when.Before(earliest.when) {
			earliest = w
		}
	}
	return earliest
}

func (f *Fake) addWaiter(d, period time.Duration) *waiter {
	f.mu.Lock()
	defer f.mu.Unlock()
	w := &waiter{when: f.now.Add(d), period: period, ch: make(chan time.Time, 1)}
	f.waiters = append(f.waiters, w)
	return w
}

func (f *Fake) After(d time.Duration) <-chan time.Time {
	return f.addWaiter(d, 0).ch
}

func (f *Fake) NewTimer(d time.Duration) Timer {
	return &fakeTimer{f: f, w: f.addWaiter(d, 0)}
}

func (f *Fake) NewTicker(d time.Duration) Ticker {
	return &fakeTicker{f: f, w: f.addWaiter(d, d)}
}

type fakeTimer struct {
	f *Fake
	w *waiter
}

func (t *fakeTimer) C() <-chan time.Time { return t.w.ch }

func (t *fakeTimer) Stop() bool {
	t.f.mu.Lock()
	defer t.f.mu.Unlock()
	active := !t.w.stopped
	t.w.stopped = true
	return active
}

func (t *fakeTimer) Reset(d time.Duration) bool {
	t.f.mu.Lock()
	defer t.f.mu.Unlock()
	active := !t.w.stopped
	t.w.stopped = false
	t.w.when = t.f.now.Add(d)
	return active
}

type fakeTicker struct {
	f *Fake
	w *waiter
}

func (t *fakeTicker) C() <-chan time.Time { return t.w.ch }

func (t *fakeTicker) Stop() {
	t.f.mu.Lock()
	defer t.f.mu.Unlock()
	t.w.stopped = true
}
