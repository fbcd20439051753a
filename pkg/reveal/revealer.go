package reveal

import (
	"context"
	"sync"
	"time"
)

// Ticker is the subset of time.Ticker used by Revealer.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// TickerFactory creates a ticker firing every d.
type TickerFactory func(d time.Duration) Ticker

type timeTicker struct{ t *time.Ticker }

func (t timeTicker) C() <-chan time.Time { return t.t.C }
func (t timeTicker) Stop()               { t.t.Stop() }

// NewTimeTicker is the TickerFactory backed by time.NewTicker.
func NewTimeTicker(d time.Duration) Ticker {
	return timeTicker{t: time.NewTicker(d)}
}

// Callbacks receive reveal progress. They run on the revealer goroutine
// and may call Cancel or Start.
type Callbacks struct {
	OnUpdate   func(displayed string)
	OnComplete func()
}

// Revealer drives a Typewriter from a ticker on its own goroutine. Starting
// again cancels the previous run; a cancelled run never updates or
// completes again.
type Revealer struct {
	newTicker TickerFactory

	mu     sync.Mutex
	tw     Typewriter
	gen    int
	cancel context.CancelFunc
	done   chan struct{}
}

// NewRevealer creates a revealer. A nil factory uses NewTimeTicker.
func NewRevealer(factory TickerFactory) *Revealer {
	if factory == nil {
		factory = NewTimeTicker
	}
	done := make(chan struct{})
	close(done)
	return &Revealer{newTicker: factory, done: done}
}

// Start begins revealing text at speed. Any previous run is cancelled first.
func (r *Revealer) Start(ctx context.Context, text string, speed time.Duration, cb Callbacks) {
	r.mu.Lock()
	if r.cancel != nil {
		r.cancel()
	}
	r.tw.Cancel()
	r.gen++
	gen := r.gen
	runCtx, cancel := context.WithCancel(ctx)
	r.cancel = cancel
	done := make(chan struct{})
	r.done = done
	completed := r.tw.Start(text, speed)
	speed = r.tw.Speed()
	r.mu.Unlock()

	go r.run(runCtx, gen, speed, completed, cb, done)
}

func (r *Revealer) run(ctx context.Context, gen int, speed time.Duration, completed bool, cb Callbacks, done chan struct{}) {
	defer close(done)

	if completed {
		if r.current(gen) && cb.OnComplete != nil {
			cb.OnComplete()
		}
		return
	}

	ticker := r.newTicker(speed)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C():
		}

		r.mu.Lock()
		if gen != r.gen {
			r.mu.Unlock()
			return
		}
		finished := r.tw.Tick()
		displayed := r.tw.Displayed()
		r.mu.Unlock()

		// Callbacks run without the lock, so Cancel may land between
		// two of them. Each one re-checks the generation first.
		if !r.current(gen) {
			return
		}
		if cb.OnUpdate != nil {
			cb.OnUpdate(displayed)
		}
		if finished {
			if r.current(gen) && cb.OnComplete != nil {
				cb.OnComplete()
			}
			return
		}
	}
}

func (r *Revealer) current(gen int) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return gen == r.gen && !r.tw.Cancelled()
}

// Cancel stops the current run. No callback starts after Cancel returns;
// a callback already running is not interrupted. Cancel does not wait for
// the goroutine to exit, use Done for that.
func (r *Revealer) Cancel() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.gen++
	r.tw.Cancel()
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
}

// Done is closed when the current run's goroutine has exited.
func (r *Revealer) Done() <-chan struct{} {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.done
}

// IsComplete reports whether the current run revealed all of its text.
func (r *Revealer) IsComplete() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.tw.Complete() && !r.tw.Cancelled()
}

// Displayed returns the currently revealed prefix.
func (r *Revealer) Displayed() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.tw.Displayed()
}
