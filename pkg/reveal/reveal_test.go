package reveal

import (
	"context"
	"sync"
	"testing"
	"time"
)

func TestTypewriterRevealsOneRunePerTick(t *testing.T) {
	var tw Typewriter
	if tw.Start("héllo", 10*time.Millisecond) {
		t.Fatal("non-empty text should not complete on start")
	}
	if tw.Displayed() != "" {
		t.Fatalf("Displayed() = %q before any tick", tw.Displayed())
	}

	want := []string{"h", "hé", "hél", "héll", "héllo"}
	for i, w := range want {
		completed := tw.Tick()
		if got := tw.Displayed(); got != w {
			t.Fatalf("tick %d: Displayed() = %q, want %q", i+1, got, w)
		}
		if completed != (i == len(want)-1) {
			t.Fatalf("tick %d: completed = %v", i+1, completed)
		}
	}

	if !tw.Complete() {
		t.Fatal("expected Complete() after last tick")
	}
	if tw.Tick() {
		t.Fatal("completion must fire only once")
	}
	if tw.Displayed() != "héllo" {
		t.Fatalf("extra tick changed output to %q", tw.Displayed())
	}
}

func TestTypewriterEmptyTextCompletesImmediately(t *testing.T) {
	var tw Typewriter
	if !tw.Start("", time.Millisecond) {
		t.Fatal("empty text should complete on start")
	}
	if tw.Active() {
		t.Fatal("empty reveal should not expect ticks")
	}
	if tw.Tick() {
		t.Fatal("tick on complete reveal should not report completion")
	}
}

func TestTypewriterRestartResets(t *testing.T) {
	var tw Typewriter
	tw.Start("first", time.Millisecond)
	tw.Tick()
	tw.Tick()

	tw.Start("second", time.Millisecond)
	if tw.Displayed() != "" {
		t.Fatalf("restart should reset output, got %q", tw.Displayed())
	}
	tw.Tick()
	if tw.Displayed() != "s" {
		t.Fatalf("restart should begin at first rune, got %q", tw.Displayed())
	}
}

func TestTypewriterCancel(t *testing.T) {
	var tw Typewriter
	tw.Start("abc", time.Millisecond)
	tw.Tick()
	tw.Cancel()
	if tw.Tick() || tw.Displayed() != "a" {
		t.Fatalf("cancelled typewriter advanced to %q", tw.Displayed())
	}
	if tw.Complete() {
		t.Fatal("cancelled typewriter should not be complete")
	}
}

func TestClampSpeed(t *testing.T) {
	tests := map[time.Duration]time.Duration{
		-5 * time.Millisecond: MinSpeed,
		0:                     MinSpeed,
		20 * time.Millisecond: 20 * time.Millisecond,
	}
	for in, want := range tests {
		if got := ClampSpeed(in); got != want {
			t.Errorf("ClampSpeed(%v) = %v, want %v", in, got, want)
		}
	}
	if got := SpeedFromMillis(40); got != SummarySpeed {
		t.Errorf("SpeedFromMillis(40) = %v", got)
	}
}

type fakeTicker struct {
	ch      chan time.Time
	mu      sync.Mutex
	stopped bool
	period  time.Duration
}

func (f *fakeTicker) C() <-chan time.Time { return f.ch }
func (f *fakeTicker) Stop() {
	f.mu.Lock()
	f.stopped = true
	f.mu.Unlock()
}

type fakeClock struct {
	mu      sync.Mutex
	tickers []*fakeTicker
	created chan *fakeTicker
}

func newFakeClock() *fakeClock {
	return &fakeClock{created: make(chan *fakeTicker, 8)}
}

func (c *fakeClock) factory(d time.Duration) Ticker {
	ft := &fakeTicker{ch: make(chan time.Time), period: d}
	c.mu.Lock()
	c.tickers = append(c.tickers, ft)
	c.mu.Unlock()
	c.created <- ft
	return ft
}

func (c *fakeClock) next(t *testing.T) *fakeTicker {
	t.Helper()
	select {
	case ft := <-c.created:
		return ft
	case <-time.After(time.Second):
		t.Fatal("ticker was not created")
		return nil
	}
}

type recorder struct {
	mu        sync.Mutex
	updates   []string
	completes int
}

func (r *recorder) callbacks() Callbacks {
	return Callbacks{
		OnUpdate: func(s string) {
			r.mu.Lock()
			r.updates = append(r.updates, s)
			r.mu.Unlock()
		},
		OnComplete: func() {
			r.mu.Lock()
			r.completes++
			r.mu.Unlock()
		},
	}
}

func (r *recorder) snapshot() ([]string, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.updates...), r.completes
}

func (r *recorder) waitUpdates(t *testing.T, n int) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if updates, _ := r.snapshot(); len(updates) >= n {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("timed out waiting for %d updates", n)
}

func waitDone(t *testing.T, r *Revealer) {
	t.Helper()
	select {
	case <-r.Done():
	case <-time.After(time.Second):
		t.Fatal("revealer did not finish")
	}
}

func TestRevealerTicksToCompletion(t *testing.T) {
	clock := newFakeClock()
	r := NewRevealer(clock.factory)
	rec := &recorder{}

	r.Start(context.Background(), "abc", 25*time.Millisecond, rec.callbacks())
	ft := clock.next(t)
	if ft.period != 25*time.Millisecond {
		t.Fatalf("ticker period = %v, want 25ms", ft.period)
	}

	for i := 0; i < 3; i++ {
		ft.ch <- time.Now()
	}
	waitDone(t, r)

	updates, completes := rec.snapshot()
	want := []string{"a", "ab", "abc"}
	if len(updates) != len(want) {
		t.Fatalf("updates = %v, want %v", updates, want)
	}
	for i := range want {
		if updates[i] != want[i] {
			t.Fatalf("updates = %v, want %v", updates, want)
		}
	}
	if completes != 1 {
		t.Fatalf("completes = %d, want 1", completes)
	}
	if !r.IsComplete() || r.Displayed() != "abc" {
		t.Fatalf("IsComplete() = %v, Displayed() = %q", r.IsComplete(), r.Displayed())
	}
	ft.mu.Lock()
	stopped := ft.stopped
	ft.mu.Unlock()
	if !stopped {
		t.Error("ticker should be stopped after completion")
	}
}

func TestRevealerEmptyTextCompletesWithoutTicker(t *testing.T) {
	clock := newFakeClock()
	r := NewRevealer(clock.factory)
	rec := &recorder{}

	r.Start(context.Background(), "", 10*time.Millisecond, rec.callbacks())
	waitDone(t, r)

	updates, completes := rec.snapshot()
	if len(updates) != 0 || completes != 1 {
		t.Fatalf("updates = %v, completes = %d", updates, completes)
	}
	clock.mu.Lock()
	defer clock.mu.Unlock()
	if len(clock.tickers) != 0 {
		t.Fatalf("created %d tickers for empty text", len(clock.tickers))
	}
}

func TestRevealerCancelStopsCallbacks(t *testing.T) {
	clock := newFakeClock()
	r := NewRevealer(clock.factory)
	rec := &recorder{}

	r.Start(context.Background(), "abcdef", time.Millisecond, rec.callbacks())
	ft := clock.next(t)
	ft.ch <- time.Now()
	rec.waitUpdates(t, 1)

	r.Cancel()
	waitDone(t, r)

	select {
	case ft.ch <- time.Now():
		t.Fatal("cancelled revealer should not receive ticks")
	case <-time.After(20 * time.Millisecond):
	}

	updates, completes := rec.snapshot()
	if len(updates) != 1 || updates[0] != "a" {
		t.Fatalf("updates = %v, want [a]", updates)
	}
	if completes != 0 {
		t.Fatalf("cancelled revealer completed %d times", completes)
	}
	if r.IsComplete() {
		t.Fatal("cancelled revealer should not be complete")
	}
}

func TestRevealerCancelDuringUpdateSkipsCompletion(t *testing.T) {
	clock := newFakeClock()
	r := NewRevealer(clock.factory)

	entered := make(chan string, 2)
	release := make(chan struct{})
	var mu sync.Mutex
	completes := 0

	r.Start(context.Background(), "ab", time.Millisecond, Callbacks{
		OnUpdate: func(s string) {
			entered <- s
			if s == "ab" {
				<-release
			}
		},
		OnComplete: func() {
			mu.Lock()
			completes++
			mu.Unlock()
		},
	})
	ft := clock.next(t)
	ft.ch <- time.Now()
	ft.ch <- time.Now()

	for _, want := range []string{"a", "ab"} {
		select {
		case got := <-entered:
			if got != want {
				t.Fatalf("update = %q, want %q", got, want)
			}
		case <-time.After(time.Second):
			t.Fatalf("timed out waiting for update %q", want)
		}
	}

	// The last update is still blocked in its callback.
	r.Cancel()
	close(release)
	waitDone(t, r)

	mu.Lock()
	defer mu.Unlock()
	if completes != 0 {
		t.Fatalf("OnComplete fired %d times after Cancel", completes)
	}
	if r.IsComplete() {
		t.Fatal("cancelled revealer should not report completion")
	}
}

func TestRevealerRestartCancelsPrevious(t *testing.T) {
	clock := newFakeClock()
	r := NewRevealer(clock.factory)
	first := &recorder{}
	second := &recorder{}

	r.Start(context.Background(), "old text", time.Millisecond, first.callbacks())
	oldTicker := clock.next(t)
	oldTicker.ch <- time.Now()
	first.waitUpdates(t, 1)

	r.Start(context.Background(), "new", 2*time.Millisecond, second.callbacks())
	newTicker := clock.next(t)
	for i := 0; i < 3; i++ {
		newTicker.ch <- time.Now()
	}
	waitDone(t, r)

	firstUpdates, firstCompletes := first.snapshot()
	if len(firstUpdates) != 1 || firstCompletes != 0 {
		t.Fatalf("first run: updates = %v, completes = %d", firstUpdates, firstCompletes)
	}
	secondUpdates, secondCompletes := second.snapshot()
	if len(secondUpdates) != 3 || secondUpdates[0] != "n" || secondCompletes != 1 {
		t.Fatalf("second run: updates = %v, completes = %d", secondUpdates, secondCompletes)
	}
}

func TestRevealerContextCancel(t *testing.T) {
	clock := newFakeClock()
	r := NewRevealer(clock.factory)
	rec := &recorder{}

	ctx, cancel := context.WithCancel(context.Background())
	r.Start(ctx, "abc", time.Millisecond, rec.callbacks())
	clock.next(t)
	cancel()
	waitDone(t, r)

	if _, completes := rec.snapshot(); completes != 0 {
		t.Fatalf("completes = %d after context cancel", completes)
	}
}

func TestModelRevealsAndCompletesOnce(t *testing.T) {
	m := New()
	cmd := m.SetText("hi", ChatSpeed)
	if cmd == nil {
		t.Fatal("SetText should schedule a tick")
	}

	m, cmd = m.Update(TickMsg{ID: m.ID(), tag: m.tag})
	if m.View() != "h" || cmd == nil {
		t.Fatalf("after first tick View() = %q, cmd nil = %v", m.View(), cmd == nil)
	}

	m, cmd = m.Update(TickMsg{ID: m.ID(), tag: m.tag})
	if m.View() != "hi" || !m.Complete() {
		t.Fatalf("after second tick View() = %q, Complete() = %v", m.View(), m.Complete())
	}
	if cmd == nil {
		t.Fatal("completion should emit a DoneMsg")
	}
	if msg, ok := cmd().(DoneMsg); !ok || msg.ID != m.ID() {
		t.Fatalf("completion cmd returned %#v", msg)
	}

	m, cmd = m.Update(TickMsg{ID: m.ID(), tag: m.tag})
	if cmd != nil {
		t.Fatal("complete model must not emit more commands")
	}
}

func TestModelRejectsForeignAndStaleTicks(t *testing.T) {
	m := New()
	m.SetText("abc", DefaultSpeed)
	staleTag := m.tag

	m, _ = m.Update(TickMsg{ID: m.ID() + 1000, tag: m.tag})
	if m.View() != "" {
		t.Fatalf("foreign tick advanced model to %q", m.View())
	}

	m.SetText("xyz", DefaultSpeed)
	m, _ = m.Update(TickMsg{ID: m.ID(), tag: staleTag})
	if m.View() != "" {
		t.Fatalf("stale tick advanced model to %q", m.View())
	}

	m, _ = m.Update(TickMsg{ID: m.ID(), tag: m.tag})
	if m.View() != "x" {
		t.Fatalf("View() = %q, want x", m.View())
	}
}

func TestModelSameTextKeepsProgress(t *testing.T) {
	m := New()
	m.SetText("abc", DefaultSpeed)
	m, _ = m.Update(TickMsg{ID: m.ID(), tag: m.tag})

	if cmd := m.SetText("abc", DefaultSpeed); cmd != nil {
		t.Fatal("same text and speed should not restart")
	}
	if m.View() != "a" {
		t.Fatalf("View() = %q, want a", m.View())
	}

	m.SetText("abc", BodySpeed)
	if m.View() != "" {
		t.Fatalf("speed change should restart, got %q", m.View())
	}
}

func TestModelEmptyTextAndStop(t *testing.T) {
	m := New()
	cmd := m.SetText("", DefaultSpeed)
	if cmd == nil {
		t.Fatal("empty text should emit DoneMsg immediately")
	}
	if _, ok := cmd().(DoneMsg); !ok {
		t.Fatal("expected DoneMsg")
	}

	m.SetText("abc", DefaultSpeed)
	m.Stop()
	m, cmd = m.Update(TickMsg{ID: m.ID(), tag: m.tag})
	if m.View() != "" || cmd != nil {
		t.Fatalf("stopped model advanced to %q", m.View())
	}
}
