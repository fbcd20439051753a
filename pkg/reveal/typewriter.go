// Package reveal shows text one character at a time.
package reveal

import (
	"log/slog"
	"time"
)

// MinSpeed is the shortest delay between two revealed characters.
const MinSpeed = time.Millisecond

// Speeds used across the UI.
const (
	SummarySpeed = 40 * time.Millisecond
	BodySpeed    = 25 * time.Millisecond
	ChatSpeed    = 20 * time.Millisecond
	DefaultSpeed = 30 * time.Millisecond
)

// ClampSpeed returns speed, or MinSpeed when speed is not positive.
func ClampSpeed(speed time.Duration) time.Duration {
	if speed <= 0 {
		slog.Debug("reveal_speed_clamped", "requested", speed, "used", MinSpeed)
		return MinSpeed
	}
	return speed
}

// SpeedFromMillis converts a configured millisecond value, clamping it.
func SpeedFromMillis(ms int) time.Duration {
	return ClampSpeed(time.Duration(ms) * time.Millisecond)
}

// Typewriter is the clock-free reveal state machine. The displayed text is
// always a rune prefix of the target text and grows by one rune per Tick.
type Typewriter struct {
	runes     []rune
	text      string
	speed     time.Duration
	pos       int
	started   bool
	complete  bool
	cancelled bool
}

// Start resets the reveal to the empty prefix of text. It reports whether
// the reveal is already complete, which only happens for empty text.
func (t *Typewriter) Start(text string, speed time.Duration) bool {
	t.runes = []rune(text)
	t.text = text
	t.speed = ClampSpeed(speed)
	t.pos = 0
	t.started = true
	t.cancelled = false
	t.complete = len(t.runes) == 0
	return t.complete
}

// Tick reveals one more rune. It reports true exactly once: on the tick that
// reveals the last rune. Ticks on a complete, cancelled or unstarted
// typewriter do nothing.
func (t *Typewriter) Tick() bool {
	if !t.Active() {
		return false
	}
	t.pos++
	if t.pos >= len(t.runes) {
		t.pos = len(t.runes)
		t.complete = true
		return true
	}
	return false
}

// Cancel stops the reveal; the displayed prefix is kept.
func (t *Typewriter) Cancel() {
	t.cancelled = true
}

// Active reports whether more ticks are expected.
func (t *Typewriter) Active() bool {
	return t.started && !t.complete && !t.cancelled
}

// Matches reports whether the typewriter is already revealing text at speed.
func (t *Typewriter) Matches(text string, speed time.Duration) bool {
	return t.started && !t.cancelled && t.text == text && t.speed == ClampSpeed(speed)
}

func (t *Typewriter) Displayed() string { return string(t.runes[:t.pos]) }
func (t *Typewriter) Complete() bool    { return t.complete }
func (t *Typewriter) Cancelled() bool   { return t.cancelled }
func (t *Typewriter) Text() string      { return t.text }
func (t *Typewriter) Speed() time.Duration {
	return t.speed
}
