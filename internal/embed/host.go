// Package embed defines the three narrow callbacks the core requires from
// its embedding environment (spec.md §6 "Embedder callbacks required"):
// current_ticks(), sleep(ms), and interrupt_pending(). No other syscall is
// needed by the core - everything else (graphics, soft keys, persistence)
// is an external collaborator per spec.md §1.
package embed

import "time"

// Host is implemented by SystemHost (time.Now/time.Sleep and a
// caller-supplied interrupt poll; cmd/rpl passes a poll that never reports
// an interrupt) and by the deterministic FakeHost used in tests.
type Host interface {
	// Ticks returns a monotonic millisecond counter.
	Ticks() int64
	// Sleep blocks for ms milliseconds, or returns early if interrupted.
	Sleep(ms int)
	// InterruptPending reports whether the user has requested the running
	// program stop (spec.md §4.7 "an interrupt flag is polled; if set,
	// evaluation aborts with interrupted").
	InterruptPending() bool
}

// SystemHost is the production Host, grounded on the teacher's own use of
// time.Now/time.Sleep for wall-clock facilities elsewhere in cmd/surge
// (there is no third-party clock/sleep library anywhere in the pack -
// time.Now/time.Sleep are exactly what the ecosystem uses for this).
type SystemHost struct {
	start     time.Time
	interrupt func() bool
}

// NewSystemHost builds a Host whose InterruptPending calls the supplied
// poll function (typically backed by a signal.Notify channel or a TUI key
// handler owned by cmd/rpl).
func NewSystemHost(poll func() bool) *SystemHost {
	return &SystemHost{start: time.Now(), interrupt: poll}
}

func (s *SystemHost) Ticks() int64 { return time.Since(s.start).Milliseconds() }

func (s *SystemHost) Sleep(ms int) {
	if ms <= 0 {
		return
	}
	deadline := time.Now().Add(time.Duration(ms) * time.Millisecond)
	const pollEvery = 10 * time.Millisecond
	for {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return
		}
		if s.interrupt != nil && s.interrupt() {
			return
		}
		d := pollEvery
		if remaining < d {
			d = remaining
		}
		time.Sleep(d)
	}
}

func (s *SystemHost) InterruptPending() bool {
	if s.interrupt == nil {
		return false
	}
	return s.interrupt()
}

// FakeHost is a deterministic test double: Ticks advances by a fixed step
// on each call, Sleep is a no-op, and Interrupted can be flipped directly.
type FakeHost struct {
	ticks       int64
	Step        int64
	Interrupted bool
}

func NewFakeHost() *FakeHost { return &FakeHost{Step: 1} }

func (f *FakeHost) Ticks() int64 {
	f.ticks += f.Step
	return f.ticks
}

func (f *FakeHost) Sleep(ms int) {}

func (f *FakeHost) InterruptPending() bool { return f.Interrupted }
