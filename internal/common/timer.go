// Package common provides shared utilities including timing functionality.
package common

import (
	"fmt"
	"time"
)

// Timer provides timing utilities for per-phase measurements with optional naming.
type Timer struct {
	start    time.Time
	name     string
	duration time.Duration
}

// NewTimer creates a new timer.
func NewTimer() *Timer {
	return &Timer{start: time.Now()}
}

// NewNamedTimer creates a new timer with the given name.
func NewNamedTimer(name string) *Timer {
	return &Timer{
		name:  name,
		start: time.Now(),
	}
}

// Stop stops the timer and returns the elapsed duration.
func (t *Timer) Stop() time.Duration {
	t.duration = time.Since(t.start)
	return t.duration
}

// Duration returns the recorded duration (only valid after Stop()).
func (t *Timer) Duration() time.Duration {
	return t.duration
}

// Name returns the timer name (empty string if unnamed).
func (t *Timer) Name() string {
	return t.name
}

// String returns a formatted string representation of the timer.
func (t *Timer) String() string {
	if t.name != "" {
		return fmt.Sprintf("%s: %v", t.name, t.duration)
	}
	return fmt.Sprintf("%v", t.duration)
}

// Phases accumulates named durations for a multi-phase run.
type Phases struct {
	order     []string
	durations map[string]time.Duration
}

// NewPhases creates an empty phase accumulator.
func NewPhases() *Phases {
	return &Phases{durations: make(map[string]time.Duration)}
}

// Record stores the duration for a named phase, preserving insertion order.
func (p *Phases) Record(name string, d time.Duration) {
	if _, seen := p.durations[name]; !seen {
		p.order = append(p.order, name)
	}
	p.durations[name] += d
}

// Get returns the accumulated duration for a phase.
func (p *Phases) Get(name string) time.Duration {
	return p.durations[name]
}

// Total returns the sum of all recorded phases.
func (p *Phases) Total() time.Duration {
	var total time.Duration
	for _, d := range p.durations {
		total += d
	}
	return total
}

// Names returns phase names in recording order.
func (p *Phases) Names() []string {
	out := make([]string, len(p.order))
	copy(out, p.order)
	return out
}
