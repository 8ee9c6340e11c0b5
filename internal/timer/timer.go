// Package timer is an in-memory stopwatch. Nothing here is persisted.
package timer

import "fmt"

type Status int

const (
	Stopped Status = iota
	Running
	Paused
)

func (s Status) String() string {
	switch s {
	case Running:
		return "running"
	case Paused:
		return "paused"
	default:
		return "stopped"
	}
}

// Stopwatch counts elapsed seconds. Callers drive it with Tick once per
// second; it is not safe for concurrent use.
type Stopwatch struct {
	running bool
	paused  bool
	seconds int
}

func New() *Stopwatch {
	return &Stopwatch{}
}

func (s *Stopwatch) Status() Status {
	switch {
	case s.running && s.paused:
		return Paused
	case s.running:
		return Running
	default:
		return Stopped
	}
}

func (s *Stopwatch) Seconds() int {
	return s.seconds
}

// Start begins counting from the current value. Starting a paused
// stopwatch resumes it.
func (s *Stopwatch) Start() {
	s.running = true
	s.paused = false
}

// Pause freezes the count. It has no effect unless running.
func (s *Stopwatch) Pause() {
	if s.running {
		s.paused = true
	}
}

// Resume continues a paused count.
func (s *Stopwatch) Resume() {
	if s.running {
		s.paused = false
	}
}

// Toggle pauses a running stopwatch and resumes a paused one.
func (s *Stopwatch) Toggle() {
	if s.paused {
		s.Resume()
	} else {
		s.Pause()
	}
}

// Stop halts the stopwatch and zeroes it.
func (s *Stopwatch) Stop() {
	s.Reset()
}

// Reset returns to Stopped with zero seconds from any state.
func (s *Stopwatch) Reset() {
	s.running = false
	s.paused = false
	s.seconds = 0
}

// Tick adds one second while running and not paused. It reports whether the
// count changed.
func (s *Stopwatch) Tick() bool {
	if !s.running || s.paused {
		return false
	}
	s.seconds++
	return true
}

func (s *Stopwatch) String() string {
	return Format(s.seconds)
}

// Format renders seconds as HH:MM:SS. Hours are not wrapped at 24.
func Format(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d:%02d", seconds/3600, seconds/60%60, seconds%60)
}
