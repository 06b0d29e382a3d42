package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
)

// Spinner draws an animated status line while a release step runs.
// Frames and speed come from a bubbles spinner preset; the drawing loop is
// plain so it works on any writer without a full bubbletea program.
type Spinner struct {
	w      io.Writer
	label  string
	preset spinner.Spinner

	parent context.Context
	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	started bool
	exited  chan struct{}
}

// newSpinner creates a spinner drawing on w that stops when ctx is cancelled.
func newSpinner(ctx context.Context, w io.Writer, label string) *Spinner {
	inner, cancel := context.WithCancel(ctx)
	return &Spinner{
		w:      w,
		label:  label,
		preset: spinner.MiniDot,
		parent: ctx,
		ctx:    inner,
		cancel: cancel,
		exited: make(chan struct{}),
	}
}

// Start begins the animation in a background goroutine.
func (s *Spinner) Start() {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return
	}
	s.started = true
	s.mu.Unlock()

	interval := s.preset.FPS
	if interval <= 0 {
		interval = 100 * time.Millisecond
	}

	go func() {
		defer close(s.exited)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for frame := 0; ; frame++ {
			select {
			case <-s.ctx.Done():
				s.clearLine()
				return
			case <-ticker.C:
				glyph := s.preset.Frames[frame%len(s.preset.Frames)]
				s.mu.Lock()
				fmt.Fprintf(s.w, "\r%s %s", styleIconSpinner.Render(glyph), StyleDim.Render(s.label))
				s.mu.Unlock()
			}
		}
	}()
}

// Stop halts the animation and clears the line. Safe to call repeatedly,
// and before Start.
func (s *Spinner) Stop() {
	s.cancel()
	s.mu.Lock()
	started := s.started
	s.mu.Unlock()
	if started {
		<-s.exited
	}
	s.clearLine()
}

func (s *Spinner) clearLine() {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.w, "\r%s\r", strings.Repeat(" ", len(s.label)+4))
}

// StopWithSuccess stops the spinner and prints a success line for the step.
func (s *Spinner) StopWithSuccess(message string) {
	s.Stop()
	fmt.Fprintln(s.w, styleIconSuccess.Render(iconSuccess)+" "+message)
}

// StopWithError stops the spinner and prints a failure line for the step.
func (s *Spinner) StopWithError(message string) {
	s.Stop()
	fmt.Fprintln(s.w, styleIconError.Render(iconError)+" "+message)
}

// Cancelled reports whether the caller's context ended, as opposed to an
// explicit Stop.
func (s *Spinner) Cancelled() bool {
	return s.parent.Err() != nil
}
