package console

import (
	"io"
	"os"
	"time"

	"github.com/briandowns/spinner"
)

// Spinner shows progress on stderr while files are being checked.
// It does nothing when output is not styled.
type Spinner struct {
	s *spinner.Spinner
}

// NewSpinner returns a spinner labelled with message.
func NewSpinner(message string) *Spinner {
	return newSpinner(message, os.Stderr, Styled)
}

func newSpinner(message string, w io.Writer, enabled bool) *Spinner {
	if !enabled {
		return &Spinner{}
	}
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(w))
	s.Suffix = " " + message
	_ = s.Color("cyan")
	return &Spinner{s: s}
}

func (s *Spinner) Start() {
	if s.s != nil {
		s.s.Start()
	}
}

func (s *Spinner) Stop() {
	if s.s != nil {
		s.s.Stop()
	}
}

// Update replaces the label shown next to the spinner.
func (s *Spinner) Update(message string) {
	if s.s != nil {
		s.s.Lock()
		s.s.Suffix = " " + message
		s.s.Unlock()
	}
}

// Enabled reports whether the spinner draws anything.
func (s *Spinner) Enabled() bool { return s.s != nil }
