package mdview

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
)

// FilePathEvent is the event carrying the startup document path to the window.
const FilePathEvent = "file_path"

// Surface is the display window as seen by the Sequencer.
type Surface interface {
	Emit(ctx context.Context, name string, payload string) error
	ApplyEffect(ctx context.Context) error
	Minimize(ctx context.Context) error
	Unminimize(ctx context.Context) error
	Maximize(ctx context.Context) error
	Unmaximize(ctx context.Context) error
	Show(ctx context.Context) error
	Focus(ctx context.Context) error
}

// SurfaceLocator finds the display window. It returns an error matching
// ErrSurfaceMissing when no window exists.
type SurfaceLocator func(ctx context.Context) (Surface, error)

// Sequencer runs the one-shot work due when the window becomes ready:
// it pushes the startup path, applies the platform effect, and runs the
// minimize/maximize/show/focus sequence that brings the window to the front.
type Sequencer struct {
	locate  SurfaceLocator
	startup DocumentPath
	effects bool
	logger  *slog.Logger

	once  sync.Once
	ready atomic.Bool
	err   error
}

// SequencerOption configures a Sequencer.
type SequencerOption func(*Sequencer)

// WithEffects toggles the translucency effect step. It is on by default.
func WithEffects(enabled bool) SequencerOption {
	return func(s *Sequencer) {
		s.effects = enabled
	}
}

// WithSequencerLogger sets the logger receiving swallowed step failures.
func WithSequencerLogger(logger *slog.Logger) SequencerOption {
	return func(s *Sequencer) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewSequencer creates a Sequencer in the not-ready state.
func NewSequencer(locate SurfaceLocator, startup DocumentPath, opts ...SequencerOption) *Sequencer {
	s := &Sequencer{
		locate:  locate,
		startup: startup,
		effects: true,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// IsReady reports whether Ready has run.
func (s *Sequencer) IsReady() bool {
	return s.ready.Load()
}

// Ready transitions to the ready state and runs the readiness work once.
// Later calls do nothing and return the first call's result.
// The only error is a missing window, which callers treat as fatal.
func (s *Sequencer) Ready(ctx context.Context) error {
	s.once.Do(func() {
		s.ready.Store(true)
		s.err = s.run(ctx)
	})
	return s.err
}

func (s *Sequencer) run(ctx context.Context) error {
	surface, err := s.locate(ctx)
	if err != nil {
		if errors.Is(err, ErrSurfaceMissing) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrSurfaceMissing, err)
	}
	if surface == nil {
		return ErrSurfaceMissing
	}

	if path, ok := s.startup.Get(); ok {
		s.bestEffort("emit "+FilePathEvent, func() error {
			return surface.Emit(ctx, FilePathEvent, path)
		})
	}

	if s.effects {
		s.bestEffort("apply effect", func() error { return surface.ApplyEffect(ctx) })
	}

	// Cycling the window state works around windows that open behind others
	// or without keyboard focus.
	steps := []struct {
		name string
		fn   func(context.Context) error
	}{
		{"minimize", surface.Minimize},
		{"unminimize", surface.Unminimize},
		{"maximize", surface.Maximize},
		{"unmaximize", surface.Unmaximize},
		{"show", surface.Show},
		{"focus", surface.Focus},
	}
	for _, step := range steps {
		s.bestEffort(step.name, func() error { return step.fn(ctx) })
	}
	return nil
}

// bestEffort runs a cosmetic step and swallows its failure. The debug record
// is diagnostic only and nothing acts on it. ErrEffectUnavailable is expected
// on every platform without the effect, so it is not logged at all.
func (s *Sequencer) bestEffort(step string, fn func() error) {
	err := fn()
	if err == nil || errors.Is(err, ErrEffectUnavailable) {
		return
	}
	s.logger.Debug("window step skipped", "step", step, "error", err)
}
