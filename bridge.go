package mdview

import (
	"context"
	"log/slog"

	"golang.org/x/sync/semaphore"
)

// Bridge exposes the operations the viewer window calls back into.
// Both operations are stateless; either may be called any number of times
// and from any goroutine.
type Bridge struct {
	renderer *Renderer
	startup  DocumentPath
	ext      Extensions
	workers  int
	sem      *semaphore.Weighted
	logger   *slog.Logger
}

// BridgeOption configures a Bridge.
type BridgeOption func(*Bridge)

// WithWorkers bounds concurrent renders. Zero or less picks a size from GOMAXPROCS.
func WithWorkers(n int) BridgeOption {
	return func(b *Bridge) {
		b.workers = n
	}
}

// WithLogger sets the logger used for render diagnostics.
func WithLogger(logger *slog.Logger) BridgeOption {
	return func(b *Bridge) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// NewBridge creates a Bridge rendering with renderer and answering path
// requests from startup.
func NewBridge(renderer *Renderer, startup DocumentPath, opts ...BridgeOption) *Bridge {
	b := &Bridge{
		renderer: renderer,
		startup:  startup,
		ext:      DefaultExtensions(),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(b)
	}
	b.workers = ResolveWorkers(b.workers)
	b.sem = semaphore.NewWeighted(int64(b.workers))
	return b
}

// Workers returns the render concurrency bound.
func (b *Bridge) Workers() int {
	return b.workers
}

// OpenMarkdown renders the document at path with the default extensions.
// It waits for a free render slot, honoring ctx while waiting.
// Errors print as a human-readable message suitable for the viewer.
func (b *Bridge) OpenMarkdown(ctx context.Context, path string) (string, error) {
	if err := b.sem.Acquire(ctx, 1); err != nil {
		return "", err
	}
	defer b.sem.Release(1)

	html, err := b.renderer.Render(ctx, RenderRequest{Path: path, Extensions: b.ext})
	if err != nil {
		b.logger.Debug("render failed", "path", path, "error", err)
		return "", err
	}
	b.logger.Debug("rendered", "path", path, "bytes", len(html))
	return html, nil
}

// SendMarkdownPath returns the startup document path, or ErrNoDocumentPath.
// It performs no I/O.
func (b *Bridge) SendMarkdownPath() (string, error) {
	path, ok := b.startup.Get()
	if !ok {
		return "", ErrNoDocumentPath
	}
	return path, nil
}
