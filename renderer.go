package mdview

import (
	"context"
	"fmt"

	"github.com/alnah/go-mdview/internal/fileutil"
	"github.com/alnah/go-mdview/internal/pipeline"
)

// Extensions selects the Markdown grammar features recognized by a render.
type Extensions = pipeline.Extensions

// DefaultExtensions returns the grammar the viewer renders with: strikethrough,
// tables, autolinks, task lists, superscript, footnotes and description lists.
func DefaultExtensions() Extensions {
	return pipeline.DefaultExtensions()
}

// RenderRequest names one document and the grammar to convert it under.
type RenderRequest struct {
	Path       string
	Extensions Extensions
}

// Renderer loads Markdown documents from disk and converts them to HTML fragments.
// It keeps no state between calls: every render re-reads its file.
type Renderer struct {
	converter pipeline.HTMLConverter
	readFile  func(path string) (string, error)
	highlight pipeline.Highlight
}

// RendererOption configures a Renderer.
type RendererOption func(*Renderer)

// WithHighlight enables code block syntax highlighting with the given chroma style.
// An empty style selects the default.
func WithHighlight(style string) RendererOption {
	return func(r *Renderer) {
		r.highlight = pipeline.Highlight{Enabled: true, Style: style}
	}
}

// NewRenderer creates a Renderer.
func NewRenderer(opts ...RendererOption) *Renderer {
	r := &Renderer{readFile: fileutil.ReadText}
	for _, opt := range opts {
		opt(r)
	}
	if r.converter == nil {
		r.converter = pipeline.NewGoldmarkConverter(r.highlight)
	}
	return r
}

// Render reads req.Path and converts it under req.Extensions.
// Load failures are returned as *ReadError, matching ErrRead.
func (r *Renderer) Render(ctx context.Context, req RenderRequest) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	content, err := r.readFile(req.Path)
	if err != nil {
		return "", &ReadError{Path: req.Path, Err: err}
	}

	html, err := r.converter.ToHTML(ctx, content, req.Extensions)
	if err != nil {
		return "", fmt.Errorf("rendering %s: %w", req.Path, err)
	}
	return html, nil
}
