package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
)

// ErrHTMLConversion indicates HTML conversion failed.
var ErrHTMLConversion = errors.New("HTML conversion failed")

// DefaultHighlightStyle is the chroma style used when highlighting is on and no style is set.
const DefaultHighlightStyle = "github"

// Highlight configures optional code block syntax highlighting.
// It changes code block markup only and is off by default.
type Highlight struct {
	Enabled bool
	Style   string
}

// HTMLConverter abstracts Markdown to HTML fragment conversion.
type HTMLConverter interface {
	ToHTML(ctx context.Context, content string, ext Extensions) (string, error)
}

// GoldmarkConverter converts Markdown to HTML fragments using goldmark.
// It holds no per-document state; a goldmark engine is built for every call
// from the extensions passed in, so one converter serves concurrent callers.
type GoldmarkConverter struct {
	highlight Highlight
}

// NewGoldmarkConverter creates a GoldmarkConverter with the given highlighting setup.
func NewGoldmarkConverter(hl Highlight) *GoldmarkConverter {
	if hl.Enabled && hl.Style == "" {
		hl.Style = DefaultHighlightStyle
	}
	return &GoldmarkConverter{highlight: hl}
}

// newEngine builds a goldmark instance for ext. Renderer options stay at
// goldmark defaults: soft line breaks, HTML5 void tags, raw HTML omitted.
func (c *GoldmarkConverter) newEngine(ext Extensions) goldmark.Markdown {
	exts := ext.extenders()
	if c.highlight.Enabled {
		exts = append(exts, highlighting.NewHighlighting(
			highlighting.WithStyle(c.highlight.Style),
			highlighting.WithFormatOptions(
				chromahtml.WithClasses(true),
			),
		))
	}

	opts := []goldmark.Option{goldmark.WithExtensions(exts...)}
	if po := ext.parserOptions(); len(po) > 0 {
		opts = append(opts, goldmark.WithParserOptions(po...))
	}
	return goldmark.New(opts...)
}

// ToHTML converts Markdown content to an HTML fragment.
// Supports context cancellation via goroutine + select pattern since
// Goldmark doesn't natively support context.
func (c *GoldmarkConverter) ToHTML(ctx context.Context, content string, ext Extensions) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	type result struct {
		html string
		err  error
	}

	done := make(chan result, 1)
	md := c.newEngine(ext)

	go func() {
		var buf bytes.Buffer
		if err := md.Convert([]byte(content), &buf); err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrHTMLConversion, err)}
			return
		}
		done <- result{html: buf.String()}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		return r.html, r.err
	}
}

// Compile-time interface check.
var _ HTMLConverter = (*GoldmarkConverter)(nil)
