package surface

import (
	"context"
	"fmt"
	"runtime"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"

	"github.com/alnah/go-mdview"
)

// effectSupported reports whether the translucency effect exists on this platform.
var effectSupported = runtime.GOOS == "windows"

const (
	emitScript   = `(name, detail) => { window.dispatchEvent(new CustomEvent(name, { detail })) }`
	effectScript = `() => { document.documentElement.classList.add("translucent") }`
)

// Page is the shell page inside the window. It implements mdview.Surface.
type Page struct {
	page *rod.Page
}

// Emit dispatches a DOM CustomEvent named name on window, with payload as its detail.
func (p *Page) Emit(ctx context.Context, name, payload string) error {
	if _, err := p.page.Context(ctx).Eval(emitScript, name, payload); err != nil {
		return fmt.Errorf("emitting %s: %w", name, err)
	}
	return nil
}

// ApplyEffect turns on the translucent backdrop. It returns
// mdview.ErrEffectUnavailable outside Windows.
func (p *Page) ApplyEffect(ctx context.Context) error {
	if !effectSupported {
		return mdview.ErrEffectUnavailable
	}
	if _, err := p.page.Context(ctx).Eval(effectScript); err != nil {
		return fmt.Errorf("%w: %v", mdview.ErrEffectUnavailable, err)
	}
	return nil
}

func (p *Page) setState(ctx context.Context, state proto.BrowserWindowState) error {
	if err := p.page.Context(ctx).SetWindow(&proto.BrowserBounds{WindowState: state}); err != nil {
		return fmt.Errorf("setting window %s: %w", state, err)
	}
	return nil
}

func (p *Page) Minimize(ctx context.Context) error {
	return p.setState(ctx, proto.BrowserWindowStateMinimized)
}

func (p *Page) Unminimize(ctx context.Context) error {
	return p.setState(ctx, proto.BrowserWindowStateNormal)
}

func (p *Page) Maximize(ctx context.Context) error {
	return p.setState(ctx, proto.BrowserWindowStateMaximized)
}

func (p *Page) Unmaximize(ctx context.Context) error {
	return p.setState(ctx, proto.BrowserWindowStateNormal)
}

// Show restores the window to its normal on-screen state.
func (p *Page) Show(ctx context.Context) error {
	return p.setState(ctx, proto.BrowserWindowStateNormal)
}

// Focus brings the page to the front.
func (p *Page) Focus(ctx context.Context) error {
	if _, err := p.page.Context(ctx).Activate(); err != nil {
		return fmt.Errorf("focusing window: %w", err)
	}
	return nil
}

// Compile-time interface check.
var _ mdview.Surface = (*Page)(nil)
