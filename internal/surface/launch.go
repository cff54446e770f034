package surface

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/launcher/flags"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/rod/lib/utils"

	"github.com/alnah/go-mdview"
	"github.com/alnah/go-mdview/internal/process"
)

// Window defaults.
const (
	DefaultWidth         = 1024
	DefaultHeight        = 768
	DefaultLocateTimeout = 10 * time.Second

	// locatePoll is the interval between window lookups.
	locatePoll = 100 * time.Millisecond
)

// Options configures the browser hosting the window.
type Options struct {
	// URL is the shell page to open.
	URL string

	Width  int
	Height int

	// Bin is the browser executable. Empty falls back to ROD_BROWSER_BIN,
	// then to rod's lookup.
	Bin string

	// NoSandbox disables the Chrome sandbox. ROD_NO_SANDBOX=1 has the same
	// effect, and the sandbox is always disabled inside a container.
	NoSandbox bool

	// LocateTimeout bounds the search for the window after launch.
	LocateTimeout time.Duration

	Logger *slog.Logger
}

func (o Options) withDefaults() Options {
	if o.Width <= 0 {
		o.Width = DefaultWidth
	}
	if o.Height <= 0 {
		o.Height = DefaultHeight
	}
	if o.LocateTimeout <= 0 {
		o.LocateTimeout = DefaultLocateTimeout
	}
	if o.Bin == "" {
		o.Bin = os.Getenv("ROD_BROWSER_BIN")
	}
	if os.Getenv("ROD_NO_SANDBOX") == "1" {
		o.NoSandbox = true
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	return o
}

// newLauncher configures a headful launcher that opens opts.URL as an app window.
// The sandbox is off when opts.NoSandbox is set or inContainer is true, since
// Chrome cannot create its sandbox inside most containers.
func newLauncher(opts Options, inContainer bool) *launcher.Launcher {
	l := launcher.New().
		Headless(false).
		Set(flags.Flag("app"), opts.URL).
		Set(flags.Flag("window-size"), strconv.Itoa(opts.Width)+","+strconv.Itoa(opts.Height))

	// rod suppresses the startup window by default; the app window is the startup window.
	l = l.Delete(flags.Flag("no-startup-window"))

	if opts.Bin != "" {
		l = l.Bin(opts.Bin)
	}
	return l.NoSandbox(opts.NoSandbox || inContainer)
}

// Window is a launched browser showing the shell page.
type Window struct {
	opts     Options
	launcher *launcher.Launcher
	browser  *rod.Browser

	mu   sync.Mutex
	page *Page

	closed    atomic.Bool
	closeOnce sync.Once
	closeErr  error
}

// Launch starts the browser on opts.URL. Errors match mdview.ErrBrowserLaunch.
func Launch(ctx context.Context, opts Options) (*Window, error) {
	opts = opts.withDefaults()
	if opts.URL == "" {
		return nil, fmt.Errorf("%w: empty shell URL", mdview.ErrBrowserLaunch)
	}

	l := newLauncher(opts, utils.InContainer).Context(ctx)
	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", mdview.ErrBrowserLaunch, err)
	}

	b := rod.New().ControlURL(u)
	if err := b.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("%w: %v", mdview.ErrBrowserLaunch, err)
	}

	opts.Logger.Debug("browser launched", "pid", l.PID(), "bin", opts.Bin)
	return &Window{opts: opts, launcher: l, browser: b}, nil
}

// Locate returns the page showing the shell, polling until the locate
// timeout. Errors match mdview.ErrSurfaceMissing.
func (w *Window) Locate(ctx context.Context) (*Page, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.page != nil {
		return w.page, nil
	}

	ctx, cancel := context.WithTimeout(ctx, w.opts.LocateTimeout)
	defer cancel()

	ticker := time.NewTicker(locatePoll)
	defer ticker.Stop()

	for {
		if page := w.findShell(); page != nil {
			w.page = &Page{page: page}
			return w.page, nil
		}
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: no page at %s", mdview.ErrSurfaceMissing, w.opts.URL)
		case <-ticker.C:
		}
	}
}

// Surface is Locate typed for mdview.SurfaceLocator.
func (w *Window) Surface(ctx context.Context) (mdview.Surface, error) {
	p, err := w.Locate(ctx)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (w *Window) findShell() *rod.Page {
	pages, err := w.browser.Pages()
	if err != nil {
		return nil
	}
	for _, p := range pages {
		info, err := p.Info()
		if err != nil {
			continue
		}
		if isShellURL(info.URL, w.opts.URL) {
			return p
		}
	}
	return nil
}

// isShellURL matches the page URL against the shell URL, ignoring any fragment.
func isShellURL(pageURL, shellURL string) bool {
	pageURL, _, _ = strings.Cut(pageURL, "#")
	return pageURL == shellURL
}

// WaitLoad blocks until the shell page has finished loading.
func (w *Window) WaitLoad(ctx context.Context) error {
	p, err := w.Locate(ctx)
	if err != nil {
		return err
	}
	if err := p.page.Context(ctx).WaitLoad(); err != nil {
		return fmt.Errorf("waiting for shell page: %w", err)
	}
	return nil
}

// Wait blocks until the shell window is closed or ctx ends.
func (w *Window) Wait(ctx context.Context) error {
	p, err := w.Locate(ctx)
	if err != nil {
		return err
	}

	b := w.browser.Context(ctx)
	if err := (proto.TargetSetDiscoverTargets{Discover: true}).Call(b); err != nil {
		return fmt.Errorf("watching window: %w", err)
	}

	target := p.page.TargetID
	wait := b.EachEvent(func(e *proto.TargetTargetDestroyed) bool {
		return e.TargetID == target
	})

	done := make(chan struct{})
	go func() {
		wait()
		close(done)
	}()

	select {
	case <-done:
		if ctx.Err() != nil {
			return ctx.Err()
		}
		w.closed.Store(true)
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close shuts the browser down. The launcher's process group is killed
// afterwards in case the browser ignored the request.
func (w *Window) Close() error {
	w.closeOnce.Do(func() {
		var errs []error
		if !w.closed.Load() {
			if err := w.browser.Close(); err != nil {
				errs = append(errs, fmt.Errorf("closing browser: %w", err))
			}
		}
		if pid := w.launcher.PID(); pid > 0 {
			process.KillProcessGroup(pid)
		}
		w.launcher.Kill()
		w.launcher.Cleanup()
		w.closeErr = errors.Join(errs...)
	})
	return w.closeErr
}
