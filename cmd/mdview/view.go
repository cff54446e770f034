package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/alnah/go-mdview"
	"github.com/alnah/go-mdview/internal/assets"
	"github.com/alnah/go-mdview/internal/config"
	"github.com/alnah/go-mdview/internal/fileutil"
	"github.com/alnah/go-mdview/internal/server"
	"github.com/alnah/go-mdview/internal/surface"
)

// Sentinel errors for CLI operations.
var (
	ErrReadCSS            = errors.New("failed to read CSS file")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
)

// runView opens the viewer window and blocks until it closes or ctx ends.
// program and positional rebuild the launch arguments; the first positional
// argument is the startup document.
func runView(ctx context.Context, program string, positional []string, flags *viewFlags, env *Environment) error {
	if flags.workers < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidWorkerCount, flags.workers)
	}

	cfg, err := loadViewConfig(flags.common.config, env.Getenv)
	if err != nil {
		return err
	}
	applyEnvConfig(loadEnvConfig(env.Getenv), cfg)
	mergeFlags(flags, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := newLogger(env.Stderr, cfg.Log)

	resolver, err := assets.NewAssetResolver(cfg.Assets.BasePath)
	if err != nil {
		return err
	}
	css, err := resolveCSSContent(cfg.Style, flags.noStyle, resolver)
	if err != nil {
		return err
	}
	shell, err := resolver.LoadTemplate(assets.ShellTemplateName)
	if err != nil {
		return err
	}

	startup := mdview.NewDocumentPath(append([]string{program}, positional...))

	var renderOpts []mdview.RendererOption
	if cfg.Render.Highlight.Enabled {
		renderOpts = append(renderOpts, mdview.WithHighlight(cfg.Render.Highlight.Style))
	}
	bridge := mdview.NewBridge(mdview.NewRenderer(renderOpts...), startup,
		mdview.WithWorkers(cfg.Render.Workers),
		mdview.WithLogger(logger),
	)
	logger.Debug("bridge ready", "workers", bridge.Workers())

	srv, err := server.NewServer(bridge, shell, css, server.WithLogger(logger))
	if err != nil {
		return err
	}
	ln, err := server.Listen(cfg.Server.Addr)
	if err != nil {
		return err
	}

	serveCtx, stopServer := context.WithCancel(ctx)
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- srv.Serve(serveCtx, ln)
	}()
	defer func() {
		stopServer()
		if err := <-serveErr; err != nil {
			logger.Warn("bridge server stopped", "error", err)
		}
	}()

	win, err := env.Launch(ctx, surface.Options{
		URL:           srv.ShellURL(ln),
		Width:         cfg.Window.Width,
		Height:        cfg.Window.Height,
		Bin:           cfg.Browser.Bin,
		NoSandbox:     cfg.Browser.NoSandbox,
		LocateTimeout: cfg.LocateTimeout(),
		Logger:        logger,
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := win.Close(); err != nil {
			logger.Debug("closing window", "error", err)
		}
	}()

	if err := win.WaitLoad(ctx); err != nil {
		return canceledOK(ctx, err)
	}

	seq := mdview.NewSequencer(win.Surface, startup,
		mdview.WithEffects(cfg.Window.Effects),
		mdview.WithSequencerLogger(logger),
	)
	if err := seq.Ready(ctx); err != nil {
		return canceledOK(ctx, err)
	}

	return canceledOK(ctx, win.Wait(ctx))
}

// canceledOK treats an interrupted ctx as a normal exit.
func canceledOK(ctx context.Context, err error) error {
	if err != nil && ctx.Err() != nil {
		return nil
	}
	return err
}

// loadViewConfig loads the config named by the flag, then MDVIEW_CONFIG.
// Without either, the default name is tried and a missing file is not an error.
func loadViewConfig(flagConfig string, getenv func(string) string) (*config.Config, error) {
	name := flagConfig
	if name == "" {
		name = getenv("MDVIEW_CONFIG")
	}
	if name != "" {
		cfg, err := config.LoadConfig(name)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
		return cfg, nil
	}

	cfg, err := config.LoadConfig(config.DefaultName)
	if errors.Is(err, config.ErrConfigNotFound) {
		return config.DefaultConfig(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// resolveCSSContent resolves the stylesheet from a file path or style name.
// A value that looks like a path (or ends in .css) is read directly; anything else is loaded
// by name, with the empty name meaning the default style.
func resolveCSSContent(style string, noStyle bool, loader assets.AssetLoader) (string, error) {
	if noStyle {
		return "", nil
	}

	if fileutil.IsFilePath(style) || strings.HasSuffix(style, ".css") {
		content, err := os.ReadFile(style) // #nosec G304 -- user-provided path
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrReadCSS, err)
		}
		return string(content), nil
	}

	if style == "" {
		style = assets.DefaultStyleName
	}
	return loader.LoadStyle(style)
}
