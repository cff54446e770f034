package main

import (
	"context"
	"io"
	"os"

	"github.com/alnah/go-mdview"
	"github.com/alnah/go-mdview/internal/surface"
)

// window is the display window as driven by the CLI.
type window interface {
	Surface(ctx context.Context) (mdview.Surface, error)
	WaitLoad(ctx context.Context) error
	Wait(ctx context.Context) error
	Close() error
}

// Compile-time interface check.
var _ window = (*surface.Window)(nil)

// Environment holds injectable dependencies for testability.
type Environment struct {
	Stdout  io.Writer
	Stderr  io.Writer
	Getenv  func(string) string
	Environ func() []string
	Launch  func(ctx context.Context, opts surface.Options) (window, error)
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		Getenv:  os.Getenv,
		Environ: os.Environ,
		Launch:  launchWindow,
	}
}

func launchWindow(ctx context.Context, opts surface.Options) (window, error) {
	w, err := surface.Launch(ctx, opts)
	if err != nil {
		return nil, err
	}
	return w, nil
}
