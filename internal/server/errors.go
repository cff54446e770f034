package server

import "errors"

// Sentinel errors for server setup.
var (
	// ErrNonLoopback indicates a listen address that is not a loopback address.
	ErrNonLoopback = errors.New("listen address must be loopback")

	// ErrShellTemplate indicates the viewer shell template could not be parsed or executed.
	ErrShellTemplate = errors.New("invalid shell template")
)
