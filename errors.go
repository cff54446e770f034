package mdview

import "errors"

// Sentinel errors for viewer operations.
var (
	// ErrRead marks a document that could not be loaded: missing, unreadable,
	// or not valid UTF-8. Errors carrying it print the underlying message only.
	ErrRead = errors.New("failed to read document")

	// ErrNoDocumentPath is returned when the process was started without a
	// document path. Its message is shown to the user as is.
	ErrNoDocumentPath = errors.New("Markdown file path not provided.") //nolint:staticcheck // user-facing text

	// ErrEffectUnavailable indicates the window translucency effect is not
	// supported on this platform.
	ErrEffectUnavailable = errors.New("window effect unavailable")

	// ErrSurfaceMissing indicates the display window could not be located at
	// readiness time. It is fatal.
	ErrSurfaceMissing = errors.New("display surface not found")

	// ErrBrowserLaunch indicates the browser hosting the display window failed to start.
	ErrBrowserLaunch = errors.New("failed to launch browser")
)

// ReadError reports a failed document load.
// Error returns the cause's message unchanged so it can be relayed to the viewer.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return e.Err.Error()
}

// Unwrap exposes both ErrRead and the cause, so errors.Is matches either
// ErrRead or fs.ErrNotExist.
func (e *ReadError) Unwrap() []error {
	return []error{ErrRead, e.Err}
}
