// Package mdview renders local Markdown documents for a desktop viewer window.
//
// # Rendering
//
// A Renderer reads one file and converts it to an HTML fragment with goldmark:
//
//	r := mdview.NewRenderer()
//	html, err := r.Render(ctx, mdview.RenderRequest{
//	    Path:       "README.md",
//	    Extensions: mdview.DefaultExtensions(),
//	})
//
// Load failures match ErrRead; their message is the operating system's
// description of the problem.
//
// # Bridge
//
// The viewer window calls back into the process through a Bridge, which
// offers OpenMarkdown and SendMarkdownPath. Renders are bounded by a worker
// limit (see WithWorkers and ResolveWorkers).
//
// # Window lifecycle
//
// A Sequencer runs once when the window has loaded. It locates the window,
// pushes the startup path as a FilePathEvent, and cycles the window state so
// the window ends up visible and focused. Only a missing window is an error
// (ErrSurfaceMissing); every cosmetic step is best-effort.
package mdview
