package mdview

// ResolveDocumentPath returns the document path from startup arguments.
// Position 0 is the program name; position 1, when present, is the path.
// Further arguments are ignored and nothing about the path is validated.
func ResolveDocumentPath(args []string) (string, bool) {
	if len(args) < 2 {
		return "", false
	}
	return args[1], true
}

// DocumentPath is the startup document path, resolved once and shared read-only.
// The zero value means no path was given.
type DocumentPath struct {
	path string
	ok   bool
}

// NewDocumentPath resolves args with ResolveDocumentPath.
func NewDocumentPath(args []string) DocumentPath {
	path, ok := ResolveDocumentPath(args)
	return DocumentPath{path: path, ok: ok}
}

// Get returns the path and whether one was provided.
func (d DocumentPath) Get() (string, bool) {
	return d.path, d.ok
}
