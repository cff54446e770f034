// Package fileutil provides file and path utility functions.
package fileutil

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"
)

// ErrInvalidUTF8 indicates a file whose contents are not valid UTF-8 text.
var ErrInvalidUTF8 = errors.New("stream did not contain valid UTF-8")

// ReadText reads the whole file at path as UTF-8 text.
// The returned error keeps the *fs.PathError from os.ReadFile so callers can
// relay its message verbatim and classify it with errors.Is.
func ReadText(path string) (string, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path is chosen by the viewer user
	if err != nil {
		return "", err
	}
	if !utf8.Valid(data) {
		return "", fmt.Errorf("%s: %w", path, ErrInvalidUTF8)
	}
	return string(data), nil
}

// FileExists returns true if the path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// IsFilePath returns true if the string looks like a file path rather than a name.
// A string containing path separators (/, \) is treated as a path.
//
// Examples:
//   - "github" -> false (name)
//   - "./custom.css" -> true (relative path)
//   - "/etc/mdview/viewer.yaml" -> true (absolute)
//   - "C:\styles\dark.css" -> true (Windows)
func IsFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}
