package assets

import (
	"fmt"
	"strings"
)

// DefaultStyleName is the name of the built-in CSS style.
const DefaultStyleName = "github"

// ShellTemplateName is the name of the viewer shell page template.
const ShellTemplateName = "viewer"

// AssetLoader defines the contract for loading CSS styles and HTML templates.
type AssetLoader interface {
	// LoadStyle loads a CSS style by name (without .css extension).
	// Returns ErrStyleNotFound if the style doesn't exist.
	// Returns ErrInvalidAssetName if the name contains invalid characters.
	LoadStyle(name string) (string, error)

	// LoadTemplate loads an HTML template by name (without .html extension).
	// Returns ErrTemplateNotFound if the template doesn't exist.
	// Returns ErrInvalidAssetName if the name contains invalid characters.
	LoadTemplate(name string) (string, error)
}

// maxAssetNameLength bounds style and template names.
const maxAssetNameLength = 64

// ValidateAssetName checks that an asset name is a bare file stem.
// Names must be non-empty, at most maxAssetNameLength bytes, and free of
// path separators, dots, and NUL bytes.
func ValidateAssetName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	if len(name) > maxAssetNameLength || strings.ContainsAny(name, "/\\.\x00") {
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}
