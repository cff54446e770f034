// Package config loads the viewer's YAML configuration file.
//
// Files are looked up by name in the working directory and then in the user
// config directory (for example ~/.config/mdview/), or loaded from an explicit
// path. Parsing is strict: unknown keys are errors.
package config
