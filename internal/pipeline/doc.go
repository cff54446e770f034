// Package pipeline implements the Markdown-to-HTML conversion stages of the viewer.
//
// This package handles:
//   - Grammar selection through Extensions (DefaultExtensions is the viewer's fixed set)
//   - Markdown to HTML fragment conversion via Goldmark
//   - The ^superscript^ goldmark extension
//   - Stylesheet injection into the viewer shell page
//
// File loading and request dispatch live in the root mdview package; this
// package only transforms strings.
package pipeline
