// Package surface drives the viewer window: a Chrome or Chromium instance
// running the shell page in app mode, controlled over the DevTools protocol.
package surface
