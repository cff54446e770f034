// Package server serves the viewer shell page and the bridge API over loopback HTTP.
//
// Routes:
//
//	GET  /?token=...              viewer shell page
//	GET  /health                  liveness probe, no token
//	POST /api/open_markdown       {"path": "..."} -> {"value": html} | {"error": msg}
//	POST /api/send_markdown_path  {} -> {"value": path} | {"error": msg}
//
// API calls must carry the session token in the X-Mdview-Token header.
package server
