package server

import (
	"encoding/json"
	"net/http"
)

// response is the envelope of every API reply: exactly one field is set.
type response struct {
	Value *string `json:"value,omitempty"`
	Error string  `json:"error,omitempty"`
}

type openRequest struct {
	Path *string `json:"path"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

func (s *Server) handleShell(w http.ResponseWriter, r *http.Request) {
	if !validToken(r.URL.Query().Get("token"), s.token) {
		http.Error(w, "invalid session token", http.StatusUnauthorized)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(s.shell)
}

func (s *Server) handleOpenMarkdown(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var req openRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.Path == nil {
		jsonError(w, "path is required", http.StatusBadRequest)
		return
	}

	html, err := s.bridge.OpenMarkdown(r.Context(), *req.Path)
	if err != nil {
		jsonError(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	jsonValue(w, html)
}

func (s *Server) handleSendMarkdownPath(w http.ResponseWriter, r *http.Request) {
	path, err := s.bridge.SendMarkdownPath()
	if err != nil {
		jsonError(w, err.Error(), http.StatusNotFound)
		return
	}
	jsonValue(w, path)
}

func jsonValue(w http.ResponseWriter, value string) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(response{Value: &value})
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(response{Error: msg})
}
