// Package api provides the SwordFlex REST API server: interlinear
// lookups, translation selection, FlexText export, and a WebSocket
// progress stream.
package api

import (
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"github.com/FocuswithJustin/SwordFlex/internal/logging"
	"github.com/FocuswithJustin/SwordFlex/internal/session"
)

// Config holds the API server configuration.
type Config struct {
	Port int
	// ExportDir is the default directory for server-side exports.
	ExportDir string
}

// Server serves the interlinear API over one session. All request
// handling shares the session's cache and translation selection.
type Server struct {
	cfg       Config
	session   *session.Session
	hub       *Hub
	startTime time.Time
}

// NewServer builds a server around an open session and starts the
// WebSocket hub.
func NewServer(sess *session.Session, cfg Config) *Server {
	s := &Server{
		cfg:       cfg,
		session:   sess,
		hub:       NewHub(),
		startTime: time.Now(),
	}
	go s.hub.Run()
	return s
}

// Handler returns the fully assembled HTTP handler: routes wrapped in
// request-ID and logging middleware.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/api/v1/interlinear", s.handleInterlinear)
	mux.HandleFunc("/api/v1/translations", s.handleTranslations)
	mux.HandleFunc("/api/v1/flextext", s.handleFlexText)
	mux.HandleFunc("/ws", s.handleWebSocket)

	var handler http.Handler = mux
	handler = logging.LoggingMiddleware(handler)
	handler = logging.RequestIDMiddleware(handler)
	return handler
}

// exportPath resolves a requested export path: relative paths land
// under the configured export directory.
func (s *Server) exportPath(path string) string {
	if filepath.IsAbs(path) || s.cfg.ExportDir == "" {
		return path
	}
	return filepath.Join(s.cfg.ExportDir, path)
}

// Start listens on the configured port and serves until the listener
// fails.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	logging.Info("api server starting", "addr", addr, "export_dir", s.cfg.ExportDir)
	return http.ListenAndServe(addr, s.Handler())
}
