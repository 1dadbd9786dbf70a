package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/FocuswithJustin/SwordFlex/core/errors"
	"github.com/FocuswithJustin/SwordFlex/core/flextext"
	"github.com/FocuswithJustin/SwordFlex/internal/export"
	"github.com/FocuswithJustin/SwordFlex/internal/logging"
)

const apiVersion = "0.1.0"

// APIResponse is the standard API response wrapper.
type APIResponse struct {
	Success bool      `json:"success"`
	Data    any       `json:"data,omitempty"`
	Error   *APIError `json:"error,omitempty"`
	Meta    *APIMeta  `json:"meta,omitempty"`
}

// APIError represents an API error.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// APIMeta contains response metadata.
type APIMeta struct {
	Timestamp string `json:"timestamp"`
}

// HealthInfo is the /health payload.
type HealthInfo struct {
	Status       string   `json:"status"`
	Version      string   `json:"version"`
	Uptime       string   `json:"uptime"`
	Translations []string `json:"translations"`
}

// TranslationsInfo is the translations resource payload.
type TranslationsInfo struct {
	Available []string `json:"available"`
	Selected  string   `json:"selected"`
}

// FlexTextRequest is the POST /api/v1/flextext body.
type FlexTextRequest struct {
	Ref            string `json:"ref"`
	IncludeLiteral bool   `json:"include_literal,omitempty"`
	// Path triggers a server-side export instead of returning the
	// document inline. Relative paths resolve under the export dir.
	Path string `json:"path,omitempty"`
}

// FlexTextResponse is the POST /api/v1/flextext payload.
type FlexTextResponse struct {
	Ref      string `json:"ref"`
	Document string `json:"document,omitempty"`
	Path     string `json:"path,omitempty"`
	Bytes    int    `json:"bytes,omitempty"`
	Hash     string `json:"hash,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Only GET is allowed")
		return
	}

	respond(w, http.StatusOK, HealthInfo{
		Status:       "healthy",
		Version:      apiVersion,
		Uptime:       time.Since(s.startTime).String(),
		Translations: s.session.Translations(),
	})
}

func (s *Server) handleInterlinear(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Only GET is allowed")
		return
	}

	ref := r.URL.Query().Get("ref")
	if ref == "" {
		respondError(w, http.StatusBadRequest, "MISSING_REF", "Query parameter 'ref' is required")
		return
	}

	p, err := s.session.PassageByReference(r.Context(), ref)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respond(w, http.StatusOK, p)
}

func (s *Server) handleTranslations(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		respond(w, http.StatusOK, TranslationsInfo{
			Available: s.session.Translations(),
			Selected:  s.session.Translation(),
		})

	case http.MethodPut:
		var req struct {
			Translation string `json:"translation"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "INVALID_BODY", "Body must be JSON with a 'translation' field")
			return
		}
		if err := s.session.SetTranslation(req.Translation); err != nil {
			respondDomainError(w, err)
			return
		}
		logging.InfoContext(r.Context(), "translation selected", "translation", req.Translation)
		respond(w, http.StatusOK, TranslationsInfo{
			Available: s.session.Translations(),
			Selected:  s.session.Translation(),
		})

	default:
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Only GET and PUT are allowed")
	}
}

func (s *Server) handleFlexText(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Only POST is allowed")
		return
	}

	var req FlexTextRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_BODY", "Body must be a FlexText request object")
		return
	}
	if req.Ref == "" {
		respondError(w, http.StatusBadRequest, "MISSING_REF", "Field 'ref' is required")
		return
	}

	ctx := r.Context()
	s.hub.BroadcastProgress("flextext", "fetch", "Fetching passage "+req.Ref, 10)

	p, err := s.session.PassageByReference(ctx, req.Ref)
	if err != nil {
		s.hub.BroadcastError("flextext", err.Error())
		respondDomainError(w, err)
		return
	}

	s.hub.BroadcastProgress("flextext", "build", "Building document", 60)
	doc, err := s.session.BuildFlexText(ctx, p, flextext.FieldSelection{IncludeLiteral: req.IncludeLiteral})
	if err != nil {
		s.hub.BroadcastError("flextext", err.Error())
		respondDomainError(w, err)
		return
	}

	resp := FlexTextResponse{Ref: p.PassageRef}
	if req.Path != "" {
		s.hub.BroadcastProgress("flextext", "write", "Writing export", 90)
		res, err := export.WriteFlexText(s.exportPath(req.Path), p.PassageRef, doc)
		if err != nil {
			s.hub.BroadcastError("flextext", err.Error())
			respondDomainError(w, err)
			return
		}
		resp.Path = res.Path
		resp.Bytes = res.Bytes
		resp.Hash = res.Hash
		s.hub.BroadcastComplete("flextext", "Export written", map[string]any{
			"path": res.Path, "bytes": res.Bytes, "hash": res.Hash,
		})
	} else {
		resp.Document = doc
		s.hub.BroadcastComplete("flextext", "Document built", map[string]any{
			"ref": p.PassageRef, "bytes": len(doc),
		})
	}
	respond(w, http.StatusOK, resp)
}

// respondDomainError maps the error taxonomy onto HTTP status codes.
func respondDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, errors.ErrInvalidReference):
		respondError(w, http.StatusBadRequest, "INVALID_REFERENCE", err.Error())
	case errors.Is(err, errors.ErrInvalidInput):
		respondError(w, http.StatusBadRequest, "INVALID_INPUT", err.Error())
	case errors.Is(err, errors.ErrNoDataFound):
		respondError(w, http.StatusNotFound, "NO_DATA", err.Error())
	case errors.Is(err, errors.ErrNotFound):
		respondError(w, http.StatusNotFound, "NOT_FOUND", err.Error())
	default:
		respondError(w, http.StatusBadGateway, "BACKEND_ERROR", err.Error())
	}
}

func respond(w http.ResponseWriter, status int, data any) {
	response := APIResponse{
		Success: true,
		Data:    data,
		Meta: &APIMeta{
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		},
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(response)
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	response := APIResponse{
		Success: false,
		Error: &APIError{
			Code:    code,
			Message: message,
		},
		Meta: &APIMeta{
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		},
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(response)
}
