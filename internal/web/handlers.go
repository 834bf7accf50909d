package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/MSubhan6/open-moniker-sub000/internal/loader"
	"github.com/MSubhan6/open-moniker-sub000/moniker"
	"github.com/MSubhan6/open-moniker-sub000/resolver"
)

// errorBody is the JSON error envelope. EstimatedRows is set only on access
// denials so the client can explain the guardrail to the end user.
type errorBody struct {
	Error         string `json:"error"`
	EstimatedRows *int64 `json:"estimated_rows,omitempty"`
}

func (s *Server) handleResolve(w http.ResponseWriter, r *http.Request) {
	input := r.URL.Query().Get("m")
	if input == "" {
		writeError(w, http.StatusBadRequest, "missing query parameter m", nil)
		return
	}
	res, err := s.resolver.Resolve(r.Context(), input)
	if err != nil {
		s.writeResolutionError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleDescribe(w http.ResponseWriter, r *http.Request) {
	input := r.URL.Query().Get("m")
	if input == "" {
		writeError(w, http.StatusBadRequest, "missing query parameter m", nil)
		return
	}
	desc, err := s.resolver.Describe(r.Context(), input)
	if err != nil {
		s.writeResolutionError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, desc)
}

func (s *Server) handleChildren(w http.ResponseWriter, r *http.Request) {
	input := r.URL.Query().Get("m")
	if input == "" {
		writeError(w, http.StatusBadRequest, "missing query parameter m", nil)
		return
	}
	children, err := s.resolver.ListChildren(r.Context(), input)
	if err != nil {
		s.writeResolutionError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{"children": children})
}

func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	if s.reload == nil {
		writeError(w, http.StatusNotImplemented, "reload not configured", nil)
		return
	}
	count, err := s.reload(r.Context())
	if err != nil {
		// A catalog that fails validation is the operator's problem, not an
		// internal fault.
		var invalid *loader.ValidationError
		if errors.As(err, &invalid) {
			writeError(w, http.StatusUnprocessableEntity, err.Error(), nil)
			return
		}
		s.logger.Error("catalog reload failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, err.Error(), nil)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"nodes": count})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// writeResolutionError maps the resolution error taxonomy onto HTTP status
// codes: parse 400, not found 404, access denied 403, anything else 500.
func (s *Server) writeResolutionError(w http.ResponseWriter, r *http.Request, err error) {
	var parseErr *moniker.ParseError
	var notFound *resolver.NotFoundError
	var denied *resolver.AccessDeniedError

	switch {
	case errors.As(err, &parseErr):
		writeError(w, http.StatusBadRequest, parseErr.Error(), nil)
	case errors.As(err, &notFound):
		writeError(w, http.StatusNotFound, notFound.Error(), nil)
	case errors.As(err, &denied):
		writeError(w, http.StatusForbidden, denied.Message, &denied.EstimatedRows)
	default:
		s.logger.Error("resolution failed",
			zap.String("request_id", RequestIDFrom(r.Context())),
			zap.Error(err))
		writeError(w, http.StatusInternalServerError, "resolution failed", nil)
	}
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string, estimatedRows *int64) {
	writeJSON(w, status, errorBody{Error: message, EstimatedRows: estimatedRows})
}
