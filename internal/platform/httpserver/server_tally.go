package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	tallyerrors "pericles/contexts/election-mediator/tally-service/domain/errors"
	tallyhttp "pericles/contexts/election-mediator/tally-service/transport/http"
)

func (s *Server) registerTallyRoutes() {
	s.mux.HandleFunc("POST /api/v1/tally", s.handleStartTally)
	s.mux.HandleFunc("POST /api/v1/tally/append", s.handleAppendTally)
	s.mux.HandleFunc("POST /api/v1/tally/decrypt-share", s.handleDecryptShare)
	s.mux.HandleFunc("POST /api/v1/tally/decrypt", s.handleDecryptTally)
	s.mux.HandleFunc("GET /api/v1/tally/{tally_id}", s.handleGetTally)
	s.mux.HandleFunc("GET /api/v1/tally/{tally_id}/result", s.handleGetTallyResult)
}

func (s *Server) handleStartTally(w http.ResponseWriter, r *http.Request) {
	tenantID := resolveTenantID(r)
	if tenantID == "" {
		writeTallyError(w, http.StatusUnauthorized, "missing_client", "X-Client-Id header is required")
		return
	}

	var req tallyhttp.StartTallyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeTallyError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.tally.Handler.StartTallyHandler(r.Context(), tenantID, req)
	if err != nil {
		writeTallyDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAppendTally(w http.ResponseWriter, r *http.Request) {
	tenantID := resolveTenantID(r)
	if tenantID == "" {
		writeTallyError(w, http.StatusUnauthorized, "missing_client", "X-Client-Id header is required")
		return
	}

	var req tallyhttp.AppendTallyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeTallyError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.tally.Handler.AppendTallyHandler(r.Context(), tenantID, req)
	if err != nil {
		writeTallyDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDecryptShare(w http.ResponseWriter, r *http.Request) {
	tenantID := resolveTenantID(r)
	if tenantID == "" {
		writeTallyError(w, http.StatusUnauthorized, "missing_client", "X-Client-Id header is required")
		return
	}

	var req tallyhttp.DecryptShareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeTallyError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.tally.Handler.DecryptShareHandler(r.Context(), tenantID, req)
	if err != nil {
		writeTallyDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDecryptTally(w http.ResponseWriter, r *http.Request) {
	tenantID := resolveTenantID(r)
	if tenantID == "" {
		writeTallyError(w, http.StatusUnauthorized, "missing_client", "X-Client-Id header is required")
		return
	}

	var req tallyhttp.DecryptTallyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeTallyError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.tally.Handler.DecryptTallyHandler(r.Context(), tenantID, req)
	if err != nil {
		writeTallyDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetTally(w http.ResponseWriter, r *http.Request) {
	tenantID := resolveTenantID(r)
	if tenantID == "" {
		writeTallyError(w, http.StatusUnauthorized, "missing_client", "X-Client-Id header is required")
		return
	}

	resp, err := s.tally.Handler.GetTallyHandler(r.Context(), tenantID, r.PathValue("tally_id"))
	if err != nil {
		writeTallyDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetTallyResult(w http.ResponseWriter, r *http.Request) {
	tenantID := resolveTenantID(r)
	if tenantID == "" {
		writeTallyError(w, http.StatusUnauthorized, "missing_client", "X-Client-Id header is required")
		return
	}

	resp, err := s.tally.Handler.GetResultHandler(r.Context(), tenantID, r.PathValue("tally_id"))
	if err != nil {
		writeTallyDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeTallyDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, tallyerrors.ErrTallyNotFound):
		writeTallyError(w, http.StatusNotFound, "tally_not_found", err.Error())
	case errors.Is(err, tallyerrors.ErrTallyInconsistent):
		writeTallyError(w, http.StatusConflict, "tally_inconsistent", err.Error())
	case errors.Is(err, tallyerrors.ErrDuplicateGuardian):
		writeTallyError(w, http.StatusConflict, "duplicate_guardian", err.Error())
	case errors.Is(err, tallyerrors.ErrInsufficientShares):
		writeTallyError(w, http.StatusUnprocessableEntity, "insufficient_shares", err.Error())
	case errors.Is(err, tallyerrors.ErrInvalidShare):
		writeTallyError(w, http.StatusUnprocessableEntity, "invalid_share", err.Error())
	case errors.Is(err, tallyerrors.ErrBallotsRequired),
		errors.Is(err, tallyerrors.ErrInvalidGuardian),
		errors.Is(err, tallyerrors.ErrMalformedPayload):
		writeTallyError(w, http.StatusBadRequest, "invalid_request", err.Error())
	default:
		writeTallyError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeTallyError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, tallyhttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}
