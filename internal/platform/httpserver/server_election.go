package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	electionerrors "pericles/contexts/election-mediator/election-service/domain/errors"
	electionhttp "pericles/contexts/election-mediator/election-service/transport/http"
)

func (s *Server) registerElectionRoutes() {
	s.mux.HandleFunc("PUT /api/v1/election", s.handleSubmitElection)
	s.mux.HandleFunc("PUT /api/v1/election/{election_id}", s.handleSubmitElection)
	s.mux.HandleFunc("GET /api/v1/election/constants", s.handleElectionConstants)
	s.mux.HandleFunc("GET /api/v1/election/{election_id}", s.handleGetElection)
	s.mux.HandleFunc("POST /api/v1/election/find", s.handleFindElections)
	s.mux.HandleFunc("POST /api/v1/election/context", s.handleMakeContext)
	s.mux.HandleFunc("POST /api/v1/election/{election_id}/open", s.handleOpenElection)
	s.mux.HandleFunc("POST /api/v1/election/{election_id}/close", s.handleCloseElection)
	s.mux.HandleFunc("POST /api/v1/election/{election_id}/publish", s.handlePublishElection)

	s.mux.HandleFunc("PUT /api/v1/manifest", s.handleRegisterManifest)
	s.mux.HandleFunc("GET /api/v1/manifest/{manifest_hash}", s.handleGetManifest)
}

func (s *Server) handleSubmitElection(w http.ResponseWriter, r *http.Request) {
	tenantID := resolveTenantID(r)
	if tenantID == "" {
		writeElectionError(w, http.StatusUnauthorized, "missing_client", "X-Client-Id header is required")
		return
	}

	var req electionhttp.SubmitElectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeElectionError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.election.Handler.SubmitElectionHandler(r.Context(), tenantID, r.PathValue("election_id"), req)
	if err != nil {
		writeElectionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetElection(w http.ResponseWriter, r *http.Request) {
	tenantID := resolveTenantID(r)
	if tenantID == "" {
		writeElectionError(w, http.StatusUnauthorized, "missing_client", "X-Client-Id header is required")
		return
	}

	resp, err := s.election.Handler.GetElectionHandler(r.Context(), tenantID, r.PathValue("election_id"))
	if err != nil {
		writeElectionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleFindElections(w http.ResponseWriter, r *http.Request) {
	tenantID := resolveTenantID(r)
	if tenantID == "" {
		writeElectionError(w, http.StatusUnauthorized, "missing_client", "X-Client-Id header is required")
		return
	}

	var req electionhttp.FindElectionsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeElectionError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	skip, ok := queryInt(r, "skip", 0)
	if !ok {
		writeElectionError(w, http.StatusBadRequest, "invalid_skip", "skip must be an integer")
		return
	}
	limit, ok := queryInt(r, "limit", 0)
	if !ok {
		writeElectionError(w, http.StatusBadRequest, "invalid_limit", "limit must be an integer")
		return
	}

	resp, err := s.election.Handler.FindElectionsHandler(r.Context(), tenantID, req, skip, limit)
	if err != nil {
		writeElectionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleOpenElection(w http.ResponseWriter, r *http.Request) {
	s.handleTransition(w, r, s.election.Handler.OpenElectionHandler)
}

func (s *Server) handleCloseElection(w http.ResponseWriter, r *http.Request) {
	s.handleTransition(w, r, s.election.Handler.CloseElectionHandler)
}

func (s *Server) handlePublishElection(w http.ResponseWriter, r *http.Request) {
	s.handleTransition(w, r, s.election.Handler.PublishElectionHandler)
}

func (s *Server) handleTransition(
	w http.ResponseWriter,
	r *http.Request,
	invoke func(ctx context.Context, tenantID, electionID string, force bool, expectedVersion int64) (electionhttp.TransitionResponse, error),
) {
	tenantID := resolveTenantID(r)
	if tenantID == "" {
		writeElectionError(w, http.StatusUnauthorized, "missing_client", "X-Client-Id header is required")
		return
	}

	force := r.URL.Query().Get("force") == "true"
	expectedVersion := int64(0)
	if raw := r.URL.Query().Get("expected_version"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed < 0 {
			writeElectionError(w, http.StatusBadRequest, "invalid_expected_version", "expected_version must be a non-negative integer")
			return
		}
		expectedVersion = parsed
	}

	resp, err := invoke(r.Context(), tenantID, r.PathValue("election_id"), force, expectedVersion)
	if err != nil {
		writeElectionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleMakeContext(w http.ResponseWriter, r *http.Request) {
	tenantID := resolveTenantID(r)
	if tenantID == "" {
		writeElectionError(w, http.StatusUnauthorized, "missing_client", "X-Client-Id header is required")
		return
	}

	var req electionhttp.MakeContextRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeElectionError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.election.Handler.MakeContextHandler(r.Context(), tenantID, req.ManifestHash, req)
	if err != nil {
		writeElectionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleElectionConstants(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.election.Handler.ConstantsHandler(r.Context()))
}

func (s *Server) handleRegisterManifest(w http.ResponseWriter, r *http.Request) {
	tenantID := resolveTenantID(r)
	if tenantID == "" {
		writeElectionError(w, http.StatusUnauthorized, "missing_client", "X-Client-Id header is required")
		return
	}

	var req electionhttp.RegisterManifestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeElectionError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.election.Handler.RegisterManifestHandler(r.Context(), tenantID, req)
	if err != nil {
		writeElectionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetManifest(w http.ResponseWriter, r *http.Request) {
	tenantID := resolveTenantID(r)
	if tenantID == "" {
		writeElectionError(w, http.StatusUnauthorized, "missing_client", "X-Client-Id header is required")
		return
	}

	resp, err := s.election.Handler.GetManifestHandler(r.Context(), tenantID, r.PathValue("manifest_hash"))
	if err != nil {
		writeElectionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeElectionDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, electionerrors.ErrElectionNotFound):
		writeElectionError(w, http.StatusNotFound, "election_not_found", err.Error())
	case errors.Is(err, electionerrors.ErrManifestNotFound):
		writeElectionError(w, http.StatusNotFound, "manifest_not_found", err.Error())
	case errors.Is(err, electionerrors.ErrManifestHashMismatch):
		writeElectionError(w, http.StatusPreconditionFailed, "manifest_hash_mismatch", err.Error())
	case errors.Is(err, electionerrors.ErrInvalidQuorum):
		writeElectionError(w, http.StatusUnprocessableEntity, "invalid_quorum", err.Error())
	case errors.Is(err, electionerrors.ErrIllegalTransition):
		writeElectionError(w, http.StatusConflict, "illegal_transition", err.Error())
	case errors.Is(err, electionerrors.ErrVersionConflict):
		writeElectionError(w, http.StatusConflict, "version_conflict", err.Error())
	case errors.Is(err, electionerrors.ErrInvalidRequest),
		errors.Is(err, electionerrors.ErrMalformedPayload):
		writeElectionError(w, http.StatusBadRequest, "invalid_request", err.Error())
	default:
		writeElectionError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeElectionError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, electionhttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}

func queryInt(r *http.Request, name string, fallback int) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, true
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return value, true
}
