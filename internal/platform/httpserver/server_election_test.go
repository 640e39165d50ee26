package httpserver

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	electionservice "pericles/contexts/election-mediator/election-service"
	"pericles/contexts/election-mediator/election-service/domain/entities"
	electionhttp "pericles/contexts/election-mediator/election-service/transport/http"
	tallyservice "pericles/contexts/election-mediator/tally-service"
	"pericles/internal/platform/crypto"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	return New(
		electionservice.NewInMemoryModule(nil, nil),
		tallyservice.NewInMemoryModule(nil),
		nil,
		":0",
	)
}

func electionManifest(scopeID string) json.RawMessage {
	return json.RawMessage(fmt.Sprintf(
		`{"election_scope_id":%q,"spec_version":"1.0","contests":[{"object_id":"c1","ballot_selections":[{"object_id":"s1"}]}]}`,
		scopeID))
}

func electionContext(t *testing.T, manifest json.RawMessage) json.RawMessage {
	t.Helper()
	hash, err := crypto.HashManifest(manifest)
	if err != nil {
		t.Fatalf("HashManifest: %v", err)
	}
	publicKey, err := crypto.EncodePoint(crypto.Suite.Point().Base())
	if err != nil {
		t.Fatalf("EncodePoint: %v", err)
	}
	raw, err := (entities.CiphertextElectionContext{
		SchemaVersion:     entities.ContextSchemaVersion,
		NumberOfGuardians: 3,
		Quorum:            2,
		ElGamalPublicKey:  publicKey,
		CommitmentHash:    "commitments",
		ManifestHash:      hash,
	}).Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	return raw
}

func doJSON(t *testing.T, handler http.Handler, method, target, clientID string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode request body: %v", err)
		}
	}
	req := httptest.NewRequest(method, target, &buf)
	if clientID != "" {
		req.Header.Set("X-Client-Id", clientID)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decodeResponse[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.NewDecoder(rec.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return out
}

func TestElectionRoutesRequireClientHeader(t *testing.T) {
	handler := newTestServer(t).Handler()

	rec := doJSON(t, handler, http.MethodPut, "/api/v1/election", "", electionhttp.SubmitElectionRequest{})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	errResp := decodeResponse[electionhttp.ErrorResponse](t, rec)
	if errResp.Code != "missing_client" {
		t.Fatalf("error code = %q, want missing_client", errResp.Code)
	}
}

func TestSubmitAndGetElectionRoundtrip(t *testing.T) {
	handler := newTestServer(t).Handler()
	manifest := electionManifest("e1")

	rec := doJSON(t, handler, http.MethodPut, "/api/v1/election", "tenant-a", electionhttp.SubmitElectionRequest{
		Context:  electionContext(t, manifest),
		Manifest: manifest,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("submit status = %d, body %s", rec.Code, rec.Body.String())
	}
	submitted := decodeResponse[electionhttp.SubmitElectionResponse](t, rec)
	if submitted.ElectionID == "" {
		t.Fatal("expected a generated election id")
	}

	rec = doJSON(t, handler, http.MethodGet, "/api/v1/election/"+submitted.ElectionID, "tenant-a", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get status = %d, body %s", rec.Code, rec.Body.String())
	}
	fetched := decodeResponse[electionhttp.ElectionQueryResponse](t, rec)
	if len(fetched.Elections) != 1 {
		t.Fatalf("elections in response = %d, want 1", len(fetched.Elections))
	}
	if election := fetched.Elections[0]; election.State != "created" || election.Version != 1 {
		t.Fatalf("election = %s v%d, want created v1", election.State, election.Version)
	}

	// Another tenant must not see it.
	rec = doJSON(t, handler, http.MethodGet, "/api/v1/election/"+submitted.ElectionID, "tenant-b", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("cross-tenant status = %d, want 404", rec.Code)
	}
}

func TestSubmitElectionManifestMismatchReturns412(t *testing.T) {
	handler := newTestServer(t).Handler()

	rec := doJSON(t, handler, http.MethodPut, "/api/v1/election/e1", "tenant-a", electionhttp.SubmitElectionRequest{
		Context:  electionContext(t, electionManifest("original")),
		Manifest: electionManifest("swapped"),
	})
	if rec.Code != http.StatusPreconditionFailed {
		t.Fatalf("status = %d, want 412", rec.Code)
	}
	errResp := decodeResponse[electionhttp.ErrorResponse](t, rec)
	if errResp.Code != "manifest_hash_mismatch" {
		t.Fatalf("error code = %q, want manifest_hash_mismatch", errResp.Code)
	}
}

func TestElectionTransitionsOverHTTP(t *testing.T) {
	handler := newTestServer(t).Handler()
	manifest := electionManifest("e1")

	rec := doJSON(t, handler, http.MethodPut, "/api/v1/election/e1", "tenant-a", electionhttp.SubmitElectionRequest{
		Context:  electionContext(t, manifest),
		Manifest: manifest,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("submit status = %d, body %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, handler, http.MethodPost, "/api/v1/election/e1/open", "tenant-a", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("open status = %d, body %s", rec.Code, rec.Body.String())
	}
	opened := decodeResponse[electionhttp.TransitionResponse](t, rec)
	if opened.State != "open" || opened.Version != 2 {
		t.Fatalf("after open: %s v%d, want open v2", opened.State, opened.Version)
	}

	// Publishing an open election skips closed and is rejected.
	rec = doJSON(t, handler, http.MethodPost, "/api/v1/election/e1/publish", "tenant-a", nil)
	if rec.Code != http.StatusConflict {
		t.Fatalf("skip-state status = %d, want 409", rec.Code)
	}

	rec = doJSON(t, handler, http.MethodPost, "/api/v1/election/e1/publish?force=true", "tenant-a", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("forced publish status = %d, body %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, handler, http.MethodPost, "/api/v1/election/e1/open?expected_version=1", "tenant-a", nil)
	if rec.Code != http.StatusConflict {
		t.Fatalf("stale version status = %d, want 409", rec.Code)
	}
}

func TestManifestRegisterAndFetchOverHTTP(t *testing.T) {
	handler := newTestServer(t).Handler()
	manifest := electionManifest("e1")

	rec := doJSON(t, handler, http.MethodPut, "/api/v1/manifest", "tenant-a", electionhttp.RegisterManifestRequest{
		Manifest: manifest,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("register status = %d, body %s", rec.Code, rec.Body.String())
	}
	registered := decodeResponse[electionhttp.RegisterManifestResponse](t, rec)
	if registered.ManifestHash == "" {
		t.Fatal("expected a manifest hash")
	}

	rec = doJSON(t, handler, http.MethodGet, "/api/v1/manifest/"+registered.ManifestHash, "tenant-a", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("fetch status = %d, body %s", rec.Code, rec.Body.String())
	}
	fetched := decodeResponse[electionhttp.ManifestResponse](t, rec)
	if fetched.ManifestHash != registered.ManifestHash {
		t.Fatalf("hash = %q, want %q", fetched.ManifestHash, registered.ManifestHash)
	}
}

func TestElectionConstantsNeedNoClientHeader(t *testing.T) {
	handler := newTestServer(t).Handler()

	rec := doJSON(t, handler, http.MethodGet, "/api/v1/election/constants", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	constants := decodeResponse[electionhttp.ConstantsResponse](t, rec)
	if constants.Group == "" {
		t.Fatal("expected a named curve group")
	}
}

func TestHealthEndpoint(t *testing.T) {
	server := newTestServer(t)
	handler := server.Handler()

	rec := doJSON(t, handler, http.MethodGet, "/healthz", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	server.SetHealthCheck(func(*http.Request) error { return fmt.Errorf("db down") })
	rec = doJSON(t, handler, http.MethodGet, "/healthz", "", nil)
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("degraded status = %d, want 503", rec.Code)
	}
}
