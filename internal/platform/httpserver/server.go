package httpserver

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	electionservice "pericles/contexts/election-mediator/election-service"
	tallyservice "pericles/contexts/election-mediator/tally-service"

	httpSwagger "github.com/swaggo/http-swagger"
	_ "pericles/internal/platform/httpserver/docs"
)

type Server struct {
	mux      *http.ServeMux
	logger   *slog.Logger
	addr     string
	election electionservice.Module
	tally    tallyservice.Module
	health   func(*http.Request) error
}

func New(
	electionModule electionservice.Module,
	tallyModule tallyservice.Module,
	logger *slog.Logger,
	addr string,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}

	s := &Server{
		mux:      http.NewServeMux(),
		logger:   logger,
		addr:     addr,
		election: electionModule,
		tally:    tallyModule,
	}
	s.registerRoutes()
	return s
}

// SetHealthCheck installs an extra dependency probe behind /healthz.
func (s *Server) SetHealthCheck(check func(*http.Request) error) {
	s.health = check
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	return http.ListenAndServe(s.addr, s.mux)
}

// Handler exposes the mux for tests.
func (s *Server) Handler() http.Handler { return s.mux }

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))
	s.mux.HandleFunc("GET /healthz", s.handleHealth)

	s.registerElectionRoutes()
	s.registerTallyRoutes()
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.health != nil {
		if err := s.health(r); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// resolveTenantID scopes every mediator request to the calling client.
func resolveTenantID(r *http.Request) string {
	return strings.TrimSpace(r.Header.Get("X-Client-Id"))
}
