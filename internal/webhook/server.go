// Package webhook is the thin HTTP adapter at the payment gateway boundary.
// It turns a gateway confirmation into a TransactionRecord, persists it and
// runs the synchronous reconcile for that one obligation. No business logic
// lives here.
package webhook

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"obligation-engine/internal/domain"
	"obligation-engine/internal/usecase"
	"obligation-engine/pkg/logging"
)

// TransactionWriter persists confirmed gateway transactions. The engine
// itself never creates records; this write belongs to the receiver.
type TransactionWriter interface {
	RecordTransaction(ctx context.Context, rec domain.TransactionRecord) error
}

// Server handles gateway confirmation callbacks.
type Server struct {
	writer     TransactionWriter
	reconciler *usecase.Reconciler
	logger     *logging.Logger
	router     *mux.Router
	now        func() time.Time
}

// NewServer creates the receiver with its routes registered.
func NewServer(writer TransactionWriter, reconciler *usecase.Reconciler, logger *logging.Logger) *Server {
	if logger == nil {
		logger = logging.NewNop()
	}
	s := &Server{
		writer:     writer,
		reconciler: reconciler,
		logger:     logger.Named("webhook"),
		router:     mux.NewRouter(),
		now:        func() time.Time { return time.Now().UTC() },
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.HandleFunc("/v1/confirmations", s.handleConfirmation).Methods(http.MethodPost)
	s.router.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
