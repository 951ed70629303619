package webhook

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"obligation-engine/internal/domain"
)

// confirmationRequest is the gateway's confirmation payload.
type confirmationRequest struct {
	ObligationID string `json:"obligation_id"`
	OwnerID      string `json:"owner_id"`
	Amount       int64  `json:"amount"`
	// Reference is the gateway transaction reference, used as idempotency
	// key. Retried deliveries carry the same reference.
	Reference string `json:"reference"`
	Status    string `json:"status"`
}

// confirmationResponse echoes the recorded transaction id and the
// reconciliation outcome.
type confirmationResponse struct {
	TransactionID string                  `json:"transaction_id"`
	Result        *domain.ReconcileResult `json:"result"`
}

func (s *Server) handleConfirmation(w http.ResponseWriter, r *http.Request) {
	var req confirmationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	status := domain.TransactionStatus(req.Status)
	if req.Status == "" {
		status = domain.TransactionCompleted
	}

	now := s.now()
	rec := domain.TransactionRecord{
		ID:             uuid.NewString(),
		ObligationID:   req.ObligationID,
		OwnerID:        req.OwnerID,
		Amount:         req.Amount,
		IdempotencyKey: req.Reference,
		RecordedAt:     now,
		Status:         status,
	}

	if err := s.writer.RecordTransaction(r.Context(), rec); err != nil {
		s.respondError(w, rec.ObligationID, err)
		return
	}

	result, err := s.reconciler.Reconcile(r.Context(), req.ObligationID, now)
	if err != nil {
		s.respondError(w, req.ObligationID, err)
		return
	}

	writeJSON(w, http.StatusOK, confirmationResponse{
		TransactionID: rec.ID,
		Result:        result,
	})
}

func (s *Server) respondError(w http.ResponseWriter, obligationID string, err error) {
	var malformedO *domain.MalformedObligationError
	var malformedT *domain.MalformedTransactionError

	switch {
	case errors.Is(err, domain.ErrObligationNotFound):
		writeError(w, http.StatusNotFound, "obligation not found")
	case errors.As(err, &malformedO) || errors.As(err, &malformedT):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		s.logger.Error("confirmation failed",
			zap.String("obligation_id", obligationID),
			zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}
