package gateway

import (
	"context"

	"go.uber.org/zap"

	"obligation-engine/internal/domain"
	"obligation-engine/pkg/logging"
)

// LogNotifier is the default Notifier: it records status-change events as
// structured log lines for the external notification pipeline to pick up.
type LogNotifier struct {
	logger *logging.Logger
}

// NewLogNotifier creates a notifier writing to the given logger.
func NewLogNotifier(logger *logging.Logger) *LogNotifier {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &LogNotifier{logger: logger.Named("notify")}
}

// StatusChanged implements usecase.Notifier.
func (n *LogNotifier) StatusChanged(ctx context.Context, event domain.StatusChanged) {
	n.logger.Info("status changed",
		zap.String("event_id", event.EventID),
		zap.String("obligation_id", event.ObligationID),
		zap.String("owner_id", event.OwnerID),
		zap.String("from", string(event.From)),
		zap.String("to", string(event.To)),
		zap.Time("at", event.At))
}
