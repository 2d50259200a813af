package server

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"restaurante/internal/commons"
)

type Pinger interface {
	PingContext(ctx context.Context) error
}

type healthResponse struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// healthHandler answers 200 while the database responds to a ping and 503
// otherwise.
func healthHandler(db Pinger, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()

		if err := db.PingContext(ctx); err != nil {
			logger.Warn("health check failed", zap.Error(err))
			commons.WriteJSON(w, http.StatusServiceUnavailable, healthResponse{
				Status: "unavailable",
				Error:  "database unreachable",
			}, logger)
			return
		}

		commons.WriteJSON(w, http.StatusOK, healthResponse{Status: "ok"}, logger)
	}
}
