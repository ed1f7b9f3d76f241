package rest

import (
	"log/slog"
	"net/http"

	"github.com/aetherdrive/prediction-service/internal/presentation/middleware"
)

// NewRouter returns the public handler: POST /predict only.
func NewRouter(predict *PredictHandler, logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()
	predict.RegisterRoutes(mux)

	return middleware.Chain(mux,
		middleware.RequestIDMiddleware,
		middleware.LoggingMiddleware(logger),
		middleware.RecoveryMiddleware(logger),
	)
}

// NewAdminRouter returns the operations handler: health probes and metrics.
func NewAdminRouter(health *HealthHandler, metrics http.Handler) http.Handler {
	mux := http.NewServeMux()
	health.RegisterRoutes(mux)
	if metrics != nil {
		mux.Handle("GET /metrics", metrics)
	}
	return mux
}
