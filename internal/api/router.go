package api

import (
	"distance-matrix-service/internal/api/handlers"
	"distance-matrix-service/internal/services"
	"net/http"

	"go.uber.org/zap"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(pipeline *services.Pipeline, logger *zap.Logger) http.Handler {
	mux := http.NewServeMux()

	matrixHandler := &handlers.MatrixHandler{
		Pipeline: pipeline,
		Logger:   logger,
	}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/matrices", matrixHandler.Create)

	return requestIDMiddleware(loggingMiddleware(logger, mux))
}
