package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/aliskhannn/vocab-quiz/internal/delivery/rest/middleware"
	"github.com/aliskhannn/vocab-quiz/internal/domain"
	"github.com/aliskhannn/vocab-quiz/internal/service"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// writeError maps service and domain errors to HTTP responses.
// Anything unrecognised is logged and reported as 500.
func writeError(w http.ResponseWriter, r *http.Request, logger *zap.Logger, err error) {
	switch {
	case errors.Is(err, service.ErrNoWordsAvailable):
		writeMessage(w, http.StatusOK, service.ErrNoWordsAvailable.Error())
	case errors.Is(err, service.ErrInvalidCount),
		errors.Is(err, service.ErrInvalidDifficulty),
		errors.Is(err, domain.ErrValidation):
		writeMessage(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeMessage(w, http.StatusNotFound, "not found")
	default:
		logger.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("request_id", middleware.RequestIDFromCtx(r.Context())),
			zap.Error(err),
		)
		writeMessage(w, http.StatusInternalServerError, "internal error")
	}
}
