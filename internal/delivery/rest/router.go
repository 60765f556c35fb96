package rest

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/aliskhannn/vocab-quiz/internal/delivery/rest/middleware"
)

// apiPrefix is an alias mount of every route.
const apiPrefix = "/api"

// NewRouter registers the quiz and probe routes and wraps them in the
// middleware chain.
func NewRouter(h *Handler, health *HealthHandler, logger *zap.Logger, allowedOrigins []string) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", h.Welcome)
	mux.HandleFunc("GET /quiz/{external_id}", h.NextWord)
	mux.HandleFunc("GET /stats/{external_id}", h.Stats)
	mux.HandleFunc("POST /answer", h.Answer)
	mux.HandleFunc("GET /quiz/{mode}/{external_id}", h.Round)
	mux.HandleFunc("POST /quiz/{mode}/answer", h.RoundAnswer)
	mux.HandleFunc("GET /random-words/{count}", h.RandomWords)

	mux.HandleFunc("GET /live", health.Live)
	mux.HandleFunc("GET /ready", health.Ready)
	mux.HandleFunc("GET /health", health.Health)

	mux.Handle(apiPrefix+"/", http.StripPrefix(apiPrefix, mux))

	return middleware.Chain(
		middleware.RequestID,
		middleware.Logger(logger),
		middleware.Recovery(logger),
		middleware.CORS(allowedOrigins),
	)(mux)
}
