package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// CORS allows cross-origin calls from the given origins ("*" for any).
func CORS(allowedOrigins []string) Middleware {
	c := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{HeaderRequestID},
		AllowCredentials: true,
	})
	return c.Handler
}
