package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

var defaultCORSOrigins = []string{
	"http://localhost:3000",        // local dev
	"https://gelaboca.vercel.app",  // tablet frontend
	"https://painel.gelaboca.com",  // staff panel
}

// CORS returns middleware that applies the API's allowed origin policy.
func CORS() func(http.Handler) http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins:   defaultCORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Session-Id", "X-Requested-With"},
		ExposedHeaders:   []string{"X-Session-Id"},
		AllowCredentials: true,
		MaxAge:           300,
	}).Handler
}
