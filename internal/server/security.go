// This file contains security headers and CORS handling for the HTTP API.

package server

import (
	"net/http"
	"strings"
)

// ─────────────────────────────────────────────────────────────────────────────
// Security Configuration
// ─────────────────────────────────────────────────────────────────────────────

// SecurityConfig controls the security middleware behavior.
type SecurityConfig struct {
	// EnableCORS enables cross-origin resource sharing headers.
	EnableCORS bool

	// AllowedOrigins lists origins allowed by CORS. "*" allows any origin.
	AllowedOrigins []string

	// AllowedMethods lists HTTP methods advertised in CORS responses.
	AllowedMethods []string

	// MaxNValue caps the accepted input magnitude on the API surface.
	MaxNValue uint64
}

// DefaultSecurityConfig returns a permissive configuration suitable for a
// local demo API: CORS open to any origin, read-only methods, inputs capped
// at one billion.
func DefaultSecurityConfig() SecurityConfig {
	return SecurityConfig{
		EnableCORS:     true,
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
		MaxNValue:      1_000_000_000,
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Middleware
// ─────────────────────────────────────────────────────────────────────────────

// SecurityMiddleware sets standard security headers on every response and
// handles CORS, including OPTIONS preflight requests.
func SecurityMiddleware(config SecurityConfig, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("X-XSS-Protection", "1; mode=block")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		h.Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")

		if config.EnableCORS {
			if origin := allowedOrigin(config, r.Header.Get("Origin")); origin != "" {
				h.Set("Access-Control-Allow-Origin", origin)
				h.Set("Access-Control-Allow-Methods", strings.Join(config.AllowedMethods, ", "))
				h.Set("Access-Control-Allow-Headers", "Content-Type")
				h.Set("Access-Control-Max-Age", "86400")
			}
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next(w, r)
	}
}

// allowedOrigin resolves the Access-Control-Allow-Origin value for a request
// origin. Returns "" when the origin is not allowed. A wildcard entry matches
// any request, including those without an Origin header.
func allowedOrigin(config SecurityConfig, origin string) string {
	for _, allowed := range config.AllowedOrigins {
		if allowed == "*" {
			return "*"
		}
		if origin != "" && allowed == origin {
			return origin
		}
	}
	return ""
}
