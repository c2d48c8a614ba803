package server

import (
	"net/http"
	"strings"
)

// SecurityConfig controls the hardening applied to every endpoint.
type SecurityConfig struct {
	// EnableCORS toggles CORS header handling.
	EnableCORS bool
	// AllowedOrigins lists the origins allowed by CORS; "*" allows any.
	AllowedOrigins []string
	// AllowedMethods lists the methods advertised to CORS clients.
	AllowedMethods []string
	// MaxPromptLength bounds the prompt size accepted anywhere the server
	// echoes request data.
	MaxPromptLength int
}

// DefaultSecurityConfig returns the configuration the server starts with:
// permissive CORS for read-only endpoints and conservative response headers.
func DefaultSecurityConfig() SecurityConfig {
	return SecurityConfig{
		EnableCORS:      true,
		AllowedOrigins:  []string{"*"},
		AllowedMethods:  []string{"GET", "OPTIONS"},
		MaxPromptLength: 65536,
	}
}

// SecurityMiddleware applies security response headers and CORS handling
// before delegating to next. OPTIONS preflight requests are answered
// directly with 204.
func SecurityMiddleware(config SecurityConfig, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("X-XSS-Protection", "1; mode=block")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		w.Header().Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")

		if config.EnableCORS {
			applyCORSHeaders(w, r, config)
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next(w, r)
	}
}

// applyCORSHeaders sets the CORS response headers when the request origin is
// allowed. A wildcard entry matches regardless of the Origin header.
func applyCORSHeaders(w http.ResponseWriter, r *http.Request, config SecurityConfig) {
	origin := r.Header.Get("Origin")

	allowed := ""
	for _, o := range config.AllowedOrigins {
		if o == "*" {
			allowed = "*"
			break
		}
		if origin != "" && o == origin {
			allowed = origin
			break
		}
	}
	if allowed == "" {
		return
	}

	w.Header().Set("Access-Control-Allow-Origin", allowed)
	w.Header().Set("Access-Control-Allow-Methods", strings.Join(config.AllowedMethods, ", "))
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	w.Header().Set("Access-Control-Max-Age", "86400")
}
