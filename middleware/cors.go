package middleware

import (
	"log"
	"net/http"
)

// CORS answers preflight requests and sets CORS headers
type CORS struct {
	allowedOrigins []string
	development    bool
}

// NewCORS allows allowedOrigins. In development any origin is echoed back.
func NewCORS(allowedOrigins []string, development bool) *CORS {
	return &CORS{allowedOrigins: allowedOrigins, development: development}
}

func (c *CORS) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")

		switch {
		case isAllowedOrigin(origin, c.allowedOrigins):
			w.Header().Set("Access-Control-Allow-Origin", origin)
		case c.development && origin != "":
			log.Printf("Development mode: allowing origin %s", origin)
			w.Header().Set("Access-Control-Allow-Origin", origin)
		case len(c.allowedOrigins) > 0:
			w.Header().Set("Access-Control-Allow-Origin", c.allowedOrigins[0])
		}
		w.Header().Add("Vary", "Origin")

		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers",
			"Content-Type, Authorization, X-Requested-With, Accept, Origin")
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Max-Age", "3600")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// isAllowedOrigin checks if the provided origin is in the allowed list
func isAllowedOrigin(origin string, allowedOrigins []string) bool {
	if origin == "" {
		return false
	}

	for _, allowed := range allowedOrigins {
		if origin == allowed {
			return true
		}
	}

	return false
}
