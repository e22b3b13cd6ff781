package api

import (
	"net/http"
	"strings"

	"github.com/biodynlabs/cellculture-simulator/internal/logging"
)

const requestIDHeader = "X-Request-Id"

// withRequestID sources a request_id from the inbound header when provided,
// attaches a per-request logger to the context, and echoes the ID back on the
// response.
func withRequestID(base logging.Logger, next http.Handler) http.Handler {
	if base == nil {
		base = logging.Noop()
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if incoming := r.Header.Get(requestIDHeader); incoming != "" {
			ctx = logging.ContextWithRequestID(ctx, incoming)
		}

		ctx, reqLog := logging.WithRequestLogger(ctx, base.With(logging.String("path", r.URL.Path)))
		ctx = logging.ContextWithLogger(ctx, reqLog)

		w.Header().Set(requestIDHeader, logging.RequestIDFromContext(ctx))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// withCORS applies the cross-origin policy for /api/* routes: local
// development hosts, the deployed frontend, and file:// pages may call with
// GET/POST and a Content-Type header. Preflight requests are answered here.
func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin != "" && originAllowed(origin) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func originAllowed(origin string) bool {
	switch {
	case strings.HasPrefix(origin, "http://127.0.0.1:"),
		origin == "http://127.0.0.1",
		strings.HasPrefix(origin, "http://localhost:"),
		origin == "http://localhost":
		return true
	case strings.HasPrefix(origin, "https://") && strings.HasSuffix(origin, ".onrender.com"):
		return true
	case strings.HasPrefix(origin, "file://"):
		return true
	default:
		return false
	}
}
