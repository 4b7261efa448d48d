package middleware

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/angelmondragon/catalog-admin/pkg/logger"
)

const requestIDHeader = "X-Request-Id"

// incomingRequestID accepts a caller-supplied id only when it is a uuid.
func incomingRequestID(r *http.Request) (string, bool) {
	raw := strings.TrimSpace(r.Header.Get(requestIDHeader))
	parsed, err := uuid.Parse(raw)
	if err != nil {
		return "", false
	}
	return parsed.String(), true
}

// RequestID echoes the request id on the response and scopes the logger with it.
func RequestID(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := incomingRequestID(r)
			if !ok {
				id = uuid.NewString()
				r.Header.Set(requestIDHeader, id)
			}
			w.Header().Set(requestIDHeader, id)

			if logg == nil {
				next.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(logg.WithRequestID(r.Context(), id)))
		})
	}
}
