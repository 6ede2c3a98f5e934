package handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

const REQUEST_ID_HEADER = "X-Request-ID"

type requestIDKey struct{}

// RequestID tags every request with an id, reusing the caller's header when present.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(REQUEST_ID_HEADER)
		if id == "" {
			id = uuid.New().String()
		}
		w.Header().Set(REQUEST_ID_HEADER, id)
		ctx := context.WithValue(r.Context(), requestIDKey{}, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequestIDFrom returns the id set by RequestID, or "-" outside of it.
func RequestIDFrom(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok {
		return id
	}
	return "-"
}
