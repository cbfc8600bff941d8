// Package request provides request-ID middleware and accessors. Every request
// gets a correlation ID that flows through logs and audit events.
package request

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"originstamp/pkg/requestcontext"
)

// HeaderRequestID is the header used to propagate correlation IDs.
const HeaderRequestID = "X-Request-Id"

// Middleware assigns a request ID, honoring one supplied by a trusted proxy.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(HeaderRequestID)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set(HeaderRequestID, requestID)
		ctx := requestcontext.WithRequestID(r.Context(), requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetRequestID retrieves the request ID from context, or "" when unset.
func GetRequestID(ctx context.Context) string {
	return requestcontext.RequestID(ctx)
}
