package http

import (
	"net/http"

	"github.com/google/uuid"
)

const (
	traceIDHeader = "X-Trace-ID"

	// maxTraceIDLength caps client supplied trace IDs before they reach logs.
	maxTraceIDLength = 128
)

// withTraceID keeps a sane client trace ID or mints one, echoes it back and
// puts a logger tagged with it into the request context.
func (h *Handler) withTraceID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(traceIDHeader)
		if id == "" || len(id) > maxTraceIDLength {
			id = uuid.NewString()
		}

		ctx, _ := h.logger.WithTraceID(r.Context(), id)
		w.Header().Set(traceIDHeader, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
