package http

import (
	"net/http"
	"time"

	"github.com/MKhiriev/go-app-state-sync/internal/logger"
)

// statusRecorder remembers the first status sent downstream and counts the
// body bytes.
type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (rec *statusRecorder) WriteHeader(code int) {
	if rec.status != 0 {
		return
	}
	rec.status = code
	rec.ResponseWriter.WriteHeader(code)
}

func (rec *statusRecorder) Write(p []byte) (int, error) {
	if rec.status == 0 {
		rec.WriteHeader(http.StatusOK)
	}
	n, err := rec.ResponseWriter.Write(p)
	rec.bytes += n
	return n, err
}

// withLogging writes one access entry per request once the handler returns.
func (h *Handler) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()
		rec := &statusRecorder{ResponseWriter: w}

		next.ServeHTTP(rec, r)

		logger.FromRequest(r).Info().
			Str("method", r.Method).
			Str("uri", r.RequestURI).
			Int64("request_size", r.ContentLength).
			Int("status", rec.status).
			Int("size", rec.bytes).
			Dur("duration", time.Since(started)).
			Send()
	})
}
