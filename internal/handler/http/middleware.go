package http

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/ebalakin/credvault/internal/logger"
)

const traceIDHeader = "X-Trace-ID"

// withTraceID tags every request with a trace id: the inbound X-Trace-ID
// header when the caller supplied one, a fresh uuid otherwise. The id is
// echoed back in the response header and baked into a request-scoped
// logger attached to the context, so every log line the service and store
// layers emit for this request carries the same trace_id field.
func (h *Handler) withTraceID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID := r.Header.Get(traceIDHeader)
		if traceID == "" {
			traceID = uuid.NewString()
		}

		log := h.logger.With().Str("trace_id", traceID).Logger()

		w.Header().Set(traceIDHeader, traceID)
		next.ServeHTTP(w, r.WithContext(log.WithContext(r.Context())))
	})
}

// statusRecorder captures what the handler wrote so the access log can
// report the final status and payload size.
type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (rec *statusRecorder) WriteHeader(code int) {
	if rec.status == 0 {
		rec.status = code
	}
	rec.ResponseWriter.WriteHeader(code)
}

func (rec *statusRecorder) Write(p []byte) (int, error) {
	if rec.status == 0 {
		rec.status = http.StatusOK
	}
	n, err := rec.ResponseWriter.Write(p)
	rec.bytes += n
	return n, err
}

// withLogging emits one access-log line per request: method, path, final
// status, payload size and elapsed time. It runs inside withTraceID, so
// the line carries the request's trace id.
func (h *Handler) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()
		rec := &statusRecorder{ResponseWriter: w}

		next.ServeHTTP(rec, r)

		logger.FromRequest(r).Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rec.status).
			Int("bytes", rec.bytes).
			Dur("elapsed", time.Since(started)).
			Msg("request handled")
	})
}
