// ABOUTME: Panic recovery middleware
// ABOUTME: Turns a handler panic into a logged 500 JSON response

package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"
)

// Recover catches panics from the wrapped handler. The response is only
// written if the handler had not started one. Place it inside LogRequest so
// panic logs carry the request id.
func Recover(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			requestID := RequestID(r.Context())
			if requestID == "" {
				requestID = w.Header().Get("X-Request-ID")
			}
			slog.Error("Handler panic",
				"request_id", requestID,
				"method", r.Method,
				"path", sanitizePath(r.URL.Path),
				"panic", rec,
				"stack", string(debug.Stack()),
			)
			if !wrapped.wroteHeader {
				writeJSONError(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			}
		}()
		next(wrapped, r)
	}
}
