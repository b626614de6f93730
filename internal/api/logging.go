package api

import (
	"currencyconverter/internal/platform/correlation"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
)

// RequestLogger logs one line per request once the response is written.
func RequestLogger(clientID func(*http.Request) string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			defer func() {
				status := ww.Status()
				if status == 0 {
					status = http.StatusOK
				}
				logrus.WithFields(logrus.Fields{
					"method":         r.Method,
					"path":           r.URL.Path,
					"status":         status,
					"elapsed_ms":     time.Since(start).Milliseconds(),
					"ip":             r.RemoteAddr,
					"client_id":      clientID(r),
					"correlation_id": correlation.FromContext(r.Context()),
				}).Info("HTTP request served")
			}()

			next.ServeHTTP(ww, r)
		})
	}
}
