package middleware

import (
	"net/http"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/shopbridge/payment-payload-service/internal/logging"
)

// RequestLoggerMiddleware puts a logger tagged with the request id into the context and
// writes one access log line per request. Server errors are logged as warnings.
func RequestLoggerMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := logging.CreateContextWithLoggerForRequestId(r.Context(), GetRequestID(r.Context()))
			logger := logging.LoggerFromContext(ctx)

			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r.WithContext(ctx))

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}

			elapsed := time.Since(start).Milliseconds()
			if status >= http.StatusInternalServerError {
				logger.Warn("%s %s -> %d (%d ms)", r.Method, r.URL.Path, status, elapsed)
			} else {
				logger.Info("%s %s -> %d (%d ms)", r.Method, r.URL.Path, status, elapsed)
			}
		})
	}
}
