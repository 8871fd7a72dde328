package middleware

import (
	"net/http"

	aulogging "github.com/StephanHCB/go-autumn-logging"
	"github.com/go-http-utils/headers"

	"github.com/shopbridge/payment-payload-service/internal/config"
)

// CorsHeadersMiddleware relaxes CORS for local development when security.cors.disable is set.
// Preflight requests are answered here in any case.
func CorsHeadersMiddleware(conf *config.CorsConfig) func(http.Handler) http.Handler {
	if conf != nil && conf.DisableCors {
		aulogging.Logger.NoCtx().Warn().Print("will send headers to disable CORS. This configuration is not intended for production use, only for local development!")
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if conf != nil && conf.DisableCors {
				w.Header().Set(headers.AccessControlAllowOrigin, conf.AllowOrigin)
				w.Header().Set(headers.AccessControlAllowMethods, "POST, GET, OPTIONS, PUT, DELETE")
				w.Header().Set(headers.AccessControlAllowHeaders, "content-type, authorization, x-api-key")
				w.Header().Set(headers.AccessControlAllowCredentials, "true")
				w.Header().Set(headers.AccessControlExposeHeaders, "Location, "+RequestIDHeader)
			}

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
