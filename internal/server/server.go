package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/shopbridge/payment-payload-service/internal/config"
	"github.com/shopbridge/payment-payload-service/internal/interaction"
	"github.com/shopbridge/payment-payload-service/internal/logging"
	"github.com/shopbridge/payment-payload-service/internal/restapi/middleware"
	v1health "github.com/shopbridge/payment-payload-service/internal/restapi/v1/health"
	v1paymentmethods "github.com/shopbridge/payment-payload-service/internal/restapi/v1/paymentmethods"
	v1payloads "github.com/shopbridge/payment-payload-service/internal/restapi/v1/payloads"
	v1payments "github.com/shopbridge/payment-payload-service/internal/restapi/v1/payments"
)

const shutdownTimeout = 5 * time.Second

func NewServer(ctx context.Context, conf *config.ServerConfig, router http.Handler) *http.Server {
	return &http.Server{
		Addr:         fmt.Sprintf("%s:%d", conf.BaseAddress, conf.Port),
		Handler:      router,
		ReadTimeout:  time.Second * time.Duration(conf.ReadTimeout),
		WriteTimeout: time.Second * time.Duration(conf.WriteTimeout),
		IdleTimeout:  time.Second * time.Duration(conf.IdleTimeout),
		BaseContext: func(l net.Listener) context.Context {
			return ctx
		},
	}
}

func CreateRouter(i interaction.Interactor, conf *config.SecurityConfig) (chi.Router, error) {
	auth, err := middleware.NewAuthenticator(conf)
	if err != nil {
		return nil, err
	}

	router := chi.NewRouter()

	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.RequestIdMiddleware())
	router.Use(middleware.RequestLoggerMiddleware())
	router.Use(middleware.CorsHeadersMiddleware(&conf.Cors))

	setupV1Routes(router, i, auth)

	return router, nil
}

func setupV1Routes(router chi.Router, i interaction.Interactor, auth *middleware.Authenticator) {
	v1health.Create(router)

	router.Route("/api/rest/v1", func(r chi.Router) {
		r.Use(auth.Authenticate)
		v1payloads.Create(r, i)
		v1payments.Create(r, i)
		v1paymentmethods.Create(r, i)
	})
}

// Serve runs srv until ctx is cancelled, then shuts it down gracefully.
func Serve(ctx context.Context, srv *http.Server) error {
	logger := logging.NoCtx()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("serving requests on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("stopping server")
	tCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(tCtx); err != nil {
		return fmt.Errorf("couldn't shutdown server gracefully: %w", err)
	}
	return nil
}
