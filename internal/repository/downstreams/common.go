package downstreams

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	aurestbreaker "github.com/StephanHCB/go-autumn-restclient-circuitbreaker/implementation/breaker"
	aurestclientapi "github.com/StephanHCB/go-autumn-restclient/api"
	auresthttpclient "github.com/StephanHCB/go-autumn-restclient/implementation/httpclient"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/shopbridge/payment-payload-service/internal/logging"
)

const apiKeyHeader = "X-Api-Key"

var (
	ErrDownStreamUnavailable = errors.New("downstream unavailable - see log for details")
	ErrDownStreamNotFound    = errors.New("downstream resource not found")
	ErrDownStreamRejected    = errors.New("downstream rejected the request")
)

func ApiTokenRequestManipulator(fixedApiToken string) aurestclientapi.RequestManipulatorCallback {
	return func(ctx context.Context, r *http.Request) {
		r.Header.Add(apiKeyHeader, fixedApiToken)
		r.Header.Add(middleware.RequestIDHeader, logging.GetRequestID(ctx))
	}
}

// BasicAuthRequestManipulator authenticates with whatever credentials were put into the
// request context by the caller.
func BasicAuthRequestManipulator(credentialsFromContext func(ctx context.Context) (string, string, bool)) aurestclientapi.RequestManipulatorCallback {
	return func(ctx context.Context, r *http.Request) {
		if username, password, ok := credentialsFromContext(ctx); ok {
			r.SetBasicAuth(username, password)
		}
		r.Header.Add(middleware.RequestIDHeader, logging.GetRequestID(ctx))
	}
}

// ClientWith stacks request logging and a circuit breaker named circuitBreakerName on top of
// a plain http client.
func ClientWith(requestManipulator aurestclientapi.RequestManipulatorCallback, circuitBreakerName string) (aurestclientapi.Client, error) {
	httpClient, err := auresthttpclient.New(0, nil, requestManipulator)
	if err != nil {
		return nil, err
	}

	requestLoggingClient := NewRequestLoggingWrapper(httpClient, strings.TrimSuffix(circuitBreakerName, "-breaker"))

	circuitBreakerClient := aurestbreaker.New(requestLoggingClient,
		circuitBreakerName,
		10,
		2*time.Minute,
		30*time.Second,
		15*time.Second,
	)

	return circuitBreakerClient, nil
}

func ErrByStatus(err error, status int) error {
	if err != nil {
		return err
	}
	switch {
	case status == http.StatusNotFound:
		return ErrDownStreamNotFound
	case status >= 400 && status < 500:
		return fmt.Errorf("%w: status %d", ErrDownStreamRejected, status)
	case status >= 300:
		return ErrDownStreamUnavailable
	}
	return nil
}
