package downstreams

import (
	"context"
	"net/url"
	"time"

	aurestclientapi "github.com/StephanHCB/go-autumn-restclient/api"

	"github.com/shopbridge/payment-payload-service/internal/logging"
)

// RequestLoggingImpl logs every downstream call through the request scoped logger, so
// the lines carry the request id. Query strings are left out of the log.
type RequestLoggingImpl struct {
	Wrapped    aurestclientapi.Client
	Downstream string
}

func NewRequestLoggingWrapper(wrapped aurestclientapi.Client, downstream string) aurestclientapi.Client {
	return &RequestLoggingImpl{
		Wrapped:    wrapped,
		Downstream: downstream,
	}
}

func (c *RequestLoggingImpl) Perform(ctx context.Context, method string, requestUrl string, requestBody interface{}, response *aurestclientapi.ParsedResponse) error {
	logger := logging.LoggerFromContext(ctx)
	target := loggableURL(requestUrl)

	before := time.Now()
	err := c.Wrapped.Perform(ctx, method, requestUrl, requestBody, response)
	millis := time.Since(before).Milliseconds()

	switch {
	case err != nil:
		logger.Warn("%s: %s %s FAILED (%d ms): %s", c.Downstream, method, target, millis, err.Error())
	case response.Status >= 400:
		logger.Warn("%s: %s %s -> %d (%d ms)", c.Downstream, method, target, response.Status, millis)
	default:
		logger.Info("%s: %s %s -> %d OK (%d ms)", c.Downstream, method, target, response.Status, millis)
	}
	return err
}

func loggableURL(requestUrl string) string {
	parsed, err := url.Parse(requestUrl)
	if err != nil {
		return "<unparseable url>"
	}
	parsed.RawQuery = ""
	parsed.User = nil
	return parsed.String()
}
