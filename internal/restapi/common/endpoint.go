package common

import (
	"context"
	"net/http"

	"github.com/shopbridge/payment-payload-service/internal/apierrors"
	"github.com/shopbridge/payment-payload-service/internal/logging"
)

type RequestHandler[Req any] func(r *http.Request) (*Req, error)
type ResponseHandler[Res any] func(ctx context.Context, res *Res, w http.ResponseWriter) error
type Endpoint[Req, Res any] func(ctx context.Context, request *Req, logger logging.Logger) (*Res, error)

func CreateHandler[Req, Res any](endpoint Endpoint[Req, Res],
	requestHandler RequestHandler[Req],
	responseHandler ResponseHandler[Res]) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		reqID := logging.GetRequestID(ctx)
		logger := logging.LoggerFromContext(ctx)

		defer func() {
			err := r.Body.Close()
			if err != nil {
				logger.Error("Error when closing the request body. [error]: %v", err)
			}
		}()

		if requestHandler == nil {
			logger.Error("No request handler supplied")
			SendResponseWithStatusAndMessage(w, http.StatusInternalServerError, reqID, UnknownErrorMessage, logger, "")
			return
		}

		if responseHandler == nil {
			logger.Error("No response handler supplied")
			SendResponseWithStatusAndMessage(w, http.StatusInternalServerError, reqID, UnknownErrorMessage, logger, "")
			return
		}

		request, err := requestHandler(r)
		if err != nil {
			logger.Error("An error occurred while parsing the request. [error]: %v", err)
			SendBadRequestResponse(w, reqID, logger, err.Error())
			return
		}

		response, err := endpoint(ctx, request, logger)
		if err != nil {
			logger.Error("An error occurred during the request. [error]: %v", err)
			SendErrorResponse(w, reqID, logger, err)
			return
		}

		if err := responseHandler(ctx, response, w); err != nil {
			logger.Error("An error occurred during the handling of the response. [error]: %v", err)
			SendResponseWithStatusAndMessage(w, http.StatusInternalServerError, reqID, UnknownErrorMessage, logger, "")
			return
		}
	})
}

// SendErrorResponse picks the response for a `StatusError`. Any other error is reported
// as an internal error without details.
func SendErrorResponse(w http.ResponseWriter, reqID string, logger logging.Logger, err error) {
	status := apierrors.AsAPIStatus(err)
	if status == nil {
		SendInternalServerError(w, reqID, logger, "")
		return
	}

	details := status.Status().Details
	switch {
	case apierrors.IsBadRequestError(err):
		SendBadRequestResponse(w, reqID, logger, details)
	case apierrors.IsUnauthorizedError(err):
		SendUnauthorizedResponse(w, reqID, logger, details)
	case apierrors.IsForbiddenError(err):
		SendForbiddenResponse(w, reqID, logger, details)
	case apierrors.IsNotFoundError(err):
		SendStatusNotFoundResponse(w, reqID, logger, details)
	case apierrors.IsConflictError(err):
		SendConflictResponse(w, reqID, logger, details)
	case apierrors.IsUnprocessableEntityError(err):
		SendUnprocessableEntityResponse(w, reqID, logger, details)
	case apierrors.IsBadGatewayError(err):
		SendBadGatewayResponse(w, reqID, logger, details)
	default:
		SendInternalServerError(w, reqID, logger, details)
	}
}
