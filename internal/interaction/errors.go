package interaction

import (
	"errors"

	"github.com/shopbridge/payment-payload-service/internal/apierrors"
	"github.com/shopbridge/payment-payload-service/internal/conversion"
	"github.com/shopbridge/payment-payload-service/internal/lineitem"
	"github.com/shopbridge/payment-payload-service/internal/methodcatalog"
	"github.com/shopbridge/payment-payload-service/internal/repository/database"
	"github.com/shopbridge/payment-payload-service/internal/repository/downstreams"
)

// toAPIError maps errors from the layers below onto status errors. Status errors and
// unknown errors are returned unchanged.
func toAPIError(err error) error {
	if err == nil || apierrors.AsAPIStatus(err) != nil {
		return err
	}

	switch {
	case errors.Is(err, lineitem.ErrInvalidField), errors.Is(err, conversion.ErrTotalMismatch):
		return apierrors.NewUnprocessableEntity(err.Error())
	case errors.Is(err, database.ErrNotFound), errors.Is(err, downstreams.ErrDownStreamNotFound):
		return apierrors.NewNotFound(err.Error())
	case errors.Is(err, database.ErrAlreadyExists), errors.Is(err, methodcatalog.ErrLocked):
		return apierrors.NewConflict(err.Error())
	case errors.Is(err, downstreams.ErrDownStreamRejected):
		return apierrors.NewUnprocessableEntity(err.Error())
	case errors.Is(err, downstreams.ErrDownStreamUnavailable), errors.Is(err, methodcatalog.ErrFetchFailed):
		return apierrors.NewBadGateway(err.Error())
	}

	return err
}
