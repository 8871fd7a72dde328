package interaction

import (
	"context"
	"fmt"

	"github.com/shopbridge/payment-payload-service/internal/apierrors"
	"github.com/shopbridge/payment-payload-service/internal/restapi/common"
)

// the http layer resolves the caller; these checks keep the interactor safe to call from
// elsewhere too

func (s *serviceInteractor) requireAuthenticated(ctx context.Context) error {
	if !common.PrincipalFrom(ctx).Authenticated() {
		return apierrors.NewUnauthorized("no valid api token or identity token supplied")
	}
	return nil
}

// requireElevated lets through service calls with the api token and admins.
func (s *serviceInteractor) requireElevated(ctx context.Context) error {
	principal := common.PrincipalFrom(ctx)
	if principal.Elevated() {
		return nil
	}
	if !principal.Authenticated() {
		return apierrors.NewUnauthorized("no valid api token or identity token supplied")
	}
	return apierrors.NewForbidden(fmt.Sprintf("subject %s lacks the admin role", principal.Subject))
}
