package interaction

import (
	"context"
	"errors"

	"github.com/shopbridge/payment-payload-service/internal/entities"
	"github.com/shopbridge/payment-payload-service/internal/repository/downstreams"
	"github.com/shopbridge/payment-payload-service/internal/repository/downstreams/providerapi"
	"github.com/shopbridge/payment-payload-service/internal/repository/downstreams/storefront"
	"github.com/shopbridge/payment-payload-service/internal/restapi/common"
)

var _ storefront.Storefront = (*StorefrontMock)(nil)

type StorefrontMock struct {
	orders map[string]entities.Order
	carts  map[string]entities.Cart
	memos  map[string]entities.CreditMemo
	err    error
}

func (s *StorefrontMock) GetOrder(ctx context.Context, incrementID string) (entities.Order, error) {
	if s.err != nil {
		return entities.Order{}, s.err
	}
	order, ok := s.orders[incrementID]
	if !ok {
		return entities.Order{}, downstreams.ErrDownStreamNotFound
	}
	return order, nil
}

func (s *StorefrontMock) GetCart(ctx context.Context, cartID string) (entities.Cart, error) {
	if s.err != nil {
		return entities.Cart{}, s.err
	}
	cart, ok := s.carts[cartID]
	if !ok {
		return entities.Cart{}, downstreams.ErrDownStreamNotFound
	}
	return cart, nil
}

func (s *StorefrontMock) GetCreditMemo(ctx context.Context, creditMemoID string) (entities.CreditMemo, error) {
	if s.err != nil {
		return entities.CreditMemo{}, s.err
	}
	memo, ok := s.memos[creditMemoID]
	if !ok {
		return entities.CreditMemo{}, downstreams.ErrDownStreamNotFound
	}
	return memo, nil
}

var _ providerapi.ProviderAPI = (*ProviderMock)(nil)

type ProviderMock struct {
	methods []providerapi.PaymentMethodDto
	// list errors by username
	listErrs  map[string]error
	createErr error
	requests  []providerapi.CreatePaymentRequestDto
}

func (p *ProviderMock) ListPaymentMethods(ctx context.Context, creds providerapi.Credentials) ([]providerapi.PaymentMethodDto, error) {
	if err := p.listErrs[creds.Username]; err != nil {
		return nil, err
	}
	return p.methods, nil
}

func (p *ProviderMock) CreatePayment(ctx context.Context, creds providerapi.Credentials, request providerapi.CreatePaymentRequestDto) (providerapi.CreatePaymentResponseDto, error) {
	p.requests = append(p.requests, request)
	if p.createErr != nil {
		return providerapi.CreatePaymentResponseDto{}, p.createErr
	}
	return providerapi.CreatePaymentResponseDto{ID: "pay-4711", Status: "ACCEPTED"}, nil
}

var errBoom = errors.New("boom")

func apiTokenCtx() context.Context {
	return common.WithPrincipal(context.Background(), &common.Principal{APIToken: true})
}

// tokenCtx resolves the admin flag the way the authentication middleware does for the
// admin role "admin".
func tokenCtx(subject string, roles ...string) context.Context {
	principal := &common.Principal{Subject: subject, Roles: roles}
	for _, role := range roles {
		if role == "admin" {
			principal.Admin = true
		}
	}
	return common.WithPrincipal(context.Background(), principal)
}
