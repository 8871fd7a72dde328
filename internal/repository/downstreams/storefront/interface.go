package storefront

import (
	"context"

	"github.com/shopbridge/payment-payload-service/internal/entities"
)

type Storefront interface {
	// GetOrder loads an order by its increment id.
	GetOrder(ctx context.Context, incrementID string) (entities.Order, error)

	GetCart(ctx context.Context, cartID string) (entities.Cart, error)

	GetCreditMemo(ctx context.Context, creditMemoID string) (entities.CreditMemo, error)
}
