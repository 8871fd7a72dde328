package storefront

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	aurestclientapi "github.com/StephanHCB/go-autumn-restclient/api"

	"github.com/shopbridge/payment-payload-service/internal/entities"
	"github.com/shopbridge/payment-payload-service/internal/repository/downstreams"
)

type Impl struct {
	client  aurestclientapi.Client
	baseUrl string
}

var _ Storefront = (*Impl)(nil)

func New(storefrontBaseUrl string, fixedApiToken string) (Storefront, error) {
	if storefrontBaseUrl == "" {
		return nil, errors.New("service.storefront_service not configured. This service cannot load sales documents without it")
	}

	client, err := downstreams.ClientWith(
		downstreams.ApiTokenRequestManipulator(fixedApiToken),
		"storefront-breaker",
	)
	if err != nil {
		return nil, err
	}

	return &Impl{
		client:  client,
		baseUrl: storefrontBaseUrl,
	}, nil
}

func (i *Impl) GetOrder(ctx context.Context, incrementID string) (entities.Order, error) {
	bodyDto := entities.Order{}
	err := i.get(ctx, "orders", incrementID, &bodyDto)
	return bodyDto, err
}

func (i *Impl) GetCart(ctx context.Context, cartID string) (entities.Cart, error) {
	bodyDto := entities.Cart{}
	err := i.get(ctx, "carts", cartID, &bodyDto)
	return bodyDto, err
}

func (i *Impl) GetCreditMemo(ctx context.Context, creditMemoID string) (entities.CreditMemo, error) {
	bodyDto := entities.CreditMemo{}
	err := i.get(ctx, "creditmemos", creditMemoID, &bodyDto)
	return bodyDto, err
}

func (i *Impl) get(ctx context.Context, collection string, id string, body interface{}) error {
	requestUrl := fmt.Sprintf("%s/api/rest/v1/%s/%s", i.baseUrl, collection, url.PathEscape(id))
	response := aurestclientapi.ParsedResponse{
		Body: body,
	}
	err := i.client.Perform(ctx, http.MethodGet, requestUrl, nil, &response)
	return downstreams.ErrByStatus(err, response.Status)
}
