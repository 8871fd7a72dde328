package providerapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	aurestclientapi "github.com/StephanHCB/go-autumn-restclient/api"

	"github.com/shopbridge/payment-payload-service/internal/repository/downstreams"
)

type Impl struct {
	client  aurestclientapi.Client
	baseUrl string
}

var _ ProviderAPI = (*Impl)(nil)

type credentialsKey struct{}

func withCredentials(ctx context.Context, creds Credentials) context.Context {
	return context.WithValue(ctx, credentialsKey{}, creds)
}

func credentialsFromContext(ctx context.Context) (string, string, bool) {
	creds, ok := ctx.Value(credentialsKey{}).(Credentials)
	if !ok {
		return "", "", false
	}
	return creds.Username, creds.Password, true
}

func New(providerBaseUrl string) (ProviderAPI, error) {
	if providerBaseUrl == "" {
		return nil, errors.New("provider.base_url not configured. This service cannot synchronize payment methods or submit payments without it")
	}

	client, err := downstreams.ClientWith(
		downstreams.BasicAuthRequestManipulator(credentialsFromContext),
		"payment-provider-breaker",
	)
	if err != nil {
		return nil, err
	}

	return &Impl{
		client:  client,
		baseUrl: providerBaseUrl,
	}, nil
}

func (i *Impl) ListPaymentMethods(ctx context.Context, creds Credentials) ([]PaymentMethodDto, error) {
	requestUrl := fmt.Sprintf("%s/v2/stores/%s/payment_methods", i.baseUrl, url.PathEscape(creds.StoreID))
	bodyDto := paymentMethodListDto{}
	response := aurestclientapi.ParsedResponse{
		Body: &bodyDto,
	}
	err := i.client.Perform(withCredentials(ctx, creds), http.MethodGet, requestUrl, nil, &response)
	if err := downstreams.ErrByStatus(err, response.Status); err != nil {
		return nil, err
	}

	methods := make([]PaymentMethodDto, 0, len(bodyDto.Content))
	for _, raw := range bodyDto.Content {
		method := PaymentMethodDto{}
		if err := json.Unmarshal(raw, &method); err != nil {
			return nil, fmt.Errorf("failed to parse payment method %s: %w", string(raw), err)
		}
		method.Raw = raw
		methods = append(methods, method)
	}
	return methods, nil
}

func (i *Impl) CreatePayment(ctx context.Context, creds Credentials, request CreatePaymentRequestDto) (CreatePaymentResponseDto, error) {
	requestUrl := fmt.Sprintf("%s/v2/payments", i.baseUrl)
	bodyDto := CreatePaymentResponseDto{}
	response := aurestclientapi.ParsedResponse{
		Body: &bodyDto,
	}
	err := i.client.Perform(withCredentials(ctx, creds), http.MethodPost, requestUrl, request, &response)
	return bodyDto, downstreams.ErrByStatus(err, response.Status)
}
