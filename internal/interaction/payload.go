package interaction

import (
	"context"
	"fmt"

	"github.com/shopbridge/payment-payload-service/internal/apierrors"
	"github.com/shopbridge/payment-payload-service/internal/entities"
	"github.com/shopbridge/payment-payload-service/internal/logging"
)

func (s *serviceInteractor) BuildPayload(ctx context.Context, kind entities.SourceKind, document entities.Document) (*Payload, error) {
	if err := s.requireAuthenticated(ctx); err != nil {
		return nil, err
	}

	if !kind.IsValid() {
		return nil, apierrors.NewBadRequest(fmt.Sprintf("unknown source kind %q", kind))
	}

	if document == nil {
		return nil, apierrors.NewBadRequest("no sales document supplied")
	}

	return s.convert(ctx, kind, document)
}

func (s *serviceInteractor) BuildPayloadFor(ctx context.Context, kind entities.SourceKind, id string) (*Payload, error) {
	if err := s.requireAuthenticated(ctx); err != nil {
		return nil, err
	}

	if id == "" {
		return nil, apierrors.NewBadRequest("no document id supplied")
	}

	document, err := s.loadDocument(ctx, kind, id)
	if err != nil {
		return nil, err
	}

	return s.convert(ctx, kind, document)
}

func (s *serviceInteractor) loadDocument(ctx context.Context, kind entities.SourceKind, id string) (entities.Document, error) {
	switch kind {
	case entities.SourceKindOrder:
		order, err := s.storefront.GetOrder(ctx, id)
		if err != nil {
			return nil, toAPIError(err)
		}
		return order, nil
	case entities.SourceKindCart:
		cart, err := s.storefront.GetCart(ctx, id)
		if err != nil {
			return nil, toAPIError(err)
		}
		return cart, nil
	case entities.SourceKindCreditMemo:
		memo, err := s.storefront.GetCreditMemo(ctx, id)
		if err != nil {
			return nil, toAPIError(err)
		}
		return memo, nil
	}

	return nil, apierrors.NewBadRequest(fmt.Sprintf("unknown source kind %q", kind))
}

func (s *serviceInteractor) convert(ctx context.Context, kind entities.SourceKind, document entities.Document) (*Payload, error) {
	logger := logging.LoggerFromContext(ctx)

	items, err := s.converter.Convert(document)
	if err != nil {
		logger.Warn("could not convert %s: %v", kind, err)
		return nil, toAPIError(err)
	}

	total, err := s.converter.Reconcile(document.RecordedTotal(), items)
	if err != nil {
		logger.Warn("payload of %s does not add up: %v", kind, err)
		return nil, toAPIError(err)
	}

	return &Payload{
		Kind:               kind,
		Currency:           document.CurrencyCode(),
		Items:              items,
		RecordedTotal:      document.RecordedTotal(),
		ReconstructedTotal: total,
	}, nil
}
