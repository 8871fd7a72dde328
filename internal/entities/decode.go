package entities

import (
	"encoding/json"
	"errors"
	"fmt"
)

var ErrUnsupportedKind = errors.New("unsupported source kind")

// DecodeDocument parses a raw storefront export of the given kind.
func DecodeDocument(kind SourceKind, raw []byte) (Document, error) {
	switch kind {
	case SourceKindOrder:
		var order Order
		if err := json.Unmarshal(raw, &order); err != nil {
			return nil, fmt.Errorf("invalid order document: %w", err)
		}
		return order, nil
	case SourceKindCart:
		var cart Cart
		if err := json.Unmarshal(raw, &cart); err != nil {
			return nil, fmt.Errorf("invalid cart document: %w", err)
		}
		return cart, nil
	case SourceKindCreditMemo:
		var memo CreditMemo
		if err := json.Unmarshal(raw, &memo); err != nil {
			return nil, fmt.Errorf("invalid credit memo document: %w", err)
		}
		return memo, nil
	}

	return nil, ErrUnsupportedKind
}
