package v1paymentmethods

import (
	"encoding/json"
	"strings"

	"github.com/shopbridge/payment-payload-service/internal/entities"
	"github.com/shopbridge/payment-payload-service/internal/interaction"
)

func V1PaymentMethodFrom(m entities.PaymentMethod) PaymentMethod {
	customerTypes := make([]string, 0)
	if m.CustomerTypes != "" {
		customerTypes = strings.Split(m.CustomerTypes, ",")
	}

	return PaymentMethod{
		ID:              m.ID,
		Code:            m.Code,
		Identifier:      m.Identifier,
		CredentialKey:   m.CredentialKey,
		Active:          m.Active,
		Title:           m.Title,
		SortOrder:       m.SortOrder,
		MinOrderTotal:   json.Number(m.MinOrderTotal.StringFixed(2)),
		MaxOrderTotal:   json.Number(m.MaxOrderTotal.StringFixed(2)),
		OrderStatus:     m.OrderStatus,
		Type:            m.Type,
		CustomerTypes:   customerTypes,
		SpecificCountry: m.SpecificCountry,
	}
}

func V1SyncResultFrom(o interaction.SyncOutcome) SyncResult {
	result := SyncResult{
		CredentialKey: o.CredentialKey,
		Deactivated:   o.Result.Deactivated,
		Created:       o.Result.Created,
		Updated:       o.Result.Updated,
		Total:         o.Result.Total,
	}
	if o.Err != nil {
		result.Error = o.Err.Error()
	}
	return result
}
