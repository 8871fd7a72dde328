package v1payments

import (
	"encoding/json"

	"github.com/shopbridge/payment-payload-service/internal/entities"
)

func V1PaymentAttemptFrom(a entities.PaymentAttempt) PaymentAttempt {
	result := PaymentAttempt{
		Reference:          a.Reference,
		OrderID:            a.OrderReference,
		PaymentMethodCode:  a.MethodCode,
		Status:             a.Status,
		Currency:           a.ISOCurrency,
		RecordedTotal:      json.Number(a.RecordedTotal.StringFixed(2)),
		ReconstructedTotal: json.Number(a.ReconstructedTotal.StringFixed(2)),
		LineCount:          a.LineCount,
		ProviderPaymentID:  a.ProviderPaymentID,
		Comment:            a.Comment,
		CreationDate:       a.CreatedAt,
	}

	if a.Payload != "" && json.Valid([]byte(a.Payload)) {
		result.Payload = json.RawMessage(a.Payload)
	}

	return result
}

func V1StatusHistoryFrom(logs []entities.PaymentAttemptLog) []StatusHistory {
	result := make([]StatusHistory, 0, len(logs))
	for _, l := range logs {
		result = append(result, StatusHistory{
			Status:            l.Status,
			ProviderPaymentID: l.ProviderPaymentID,
			Comment:           l.Comment,
			ChangeDate:        l.CreatedAt,
		})
	}
	return result
}
