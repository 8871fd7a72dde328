package v1payloads

import (
	"encoding/json"

	"github.com/shopbridge/payment-payload-service/internal/interaction"
)

func V1PayloadFrom(p *interaction.Payload) Payload {
	return Payload{
		Kind:               p.Kind,
		Currency:           p.Currency,
		Items:              p.Items,
		RecordedTotal:      json.Number(p.RecordedTotal.StringFixed(2)),
		ReconstructedTotal: json.Number(p.ReconstructedTotal.StringFixed(2)),
	}
}
