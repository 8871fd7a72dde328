package v1payloads

import (
	"encoding/json"

	"github.com/shopbridge/payment-payload-service/internal/entities"
	"github.com/shopbridge/payment-payload-service/internal/lineitem"
)

// request and response types
type (
	// BuildPayloadRequest carries a sales document exported by the storefront. Document is
	// decoded according to Kind.
	BuildPayloadRequest struct {
		Kind     entities.SourceKind `json:"kind"`
		Document json.RawMessage     `json:"document"`
	}

	// FetchPayloadRequest names a document the service loads from the storefront itself
	FetchPayloadRequest struct {
		Kind entities.SourceKind
		ID   string
	}

	PayloadResponse struct {
		Payload Payload `json:"payload"`
	}
)

type Payload struct {
	Kind     entities.SourceKind `json:"kind"`
	Currency string              `json:"currency"`
	Items    []lineitem.LineItem `json:"items"`
	// RecordedTotal is the grand total the storefront stored
	RecordedTotal json.Number `json:"recorded_total"`
	// ReconstructedTotal is the sum of the items including tax
	ReconstructedTotal json.Number `json:"reconstructed_total"`
}
