package types

import (
	"encoding/json"
	"net/http"

	"github.com/go-http-utils/headers"

	"github.com/shopbridge/payment-payload-service/internal/restapi/media"
)

type (
	Result[T any] struct {
		Payload    *T `json:"payload"`
		StatusCode int
	}
)

func NewResult[T any](payload T, statusCode int) *Result[T] {
	return &Result[T]{
		Payload:    &payload,
		StatusCode: statusCode,
	}
}

// NoContent is a result without a body.
func NoContent() *Result[struct{}] {
	return &Result[struct{}]{
		StatusCode: http.StatusNoContent,
	}
}

func (r *Result[T]) EncodeToJson(w http.ResponseWriter) error {
	if r.Payload == nil {
		w.WriteHeader(r.StatusCode)
		return nil
	}

	w.Header().Set(headers.ContentType, media.ContentTypeApplicationJson)
	w.WriteHeader(r.StatusCode)

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return enc.Encode(r.Payload)
}
