package v1payloads

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shopbridge/payment-payload-service/internal/entities"
	"github.com/shopbridge/payment-payload-service/internal/interaction"
	"github.com/shopbridge/payment-payload-service/internal/logging"
	"github.com/shopbridge/payment-payload-service/internal/restapi/common"
	"github.com/shopbridge/payment-payload-service/internal/restapi/types"
)

type handler struct {
	interactor interaction.Interactor
}

type buildRequest struct {
	kind     entities.SourceKind
	document entities.Document
}

func Create(router chi.Router, i interaction.Interactor) {
	h := &handler{
		interactor: i,
	}

	router.Post("/payloads", common.CreateHandler(h.buildPayload, h.buildPayloadRequest, h.payloadResponse))
	router.Get("/payloads/{kind}/{id}", common.CreateHandler(h.fetchPayload, h.fetchPayloadRequest, h.payloadResponse))
}

func (h *handler) buildPayload(ctx context.Context, req *buildRequest, logger logging.Logger) (*PayloadResponse, error) {
	payload, err := h.interactor.BuildPayload(ctx, req.kind, req.document)
	if err != nil {
		return nil, err
	}

	logger.Debug("built %s payload with %d items", payload.Kind, len(payload.Items))
	return &PayloadResponse{Payload: V1PayloadFrom(payload)}, nil
}

func (h *handler) buildPayloadRequest(r *http.Request) (*buildRequest, error) {
	var request BuildPayloadRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		return nil, fmt.Errorf("invalid request body: %w", err)
	}

	if !request.Kind.IsValid() {
		return nil, fmt.Errorf("unknown source kind %q", request.Kind)
	}

	// an absent document is reported by the interactor
	trimmed := bytes.TrimSpace(request.Document)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return &buildRequest{kind: request.Kind}, nil
	}

	document, err := entities.DecodeDocument(request.Kind, request.Document)
	if err != nil {
		return nil, err
	}

	return &buildRequest{kind: request.Kind, document: document}, nil
}

func (h *handler) fetchPayload(ctx context.Context, req *FetchPayloadRequest, logger logging.Logger) (*PayloadResponse, error) {
	payload, err := h.interactor.BuildPayloadFor(ctx, req.Kind, req.ID)
	if err != nil {
		return nil, err
	}

	return &PayloadResponse{Payload: V1PayloadFrom(payload)}, nil
}

func (h *handler) fetchPayloadRequest(r *http.Request) (*FetchPayloadRequest, error) {
	kind := entities.SourceKind(chi.URLParam(r, "kind"))
	if !kind.IsValid() {
		return nil, fmt.Errorf("unknown source kind %q", kind)
	}

	return &FetchPayloadRequest{
		Kind: kind,
		ID:   chi.URLParam(r, "id"),
	}, nil
}

func (h *handler) payloadResponse(ctx context.Context, res *PayloadResponse, w http.ResponseWriter) error {
	return types.NewResult(*res, http.StatusOK).EncodeToJson(w)
}
