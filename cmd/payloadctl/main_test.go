package main

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/shopbridge/payment-payload-service/internal/conversion"
)

const configTemplate = `service:
  name: 'payloadctl-test'
  storefront_service: 'http://localhost:9091'
server:
  port: 8080
  read_timeout_seconds: 30
  write_timeout_seconds: 30
  idle_timeout_seconds: 120
database:
  use: inmemory
security:
  fixed_token:
    api: 'some-api-token-must-be-long-enough'
  oidc:
    admin_role: 'admin'
logging:
  severity: ERROR
provider:
  base_url: '%s'
  accounts:
    - username: 'shop'
      password: 'secret'
      environment: test
      store_id: 'store-1'
`

const orderDocument = `{
  "entity_id": 7,
  "increment_id": "000000042",
  "country_id": "SE",
  "currency": "SEK",
  "items": [
    {"item_id": 1, "sku": "MUG-01", "name": "Mug", "qty": "2", "price_incl_tax": "50", "tax_percent": "25"}
  ],
  "shipping": {"method": "flatrate", "description": "Flat rate", "amount_incl_tax": "10", "tax_percent": "25"},
  "grand_total": "%s"
}`

func writeFile(t *testing.T, name string, content string) string {
	filename := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(filename, []byte(content), 0o600))
	return filename
}

func execute(t *testing.T, providerURL string, args ...string) (string, error) {
	configFile := writeFile(t, "config.yaml", fmt.Sprintf(configTemplate, providerURL))
	envFile := filepath.Join(t.TempDir(), "missing.env")

	cmd := newRootCmd()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(append([]string{"--config", configFile, "--env", envFile}, args...))

	err := cmd.Execute()
	return out.String(), err
}

func TestConvert(t *testing.T) {
	tests := []struct {
		name        string
		args        func(t *testing.T) []string
		contains    []string
		expectedErr error
		errContains string
	}{
		{
			name: "Should print the payload of a consistent order",
			args: func(t *testing.T) []string {
				return []string{"convert", writeFile(t, "order.json", fmt.Sprintf(orderDocument, "110"))}
			},
			contains: []string{`"artNo": "flatrate"`, `"artNo": "mug01"`, `"reconstructed_total": 110.00`, `"currency": "SEK"`},
		},
		{
			name: "Should print the payload and fail when the totals differ",
			args: func(t *testing.T) []string {
				return []string{"convert", "--kind", "order", writeFile(t, "order.json", fmt.Sprintf(orderDocument, "120"))}
			},
			contains:    []string{`"recorded_total": 120.00`, `"reconstructed_total": 110.00`},
			expectedErr: conversion.ErrTotalMismatch,
		},
		{
			name: "Should reject an unknown kind",
			args: func(t *testing.T) []string {
				return []string{"convert", "--kind", "invoice", writeFile(t, "order.json", "{}")}
			},
			errContains: "unsupported source kind",
		},
		{
			name: "Should fail on a missing file",
			args: func(t *testing.T) []string {
				return []string{"convert", filepath.Join(t.TempDir(), "nope.json")}
			},
			errContains: "nope.json",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, "http://localhost:9097", tt.args(t)...)

			switch {
			case tt.expectedErr != nil:
				require.ErrorIs(t, err, tt.expectedErr)
			case tt.errContains != "":
				require.ErrorContains(t, err, tt.errContains)
			default:
				require.NoError(t, err)
			}

			for _, expected := range tt.contains {
				require.Contains(t, out, expected)
			}
		})
	}
}

func TestSyncMethods(t *testing.T) {
	router := chi.NewRouter()
	router.Get("/v2/stores/{storeId}/payment_methods", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"content":[
			{"id":"INVOICE","description":"Invoice","minPurchaseLimit":10,"maxPurchaseLimit":50000,"type":"RESURS_INVOICE","sortOrder":1},
			{"id":"CARD","description":"Card","minPurchaseLimit":0,"maxPurchaseLimit":0,"type":"PAYMENT_PROVIDER"}
		]}`))
	})
	srv := httptest.NewServer(router)
	defer srv.Close()

	out, err := execute(t, srv.URL, "sync-methods")
	require.NoError(t, err)
	require.Equal(t, "shop_test: 2 created, 0 updated, 0 previously active\n", out)

	out, err = execute(t, srv.URL, "sync-methods", "--account", "someone_else")
	require.NoError(t, err)
	require.Empty(t, out)
}

func TestSyncMethodsFailure(t *testing.T) {
	router := chi.NewRouter()
	router.Get("/v2/stores/{storeId}/payment_methods", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	srv := httptest.NewServer(router)
	defer srv.Close()

	out, err := execute(t, srv.URL, "sync-methods")
	require.ErrorIs(t, err, errSyncFailed)
	require.Contains(t, out, "shop_test: failed")
}

func TestListMethods(t *testing.T) {
	out, err := execute(t, "http://localhost:9097", "list-methods", "--active", "--country", "se")
	require.NoError(t, err)
	require.Equal(t, "no payment methods found\n", out)

	_, err = execute(t, "http://localhost:9097", "list-methods", "--total", "-3")
	require.EqualError(t, err, `invalid order total "-3"`)
}

func TestInvalidConfiguration(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--config", filepath.Join(t.TempDir(), "missing.yaml"), "list-methods"})

	require.ErrorContains(t, cmd.Execute(), "failed to open configuration file")
}
