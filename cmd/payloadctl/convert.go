package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/shopbridge/payment-payload-service/internal/app"
	"github.com/shopbridge/payment-payload-service/internal/entities"
	"github.com/shopbridge/payment-payload-service/internal/lineitem"
)

type convertOutput struct {
	Kind               entities.SourceKind `json:"kind"`
	Currency           string              `json:"currency"`
	Items              []lineitem.LineItem `json:"items"`
	RecordedTotal      json.Number         `json:"recorded_total"`
	ReconstructedTotal json.Number         `json:"reconstructed_total"`
}

func (c *cli) convertCmd() *cobra.Command {
	var kind string

	cmd := &cobra.Command{
		Use:   "convert <file>",
		Short: "Convert an exported storefront document into a payment payload",
		Long: `Reads a cart, order or credit memo as exported by the storefront and prints the
line items that would be sent to the payment provider. Fails if the reconstructed
total does not match the total recorded in the document.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			document, err := entities.DecodeDocument(entities.SourceKind(kind), raw)
			if err != nil {
				return err
			}

			converter := app.NewConverter(c.conf.Payload)
			items, err := converter.Convert(document)
			if err != nil {
				return err
			}

			total, reconcileErr := converter.Reconcile(document.RecordedTotal(), items)

			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")
			encoder.SetEscapeHTML(false)
			if err := encoder.Encode(convertOutput{
				Kind:               entities.SourceKind(kind),
				Currency:           document.CurrencyCode(),
				Items:              items,
				RecordedTotal:      json.Number(document.RecordedTotal().StringFixed(2)),
				ReconstructedTotal: json.Number(total.StringFixed(2)),
			}); err != nil {
				return err
			}

			if reconcileErr != nil {
				return reconcileErr
			}

			fmt.Fprintf(cmd.ErrOrStderr(), "total %s %s\n", total.StringFixed(2), document.CurrencyCode())
			return nil
		},
	}

	cmd.Flags().StringVarP(&kind, "kind", "k", string(entities.SourceKindOrder), "document kind (order, cart, creditmemo)")

	return cmd
}
