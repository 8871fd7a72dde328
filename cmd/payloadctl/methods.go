package main

import (
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/shopbridge/payment-payload-service/internal/app"
	"github.com/shopbridge/payment-payload-service/internal/entities"
	"github.com/shopbridge/payment-payload-service/internal/interaction"
	"github.com/shopbridge/payment-payload-service/internal/methodcatalog"
)

var errSyncFailed = errors.New("payment method sync failed for at least one account")

func (c *cli) syncMethodsCmd() *cobra.Command {
	var only string

	cmd := &cobra.Command{
		Use:   "sync-methods",
		Short: "Fetch the payment methods of every configured provider account into the catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			components, err := app.Assemble(c.conf, c.logger)
			if err != nil {
				return err
			}

			synchronizer := methodcatalog.NewSynchronizer(components.Repository, components.Provider)

			failed := false
			for _, creds := range components.Accounts {
				if only != "" && creds.Key() != strings.ToLower(only) {
					continue
				}

				outcome := interaction.SyncOutcome{CredentialKey: creds.Key()}
				outcome.Result, outcome.Err = synchronizer.SyncLocked(cmd.Context(), components.Locker, creds)
				if outcome.Err != nil {
					failed = true
				}
				fmt.Fprintln(cmd.OutOrStdout(), outcome.String())
			}

			if failed {
				return errSyncFailed
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&only, "account", "", "only sync the account with this credential key")

	return cmd
}

func (c *cli) listMethodsCmd() *cobra.Command {
	var (
		credential string
		activeOnly bool
		total      string
		country    string
	)

	cmd := &cobra.Command{
		Use:   "list-methods",
		Short: "List the payment method catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			query := entities.PaymentMethodQuery{
				CredentialKey: strings.ToLower(credential),
				ActiveOnly:    activeOnly,
				Country:       strings.ToUpper(country),
			}
			if total != "" {
				value, err := decimal.NewFromString(total)
				if err != nil || value.IsNegative() {
					return fmt.Errorf("invalid order total %q", total)
				}
				query.OrderTotal = value
			}

			repo, err := app.NewRepository(c.conf.Database, c.logger)
			if err != nil {
				return err
			}
			if err := repo.Migrate(); err != nil {
				return err
			}

			methods, err := repo.FindPaymentMethods(cmd.Context(), query)
			if err != nil {
				return err
			}

			if len(methods) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no payment methods found")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tCODE\tTITLE\tACTIVE\tMIN\tMAX\tCOUNTRY")
			for _, m := range methods {
				fmt.Fprintf(w, "%d\t%s\t%s\t%t\t%s\t%s\t%s\n", m.ID, m.Code, m.Title, m.Active,
					m.MinOrderTotal.StringFixed(2), m.MaxOrderTotal.StringFixed(2), m.SpecificCountry)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&credential, "credential", "", "only list methods of this credential key")
	cmd.Flags().BoolVar(&activeOnly, "active", false, "only list active methods")
	cmd.Flags().StringVar(&total, "total", "", "only list methods covering this order total")
	cmd.Flags().StringVar(&country, "country", "", "only list methods available in this country")

	return cmd
}
