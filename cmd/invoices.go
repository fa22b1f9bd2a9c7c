package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/klinik-cli/internal/adapters/render/view"
	"github.com/bnema/klinik-cli/internal/domain"
)

var errInvoiceScope = errors.New("invoices list needs --doctor or --all")

func newInvoicesCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "invoices",
		Short: "Inspect invoices and revenue",
	}

	cmd.AddCommand(
		newInvoicesListCmd(app),
		newInvoicesShowCmd(app),
		newInvoicesRevenueCmd(app),
		newInvoicesMarkPaidCmd(app),
	)

	return cmd
}

func newInvoicesListCmd(app *app) *cobra.Command {
	var doctorID int64
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List invoices for a doctor or the whole clinic",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var title string
			var call func(context.Context) ([]domain.Invoice, error)
			switch {
			case all:
				title = "All invoices"
				call = app.clinic.Invoices.All
			case doctorID > 0:
				title = fmt.Sprintf("Invoices for doctor #%d", doctorID)
				call = func(ctx context.Context) ([]domain.Invoice, error) {
					return app.clinic.Invoices.ForDoctor(ctx, domain.DoctorID(doctorID))
				}
			default:
				return errInvoiceScope
			}

			invoices, err := fetch(cmd, app, "Fetching invoices...", call)
			if err != nil {
				return fmt.Errorf("list invoices: %w", err)
			}
			return writeOutput(cmd, app, invoices, view.Invoices(title, invoices))
		},
	}

	cmd.Flags().Int64Var(&doctorID, "doctor", 0, "Doctor ID")
	cmd.Flags().BoolVar(&all, "all", false, "Every invoice in the clinic")
	cmd.MarkFlagsMutuallyExclusive("doctor", "all")

	return cmd
}

func newInvoicesShowCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one invoice",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("invoice", args[0])
			if err != nil {
				return err
			}

			invoice, err := fetch(cmd, app, "Fetching invoice...", func(ctx context.Context) (domain.Invoice, error) {
				return app.clinic.Invoices.Get(ctx, domain.InvoiceID(id))
			})
			if err != nil {
				return fmt.Errorf("show invoice %d: %w", id, err)
			}
			return writeOutput(cmd, app, invoice, view.Invoice(invoice))
		},
	}
}

func newInvoicesRevenueCmd(app *app) *cobra.Command {
	var doctorID int64

	cmd := &cobra.Command{
		Use:   "revenue",
		Short: "Show revenue for a doctor, or the clinic total",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			call := app.clinic.Admin.TotalRevenue
			if doctorID > 0 {
				call = func(ctx context.Context) (float64, error) {
					return app.clinic.Invoices.DoctorRevenue(ctx, domain.DoctorID(doctorID))
				}
			}

			revenue, err := fetch(cmd, app, "Fetching revenue...", call)
			if err != nil {
				return fmt.Errorf("revenue: %w", err)
			}
			if app.asJSON {
				return writeJSON(cmd, map[string]float64{"revenue": revenue})
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%.2f TL\n", revenue)
			return err
		},
	}

	cmd.Flags().Int64Var(&doctorID, "doctor", 0, "Doctor ID (default: clinic total)")

	return cmd
}

func newInvoicesMarkPaidCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "mark-paid <id>",
		Short: "Mark an invoice as paid",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("invoice", args[0])
			if err != nil {
				return err
			}

			invoice, err := fetch(cmd, app, "Updating invoice...", func(ctx context.Context) (domain.Invoice, error) {
				return app.clinic.Admin.MarkInvoicePaid(ctx, domain.InvoiceID(id))
			})
			if err != nil {
				return fmt.Errorf("mark invoice %d paid: %w", id, err)
			}
			return writeOutput(cmd, app, invoice, view.Invoice(invoice))
		},
	}
}
