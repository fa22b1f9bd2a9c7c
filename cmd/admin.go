package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/klinik-cli/internal/adapters/render/view"
	"github.com/bnema/klinik-cli/internal/domain"
)

func newAdminCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Clinic administration (requires an admin session)",
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			app.stderr.set(cmd.ErrOrStderr())
			_, err := app.dashboards.RequireRole(cmd.Context(), domain.RoleAdmin)
			return err
		},
	}

	cmd.AddCommand(
		newAdminDashboardCmd(app),
		newAdminDoctorsCmd(app),
		newAdminAppointmentsCmd(app),
		newAdminInvoicesCmd(app),
		newAdminReviewsCmd(app),
		newAdminCreateAdminCmd(app),
	)

	return cmd
}

func newAdminDashboardCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show statistics, revenue and pending reviews",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dashboard, err := fetch(cmd, app, "Loading admin dashboard...", app.dashboards.Admin)
			if err != nil {
				return fmt.Errorf("admin dashboard: %w", err)
			}
			return writeOutput(cmd, app, dashboard, view.AdminDashboard(dashboard))
		},
	}
}

func newAdminDoctorsCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doctors",
		Short: "List and manage doctors",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			doctors, err := fetch(cmd, app, "Fetching doctors...", app.clinic.Admin.Doctors)
			if err != nil {
				return fmt.Errorf("list doctors: %w", err)
			}
			return writeOutput(cmd, app, doctors, view.Doctors(doctors))
		},
	}

	cmd.AddCommand(newAdminCreateDoctorCmd(app), newAdminDeleteDoctorCmd(app))

	return cmd
}

func newAdminCreateDoctorCmd(app *app) *cobra.Command {
	var doctor domain.Doctor

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Add a doctor",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			created, err := fetch(cmd, app, "Creating doctor...", func(ctx context.Context) (domain.Doctor, error) {
				return app.clinic.Admin.CreateDoctor(ctx, doctor)
			})
			if err != nil {
				return fmt.Errorf("create doctor: %w", err)
			}
			return writeOutput(cmd, app, created, view.Doctor(created))
		},
	}

	cmd.Flags().StringVar(&doctor.FirstName, "first-name", "", "First name")
	cmd.Flags().StringVar(&doctor.LastName, "last-name", "", "Last name")
	cmd.Flags().StringVar(&doctor.Email, "email", "", "Login email")
	cmd.Flags().StringVar(&doctor.Password, "password", "", "Initial password")
	cmd.Flags().StringVar(&doctor.Specialty, "specialty", "", "Specialty")
	cmd.Flags().IntVar(&doctor.ExperienceYears, "experience", 0, "Years of experience")
	cmd.Flags().StringVar(&doctor.WorkingHours, "hours", "", "Working hours")
	cmd.Flags().Float64Var(&doctor.Fee, "fee", 0, "Consultation fee")
	cmd.Flags().StringVar(&doctor.About, "about", "", "Short biography")
	for _, name := range []string{"first-name", "last-name", "email", "password", "specialty"} {
		_ = cmd.MarkFlagRequired(name)
	}

	return cmd
}

func newAdminDeleteDoctorCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Remove a doctor",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("doctor", args[0])
			if err != nil {
				return err
			}

			_, err = fetch(cmd, app, "Deleting doctor...", func(ctx context.Context) (struct{}, error) {
				return struct{}{}, app.clinic.Admin.DeleteDoctor(ctx, domain.DoctorID(id))
			})
			if err != nil {
				return fmt.Errorf("delete doctor %d: %w", id, err)
			}
			return writeMessage(cmd, app, fmt.Sprintf("Deleted doctor %d", id))
		},
	}
}

func newAdminAppointmentsCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "appointments [id]",
		Short: "List every appointment, or show one",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				id, err := parseID("appointment", args[0])
				if err != nil {
					return err
				}
				appointment, err := fetch(cmd, app, "Fetching appointment...", func(ctx context.Context) (domain.Appointment, error) {
					return app.clinic.Admin.Appointment(ctx, domain.AppointmentID(id))
				})
				if err != nil {
					return fmt.Errorf("show appointment %d: %w", id, err)
				}
				return writeOutput(cmd, app, appointment, view.Appointment(appointment))
			}

			appointments, err := fetch(cmd, app, "Fetching appointments...", app.clinic.Admin.Appointments)
			if err != nil {
				return fmt.Errorf("list appointments: %w", err)
			}
			return writeOutput(cmd, app, appointments, view.Appointments("All appointments", appointments))
		},
	}
}

func newAdminInvoicesCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "invoices",
		Short: "List every invoice",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			invoices, err := fetch(cmd, app, "Fetching invoices...", app.clinic.Admin.Invoices)
			if err != nil {
				return fmt.Errorf("list invoices: %w", err)
			}
			return writeOutput(cmd, app, invoices, view.Invoices("All invoices", invoices))
		},
	}
}

func newAdminReviewsCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reviews",
		Short: "List and moderate reviews",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			reviews, err := fetch(cmd, app, "Fetching reviews...", app.clinic.Admin.Reviews)
			if err != nil {
				return fmt.Errorf("list reviews: %w", err)
			}
			return writeOutput(cmd, app, reviews, view.Reviews(reviews, -1))
		},
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "pending",
			Short: "List reviews awaiting approval",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				reviews, err := fetch(cmd, app, "Fetching pending reviews...", app.clinic.Admin.PendingReviews)
				if err != nil {
					return fmt.Errorf("list pending reviews: %w", err)
				}
				return writeOutput(cmd, app, reviews, view.Reviews(reviews, -1))
			},
		},
		newModerateReviewCmd(app, "approve", "Approve a review", app.clinic.Admin.ApproveReview),
		newModerateReviewCmd(app, "reject", "Reject a review", app.clinic.Admin.RejectReview),
		&cobra.Command{
			Use:   "delete <id>",
			Short: "Delete a review",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := parseID("review", args[0])
				if err != nil {
					return err
				}
				_, err = fetch(cmd, app, "Deleting review...", func(ctx context.Context) (struct{}, error) {
					return struct{}{}, app.clinic.Admin.DeleteReview(ctx, domain.ReviewID(id))
				})
				if err != nil {
					return fmt.Errorf("delete review %d: %w", id, err)
				}
				return writeMessage(cmd, app, fmt.Sprintf("Deleted review %d", id))
			},
		},
	)

	return cmd
}

func newModerateReviewCmd(app *app, verb, short string, moderate func(context.Context, domain.ReviewID) (domain.Review, error)) *cobra.Command {
	return &cobra.Command{
		Use:   verb + " <id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("review", args[0])
			if err != nil {
				return err
			}

			review, err := fetch(cmd, app, "Updating review...", func(ctx context.Context) (domain.Review, error) {
				return moderate(ctx, domain.ReviewID(id))
			})
			if err != nil {
				return fmt.Errorf("%s review %d: %w", verb, id, err)
			}
			return writeOutput(cmd, app, review, view.Reviews([]domain.Review{review}, -1))
		},
	}
}

func newAdminCreateAdminCmd(app *app) *cobra.Command {
	var admin domain.Admin

	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create another admin account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			created, err := fetch(cmd, app, "Creating admin...", func(ctx context.Context) (domain.Admin, error) {
				return app.clinic.Admin.CreateAdmin(ctx, admin)
			})
			if err != nil {
				return fmt.Errorf("create admin: %w", err)
			}
			if app.asJSON {
				return writeJSON(cmd, created)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Created admin %s\n", created.Username)
			return err
		},
	}

	cmd.Flags().StringVar(&admin.Username, "username", "", "Username")
	cmd.Flags().StringVar(&admin.Password, "password", "", "Password")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}
