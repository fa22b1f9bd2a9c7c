package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/klinik-cli/internal/adapters/render/view"
	"github.com/bnema/klinik-cli/internal/domain"
)

func newDoctorCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Doctor workspace (requires a doctor session)",
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			app.stderr.set(cmd.ErrOrStderr())
			_, err := app.dashboards.RequireRole(cmd.Context(), domain.RoleDoctor)
			return err
		},
	}

	cmd.AddCommand(
		newDoctorDashboardCmd(app),
		newDoctorAppointmentsCmd(app),
		newDoctorProfileCmd(app),
		newDoctorUpdateProfileCmd(app),
		newDoctorChangePasswordCmd(app),
	)

	return cmd
}

func newDoctorDashboardCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show your appointments, invoices and revenue",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dashboard, err := fetch(cmd, app, "Loading doctor dashboard...", app.dashboards.Doctor)
			if err != nil {
				return fmt.Errorf("doctor dashboard: %w", err)
			}
			return writeOutput(cmd, app, dashboard, view.DoctorDashboard(dashboard))
		},
	}
}

func newDoctorAppointmentsCmd(app *app) *cobra.Command {
	var from string
	var to string

	cmd := &cobra.Command{
		Use:   "appointments",
		Short: "List your appointments, optionally within a date range",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			identity, err := app.dashboards.RequireRole(cmd.Context(), domain.RoleDoctor)
			if err != nil {
				return err
			}
			doctorID := domain.DoctorID(identity.UserID)

			appointments, err := fetch(cmd, app, "Fetching appointments...", func(ctx context.Context) ([]domain.Appointment, error) {
				if from != "" || to != "" {
					return app.clinic.Appointments.ForDoctorInRange(ctx, doctorID, from, to)
				}
				return app.clinic.Appointments.ForDoctor(ctx, doctorID)
			})
			if err != nil {
				return fmt.Errorf("list appointments: %w", err)
			}
			return writeOutput(cmd, app, appointments, view.Appointments("Your appointments", appointments))
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "Start day (yyyy-MM-dd)")
	cmd.Flags().StringVar(&to, "to", "", "End day (yyyy-MM-dd)")
	cmd.MarkFlagsRequiredTogether("from", "to")

	return cmd
}

func newDoctorProfileCmd(app *app) *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show your profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			lookup, err := profileEmail(cmd.Context(), app, email)
			if err != nil {
				return err
			}

			doctor, err := fetch(cmd, app, "Fetching profile...", func(ctx context.Context) (domain.Doctor, error) {
				return app.clinic.Doctors.Profile(ctx, lookup)
			})
			if err != nil {
				return fmt.Errorf("doctor profile: %w", err)
			}
			return writeOutput(cmd, app, doctor, view.Doctor(doctor))
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Profile email (default: logged-in username)")

	return cmd
}

func newDoctorUpdateProfileCmd(app *app) *cobra.Command {
	var about string
	var hours string
	var fee float64
	var experience int

	cmd := &cobra.Command{
		Use:   "update-profile",
		Short: "Update your public profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			identity, err := app.dashboards.RequireRole(cmd.Context(), domain.RoleDoctor)
			if err != nil {
				return err
			}

			updated, err := fetch(cmd, app, "Updating profile...", func(ctx context.Context) (domain.Doctor, error) {
				profile, err := app.clinic.Doctors.Profile(ctx, identity.Username)
				if err != nil {
					return domain.Doctor{}, err
				}

				flags := cmd.Flags()
				if flags.Changed("about") {
					profile.About = about
				}
				if flags.Changed("hours") {
					profile.WorkingHours = hours
				}
				if flags.Changed("fee") {
					profile.Fee = fee
				}
				if flags.Changed("experience") {
					profile.ExperienceYears = experience
				}

				return app.clinic.Doctors.UpdateProfile(ctx, domain.DoctorID(identity.UserID), profile)
			})
			if err != nil {
				return fmt.Errorf("update profile: %w", err)
			}
			return writeOutput(cmd, app, updated, view.Doctor(updated))
		},
	}

	cmd.Flags().StringVar(&about, "about", "", "Short biography")
	cmd.Flags().StringVar(&hours, "hours", "", "Working hours")
	cmd.Flags().Float64Var(&fee, "fee", 0, "Consultation fee")
	cmd.Flags().IntVar(&experience, "experience", 0, "Years of experience")

	return cmd
}

func newDoctorChangePasswordCmd(app *app) *cobra.Command {
	var oldPassword string
	var newPassword string

	cmd := &cobra.Command{
		Use:   "change-password",
		Short: "Change your password",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			email, err := profileEmail(cmd.Context(), app, "")
			if err != nil {
				return err
			}

			message, err := fetch(cmd, app, "Changing password...", func(ctx context.Context) (string, error) {
				return app.clinic.Doctors.ChangePassword(ctx, email, oldPassword, newPassword)
			})
			if err != nil {
				return fmt.Errorf("change password: %w", err)
			}
			if message == "" {
				message = "Password changed"
			}
			return writeMessage(cmd, app, message)
		},
	}

	cmd.Flags().StringVar(&oldPassword, "old", "", "Current password")
	cmd.Flags().StringVar(&newPassword, "new", "", "New password")
	_ = cmd.MarkFlagRequired("old")
	_ = cmd.MarkFlagRequired("new")

	return cmd
}

// profileEmail falls back to the logged-in username, which doctors log in with.
func profileEmail(ctx context.Context, app *app, email string) (string, error) {
	if email != "" {
		return email, nil
	}

	identity, err := app.sessions.Current(ctx)
	if err != nil {
		return "", err
	}
	return identity.Username, nil
}
