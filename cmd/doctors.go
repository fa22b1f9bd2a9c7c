package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/klinik-cli/internal/adapters/render/view"
	"github.com/bnema/klinik-cli/internal/domain"
)

func newDoctorsCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doctors",
		Short: "Browse the doctor directory",
	}

	cmd.AddCommand(
		newDoctorsListCmd(app),
		newDoctorsShowCmd(app),
		newDoctorsBySpecialtyCmd(app),
		newDoctorsSpecialtiesCmd(app),
	)

	return cmd
}

func newDoctorsListCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all doctors",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			doctors, err := fetch(cmd, app, "Fetching doctors...", app.clinic.Doctors.List)
			if err != nil {
				return fmt.Errorf("list doctors: %w", err)
			}
			return writeOutput(cmd, app, doctors, view.Doctors(doctors))
		},
	}
}

func newDoctorsShowCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one doctor",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("doctor", args[0])
			if err != nil {
				return err
			}

			doctor, err := fetch(cmd, app, "Fetching doctor...", func(ctx context.Context) (domain.Doctor, error) {
				return app.clinic.Doctors.Get(ctx, domain.DoctorID(id))
			})
			if err != nil {
				return fmt.Errorf("show doctor %d: %w", id, err)
			}
			return writeOutput(cmd, app, doctor, view.Doctor(doctor))
		},
	}
}

func newDoctorsBySpecialtyCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "by-specialty <specialty>",
		Short: "List doctors with the given specialty",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doctors, err := fetch(cmd, app, "Fetching doctors...", func(ctx context.Context) ([]domain.Doctor, error) {
				return app.clinic.Doctors.BySpecialty(ctx, args[0])
			})
			if err != nil {
				return fmt.Errorf("list doctors by specialty: %w", err)
			}
			return writeOutput(cmd, app, doctors, view.Doctors(doctors))
		},
	}
}

func newDoctorsSpecialtiesCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "specialties",
		Short: "List the specialties offered",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			specialties, err := fetch(cmd, app, "Fetching specialties...", app.clinic.Doctors.Specialties)
			if err != nil {
				return fmt.Errorf("list specialties: %w", err)
			}
			return writeOutput(cmd, app, specialties, view.Specialties(specialties))
		},
	}
}
