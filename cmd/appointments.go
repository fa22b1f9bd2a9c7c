package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/klinik-cli/internal/adapters/render/view"
	"github.com/bnema/klinik-cli/internal/domain"
)

var errLookupCriteria = errors.New("lookup needs one of --id, --tc or --phone")

func newAppointmentsCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "appointments",
		Aliases: []string{"appt"},
		Short:   "Book and look up appointments",
	}

	cmd.AddCommand(
		newAppointmentsSlotsCmd(app),
		newAppointmentsBookCmd(app),
		newAppointmentsLookupCmd(app),
		newAppointmentsCancelCmd(app),
		newAppointmentsRescheduleCmd(app),
	)

	return cmd
}

func newAppointmentsSlotsCmd(app *app) *cobra.Command {
	var doctorID int64
	var date string

	cmd := &cobra.Command{
		Use:   "slots",
		Short: "Show free slots for a doctor on a day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			slots, err := fetch(cmd, app, "Fetching available slots...", func(ctx context.Context) ([]string, error) {
				return app.clinic.Appointments.AvailableSlots(ctx, domain.DoctorID(doctorID), date)
			})
			if err != nil {
				return fmt.Errorf("available slots: %w", err)
			}
			return writeOutput(cmd, app, slots, view.Slots(domain.DoctorID(doctorID), date, slots))
		},
	}

	cmd.Flags().Int64Var(&doctorID, "doctor", 0, "Doctor ID")
	cmd.Flags().StringVar(&date, "date", "", "Day (yyyy-MM-dd)")
	_ = cmd.MarkFlagRequired("doctor")
	_ = cmd.MarkFlagRequired("date")

	return cmd
}

func newAppointmentsBookCmd(app *app) *cobra.Command {
	var booking domain.BookingRequest
	var doctorID int64

	cmd := &cobra.Command{
		Use:   "book",
		Short: "Book an appointment",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			booking.Doctor = domain.DoctorRef{ID: domain.DoctorID(doctorID)}

			appointment, err := fetch(cmd, app, "Booking appointment...", func(ctx context.Context) (domain.Appointment, error) {
				return app.clinic.Appointments.Create(ctx, booking)
			})
			if err != nil {
				return fmt.Errorf("book appointment: %w", err)
			}
			return writeOutput(cmd, app, appointment, view.Appointment(appointment))
		},
	}

	cmd.Flags().StringVar(&booking.PatientFirstName, "first-name", "", "Patient first name")
	cmd.Flags().StringVar(&booking.PatientLastName, "last-name", "", "Patient last name")
	cmd.Flags().StringVar(&booking.NationalID, "tc", "", "Patient national ID (TC kimlik no)")
	cmd.Flags().StringVar(&booking.Phone, "phone", "", "Patient phone")
	cmd.Flags().Int64Var(&doctorID, "doctor", 0, "Doctor ID")
	cmd.Flags().StringVar(&booking.Date, "date", "", "Day (yyyy-MM-dd)")
	cmd.Flags().StringVar(&booking.Time, "time", "", "Time (HH:mm)")
	cmd.Flags().StringVar(&booking.Department, "department", "", "Department")
	for _, name := range []string{"first-name", "last-name", "tc", "phone", "doctor", "date", "time"} {
		_ = cmd.MarkFlagRequired(name)
	}

	return cmd
}

func newAppointmentsLookupCmd(app *app) *cobra.Command {
	var id int64
	var nationalID string
	var phone string
	var firstName string
	var lastName string

	cmd := &cobra.Command{
		Use:   "lookup",
		Short: "Find appointments by ID, national ID or phone",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if id > 0 {
				appointment, err := fetch(cmd, app, "Fetching appointment...", func(ctx context.Context) (domain.Appointment, error) {
					return app.clinic.Appointments.Get(ctx, domain.AppointmentID(id))
				})
				if err != nil {
					return fmt.Errorf("lookup appointment %d: %w", id, err)
				}
				return writeOutput(cmd, app, appointment, view.Appointment(appointment))
			}

			var title string
			var call func(context.Context) ([]domain.Appointment, error)
			switch {
			case nationalID != "" && (firstName != "" || lastName != ""):
				title = fmt.Sprintf("Appointments for %s %s", firstName, lastName)
				call = func(ctx context.Context) ([]domain.Appointment, error) {
					return app.clinic.Appointments.ByPatient(ctx, nationalID, firstName, lastName)
				}
			case nationalID != "":
				title = "Appointments for " + nationalID
				call = func(ctx context.Context) ([]domain.Appointment, error) {
					return app.clinic.Appointments.ByNationalID(ctx, nationalID)
				}
			case phone != "":
				title = "Appointments for " + phone
				call = func(ctx context.Context) ([]domain.Appointment, error) {
					return app.clinic.Appointments.ByPhone(ctx, phone)
				}
			default:
				return errLookupCriteria
			}

			appointments, err := fetch(cmd, app, "Looking up appointments...", call)
			if err != nil {
				return fmt.Errorf("lookup appointments: %w", err)
			}
			return writeOutput(cmd, app, appointments, view.Appointments(title, appointments))
		},
	}

	cmd.Flags().Int64Var(&id, "id", 0, "Appointment ID")
	cmd.Flags().StringVar(&nationalID, "tc", "", "Patient national ID")
	cmd.Flags().StringVar(&phone, "phone", "", "Patient phone")
	cmd.Flags().StringVar(&firstName, "first-name", "", "Patient first name (with --tc)")
	cmd.Flags().StringVar(&lastName, "last-name", "", "Patient last name (with --tc)")

	return cmd
}

func newAppointmentsCancelCmd(app *app) *cobra.Command {
	var reason string

	cmd := &cobra.Command{
		Use:   "cancel <id>",
		Short: "Cancel an appointment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("appointment", args[0])
			if err != nil {
				return err
			}

			appointment, err := fetch(cmd, app, "Cancelling appointment...", func(ctx context.Context) (domain.Appointment, error) {
				return app.clinic.Appointments.Cancel(ctx, domain.AppointmentID(id), reason)
			})
			if err != nil {
				return fmt.Errorf("cancel appointment %d: %w", id, err)
			}
			return writeOutput(cmd, app, appointment, view.Appointment(appointment))
		},
	}

	cmd.Flags().StringVar(&reason, "reason", "", "Cancellation reason")

	return cmd
}

func newAppointmentsRescheduleCmd(app *app) *cobra.Command {
	var date string
	var at string

	cmd := &cobra.Command{
		Use:   "reschedule <id>",
		Short: "Move an appointment to another slot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("appointment", args[0])
			if err != nil {
				return err
			}

			appointment, err := fetch(cmd, app, "Rescheduling appointment...", func(ctx context.Context) (domain.Appointment, error) {
				return app.clinic.Appointments.Reschedule(ctx, domain.AppointmentID(id), date, at)
			})
			if err != nil {
				return fmt.Errorf("reschedule appointment %d: %w", id, err)
			}
			return writeOutput(cmd, app, appointment, view.Appointment(appointment))
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "New day (yyyy-MM-dd)")
	cmd.Flags().StringVar(&at, "time", "", "New time (HH:mm)")
	_ = cmd.MarkFlagRequired("date")
	_ = cmd.MarkFlagRequired("time")

	return cmd
}
