package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func newClinicCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clinic",
		Short: "Public clinic information",
	}

	cmd.AddCommand(newClinicInfoCmd(app), newClinicHealthCmd(app))

	return cmd
}

func newClinicInfoCmd(app *app) *cobra.Command {
	var hoursOnly bool

	cmd := &cobra.Command{
		Use:   "info",
		Short: "Show clinic contact details and working hours",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			call := app.clinic.Public.ClinicInfo
			if hoursOnly {
				call = app.clinic.Public.WorkingHours
			}

			raw, err := fetch(cmd, app, "Fetching clinic info...", call)
			if err != nil {
				return fmt.Errorf("clinic info: %w", err)
			}

			var payload any
			if err := json.Unmarshal(raw, &payload); err != nil {
				return fmt.Errorf("decode clinic info: %w", err)
			}
			return writeJSON(cmd, payload)
		},
	}

	cmd.Flags().BoolVar(&hoursOnly, "hours", false, "Only show working hours")

	return cmd
}

func newClinicHealthCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check that the clinic API is up",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			health, err := fetch(cmd, app, "Checking API health...", app.clinic.Public.Health)
			if err != nil {
				return fmt.Errorf("health check: %w", err)
			}
			if app.asJSON {
				return writeJSON(cmd, health)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "api: %s (%s)\n", health.Status, app.cfg.Gateway().BaseURL)
			return err
		},
	}
}
