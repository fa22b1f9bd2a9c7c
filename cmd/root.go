package cmd

import (
	"errors"

	"github.com/spf13/cobra"
)

func Execute() error {
	rootCmd, shutdown := newRootCmd()
	err := rootCmd.Execute()
	return errors.Join(err, shutdown())
}

func newRootCmd() (*cobra.Command, func() error) {
	rootCmd := &cobra.Command{
		Use:           "klinik",
		Short:         "klinik: dental clinic client",
		Long:          "klinik talks to the dental clinic API from the terminal: browse doctors and reviews, book and look up appointments, and run the admin and doctor dashboards.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	app, err := wireApp()
	if err != nil {
		rootCmd.Args = cobra.ArbitraryArgs
		rootCmd.DisableFlagParsing = true
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		rootCmd.AddCommand(newVersionCmd())
		return rootCmd, func() error { return nil }
	}

	rootCmd.PersistentFlags().BoolVar(&app.asJSON, "json", false, "Render JSON output")
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, _ []string) {
		app.stderr.set(cmd.ErrOrStderr())
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newLoginCmd(app),
		newLogoutCmd(app),
		newWhoamiCmd(app),
		newResetPasswordCmd(app),
		newDoctorsCmd(app),
		newAppointmentsCmd(app),
		newReviewsCmd(app),
		newAdminCmd(app),
		newDoctorCmd(app),
		newInvoicesCmd(app),
		newClinicCmd(app),
	)

	return rootCmd, app.shutdown
}
