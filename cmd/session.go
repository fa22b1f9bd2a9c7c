package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/bnema/klinik-cli/internal/adapters/render/view"
	"github.com/bnema/klinik-cli/internal/domain"
)

func newLoginCmd(app *app) *cobra.Command {
	var username string
	var password string
	var passwordStdin bool

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in as clinic staff and store the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if passwordStdin || password == "" {
				read, err := readPassword(cmd, !passwordStdin)
				if err != nil {
					return err
				}
				password = read
			}

			identity, err := fetch(cmd, app, "Logging in...", func(ctx context.Context) (domain.Identity, error) {
				return app.sessions.Login(ctx, username, password)
			})
			if err != nil {
				return err
			}

			if app.asJSON {
				return writeJSON(cmd, identityPayload(identity))
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s (%s)\n", identity.Username, identity.Role.Label())
			return err
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "Username")
	cmd.Flags().StringVarP(&password, "password", "p", "", "Password (prompted on stdin when omitted)")
	cmd.Flags().BoolVar(&passwordStdin, "password-stdin", false, "Read the password from stdin")
	_ = cmd.MarkFlagRequired("username")

	return cmd
}

func readPassword(cmd *cobra.Command, prompt bool) (string, error) {
	if prompt {
		_, _ = fmt.Fprint(cmd.ErrOrStderr(), "Password: ")
	}

	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func newLogoutCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.sessions.Logout(cmd.Context()); err != nil {
				return err
			}
			return writeMessage(cmd, app, "Logged out")
		},
	}
}

func newWhoamiCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			identity, err := app.sessions.Current(cmd.Context())
			if err != nil {
				if errors.Is(err, domain.ErrNotLoggedIn) {
					return fmt.Errorf(`%w, run "klinik login"`, err)
				}
				return err
			}

			return writeOutput(cmd, app, identityPayload(identity), view.Identity(identity, app.now()))
		},
	}
}

func newResetPasswordCmd(app *app) *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "reset-password",
		Short: "Request a password reset email",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			message, err := fetch(cmd, app, "Requesting password reset...", func(ctx context.Context) (string, error) {
				return app.sessions.ResetPassword(ctx, email)
			})
			if err != nil {
				return err
			}
			if strings.TrimSpace(message) == "" {
				message = "Password reset requested"
			}
			return writeMessage(cmd, app, message)
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Account email")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}

type identityJSON struct {
	Username   string `json:"username"`
	Role       string `json:"role"`
	UserID     int64  `json:"userId"`
	LoggedInAt string `json:"loggedInAt,omitempty"`
}

func identityPayload(identity domain.Identity) identityJSON {
	payload := identityJSON{
		Username: identity.Username,
		Role:     string(identity.Role),
		UserID:   identity.UserID,
	}
	if !identity.LoggedInAt.IsZero() {
		payload.LoggedInAt = identity.LoggedInAt.UTC().Format(time.RFC3339)
	}
	return payload
}
