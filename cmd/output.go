package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bnema/klinik-cli/internal/adapters/render/view"
)

// fetch runs call behind a spinner, or directly when JSON output is requested
// so stderr stays clean for scripts.
func fetch[T any](cmd *cobra.Command, app *app, label string, call func(context.Context) (T, error)) (T, error) {
	var result T
	run := func(ctx context.Context) error {
		var err error
		result, err = call(ctx)
		return err
	}

	if app.asJSON {
		err := run(cmd.Context())
		return result, err
	}

	err := runFetchSpinner(cmd.Context(), cmd.ErrOrStderr(), label, run)
	return result, err
}

func writeOutput(cmd *cobra.Command, app *app, payload any, page view.Page) error {
	if app.asJSON {
		return writeJSON(cmd, payload)
	}

	rendered, err := view.Render(page)
	if err != nil {
		return fmt.Errorf("render output: %w", err)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
	return err
}

func writeJSON(cmd *cobra.Command, payload any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}

func writeMessage(cmd *cobra.Command, app *app, message string) error {
	if app.asJSON {
		return writeJSON(cmd, map[string]string{"message": message})
	}

	_, err := fmt.Fprintln(cmd.OutOrStdout(), message)
	return err
}

func parseID(kind, raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s id %q", kind, raw)
	}
	return id, nil
}
