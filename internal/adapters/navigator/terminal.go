package navigator

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/bnema/klinik-cli/internal/ports"
)

const LoginHint = `session expired, run "klinik login"`

var _ ports.Navigator = (*Terminal)(nil)

// Terminal is the CLI's login entry point: it tells the user to log in again.
// The hint is printed at most once per process.
type Terminal struct {
	mu      sync.Mutex
	out     func() io.Writer
	printed bool
}

func NewTerminal(out func() io.Writer) *Terminal {
	return &Terminal{out: out}
}

func (t *Terminal) RedirectToLogin(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.printed {
		return nil
	}
	if t.out == nil {
		return nil
	}

	if _, err := fmt.Fprintln(t.out(), LoginHint); err != nil {
		return fmt.Errorf("print login hint: %w", err)
	}
	t.printed = true

	return nil
}
