package clipboard

import (
	"context"
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/bnema/holameeto/internal/domain"
	"github.com/bnema/holameeto/internal/ports"
)

// System writes to the desktop clipboard through xclip, xsel, wl-copy,
// pbcopy or the Windows clipboard API, whichever atotto/clipboard finds.
type System struct {
	unsupported func() bool
	write       func(string) error
}

var _ ports.Clipboard = (*System)(nil)

func NewSystem() *System {
	return &System{
		unsupported: func() bool { return clipboard.Unsupported },
		write:       clipboard.WriteAll,
	}
}

func (s *System) Copy(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if s.unsupported() {
		return domain.ErrClipboardUnavailable
	}

	if err := s.write(text); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrClipboardUnavailable, err)
	}

	return nil
}
