package browser

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os/exec"
	"runtime"

	"github.com/bnema/holameeto/internal/logger"
	"github.com/bnema/holameeto/internal/ports"
)

var ErrUnsupportedOS = errors.New("unsupported operating system")

// Opener launches the platform's default URL handler and returns once it
// has started.
type Opener struct {
	goos  string
	start func(ctx context.Context, name string, args ...string) error
}

var _ ports.BrowserOpener = (*Opener)(nil)

func NewOpener() *Opener {
	return &Opener{goos: runtime.GOOS, start: startCommand}
}

func (o *Opener) Open(ctx context.Context, link string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	parsed, err := url.Parse(link)
	if err != nil {
		return fmt.Errorf("parse meeting link: %w", err)
	}
	if parsed.Scheme != "https" && parsed.Scheme != "http" {
		return fmt.Errorf("refusing to open %q: not an http(s) link", link)
	}

	name, args, err := commandFor(o.goos, link)
	if err != nil {
		return err
	}

	logger.G(ctx).WithField("command", name).Debug("opening meeting link")
	return o.start(ctx, name, args...)
}

func commandFor(goos, link string) (string, []string, error) {
	switch goos {
	case "darwin":
		return "open", []string{link}, nil
	case "linux", "freebsd", "openbsd", "netbsd":
		return "xdg-open", []string{link}, nil
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", link}, nil
	default:
		return "", nil, fmt.Errorf("%w: %s", ErrUnsupportedOS, goos)
	}
}

func startCommand(_ context.Context, name string, args ...string) error {
	// The handler outlives this process, so it is not bound to ctx.
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", name, err)
	}

	return cmd.Process.Release()
}
