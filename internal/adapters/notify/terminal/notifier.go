// Package terminal prints history and link notifications as short
// two-line messages.
package terminal

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/bnema/holameeto/internal/logger"
	"github.com/bnema/holameeto/internal/ports"
	"github.com/fatih/color"
)

type ColorMode int

const (
	ColorAuto ColorMode = iota
	ColorAlways
	ColorNever
)

type message struct {
	title       string
	description string
}

var messages = map[ports.Event]message{
	ports.EventHistoryLoadFailed: {"Error Loading History", "Could not load your meeting history. It might be corrupted."},
	ports.EventHistorySaveFailed: {"Error Saving History", "Could not save your meeting history changes."},
	ports.EventMeetingGenerated:  {"Meeting Link Generated!", "Your new Jitsi Meet link is ready to use or share."},
	ports.EventMeetingRemoved:    {"Meeting Removed", "The selected meeting has been removed from your history."},
	ports.EventHistoryCleared:    {"History Cleared", "All recent meeting links have been removed from history."},
	ports.EventLinkCopied:        {"Copied to Clipboard!", "The meeting link has been copied."},
	ports.EventLinkCopyFailed:    {"Copy Failed", "Could not copy the link. Please try manually."},
	ports.EventShareUnsupported:  {"Sharing Not Supported", "Direct sharing isn't available, but the link has been copied to your clipboard!"},
}

// Notifier writes every notification to one writer, normally stderr, so
// stdout only carries links and history output.
type Notifier struct {
	out   io.Writer
	quiet bool
}

var _ ports.Notifier = (*Notifier)(nil)

func New(out io.Writer, mode ColorMode) *Notifier {
	switch mode {
	case ColorAlways:
		color.NoColor = false
	case ColorNever:
		color.NoColor = true
	case ColorAuto:
	}

	return &Notifier{out: out}
}

// DetectColorMode honors NO_COLOR first, then HOLAMEETO_COLOR.
func DetectColorMode() ColorMode {
	if os.Getenv("NO_COLOR") != "" {
		return ColorNever
	}

	switch os.Getenv("HOLAMEETO_COLOR") {
	case "always", "force":
		return ColorAlways
	case "never", "off":
		return ColorNever
	default:
		return ColorAuto
	}
}

// SetQuiet suppresses successful notifications; failures are always shown.
func (n *Notifier) SetQuiet(quiet bool) {
	n.quiet = quiet
}

func (n *Notifier) Notify(ctx context.Context, note ports.Notification) {
	if note.Event == ports.EventHistoryLoaded {
		logger.G(ctx).WithField("records", note.Count).Debug("meeting history loaded")
		return
	}

	msg, ok := messages[note.Event]
	if !ok {
		logger.G(ctx).WithField("event", note.Event).Debug("unhandled notification")
		return
	}

	if note.Event.Destructive() {
		errorColor := color.New(color.FgRed, color.Bold)
		errorColor.Fprintf(n.out, "✗ %s\n", msg.title)
		if note.Err != nil {
			fmt.Fprintf(n.out, "  %s (%v)\n", msg.description, note.Err)
		} else {
			fmt.Fprintf(n.out, "  %s\n", msg.description)
		}
		return
	}

	if n.quiet {
		return
	}

	successColor := color.New(color.FgGreen, color.Bold)
	successColor.Fprintf(n.out, "✓ %s\n", msg.title)
	fmt.Fprintf(n.out, "  %s\n", msg.description)
}
