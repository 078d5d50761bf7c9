package ports

import (
	"context"

	"github.com/bnema/holameeto/internal/domain"
)

type Event string

const (
	EventHistoryLoaded     Event = "history_loaded"
	EventHistoryLoadFailed Event = "history_load_failed"
	EventHistorySaveFailed Event = "history_save_failed"
	EventMeetingGenerated  Event = "meeting_generated"
	EventMeetingRemoved    Event = "meeting_removed"
	EventHistoryCleared    Event = "history_cleared"
	EventLinkCopied        Event = "link_copied"
	EventLinkCopyFailed    Event = "link_copy_failed"
	EventShareUnsupported  Event = "share_unsupported"
)

// Destructive reports whether the event describes a failure.
func (e Event) Destructive() bool {
	switch e {
	case EventHistoryLoadFailed, EventHistorySaveFailed, EventLinkCopyFailed:
		return true
	default:
		return false
	}
}

type Notification struct {
	Event  Event
	Record *domain.MeetingRecord
	Count  int
	Err    error
}

// Notifier receives user-facing outcomes. Implementations must not block.
type Notifier interface {
	Notify(ctx context.Context, n Notification)
}

type NopNotifier struct{}

func (NopNotifier) Notify(context.Context, Notification) {}
