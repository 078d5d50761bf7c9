package application

import (
	"context"
	"fmt"

	"github.com/bnema/holameeto/internal/domain"
	"github.com/bnema/holameeto/internal/logger"
	"github.com/bnema/holameeto/internal/ports"
)

const shareTextPrefix = "Let's meet! Join here: "

// ShareText is the message offered alongside a shared link.
func ShareText(link string) string {
	return shareTextPrefix + link
}

type Share struct {
	Record domain.MeetingRecord
	Text   string
	Copied bool
}

// LinkActions hands links from the history over to the desktop: the
// clipboard and the default browser.
type LinkActions struct {
	meetings  *Service
	clipboard ports.Clipboard
	opener    ports.BrowserOpener
	notifier  ports.Notifier
}

func NewLinkActions(meetings *Service, clipboard ports.Clipboard, opener ports.BrowserOpener, notifier ports.Notifier) *LinkActions {
	if notifier == nil {
		notifier = ports.NopNotifier{}
	}

	return &LinkActions{
		meetings:  meetings,
		clipboard: clipboard,
		opener:    opener,
		notifier:  notifier,
	}
}

func (a *LinkActions) Copy(ctx context.Context, ref string) (domain.MeetingRecord, error) {
	rec, err := a.meetings.Resolve(ctx, ref)
	if err != nil {
		return domain.MeetingRecord{}, err
	}

	if err := a.copyLink(ctx, rec); err != nil {
		return rec, err
	}

	return rec, nil
}

// Share prepares the share text for a link. A terminal has no share dialog,
// so the link is copied instead and the caller prints the text. A failed
// copy is reported but does not fail the share.
func (a *LinkActions) Share(ctx context.Context, ref string) (Share, error) {
	rec, err := a.meetings.Resolve(ctx, ref)
	if err != nil {
		return Share{}, err
	}

	share := Share{Record: rec, Text: ShareText(rec.Link)}
	share.Copied = a.copyLink(ctx, rec) == nil

	a.notifier.Notify(ctx, ports.Notification{Event: ports.EventShareUnsupported, Record: &rec})
	return share, nil
}

func (a *LinkActions) Open(ctx context.Context, ref string) (domain.MeetingRecord, error) {
	rec, err := a.meetings.Resolve(ctx, ref)
	if err != nil {
		return domain.MeetingRecord{}, err
	}

	if a.opener == nil {
		return rec, fmt.Errorf("open meeting link: no browser opener configured")
	}

	if err := a.opener.Open(ctx, rec.Link); err != nil {
		return rec, fmt.Errorf("open meeting link: %w", err)
	}

	return rec, nil
}

func (a *LinkActions) copyLink(ctx context.Context, rec domain.MeetingRecord) error {
	err := domain.ErrClipboardUnavailable
	if a.clipboard != nil {
		err = a.clipboard.Copy(ctx, rec.Link)
	}

	if err != nil {
		err = fmt.Errorf("copy meeting link: %w", err)
		logger.G(ctx).WithError(err).WithField("meeting", rec.ID).Warn("failed to copy link")
		a.notifier.Notify(ctx, ports.Notification{Event: ports.EventLinkCopyFailed, Record: &rec, Err: err})
		return err
	}

	a.notifier.Notify(ctx, ports.Notification{Event: ports.EventLinkCopied, Record: &rec})
	return nil
}
