package application

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/bnema/holameeto/internal/domain"
	"github.com/bnema/holameeto/internal/ports"
)

var ErrEmptyHistory = errors.New("meeting history is empty")

// Service is the entry point the CLI talks to. Every method loads the
// history first so no mutation can run against an unloaded store.
type Service struct {
	links    *LinkBuilder
	history  *HistoryStore
	notifier ports.Notifier
}

func NewService(links *LinkBuilder, history *HistoryStore, notifier ports.Notifier) *Service {
	if notifier == nil {
		notifier = ports.NopNotifier{}
	}

	return &Service{
		links:    links,
		history:  history,
		notifier: notifier,
	}
}

func (s *Service) Generate(ctx context.Context, label string) (domain.MeetingRecord, error) {
	s.history.Load(ctx)

	rec := s.links.Build(label)
	if _, err := s.history.Insert(ctx, rec); err != nil {
		return domain.MeetingRecord{}, fmt.Errorf("insert meeting record: %w", err)
	}

	s.notifier.Notify(ctx, ports.Notification{Event: ports.EventMeetingGenerated, Record: &rec})
	return rec, nil
}

func (s *Service) History(ctx context.Context) ([]domain.MeetingRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return s.history.Load(ctx), nil
}

// Current returns the most recently generated record.
func (s *Service) Current(ctx context.Context) (domain.MeetingRecord, error) {
	records, err := s.History(ctx)
	if err != nil {
		return domain.MeetingRecord{}, err
	}
	if len(records) == 0 {
		return domain.MeetingRecord{}, ErrEmptyHistory
	}

	return records[0], nil
}

// Resolve finds a record by id or by its 1-based position in the history.
// An empty ref means the most recent record.
func (s *Service) Resolve(ctx context.Context, ref string) (domain.MeetingRecord, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return s.Current(ctx)
	}

	records, err := s.History(ctx)
	if err != nil {
		return domain.MeetingRecord{}, err
	}

	if i := domain.IndexOf(records, domain.MeetingID(ref)); i >= 0 {
		return records[i], nil
	}

	if n, err := strconv.Atoi(ref); err == nil && n >= 1 && n <= len(records) {
		return records[n-1], nil
	}

	return domain.MeetingRecord{}, fmt.Errorf("%w: %q", domain.ErrRecordNotFound, ref)
}

func (s *Service) Remove(ctx context.Context, ref string) (domain.MeetingRecord, error) {
	if strings.TrimSpace(ref) == "" {
		return domain.MeetingRecord{}, fmt.Errorf("%w: empty reference", domain.ErrRecordNotFound)
	}

	rec, err := s.Resolve(ctx, ref)
	if err != nil {
		return domain.MeetingRecord{}, err
	}

	if _, err := s.history.RemoveByID(ctx, rec.ID); err != nil {
		return domain.MeetingRecord{}, fmt.Errorf("remove meeting record: %w", err)
	}

	s.notifier.Notify(ctx, ports.Notification{Event: ports.EventMeetingRemoved, Record: &rec})
	return rec, nil
}

func (s *Service) ClearHistory(ctx context.Context) error {
	s.history.Load(ctx)

	if _, err := s.history.Clear(ctx); err != nil {
		return fmt.Errorf("clear meeting history: %w", err)
	}

	s.notifier.Notify(ctx, ports.Notification{Event: ports.EventHistoryCleared})
	return nil
}
