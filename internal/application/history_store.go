package application

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/bnema/holameeto/internal/domain"
	"github.com/bnema/holameeto/internal/logger"
	"github.com/bnema/holameeto/internal/ports"
)

// HistoryStore mirrors the persisted meeting history in memory.
//
// A store starts uninitialized and becomes loaded after the first Load. Until
// then nothing is ever written to the slot, so an empty in-memory state can
// not clobber history persisted by an earlier run.
type HistoryStore struct {
	slots    ports.SlotStore
	notifier ports.Notifier
	key      string
	max      int

	mu      sync.Mutex
	loaded  bool
	records []domain.MeetingRecord
}

func NewHistoryStore(slots ports.SlotStore, notifier ports.Notifier) *HistoryStore {
	if notifier == nil {
		notifier = ports.NopNotifier{}
	}

	return &HistoryStore{
		slots:    slots,
		notifier: notifier,
		key:      domain.HistorySlotKey,
		max:      domain.MaxHistoryItems,
	}
}

// Load reads the slot on first use and returns the in-memory history.
// Missing or unreadable data yields an empty history; failures are logged
// and reported through the notifier, never returned.
func (s *HistoryStore) Load(ctx context.Context) []domain.MeetingRecord {
	s.mu.Lock()
	if s.loaded {
		out := cloneRecords(s.records)
		s.mu.Unlock()
		return out
	}

	records, err := s.readSlot(ctx)
	s.records = records
	s.loaded = true
	out := cloneRecords(s.records)
	s.mu.Unlock()

	if err != nil {
		logger.G(ctx).WithError(err).WithField("slot", s.key).Warn("failed to load meeting history")
		s.notifier.Notify(ctx, ports.Notification{Event: ports.EventHistoryLoadFailed, Err: err})
		return out
	}

	s.notifier.Notify(ctx, ports.Notification{Event: ports.EventHistoryLoaded, Count: len(out)})
	return out
}

// Save replaces the slot content with the serialized records. It refuses to
// write before Load and leaves the in-memory history untouched either way.
func (s *HistoryStore) Save(ctx context.Context, records []domain.MeetingRecord) error {
	s.mu.Lock()
	if !s.loaded {
		s.mu.Unlock()
		return domain.ErrHistoryNotLoaded
	}
	err := s.write(ctx, records)
	s.mu.Unlock()

	if err != nil {
		s.reportSaveFailure(ctx, err)
	}

	return err
}

func (s *HistoryStore) Insert(ctx context.Context, rec domain.MeetingRecord) ([]domain.MeetingRecord, error) {
	return s.mutate(ctx, func(records []domain.MeetingRecord) []domain.MeetingRecord {
		return domain.Prepend(records, rec, s.max)
	})
}

func (s *HistoryStore) RemoveByID(ctx context.Context, id domain.MeetingID) ([]domain.MeetingRecord, error) {
	return s.mutate(ctx, func(records []domain.MeetingRecord) []domain.MeetingRecord {
		return domain.WithoutID(records, id)
	})
}

func (s *HistoryStore) Clear(ctx context.Context) ([]domain.MeetingRecord, error) {
	return s.mutate(ctx, func([]domain.MeetingRecord) []domain.MeetingRecord {
		return []domain.MeetingRecord{}
	})
}

func (s *HistoryStore) Records() []domain.MeetingRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	return cloneRecords(s.records)
}

func (s *HistoryStore) Loaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.loaded
}

func (s *HistoryStore) Find(id domain.MeetingID) (domain.MeetingRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := domain.IndexOf(s.records, id); i >= 0 {
		return s.records[i], nil
	}

	return domain.MeetingRecord{}, domain.ErrRecordNotFound
}

// mutate applies fn to the in-memory history and persists the result. A
// failed write is reported but does not roll memory back; the next
// successful write carries the full current state.
func (s *HistoryStore) mutate(ctx context.Context, fn func([]domain.MeetingRecord) []domain.MeetingRecord) ([]domain.MeetingRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	if !s.loaded {
		s.mu.Unlock()
		return nil, domain.ErrHistoryNotLoaded
	}

	s.records = fn(s.records)
	out := cloneRecords(s.records)
	err := s.write(ctx, out)
	s.mu.Unlock()

	if err != nil {
		s.reportSaveFailure(ctx, err)
	}

	return out, nil
}

func (s *HistoryStore) readSlot(ctx context.Context) ([]domain.MeetingRecord, error) {
	raw, err := s.slots.Get(ctx, s.key)
	if err != nil {
		if errors.Is(err, domain.ErrSlotNotFound) {
			return []domain.MeetingRecord{}, nil
		}
		return []domain.MeetingRecord{}, fmt.Errorf("read history slot: %w", err)
	}

	records, err := DecodeHistory(raw)
	if err != nil {
		return []domain.MeetingRecord{}, err
	}

	return domain.Normalize(records, s.max), nil
}

func (s *HistoryStore) write(ctx context.Context, records []domain.MeetingRecord) error {
	encoded, err := EncodeHistory(records)
	if err != nil {
		return err
	}

	if err := s.slots.Put(ctx, s.key, encoded); err != nil {
		return fmt.Errorf("write history slot: %w", err)
	}

	return nil
}

func (s *HistoryStore) reportSaveFailure(ctx context.Context, err error) {
	logger.G(ctx).WithError(err).WithField("slot", s.key).Error("failed to save meeting history")
	s.notifier.Notify(ctx, ports.Notification{Event: ports.EventHistorySaveFailed, Err: err})
}

func cloneRecords(records []domain.MeetingRecord) []domain.MeetingRecord {
	out := make([]domain.MeetingRecord, len(records))
	copy(out, records)

	return out
}
