// Package chain combines two slot stores: reads and writes go to the primary
// and fall back to the secondary when the primary fails.
package chain

import (
	"context"
	"errors"
	"fmt"

	"github.com/bnema/holameeto/internal/ports"
)

type Store struct {
	primary  ports.SlotStore
	fallback ports.SlotStore
}

var _ ports.SlotStore = (*Store)(nil)

var (
	errNilPrimaryStore  = errors.New("primary slot store is nil")
	errNilFallbackStore = errors.New("fallback slot store is nil")
)

func NewStore(primary ports.SlotStore, fallback ports.SlotStore) (*Store, error) {
	if primary == nil {
		return nil, errNilPrimaryStore
	}
	if fallback == nil {
		return nil, errNilFallbackStore
	}

	return &Store{primary: primary, fallback: fallback}, nil
}

func (s *Store) Put(ctx context.Context, key string, value string) error {
	err := s.primary.Put(ctx, key, value)
	if err == nil {
		return nil
	}
	if shouldSkipFallback(err) {
		return err
	}

	fallbackErr := s.fallback.Put(ctx, key, value)
	if fallbackErr == nil {
		return nil
	}

	return fmt.Errorf("primary backend put failed: %w; fallback backend put failed: %w", err, fallbackErr)
}

// Get falls back on any primary error, including a missing slot, so history
// written while the primary was unavailable is still found.
func (s *Store) Get(ctx context.Context, key string) (string, error) {
	value, err := s.primary.Get(ctx, key)
	if err == nil {
		return value, nil
	}
	if shouldSkipFallback(err) {
		return "", err
	}

	fallbackValue, fallbackErr := s.fallback.Get(ctx, key)
	if fallbackErr == nil {
		return fallbackValue, nil
	}

	return "", fmt.Errorf("primary backend get failed: %w; fallback backend get failed: %w", err, fallbackErr)
}

// Delete removes the slot from both backends so a stale fallback copy can not
// resurface.
func (s *Store) Delete(ctx context.Context, key string) error {
	err := s.primary.Delete(ctx, key)
	if shouldSkipFallback(err) {
		return err
	}

	fallbackErr := s.fallback.Delete(ctx, key)
	if err == nil && fallbackErr == nil {
		return nil
	}

	return fmt.Errorf("delete slot %q: %w", key, errors.Join(err, fallbackErr))
}

func shouldSkipFallback(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
