package ports

import "context"

// SlotStore persists string values under named slots. Get returns
// domain.ErrSlotNotFound when the slot has never been written.
type SlotStore interface {
	Get(ctx context.Context, key string) (string, error)
	Put(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
}
