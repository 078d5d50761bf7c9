package domain

import "time"

const (
	// MaxHistoryItems bounds the number of records kept in the history slot.
	MaxHistoryItems = 7
	// HistorySlotKey names the persisted slot. Stored data depends on it.
	HistorySlotKey = "holaMeetoHistory"
)

type MeetingID string

type MeetingRecord struct {
	ID   MeetingID
	Link string
	// Label is the trimmed text the user typed; empty means no label.
	Label string
	// CreatedAt is milliseconds since the Unix epoch.
	CreatedAt int64
}

func (r MeetingRecord) HasLabel() bool {
	return r.Label != ""
}

func (r MeetingRecord) CreatedTime() time.Time {
	return time.UnixMilli(r.CreatedAt)
}
