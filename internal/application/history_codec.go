package application

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/bnema/holameeto/internal/domain"
)

// historyEntry is the persisted shape of one record. Field names are part of
// the slot format.
type historyEntry struct {
	ID        string `json:"id"`
	Link      string `json:"link"`
	Nickname  string `json:"nickname,omitempty"`
	Timestamp int64  `json:"timestamp"`
}

type storedEntry struct {
	ID        *string  `json:"id"`
	Link      *string  `json:"link"`
	Nickname  *string  `json:"nickname"`
	Timestamp *float64 `json:"timestamp"`
}

func EncodeHistory(records []domain.MeetingRecord) (string, error) {
	entries := make([]historyEntry, 0, len(records))
	for _, rec := range records {
		entries = append(entries, historyEntry{
			ID:        string(rec.ID),
			Link:      rec.Link,
			Nickname:  rec.Label,
			Timestamp: rec.CreatedAt,
		})
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(entries); err != nil {
		return "", fmt.Errorf("encode meeting history: %w", err)
	}

	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// DecodeHistory rejects anything that is not an array of objects carrying at
// least a string id and link. Errors wrap domain.ErrCorruptHistory.
func DecodeHistory(raw string) ([]domain.MeetingRecord, error) {
	data := bytes.TrimSpace([]byte(raw))
	if len(data) == 0 || data[0] != '[' {
		return nil, fmt.Errorf("%w: expected a JSON array", domain.ErrCorruptHistory)
	}

	var entries []*storedEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrCorruptHistory, err)
	}

	records := make([]domain.MeetingRecord, 0, len(entries))
	for i, entry := range entries {
		if entry == nil || entry.ID == nil || *entry.ID == "" || entry.Link == nil || *entry.Link == "" {
			return nil, fmt.Errorf("%w: entry %d is missing id or link", domain.ErrCorruptHistory, i)
		}

		rec := domain.MeetingRecord{
			ID:   domain.MeetingID(*entry.ID),
			Link: *entry.Link,
		}
		if entry.Nickname != nil {
			rec.Label = *entry.Nickname
		}
		if entry.Timestamp != nil {
			rec.CreatedAt = int64(*entry.Timestamp)
		}
		records = append(records, rec)
	}

	return records, nil
}
