package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/bnema/holameeto/internal/domain"
)

type recordOutput struct {
	ID        string    `json:"id"`
	Link      string    `json:"link"`
	Label     string    `json:"label,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func toRecordOutput(rec domain.MeetingRecord) recordOutput {
	return recordOutput{
		ID:        string(rec.ID),
		Link:      rec.Link,
		Label:     rec.Label,
		CreatedAt: rec.CreatedTime().UTC(),
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeRecord(w io.Writer, rec domain.MeetingRecord, asJSON bool) error {
	if asJSON {
		return writeJSON(w, toRecordOutput(rec))
	}

	_, err := fmt.Fprintln(w, rec.Link)
	return err
}

// refArg returns the optional ID|N argument; empty means most recent.
func refArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
