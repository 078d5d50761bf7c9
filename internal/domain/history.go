package domain

// Prepend puts rec at the front of records, drops any older record with the
// same id and truncates the tail so that at most max records remain.
// The input slice is never modified.
func Prepend(records []MeetingRecord, rec MeetingRecord, max int) []MeetingRecord {
	out := make([]MeetingRecord, 0, len(records)+1)
	out = append(out, rec)
	for _, existing := range records {
		if existing.ID == rec.ID {
			continue
		}
		out = append(out, existing)
	}

	return truncate(out, max)
}

// WithoutID returns records minus every entry whose id matches.
func WithoutID(records []MeetingRecord, id MeetingID) []MeetingRecord {
	out := make([]MeetingRecord, 0, len(records))
	for _, rec := range records {
		if rec.ID == id {
			continue
		}
		out = append(out, rec)
	}

	return out
}

// Normalize keeps the first occurrence of every id and truncates to max.
func Normalize(records []MeetingRecord, max int) []MeetingRecord {
	out := make([]MeetingRecord, 0, len(records))
	seen := make(map[MeetingID]struct{}, len(records))
	for _, rec := range records {
		if _, ok := seen[rec.ID]; ok {
			continue
		}
		seen[rec.ID] = struct{}{}
		out = append(out, rec)
	}

	return truncate(out, max)
}

func IndexOf(records []MeetingRecord, id MeetingID) int {
	for i, rec := range records {
		if rec.ID == id {
			return i
		}
	}

	return -1
}

func truncate(records []MeetingRecord, max int) []MeetingRecord {
	if max < 0 {
		max = 0
	}
	if len(records) > max {
		return records[:max]
	}

	return records
}
