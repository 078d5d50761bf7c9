package history

import (
	"fmt"
	"strings"
	"time"

	"github.com/bnema/holameeto/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// TimestampLayout mirrors a medium date with a short time, e.g.
// "Feb 14, 2026, 12:00 PM".
const TimestampLayout = "Jan 2, 2006, 3:04 PM"

// fadeAfter is the age at which an entry reaches its faintest color.
const fadeAfter = 7 * 24 * time.Hour

type RenderOptions struct {
	Now      time.Time
	Location *time.Location
	Max      int
}

func renderView(records []domain.MeetingRecord, opts RenderOptions, s styles) string {
	lines := []string{s.title.Render("Recent Meetings")}

	if len(records) == 0 {
		lines = append(lines, s.empty.Render("No recent meetings found. Generate a new one to get started!"))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	for i, rec := range records {
		lines = append(lines, s.section.Render(renderRecord(i+1, rec, opts, s)))
	}

	max := opts.Max
	if max <= 0 {
		max = domain.MaxHistoryItems
	}
	lines = append(lines, s.footer.Render(fmt.Sprintf("Showing %d of your last %d meetings.", len(records), max)))

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderRecord(position int, rec domain.MeetingRecord, opts RenderOptions, s styles) string {
	title := lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.index.Render(fmt.Sprintf("%d. ", position)),
		s.item.Render(Title(rec)),
	)

	ageStyle := lipgloss.NewStyle().Foreground(ageColor(rec.CreatedTime(), opts.Now))
	meta := lipgloss.JoinHorizontal(
		lipgloss.Top,
		ageStyle.Render(FormatTimestamp(rec.CreatedAt, opts.Location)),
		" ",
		s.id.Render("id: "+string(rec.ID)),
	)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		title,
		"   "+s.link.Render(rec.Link),
		"   "+meta,
	)
}

// Title is the label, when present, followed by the room name.
func Title(rec domain.MeetingRecord) string {
	room := RoomName(rec.Link)
	if rec.HasLabel() {
		return rec.Label + " - " + room
	}

	return room
}

// RoomName is everything after the last slash of a link.
func RoomName(link string) string {
	return link[strings.LastIndex(link, "/")+1:]
}

func FormatTimestamp(millis int64, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}

	return time.UnixMilli(millis).In(loc).Format(TimestampLayout)
}

// ageColor fades from bright white for fresh entries to grey for old ones.
func ageColor(createdAt, now time.Time) lipgloss.Color {
	if now.IsZero() || !createdAt.Before(now) {
		return lipgloss.Color("255")
	}

	return interpolateColor(fadeAfter.Seconds()-now.Sub(createdAt).Seconds(), 0, fadeAfter.Seconds())
}

func interpolateColor(value, min, max float64) lipgloss.Color {
	if max == min {
		return lipgloss.Color("255")
	}

	normalized := (value - min) / (max - min)
	if normalized < 0 {
		normalized = 0
	}
	if normalized > 1 {
		normalized = 1
	}

	// ANSI 256 greyscale ramp, 240 (faded) to 255 (bright).
	baseColor := 240.0
	targetColor := 255.0
	colorCode := int(baseColor + (targetColor-baseColor)*normalized)

	return lipgloss.Color(fmt.Sprintf("%d", colorCode))
}
