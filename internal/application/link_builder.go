package application

import (
	"math/rand/v2"
	"regexp"
	"strings"

	"github.com/bnema/holameeto/internal/domain"
	"github.com/bnema/holameeto/internal/ports"
)

const (
	DefaultBaseURL    = "https://meet.jit.si/"
	DefaultRoomPrefix = "HolaMeeto"

	roomSuffixLength = 7
	roomAlphabet     = "0123456789abcdefghijklmnopqrstuvwxyz"
)

var (
	whitespaceRun  = regexp.MustCompile(`[\s\v\p{Z}\x{FEFF}]+`)
	invalidRoomChr = regexp.MustCompile(`[^a-zA-Z0-9_-]`)
)

type LinkOptions struct {
	BaseURL    string
	RoomPrefix string
}

type LinkBuilder struct {
	ids     ports.IDGenerator
	clock   ports.Clock
	baseURL string
	prefix  string
	suffix  func() string
}

func NewLinkBuilder(ids ports.IDGenerator, clock ports.Clock, opts LinkOptions) *LinkBuilder {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if !strings.HasSuffix(opts.BaseURL, "/") {
		opts.BaseURL += "/"
	}
	if opts.RoomPrefix == "" {
		opts.RoomPrefix = DefaultRoomPrefix
	}

	return &LinkBuilder{
		ids:     ids,
		clock:   clock,
		baseURL: opts.BaseURL,
		prefix:  opts.RoomPrefix,
		suffix:  randomRoomSuffix,
	}
}

// Build never fails: any label, including one with no usable characters,
// yields a link.
func (b *LinkBuilder) Build(label string) domain.MeetingRecord {
	trimmed := strings.TrimSpace(label)

	return domain.MeetingRecord{
		ID:        domain.MeetingID(b.ids.Generate()),
		Link:      b.baseURL + b.RoomName(SanitizeLabel(trimmed)),
		Label:     trimmed,
		CreatedAt: b.clock.Now().UnixMilli(),
	}
}

// RoomName joins the prefix, the optional sanitized label and a fresh suffix.
func (b *LinkBuilder) RoomName(sanitized string) string {
	parts := []string{b.prefix}
	if sanitized != "" {
		parts = append(parts, sanitized)
	}
	parts = append(parts, b.suffix())

	return strings.Join(parts, "-")
}

// SanitizeLabel trims the label, collapses whitespace runs into "_" and drops
// everything outside [A-Za-z0-9_-].
func SanitizeLabel(label string) string {
	trimmed := strings.TrimSpace(label)
	if trimmed == "" {
		return ""
	}

	underscored := whitespaceRun.ReplaceAllString(trimmed, "_")
	return invalidRoomChr.ReplaceAllString(underscored, "")
}

func randomRoomSuffix() string {
	buf := make([]byte, roomSuffixLength)
	for i := range buf {
		buf[i] = roomAlphabet[rand.IntN(len(roomAlphabet))]
	}

	return string(buf)
}
