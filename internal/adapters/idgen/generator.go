// Package idgen produces history record identifiers.
package idgen

import (
	"math/rand/v2"
	"strconv"
	"sync/atomic"

	"github.com/bnema/holameeto/internal/ports"
	"github.com/google/uuid"
)

const (
	base36Alphabet   = "0123456789abcdefghijklmnopqrstuvwxyz"
	fallbackHalfSize = 13
)

type Generator struct {
	newUUID func() (uuid.UUID, error)
	seq     atomic.Uint64
}

var _ ports.IDGenerator = (*Generator)(nil)

func NewGenerator() *Generator {
	return &Generator{newUUID: uuid.NewRandom}
}

// Generate returns a random UUID. When the system randomness source fails it
// falls back to a pseudo-random base-36 id carrying a per-generator sequence
// number, so fallback ids never repeat within one generator.
func (g *Generator) Generate() string {
	id, err := g.newUUID()
	if err == nil {
		return id.String()
	}

	return fallbackID(g.seq.Add(1))
}

func fallbackID(seq uint64) string {
	return randomBase36(fallbackHalfSize) + randomBase36(fallbackHalfSize) + "-" + strconv.FormatUint(seq, 36)
}

func randomBase36(n int) string {
	if n <= 0 {
		return ""
	}

	buf := make([]byte, n)
	for i := range buf {
		buf[i] = base36Alphabet[rand.IntN(len(base36Alphabet))]
	}

	return string(buf)
}
