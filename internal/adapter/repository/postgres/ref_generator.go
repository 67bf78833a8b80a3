package postgres

import (
	"math/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// ReferenceGenerator implements usecase.ReferenceGenerator with
// monotonic ULIDs, so references sort by creation time.
type ReferenceGenerator struct {
	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
}

// NewReferenceGenerator creates a new ReferenceGenerator.
func NewReferenceGenerator() *ReferenceGenerator {
	seed := rand.New(rand.NewSource(time.Now().UnixNano()))

	return &ReferenceGenerator{
		entropy: ulid.Monotonic(seed, 0),
	}
}

// Generate returns a new unique operation reference.
func (g *ReferenceGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	return ulid.MustNew(ulid.Timestamp(time.Now().UTC()), g.entropy).String()
}
