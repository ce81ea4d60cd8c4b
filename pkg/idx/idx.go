// Package idx issues the ULIDs that name dispatched operations and console
// requests. IDs sort by the time they were issued.
package idx

import (
	"crypto/rand"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// ID is a ULID in its canonical 26 character form. The empty ID is unset.
type ID string

var ErrInvalid = errors.New("idx: invalid ulid")

// Generator issues strictly increasing IDs, even within one millisecond.
type Generator struct {
	mu      sync.Mutex
	now     func() time.Time
	entropy *ulid.MonotonicEntropy
}

// NewGenerator reads entropy from r. A nil now means time.Now.
func NewGenerator(r io.Reader, now func() time.Time) *Generator {
	if now == nil {
		now = time.Now
	}
	return &Generator{now: now, entropy: ulid.Monotonic(r, 0)}
}

func (g *Generator) New() ID {
	g.mu.Lock()
	defer g.mu.Unlock()
	return ID(ulid.MustNew(ulid.Timestamp(g.now()), g.entropy).String())
}

var defaultGen = sync.OnceValue(func() *Generator { return NewGenerator(rand.Reader, nil) })

// New issues an ID from the process wide generator.
func New() ID { return defaultGen().New() }

// Parse validates s as a canonical ULID.
func Parse(s string) (ID, error) {
	if _, err := ulid.ParseStrict(s); err != nil {
		return "", ErrInvalid
	}
	return ID(s), nil
}

func (id ID) String() string { return string(id) }

// Time returns the issue time, or the zero time for an invalid ID.
func (id ID) Time() time.Time {
	u, err := ulid.ParseStrict(string(id))
	if err != nil {
		return time.Time{}
	}
	return ulid.Time(u.Time())
}

// Before reports whether id was issued before other.
func (id ID) Before(other ID) bool { return id < other }
