// Package ids generates element ids for option and cell elements, used by
// active-descendant references.
package ids

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// Generator produces unique element ids.
type Generator interface {
	Generate() string
}

// UUIDGenerator generates time-sortable UUIDv7 ids with an optional prefix.
//
// Thread-safety: UUIDGenerator is stateless and safe for concurrent use.
type UUIDGenerator struct {
	Prefix string
}

// Generate returns a new id such as "opt-0190b6b2-...".
//
// Panics if UUID generation fails (should never happen in practice).
func (g UUIDGenerator) Generate() string {
	id := uuid.Must(uuid.NewV7()).String()
	if g.Prefix == "" {
		return id
	}
	return g.Prefix + "-" + id
}

// Sequence generates "prefix-1", "prefix-2", ... for reproducible traces.
//
// Thread-safety: Sequence is safe for concurrent use via internal mutex.
type Sequence struct {
	mu     sync.Mutex
	prefix string
	n      int
}

// NewSequence creates a sequence starting at 1.
func NewSequence(prefix string) *Sequence {
	return &Sequence{prefix: prefix}
}

// Generate returns the next id.
func (s *Sequence) Generate() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.n++
	return fmt.Sprintf("%s-%d", s.prefix, s.n)
}
