// Package ids provides the identifier generators used by the persistence layer.
package ids

import (
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"hostelcore/pkg/domain"
)

var (
	_ domain.IDGenerator = UUID{}
	_ domain.IDGenerator = (*Sequence)(nil)
)

// UUID mints ids of the form "<prefix>-<uuid v4>".
type UUID struct{}

// NewID returns a fresh prefixed UUID.
func (UUID) NewID(prefix string) string {
	if prefix == "" {
		return uuid.NewString()
	}
	return prefix + "-" + uuid.NewString()
}

// Sequence mints ids of the form "<prefix><n>" from per-prefix counters.
type Sequence struct {
	mu    sync.Mutex
	next  map[string]int
	bases map[string]int
}

// DefaultBases holds the first number issued per prefix.
var DefaultBases = map[string]int{
	domain.PrefixStaff: 1000,
}

// DefaultBase is used for prefixes without an explicit base.
const DefaultBase = 100

// NewSequence returns a generator seeded with the provided per-prefix bases.
// A nil map uses DefaultBases.
func NewSequence(bases map[string]int) *Sequence {
	if bases == nil {
		bases = DefaultBases
	}
	cp := make(map[string]int, len(bases))
	for k, v := range bases {
		cp[k] = v
	}
	return &Sequence{next: make(map[string]int), bases: cp}
}

// NewID returns the next id for prefix.
func (s *Sequence) NewID(prefix string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.next[prefix]
	if !ok {
		n = s.base(prefix)
	}
	s.next[prefix] = n + 1
	return fmt.Sprintf("%s%d", prefix, n)
}

// Observe advances the counter for prefix past an existing id so imported
// records never collide with newly minted ones.
func (s *Sequence) Observe(id string) {
	prefix, n, ok := splitSequenceID(id)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	next, seen := s.next[prefix]
	if !seen {
		next = s.base(prefix)
	}
	if n >= next {
		s.next[prefix] = n + 1
	} else if !seen {
		s.next[prefix] = next
	}
}

func (s *Sequence) base(prefix string) int {
	if b, ok := s.bases[prefix]; ok {
		return b
	}
	return DefaultBase
}

func splitSequenceID(id string) (string, int, bool) {
	i := strings.IndexFunc(id, func(r rune) bool { return r >= '0' && r <= '9' })
	if i <= 0 {
		return "", 0, false
	}
	var n int
	for _, r := range id[i:] {
		if r < '0' || r > '9' {
			return "", 0, false
		}
		n = n*10 + int(r-'0')
	}
	return id[:i], n, true
}

// Strategy names an id generator.
type Strategy string

const (
	StrategyUUID     Strategy = "uuid"
	StrategySequence Strategy = "sequence"
)

// New returns the generator for strategy.
func New(strategy Strategy) (domain.IDGenerator, error) {
	switch strategy {
	case "", StrategyUUID:
		return UUID{}, nil
	case StrategySequence:
		return NewSequence(nil), nil
	default:
		return nil, fmt.Errorf("unknown id strategy %s", strategy)
	}
}
