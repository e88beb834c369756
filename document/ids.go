package document

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// IDGenerator hands out identifiers for newly inserted list entities.
// taken reports whether an identifier is already used in the target list;
// implementations must never return an identifier for which taken is true.
type IDGenerator interface {
	NextID(list ListName, taken func(string) bool) string
}

var idFormats = map[ListName]string{
	Assets:    "MOB-%03d",
	Changes:   "c%d",
	News:      "n%d",
	LineItems: "i%d",
}

// Sequence generates human-readable identifiers from a per-list monotonic
// counter. Identifiers are never reissued by the same Sequence, even after
// the entity carrying them is removed. The zero value is ready to use.
type Sequence struct {
	mu   sync.Mutex
	next map[ListName]int
}

// NewSequence returns a Sequence starting at 1 for every list.
func NewSequence() *Sequence {
	return &Sequence{next: make(map[ListName]int)}
}

func (s *Sequence) NextID(list ListName, taken func(string) bool) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	format, ok := idFormats[list]
	if !ok {
		format = string(list) + "-%d"
	}
	if s.next == nil {
		s.next = make(map[ListName]int)
	}
	n := s.next[list]
	for {
		n++
		id := fmt.Sprintf(format, n)
		if !taken(id) {
			s.next[list] = n
			return id
		}
	}
}

// Random generates random UUIDv4 identifiers.
type Random struct{}

func (Random) NextID(_ ListName, taken func(string) bool) string {
	for {
		id := uuid.NewString()
		if !taken(id) {
			return id
		}
	}
}
