package dropwatch

import (
	"context"
	"slices"
)

// SeenSet is the in-memory form of the dedup ledger: links already resolved,
// either confirmed dead or delivered. Membership is permanent.
// SeenSet is not safe for concurrent use; the run controller is its only writer.
type SeenSet struct {
	links   map[string]struct{}
	changed bool
}

// NewSeenSet returns a set holding links. The new set is unchanged.
func NewSeenSet(links ...string) *SeenSet {
	s := &SeenSet{links: make(map[string]struct{}, len(links))}
	for _, l := range links {
		s.links[l] = struct{}{}
	}
	return s
}

// Has reports whether link is in the set.
func (s *SeenSet) Has(link string) bool {
	_, ok := s.links[link]
	return ok
}

// Add inserts link and reports whether it was new.
func (s *SeenSet) Add(link string) bool {
	if s.Has(link) {
		return false
	}
	s.links[link] = struct{}{}
	s.changed = true
	return true
}

// Len returns the number of links in the set.
func (s *SeenSet) Len() int {
	return len(s.links)
}

// Sorted returns the members in ascending order.
func (s *SeenSet) Sorted() []string {
	out := make([]string, 0, len(s.links))
	for l := range s.links {
		out = append(out, l)
	}
	slices.Sort(out)
	return out
}

// Changed reports whether Add inserted a new member since the set was created.
func (s *SeenSet) Changed() bool {
	return s.changed
}

// Ledger persists the seen set between runs.
type Ledger interface {
	// Load returns the persisted set, or an empty set if none exists yet.
	// Corrupt storage yields an empty set, not an error.
	Load(ctx context.Context) (*SeenSet, error)

	// Save overwrites the persisted set with the members of s.
	Save(ctx context.Context, s *SeenSet) error
}
