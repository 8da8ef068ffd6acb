package validator

import (
	"slices"

	"github.com/google/uuid"
)

// sequenceEqual compares identity lists element by element.
func sequenceEqual(a, b []uuid.UUID) bool {
	return slices.Equal(a, b)
}

// setEqual compares identity lists as sets: order and repetition are ignored.
func setEqual(a, b []uuid.UUID) bool {
	sa, sb := toSet(a), toSet(b)
	if len(sa) != len(sb) {
		return false
	}
	for id := range sa {
		if _, ok := sb[id]; !ok {
			return false
		}
	}
	return true
}

// intersect returns the identities present in both lists, in the order they
// first appear in a, without repeats.
func intersect(a, b []uuid.UUID) []uuid.UUID {
	sb := toSet(b)
	var out []uuid.UUID
	seen := make(map[uuid.UUID]struct{})
	for _, id := range a {
		if _, ok := sb[id]; !ok {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func toSet(ids []uuid.UUID) map[uuid.UUID]struct{} {
	s := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}
