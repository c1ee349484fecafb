package domain

import "slices"

// DisplayOrder is a user-chosen ordering of character IDs. A valid order is
// a permutation of the IDs present in the current snapshot set.
type DisplayOrder []string

// DefaultOrder returns the IDs of the set in arrival order.
func DefaultOrder(set SnapshotSet) DisplayOrder {
	return DisplayOrder(set.IDs())
}

// Validate reports whether the order is a true permutation of the set's IDs:
// equal cardinality and bidirectional coverage. A length match alone is not
// enough, duplicate IDs in a corrupted stored order must fail here.
func (o DisplayOrder) Validate(set SnapshotSet) bool {
	if len(o) != len(set) {
		return false
	}
	seen := make(map[string]bool, len(o))
	for _, id := range o {
		if seen[id] {
			return false
		}
		seen[id] = true
	}
	for _, c := range set {
		if !seen[c.ID] {
			return false
		}
	}
	return true
}

// Swap returns a copy of the order with the positions of a and b exchanged.
// If either ID is absent or a == b the order is returned unchanged.
func (o DisplayOrder) Swap(a, b string) DisplayOrder {
	i := slices.Index(o, a)
	j := slices.Index(o, b)
	if i < 0 || j < 0 || i == j {
		return o
	}
	out := slices.Clone(o)
	out[i], out[j] = out[j], out[i]
	return out
}
