package domain

// CharacterSnapshot is one character's power reading from a single poll.
type CharacterSnapshot struct {
	ID            string // Bungie character ID, e.g., "2305843009301ername"
	Class         string // e.g., "Warlock"
	Light         int    // overall power level
	ArtifactBonus int    // seasonal artifact bonus, 0 if none
	EmblemColor   string // hex color from the equipped emblem, may be empty
}

// SnapshotSet is the complete collection of character snapshots from one
// successful poll, in arrival order. A set is replaced wholesale on every
// refresh, never merged field-by-field.
type SnapshotSet []CharacterSnapshot

// IDs returns the character IDs in arrival order.
func (s SnapshotSet) IDs() []string {
	ids := make([]string, len(s))
	for i, c := range s {
		ids[i] = c.ID
	}
	return ids
}

// ByID returns the snapshot for the given character ID.
func (s SnapshotSet) ByID(id string) (CharacterSnapshot, bool) {
	for _, c := range s {
		if c.ID == id {
			return c, true
		}
	}
	return CharacterSnapshot{}, false
}

// PowerAggregates are the account-wide power metrics derived from a set.
type PowerAggregates struct {
	Overall  int // max Light across characters
	Artifact int // max ArtifactBonus across characters
	Total    int // Overall + Artifact
}

// Aggregates derives the account-wide power metrics for the set.
func (s SnapshotSet) Aggregates() PowerAggregates {
	var agg PowerAggregates
	for _, c := range s {
		if c.Light > agg.Overall {
			agg.Overall = c.Light
		}
		if c.ArtifactBonus > agg.Artifact {
			agg.Artifact = c.ArtifactBonus
		}
	}
	agg.Total = agg.Overall + agg.Artifact
	return agg
}
