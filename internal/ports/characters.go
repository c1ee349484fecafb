package ports

import (
	"context"

	"powerboard/internal/domain"
)

// CharacterSource fetches the per-character power data for the selected
// membership.
type CharacterSource interface {
	// GetCharacterData fetches a fresh snapshot set. onSet receives the
	// complete set exactly once on success; onFetching is called with true
	// when the network round trip starts and false when it ends, in both
	// outcomes. Errors carry the taxonomy classified by domain.Classify.
	GetCharacterData(ctx context.Context, onSet func(domain.SnapshotSet), onFetching func(bool)) error
}
