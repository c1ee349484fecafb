package ports

import (
	"context"

	"powerboard/internal/domain"
)

// ManifestService provides the versioned game-data manifest, preferring the
// local cache and falling back to a remote fetch when the version moved.
type ManifestService interface {
	// GetManifest returns the current manifest. Errors carry the taxonomy
	// classified by domain.Classify.
	GetManifest(ctx context.Context) (*domain.Manifest, error)

	// Subscribe returns a channel of pipeline stage notifications. The
	// channel is never closed; sends are non-blocking so slow consumers
	// drop stages rather than stall the fetch.
	Subscribe() <-chan domain.ManifestStage
}
