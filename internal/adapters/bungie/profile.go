package bungie

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"powerboard/internal/application"
	"powerboard/internal/domain"
)

// profileComponents requests characters (200) and profile progression (104,
// the seasonal artifact power bonus).
const profileComponents = "200,104"

// CharacterSource implements ports.CharacterSource against the Destiny
// profile endpoint.
type CharacterSource struct {
	client   *Client
	gateway  *Gateway
	manifest *ManifestService
	log      *zap.Logger
}

// NewCharacterSource creates the character-data source. The manifest
// service resolves class hashes to names; until a manifest exists the
// class falls back to "Guardian".
func NewCharacterSource(client *Client, gateway *Gateway, manifest *ManifestService, log *zap.Logger) *CharacterSource {
	if log == nil {
		log = zap.NewNop()
	}
	return &CharacterSource{client: client, gateway: gateway, manifest: manifest, log: log}
}

// GetCharacterData fetches the full snapshot set for the selected
// membership. onSet receives the set exactly once on success; onFetching
// brackets the network round trip in both outcomes.
func (s *CharacterSource) GetCharacterData(ctx context.Context, onSet func(domain.SnapshotSet), onFetching func(bool)) error {
	membership, ok := s.gateway.SelectedMembership()
	if !ok {
		return application.ErrNoMembership
	}
	token := s.gateway.Token()
	if token == "" {
		return application.ErrNotAuthed
	}

	onFetching(true)
	defer onFetching(false)

	path := fmt.Sprintf("/Platform/Destiny2/%d/Profile/%s/?components=%s",
		membership.Type, membership.ID, profileComponents)
	var resp profileResponse
	if err := s.client.get(ctx, path, token, &resp); err != nil {
		return fmt.Errorf("fetch profile: %w", err)
	}

	set := s.buildSet(resp)
	s.log.Debug("character data refreshed", zap.Int("characters", len(set)))
	onSet(set)
	return nil
}

// buildSet flattens the profile response into a snapshot set ordered by
// most recently played, which is the arrival order the UI defaults to.
func (s *CharacterSource) buildSet(resp profileResponse) domain.SnapshotSet {
	artifactBonus := resp.ProfileProgression.Data.SeasonalArtifact.PowerBonus
	manifest := s.manifest.Cached()

	chars := make([]characterComponent, 0, len(resp.Characters.Data))
	for _, c := range resp.Characters.Data {
		chars = append(chars, c)
	}
	sort.Slice(chars, func(i, j int) bool {
		return chars[i].DateLastPlayed.After(chars[j].DateLastPlayed)
	})

	set := make(domain.SnapshotSet, 0, len(chars))
	for _, c := range chars {
		set = append(set, domain.CharacterSnapshot{
			ID:            c.CharacterID,
			Class:         manifest.ClassName(c.ClassHash),
			Light:         c.Light,
			ArtifactBonus: artifactBonus,
			EmblemColor:   c.EmblemColor.Hex(),
		})
	}
	return set
}
