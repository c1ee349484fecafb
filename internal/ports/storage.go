package ports

import (
	"golang.org/x/oauth2"

	"powerboard/internal/domain"
)

// OrderStore persists the user's character display order across sessions.
type OrderStore interface {
	// LoadDisplayOrder returns the stored order, or nil when none is set.
	LoadDisplayOrder() (domain.DisplayOrder, error)

	// SaveDisplayOrder replaces the stored order.
	SaveDisplayOrder(order domain.DisplayOrder) error

	// ClearDisplayOrder removes the stored order.
	ClearDisplayOrder() error
}

// TokenStore persists the OAuth token between runs.
type TokenStore interface {
	// LoadToken returns the stored token, or nil when none is set.
	LoadToken() (*oauth2.Token, error)

	// SaveToken replaces the stored token.
	SaveToken(tok *oauth2.Token) error
}

// MembershipStore persists the selected Destiny platform membership.
type MembershipStore interface {
	// LoadMembership returns the stored membership and whether one is set.
	LoadMembership() (domain.Membership, bool, error)

	// SaveMembership replaces the stored membership.
	SaveMembership(m domain.Membership) error
}

// ManifestStore caches the parsed manifest keyed by its Bungie version.
type ManifestStore interface {
	// CachedVersion returns the version of the cached manifest, or "" when
	// the cache is empty.
	CachedVersion() (string, error)

	// Load returns the cached manifest.
	Load() (*domain.Manifest, error)

	// Save replaces the cached manifest.
	Save(m *domain.Manifest) error
}
