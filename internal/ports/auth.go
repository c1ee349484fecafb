package ports

import (
	"context"

	"powerboard/internal/domain"
)

// AuthGateway defines the interface for the Bungie.net authentication flow.
type AuthGateway interface {
	// HasValidAuth reports whether a non-expired token is on hand.
	HasValidAuth() bool

	// Auth obtains or refreshes a token. It returns true on success and an
	// error on hard failure (the caller records both outcomes).
	Auth(ctx context.Context) (bool, error)

	// HasSelectedMembership reports whether a Destiny platform membership
	// has been chosen for this account.
	HasSelectedMembership() bool

	// SelectedMembership returns the chosen membership.
	SelectedMembership() (domain.Membership, bool)

	// SetSelectedMembership records the membership to poll.
	SetSelectedMembership(m domain.Membership)

	// ManualStartAuth begins an interactive login, typically by opening the
	// Bungie authorize URL in a browser. Used by the retry affordance.
	ManualStartAuth() error
}
