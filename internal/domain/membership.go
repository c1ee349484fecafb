package domain

// Membership identifies a Destiny platform account (Steam, PSN, Xbox, ...).
type Membership struct {
	ID          string // membership ID
	Type        int    // BungieMembershipType enum value
	DisplayName string
}
