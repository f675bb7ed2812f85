package models

import "time"

// Group represents a named collection of users that expenses belong to.
// Membership is many-to-many and unordered. A group must exist before an
// expense referencing it can be created.
type Group struct {
	// ID is the unique identifier for the group (UUID format).
	ID string

	// Name is the display name of the group (e.g., "Roommates", "Goa Trip").
	Name string

	// MemberIDs is the set of user IDs in this group.
	MemberIDs []string

	CreatedAt time.Time
}

// HasMember reports whether the user belongs to the group.
func (g *Group) HasMember(userID string) bool {
	for _, id := range g.MemberIDs {
		if id == userID {
			return true
		}
	}
	return false
}
