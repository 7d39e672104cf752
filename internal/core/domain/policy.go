package domain

// Principal is the authenticated identity behind a request. Role is the
// role currently stored for the user, not the one embedded in the token.
type Principal struct {
	ID   int64
	Role Role
}

// IsAdmin reports whether the principal holds the admin role.
func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// CanActOnResource reports whether p may mutate a resource owned by ownerID.
func CanActOnResource(p Principal, ownerID int64) bool {
	return p.IsAdmin() || p.ID == ownerID
}

// CanChangeRole reports whether p may assign roles.
func CanChangeRole(p Principal) bool {
	return p.IsAdmin()
}
