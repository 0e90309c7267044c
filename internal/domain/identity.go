package domain

// Role is the role tag carried by the identity provider's token. The core
// trusts it as given.
type Role string

const (
	RoleUser  Role = "User"
	RoleAdmin Role = "Admin"
)

func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

// ViewScope decides once, per request, how much of a booking a requester may
// see. Admins get the full projection including the owning user.
type ViewScope int

const (
	ViewScopeOwner ViewScope = iota
	ViewScopeAdmin
)

func ViewScopeFor(role Role) ViewScope {
	if role.IsAdmin() {
		return ViewScopeAdmin
	}

	return ViewScopeOwner
}
