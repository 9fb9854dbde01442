package services

import "pasarikan/internal/models"

// Actor is the authenticated identity behind a request, as supplied by the
// JWT middleware. Services trust the ID and role but perform their own
// authorization checks against the entities being acted on.
type Actor struct {
	ID   string
	Role string
}

// IsAdmin reports whether the actor carries the admin role.
func (a Actor) IsAdmin() bool {
	return a.Role == models.RoleAdmin
}

// IsSeller reports whether the actor carries the seller role.
func (a Actor) IsSeller() bool {
	return a.Role == models.RoleSeller
}
