package domain

import "time"

// Roles a clinic user can hold. The backend owns role assignment; the
// front-end only reads them for route gating.
const (
	RoleAdmin        = "admin"
	RoleOptometrist  = "optometrista"
	RoleReceptionist = "recepcionista"
)

// ValidRole reports whether s is one of the known clinic roles.
func ValidRole(s string) bool {
	switch s {
	case RoleAdmin, RoleOptometrist, RoleReceptionist:
		return true
	}
	return false
}

// User models an authenticated clinic staff member. Owned by the backend
// and immutable from this service's perspective.
type User struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Lastname  string    `json:"lastname"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	ClientID  int64     `json:"client_id"`
	CreatedAt time.Time `json:"created_at"`
}

// FullName returns the display name used in page headers.
func (u User) FullName() string {
	return u.Name + " " + u.Lastname
}

// Client is the tenant: an optics clinic owning its own users and patients.
type Client struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
