package ports

import (
	"context"

	"github.com/MezeLaw/iris-ui/internal/core/domain"
)

// RegisterInput carries a registration request. ClientName is required
// semantically only for the very first user of a new tenant; that rule is
// a backend invariant and is not enforced here.
type RegisterInput struct {
	Name       string `json:"name"`
	Lastname   string `json:"lastname"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	Role       string `json:"role"`
	ClientName string `json:"client_name,omitempty"`
}

// AuthGateway exposes the backend's auth operations. All methods except
// Logout map one-to-one onto backend endpoints with no transformation
// beyond typing.
type AuthGateway interface {
	Login(ctx context.Context, email, password string) (*domain.AuthResult, error)
	Register(ctx context.Context, in RegisterInput) (*domain.AuthResult, error)

	// ValidateToken confirms the stored bearer token is still accepted.
	// A failure has no side effect here beyond the returned error.
	ValidateToken(ctx context.Context) (*domain.TokenIdentity, error)

	// Logout is purely local: it erases the durable token and session for
	// sid and issues no backend call. Idempotent.
	Logout(ctx context.Context, sid string) error
}
