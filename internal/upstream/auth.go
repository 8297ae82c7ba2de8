package upstream

import (
	"context"

	"github.com/MezeLaw/iris-ui/internal/api/metrics"
	"github.com/MezeLaw/iris-ui/internal/core/domain"
	"github.com/MezeLaw/iris-ui/internal/core/ports"
)

// AuthGateway is the typed wrapper over the backend's /auth endpoints.
// It is stateless; session mutation on success belongs to the caller,
// except Logout, which is purely local by contract.
type AuthGateway struct {
	c     *Client
	store ports.SessionStore
}

func NewAuthGateway(c *Client, store ports.SessionStore) *AuthGateway {
	return &AuthGateway{c: c, store: store}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login exchanges credentials for a user, tenant and bearer token.
func (g *AuthGateway) Login(ctx context.Context, email, password string) (*domain.AuthResult, error) {
	return postJSON[domain.AuthResult](ctx, g.c, "/auth/login", loginRequest{Email: email, Password: password})
}

// Register creates a user (and, for the first user, the tenant itself).
// The first-user rule is enforced by the backend, not here.
func (g *AuthGateway) Register(ctx context.Context, in ports.RegisterInput) (*domain.AuthResult, error) {
	return postJSON[domain.AuthResult](ctx, g.c, "/auth/register", in)
}

// ValidateToken asks the backend whether the stored token is still
// accepted. Failure has no side effect here; only a 401 observed by the
// client's interceptor tears the session down.
func (g *AuthGateway) ValidateToken(ctx context.Context) (*domain.TokenIdentity, error) {
	return postJSON[domain.TokenIdentity](ctx, g.c, "/auth/validate", nil)
}

// Logout erases the durable token and session snapshot for sid. No backend
// call is made. Idempotent.
func (g *AuthGateway) Logout(ctx context.Context, sid string) error {
	if err := g.store.ClearAuth(ctx, sid); err != nil {
		return err
	}
	metrics.SessionTeardownsTotal.WithLabelValues("logout").Inc()
	return nil
}
