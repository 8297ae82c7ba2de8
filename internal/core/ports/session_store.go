package ports

import (
	"context"

	"github.com/MezeLaw/iris-ui/internal/core/domain"
)

// SessionStore is the single source of truth for a visitor's auth state.
// It is the only component permitted to write the durable token and
// snapshot keys.
type SessionStore interface {
	// SetAuth durably stores the token and the session snapshot for sid
	// and marks the session authenticated. Inputs are not validated; the
	// caller guarantees they came from a successful auth response.
	SetAuth(ctx context.Context, sid string, user *domain.User, client *domain.Client, token string) error

	// ClearAuth removes the durable token and snapshot for sid. Clearing
	// an absent session is not an error.
	ClearAuth(ctx context.Context, sid string) error

	// Get returns the session for sid. An unknown sid yields an empty,
	// unauthenticated session, not an error.
	Get(ctx context.Context, sid string) (domain.Session, error)

	// Token returns the bearer token for sid, or the empty string when
	// none is stored. Read fresh at request time, never cached.
	Token(ctx context.Context, sid string) (string, error)
}
