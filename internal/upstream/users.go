package upstream

import (
	"context"

	"github.com/MezeLaw/iris-ui/internal/core/domain"
)

// UserGateway wraps the backend's /usuarios endpoints.
type UserGateway struct {
	c *Client
}

func NewUserGateway(c *Client) *UserGateway {
	return &UserGateway{c: c}
}

type userList struct {
	Users []domain.User `json:"usuarios"`
}

// List returns the tenant's users. The backend scopes the result to the
// token's client.
func (g *UserGateway) List(ctx context.Context) ([]domain.User, error) {
	data, err := getJSON[userList](ctx, g.c, "/usuarios", nil)
	if err != nil {
		return nil, err
	}
	return data.Users, nil
}
