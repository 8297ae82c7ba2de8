package domain

// AuthResult is the payload of a successful login or register call.
type AuthResult struct {
	User   *User   `json:"user"`
	Client *Client `json:"client"`
	Token  string  `json:"token"`
}

// TokenIdentity is the payload of a successful token validation: the
// identity the backend derived from the presented bearer token.
type TokenIdentity struct {
	UserID   int64  `json:"user_id"`
	ClientID int64  `json:"client_id"`
	Role     string `json:"role"`
	Email    string `json:"email"`
}
