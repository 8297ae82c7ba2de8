package domain

// Session is the per-visitor authentication state. IsAuthenticated is true
// iff a token was accepted by the last successful login, register or
// validate call. The persisted snapshot excludes the token, which is stored
// under its own key and is the sole authority for whether upstream requests
// succeed; the flag is advisory UI state.
type Session struct {
	User            *User   `json:"user"`
	Client          *Client `json:"client"`
	Token           string  `json:"-"`
	IsAuthenticated bool    `json:"is_authenticated"`
}

// Role returns the session user's role, or the empty string for an
// anonymous session.
func (s Session) Role() string {
	if s.User == nil {
		return ""
	}
	return s.User.Role
}
