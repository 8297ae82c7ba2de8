// Package session implements the durable session store on Redis.
//
// Two keys exist per visitor session: the bearer token under its own key,
// and a snapshot (user, client, authenticated flag) under another. The
// token is deliberately excluded from the snapshot; it is the sole
// authority for whether upstream requests succeed, while the snapshot's
// flag is advisory state for route gating.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/MezeLaw/iris-ui/internal/core/domain"
)

const (
	tokenKeyPrefix    = "authtoken:"
	snapshotKeyPrefix = "authsession:"

	// sessionTTL bounds how long an idle session survives. Refreshed on
	// every write.
	sessionTTL = 30 * 24 * time.Hour
)

// snapshot is the persisted subset of a session. The token never appears
// here.
type snapshot struct {
	User            *domain.User   `json:"user"`
	Client          *domain.Client `json:"client"`
	IsAuthenticated bool           `json:"is_authenticated"`
}

// Store persists per-visitor auth state in Redis. It is the only writer of
// the token and snapshot keys.
type Store struct {
	rdb *redis.Client
}

// NewStore creates a Store wrapping the given Redis client.
func NewStore(rdb *redis.Client) *Store {
	return &Store{rdb: rdb}
}

// SetAuth stores the token and snapshot for sid and marks the session
// authenticated. No validation is performed on the inputs.
func (s *Store) SetAuth(ctx context.Context, sid string, user *domain.User, client *domain.Client, token string) error {
	snap, err := json.Marshal(snapshot{User: user, Client: client, IsAuthenticated: true})
	if err != nil {
		return fmt.Errorf("session marshal: %w", err)
	}

	pipe := s.rdb.TxPipeline()
	pipe.Set(ctx, tokenKey(sid), token, sessionTTL)
	pipe.Set(ctx, snapshotKey(sid), snap, sessionTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("session set: %w", err)
	}
	return nil
}

// ClearAuth removes both keys for sid. Clearing an absent session is a
// no-op, never an error.
func (s *Store) ClearAuth(ctx context.Context, sid string) error {
	if err := s.rdb.Del(ctx, tokenKey(sid), snapshotKey(sid)).Err(); err != nil {
		return fmt.Errorf("session clear: %w", err)
	}
	return nil
}

// Get returns the session for sid, merging the snapshot with the token.
// Unknown sids yield an empty, unauthenticated session.
func (s *Store) Get(ctx context.Context, sid string) (domain.Session, error) {
	vals, err := s.rdb.MGet(ctx, snapshotKey(sid), tokenKey(sid)).Result()
	if err != nil {
		return domain.Session{}, fmt.Errorf("session get: %w", err)
	}

	var sess domain.Session
	if raw, ok := vals[0].(string); ok {
		var snap snapshot
		if err := json.Unmarshal([]byte(raw), &snap); err != nil {
			return domain.Session{}, fmt.Errorf("session unmarshal: %w", err)
		}
		sess.User = snap.User
		sess.Client = snap.Client
		sess.IsAuthenticated = snap.IsAuthenticated
	}
	if tok, ok := vals[1].(string); ok {
		sess.Token = tok
	}
	return sess, nil
}

// Token returns the bearer token for sid, or "" when none is stored.
func (s *Store) Token(ctx context.Context, sid string) (string, error) {
	tok, err := s.rdb.Get(ctx, tokenKey(sid)).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("session token: %w", err)
	}
	return tok, nil
}

func tokenKey(sid string) string    { return tokenKeyPrefix + sid }
func snapshotKey(sid string) string { return snapshotKeyPrefix + sid }
