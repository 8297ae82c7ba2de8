package upstream

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/MezeLaw/iris-ui/internal/core/domain"
)

// stubStore is an in-memory ports.SessionStore for tests.
type stubStore struct {
	mu       sync.Mutex
	tokens   map[string]string
	sessions map[string]domain.Session
	clears   int
}

func newStubStore() *stubStore {
	return &stubStore{
		tokens:   make(map[string]string),
		sessions: make(map[string]domain.Session),
	}
}

func (s *stubStore) SetAuth(_ context.Context, sid string, user *domain.User, client *domain.Client, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[sid] = token
	s.sessions[sid] = domain.Session{User: user, Client: client, Token: token, IsAuthenticated: true}
	return nil
}

func (s *stubStore) ClearAuth(_ context.Context, sid string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tokens, sid)
	delete(s.sessions, sid)
	s.clears++
	return nil
}

func (s *stubStore) Get(_ context.Context, sid string) (domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessions[sid], nil
}

func (s *stubStore) Token(_ context.Context, sid string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tokens[sid], nil
}

func (s *stubStore) clearCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clears
}

func newTestClient(t *testing.T, h http.HandlerFunc, store *stubStore, timeout time.Duration) *Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		h(w, r)
	}))
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, timeout, store, zerolog.Nop())
}

func authedCtx(store *stubStore, sid, token string) context.Context {
	_ = store.SetAuth(context.Background(), sid, &domain.User{ID: 1, Role: domain.RoleAdmin}, &domain.Client{ID: 1}, token)
	return WithSessionID(context.Background(), sid)
}

func TestDecide(t *testing.T) {
	cases := []struct {
		status int
		want   Action
	}{
		{http.StatusOK, ActionNone},
		{http.StatusCreated, ActionNone},
		{http.StatusBadRequest, ActionNone},
		{http.StatusUnauthorized, ActionPurgeSession},
		{http.StatusForbidden, ActionLog},
		{http.StatusNotFound, ActionLog},
		{http.StatusConflict, ActionNone},
		{http.StatusInternalServerError, ActionLog},
		{http.StatusBadGateway, ActionLog},
	}
	for _, tc := range cases {
		if got := Decide(tc.status); got != tc.want {
			t.Fatalf("Decide(%d) = %v, want %v", tc.status, got, tc.want)
		}
	}
}

func TestClient_InjectsFreshToken(t *testing.T) {
	store := newStubStore()
	var seen []string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"message":"ok","data":{}}`))
	}, store, time.Second)
	gw := NewAuthGateway(c, store)

	ctx := authedCtx(store, "sid1", "t1")
	if _, err := gw.ValidateToken(ctx); err != nil {
		t.Fatalf("validate: %v", err)
	}

	// The token is read per request, not cached at construction.
	_ = store.SetAuth(context.Background(), "sid1", nil, nil, "t2")
	if _, err := gw.ValidateToken(ctx); err != nil {
		t.Fatalf("validate: %v", err)
	}

	if len(seen) != 2 || seen[0] != "Bearer t1" || seen[1] != "Bearer t2" {
		t.Fatalf("unexpected Authorization headers: %v", seen)
	}
}

func TestClient_NoTokenNoHeader(t *testing.T) {
	store := newStubStore()
	var header string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		header = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{"message":"ok","data":{}}`))
	}, store, time.Second)

	if _, err := NewAuthGateway(c, store).ValidateToken(WithSessionID(context.Background(), "anon")); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if header != "" {
		t.Fatalf("expected no Authorization header, got %q", header)
	}
}

func TestClient_UnauthorizedPurgesSession(t *testing.T) {
	store := newStubStore()
	// The 401 comes from a reporting endpoint, not an auth one; teardown
	// is unconditional regardless of what was requested.
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"token expired"}`))
	}, store, time.Second)

	ctx := authedCtx(store, "sid1", "t1")
	_, err := NewReportGateway(c).ActivePatients(ctx)
	if err == nil {
		t.Fatalf("expected error")
	}
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}

	sess, _ := store.Get(context.Background(), "sid1")
	if sess.IsAuthenticated || sess.Token != "" {
		t.Fatalf("expected purged session, got %+v", sess)
	}
}

func TestClient_ForbiddenKeepsSession(t *testing.T) {
	store := newStubStore()
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":"forbidden","details":"not your tenant"}`))
	}, store, time.Second)

	ctx := authedCtx(store, "sid1", "t1")
	_, err := NewReportGateway(c).ActivePatients(ctx)
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	var apiErr *domain.APIError
	if !errors.As(err, &apiErr) || apiErr.Message != "forbidden" || apiErr.Details != "not your tenant" {
		t.Fatalf("error body not preserved: %v", err)
	}

	if sess, _ := store.Get(context.Background(), "sid1"); !sess.IsAuthenticated {
		t.Fatalf("403 must not tear the session down")
	}
}

func TestClient_ServerErrorPropagates(t *testing.T) {
	store := newStubStore()
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"boom"}`))
	}, store, time.Second)

	ctx := authedCtx(store, "sid1", "t1")
	_, err := NewUserGateway(c).List(ctx)
	if !errors.Is(err, domain.ErrUpstream) {
		t.Fatalf("expected ErrUpstream, got %v", err)
	}
	if sess, _ := store.Get(context.Background(), "sid1"); !sess.IsAuthenticated {
		t.Fatalf("500 must not tear the session down")
	}
}

func TestClient_TimeoutPropagates(t *testing.T) {
	store := newStubStore()
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}, store, 20*time.Millisecond)

	ctx := authedCtx(store, "sid1", "t1")
	_, err := NewReportGateway(c).ActivePatients(ctx)
	if err == nil {
		t.Fatalf("expected timeout error")
	}
	var apiErr *domain.APIError
	if errors.As(err, &apiErr) {
		t.Fatalf("timeouts must propagate unchanged, got APIError %v", apiErr)
	}
	if sess, _ := store.Get(context.Background(), "sid1"); !sess.IsAuthenticated {
		t.Fatalf("timeout must not tear the session down")
	}
}

func TestClient_NonEnvelopeErrorBody(t *testing.T) {
	store := newStubStore()
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("<html>bad gateway</html>"))
	}, store, time.Second)

	_, err := NewReportGateway(c).ActivePatients(WithSessionID(context.Background(), "sid1"))
	var apiErr *domain.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Message != http.StatusText(http.StatusBadGateway) {
		t.Fatalf("expected fallback message, got %q", apiErr.Message)
	}
}
