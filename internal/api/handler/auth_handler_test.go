package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/MezeLaw/iris-ui/internal/api/middleware"
	"github.com/MezeLaw/iris-ui/internal/api/render"
	"github.com/MezeLaw/iris-ui/internal/core/domain"
	"github.com/MezeLaw/iris-ui/internal/core/ports"
)

type stubStore struct {
	mu       sync.Mutex
	sessions map[string]domain.Session
}

func newStubStore() *stubStore {
	return &stubStore{sessions: make(map[string]domain.Session)}
}

func (s *stubStore) SetAuth(_ context.Context, sid string, user *domain.User, client *domain.Client, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sid] = domain.Session{User: user, Client: client, Token: token, IsAuthenticated: true}
	return nil
}

func (s *stubStore) ClearAuth(_ context.Context, sid string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sid)
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
	return s.sessions[sid].Token, nil
}

// stubAuth counts backend calls so tests can assert that local validation
// failures never reach the network.
type stubAuth struct {
	store    *stubStore
	mu       sync.Mutex
	calls    int
	loginFn  func(email, password string) (*domain.AuthResult, error)
	registFn func(in ports.RegisterInput) (*domain.AuthResult, error)
}

func (a *stubAuth) count() {
	a.mu.Lock()
	a.calls++
	a.mu.Unlock()
}

func (a *stubAuth) callCount() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.calls
}

func (a *stubAuth) Login(_ context.Context, email, password string) (*domain.AuthResult, error) {
	a.count()
	return a.loginFn(email, password)
}

func (a *stubAuth) Register(_ context.Context, in ports.RegisterInput) (*domain.AuthResult, error) {
	a.count()
	return a.registFn(in)
}

func (a *stubAuth) ValidateToken(context.Context) (*domain.TokenIdentity, error) {
	a.count()
	return &domain.TokenIdentity{}, nil
}

func (a *stubAuth) Logout(ctx context.Context, sid string) error {
	return a.store.ClearAuth(ctx, sid)
}

func newAuthApp(t *testing.T, store *stubStore, auth *stubAuth) *echo.Echo {
	t.Helper()

	e := echo.New()
	renderer, err := render.New()
	if err != nil {
		t.Fatalf("renderer: %v", err)
	}
	e.Renderer = renderer
	e.Validator = NewValidator()
	e.Use(middleware.Session(middleware.SessionConfig{Store: store, Log: zerolog.Nop()}))

	h := NewAuthHandler(auth, store, zerolog.Nop())
	e.GET("/login", h.LoginPage)
	e.POST("/login", h.Login)
	e.GET("/register", h.RegisterPage)
	e.POST("/register", h.Register)
	e.POST("/logout", h.Logout)
	return e
}

func postForm(e *echo.Echo, path string, form url.Values, cookie string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: "iris_sid", Value: cookie})
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestAuthHandler_Login_Success(t *testing.T) {
	store := newStubStore()
	auth := &stubAuth{store: store, loginFn: func(email, password string) (*domain.AuthResult, error) {
		if email != "a@b.com" || password != "secret1" {
			t.Fatalf("unexpected credentials: %s/%s", email, password)
		}
		return &domain.AuthResult{
			User:   &domain.User{ID: 1, Name: "Ana", Lastname: "García", Email: "a@b.com", Role: domain.RoleAdmin, ClientID: 1},
			Client: &domain.Client{ID: 1, Name: "Óptica X"},
			Token:  "t1",
		}, nil
	}}
	e := newAuthApp(t, store, auth)

	rec := postForm(e, "/login", url.Values{"email": {"a@b.com"}, "password": {"secret1"}}, "sid1")

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/" {
		t.Fatalf("expected redirect home, got %q", loc)
	}

	sess, _ := store.Get(context.Background(), "sid1")
	if !sess.IsAuthenticated || sess.Token != "t1" {
		t.Fatalf("session not populated: %+v", sess)
	}
	if sess.User == nil || sess.User.ID != 1 || sess.User.Email != "a@b.com" {
		t.Fatalf("unexpected user: %+v", sess.User)
	}
	if sess.Client == nil || sess.Client.ID != 1 || sess.Client.Name != "Óptica X" {
		t.Fatalf("unexpected client: %+v", sess.Client)
	}
}

func TestAuthHandler_Login_RejectedShowsBanner(t *testing.T) {
	store := newStubStore()
	auth := &stubAuth{store: store, loginFn: func(string, string) (*domain.AuthResult, error) {
		return nil, &domain.APIError{Status: http.StatusUnauthorized, Message: "invalid credentials"}
	}}
	e := newAuthApp(t, store, auth)

	rec := postForm(e, "/login", url.Values{"email": {"a@b.com"}, "password": {"wrong00"}}, "sid1")

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 page, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "invalid credentials") {
		t.Fatalf("banner not rendered: %s", rec.Body.String())
	}
	if sess, _ := store.Get(context.Background(), "sid1"); sess.IsAuthenticated {
		t.Fatalf("rejected login must not mutate the session")
	}
}

func TestAuthHandler_Login_ValidationSkipsNetwork(t *testing.T) {
	store := newStubStore()
	auth := &stubAuth{store: store}
	e := newAuthApp(t, store, auth)

	rec := postForm(e, "/login", url.Values{"email": {"not-an-email"}, "password": {""}}, "")

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if auth.callCount() != 0 {
		t.Fatalf("validation failure must not reach the network, saw %d calls", auth.callCount())
	}
	body := rec.Body.String()
	if !strings.Contains(body, "email must be a valid email") || !strings.Contains(body, "password is required") {
		t.Fatalf("inline field errors missing: %s", body)
	}
}

func TestAuthHandler_Register_ShortPasswordSkipsNetwork(t *testing.T) {
	store := newStubStore()
	auth := &stubAuth{store: store}
	e := newAuthApp(t, store, auth)

	rec := postForm(e, "/register", url.Values{
		"name":     {"Ana"},
		"lastname": {"García"},
		"email":    {"a@b.com"},
		"password": {"abc"},
		"role":     {"admin"},
	}, "")

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if auth.callCount() != 0 {
		t.Fatalf("short password must be rejected before any network call")
	}
	if !strings.Contains(rec.Body.String(), "password must be at least 6 characters") {
		t.Fatalf("inline password error missing: %s", rec.Body.String())
	}
}

func TestAuthHandler_Register_UnknownRoleSkipsNetwork(t *testing.T) {
	store := newStubStore()
	auth := &stubAuth{store: store}
	e := newAuthApp(t, store, auth)

	rec := postForm(e, "/register", url.Values{
		"name":     {"Ana"},
		"lastname": {"García"},
		"email":    {"a@b.com"},
		"password": {"secret1"},
		"role":     {"superuser"},
	}, "")

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if auth.callCount() != 0 {
		t.Fatalf("unknown role must be rejected before any network call")
	}
	if !strings.Contains(rec.Body.String(), "role must be admin, optometrista or recepcionista") {
		t.Fatalf("inline role error missing: %s", rec.Body.String())
	}
}

func TestAuthHandler_Register_Success(t *testing.T) {
	store := newStubStore()
	auth := &stubAuth{store: store, registFn: func(in ports.RegisterInput) (*domain.AuthResult, error) {
		if in.ClientName != "Óptica Nueva" || in.Role != domain.RoleAdmin {
			t.Fatalf("unexpected input: %+v", in)
		}
		return &domain.AuthResult{
			User:   &domain.User{ID: 2, Role: in.Role},
			Client: &domain.Client{ID: 2, Name: in.ClientName},
			Token:  "t2",
		}, nil
	}}
	e := newAuthApp(t, store, auth)

	rec := postForm(e, "/register", url.Values{
		"name":        {"Ana"},
		"lastname":    {"García"},
		"email":       {"a@b.com"},
		"password":    {"secret1"},
		"role":        {"admin"},
		"client_name": {"Óptica Nueva"},
	}, "sid2")

	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/" {
		t.Fatalf("expected 303 home, got %d %q", rec.Code, rec.Header().Get("Location"))
	}
	if sess, _ := store.Get(context.Background(), "sid2"); sess.Token != "t2" {
		t.Fatalf("session not populated: %+v", sess)
	}
}

func TestAuthHandler_Logout_Idempotent(t *testing.T) {
	store := newStubStore()
	_ = store.SetAuth(context.Background(), "sid1", &domain.User{ID: 1}, &domain.Client{ID: 1}, "t1")
	auth := &stubAuth{store: store}
	e := newAuthApp(t, store, auth)

	for i := 0; i < 2; i++ {
		rec := postForm(e, "/logout", url.Values{}, "sid1")
		if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/login" {
			t.Fatalf("logout %d: expected 303 to /login, got %d %q", i, rec.Code, rec.Header().Get("Location"))
		}
	}
	if sess, _ := store.Get(context.Background(), "sid1"); sess.IsAuthenticated || sess.Token != "" {
		t.Fatalf("expected empty session, got %+v", sess)
	}
}
