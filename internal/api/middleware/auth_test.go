package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/fieldserve/jobs-system/internal/core/domain"
	"github.com/fieldserve/jobs-system/internal/core/ports"
)

type stubTokens struct {
	subject string
	err     error
}

func (s *stubTokens) Issue(string) (domain.TokenPair, error) { return domain.TokenPair{}, nil }

func (s *stubTokens) Validate(string) (string, error) {
	return s.subject, s.err
}

type stubUsers struct {
	user *domain.User
}

func (s *stubUsers) Create(context.Context, *domain.User) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}

func (s *stubUsers) FindByEmail(context.Context, string) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}

func (s *stubUsers) FindByID(_ context.Context, id string) (*domain.User, error) {
	if s.user == nil || s.user.ID != id {
		return nil, domain.ErrUserNotFound
	}
	return s.user, nil
}

func (s *stubUsers) List(context.Context, ports.ListUsersFilter) ([]*domain.User, int64, error) {
	return nil, 0, nil
}

func (s *stubUsers) Update(context.Context, *domain.User) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}

func invoke(t *testing.T, mw echo.MiddlewareFunc, header string) (*httptest.ResponseRecorder, echo.Context, error) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/jobs", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := mw(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	return rec, c, handler(c)
}

func TestAuth_MissingHeader(t *testing.T) {
	mw := Auth(&stubTokens{subject: "u1"}, &stubUsers{})

	_, _, err := invoke(t, mw, "")

	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}

func TestAuth_MalformedHeader(t *testing.T) {
	mw := Auth(&stubTokens{subject: "u1"}, &stubUsers{})

	_, _, err := invoke(t, mw, "Token abc")

	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}

func TestAuth_InvalidToken(t *testing.T) {
	mw := Auth(&stubTokens{err: domain.ErrInvalidCredentials}, &stubUsers{})

	_, _, err := invoke(t, mw, "Bearer not-a-token")

	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}

func TestAuth_SubjectGone(t *testing.T) {
	// The signature verifies but the account behind it has been deleted.
	mw := Auth(&stubTokens{subject: "u1"}, &stubUsers{user: nil})

	_, _, err := invoke(t, mw, "Bearer valid")

	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}

func TestAuth_SetsActorFromStore(t *testing.T) {
	users := &stubUsers{user: &domain.User{ID: "u1", Email: "worker@example.com", Role: domain.RoleAdmin}}
	mw := Auth(&stubTokens{subject: "u1"}, users)

	rec, c, err := invoke(t, mw, "Bearer valid")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	actor, ok := c.Get(ActorKey).(domain.Actor)
	if !ok {
		t.Fatalf("actor not set in context")
	}
	if actor.ID != "u1" || actor.Role != domain.RoleAdmin {
		t.Fatalf("unexpected actor: %+v", actor)
	}
}

func TestAuth_CaseInsensitiveScheme(t *testing.T) {
	users := &stubUsers{user: &domain.User{ID: "u1", Role: domain.RoleUser}}
	mw := Auth(&stubTokens{subject: "u1"}, users)

	rec, _, err := invoke(t, mw, "bearer valid")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
