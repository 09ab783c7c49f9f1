package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/ceadash/cea-dashboard/internal/domain/entities"
	"github.com/ceadash/cea-dashboard/internal/infrastructure/identity"
)

// staticProvider resolves a fixed session for the expected token and rejects
// everything else
type staticProvider struct {
	token   string
	session *identity.Session
}

func (p *staticProvider) Resolve(_ context.Context, token string) (*identity.Session, error) {
	if token != p.token {
		return nil, errors.New("invalid token")
	}
	return p.session, nil
}

func runAuth(t *testing.T, provider identity.Provider, configure func(*http.Request)) (*httptest.ResponseRecorder, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/calls", nil)
	if configure != nil {
		configure(req)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := EchoAuth(provider)(func(c echo.Context) error {
		session, ok := SessionFromContext(c)
		if !ok {
			t.Fatal("session missing from context")
		}
		return c.JSON(http.StatusOK, session.OrganizationID)
	})
	return rec, handler(c)
}

func TestEchoAuth_BearerToken(t *testing.T) {
	session := &identity.Session{
		ProfileID:      uuid.New(),
		OrganizationID: uuid.New(),
		Role:           entities.ProfileRoleUser,
	}
	provider := &staticProvider{token: "tok-1", session: session}

	rec, err := runAuth(t, provider, func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer tok-1")
	})
	if err != nil {
		t.Fatalf("middleware returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestEchoAuth_CookieFallback(t *testing.T) {
	provider := &staticProvider{token: "tok-2", session: &identity.Session{}}

	rec, err := runAuth(t, provider, func(req *http.Request) {
		req.AddCookie(&http.Cookie{Name: "access_token", Value: "tok-2"})
	})
	if err != nil {
		t.Fatalf("middleware returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestEchoAuth_RejectsBadToken(t *testing.T) {
	provider := &staticProvider{token: "tok-3", session: &identity.Session{}}

	_, err := runAuth(t, provider, func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer wrong")
	})
	var httpErr *echo.HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("expected echo.HTTPError, got %v", err)
	}
	if httpErr.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", httpErr.Code)
	}
}

func TestEchoAuth_EmptyTokenReachesProvider(t *testing.T) {
	// The demo provider accepts requests without any credentials; the
	// middleware must delegate that decision instead of rejecting upfront
	provider := &staticProvider{token: "", session: &identity.Session{Role: entities.ProfileRoleAdmin}}

	rec, err := runAuth(t, provider, nil)
	if err != nil {
		t.Fatalf("middleware returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestRequireRole(t *testing.T) {
	e := echo.New()

	run := func(session *identity.Session) error {
		req := httptest.NewRequest(http.MethodDelete, "/v1/contacts/1", nil)
		c := e.NewContext(req, httptest.NewRecorder())
		if session != nil {
			c.Set(SessionContextKey, session)
		}
		handler := RequireRole(entities.ProfileRoleAdmin)(func(c echo.Context) error {
			return c.NoContent(http.StatusNoContent)
		})
		return handler(c)
	}

	if err := run(&identity.Session{Role: entities.ProfileRoleAdmin}); err != nil {
		t.Errorf("admin should pass, got %v", err)
	}

	err := run(&identity.Session{Role: entities.ProfileRoleUser})
	var httpErr *echo.HTTPError
	if !errors.As(err, &httpErr) || httpErr.Code != http.StatusForbidden {
		t.Errorf("expected 403 for user role, got %v", err)
	}

	err = run(nil)
	if !errors.As(err, &httpErr) || httpErr.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without a session, got %v", err)
	}
}
