package identity

import (
	"context"
	stdErrors "errors"
	"testing"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/ceadash/cea-dashboard/errors"
	"github.com/ceadash/cea-dashboard/internal/domain/entities"
	"github.com/ceadash/cea-dashboard/pkg/config"
)

func newTestProvider(expiry time.Duration) *JWTProvider {
	return NewJWTProvider(&config.JWTConfig{
		Secret:       "test-secret-at-least-32-characters!",
		AccessExpiry: expiry,
	})
}

func TestJWTProvider_IssueAndResolve(t *testing.T) {
	provider := newTestProvider(time.Hour)
	session := &Session{
		ProfileID:      uuid.New(),
		OrganizationID: uuid.New(),
		Email:          "maria@cea.gob.mx",
		Role:           entities.ProfileRoleAdmin,
	}

	token, err := provider.Issue(session)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	resolved, err := provider.Resolve(context.Background(), token)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if resolved.ProfileID != session.ProfileID {
		t.Errorf("profile id mismatch: %s vs %s", resolved.ProfileID, session.ProfileID)
	}
	if resolved.OrganizationID != session.OrganizationID {
		t.Errorf("organization id mismatch: %s vs %s", resolved.OrganizationID, session.OrganizationID)
	}
	if resolved.Email != "maria@cea.gob.mx" {
		t.Errorf("unexpected email %q", resolved.Email)
	}
	if !resolved.IsAdmin() {
		t.Error("expected admin session")
	}
}

func TestJWTProvider_UnknownRoleDowngrades(t *testing.T) {
	provider := newTestProvider(time.Hour)
	token, err := provider.Issue(&Session{
		ProfileID:      uuid.New(),
		OrganizationID: uuid.New(),
		Role:           entities.ProfileRole("superuser"),
	})
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	resolved, err := provider.Resolve(context.Background(), token)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if resolved.Role != entities.ProfileRoleUser {
		t.Errorf("expected unknown role to resolve as user, got %s", resolved.Role)
	}
}

func TestJWTProvider_ExpiredToken(t *testing.T) {
	provider := newTestProvider(-time.Minute)
	token, err := provider.Issue(&Session{
		ProfileID:      uuid.New(),
		OrganizationID: uuid.New(),
	})
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	_, err = provider.Resolve(context.Background(), token)
	assertIdentityCode(t, err, apperrors.ErrorCode_AUTH_TOKEN_EXPIRED)
}

func TestJWTProvider_InvalidTokens(t *testing.T) {
	provider := newTestProvider(time.Hour)

	cases := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"garbage", "not-a-jwt"},
		{"wrong secret", mustIssue(t, NewJWTProvider(&config.JWTConfig{
			Secret:       "a-different-secret-entirely-here!!",
			AccessExpiry: time.Hour,
		}))},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := provider.Resolve(context.Background(), tc.token)
			assertIdentityCode(t, err, apperrors.ErrorCode_AUTH_INVALID_TOKEN)
		})
	}
}

func mustIssue(t *testing.T, provider *JWTProvider) string {
	t.Helper()
	token, err := provider.Issue(&Session{ProfileID: uuid.New(), OrganizationID: uuid.New()})
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}
	return token
}

func TestDemoProvider(t *testing.T) {
	orgID := uuid.New()
	profileID := uuid.New()
	provider, err := NewDemoProvider(&config.DemoConfig{
		OrganizationID: orgID.String(),
		ProfileID:      profileID.String(),
	})
	if err != nil {
		t.Fatalf("NewDemoProvider returned error: %v", err)
	}

	// Any token, including none at all, resolves to the demo identity
	for _, token := range []string{"", "anything"} {
		session, err := provider.Resolve(context.Background(), token)
		if err != nil {
			t.Fatalf("Resolve(%q) returned error: %v", token, err)
		}
		if session.OrganizationID != orgID || session.ProfileID != profileID {
			t.Errorf("unexpected demo session %+v", session)
		}
		if !session.IsAdmin() {
			t.Error("demo session must be admin")
		}
	}
}

func TestDemoProvider_InvalidConfig(t *testing.T) {
	_, err := NewDemoProvider(&config.DemoConfig{OrganizationID: "nope", ProfileID: uuid.NewString()})
	if err == nil {
		t.Error("expected error for invalid organization id")
	}
	_, err = NewDemoProvider(&config.DemoConfig{OrganizationID: uuid.NewString(), ProfileID: "nope"})
	if err == nil {
		t.Error("expected error for invalid profile id")
	}
}

func assertIdentityCode(t *testing.T, err error, code apperrors.ErrorCode) {
	t.Helper()
	if err == nil {
		t.Fatal("expected an error")
	}
	var appErr apperrors.AppError
	if !stdErrors.As(err, &appErr) {
		t.Fatalf("expected AppError, got %T: %v", err, err)
	}
	if appErr.Code != code {
		t.Fatalf("expected code %v, got %v", code, appErr.Code)
	}
}
