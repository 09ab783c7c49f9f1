package identity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	apperrors "github.com/ceadash/cea-dashboard/errors"
	"github.com/ceadash/cea-dashboard/internal/domain/entities"
	"github.com/ceadash/cea-dashboard/pkg/config"
)

// SessionClaims are the JWT claims issued for dashboard sessions
type SessionClaims struct {
	OrganizationID string `json:"org_id"`
	Email          string `json:"email"`
	Role           string `json:"role"`
	jwt.RegisteredClaims
}

// JWTProvider resolves sessions from signed JWTs
type JWTProvider struct {
	secret []byte
	expiry time.Duration
}

// NewJWTProvider creates a new JWT session provider
func NewJWTProvider(cfg *config.JWTConfig) *JWTProvider {
	return &JWTProvider{
		secret: []byte(cfg.Secret),
		expiry: cfg.AccessExpiry,
	}
}

// Resolve validates the token signature and expiry and extracts the session
func (p *JWTProvider) Resolve(_ context.Context, token string) (*Session, error) {
	claims := &SessionClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return p.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperrors.ErrTokenExpired()
		}
		return nil, apperrors.ErrInvalidToken()
	}
	if !parsed.Valid {
		return nil, apperrors.ErrInvalidToken()
	}

	profileID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, apperrors.ErrInvalidToken().WithDetail("claim", "sub")
	}
	organizationID, err := uuid.Parse(claims.OrganizationID)
	if err != nil {
		return nil, apperrors.ErrInvalidToken().WithDetail("claim", "org_id")
	}

	role := entities.ProfileRole(claims.Role)
	if role != entities.ProfileRoleAdmin {
		role = entities.ProfileRoleUser
	}

	return &Session{
		ProfileID:      profileID,
		OrganizationID: organizationID,
		Email:          claims.Email,
		Role:           role,
	}, nil
}

// Issue signs a session token. Used by the demo login endpoint and tests.
func (p *JWTProvider) Issue(session *Session) (string, error) {
	now := time.Now().UTC()
	claims := &SessionClaims{
		OrganizationID: session.OrganizationID.String(),
		Email:          session.Email,
		Role:           string(session.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   session.ProfileID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(p.expiry)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(p.secret)
}
