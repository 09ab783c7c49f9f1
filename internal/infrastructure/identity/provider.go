package identity

import (
	"context"

	"github.com/google/uuid"

	"github.com/ceadash/cea-dashboard/internal/domain/entities"
)

// Session is the resolved caller identity. Every tenant-scoped operation is
// keyed by Session.OrganizationID; handlers never accept an organization id
// from the request.
type Session struct {
	ProfileID      uuid.UUID
	OrganizationID uuid.UUID
	Email          string
	Role           entities.ProfileRole
}

// IsAdmin reports whether the session carries the admin role
func (s *Session) IsAdmin() bool {
	return s.Role == entities.ProfileRoleAdmin
}

// Provider resolves a bearer token into a session
type Provider interface {
	Resolve(ctx context.Context, token string) (*Session, error)
}
