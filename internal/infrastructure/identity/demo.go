package identity

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/ceadash/cea-dashboard/internal/domain/entities"
	"github.com/ceadash/cea-dashboard/pkg/config"
)

// DemoProvider resolves every request to a fixed organization and profile.
// Used for local development and demos so the dashboard works without a
// login flow. Never enable it in production.
type DemoProvider struct {
	session *Session
}

// NewDemoProvider creates a provider pinned to the configured demo identity
func NewDemoProvider(cfg *config.DemoConfig) (*DemoProvider, error) {
	organizationID, err := uuid.Parse(cfg.OrganizationID)
	if err != nil {
		return nil, fmt.Errorf("invalid DEMO_ORGANIZATION_ID: %w", err)
	}
	profileID, err := uuid.Parse(cfg.ProfileID)
	if err != nil {
		return nil, fmt.Errorf("invalid DEMO_PROFILE_ID: %w", err)
	}

	return &DemoProvider{
		session: &Session{
			ProfileID:      profileID,
			OrganizationID: organizationID,
			Email:          "demo@cea.local",
			Role:           entities.ProfileRoleAdmin,
		},
	}, nil
}

// Resolve returns the fixed demo session regardless of the token
func (p *DemoProvider) Resolve(_ context.Context, _ string) (*Session, error) {
	return p.session, nil
}
