package call

import (
	"context"

	"github.com/google/uuid"

	"github.com/ceadash/cea-dashboard/internal/domain/entities"
	"github.com/ceadash/cea-dashboard/internal/domain/repositories"
	"github.com/ceadash/cea-dashboard/pkg/agent"
	"github.com/ceadash/cea-dashboard/pkg/email"
)

// Service defines the interface for the call lifecycle use case
type Service interface {
	// Schedule provisions an agent, persists the call and notifies the contact
	Schedule(ctx context.Context, input ScheduleInput) (*ScheduleOutput, error)

	// GetCall retrieves a call by ID within an organization
	GetCall(ctx context.Context, organizationID, callID uuid.UUID) (*entities.ScheduledCall, error)

	// ListCalls retrieves calls with filters
	ListCalls(ctx context.Context, organizationID uuid.UUID, filters repositories.CallFilters) ([]*entities.ScheduledCall, int64, error)

	// UpdateCall updates the editable fields of a scheduled call
	UpdateCall(ctx context.Context, input UpdateInput) (*entities.ScheduledCall, error)

	// CancelCall cancels a call that has not finished yet
	CancelCall(ctx context.Context, organizationID, callID, profileID uuid.UUID) error

	// DeleteCall removes a call record
	DeleteCall(ctx context.Context, organizationID, callID uuid.UUID) error

	// HandleEvent applies a provider webhook event to the call lifecycle
	HandleEvent(ctx context.Context, event Event) error

	// Stats aggregates call counters for the dashboard
	Stats(ctx context.Context, organizationID uuid.UUID) (*repositories.CallStats, error)
}

// AgentProvider provisions conversational agents for scheduled interviews
type AgentProvider interface {
	BuildAgentConfig(setup agent.CallSetup, correlationID string) agent.AgentConfig
	CreateAgent(ctx context.Context, cfg agent.AgentConfig) (string, error)
	GetAgentLink(ctx context.Context, agentID string) (string, error)
}

// Notifier sends scheduling notifications to contacts
type Notifier interface {
	AdminName() string
	SendSchedulingEmail(ctx context.Context, data email.SchedulingEmail) (string, error)
}

// Ensure Coordinator implements Service interface
var _ Service = (*Coordinator)(nil)
