package call

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	apperrors "github.com/ceadash/cea-dashboard/errors"
	"github.com/ceadash/cea-dashboard/internal/domain/entities"
	"github.com/ceadash/cea-dashboard/internal/domain/repositories"
	"github.com/ceadash/cea-dashboard/pkg/agent"
	"github.com/ceadash/cea-dashboard/pkg/email"
)

// Coordinator drives the scheduled-call lifecycle: scheduling, webhook
// transitions and process derivation
type Coordinator struct {
	calls            repositories.ScheduledCallRepository
	contacts         repositories.ContactRepository
	transcriptions   repositories.TranscriptionRepository
	processes        repositories.ProcessRepository
	activities       repositories.ActivityRepository
	organizations    repositories.OrganizationRepository
	agents           AgentProvider
	notifier         Notifier
	logger           *zap.Logger
	provisionTimeout time.Duration
}

// NewCoordinator creates a new call coordinator
func NewCoordinator(
	calls repositories.ScheduledCallRepository,
	contacts repositories.ContactRepository,
	transcriptions repositories.TranscriptionRepository,
	processes repositories.ProcessRepository,
	activities repositories.ActivityRepository,
	organizations repositories.OrganizationRepository,
	agents AgentProvider,
	notifier Notifier,
	logger *zap.Logger,
	provisionTimeout time.Duration,
) *Coordinator {
	if provisionTimeout <= 0 {
		provisionTimeout = 30 * time.Second
	}
	return &Coordinator{
		calls:            calls,
		contacts:         contacts,
		transcriptions:   transcriptions,
		processes:        processes,
		activities:       activities,
		organizations:    organizations,
		agents:           agents,
		notifier:         notifier,
		logger:           logger,
		provisionTimeout: provisionTimeout,
	}
}

// ScheduleInput represents input for scheduling an interview call
type ScheduleInput struct {
	OrganizationID    uuid.UUID
	ProfileID         uuid.UUID
	ContactID         uuid.UUID
	ScheduledDate     time.Time
	DurationMinutes   int
	ProcessType       string
	Industry          string
	Objectives        []string
	SpecificQuestions []string
	Language          string
	Notes             *string
}

// ScheduleStatus values reported by Schedule
const (
	ScheduleStatusOK          = "scheduled"
	ScheduleStatusEmailFailed = "scheduled_email_failed"
)

// ScheduleOutput is the result of scheduling a call. Status is
// scheduled_email_failed when the call was persisted but the notification
// could not be delivered.
type ScheduleOutput struct {
	Call    *entities.ScheduledCall
	Status  string
	EmailID string
}

// Schedule provisions an agent, persists the call and notifies the contact.
// Agent provisioning failure aborts the operation with nothing persisted;
// a notification failure does not.
func (s *Coordinator) Schedule(ctx context.Context, input ScheduleInput) (*ScheduleOutput, error) {
	contact, err := s.contacts.FindByID(ctx, input.OrganizationID, input.ContactID)
	if err != nil {
		if errors.Is(err, entities.ErrContactNotFound) {
			return nil, apperrors.ErrContactNotFound(input.ContactID.String())
		}
		return nil, apperrors.ErrDBQueryFailed(err)
	}
	if !contact.IsActive() {
		return nil, apperrors.ErrContactInactive(contact.ID.String())
	}

	if input.ProcessType == "" {
		return nil, apperrors.ErrValidation("process_type is required")
	}
	if input.Industry == "" {
		return nil, apperrors.ErrValidation("industry is required")
	}
	if input.ScheduledDate.IsZero() {
		return nil, apperrors.ErrValidation("scheduled_date is required")
	}

	callRecord := entities.NewScheduledCall(input.OrganizationID, input.ContactID, input.ProfileID, input.ScheduledDate)
	callRecord.Notes = input.Notes
	if input.DurationMinutes > 0 {
		callRecord.DurationMinutes = &input.DurationMinutes
	}

	setup := agent.CallSetup{
		ContactName:       contact.Name,
		ContactEmail:      contact.Email,
		ProcessType:       input.ProcessType,
		Industry:          input.Industry,
		Objectives:        input.Objectives,
		SpecificQuestions: input.SpecificQuestions,
		DurationMinutes:   input.DurationMinutes,
		Language:          input.Language,
	}
	if contact.Company != nil {
		setup.ContactCompany = *contact.Company
	}
	setup.ApplyTemplate()

	agentID, link, err := s.provisionAgent(ctx, setup, callRecord.CorrelationID)
	if err != nil {
		return nil, apperrors.ErrAgentProvisioning(err)
	}
	callRecord.AgentID = &agentID
	callRecord.BotConnectionURL = &link

	if err := s.calls.Create(ctx, callRecord); err != nil {
		return nil, apperrors.ErrDBQueryFailed(err)
	}

	out := &ScheduleOutput{Call: callRecord, Status: ScheduleStatusOK}

	emailID, err := s.notifier.SendSchedulingEmail(ctx, email.SchedulingEmail{
		To:               contact.Email,
		ContactName:      contact.Name,
		ScheduledDate:    input.ScheduledDate,
		AdminName:        s.notifier.AdminName(),
		BotConnectionURL: link,
		ProcessType:      input.ProcessType,
		DurationMinutes:  input.DurationMinutes,
		CC:               s.notificationCCs(ctx, input.OrganizationID),
	})
	if err != nil {
		// The call stays persisted; the caller is told the email failed
		s.logger.Warn("scheduling notification failed",
			zap.String("call_id", callRecord.ID.String()),
			zap.String("contact_email", contact.Email),
			zap.Error(err))
		out.Status = ScheduleStatusEmailFailed
	} else {
		out.EmailID = emailID
		if err := s.calls.MarkEmailSent(ctx, callRecord.OrganizationID, callRecord.ID, emailID); err != nil {
			s.logger.Warn("failed to mark email sent",
				zap.String("call_id", callRecord.ID.String()),
				zap.Error(err))
		} else {
			callRecord.EmailSent = true
			callRecord.EmailID = &emailID
		}
	}

	s.recordActivity(ctx, input.OrganizationID, &input.ProfileID, entities.ActivityCallScheduled,
		fmt.Sprintf("Entrevista programada con %s", contact.Name),
		map[string]interface{}{
			"call_id":      callRecord.ID.String(),
			"contact_id":   contact.ID.String(),
			"process_type": input.ProcessType,
		})

	return out, nil
}

// provisionAgent creates the agent and fetches its connection link, retrying
// transient failures until the provisioning timeout expires
func (s *Coordinator) provisionAgent(ctx context.Context, setup agent.CallSetup, correlationID string) (string, string, error) {
	pctx, cancel := context.WithTimeout(ctx, s.provisionTimeout)
	defer cancel()

	cfg := s.agents.BuildAgentConfig(setup, correlationID)

	var agentID string
	operation := func() error {
		id, err := s.agents.CreateAgent(pctx, cfg)
		if err != nil {
			return err
		}
		agentID = id
		return nil
	}
	if err := backoff.Retry(operation, backoff.WithContext(backoff.NewExponentialBackOff(), pctx)); err != nil {
		return "", "", fmt.Errorf("create agent: %w", err)
	}

	link, err := s.agents.GetAgentLink(pctx, agentID)
	if err != nil {
		return "", "", fmt.Errorf("get agent link: %w", err)
	}
	return agentID, link, nil
}

// notificationCCs reads the organization-configured CC addresses. A missing
// organization or malformed settings yields no CCs, never an error.
func (s *Coordinator) notificationCCs(ctx context.Context, organizationID uuid.UUID) []string {
	org, err := s.organizations.FindByID(ctx, organizationID)
	if err != nil {
		s.logger.Warn("failed to load organization settings",
			zap.String("organization_id", organizationID.String()),
			zap.Error(err))
		return nil
	}
	return org.NotificationCCEmails()
}

// recordActivity writes a dashboard feed entry. Best-effort: failures are
// logged and swallowed.
func (s *Coordinator) recordActivity(ctx context.Context, organizationID uuid.UUID, userID *uuid.UUID, activityType, title string, metadata map[string]interface{}) {
	activity := &entities.Activity{
		OrganizationID: organizationID,
		UserID:         userID,
		ActivityType:   activityType,
		Title:          title,
	}
	if metadata != nil {
		if b, err := json.Marshal(metadata); err == nil {
			activity.Metadata = datatypes.JSON(b)
		}
	}
	if err := s.activities.Create(ctx, activity); err != nil {
		s.logger.Warn("failed to record activity",
			zap.String("activity_type", activityType),
			zap.Error(err))
	}
}

// GetCall retrieves a call by ID within an organization
func (s *Coordinator) GetCall(ctx context.Context, organizationID, callID uuid.UUID) (*entities.ScheduledCall, error) {
	callRecord, err := s.calls.FindByID(ctx, organizationID, callID)
	if err != nil {
		if errors.Is(err, entities.ErrCallNotFound) {
			return nil, apperrors.ErrCallNotFound(callID.String())
		}
		return nil, apperrors.ErrDBQueryFailed(err)
	}
	return callRecord, nil
}

// ListCalls retrieves calls with filters
func (s *Coordinator) ListCalls(ctx context.Context, organizationID uuid.UUID, filters repositories.CallFilters) ([]*entities.ScheduledCall, int64, error) {
	calls, total, err := s.calls.List(ctx, organizationID, filters)
	if err != nil {
		return nil, 0, apperrors.ErrDBQueryFailed(err)
	}
	return calls, total, nil
}

// UpdateInput represents the editable fields of a scheduled call
type UpdateInput struct {
	OrganizationID uuid.UUID
	CallID         uuid.UUID
	ScheduledDate  *time.Time
	Notes          *string
}

// UpdateCall updates the editable fields of a scheduled call
func (s *Coordinator) UpdateCall(ctx context.Context, input UpdateInput) (*entities.ScheduledCall, error) {
	callRecord, err := s.GetCall(ctx, input.OrganizationID, input.CallID)
	if err != nil {
		return nil, err
	}

	if input.ScheduledDate != nil {
		callRecord.ScheduledDate = *input.ScheduledDate
	}
	if input.Notes != nil {
		callRecord.Notes = input.Notes
	}

	if err := s.calls.Update(ctx, callRecord); err != nil {
		return nil, apperrors.ErrDBQueryFailed(err)
	}
	return callRecord, nil
}

// CancelCall cancels a call that has not finished yet
func (s *Coordinator) CancelCall(ctx context.Context, organizationID, callID, profileID uuid.UUID) error {
	callRecord, err := s.GetCall(ctx, organizationID, callID)
	if err != nil {
		return err
	}

	ok, err := s.calls.Finish(ctx, organizationID, callID, entities.CallStatusCancelled, nil)
	if err != nil {
		return apperrors.ErrDBQueryFailed(err)
	}
	if !ok {
		return apperrors.ErrInvalidTransition(callID.String(), string(callRecord.Status), "cancel")
	}

	s.recordActivity(ctx, organizationID, &profileID, entities.ActivityCallCancelled,
		"Entrevista cancelada",
		map[string]interface{}{"call_id": callID.String()})
	return nil
}

// DeleteCall removes a call record
func (s *Coordinator) DeleteCall(ctx context.Context, organizationID, callID uuid.UUID) error {
	if _, err := s.GetCall(ctx, organizationID, callID); err != nil {
		return err
	}
	if err := s.calls.Delete(ctx, organizationID, callID); err != nil {
		return apperrors.ErrDBQueryFailed(err)
	}
	return nil
}

// Stats aggregates call counters for the dashboard
func (s *Coordinator) Stats(ctx context.Context, organizationID uuid.UUID) (*repositories.CallStats, error) {
	stats, err := s.calls.Stats(ctx, organizationID)
	if err != nil {
		return nil, apperrors.ErrDBQueryFailed(err)
	}
	return stats, nil
}
