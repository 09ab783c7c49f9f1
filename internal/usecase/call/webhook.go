package call

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	apperrors "github.com/ceadash/cea-dashboard/errors"
	"github.com/ceadash/cea-dashboard/internal/domain/entities"
)

// Event types delivered by the conversational-agent provider
const (
	EventCallStarted        = "call_started"
	EventCallEnded          = "call_ended"
	EventTranscriptionReady = "transcription_ready"
)

// Event is a normalized provider webhook event
type Event struct {
	Type            string
	CallID          string
	AgentID         string
	Timestamp       time.Time
	Status          string
	DurationSeconds *int
	Transcript      string
	Metadata        map[string]interface{}
}

// HandleEvent applies a provider webhook event to the call lifecycle. Events
// for unknown calls and unknown event types are acknowledged, not failed:
// the provider retries on errors and these deliveries can never succeed.
func (s *Coordinator) HandleEvent(ctx context.Context, event Event) error {
	callRecord, err := s.findEventCall(ctx, event)
	if err != nil {
		if errors.Is(err, entities.ErrCallNotFound) {
			s.logger.Info("webhook references unknown call",
				zap.String("event_type", event.Type),
				zap.String("call_id", event.CallID),
				zap.String("agent_id", event.AgentID))
			return apperrors.ErrUnmatchedCall(event.CallID)
		}
		return apperrors.ErrDBQueryFailed(err)
	}

	switch event.Type {
	case EventCallStarted:
		return s.handleCallStarted(ctx, callRecord)
	case EventCallEnded:
		return s.handleCallEnded(ctx, callRecord, event)
	case EventTranscriptionReady:
		return s.handleTranscriptionReady(ctx, callRecord, event)
	default:
		s.logger.Info("ignoring unknown webhook event",
			zap.String("event_type", event.Type),
			zap.String("call_id", event.CallID))
		return nil
	}
}

// findEventCall locates the call an event refers to, trying the provider's
// call id first and its agent id second
func (s *Coordinator) findEventCall(ctx context.Context, event Event) (*entities.ScheduledCall, error) {
	if event.CallID != "" {
		callRecord, err := s.calls.FindByCorrelation(ctx, event.CallID)
		if err == nil {
			return callRecord, nil
		}
		if !errors.Is(err, entities.ErrCallNotFound) {
			return nil, err
		}
	}
	if event.AgentID != "" && event.AgentID != event.CallID {
		return s.calls.FindByCorrelation(ctx, event.AgentID)
	}
	return nil, entities.ErrCallNotFound
}

func (s *Coordinator) handleCallStarted(ctx context.Context, callRecord *entities.ScheduledCall) error {
	ok, err := s.calls.Start(ctx, callRecord.OrganizationID, callRecord.ID)
	if err != nil {
		return apperrors.ErrDBQueryFailed(err)
	}
	if !ok {
		// Duplicate or late delivery; the call already moved on
		s.logger.Debug("call_started is a no-op",
			zap.String("call_id", callRecord.ID.String()),
			zap.String("status", string(callRecord.Status)))
		return nil
	}

	s.logger.Info("call started",
		zap.String("call_id", callRecord.ID.String()))
	return nil
}

func (s *Coordinator) handleCallEnded(ctx context.Context, callRecord *entities.ScheduledCall, event Event) error {
	status := entities.CallStatusCancelled
	if event.Status == "completed" {
		status = entities.CallStatusCompleted
	}

	var durationMinutes *int
	if event.DurationSeconds != nil {
		minutes := entities.MinutesFromSeconds(*event.DurationSeconds)
		durationMinutes = &minutes
	}

	ok, err := s.calls.Finish(ctx, callRecord.OrganizationID, callRecord.ID, status, durationMinutes)
	if err != nil {
		return apperrors.ErrDBQueryFailed(err)
	}
	if !ok {
		s.logger.Debug("call_ended is a no-op",
			zap.String("call_id", callRecord.ID.String()),
			zap.String("status", string(callRecord.Status)))
		return nil
	}

	activityType := entities.ActivityCallCompleted
	title := "Entrevista completada"
	if status == entities.CallStatusCancelled {
		activityType = entities.ActivityCallCancelled
		title = "Entrevista cancelada"
	}
	s.recordActivity(ctx, callRecord.OrganizationID, nil, activityType, title,
		map[string]interface{}{"call_id": callRecord.ID.String()})

	s.logger.Info("call ended",
		zap.String("call_id", callRecord.ID.String()),
		zap.String("status", string(status)))
	return nil
}

// handleTranscriptionReady stores the transcription, attaches its reference
// to the call, then derives a process at most once. Derivation failure is
// logged and swallowed: the transcription reference is already recorded and
// the provider must not retry.
func (s *Coordinator) handleTranscriptionReady(ctx context.Context, callRecord *entities.ScheduledCall, event Event) error {
	if callRecord.Transcription != nil {
		// Duplicate delivery; the call already carries its transcription
		s.logger.Debug("transcription_ready is a no-op",
			zap.String("call_id", callRecord.ID.String()),
			zap.String("transcription_id", callRecord.Transcription.TranscriptionID.String()))
		return nil
	}

	transcription := &entities.Transcription{
		ID:             uuid.New(),
		OrganizationID: callRecord.OrganizationID,
		CallID:         &callRecord.CorrelationID,
		Content:        event.Transcript,
	}
	if event.Metadata != nil {
		if b, err := json.Marshal(event.Metadata); err == nil {
			transcription.Metadata = datatypes.JSON(b)
		}
	}
	if err := s.transcriptions.Create(ctx, transcription); err != nil {
		return apperrors.ErrDBQueryFailed(err)
	}

	if err := s.calls.AttachTranscription(ctx, callRecord.OrganizationID, callRecord.ID, entities.TranscriptionData{
		TranscriptionID: transcription.ID,
		Content:         event.Transcript,
		ProcessedAt:     time.Now().UTC(),
	}); err != nil {
		return apperrors.ErrDBQueryFailed(err)
	}

	if callRecord.HasProcess() {
		s.logger.Debug("process already derived",
			zap.String("call_id", callRecord.ID.String()))
		return nil
	}

	if err := s.deriveProcess(ctx, callRecord, transcription); err != nil {
		s.logger.Warn("process derivation failed",
			zap.String("call_id", callRecord.ID.String()),
			zap.String("transcription_id", transcription.ID.String()),
			zap.Error(err))
	}
	return nil
}

// deriveProcess builds a process from the transcription and links it to the
// call. The conditional link is the at-most-once gate: when a racing delivery
// already linked a process, the freshly created one is removed again.
func (s *Coordinator) deriveProcess(ctx context.Context, callRecord *entities.ScheduledCall, transcription *entities.Transcription) error {
	process := BuildProcess(callRecord, transcription)
	if err := s.processes.Create(ctx, process); err != nil {
		return fmt.Errorf("create process: %w", err)
	}

	linked, err := s.calls.LinkProcess(ctx, callRecord.OrganizationID, callRecord.ID, process.ID)
	if err != nil {
		return fmt.Errorf("link process: %w", err)
	}
	if !linked {
		if err := s.processes.Delete(ctx, callRecord.OrganizationID, process.ID); err != nil {
			s.logger.Warn("failed to remove duplicate derived process",
				zap.String("process_id", process.ID.String()),
				zap.Error(err))
		}
		s.logger.Info("process already linked by a concurrent delivery",
			zap.String("call_id", callRecord.ID.String()))
		return nil
	}

	s.recordActivity(ctx, callRecord.OrganizationID, nil, entities.ActivityProcessCreated,
		fmt.Sprintf("Proceso derivado: %s", process.Name),
		map[string]interface{}{
			"call_id":    callRecord.ID.String(),
			"process_id": process.ID.String(),
		})

	s.logger.Info("process derived",
		zap.String("call_id", callRecord.ID.String()),
		zap.String("process_id", process.ID.String()))
	return nil
}
