package call

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/ceadash/cea-dashboard/errors"
	"github.com/ceadash/cea-dashboard/internal/domain/entities"
)

func scheduleCall(t *testing.T, env *testEnv) *entities.ScheduledCall {
	t.Helper()
	out, err := env.coordinator.Schedule(context.Background(), env.scheduleInput())
	if err != nil {
		t.Fatalf("Schedule returned error: %v", err)
	}
	return out.Call
}

func intPtr(v int) *int { return &v }

func TestHandleEvent_CallStarted(t *testing.T) {
	env := newTestEnv()
	callRecord := scheduleCall(t, env)

	event := Event{Type: EventCallStarted, CallID: callRecord.CorrelationID, Timestamp: time.Now()}
	if err := env.coordinator.HandleEvent(context.Background(), event); err != nil {
		t.Fatalf("HandleEvent returned error: %v", err)
	}
	if got := env.calls.get(callRecord.ID).Status; got != entities.CallStatusInProgress {
		t.Errorf("expected in_progress, got %s", got)
	}

	// Duplicate delivery is acknowledged without changing anything
	if err := env.coordinator.HandleEvent(context.Background(), event); err != nil {
		t.Fatalf("duplicate call_started returned error: %v", err)
	}
	if got := env.calls.get(callRecord.ID).Status; got != entities.CallStatusInProgress {
		t.Errorf("expected in_progress after duplicate, got %s", got)
	}
}

func TestHandleEvent_CallStartedAfterTerminal(t *testing.T) {
	env := newTestEnv()
	callRecord := scheduleCall(t, env)
	if err := env.coordinator.CancelCall(context.Background(), env.orgID, callRecord.ID, env.profileID); err != nil {
		t.Fatalf("CancelCall returned error: %v", err)
	}

	event := Event{Type: EventCallStarted, CallID: callRecord.CorrelationID}
	if err := env.coordinator.HandleEvent(context.Background(), event); err != nil {
		t.Fatalf("late call_started returned error: %v", err)
	}
	if got := env.calls.get(callRecord.ID).Status; got != entities.CallStatusCancelled {
		t.Errorf("terminal status must not change, got %s", got)
	}
}

func TestHandleEvent_CallEnded(t *testing.T) {
	cases := []struct {
		name        string
		eventStatus string
		seconds     *int
		wantStatus  entities.CallStatus
		wantMinutes *int
	}{
		{"completed rounds up", "completed", intPtr(125), entities.CallStatusCompleted, intPtr(2)},
		{"completed rounds down", "completed", intPtr(89), entities.CallStatusCompleted, intPtr(1)},
		{"failed becomes cancelled", "failed", intPtr(10), entities.CallStatusCancelled, intPtr(0)},
		{"no duration", "completed", nil, entities.CallStatusCompleted, intPtr(30)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			env := newTestEnv()
			callRecord := scheduleCall(t, env)

			event := Event{
				Type:            EventCallEnded,
				CallID:          callRecord.CorrelationID,
				Status:          tc.eventStatus,
				DurationSeconds: tc.seconds,
			}
			if err := env.coordinator.HandleEvent(context.Background(), event); err != nil {
				t.Fatalf("HandleEvent returned error: %v", err)
			}

			stored := env.calls.get(callRecord.ID)
			if stored.Status != tc.wantStatus {
				t.Errorf("expected status %s, got %s", tc.wantStatus, stored.Status)
			}
			if tc.wantMinutes == nil {
				if stored.DurationMinutes != nil {
					t.Errorf("expected no duration, got %v", *stored.DurationMinutes)
				}
			} else if stored.DurationMinutes == nil || *stored.DurationMinutes != *tc.wantMinutes {
				t.Errorf("expected duration %d, got %v", *tc.wantMinutes, stored.DurationMinutes)
			}
		})
	}
}

func TestHandleEvent_CallEndedMatchesByAgentID(t *testing.T) {
	env := newTestEnv()
	env.agents.agentID = "agent-by-id"
	callRecord := scheduleCall(t, env)

	event := Event{
		Type:    EventCallEnded,
		AgentID: "agent-by-id",
		Status:  "completed",
	}
	if err := env.coordinator.HandleEvent(context.Background(), event); err != nil {
		t.Fatalf("HandleEvent returned error: %v", err)
	}
	if got := env.calls.get(callRecord.ID).Status; got != entities.CallStatusCompleted {
		t.Errorf("expected completed, got %s", got)
	}
}

func TestHandleEvent_UnmatchedCall(t *testing.T) {
	env := newTestEnv()

	err := env.coordinator.HandleEvent(context.Background(), Event{
		Type:   EventCallStarted,
		CallID: "conv_does_not_exist",
	})
	assertAppCode(t, err, apperrors.ErrorCode_UNMATCHED_CALL)
}

func TestHandleEvent_UnknownTypeIsAcknowledged(t *testing.T) {
	env := newTestEnv()
	callRecord := scheduleCall(t, env)

	err := env.coordinator.HandleEvent(context.Background(), Event{
		Type:   "agent_updated",
		CallID: callRecord.CorrelationID,
	})
	if err != nil {
		t.Fatalf("unknown event type must be acknowledged, got %v", err)
	}
}

func TestHandleEvent_TranscriptionReady(t *testing.T) {
	env := newTestEnv()
	callRecord := scheduleCall(t, env)

	transcript := "Primero recibimos la solicitud del cliente. Luego validamos los documentos. " +
		"Después generamos la orden. El problema es la demora en la aprobación. Finalmente se entrega el servicio."
	event := Event{
		Type:       EventTranscriptionReady,
		CallID:     callRecord.CorrelationID,
		Transcript: transcript,
		Metadata:   map[string]interface{}{"language": "es"},
	}
	if err := env.coordinator.HandleEvent(context.Background(), event); err != nil {
		t.Fatalf("HandleEvent returned error: %v", err)
	}

	if env.trans.count() != 1 {
		t.Fatalf("expected 1 transcription, got %d", env.trans.count())
	}
	if env.processes.count() != 1 {
		t.Fatalf("expected 1 derived process, got %d", env.processes.count())
	}

	stored := env.calls.get(callRecord.ID)
	if stored.Transcription == nil {
		t.Fatal("expected transcription reference on the call")
	}
	if stored.Transcription.Content != transcript {
		t.Error("transcription content mismatch")
	}
	if stored.ProcessID == nil {
		t.Fatal("expected a process linked to the call")
	}

	process, err := env.processes.FindByID(context.Background(), env.orgID, *stored.ProcessID)
	if err != nil {
		t.Fatalf("derived process not found: %v", err)
	}
	if process.EfficiencyScore == nil {
		t.Error("expected an efficiency score")
	}
	if process.CreatedBy != callRecord.CreatedBy {
		t.Error("expected created_by carried over from the call")
	}
}

func TestHandleEvent_TranscriptionReadyDerivesAtMostOnce(t *testing.T) {
	env := newTestEnv()
	callRecord := scheduleCall(t, env)

	event := Event{
		Type:       EventTranscriptionReady,
		CallID:     callRecord.CorrelationID,
		Transcript: "Primero se registra la queja. Luego se asigna un técnico.",
	}
	if err := env.coordinator.HandleEvent(context.Background(), event); err != nil {
		t.Fatalf("first delivery returned error: %v", err)
	}
	firstProcessID := env.calls.get(callRecord.ID).ProcessID
	if firstProcessID == nil {
		t.Fatal("expected a linked process after the first delivery")
	}

	firstAttached := env.calls.get(callRecord.ID).Transcription
	if firstAttached == nil {
		t.Fatal("expected a transcription reference after the first delivery")
	}

	// Redelivery is a no-op: still one transcription row, one process, and
	// the attached reference unchanged
	if err := env.coordinator.HandleEvent(context.Background(), event); err != nil {
		t.Fatalf("second delivery returned error: %v", err)
	}
	if env.trans.count() != 1 {
		t.Errorf("expected exactly 1 transcription row after duplicate delivery, got %d", env.trans.count())
	}
	if env.processes.count() != 1 {
		t.Errorf("expected 1 process after redelivery, got %d", env.processes.count())
	}
	if got := env.calls.get(callRecord.ID).ProcessID; got == nil || *got != *firstProcessID {
		t.Errorf("linked process changed across deliveries: %v vs %v", got, firstProcessID)
	}
	if got := env.calls.get(callRecord.ID).Transcription; got == nil || got.TranscriptionID != firstAttached.TranscriptionID {
		t.Errorf("transcription reference changed across deliveries: %v vs %v", got, firstAttached)
	}
}

func TestDeriveProcess_ConcurrentLinkRemovesOrphan(t *testing.T) {
	env := newTestEnv()
	callRecord := scheduleCall(t, env)

	// Another delivery linked a process between this delivery's read and its
	// link attempt
	winner := uuid.New()
	if linked, err := env.calls.LinkProcess(context.Background(), env.orgID, callRecord.ID, winner); err != nil || !linked {
		t.Fatalf("pre-link failed: linked=%v err=%v", linked, err)
	}

	transcription := &entities.Transcription{
		ID:             uuid.New(),
		OrganizationID: env.orgID,
		Content:        "Primero se recibe el pago.",
	}
	if err := env.coordinator.deriveProcess(context.Background(), callRecord, transcription); err != nil {
		t.Fatalf("deriveProcess returned error: %v", err)
	}

	if env.processes.count() != 0 {
		t.Errorf("losing process must be removed, %d left", env.processes.count())
	}
	if got := env.calls.get(callRecord.ID).ProcessID; got == nil || *got != winner {
		t.Errorf("winner link must be untouched, got %v", got)
	}
}

func TestHandleEvent_DerivationFailureIsSwallowed(t *testing.T) {
	env := newTestEnv()
	callRecord := scheduleCall(t, env)
	env.processes.createErr = context.DeadlineExceeded

	event := Event{
		Type:       EventTranscriptionReady,
		CallID:     callRecord.CorrelationID,
		Transcript: "Primero se atiende al cliente.",
	}
	if err := env.coordinator.HandleEvent(context.Background(), event); err != nil {
		t.Fatalf("derivation failure must not surface, got %v", err)
	}
	if env.trans.count() != 1 {
		t.Errorf("transcription must still be stored, got %d", env.trans.count())
	}
	if env.calls.get(callRecord.ID).ProcessID != nil {
		t.Error("no process should be linked after a derivation failure")
	}
}
