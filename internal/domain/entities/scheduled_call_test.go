package entities

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func newTestCall() *ScheduledCall {
	return NewScheduledCall(uuid.New(), uuid.New(), uuid.New(), time.Now().Add(24*time.Hour))
}

func TestNewScheduledCall_Defaults(t *testing.T) {
	call := newTestCall()
	if call.Status != CallStatusScheduled {
		t.Fatalf("expected status scheduled got %s", call.Status)
	}
	if call.CorrelationID == "" {
		t.Fatalf("expected a correlation id")
	}
	if _, err := uuid.Parse(call.CorrelationID); err != nil {
		t.Fatalf("correlation id is not a uuid: %v", err)
	}
}

func TestCorrelationIDs_Unique(t *testing.T) {
	a := newTestCall()
	b := newTestCall()
	if a.CorrelationID == b.CorrelationID {
		t.Fatalf("two calls share a correlation id")
	}
}

func TestCanStart(t *testing.T) {
	call := newTestCall()
	if !call.CanStart() {
		t.Fatalf("scheduled call should be startable")
	}
	call.Start()
	if call.Status != CallStatusInProgress {
		t.Fatalf("expected in_progress got %s", call.Status)
	}
	if call.CanStart() {
		t.Fatalf("in_progress call should not be startable again")
	}
}

func TestEnd_CompletedWithDuration(t *testing.T) {
	call := newTestCall()
	call.Start()

	seconds := 125
	call.End("completed", &seconds)

	if call.Status != CallStatusCompleted {
		t.Fatalf("expected completed got %s", call.Status)
	}
	if call.DurationMinutes == nil || *call.DurationMinutes != 2 {
		t.Fatalf("expected 2 minutes got %v", call.DurationMinutes)
	}
}

func TestEnd_NonCompletedStatusCancels(t *testing.T) {
	call := newTestCall()
	call.Start()
	call.End("failed", nil)
	if call.Status != CallStatusCancelled {
		t.Fatalf("expected cancelled got %s", call.Status)
	}
	if call.DurationMinutes != nil {
		t.Fatalf("duration should stay unset without seconds")
	}
}

func TestEnd_TerminalIsNoOp(t *testing.T) {
	call := newTestCall()
	call.Start()
	seconds := 600
	call.End("completed", &seconds)

	// A duplicate delivery must not move the status or overwrite the duration
	other := 60
	call.End("failed", &other)
	if call.Status != CallStatusCompleted {
		t.Fatalf("terminal status changed to %s", call.Status)
	}
	if *call.DurationMinutes != 10 {
		t.Fatalf("duration overwritten: %d", *call.DurationMinutes)
	}
}

func TestIsTerminal(t *testing.T) {
	cases := []struct {
		status   CallStatus
		terminal bool
	}{
		{CallStatusScheduled, false},
		{CallStatusInProgress, false},
		{CallStatusCompleted, true},
		{CallStatusCancelled, true},
	}
	for _, tc := range cases {
		if tc.status.IsTerminal() != tc.terminal {
			t.Fatalf("IsTerminal(%s) = %v", tc.status, !tc.terminal)
		}
	}
}

func TestMinutesFromSeconds_RoundHalfUp(t *testing.T) {
	cases := []struct {
		seconds int
		minutes int
	}{
		{0, 0},
		{29, 0},
		{30, 1},
		{59, 1},
		{60, 1},
		{89, 1},
		{90, 2},
		{125, 2},
		{3600, 60},
	}
	for _, tc := range cases {
		if got := MinutesFromSeconds(tc.seconds); got != tc.minutes {
			t.Fatalf("MinutesFromSeconds(%d) = %d, want %d", tc.seconds, got, tc.minutes)
		}
	}
}

func TestAttachTranscription(t *testing.T) {
	call := newTestCall()
	id := uuid.New()
	call.AttachTranscription(id, "hola")

	if call.Transcription == nil {
		t.Fatalf("transcription not attached")
	}
	if call.Transcription.TranscriptionID != id {
		t.Fatalf("wrong transcription id")
	}
	if call.Transcription.ProcessedAt.IsZero() {
		t.Fatalf("processed_at not set")
	}
}
