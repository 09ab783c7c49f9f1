package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ceadash/cea-dashboard/internal/domain/entities"
)

// CallFilters represents filter options for listing scheduled calls
type CallFilters struct {
	Status    *entities.CallStatus
	From      *time.Time
	To        *time.Time
	Search    string // matched against notes
	Limit     int
	Offset    int
	SortOrder string // "asc", "desc" on scheduled_date
}

// CallStats aggregates scheduled-call counters for an organization
type CallStats struct {
	Total           int64
	Scheduled       int64
	InProgress      int64
	Completed       int64
	Cancelled       int64
	Upcoming        int64
	AverageDuration int
}

// ScheduledCallRepository defines tenant-scoped access to scheduled calls.
// Webhook correlation lookup is the single exception to org filtering: events
// carry no tenant, so the call is located by its globally unique correlation
// id and every subsequent mutation is keyed by id plus organization id.
type ScheduledCallRepository interface {
	// Create persists a new scheduled call
	Create(ctx context.Context, call *entities.ScheduledCall) error

	// FindByID retrieves a call by id within an organization
	FindByID(ctx context.Context, organizationID, id uuid.UUID) (*entities.ScheduledCall, error)

	// FindByCorrelation locates the call a webhook event refers to. Matches
	// the correlation id first, then the remote agent id, then falls back to
	// a substring match on the connection URL for providers that echo
	// neither identifier back.
	FindByCorrelation(ctx context.Context, callID string) (*entities.ScheduledCall, error)

	// List retrieves calls with their contact preloaded
	List(ctx context.Context, organizationID uuid.UUID, filters CallFilters) ([]*entities.ScheduledCall, int64, error)

	// Update saves caller-editable fields of an existing call
	Update(ctx context.Context, call *entities.ScheduledCall) error

	// Delete removes a call (administrative CRUD, not part of the lifecycle)
	Delete(ctx context.Context, organizationID, id uuid.UUID) error

	// MarkEmailSent records a successful notification send
	MarkEmailSent(ctx context.Context, organizationID, id uuid.UUID, emailID string) error

	// Start transitions scheduled → in_progress. Returns false when the call
	// was not in scheduled (duplicate or out-of-order delivery).
	Start(ctx context.Context, organizationID, id uuid.UUID) (bool, error)

	// Finish transitions any non-terminal status to completed or cancelled,
	// recording the duration when present. Returns false when the call was
	// already terminal.
	Finish(ctx context.Context, organizationID, id uuid.UUID, status entities.CallStatus, durationMinutes *int) (bool, error)

	// AttachTranscription records the transcription reference on the call
	AttachTranscription(ctx context.Context, organizationID, id uuid.UUID, data entities.TranscriptionData) error

	// LinkProcess sets process_id only if it is currently null, closing the
	// race between concurrent transcription_ready deliveries. Returns false
	// when a process was already linked.
	LinkProcess(ctx context.Context, organizationID, id, processID uuid.UUID) (bool, error)

	// Stats aggregates call counters for the dashboard
	Stats(ctx context.Context, organizationID uuid.UUID) (*CallStats, error)
}
