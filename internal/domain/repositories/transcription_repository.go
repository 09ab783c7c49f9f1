package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/ceadash/cea-dashboard/internal/domain/entities"
)

// TranscriptionRepository defines tenant-scoped access to transcriptions.
// The coordinator only ever creates and reads transcriptions; derivation
// never mutates them.
type TranscriptionRepository interface {
	// Create persists a new transcription
	Create(ctx context.Context, transcription *entities.Transcription) error

	// FindByID retrieves a transcription by id within an organization
	FindByID(ctx context.Context, organizationID, id uuid.UUID) (*entities.Transcription, error)

	// List retrieves transcriptions ordered by creation time
	List(ctx context.Context, organizationID uuid.UUID, limit, offset int) ([]*entities.Transcription, error)
}
