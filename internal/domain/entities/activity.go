package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Activity types recorded on the dashboard feed
const (
	ActivityCallScheduled  = "call_scheduled"
	ActivityCallCompleted  = "call_completed"
	ActivityCallCancelled  = "call_cancelled"
	ActivityContactAdded   = "contact_added"
	ActivityProcessCreated = "process_created"
)

// Activity is a dashboard feed entry. Recording activities is best-effort:
// a failed insert never fails the operation that produced it.
type Activity struct {
	ID             uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	OrganizationID uuid.UUID      `json:"organization_id" gorm:"type:uuid;not null;index"`
	UserID         *uuid.UUID     `json:"user_id,omitempty" gorm:"type:uuid"`
	ActivityType   string         `json:"activity_type" gorm:"type:varchar(50);not null;index"`
	Title          string         `json:"title" gorm:"type:varchar(500);not null"`
	Description    *string        `json:"description,omitempty" gorm:"type:text"`
	Metadata       datatypes.JSON `json:"metadata,omitempty" gorm:"type:jsonb"`
	CreatedAt      time.Time      `json:"created_at" gorm:"autoCreateTime"`
}

// TableName specifies the table name for Activity
func (Activity) TableName() string {
	return "activities"
}
