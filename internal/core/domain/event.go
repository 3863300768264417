package domain

import (
	"time"

	"github.com/google/uuid"
)

// EventType is a type that represents the type of a lifecycle event
type EventType string

const (
	EventTypeStatusCreated  EventType = "status.created"
	EventTypeStatusDeleted  EventType = "status.deleted"
	EventTypeStatusArchived EventType = "status.archived"
)

// StatusEvent is a lifecycle event published for downstream consumers
// (notification fan-out lives outside this service).
type StatusEvent struct {
	Type       EventType   `json:"type"`
	StatusID   uuid.UUID   `json:"status_id,omitempty"`
	UserID     uuid.UUID   `json:"user_id,omitempty"`
	StatusIDs  []uuid.UUID `json:"status_ids,omitempty"`
	OccurredAt time.Time   `json:"occurred_at"`
}
