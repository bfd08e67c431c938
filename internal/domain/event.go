package domain

import (
	"context"
	"time"
)

// Event statuses. Events created by approving a request are always approved.
const (
	EventStatusApproved = "approved"
)

// Event is a published club event. Rows are created either directly by an
// admin or as the side effect of approving an EventRequest; in the latter
// case CreatedBy preserves the original requester, not the approving admin.
// swagger:model Event
type Event struct {
	ID          string    `json:"id"`
	ClubID      string    `json:"club_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	Status      string    `json:"status"`
	CreatedBy   string    `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewEvent returns a new Event. ID is set by the repository on create.
func NewEvent(clubID, title, description, location string, startDate, endDate time.Time, status, createdBy string, createdAt time.Time) *Event {
	return &Event{
		ClubID:      clubID,
		Title:       title,
		Description: description,
		Location:    location,
		StartDate:   startDate,
		EndDate:     endDate,
		Status:      status,
		CreatedBy:   createdBy,
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
	}
}

// EventPatch holds a partial update to an event. Nil fields are unchanged.
type EventPatch struct {
	Title       *string
	Description *string
	Location    *string
	StartDate   *time.Time
	EndDate     *time.Time
	Status      *string
}

// EventRepository defines storage operations for events.
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	// ListApproved returns approved events ordered by start_date ascending,
	// plus the total count for pagination metadata.
	ListApproved(ctx context.Context, params PaginationParams) ([]*Event, int, error)
	Update(ctx context.Context, id string, patch EventPatch) (*Event, error)
	Delete(ctx context.Context, id string) error
}

// EventService defines the business logic for published events.
type EventService interface {
	ListApproved(ctx context.Context, params PaginationParams) ([]*Event, int, error)
	Create(ctx context.Context, event *Event) error
	Update(ctx context.Context, id string, patch EventPatch) (*Event, error)
	Delete(ctx context.Context, id string) error
}
