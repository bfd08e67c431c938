package domain

import (
	"context"
	"time"
)

// EventRequest statuses. Transitions are only pending -> approved,
// pending -> rejected, or pending -> pending (field edit).
const (
	RequestStatusPending  = "pending"
	RequestStatusApproved = "approved"
	RequestStatusRejected = "rejected"
)

// EventRequest is a user-submitted proposal for a club event awaiting
// admin disposition.
// swagger:model EventRequest
type EventRequest struct {
	ID           string    `json:"id"`
	ClubID       string    `json:"club_id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Location     string    `json:"location"`
	StartDate    time.Time `json:"start_date"`
	EndDate      time.Time `json:"end_date"`
	Status       string    `json:"status"`
	RequestedBy  string    `json:"requested_by"`
	AdminComment *string   `json:"admin_comment"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewEventRequest returns a pending EventRequest. ID is set by the repository on create.
func NewEventRequest(clubID, title, description, location string, startDate, endDate time.Time, requestedBy string, createdAt time.Time) *EventRequest {
	return &EventRequest{
		ClubID:      clubID,
		Title:       title,
		Description: description,
		Location:    location,
		StartDate:   startDate,
		EndDate:     endDate,
		Status:      RequestStatusPending,
		RequestedBy: requestedBy,
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
	}
}

// EventRequestPatch holds a partial update to an event request. Nil fields
// are unchanged. Status may only be RequestStatusApproved or
// RequestStatusRejected; the pending -> pending edit is expressed by
// leaving Status nil.
type EventRequestPatch struct {
	Title        *string
	Description  *string
	Location     *string
	StartDate    *time.Time
	EndDate      *time.Time
	AdminComment *string
	Status       *string
}

// EventRequestRepository defines storage operations for event requests.
type EventRequestRepository interface {
	Create(ctx context.Context, req *EventRequest) error
	GetByID(ctx context.Context, id string) (*EventRequest, error)
	ListByClubID(ctx context.Context, clubID string, params PaginationParams) ([]*EventRequest, int, error)
	ListByRequester(ctx context.Context, userID string) ([]*EventRequest, error)
	// UpdateFields applies the non-status fields of patch to a request.
	// Returns ErrNotFound if the row does not exist.
	UpdateFields(ctx context.Context, id string, patch EventRequestPatch) (*EventRequest, error)
	// Approve transitions the request to approved and inserts the
	// corresponding event row in a single transaction. The transition is
	// conditional on the current status still being pending; if it is not,
	// Approve returns ErrConflict and writes nothing. A commit failure
	// after both writes is reported as *ApprovalIncompleteError.
	Approve(ctx context.Context, id string, adminComment *string) (*EventRequest, *Event, error)
	// Reject transitions the request to rejected, recording the admin
	// comment. Conditional on status pending; otherwise ErrConflict.
	Reject(ctx context.Context, id string, adminComment *string) (*EventRequest, error)
	Delete(ctx context.Context, id string) error
}

// EventRequestService defines the business logic of the promotion workflow.
type EventRequestService interface {
	Create(ctx context.Context, req *EventRequest, actorID string) error
	// ListForAdmin returns the requests of the club the actor administers,
	// or an empty list if the actor administers no club.
	ListForAdmin(ctx context.Context, actorID string, params PaginationParams) ([]*EventRequest, int, error)
	ListMine(ctx context.Context, actorID string) ([]*EventRequest, error)
	GetByID(ctx context.Context, id string) (*EventRequest, error)
	// Update applies a partial update. The owner may edit while the request
	// is pending; a club admin may edit at any time. Setting status to
	// approved promotes the request into an Event; setting it to rejected
	// records the disposition. Both are admin-only.
	Update(ctx context.Context, id, actorID string, patch EventRequestPatch) (*EventRequest, error)
	// Delete removes a request. The owner may delete while pending; a club
	// admin may delete at any time.
	Delete(ctx context.Context, id, actorID string) error
}
