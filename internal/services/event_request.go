package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"eventhub/internal/domain"
)

type eventRequestService struct {
	requestRepo    domain.EventRequestRepository
	memberships    domain.MembershipRepository
	profileRepo    domain.ProfileRepository
	authorizer     domain.Authorizer
	emailService   domain.EmailService
	contextTimeout time.Duration
}

// NewEventRequestService creates the promotion-workflow service.
// emailService may be nil; decision notifications are then skipped.
func NewEventRequestService(
	requestRepo domain.EventRequestRepository,
	memberships domain.MembershipRepository,
	profileRepo domain.ProfileRepository,
	authorizer domain.Authorizer,
	emailService domain.EmailService,
	timeout time.Duration,
) domain.EventRequestService {
	return &eventRequestService{
		requestRepo:    requestRepo,
		memberships:    memberships,
		profileRepo:    profileRepo,
		authorizer:     authorizer,
		emailService:   emailService,
		contextTimeout: timeout,
	}
}

func (s *eventRequestService) Create(ctx context.Context, req *domain.EventRequest, actorID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if actorID == "" {
		return fmt.Errorf("requester is required")
	}
	now := time.Now()
	req.RequestedBy = actorID
	req.Status = domain.RequestStatusPending
	req.AdminComment = nil
	req.CreatedAt = now
	req.UpdatedAt = now

	if err := s.requestRepo.Create(ctx, req); err != nil {
		return fmt.Errorf("create event request: %w", err)
	}
	return nil
}

func (s *eventRequestService) ListForAdmin(ctx context.Context, actorID string, params domain.PaginationParams) ([]*domain.EventRequest, int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	clubID, err := s.memberships.AdminClubID(ctx, actorID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// Actor administers no club: empty listing, not an error.
			return []*domain.EventRequest{}, 0, nil
		}
		return nil, 0, fmt.Errorf("resolve admin club: %w", err)
	}
	requests, total, err := s.requestRepo.ListByClubID(ctx, clubID, params)
	if err != nil {
		return nil, 0, fmt.Errorf("list club requests: %w", err)
	}
	return requests, total, nil
}

func (s *eventRequestService) ListMine(ctx context.Context, actorID string) ([]*domain.EventRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	requests, err := s.requestRepo.ListByRequester(ctx, actorID)
	if err != nil {
		return nil, fmt.Errorf("list own requests: %w", err)
	}
	return requests, nil
}

func (s *eventRequestService) GetByID(ctx context.Context, id string) (*domain.EventRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	req, err := s.requestRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event request: %w", err)
	}
	return req, nil
}

// Update applies the permission matrix of the promotion workflow:
// owner-while-pending or club admin for field edits, club admin only for
// status transitions. A disallowed attempt is a permission failure, not a
// state error; racing transitions surface as ErrConflict from the
// conditional update in the repository.
func (s *eventRequestService) Update(ctx context.Context, id, actorID string, patch domain.EventRequestPatch) (*domain.EventRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	req, err := s.requestRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event request: %w", err)
	}

	isAdmin, err := s.authorizer.IsAdmin(ctx, actorID, req.ClubID)
	if err != nil {
		return nil, err
	}
	isOwner := req.RequestedBy == actorID
	isPending := req.Status == domain.RequestStatusPending
	if !(isAdmin || (isOwner && isPending)) {
		return nil, domain.ErrForbidden
	}
	if patch.AdminComment != nil && !isAdmin {
		return nil, domain.ErrForbidden
	}

	if patch.Status == nil {
		updated, err := s.requestRepo.UpdateFields(ctx, id, patch)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, domain.ErrNotFound
			}
			return nil, fmt.Errorf("update event request: %w", err)
		}
		return updated, nil
	}

	// Status transitions are admin-only regardless of ownership.
	if !isAdmin {
		return nil, domain.ErrForbidden
	}

	// Apply any field edits first so the promoted event copies them.
	fieldPatch := patch
	fieldPatch.Status = nil
	fieldPatch.AdminComment = nil
	if hasRequestFieldEdits(fieldPatch) {
		if _, err := s.requestRepo.UpdateFields(ctx, id, fieldPatch); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, domain.ErrNotFound
			}
			return nil, fmt.Errorf("update event request: %w", err)
		}
	}

	switch *patch.Status {
	case domain.RequestStatusApproved:
		updated, event, err := s.requestRepo.Approve(ctx, id, patch.AdminComment)
		if err != nil {
			var incomplete *domain.ApprovalIncompleteError
			if errors.Is(err, domain.ErrConflict) || errors.As(err, &incomplete) {
				return nil, err
			}
			return nil, fmt.Errorf("approve event request: %w", err)
		}
		s.notifyDecision(ctx, updated, event)
		return updated, nil
	case domain.RequestStatusRejected:
		updated, err := s.requestRepo.Reject(ctx, id, patch.AdminComment)
		if err != nil {
			if errors.Is(err, domain.ErrConflict) {
				return nil, domain.ErrConflict
			}
			return nil, fmt.Errorf("reject event request: %w", err)
		}
		s.notifyDecision(ctx, updated, nil)
		return updated, nil
	default:
		return nil, fmt.Errorf("invalid status transition to %q", *patch.Status)
	}
}

func hasRequestFieldEdits(patch domain.EventRequestPatch) bool {
	return patch.Title != nil || patch.Description != nil || patch.Location != nil ||
		patch.StartDate != nil || patch.EndDate != nil
}

func (s *eventRequestService) Delete(ctx context.Context, id, actorID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	req, err := s.requestRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get event request: %w", err)
	}

	isAdmin, err := s.authorizer.IsAdmin(ctx, actorID, req.ClubID)
	if err != nil {
		return err
	}
	isOwner := req.RequestedBy == actorID
	isPending := req.Status == domain.RequestStatusPending
	if !(isAdmin || (isOwner && isPending)) {
		return domain.ErrForbidden
	}

	if err := s.requestRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete event request: %w", err)
	}
	return nil
}

// notifyDecision emails the requester about the disposition. Best effort:
// a failed notification never turns a completed transition into an error.
func (s *eventRequestService) notifyDecision(ctx context.Context, req *domain.EventRequest, event *domain.Event) {
	if s.emailService == nil {
		return
	}
	requester, err := s.profileRepo.GetByID(ctx, req.RequestedBy)
	if err != nil {
		log.Printf("[EVENT-REQUEST] lookup requester %s for notification: %v", req.RequestedBy, err)
		return
	}
	data := &domain.RequestDecisionEmailData{
		Email:        requester.Email,
		FirstName:    requester.FirstName,
		RequestTitle: req.Title,
	}
	if req.AdminComment != nil {
		data.AdminComment = *req.AdminComment
	}
	if event != nil {
		err = s.emailService.SendRequestApproved(ctx, data)
	} else {
		err = s.emailService.SendRequestRejected(ctx, data)
	}
	if err != nil {
		log.Printf("[EVENT-REQUEST] send decision notification for request %s: %v", req.ID, err)
	}
}
