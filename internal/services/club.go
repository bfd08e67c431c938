package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"eventhub/internal/domain"
)

type clubService struct {
	clubRepo       domain.ClubRepository
	memberships    domain.MembershipRepository
	authorizer     domain.Authorizer
	contextTimeout time.Duration
}

// NewClubService creates the club-management service.
func NewClubService(clubRepo domain.ClubRepository, memberships domain.MembershipRepository, authorizer domain.Authorizer, timeout time.Duration) domain.ClubService {
	return &clubService{
		clubRepo:       clubRepo,
		memberships:    memberships,
		authorizer:     authorizer,
		contextTimeout: timeout,
	}
}

func (s *clubService) List(ctx context.Context) ([]*domain.Club, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	clubs, err := s.clubRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list clubs: %w", err)
	}
	return clubs, nil
}

func (s *clubService) Get(ctx context.Context, clubID, actorID string) (*domain.Club, []*domain.Team, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	allowed, err := s.authorizer.IsAdmin(ctx, actorID, clubID)
	if err != nil {
		return nil, nil, err
	}
	if !allowed {
		return nil, nil, domain.ErrForbidden
	}

	club, err := s.clubRepo.GetByID(ctx, clubID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil, domain.ErrNotFound
		}
		return nil, nil, fmt.Errorf("get club: %w", err)
	}
	teams, err := s.clubRepo.ListTeams(ctx, clubID)
	if err != nil {
		return nil, nil, fmt.Errorf("list teams: %w", err)
	}
	return club, teams, nil
}

func (s *clubService) Rename(ctx context.Context, clubID, actorID, name string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("club name is required")
	}
	allowed, err := s.authorizer.IsAdmin(ctx, actorID, clubID)
	if err != nil {
		return err
	}
	if !allowed {
		return domain.ErrForbidden
	}
	if err := s.clubRepo.UpdateName(ctx, clubID, name); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("rename club: %w", err)
	}
	return nil
}

func (s *clubService) GetPresident(ctx context.Context, clubID string) (*domain.ClubPresident, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	pres, err := s.memberships.GetPresident(ctx, clubID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get president: %w", err)
	}
	return pres, nil
}

func (s *clubService) SetPresident(ctx context.Context, clubID, actorID, userID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	allowed, err := s.authorizer.IsAdmin(ctx, actorID, clubID)
	if err != nil {
		return err
	}
	if !allowed {
		return domain.ErrForbidden
	}
	pres := &domain.ClubPresident{UserID: userID, ClubID: clubID, AssignedBy: actorID}
	if err := s.memberships.SetPresident(ctx, pres); err != nil {
		return fmt.Errorf("set president: %w", err)
	}
	return nil
}
