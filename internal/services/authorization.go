package services

import (
	"context"
	"fmt"

	"eventhub/internal/domain"
)

// authorizer is the single capability-check component. Every route that
// needs a club-scoped permission goes through it instead of querying the
// junction tables ad hoc. No caching: call volume is per-request.
type authorizer struct {
	memberships domain.MembershipRepository
}

// NewAuthorizer returns an Authorizer backed by the membership junction tables.
func NewAuthorizer(memberships domain.MembershipRepository) domain.Authorizer {
	return &authorizer{memberships: memberships}
}

func (a *authorizer) IsAdmin(ctx context.Context, userID, clubID string) (bool, error) {
	ok, err := a.memberships.IsAdmin(ctx, userID, clubID)
	if err != nil {
		return false, fmt.Errorf("check club admin: %w", err)
	}
	return ok, nil
}

func (a *authorizer) IsPresident(ctx context.Context, userID, clubID string) (bool, error) {
	ok, err := a.memberships.IsPresident(ctx, userID, clubID)
	if err != nil {
		return false, fmt.Errorf("check club president: %w", err)
	}
	return ok, nil
}

func (a *authorizer) IsTeamHead(ctx context.Context, userID, teamID string) (bool, error) {
	ok, err := a.memberships.IsTeamHead(ctx, userID, teamID)
	if err != nil {
		return false, fmt.Errorf("check team head: %w", err)
	}
	return ok, nil
}
