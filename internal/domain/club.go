package domain

import (
	"context"
	"time"
)

// Club is a student club that owns teams, event requests, and events.
// swagger:model Club
type Club struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// Team is a sub-group within a club.
// swagger:model Team
type Team struct {
	ID        string    `json:"id"`
	ClubID    string    `json:"club_id"`
	Name      string    `json:"name"`
	IsDefault bool      `json:"is_default"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

// ClubPresident is the single president assignment of a club.
// swagger:model ClubPresident
type ClubPresident struct {
	UserID     string `json:"user_id"`
	ClubID     string `json:"club_id"`
	AssignedBy string `json:"assigned_by"`
}

// ClubRepository defines storage operations for clubs and their teams.
type ClubRepository interface {
	List(ctx context.Context) ([]*Club, error)
	GetByID(ctx context.Context, id string) (*Club, error)
	ListTeams(ctx context.Context, clubID string) ([]*Team, error)
	UpdateName(ctx context.Context, id, name string) error
}

// MembershipRepository answers which users hold which administrative
// relations, backed by the admins, club_presidents, and team_heads
// junction tables. Existence checks return (false, nil) for "no row";
// only store failures produce an error.
type MembershipRepository interface {
	IsAdmin(ctx context.Context, userID, clubID string) (bool, error)
	IsPresident(ctx context.Context, userID, clubID string) (bool, error)
	IsTeamHead(ctx context.Context, userID, teamID string) (bool, error)
	// AdminClubID returns the club the user administers, or ErrNotFound.
	AdminClubID(ctx context.Context, userID string) (string, error)
	// ClubIDFromTeam resolves the club owning a team, or ErrNotFound.
	ClubIDFromTeam(ctx context.Context, teamID string) (string, error)
	GetPresident(ctx context.Context, clubID string) (*ClubPresident, error)
	// SetPresident upserts the president row for a club (one per club).
	SetPresident(ctx context.Context, pres *ClubPresident) error
}

// Authorizer is the single capability-check surface used by services in
// place of ad hoc role queries.
type Authorizer interface {
	IsAdmin(ctx context.Context, userID, clubID string) (bool, error)
	IsPresident(ctx context.Context, userID, clubID string) (bool, error)
	IsTeamHead(ctx context.Context, userID, teamID string) (bool, error)
}

// ClubService defines the business logic for club management.
type ClubService interface {
	List(ctx context.Context) ([]*Club, error)
	// Get returns a club with its teams. Club admins only.
	Get(ctx context.Context, clubID, actorID string) (*Club, []*Team, error)
	// Rename changes the club name. Club admins only.
	Rename(ctx context.Context, clubID, actorID, name string) error
	GetPresident(ctx context.Context, clubID string) (*ClubPresident, error)
	// SetPresident assigns the club president. Club admins only.
	SetPresident(ctx context.Context, clubID, actorID, userID string) error
}
