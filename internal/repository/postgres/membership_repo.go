package postgres

import (
	"context"
	"database/sql"
	"errors"

	"eventhub/internal/domain"
)

type membershipRepository struct {
	DB *sql.DB
}

func NewMembershipRepository(db *sql.DB) domain.MembershipRepository {
	return &membershipRepository{
		DB: db,
	}
}

// exists runs a single-row lookup; "no row" is a valid false, never an error.
func (r *membershipRepository) exists(ctx context.Context, query string, args ...any) (bool, error) {
	var one int
	err := r.DB.QueryRowContext(ctx, query, args...).Scan(&one)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *membershipRepository) IsAdmin(ctx context.Context, userID, clubID string) (bool, error) {
	return r.exists(ctx, `SELECT 1 FROM admins WHERE user_id = $1 AND club_id = $2`, userID, clubID)
}

func (r *membershipRepository) IsPresident(ctx context.Context, userID, clubID string) (bool, error) {
	return r.exists(ctx, `SELECT 1 FROM club_presidents WHERE user_id = $1 AND club_id = $2`, userID, clubID)
}

func (r *membershipRepository) IsTeamHead(ctx context.Context, userID, teamID string) (bool, error) {
	return r.exists(ctx, `SELECT 1 FROM team_heads WHERE user_id = $1 AND team_id = $2`, userID, teamID)
}

func (r *membershipRepository) AdminClubID(ctx context.Context, userID string) (string, error) {
	var clubID string
	err := r.DB.QueryRowContext(ctx, `SELECT club_id FROM admins WHERE user_id = $1`, userID).Scan(&clubID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", domain.ErrNotFound
		}
		return "", err
	}
	return clubID, nil
}

func (r *membershipRepository) ClubIDFromTeam(ctx context.Context, teamID string) (string, error) {
	var clubID string
	err := r.DB.QueryRowContext(ctx, `SELECT club_id FROM teams WHERE id = $1`, teamID).Scan(&clubID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", domain.ErrNotFound
		}
		return "", err
	}
	return clubID, nil
}

func (r *membershipRepository) GetPresident(ctx context.Context, clubID string) (*domain.ClubPresident, error) {
	p := &domain.ClubPresident{}
	err := r.DB.QueryRowContext(ctx,
		`SELECT user_id, club_id, assigned_by FROM club_presidents WHERE club_id = $1`, clubID,
	).Scan(&p.UserID, &p.ClubID, &p.AssignedBy)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *membershipRepository) SetPresident(ctx context.Context, pres *domain.ClubPresident) error {
	// One president per club: upsert on club_id.
	query := `
		INSERT INTO club_presidents (user_id, club_id, assigned_by)
		VALUES ($1, $2, $3)
		ON CONFLICT (club_id) DO UPDATE SET user_id = EXCLUDED.user_id, assigned_by = EXCLUDED.assigned_by
	`
	_, err := r.DB.ExecContext(ctx, query, pres.UserID, pres.ClubID, pres.AssignedBy)
	return err
}
