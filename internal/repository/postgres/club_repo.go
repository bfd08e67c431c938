package postgres

import (
	"context"
	"database/sql"
	"errors"

	"eventhub/internal/domain"
)

type clubRepository struct {
	DB *sql.DB
}

func NewClubRepository(db *sql.DB) domain.ClubRepository {
	return &clubRepository{
		DB: db,
	}
}

func (r *clubRepository) List(ctx context.Context) ([]*domain.Club, error) {
	query := `SELECT id, name, created_at FROM clubs ORDER BY name ASC`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	clubs := make([]*domain.Club, 0)
	for rows.Next() {
		c := &domain.Club{}
		if err := rows.Scan(&c.ID, &c.Name, &c.CreatedAt); err != nil {
			return nil, err
		}
		clubs = append(clubs, c)
	}
	return clubs, rows.Err()
}

func (r *clubRepository) GetByID(ctx context.Context, id string) (*domain.Club, error) {
	c := &domain.Club{}
	err := r.DB.QueryRowContext(ctx,
		`SELECT id, name, created_at FROM clubs WHERE id = $1`, id,
	).Scan(&c.ID, &c.Name, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

func (r *clubRepository) ListTeams(ctx context.Context, clubID string) ([]*domain.Team, error) {
	query := `
		SELECT id, club_id, name, is_default, created_by, created_at
		FROM teams
		WHERE club_id = $1
		ORDER BY name ASC
	`
	rows, err := r.DB.QueryContext(ctx, query, clubID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	teams := make([]*domain.Team, 0)
	for rows.Next() {
		t := &domain.Team{}
		if err := rows.Scan(&t.ID, &t.ClubID, &t.Name, &t.IsDefault, &t.CreatedBy, &t.CreatedAt); err != nil {
			return nil, err
		}
		teams = append(teams, t)
	}
	return teams, rows.Err()
}

func (r *clubRepository) UpdateName(ctx context.Context, id, name string) error {
	result, err := r.DB.ExecContext(ctx, `UPDATE clubs SET name = $1 WHERE id = $2`, name, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
