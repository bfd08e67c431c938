package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"eventhub/internal/domain"
)

const eventRequestColumns = "id, club_id, title, description, location, start_date, end_date, status, requested_by, admin_comment, created_at, updated_at"

type eventRequestRepository struct {
	DB *sql.DB
}

func NewEventRequestRepository(db *sql.DB) domain.EventRequestRepository {
	return &eventRequestRepository{
		DB: db,
	}
}

func scanEventRequest(row interface{ Scan(...any) error }) (*domain.EventRequest, error) {
	r := &domain.EventRequest{}
	var commentNull sql.NullString
	err := row.Scan(
		&r.ID, &r.ClubID, &r.Title, &r.Description, &r.Location,
		&r.StartDate, &r.EndDate, &r.Status, &r.RequestedBy,
		&commentNull, &r.CreatedAt, &r.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if commentNull.Valid {
		r.AdminComment = &commentNull.String
	}
	return r, nil
}

func (r *eventRequestRepository) Create(ctx context.Context, req *domain.EventRequest) error {
	query := `
		INSERT INTO event_requests (club_id, title, description, location, start_date, end_date, status, requested_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query,
		req.ClubID, req.Title, req.Description, req.Location,
		req.StartDate, req.EndDate, req.Status, req.RequestedBy,
		req.CreatedAt, req.UpdatedAt,
	).Scan(&req.ID)
}

func (r *eventRequestRepository) GetByID(ctx context.Context, id string) (*domain.EventRequest, error) {
	query := fmt.Sprintf(`SELECT %s FROM event_requests WHERE id = $1`, eventRequestColumns)
	req, err := scanEventRequest(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return req, nil
}

func (r *eventRequestRepository) ListByClubID(ctx context.Context, clubID string, params domain.PaginationParams) ([]*domain.EventRequest, int, error) {
	var total int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM event_requests WHERE club_id = $1`, clubID).Scan(&total); err != nil {
		return nil, 0, err
	}
	query := fmt.Sprintf(`
		SELECT %s FROM event_requests
		WHERE club_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`, eventRequestColumns)
	rows, err := r.DB.QueryContext(ctx, query, clubID, params.PageSize, params.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	requests := make([]*domain.EventRequest, 0)
	for rows.Next() {
		req, err := scanEventRequest(rows)
		if err != nil {
			return nil, 0, err
		}
		requests = append(requests, req)
	}
	return requests, total, rows.Err()
}

func (r *eventRequestRepository) ListByRequester(ctx context.Context, userID string) ([]*domain.EventRequest, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM event_requests
		WHERE requested_by = $1
		ORDER BY created_at DESC
	`, eventRequestColumns)
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	requests := make([]*domain.EventRequest, 0)
	for rows.Next() {
		req, err := scanEventRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}
	return requests, rows.Err()
}

func (r *eventRequestRepository) UpdateFields(ctx context.Context, id string, patch domain.EventRequestPatch) (*domain.EventRequest, error) {
	setClauses := []string{"updated_at = NOW()"}
	args := []interface{}{}
	n := 1
	if patch.Title != nil {
		setClauses = append(setClauses, fmt.Sprintf("title = $%d", n))
		args = append(args, *patch.Title)
		n++
	}
	if patch.Description != nil {
		setClauses = append(setClauses, fmt.Sprintf("description = $%d", n))
		args = append(args, *patch.Description)
		n++
	}
	if patch.Location != nil {
		setClauses = append(setClauses, fmt.Sprintf("location = $%d", n))
		args = append(args, *patch.Location)
		n++
	}
	if patch.StartDate != nil {
		setClauses = append(setClauses, fmt.Sprintf("start_date = $%d", n))
		args = append(args, *patch.StartDate)
		n++
	}
	if patch.EndDate != nil {
		setClauses = append(setClauses, fmt.Sprintf("end_date = $%d", n))
		args = append(args, *patch.EndDate)
		n++
	}
	if patch.AdminComment != nil {
		setClauses = append(setClauses, fmt.Sprintf("admin_comment = $%d", n))
		args = append(args, *patch.AdminComment)
		n++
	}
	if n == 1 {
		// No fields to update; just fetch current row
		return r.GetByID(ctx, id)
	}
	args = append(args, id)
	query := fmt.Sprintf(`
		UPDATE event_requests SET %s
		WHERE id = $%d
		RETURNING %s
	`, strings.Join(setClauses, ", "), n, eventRequestColumns)
	req, err := scanEventRequest(r.DB.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return req, nil
}

// Approve runs the two-write promotion as one transaction: a conditional
// status update guarded on the row still being pending, then the event
// insert copying the request fields with created_by = requested_by. The
// conditional update serializes concurrent approvals; the loser sees zero
// rows and gets ErrConflict instead of creating a duplicate event.
func (r *eventRequestRepository) Approve(ctx context.Context, id string, adminComment *string) (*domain.EventRequest, *domain.Event, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("begin approval: %w", err)
	}

	updateQuery := fmt.Sprintf(`
		UPDATE event_requests
		SET status = $2, admin_comment = COALESCE($3, admin_comment), updated_at = NOW()
		WHERE id = $1 AND status = $4
		RETURNING %s
	`, eventRequestColumns)
	req, err := scanEventRequest(tx.QueryRowContext(ctx, updateQuery, id, domain.RequestStatusApproved, adminComment, domain.RequestStatusPending))
	if err != nil {
		tx.Rollback()
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, domain.ErrConflict
		}
		return nil, nil, fmt.Errorf("approve request: %w", err)
	}

	event := &domain.Event{
		ClubID:      req.ClubID,
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Status:      domain.EventStatusApproved,
		CreatedBy:   req.RequestedBy,
	}
	insertQuery := `
		INSERT INTO events (club_id, title, description, location, start_date, end_date, status, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`
	err = tx.QueryRowContext(ctx, insertQuery,
		event.ClubID, event.Title, event.Description, event.Location,
		event.StartDate, event.EndDate, event.Status, event.CreatedBy,
	).Scan(&event.ID, &event.CreatedAt, &event.UpdatedAt)
	if err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			// Status update may have stuck; surface for manual reconciliation.
			return nil, nil, &domain.ApprovalIncompleteError{RequestID: id, Err: errors.Join(err, rbErr)}
		}
		return nil, nil, fmt.Errorf("create event for approved request: %w", err)
	}

	if err := tx.Commit(); err != nil {
		// Both writes were issued; the transaction outcome is unknown.
		return nil, nil, &domain.ApprovalIncompleteError{RequestID: id, EventID: event.ID, Err: err}
	}
	return req, event, nil
}

func (r *eventRequestRepository) Reject(ctx context.Context, id string, adminComment *string) (*domain.EventRequest, error) {
	query := fmt.Sprintf(`
		UPDATE event_requests
		SET status = $2, admin_comment = COALESCE($3, admin_comment), updated_at = NOW()
		WHERE id = $1 AND status = $4
		RETURNING %s
	`, eventRequestColumns)
	req, err := scanEventRequest(r.DB.QueryRowContext(ctx, query, id, domain.RequestStatusRejected, adminComment, domain.RequestStatusPending))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrConflict
		}
		return nil, err
	}
	return req, nil
}

func (r *eventRequestRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM event_requests WHERE id = $1`
	result, err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
