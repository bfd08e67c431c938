package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"testing"
	"time"

	"eventhub/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeEventRepo is an in-memory EventRepository for tests.
type fakeEventRepo struct {
	byID   map[string]*domain.Event
	nextID int
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{
		byID:   make(map[string]*domain.Event),
		nextID: 1,
	}
}

func (f *fakeEventRepo) Create(ctx context.Context, e *domain.Event) error {
	e.ID = fmt.Sprintf("ev-%d", f.nextID)
	f.nextID++
	f.byID[e.ID] = e
	return nil
}

func (f *fakeEventRepo) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	if e, ok := f.byID[id]; ok {
		return e, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeEventRepo) ListApproved(ctx context.Context, params domain.PaginationParams) ([]*domain.Event, int, error) {
	out := make([]*domain.Event, 0)
	for _, e := range f.byID {
		if e.Status == domain.EventStatusApproved {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartDate.Before(out[j].StartDate) })
	return out, len(out), nil
}

func (f *fakeEventRepo) Update(ctx context.Context, id string, patch domain.EventPatch) (*domain.Event, error) {
	e, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if patch.Title != nil {
		e.Title = *patch.Title
	}
	if patch.Description != nil {
		e.Description = *patch.Description
	}
	if patch.Location != nil {
		e.Location = *patch.Location
	}
	if patch.StartDate != nil {
		e.StartDate = *patch.StartDate
	}
	if patch.EndDate != nil {
		e.EndDate = *patch.EndDate
	}
	if patch.Status != nil {
		e.Status = *patch.Status
	}
	return e, nil
}

func (f *fakeEventRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

func TestEventService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults status to approved", func(t *testing.T) {
		repo := newFakeEventRepo()
		svc := NewEventService(repo, testTimeout)
		event := &domain.Event{Title: "Open Day", ClubID: "club-1", CreatedBy: "admin-1"}
		require.NoError(t, svc.Create(ctx, event))
		assert.Equal(t, domain.EventStatusApproved, event.Status)
		assert.NotEmpty(t, event.ID)
		assert.False(t, event.CreatedAt.IsZero())
	})

	t.Run("requires creator", func(t *testing.T) {
		svc := NewEventService(newFakeEventRepo(), testTimeout)
		require.Error(t, svc.Create(ctx, &domain.Event{Title: "Open Day"}))
	})
}

func TestEventService_ListApproved(t *testing.T) {
	ctx := context.Background()
	repo := newFakeEventRepo()
	svc := NewEventService(repo, testTimeout)

	later := &domain.Event{Title: "B", ClubID: "club-1", CreatedBy: "admin-1",
		StartDate: time.Date(2026, 5, 2, 9, 0, 0, 0, time.UTC)}
	sooner := &domain.Event{Title: "A", ClubID: "club-1", CreatedBy: "admin-1",
		StartDate: time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)}
	require.NoError(t, svc.Create(ctx, later))
	require.NoError(t, svc.Create(ctx, sooner))

	events, total, err := svc.ListApproved(ctx, domain.PaginationParams{Page: 1, PageSize: 20})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, events, 2)
	assert.Equal(t, "A", events[0].Title)
	assert.Equal(t, "B", events[1].Title)
}

func TestEventService_UpdateDelete(t *testing.T) {
	ctx := context.Background()
	repo := newFakeEventRepo()
	svc := NewEventService(repo, testTimeout)

	event := &domain.Event{Title: "Open Day", ClubID: "club-1", CreatedBy: "admin-1"}
	require.NoError(t, svc.Create(ctx, event))

	title := "Open Day 2026"
	updated, err := svc.Update(ctx, event.ID, domain.EventPatch{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, title, updated.Title)

	_, err = svc.Update(ctx, "ev-missing", domain.EventPatch{Title: &title})
	require.True(t, errors.Is(err, domain.ErrNotFound))

	require.NoError(t, svc.Delete(ctx, event.ID))
	require.True(t, errors.Is(svc.Delete(ctx, event.ID), domain.ErrNotFound))
}
