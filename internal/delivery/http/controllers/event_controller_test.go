package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"eventhub/internal/delivery/http/helpers"
	"eventhub/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeEventSvc implements domain.EventService for handler tests.
type fakeEventSvc struct {
	listResult  []*domain.Event
	listTotal   int
	listErr     error
	createErr   error
	lastCreated *domain.Event
	updateRes   *domain.Event
	updateErr   error
	deleteErr   error
	lastID      string
}

func (f *fakeEventSvc) ListApproved(ctx context.Context, params domain.PaginationParams) ([]*domain.Event, int, error) {
	return f.listResult, f.listTotal, f.listErr
}

func (f *fakeEventSvc) Create(ctx context.Context, event *domain.Event) error {
	f.lastCreated = event
	if f.createErr != nil {
		return f.createErr
	}
	event.ID = "ev-1"
	return nil
}

func (f *fakeEventSvc) Update(ctx context.Context, id string, patch domain.EventPatch) (*domain.Event, error) {
	f.lastID = id
	return f.updateRes, f.updateErr
}

func (f *fakeEventSvc) Delete(ctx context.Context, id string) error {
	f.lastID = id
	return f.deleteErr
}

func TestEventController_List(t *testing.T) {
	t.Run("public listing with pagination", func(t *testing.T) {
		svc := &fakeEventSvc{
			listResult: []*domain.Event{{
				ID:        "ev-1",
				Title:     "Hack Night",
				StartDate: time.Date(2026, 4, 10, 18, 0, 0, 0, time.UTC),
				Status:    domain.EventStatusApproved,
			}},
			listTotal: 1,
		}
		ctrl := NewEventController(testLogger, svc)

		// No authentication required.
		w := httptest.NewRecorder()
		ctrl.List(w, httptest.NewRequest(http.MethodGet, "/events", nil))

		require.Equal(t, http.StatusOK, w.Code)
		var resp struct {
			Data struct {
				Events     []*domain.Event        `json:"events"`
				Pagination helpers.PaginationMeta `json:"pagination"`
			} `json:"data"`
		}
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		require.Len(t, resp.Data.Events, 1)
		assert.Equal(t, 1, resp.Data.Pagination.Total)
	})

	t.Run("service failure", func(t *testing.T) {
		ctrl := NewEventController(testLogger, &fakeEventSvc{listErr: errors.New("boom")})

		w := httptest.NewRecorder()
		ctrl.List(w, httptest.NewRequest(http.MethodGet, "/events", nil))

		require.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestEventController_Create(t *testing.T) {
	validBody := `{
		"club_id": "11111111-2222-3333-4444-555555555555",
		"title": "Open Day",
		"location": "Main Hall",
		"start_date": "2026-05-01T09:00:00Z",
		"end_date": "2026-05-01T17:00:00Z"
	}`

	t.Run("success sets creator", func(t *testing.T) {
		svc := &fakeEventSvc{}
		ctrl := NewEventController(testLogger, svc)

		w := httptest.NewRecorder()
		ctrl.Create(w, authedRequest(http.MethodPost, "/events", validBody, "admin-1"))

		require.Equal(t, http.StatusCreated, w.Code)
		require.NotNil(t, svc.lastCreated)
		assert.Equal(t, "admin-1", svc.lastCreated.CreatedBy)
	})

	t.Run("invalid dates", func(t *testing.T) {
		body := `{
			"club_id": "11111111-2222-3333-4444-555555555555",
			"title": "Open Day",
			"start_date": "2026-05-01T17:00:00Z",
			"end_date": "2026-05-01T09:00:00Z"
		}`
		ctrl := NewEventController(testLogger, &fakeEventSvc{})

		w := httptest.NewRecorder()
		ctrl.Create(w, authedRequest(http.MethodPost, "/events", body, "admin-1"))

		require.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestEventController_Update(t *testing.T) {
	newReq := func(body string) *http.Request {
		r := authedRequest(http.MethodPut, "/events/ev-1", body, "admin-1")
		r.SetPathValue("eventID", "ev-1")
		return r
	}

	t.Run("success", func(t *testing.T) {
		svc := &fakeEventSvc{updateRes: &domain.Event{ID: "ev-1", Title: "Open Day 2026"}}
		ctrl := NewEventController(testLogger, svc)

		w := httptest.NewRecorder()
		ctrl.Update(w, newReq(`{"title": "Open Day 2026"}`))

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "ev-1", svc.lastID)
	})

	t.Run("not found", func(t *testing.T) {
		ctrl := NewEventController(testLogger, &fakeEventSvc{updateErr: domain.ErrNotFound})

		w := httptest.NewRecorder()
		ctrl.Update(w, newReq(`{"title": "x"}`))

		require.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestEventController_Delete(t *testing.T) {
	newReq := func() *http.Request {
		r := authedRequest(http.MethodDelete, "/events/ev-1", "", "admin-1")
		r.SetPathValue("eventID", "ev-1")
		return r
	}

	t.Run("success", func(t *testing.T) {
		svc := &fakeEventSvc{}
		ctrl := NewEventController(testLogger, svc)

		w := httptest.NewRecorder()
		ctrl.Delete(w, newReq())

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "ev-1", svc.lastID)
	})

	t.Run("not found", func(t *testing.T) {
		ctrl := NewEventController(testLogger, &fakeEventSvc{deleteErr: domain.ErrNotFound})

		w := httptest.NewRecorder()
		ctrl.Delete(w, newReq())

		require.Equal(t, http.StatusNotFound, w.Code)
	})
}
