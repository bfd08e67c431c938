package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"eventhub/internal/delivery/http/helpers"
	"eventhub/internal/delivery/http/middleware"
	"eventhub/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testLogger is a no-op logger for controller tests so we don't assert on log output.
var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

// fakeEventRequestSvc implements domain.EventRequestService for handler tests.
type fakeEventRequestSvc struct {
	createErr          error
	lastCreated        *domain.EventRequest
	lastCreateActorID  string
	listForAdminResult []*domain.EventRequest
	listForAdminTotal  int
	listForAdminErr    error
	lastListParams     domain.PaginationParams
	listMineResult     []*domain.EventRequest
	listMineErr        error
	getResult          *domain.EventRequest
	getErr             error
	updateResult       *domain.EventRequest
	updateErr          error
	lastUpdateID       string
	lastUpdateActorID  string
	lastUpdatePatch    domain.EventRequestPatch
	deleteErr          error
	lastDeleteID       string
	lastDeleteActorID  string
}

func (f *fakeEventRequestSvc) Create(ctx context.Context, req *domain.EventRequest, actorID string) error {
	f.lastCreated = req
	f.lastCreateActorID = actorID
	if f.createErr != nil {
		return f.createErr
	}
	req.ID = "req-1"
	return nil
}

func (f *fakeEventRequestSvc) ListForAdmin(ctx context.Context, actorID string, params domain.PaginationParams) ([]*domain.EventRequest, int, error) {
	f.lastListParams = params
	return f.listForAdminResult, f.listForAdminTotal, f.listForAdminErr
}

func (f *fakeEventRequestSvc) ListMine(ctx context.Context, actorID string) ([]*domain.EventRequest, error) {
	return f.listMineResult, f.listMineErr
}

func (f *fakeEventRequestSvc) GetByID(ctx context.Context, id string) (*domain.EventRequest, error) {
	return f.getResult, f.getErr
}

func (f *fakeEventRequestSvc) Update(ctx context.Context, id, actorID string, patch domain.EventRequestPatch) (*domain.EventRequest, error) {
	f.lastUpdateID = id
	f.lastUpdateActorID = actorID
	f.lastUpdatePatch = patch
	return f.updateResult, f.updateErr
}

func (f *fakeEventRequestSvc) Delete(ctx context.Context, id, actorID string) error {
	f.lastDeleteID = id
	f.lastDeleteActorID = actorID
	return f.deleteErr
}

func authedRequest(method, target string, body string, userID string) *http.Request {
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, target, nil)
	} else {
		r = httptest.NewRequest(method, target, bytes.NewBufferString(body))
	}
	if userID != "" {
		r = r.WithContext(middleware.SetUserID(r.Context(), userID))
	}
	return r
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) helpers.APIResponse {
	t.Helper()
	var resp helpers.APIResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	return resp
}

func TestEventRequestController_Create(t *testing.T) {
	validBody := `{
		"club_id": "11111111-2222-3333-4444-555555555555",
		"title": "Hack Night",
		"description": "Overnight hackathon",
		"location": "Lab 3",
		"start_date": "2026-04-10T18:00:00Z",
		"end_date": "2026-04-11T06:00:00Z"
	}`

	t.Run("success", func(t *testing.T) {
		svc := &fakeEventRequestSvc{}
		ctrl := NewEventRequestController(testLogger, svc)

		w := httptest.NewRecorder()
		ctrl.Create(w, authedRequest(http.MethodPost, "/event-requests", validBody, "user-1"))

		require.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, "user-1", svc.lastCreateActorID)
		require.NotNil(t, svc.lastCreated)
		assert.Equal(t, "Hack Night", svc.lastCreated.Title)
		resp := decodeEnvelope(t, w)
		assert.Nil(t, resp.Error)
	})

	t.Run("missing title", func(t *testing.T) {
		body := strings.Replace(validBody, `"title": "Hack Night",`, `"title": "",`, 1)
		ctrl := NewEventRequestController(testLogger, &fakeEventRequestSvc{})

		w := httptest.NewRecorder()
		ctrl.Create(w, authedRequest(http.MethodPost, "/event-requests", body, "user-1"))

		require.Equal(t, http.StatusBadRequest, w.Code)
		resp := decodeEnvelope(t, w)
		require.NotNil(t, resp.Error)
		assert.Equal(t, helpers.ErrCodeBadRequest, resp.Error.Code)
		assert.Contains(t, resp.Error.Message, "title is required")
	})

	t.Run("start after end", func(t *testing.T) {
		body := strings.Replace(validBody, "2026-04-11T06:00:00Z", "2026-04-10T12:00:00Z", 1)
		ctrl := NewEventRequestController(testLogger, &fakeEventRequestSvc{})

		w := httptest.NewRecorder()
		ctrl.Create(w, authedRequest(http.MethodPost, "/event-requests", body, "user-1"))

		require.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("no user in context", func(t *testing.T) {
		ctrl := NewEventRequestController(testLogger, &fakeEventRequestSvc{})

		w := httptest.NewRecorder()
		ctrl.Create(w, authedRequest(http.MethodPost, "/event-requests", validBody, ""))

		require.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestEventRequestController_ListForAdmin(t *testing.T) {
	svc := &fakeEventRequestSvc{
		listForAdminResult: []*domain.EventRequest{{ID: "req-1", Title: "Hack Night"}},
		listForAdminTotal:  42,
	}
	ctrl := NewEventRequestController(testLogger, svc)

	w := httptest.NewRecorder()
	ctrl.ListForAdmin(w, authedRequest(http.MethodGet, "/event-requests?page=2&page_size=10", "", "admin-1"))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, domain.PaginationParams{Page: 2, PageSize: 10}, svc.lastListParams)

	var resp struct {
		Data struct {
			Requests   []*domain.EventRequest `json:"requests"`
			Pagination helpers.PaginationMeta `json:"pagination"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	require.Len(t, resp.Data.Requests, 1)
	assert.Equal(t, 42, resp.Data.Pagination.Total)
	assert.Equal(t, 5, resp.Data.Pagination.TotalPages)
}

func TestEventRequestController_Update(t *testing.T) {
	newReq := func(body string) *http.Request {
		r := authedRequest(http.MethodPut, "/event-requests/req-1", body, "admin-1")
		r.SetPathValue("requestID", "req-1")
		return r
	}

	t.Run("approval success", func(t *testing.T) {
		comment := "room booked"
		svc := &fakeEventRequestSvc{
			updateResult: &domain.EventRequest{ID: "req-1", Status: domain.RequestStatusApproved, AdminComment: &comment},
		}
		ctrl := NewEventRequestController(testLogger, svc)

		w := httptest.NewRecorder()
		ctrl.Update(w, newReq(`{"status": "approved", "admin_comment": "room booked"}`))

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "req-1", svc.lastUpdateID)
		assert.Equal(t, "admin-1", svc.lastUpdateActorID)
		require.NotNil(t, svc.lastUpdatePatch.Status)
		assert.Equal(t, domain.RequestStatusApproved, *svc.lastUpdatePatch.Status)
	})

	t.Run("invalid status value", func(t *testing.T) {
		ctrl := NewEventRequestController(testLogger, &fakeEventRequestSvc{})

		w := httptest.NewRecorder()
		ctrl.Update(w, newReq(`{"status": "archived"}`))

		require.Equal(t, http.StatusBadRequest, w.Code)
		resp := decodeEnvelope(t, w)
		require.NotNil(t, resp.Error)
		assert.Contains(t, resp.Error.Message, "status must be approved or rejected")
	})

	t.Run("error mapping", func(t *testing.T) {
		tests := []struct {
			name     string
			err      error
			wantCode int
			wantErr  string
		}{
			{"not found", domain.ErrNotFound, http.StatusNotFound, helpers.ErrCodeNotFound},
			{"forbidden", domain.ErrForbidden, http.StatusForbidden, helpers.ErrCodeForbidden},
			{"conflict", domain.ErrConflict, http.StatusConflict, helpers.ErrCodeConflict},
			{
				"approval incomplete",
				&domain.ApprovalIncompleteError{RequestID: "req-1", EventID: "ev-1", Err: errors.New("commit lost")},
				http.StatusInternalServerError,
				helpers.ErrCodeApprovalIncomplete,
			},
			{"other", errors.New("boom"), http.StatusInternalServerError, helpers.ErrCodeInternalError},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				ctrl := NewEventRequestController(testLogger, &fakeEventRequestSvc{updateErr: tt.err})

				w := httptest.NewRecorder()
				ctrl.Update(w, newReq(`{"status": "approved"}`))

				require.Equal(t, tt.wantCode, w.Code)
				resp := decodeEnvelope(t, w)
				require.NotNil(t, resp.Error)
				assert.Equal(t, tt.wantErr, resp.Error.Code)
			})
		}
	})

	t.Run("unknown field rejected", func(t *testing.T) {
		ctrl := NewEventRequestController(testLogger, &fakeEventRequestSvc{})

		w := httptest.NewRecorder()
		ctrl.Update(w, newReq(`{"requested_by": "someone-else"}`))

		require.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestEventRequestController_GetByID(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &fakeEventRequestSvc{getResult: &domain.EventRequest{ID: "req-1", Status: domain.RequestStatusPending}}
		ctrl := NewEventRequestController(testLogger, svc)

		r := authedRequest(http.MethodGet, "/event-requests/req-1", "", "user-1")
		r.SetPathValue("requestID", "req-1")
		w := httptest.NewRecorder()
		ctrl.GetByID(w, r)

		require.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("not found", func(t *testing.T) {
		ctrl := NewEventRequestController(testLogger, &fakeEventRequestSvc{getErr: domain.ErrNotFound})

		r := authedRequest(http.MethodGet, "/event-requests/req-x", "", "user-1")
		r.SetPathValue("requestID", "req-x")
		w := httptest.NewRecorder()
		ctrl.GetByID(w, r)

		require.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestEventRequestController_Delete(t *testing.T) {
	newReq := func(userID string) *http.Request {
		r := authedRequest(http.MethodDelete, "/event-requests/req-1", "", userID)
		r.SetPathValue("requestID", "req-1")
		return r
	}

	t.Run("success", func(t *testing.T) {
		svc := &fakeEventRequestSvc{}
		ctrl := NewEventRequestController(testLogger, svc)

		w := httptest.NewRecorder()
		ctrl.Delete(w, newReq("user-1"))

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "req-1", svc.lastDeleteID)
		assert.Equal(t, "user-1", svc.lastDeleteActorID)
	})

	t.Run("forbidden", func(t *testing.T) {
		ctrl := NewEventRequestController(testLogger, &fakeEventRequestSvc{deleteErr: domain.ErrForbidden})

		w := httptest.NewRecorder()
		ctrl.Delete(w, newReq("user-2"))

		require.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("not found", func(t *testing.T) {
		ctrl := NewEventRequestController(testLogger, &fakeEventRequestSvc{deleteErr: domain.ErrNotFound})

		w := httptest.NewRecorder()
		ctrl.Delete(w, newReq("user-1"))

		require.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestEventRequestController_ListMine(t *testing.T) {
	start := time.Date(2026, 4, 10, 18, 0, 0, 0, time.UTC)
	svc := &fakeEventRequestSvc{
		listMineResult: []*domain.EventRequest{{ID: "req-1", Title: "Hack Night", StartDate: start}},
	}
	ctrl := NewEventRequestController(testLogger, svc)

	w := httptest.NewRecorder()
	ctrl.ListMine(w, authedRequest(http.MethodGet, "/event-requests/my-requests", "", "user-1"))

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Data []*domain.EventRequest `json:"data"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "Hack Night", resp.Data[0].Title)
}
