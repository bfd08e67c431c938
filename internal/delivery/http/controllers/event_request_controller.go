package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"regexp"
	"time"

	"eventhub/internal/delivery/http/helpers"
	"eventhub/internal/delivery/http/middleware"
	"eventhub/internal/domain"
)

// uuidRegex matches a canonical UUID string (8-4-4-4-12 hex).
var uuidRegex = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)

type EventRequestController struct {
	Logger  *slog.Logger
	Service domain.EventRequestService
}

func NewEventRequestController(logger *slog.Logger, svc domain.EventRequestService) *EventRequestController {
	return &EventRequestController{
		Logger:  logger,
		Service: svc,
	}
}

// CreateEventRequestRequest is the request body for POST /event-requests.
// Status and requester are server-assigned.
type CreateEventRequestRequest struct {
	ClubID      string    `json:"club_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
}

// Validate implements Validator. Returns error messages for required and format rules.
func (c CreateEventRequestRequest) Validate() []string {
	var errs []string
	if c.ClubID == "" {
		errs = append(errs, "club_id is required")
	} else if !uuidRegex.MatchString(c.ClubID) {
		errs = append(errs, "club_id must be a UUID")
	}
	if c.Title == "" {
		errs = append(errs, "title is required")
	}
	if c.StartDate.IsZero() {
		errs = append(errs, "start_date is required")
	}
	if c.EndDate.IsZero() {
		errs = append(errs, "end_date is required")
	}
	if !c.StartDate.IsZero() && !c.EndDate.IsZero() && !c.StartDate.Before(c.EndDate) {
		errs = append(errs, "start_date must be before end_date")
	}
	return errs
}

// CreateEventRequestSuccessResponse is the success response envelope for POST /event-requests (201).
type CreateEventRequestSuccessResponse struct {
	Data  *domain.EventRequest `json:"data"`
	Error *helpers.APIError    `json:"error"`
}

// Create godoc
// @Summary Submit an event request
// @Description Create a pending event request for a club. Status and requester are server-assigned; the request enters the pending state awaiting admin disposition.
// @Tags event-requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateEventRequestRequest true "Event request data"
// @Success 201 {object} controllers.CreateEventRequestSuccessResponse "data contains the created request"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /event-requests [post]
func (c *EventRequestController) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateEventRequestRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	request := domain.NewEventRequest(req.ClubID, req.Title, req.Description, req.Location, req.StartDate, req.EndDate, userID, time.Now())
	if err := c.Service.Create(r.Context(), request, userID); err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, request)
}

// ListEventRequestsResponse is the data payload for GET /event-requests (200).
type ListEventRequestsResponse struct {
	Requests   []*domain.EventRequest `json:"requests"`
	Pagination helpers.PaginationMeta `json:"pagination"`
}

// ListEventRequestsSuccessResponse is the success response envelope for GET /event-requests (200).
type ListEventRequestsSuccessResponse struct {
	Data  ListEventRequestsResponse `json:"data"`
	Error *helpers.APIError         `json:"error"`
}

// ListForAdmin godoc
// @Summary List event requests for the admin's club
// @Description Returns the event requests of the club the authenticated admin administers, newest first. An admin of no club gets an empty list. Admin role required.
// @Tags event-requests
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} controllers.ListEventRequestsSuccessResponse "data contains requests and pagination"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /event-requests [get]
func (c *EventRequestController) ListForAdmin(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	params := helpers.ParsePagination(r)
	requests, total, err := c.Service.ListForAdmin(r.Context(), userID, params)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, ListEventRequestsResponse{
		Requests:   requests,
		Pagination: helpers.NewPaginationMeta(params.Page, params.PageSize, total),
	})
}

// ListMineSuccessResponse is the success response envelope for GET /event-requests/my-requests (200).
type ListMineSuccessResponse struct {
	Data  []*domain.EventRequest `json:"data"`
	Error *helpers.APIError      `json:"error"`
}

// ListMine godoc
// @Summary List own event requests
// @Description Returns the authenticated user's event requests, newest first.
// @Tags event-requests
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.ListMineSuccessResponse "data contains the user's requests"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /event-requests/my-requests [get]
func (c *EventRequestController) ListMine(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	requests, err := c.Service.ListMine(r.Context(), userID)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, requests)
}

// GetEventRequestSuccessResponse is the success response envelope for GET /event-requests/{requestID} (200).
type GetEventRequestSuccessResponse struct {
	Data  *domain.EventRequest `json:"data"`
	Error *helpers.APIError    `json:"error"`
}

// GetByID godoc
// @Summary Get an event request by ID
// @Tags event-requests
// @Produce json
// @Security BearerAuth
// @Param requestID path string true "Event request ID (UUID)"
// @Success 200 {object} controllers.GetEventRequestSuccessResponse "data contains the request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /event-requests/{requestID} [get]
func (c *EventRequestController) GetByID(w http.ResponseWriter, r *http.Request) {
	requestID := r.PathValue("requestID")
	if requestID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing requestID")
		return
	}
	if _, ok := middleware.UserIDFromContext(r.Context()); !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	request, err := c.Service.GetByID(r.Context(), requestID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event request not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, request)
}

// UpdateEventRequestRequest is the request body for PUT /event-requests/{requestID}.
// All fields optional; omitted fields are unchanged. Setting status to
// "approved" promotes the request into a published event; "rejected" records
// the disposition with the optional admin_comment.
type UpdateEventRequestRequest struct {
	Title        *string    `json:"title"`
	Description  *string    `json:"description"`
	Location     *string    `json:"location"`
	StartDate    *time.Time `json:"start_date"`
	EndDate      *time.Time `json:"end_date"`
	AdminComment *string    `json:"admin_comment"`
	Status       *string    `json:"status"`
}

// Validate implements Validator. Status, when present, must be approved or rejected.
func (u UpdateEventRequestRequest) Validate() []string {
	var errs []string
	if u.Status != nil && *u.Status != domain.RequestStatusApproved && *u.Status != domain.RequestStatusRejected {
		errs = append(errs, "status must be approved or rejected")
	}
	if u.Title != nil && *u.Title == "" {
		errs = append(errs, "title must not be empty")
	}
	if u.StartDate != nil && u.EndDate != nil && !u.StartDate.Before(*u.EndDate) {
		errs = append(errs, "start_date must be before end_date")
	}
	return errs
}

func (u UpdateEventRequestRequest) patch() domain.EventRequestPatch {
	return domain.EventRequestPatch{
		Title:        u.Title,
		Description:  u.Description,
		Location:     u.Location,
		StartDate:    u.StartDate,
		EndDate:      u.EndDate,
		AdminComment: u.AdminComment,
		Status:       u.Status,
	}
}

// UpdateEventRequestSuccessResponse is the success response envelope for PUT /event-requests/{requestID} (200).
type UpdateEventRequestSuccessResponse struct {
	Data  *domain.EventRequest `json:"data"`
	Error *helpers.APIError    `json:"error"`
}

// Update godoc
// @Summary Update an event request
// @Description Apply a partial update. The owner may edit while the request is pending; a club admin may edit at any time. Setting status to approved promotes the request into an event (admin only); rejected records the disposition. A request that already left pending returns a conflict for further transitions.
// @Tags event-requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param requestID path string true "Event request ID (UUID)"
// @Param body body UpdateEventRequestRequest true "Fields to update (all optional)"
// @Success 200 {object} controllers.UpdateEventRequestSuccessResponse "data contains the updated request"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (request no longer pending)"
// @Failure 500 {object} helpers.APIResponse "error.code: approval_incomplete or internal_error"
// @Router /event-requests/{requestID} [put]
func (c *EventRequestController) Update(w http.ResponseWriter, r *http.Request) {
	requestID := r.PathValue("requestID")
	if requestID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing requestID")
		return
	}
	var req UpdateEventRequestRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	request, err := c.Service.Update(r.Context(), requestID, userID, req.patch())
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event request not found")
			return
		}
		if errors.Is(err, domain.ErrForbidden) {
			helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodeForbidden, "forbidden")
			return
		}
		if errors.Is(err, domain.ErrConflict) {
			helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeConflict, "request is no longer pending")
			return
		}
		var incomplete *domain.ApprovalIncompleteError
		if errors.As(err, &incomplete) {
			c.Logger.ErrorContext(r.Context(), "approval incomplete", "request_id", incomplete.RequestID, "event_id", incomplete.EventID, "err", err)
			helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeApprovalIncomplete, incomplete.Error())
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, request)
}

// DeleteEventRequestResponse is the data payload for DELETE /event-requests/{requestID} (200).
type DeleteEventRequestResponse struct {
	Status string `json:"status"`
}

// DeleteEventRequestSuccessResponse is the success response envelope for DELETE /event-requests/{requestID} (200).
type DeleteEventRequestSuccessResponse struct {
	Data  DeleteEventRequestResponse `json:"data"`
	Error *helpers.APIError          `json:"error"`
}

// Delete godoc
// @Summary Delete an event request
// @Description The owner may delete while the request is pending; a club admin may delete at any time.
// @Tags event-requests
// @Produce json
// @Security BearerAuth
// @Param requestID path string true "Event request ID (UUID)"
// @Success 200 {object} controllers.DeleteEventRequestSuccessResponse "data contains status"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /event-requests/{requestID} [delete]
func (c *EventRequestController) Delete(w http.ResponseWriter, r *http.Request) {
	requestID := r.PathValue("requestID")
	if requestID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing requestID")
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	if err := c.Service.Delete(r.Context(), requestID, userID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event request not found")
			return
		}
		if errors.Is(err, domain.ErrForbidden) {
			helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodeForbidden, "forbidden")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, DeleteEventRequestResponse{Status: "deleted"})
}
