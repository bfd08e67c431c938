package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"eventhub/internal/delivery/http/helpers"
	"eventhub/internal/delivery/http/middleware"
	"eventhub/internal/domain"
)

type ClubController struct {
	Logger  *slog.Logger
	Service domain.ClubService
}

func NewClubController(logger *slog.Logger, svc domain.ClubService) *ClubController {
	return &ClubController{
		Logger:  logger,
		Service: svc,
	}
}

// ListClubsSuccessResponse is the success response envelope for GET /clubs (200).
type ListClubsSuccessResponse struct {
	Data  []*domain.Club    `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// List godoc
// @Summary List clubs
// @Description Returns all clubs ordered by name. Public, no authentication required.
// @Tags clubs
// @Produce json
// @Success 200 {object} controllers.ListClubsSuccessResponse "data contains the clubs"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /clubs [get]
func (c *ClubController) List(w http.ResponseWriter, r *http.Request) {
	clubs, err := c.Service.List(r.Context())
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, clubs)
}

// ClubDetailResponse is the data payload for GET /clubs/{clubID} (200).
type ClubDetailResponse struct {
	Club  *domain.Club   `json:"club"`
	Teams []*domain.Team `json:"teams"`
}

// ClubDetailSuccessResponse is the success response envelope for GET /clubs/{clubID} (200).
type ClubDetailSuccessResponse struct {
	Data  ClubDetailResponse `json:"data"`
	Error *helpers.APIError  `json:"error"`
}

// Get godoc
// @Summary Get a club with its teams
// @Description Returns the club and its teams. Club admins only.
// @Tags clubs
// @Produce json
// @Security BearerAuth
// @Param clubID path string true "Club ID (UUID)"
// @Success 200 {object} controllers.ClubDetailSuccessResponse "data contains club and teams"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /clubs/{clubID} [get]
func (c *ClubController) Get(w http.ResponseWriter, r *http.Request) {
	clubID := r.PathValue("clubID")
	if clubID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing clubID")
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	club, teams, err := c.Service.Get(r.Context(), clubID, userID)
	if err != nil {
		c.writeClubError(w, r, err, "club not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, ClubDetailResponse{Club: club, Teams: teams})
}

// RenameClubRequest is the request body for PATCH /clubs/{clubID}.
type RenameClubRequest struct {
	Name string `json:"name"`
}

// Validate implements Validator.
func (u RenameClubRequest) Validate() []string {
	if u.Name == "" {
		return []string{"name is required"}
	}
	return nil
}

// RenameClubResponse is the data payload for PATCH /clubs/{clubID} (200).
type RenameClubResponse struct {
	Status string `json:"status"`
}

// RenameClubSuccessResponse is the success response envelope for PATCH /clubs/{clubID} (200).
type RenameClubSuccessResponse struct {
	Data  RenameClubResponse `json:"data"`
	Error *helpers.APIError  `json:"error"`
}

// Rename godoc
// @Summary Rename a club
// @Description Changes the club name. Club admins only.
// @Tags clubs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param clubID path string true "Club ID (UUID)"
// @Param request body RenameClubRequest true "New name"
// @Success 200 {object} controllers.RenameClubSuccessResponse "data contains status"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /clubs/{clubID} [patch]
func (c *ClubController) Rename(w http.ResponseWriter, r *http.Request) {
	clubID := r.PathValue("clubID")
	if clubID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing clubID")
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	var req RenameClubRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	if err := c.Service.Rename(r.Context(), clubID, userID, req.Name); err != nil {
		c.writeClubError(w, r, err, "club not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, RenameClubResponse{Status: "updated"})
}

// PresidentSuccessResponse is the success response envelope for GET /clubs/{clubID}/president (200).
type PresidentSuccessResponse struct {
	Data  *domain.ClubPresident `json:"data"`
	Error *helpers.APIError     `json:"error"`
}

// GetPresident godoc
// @Summary Get the club president
// @Tags clubs
// @Produce json
// @Security BearerAuth
// @Param clubID path string true "Club ID (UUID)"
// @Success 200 {object} controllers.PresidentSuccessResponse "data contains the president assignment"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /clubs/{clubID}/president [get]
func (c *ClubController) GetPresident(w http.ResponseWriter, r *http.Request) {
	clubID := r.PathValue("clubID")
	if clubID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing clubID")
		return
	}
	if _, ok := middleware.UserIDFromContext(r.Context()); !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	pres, err := c.Service.GetPresident(r.Context(), clubID)
	if err != nil {
		c.writeClubError(w, r, err, "no president assigned")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, pres)
}

// SetPresidentRequest is the request body for PUT /clubs/{clubID}/president.
type SetPresidentRequest struct {
	UserID string `json:"user_id"`
}

// Validate implements Validator.
func (s SetPresidentRequest) Validate() []string {
	var errs []string
	if s.UserID == "" {
		errs = append(errs, "user_id is required")
	} else if !uuidRegex.MatchString(s.UserID) {
		errs = append(errs, "user_id must be a UUID")
	}
	return errs
}

// SetPresidentResponse is the data payload for PUT /clubs/{clubID}/president (200).
type SetPresidentResponse struct {
	Status string `json:"status"`
}

// SetPresidentSuccessResponse is the success response envelope for PUT /clubs/{clubID}/president (200).
type SetPresidentSuccessResponse struct {
	Data  SetPresidentResponse `json:"data"`
	Error *helpers.APIError    `json:"error"`
}

// SetPresident godoc
// @Summary Assign the club president
// @Description Upserts the single president assignment of the club. Club admins only.
// @Tags clubs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param clubID path string true "Club ID (UUID)"
// @Param request body SetPresidentRequest true "President user ID"
// @Success 200 {object} controllers.SetPresidentSuccessResponse "data contains status"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /clubs/{clubID}/president [put]
func (c *ClubController) SetPresident(w http.ResponseWriter, r *http.Request) {
	clubID := r.PathValue("clubID")
	if clubID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing clubID")
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	var req SetPresidentRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	if err := c.Service.SetPresident(r.Context(), clubID, userID, req.UserID); err != nil {
		c.writeClubError(w, r, err, "club not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, SetPresidentResponse{Status: "assigned"})
}

func (c *ClubController) writeClubError(w http.ResponseWriter, r *http.Request, err error, notFoundMsg string) {
	if errors.Is(err, domain.ErrNotFound) {
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, notFoundMsg)
		return
	}
	if errors.Is(err, domain.ErrForbidden) {
		helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodeForbidden, "forbidden")
		return
	}
	c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
	helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
}
