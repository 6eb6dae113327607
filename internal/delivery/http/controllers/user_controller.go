package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	"newsletterplatform/internal/delivery/http/helpers"
	"newsletterplatform/internal/domain"
)

type UserController struct {
	Logger  *slog.Logger
	Service domain.SubscriberService
}

func NewUserController(logger *slog.Logger, svc domain.SubscriberService) *UserController {
	return &UserController{
		Logger:  logger,
		Service: svc,
	}
}

// CreateUserRequest is the request body for POST /user/.
type CreateUserRequest struct {
	Email        string `json:"email"`
	IsSubscribed *bool  `json:"isSubscribed,omitempty"`
}

// Validate implements helpers.Validator.
func (req *CreateUserRequest) Validate() []helpers.FieldError {
	var errs []helpers.FieldError
	req.Email = strings.TrimSpace(req.Email)
	if !emailRegex.MatchString(req.Email) {
		errs = append(errs, helpers.FieldError{Path: "email", Message: "Invalid email format"})
	}
	return errs
}

// UserSuccessResponse is the success response envelope for single-user endpoints.
type UserSuccessResponse struct {
	Data  *domain.Subscriber `json:"data"`
	Error *helpers.APIError  `json:"error"`
}

// Create godoc
// @Summary Sign up a subscriber
// @Description Creates a subscriber. isSubscribed defaults to true; subscribed signups get a welcome email on a best-effort basis.
// @Tags user
// @Accept json
// @Produce json
// @Param body body controllers.CreateUserRequest true "Subscriber signup"
// @Success 201 {object} controllers.UserSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: validation_error"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /user/ [post]
func (c *UserController) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if !helpers.DecodeAndValidate(w, r, c.Logger, &req) {
		return
	}
	sub, err := c.Service.Create(r.Context(), req.Email, req.IsSubscribed)
	if err != nil {
		helpers.RespondError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, sub)
}

// UserListData is the data payload for subscriber list endpoints.
type UserListData struct {
	Users []*domain.Subscriber `json:"users"`
	Meta  helpers.Page         `json:"meta"`
}

// UserListSuccessResponse is the success response envelope for GET /user/ and GET /admin/ (200).
type UserListSuccessResponse struct {
	Data  *UserListData     `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// List godoc
// @Summary List subscribed users
// @Description Returns subscribed users with pagination metadata. 404 when no one is subscribed.
// @Tags user
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Page size (max 100)" default(20)
// @Param offset query int false "Row offset" default(0)
// @Success 200 {object} controllers.UserListSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /user/ [get]
func (c *UserController) List(w http.ResponseWriter, r *http.Request) {
	p := helpers.ParsePagination(r)
	users, total, err := c.Service.List(r.Context(), p)
	if err != nil {
		helpers.RespondError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, &UserListData{
		Users: users,
		Meta:  helpers.NewPage(p, total),
	})
}

// SetSubscriptionRequest is the request body for PATCH /user/{id}/subscription.
type SetSubscriptionRequest struct {
	IsSubscribed *bool `json:"isSubscribed"`
}

// Validate implements helpers.Validator.
func (req *SetSubscriptionRequest) Validate() []helpers.FieldError {
	if req.IsSubscribed == nil {
		return []helpers.FieldError{{Path: "isSubscribed", Message: "isSubscribed is required and must be a boolean"}}
	}
	return nil
}

// SetSubscription godoc
// @Summary Change a user's subscription state
// @Description Commits the new state, then attempts exactly one notification email. The response reflects the committed state even when the email fails.
// @Tags user
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param body body controllers.SetSubscriptionRequest true "New subscription state"
// @Success 200 {object} controllers.UserSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: validation_error"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /user/{id}/subscription [patch]
func (c *UserController) SetSubscription(w http.ResponseWriter, r *http.Request) {
	id, err := helpers.ParseID(r, "id")
	if err != nil {
		helpers.RespondError(w, r, c.Logger, err)
		return
	}
	var req SetSubscriptionRequest
	if !helpers.DecodeAndValidate(w, r, c.Logger, &req) {
		return
	}
	sub, err := c.Service.SetSubscription(r.Context(), id, *req.IsSubscribed)
	if err != nil {
		helpers.RespondError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, sub)
}
