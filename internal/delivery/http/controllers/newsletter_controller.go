package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	"newsletterplatform/internal/delivery/http/helpers"
	"newsletterplatform/internal/domain"
)

const (
	minTitleLen   = 5
	minContentLen = 15
)

type NewsletterController struct {
	Logger  *slog.Logger
	Service domain.NewsletterService
}

func NewNewsletterController(logger *slog.Logger, svc domain.NewsletterService) *NewsletterController {
	return &NewsletterController{
		Logger:  logger,
		Service: svc,
	}
}

// CreateNewsletterRequest is the request body for POST /newsletters/.
type CreateNewsletterRequest struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Author   string `json:"author,omitempty"`
	IsActive *bool  `json:"isActive,omitempty"`
}

// Validate implements helpers.Validator. All failed rules are collected.
func (req *CreateNewsletterRequest) Validate() []helpers.FieldError {
	var errs []helpers.FieldError
	req.Title = strings.TrimSpace(req.Title)
	req.Author = strings.TrimSpace(req.Author)
	if len(req.Title) < minTitleLen {
		errs = append(errs, helpers.FieldError{Path: "title", Message: "Title must be at least 5 characters long"})
	}
	if len(strings.TrimSpace(req.Content)) < minContentLen {
		errs = append(errs, helpers.FieldError{Path: "content", Message: "Content must be at least 15 characters long"})
	}
	return errs
}

// NewsletterSuccessResponse is the success response envelope for single-newsletter endpoints.
type NewsletterSuccessResponse struct {
	Data  *domain.Newsletter `json:"data"`
	Error *helpers.APIError  `json:"error"`
}

// Create godoc
// @Summary Create a newsletter
// @Description Creates a newsletter document. isActive defaults to true.
// @Tags newsletters
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body controllers.CreateNewsletterRequest true "Newsletter document"
// @Success 201 {object} controllers.NewsletterSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: validation_error"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /newsletters/ [post]
func (c *NewsletterController) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateNewsletterRequest
	if !helpers.DecodeAndValidate(w, r, c.Logger, &req) {
		return
	}
	n, err := c.Service.Create(r.Context(), req.Title, req.Content, req.Author, req.IsActive)
	if err != nil {
		helpers.RespondError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, n)
}

// NewsletterListData is the data payload for GET /newsletters/.
type NewsletterListData struct {
	Newsletters []*domain.Newsletter `json:"newsletters"`
	Meta        helpers.Page         `json:"meta"`
}

// NewsletterListSuccessResponse is the success response envelope for GET /newsletters/ (200).
type NewsletterListSuccessResponse struct {
	Data  *NewsletterListData `json:"data"`
	Error *helpers.APIError   `json:"error"`
}

// List godoc
// @Summary List active newsletters
// @Description Returns active newsletters, newest first, with pagination metadata.
// @Tags newsletters
// @Produce json
// @Param limit query int false "Page size (max 100)" default(20)
// @Param offset query int false "Row offset" default(0)
// @Success 200 {object} controllers.NewsletterListSuccessResponse
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /newsletters/ [get]
func (c *NewsletterController) List(w http.ResponseWriter, r *http.Request) {
	p := helpers.ParsePagination(r)
	items, total, err := c.Service.List(r.Context(), p)
	if err != nil {
		helpers.RespondError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, &NewsletterListData{
		Newsletters: items,
		Meta:        helpers.NewPage(p, total),
	})
}

// Get godoc
// @Summary Get a newsletter by ID
// @Description Returns the newsletter when it exists and is active; 404 otherwise.
// @Tags newsletters
// @Produce json
// @Param id path int true "Newsletter ID"
// @Success 200 {object} controllers.NewsletterSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /newsletters/{id} [get]
func (c *NewsletterController) Get(w http.ResponseWriter, r *http.Request) {
	id, err := helpers.ParseID(r, "id")
	if err != nil {
		helpers.RespondError(w, r, c.Logger, err)
		return
	}
	n, err := c.Service.Get(r.Context(), id)
	if err != nil {
		helpers.RespondError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, n)
}

// UpdateNewsletterRequest is the request body for PATCH /newsletters/{id}.
// Absent fields are left unchanged.
type UpdateNewsletterRequest struct {
	Title   *string `json:"title,omitempty"`
	Content *string `json:"content,omitempty"`
	Author  *string `json:"author,omitempty"`
}

// Validate implements helpers.Validator. Only present fields are checked.
func (req *UpdateNewsletterRequest) Validate() []helpers.FieldError {
	var errs []helpers.FieldError
	if req.Title != nil {
		trimmed := strings.TrimSpace(*req.Title)
		req.Title = &trimmed
		if len(trimmed) < minTitleLen {
			errs = append(errs, helpers.FieldError{Path: "title", Message: "Title must be at least 5 characters long"})
		}
	}
	if req.Content != nil && len(strings.TrimSpace(*req.Content)) < minContentLen {
		errs = append(errs, helpers.FieldError{Path: "content", Message: "Content must be at least 15 characters long"})
	}
	return errs
}

// Update godoc
// @Summary Update a newsletter
// @Description Partially updates an active newsletter. An empty body is rejected; inactive newsletters are 404.
// @Tags newsletters
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Newsletter ID"
// @Param body body controllers.UpdateNewsletterRequest true "Fields to change"
// @Success 200 {object} controllers.NewsletterSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request or validation_error"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /newsletters/{id} [patch]
func (c *NewsletterController) Update(w http.ResponseWriter, r *http.Request) {
	id, err := helpers.ParseID(r, "id")
	if err != nil {
		helpers.RespondError(w, r, c.Logger, err)
		return
	}
	var req UpdateNewsletterRequest
	if !helpers.DecodeAndValidate(w, r, c.Logger, &req) {
		return
	}
	n, err := c.Service.Update(r.Context(), id, domain.NewsletterUpdate{
		Title:   req.Title,
		Content: req.Content,
		Author:  req.Author,
	})
	if err != nil {
		helpers.RespondError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, n)
}

// Delete godoc
// @Summary Soft-delete a newsletter
// @Description Marks the newsletter inactive. Deleting an already inactive newsletter is 404.
// @Tags newsletters
// @Produce json
// @Security BearerAuth
// @Param id path int true "Newsletter ID"
// @Success 204 "No Content"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /newsletters/{id} [delete]
func (c *NewsletterController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := helpers.ParseID(r, "id")
	if err != nil {
		helpers.RespondError(w, r, c.Logger, err)
		return
	}
	if err := c.Service.Delete(r.Context(), id); err != nil {
		helpers.RespondError(w, r, c.Logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
