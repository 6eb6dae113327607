package controllers

import (
	"log/slog"
	"net/http"
	"regexp"
	"strings"

	"newsletterplatform/internal/delivery/http/helpers"
	"newsletterplatform/internal/domain"
)

// emailRegex accepts addr-spec shaped strings; it is a format gate, not an
// RFC 5322 parser.
var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type AdminController struct {
	Logger  *slog.Logger
	Service domain.AdminService
}

func NewAdminController(logger *slog.Logger, svc domain.AdminService) *AdminController {
	return &AdminController{
		Logger:  logger,
		Service: svc,
	}
}

// RegisterRequest is the request body for POST /admin/register.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"`
}

// Validate implements helpers.Validator. All failed rules are collected.
func (req *RegisterRequest) Validate() []helpers.FieldError {
	var errs []helpers.FieldError
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)
	if len(req.Username) < 3 {
		errs = append(errs, helpers.FieldError{Path: "username", Message: "Username must be at least 3 characters long"})
	}
	if !emailRegex.MatchString(req.Email) {
		errs = append(errs, helpers.FieldError{Path: "email", Message: "Invalid email format"})
	}
	if len(req.Password) < 8 {
		errs = append(errs, helpers.FieldError{Path: "password", Message: "Password must be at least 8 characters long"})
	}
	if req.Role != "" && req.Role != domain.RoleAdmin && req.Role != domain.RoleCoAdmin {
		errs = append(errs, helpers.FieldError{Path: "role", Message: "Role must be either admin or co-admin"})
	}
	return errs
}

// RegisterSuccessResponse is the success response envelope for POST /admin/register (201).
type RegisterSuccessResponse struct {
	Data  *domain.Admin     `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// Register godoc
// @Summary Register a new admin account
// @Description Creates an admin with a bcrypt-hashed password. Role defaults to admin when omitted.
// @Tags admin
// @Accept json
// @Produce json
// @Param body body controllers.RegisterRequest true "Admin registration"
// @Success 201 {object} controllers.RegisterSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: validation_error"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/register [post]
func (c *AdminController) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if !helpers.DecodeAndValidate(w, r, c.Logger, &req) {
		return
	}
	admin, err := c.Service.Register(r.Context(), req.Username, req.Email, req.Password, req.Role)
	if err != nil {
		helpers.RespondError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, admin)
}

// LoginRequest is the request body for POST /admin/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate implements helpers.Validator.
func (req *LoginRequest) Validate() []helpers.FieldError {
	var errs []helpers.FieldError
	req.Email = strings.TrimSpace(req.Email)
	if !emailRegex.MatchString(req.Email) {
		errs = append(errs, helpers.FieldError{Path: "email", Message: "Invalid email format"})
	}
	if req.Password == "" {
		errs = append(errs, helpers.FieldError{Path: "password", Message: "Password is required"})
	}
	return errs
}

// LoginResult is the data payload for a successful login.
type LoginResult struct {
	Token     string        `json:"token"`
	TokenType string        `json:"token_type"`
	Admin     *domain.Admin `json:"admin"`
}

// LoginSuccessResponse is the success response envelope for POST /admin/login (200).
type LoginSuccessResponse struct {
	Data  *LoginResult      `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// Login godoc
// @Summary Log in as an admin
// @Description Verifies credentials and returns a bearer token valid for ten days.
// @Tags admin
// @Accept json
// @Produce json
// @Param body body controllers.LoginRequest true "Admin credentials"
// @Success 200 {object} controllers.LoginSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: validation_error"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/login [post]
func (c *AdminController) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !helpers.DecodeAndValidate(w, r, c.Logger, &req) {
		return
	}
	token, admin, err := c.Service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		helpers.RespondError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, &LoginResult{
		Token:     token,
		TokenType: "Bearer",
		Admin:     admin,
	})
}

// BroadcastSuccessResponse is the success response envelope for POST /admin/sendnewsletter (200).
type BroadcastSuccessResponse struct {
	Data  *domain.BroadcastResult `json:"data"`
	Error *helpers.APIError       `json:"error"`
}

// SendNewsletter godoc
// @Summary Broadcast the latest newsletter
// @Description Sends the most recent active newsletter to every subscribed user. Per-recipient failures are counted, not fatal.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.BroadcastSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/sendnewsletter [post]
func (c *AdminController) SendNewsletter(w http.ResponseWriter, r *http.Request) {
	result, err := c.Service.SendNewsletter(r.Context())
	if err != nil {
		helpers.RespondError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, result)
}
