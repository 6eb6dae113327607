package http

import (
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"newsletterplatform/internal/delivery/http/controllers"
	"newsletterplatform/internal/delivery/http/middleware"
	"newsletterplatform/internal/domain"
)

// NewRouter initializes the HTTP router with all application routes.
func NewRouter(
	logger *slog.Logger,
	verifier domain.TokenVerifier,
	adminController *controllers.AdminController,
	userController *controllers.UserController,
	newsletterController *controllers.NewsletterController,
) *http.ServeMux {
	mux := http.NewServeMux()
	auth := middleware.RequireAuth(verifier, logger)

	// Admin
	mux.HandleFunc("POST /api/v1/admin/register", adminController.Register)
	mux.HandleFunc("POST /api/v1/admin/login", adminController.Login)
	mux.HandleFunc("GET /api/v1/admin/{$}", auth(userController.List))
	mux.HandleFunc("POST /api/v1/admin/sendnewsletter", auth(adminController.SendNewsletter))

	// Newsletters
	mux.HandleFunc("POST /api/v1/newsletters/{$}", auth(newsletterController.Create))
	mux.HandleFunc("GET /api/v1/newsletters/{$}", newsletterController.List)
	mux.HandleFunc("GET /api/v1/newsletters/{id}", newsletterController.Get)
	mux.HandleFunc("PATCH /api/v1/newsletters/{id}", auth(newsletterController.Update))
	mux.HandleFunc("DELETE /api/v1/newsletters/{id}", auth(newsletterController.Delete))

	// Users
	mux.HandleFunc("POST /api/v1/user/{$}", userController.Create)
	mux.HandleFunc("GET /api/v1/user/{$}", auth(userController.List))
	mux.HandleFunc("PATCH /api/v1/user/{id}/subscription", userController.SetSubscription)

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
