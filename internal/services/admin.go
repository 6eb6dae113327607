package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"newsletterplatform/internal/domain"
)

const newsletterSubject = "Your Latest Newsletter"

type adminService struct {
	adminRepo      domain.AdminRepository
	subscriberRepo domain.SubscriberRepository
	newsletterRepo domain.NewsletterRepository
	hasher         domain.PasswordHasher
	tokenIssuer    domain.TokenIssuer
	dispatcher     domain.EmailDispatcher
	baseURL        string
	logger         *slog.Logger
}

// NewAdminService creates an AdminService with the given repositories,
// auth ports, and email dispatcher.
func NewAdminService(
	adminRepo domain.AdminRepository,
	subscriberRepo domain.SubscriberRepository,
	newsletterRepo domain.NewsletterRepository,
	hasher domain.PasswordHasher,
	tokenIssuer domain.TokenIssuer,
	dispatcher domain.EmailDispatcher,
	baseURL string,
	logger *slog.Logger,
) domain.AdminService {
	return &adminService{
		adminRepo:      adminRepo,
		subscriberRepo: subscriberRepo,
		newsletterRepo: newsletterRepo,
		hasher:         hasher,
		tokenIssuer:    tokenIssuer,
		dispatcher:     dispatcher,
		baseURL:        strings.TrimSuffix(baseURL, "/"),
		logger:         logger,
	}
}

func (s *adminService) Register(ctx context.Context, username, email, password, role string) (*domain.Admin, error) {
	if role == "" {
		role = domain.RoleAdmin
	}
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	admin := &domain.Admin{
		Username:     strings.TrimSpace(username),
		Email:        strings.TrimSpace(strings.ToLower(email)),
		PasswordHash: hash,
		Role:         role,
	}
	if err := s.adminRepo.Create(ctx, admin); err != nil {
		if errors.Is(err, domain.ErrDuplicateAdmin) {
			return nil, domain.ConflictError("Username or email already exists")
		}
		return nil, fmt.Errorf("failed to create admin: %w", err)
	}
	s.logger.Info("admin registered", "username", admin.Username)
	return admin, nil
}

func (s *adminService) Login(ctx context.Context, email, password string) (string, *domain.Admin, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	admin, err := s.adminRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrAdminNotFound) {
			s.logger.Warn("login failed, admin not found", "email", email)
			return "", nil, domain.UnauthorizedError("Invalid email or password")
		}
		return "", nil, fmt.Errorf("failed to get admin: %w", err)
	}
	if err := s.hasher.Compare(admin.PasswordHash, password); err != nil {
		s.logger.Warn("login failed, incorrect password", "email", email)
		return "", nil, domain.UnauthorizedError("Invalid email or password")
	}
	token, err := s.tokenIssuer.Issue(admin.ID, admin.Email)
	if err != nil {
		return "", nil, fmt.Errorf("failed to issue token: %w", err)
	}
	s.logger.Info("admin logged in", "username", admin.Username)
	return token, admin, nil
}

// SendNewsletter broadcasts the latest active newsletter to every
// subscribed user. A failed dispatch for one recipient is logged and
// counted; it never aborts the rest of the broadcast.
func (s *adminService) SendNewsletter(ctx context.Context) (*domain.BroadcastResult, error) {
	newsletter, err := s.newsletterRepo.Latest(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrNewsletterNotFound) {
			return nil, domain.NotFoundError("No newsletter available to send")
		}
		return nil, fmt.Errorf("failed to get latest newsletter: %w", err)
	}

	subscribers, err := s.subscriberRepo.AllSubscribed(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list subscribers: %w", err)
	}
	if len(subscribers) == 0 {
		s.logger.Info("no subscribed users, nothing to send")
		return &domain.BroadcastResult{}, nil
	}

	newsletterLink := fmt.Sprintf("%s/newsletters/%d", s.baseURL, newsletter.ID)
	result := &domain.BroadcastResult{}
	for _, sub := range subscribers {
		replacements := map[string]string{
			"username":        "Valued User",
			"newsletterTitle": newsletter.Title,
			"newsletterLink":  newsletterLink,
			"unsubscribeLink": fmt.Sprintf("%s/user/%d/unsubscribe", s.baseURL, sub.ID),
		}
		if err := s.dispatcher.Send(ctx, sub.Email, newsletterSubject, "newsletter", replacements); err != nil {
			s.logger.Error("newsletter email failed", "to", sub.Email, "err", err)
			result.Failed++
			continue
		}
		result.Sent++
	}
	s.logger.Info("newsletter broadcast finished", "sent", result.Sent, "failed", result.Failed)
	return result, nil
}
