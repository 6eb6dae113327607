package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"newsletterplatform/internal/domain"
)

type subscriberService struct {
	repo       domain.SubscriberRepository
	dispatcher domain.EmailDispatcher
	baseURL    string
	logger     *slog.Logger
}

// NewSubscriberService creates a SubscriberService. The dispatcher is used
// for the welcome and subscription-change notifications.
func NewSubscriberService(repo domain.SubscriberRepository, dispatcher domain.EmailDispatcher, baseURL string, logger *slog.Logger) domain.SubscriberService {
	return &subscriberService{
		repo:       repo,
		dispatcher: dispatcher,
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		logger:     logger,
	}
}

func (s *subscriberService) Create(ctx context.Context, email string, isSubscribed *bool) (*domain.Subscriber, error) {
	sub := &domain.Subscriber{
		Email:        strings.TrimSpace(strings.ToLower(email)),
		IsSubscribed: true,
	}
	if isSubscribed != nil {
		sub.IsSubscribed = *isSubscribed
	}
	if err := s.repo.Create(ctx, sub); err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return nil, domain.ConflictError("Email already exists")
		}
		return nil, fmt.Errorf("failed to create subscriber: %w", err)
	}

	// Welcome email after the record is committed; a delivery failure
	// leaves the created subscriber in place.
	if sub.IsSubscribed {
		replacements := map[string]string{
			"username":        "Valued User",
			"unsubscribeLink": s.unsubscribeLink(sub.ID),
		}
		if err := s.dispatcher.Send(ctx, sub.Email, "Thanks for subscribing!", "welcome", replacements); err != nil {
			s.logger.Error("welcome email failed", "to", sub.Email, "err", err)
		}
	}
	return sub, nil
}

func (s *subscriberService) List(ctx context.Context, p domain.PaginationParams) ([]*domain.Subscriber, int, error) {
	subs, total, err := s.repo.ListSubscribed(ctx, p)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list subscribers: %w", err)
	}
	if total == 0 {
		return nil, 0, domain.NotFoundError("No subscribed users found")
	}
	return subs, total, nil
}

// SetSubscription persists the new subscription state first and attempts
// exactly one notification email after the commit. A failed notification is
// logged and never rolls the state change back; the caller still sees the
// new state. A no-op update (same value) sends nothing.
func (s *subscriberService) SetSubscription(ctx context.Context, id int64, subscribed bool) (*domain.Subscriber, error) {
	sub, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrSubscriberNotFound) {
			return nil, domain.NotFoundError("User not found")
		}
		return nil, fmt.Errorf("failed to get subscriber: %w", err)
	}
	if sub.IsSubscribed == subscribed {
		return sub, nil
	}

	updated, err := s.repo.UpdateSubscription(ctx, id, subscribed)
	if err != nil {
		if errors.Is(err, domain.ErrSubscriberNotFound) {
			return nil, domain.NotFoundError("User not found")
		}
		return nil, fmt.Errorf("failed to update subscription: %w", err)
	}
	sub = updated

	statusMessage := "You have been unsubscribed from our newsletter. We're sorry to see you go."
	subject := "You have been unsubscribed"
	if subscribed {
		statusMessage = "Your subscription is active again. Welcome back!"
		subject = "Subscription confirmed"
	}
	replacements := map[string]string{
		"username":        "Valued User",
		"statusMessage":   statusMessage,
		"unsubscribeLink": s.unsubscribeLink(sub.ID),
	}
	if err := s.dispatcher.Send(ctx, sub.Email, subject, "subscription_changed", replacements); err != nil {
		s.logger.Error("subscription change email failed", "to", sub.Email, "subscribed", subscribed, "err", err)
	}
	return sub, nil
}

func (s *subscriberService) unsubscribeLink(id int64) string {
	return fmt.Sprintf("%s/user/%d/unsubscribe", s.baseURL, id)
}
