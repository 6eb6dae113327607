package domain

import (
	"context"
	"errors"
	"time"
)

// Sentinel errors for subscriber operations.
var (
	ErrSubscriberNotFound = errors.New("subscriber not found")
	ErrDuplicateEmail     = errors.New("email already exists")
)

// Subscriber represents a newsletter subscriber. IsSubscribed is the only
// mutable field; records are never hard-deleted.
// swagger:model Subscriber
type Subscriber struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	IsSubscribed bool      `json:"isSubscribed"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// SubscriberRepository defines the interface for subscriber storage.
type SubscriberRepository interface {
	Create(ctx context.Context, sub *Subscriber) error
	GetByID(ctx context.Context, id int64) (*Subscriber, error)
	ListSubscribed(ctx context.Context, p PaginationParams) ([]*Subscriber, int, error)
	AllSubscribed(ctx context.Context) ([]*Subscriber, error)
	UpdateSubscription(ctx context.Context, id int64, subscribed bool) (*Subscriber, error)
}

// SubscriberService defines the business logic for subscriber signup and
// subscription changes. A subscription transition attempts exactly one
// notification email; delivery failure never rolls back the committed state.
type SubscriberService interface {
	Create(ctx context.Context, email string, isSubscribed *bool) (*Subscriber, error)
	List(ctx context.Context, p PaginationParams) ([]*Subscriber, int, error)
	SetSubscription(ctx context.Context, id int64, subscribed bool) (*Subscriber, error)
}
