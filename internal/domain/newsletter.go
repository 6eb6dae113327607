package domain

import (
	"context"
	"errors"
	"time"
)

// Sentinel errors for newsletter operations.
var (
	ErrNewsletterNotFound = errors.New("newsletter not found")
	ErrDuplicateTitle     = errors.New("newsletter title already exists")
)

// Newsletter represents a newsletter document. Deletion is soft: IsActive
// is flipped to false and inactive newsletters are excluded from reads and
// cannot be mutated.
// swagger:model Newsletter
type Newsletter struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	Author      string    `json:"author,omitempty"`
	IsActive    bool      `json:"isActive"`
	PublishedAt time.Time `json:"publishedAt"`
}

// NewsletterUpdate carries the optional fields of a partial update.
// Nil fields are left untouched.
type NewsletterUpdate struct {
	Title   *string
	Content *string
	Author  *string
}

// IsEmpty reports whether no fields are set.
func (u NewsletterUpdate) IsEmpty() bool {
	return u.Title == nil && u.Content == nil && u.Author == nil
}

// NewsletterRepository defines the interface for newsletter storage.
// All read and mutate operations see active newsletters only.
type NewsletterRepository interface {
	Create(ctx context.Context, n *Newsletter) error
	GetByID(ctx context.Context, id int64) (*Newsletter, error)
	Latest(ctx context.Context) (*Newsletter, error)
	ListActive(ctx context.Context, p PaginationParams) ([]*Newsletter, int, error)
	Update(ctx context.Context, id int64, upd NewsletterUpdate) (*Newsletter, error)
	Deactivate(ctx context.Context, id int64) error
}

// NewsletterService defines the business logic for newsletter documents.
type NewsletterService interface {
	Create(ctx context.Context, title, content, author string, isActive *bool) (*Newsletter, error)
	List(ctx context.Context, p PaginationParams) ([]*Newsletter, int, error)
	Get(ctx context.Context, id int64) (*Newsletter, error)
	Update(ctx context.Context, id int64, upd NewsletterUpdate) (*Newsletter, error)
	Delete(ctx context.Context, id int64) error
}
