package postgres

import (
	"context"
	"database/sql"
	"errors"

	"newsletterplatform/internal/domain"
)

type subscriberRepository struct {
	DB *sql.DB
}

// NewSubscriberRepository returns a domain.SubscriberRepository implemented with Postgres.
func NewSubscriberRepository(db *sql.DB) domain.SubscriberRepository {
	return &subscriberRepository{DB: db}
}

func (r *subscriberRepository) Create(ctx context.Context, s *domain.Subscriber) error {
	query := `
		INSERT INTO subscribers (email, is_subscribed)
		VALUES ($1, $2)
		RETURNING id, created_at, updated_at
	`
	err := r.DB.QueryRowContext(ctx, query, s.Email, s.IsSubscribed).
		Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateEmail
		}
		return err
	}
	return nil
}

func (r *subscriberRepository) GetByID(ctx context.Context, id int64) (*domain.Subscriber, error) {
	query := `
		SELECT id, email, is_subscribed, created_at, updated_at
		FROM subscribers
		WHERE id = $1
	`
	s := &domain.Subscriber{}
	err := r.DB.QueryRowContext(ctx, query, id).
		Scan(&s.ID, &s.Email, &s.IsSubscribed, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrSubscriberNotFound
		}
		return nil, err
	}
	return s, nil
}

// ListSubscribed returns one page of subscribed users ordered by id, plus
// the total count of subscribed users. Stable ordering keeps repeated
// listings identical absent concurrent writes.
func (r *subscriberRepository) ListSubscribed(ctx context.Context, p domain.PaginationParams) ([]*domain.Subscriber, int, error) {
	var total int
	countQuery := `SELECT COUNT(*) FROM subscribers WHERE is_subscribed = TRUE`
	if err := r.DB.QueryRowContext(ctx, countQuery).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT id, email, is_subscribed, created_at, updated_at
		FROM subscribers
		WHERE is_subscribed = TRUE
		ORDER BY id
		LIMIT $1 OFFSET $2
	`
	rows, err := r.DB.QueryContext(ctx, query, p.Limit, p.Offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var subs []*domain.Subscriber
	for rows.Next() {
		s := &domain.Subscriber{}
		if err := rows.Scan(&s.ID, &s.Email, &s.IsSubscribed, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, 0, err
		}
		subs = append(subs, s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return subs, total, nil
}

func (r *subscriberRepository) AllSubscribed(ctx context.Context) ([]*domain.Subscriber, error) {
	query := `
		SELECT id, email, is_subscribed, created_at, updated_at
		FROM subscribers
		WHERE is_subscribed = TRUE
		ORDER BY id
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subs []*domain.Subscriber
	for rows.Next() {
		s := &domain.Subscriber{}
		if err := rows.Scan(&s.ID, &s.Email, &s.IsSubscribed, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		subs = append(subs, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return subs, nil
}

func (r *subscriberRepository) UpdateSubscription(ctx context.Context, id int64, subscribed bool) (*domain.Subscriber, error) {
	query := `
		UPDATE subscribers
		SET is_subscribed = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING id, email, is_subscribed, created_at, updated_at
	`
	s := &domain.Subscriber{}
	err := r.DB.QueryRowContext(ctx, query, subscribed, id).
		Scan(&s.ID, &s.Email, &s.IsSubscribed, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrSubscriberNotFound
		}
		return nil, err
	}
	return s, nil
}
