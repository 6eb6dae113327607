package postgres

import (
	"context"
	"database/sql"
	"errors"

	"newsletterplatform/internal/domain"
)

type newsletterRepository struct {
	DB *sql.DB
}

// NewNewsletterRepository returns a domain.NewsletterRepository implemented with Postgres.
// Reads and mutations see active newsletters only.
func NewNewsletterRepository(db *sql.DB) domain.NewsletterRepository {
	return &newsletterRepository{DB: db}
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullablePtr(p *string) sql.NullString {
	if p == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *p, Valid: true}
}

func (r *newsletterRepository) Create(ctx context.Context, n *domain.Newsletter) error {
	query := `
		INSERT INTO newsletters (title, content, author, is_active)
		VALUES ($1, $2, $3, $4)
		RETURNING id, published_at
	`
	err := r.DB.QueryRowContext(ctx, query, n.Title, n.Content, nullString(n.Author), n.IsActive).
		Scan(&n.ID, &n.PublishedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateTitle
		}
		return err
	}
	return nil
}

func (r *newsletterRepository) GetByID(ctx context.Context, id int64) (*domain.Newsletter, error) {
	query := `
		SELECT id, title, content, author, is_active, published_at
		FROM newsletters
		WHERE id = $1 AND is_active = TRUE
	`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, id))
}

func (r *newsletterRepository) Latest(ctx context.Context) (*domain.Newsletter, error) {
	query := `
		SELECT id, title, content, author, is_active, published_at
		FROM newsletters
		WHERE is_active = TRUE
		ORDER BY published_at DESC, id DESC
		LIMIT 1
	`
	return r.scanOne(r.DB.QueryRowContext(ctx, query))
}

func (r *newsletterRepository) ListActive(ctx context.Context, p domain.PaginationParams) ([]*domain.Newsletter, int, error) {
	var total int
	countQuery := `SELECT COUNT(*) FROM newsletters WHERE is_active = TRUE`
	if err := r.DB.QueryRowContext(ctx, countQuery).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT id, title, content, author, is_active, published_at
		FROM newsletters
		WHERE is_active = TRUE
		ORDER BY published_at DESC, id DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.DB.QueryContext(ctx, query, p.Limit, p.Offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var newsletters []*domain.Newsletter
	for rows.Next() {
		n := &domain.Newsletter{}
		var author sql.NullString
		if err := rows.Scan(&n.ID, &n.Title, &n.Content, &author, &n.IsActive, &n.PublishedAt); err != nil {
			return nil, 0, err
		}
		n.Author = author.String
		newsletters = append(newsletters, n)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return newsletters, total, nil
}

// Update applies a partial update with COALESCE so absent fields keep their
// stored values. Inactive rows are never matched.
func (r *newsletterRepository) Update(ctx context.Context, id int64, upd domain.NewsletterUpdate) (*domain.Newsletter, error) {
	query := `
		UPDATE newsletters
		SET title   = COALESCE($1, title),
		    content = COALESCE($2, content),
		    author  = COALESCE($3, author)
		WHERE id = $4 AND is_active = TRUE
		RETURNING id, title, content, author, is_active, published_at
	`
	row := r.DB.QueryRowContext(ctx, query,
		nullablePtr(upd.Title), nullablePtr(upd.Content), nullablePtr(upd.Author), id)
	n, err := r.scanOne(row)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrDuplicateTitle
		}
		return nil, err
	}
	return n, nil
}

func (r *newsletterRepository) Deactivate(ctx context.Context, id int64) error {
	query := `
		UPDATE newsletters
		SET is_active = FALSE
		WHERE id = $1 AND is_active = TRUE
	`
	result, err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNewsletterNotFound
	}
	return nil
}

func (r *newsletterRepository) scanOne(row *sql.Row) (*domain.Newsletter, error) {
	n := &domain.Newsletter{}
	var author sql.NullString
	err := row.Scan(&n.ID, &n.Title, &n.Content, &author, &n.IsActive, &n.PublishedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNewsletterNotFound
		}
		return nil, err
	}
	n.Author = author.String
	return n, nil
}
