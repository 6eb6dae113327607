package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsletterplatform/internal/domain"
)

var newsletterCols = []string{"id", "title", "content", "author", "is_active", "published_at"}

func TestNewsletterRepository_Create(t *testing.T) {
	ctx := context.Background()
	now := time.Now()

	tests := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		wantErr bool
		errIs   error
	}{
		{
			name: "success",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO newsletters`).
					WithArgs("Weekly Digest", "Content goes here.", sqlmock.AnyArg(), true).
					WillReturnRows(sqlmock.NewRows([]string{"id", "published_at"}).AddRow(int64(1), now))
			},
		},
		{
			name: "duplicate title",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO newsletters`).
					WillReturnError(&pq.Error{Code: "23505"})
			},
			wantErr: true,
			errIs:   domain.ErrDuplicateTitle,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()
			tt.mock(mock)

			repo := NewNewsletterRepository(db)
			n := &domain.Newsletter{Title: "Weekly Digest", Content: "Content goes here.", IsActive: true}
			err = repo.Create(ctx, n)
			if tt.wantErr {
				assert.ErrorIs(t, err, tt.errIs)
			} else {
				require.NoError(t, err)
				assert.Equal(t, int64(1), n.ID)
				assert.Equal(t, now, n.PublishedAt)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestNewsletterRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	now := time.Now()

	mock.ExpectQuery(`SELECT id, title, content, author, is_active, published_at`).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(newsletterCols).
			AddRow(int64(1), "Weekly Digest", "Content.", nil, true, now))

	repo := NewNewsletterRepository(db)
	n, err := repo.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Weekly Digest", n.Title)
	assert.Empty(t, n.Author, "null author scans to empty string")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestNewsletterRepository_GetByID_inactiveIsNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	// the query filters on is_active, so an inactive row comes back as no rows
	mock.ExpectQuery(`SELECT id, title, content, author, is_active, published_at`).
		WithArgs(int64(9)).
		WillReturnError(sql.ErrNoRows)

	repo := NewNewsletterRepository(db)
	_, err = repo.GetByID(context.Background(), 9)
	assert.ErrorIs(t, err, domain.ErrNewsletterNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestNewsletterRepository_ListActive(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	now := time.Now()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM newsletters`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
	mock.ExpectQuery(`SELECT id, title, content, author, is_active, published_at`).
		WithArgs(10, 0).
		WillReturnRows(sqlmock.NewRows(newsletterCols).
			AddRow(int64(3), "Third", "c", "Jo", true, now).
			AddRow(int64(2), "Second", "c", nil, true, now))

	repo := NewNewsletterRepository(db)
	newsletters, total, err := repo.ListActive(context.Background(), domain.PaginationParams{Limit: 10, Offset: 0})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, newsletters, 2)
	assert.Equal(t, "Jo", newsletters[0].Author)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestNewsletterRepository_Update(t *testing.T) {
	ctx := context.Background()
	now := time.Now()
	title := "New Title"

	tests := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		wantErr bool
		errIs   error
	}{
		{
			name: "success",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`UPDATE newsletters`).
					WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), int64(1)).
					WillReturnRows(sqlmock.NewRows(newsletterCols).
						AddRow(int64(1), "New Title", "Content.", nil, true, now))
			},
		},
		{
			name: "not found or inactive",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`UPDATE newsletters`).
					WillReturnError(sql.ErrNoRows)
			},
			wantErr: true,
			errIs:   domain.ErrNewsletterNotFound,
		},
		{
			name: "duplicate title",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`UPDATE newsletters`).
					WillReturnError(&pq.Error{Code: "23505"})
			},
			wantErr: true,
			errIs:   domain.ErrDuplicateTitle,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()
			tt.mock(mock)

			repo := NewNewsletterRepository(db)
			n, err := repo.Update(ctx, 1, domain.NewsletterUpdate{Title: &title})
			if tt.wantErr {
				assert.ErrorIs(t, err, tt.errIs)
			} else {
				require.NoError(t, err)
				assert.Equal(t, "New Title", n.Title)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestNewsletterRepository_Deactivate(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		errIs   error
	}{
		{
			name: "success",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`UPDATE newsletters`).
					WithArgs(int64(1)).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name: "already inactive",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`UPDATE newsletters`).
					WithArgs(int64(1)).
					WillReturnResult(sqlmock.NewResult(0, 0))
			},
			errIs: domain.ErrNewsletterNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()
			tt.mock(mock)

			repo := NewNewsletterRepository(db)
			err = repo.Deactivate(ctx, 1)
			if tt.errIs != nil {
				assert.ErrorIs(t, err, tt.errIs)
			} else {
				require.NoError(t, err)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
