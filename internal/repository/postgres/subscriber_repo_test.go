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

func TestSubscriberRepository_Create(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 2, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		wantErr bool
		errIs   error
	}{
		{
			name: "success",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO subscribers`).
					WithArgs("alice@example.com", true).
					WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).
						AddRow(int64(1), now, now))
			},
		},
		{
			name: "unique violation returns ErrDuplicateEmail",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO subscribers`).
					WillReturnError(&pq.Error{Code: "23505"})
			},
			wantErr: true,
			errIs:   domain.ErrDuplicateEmail,
		},
		{
			name: "db error",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO subscribers`).
					WillReturnError(sql.ErrConnDone)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()
			tt.mock(mock)

			repo := NewSubscriberRepository(db)
			sub := &domain.Subscriber{Email: "alice@example.com", IsSubscribed: true}
			err = repo.Create(ctx, sub)
			if tt.wantErr {
				require.Error(t, err)
				if tt.errIs != nil {
					assert.ErrorIs(t, err, tt.errIs)
				}
			} else {
				require.NoError(t, err)
				assert.Equal(t, int64(1), sub.ID)
				assert.Equal(t, now, sub.CreatedAt)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestSubscriberRepository_GetByID_notFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT id, email, is_subscribed, created_at, updated_at`).
		WithArgs(int64(42)).
		WillReturnError(sql.ErrNoRows)

	repo := NewSubscriberRepository(db)
	_, err = repo.GetByID(context.Background(), 42)
	assert.ErrorIs(t, err, domain.ErrSubscriberNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSubscriberRepository_ListSubscribed(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	now := time.Now()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM subscribers`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(5))
	mock.ExpectQuery(`SELECT id, email, is_subscribed, created_at, updated_at`).
		WithArgs(2, 0).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "is_subscribed", "created_at", "updated_at"}).
			AddRow(int64(1), "a@example.com", true, now, now).
			AddRow(int64(2), "b@example.com", true, now, now))

	repo := NewSubscriberRepository(db)
	subs, total, err := repo.ListSubscribed(context.Background(), domain.PaginationParams{Limit: 2, Offset: 0})
	require.NoError(t, err)
	assert.Equal(t, 5, total)
	require.Len(t, subs, 2)
	assert.Equal(t, "a@example.com", subs[0].Email)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSubscriberRepository_UpdateSubscription(t *testing.T) {
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
				mock.ExpectQuery(`UPDATE subscribers`).
					WithArgs(false, int64(1)).
					WillReturnRows(sqlmock.NewRows([]string{"id", "email", "is_subscribed", "created_at", "updated_at"}).
						AddRow(int64(1), "a@example.com", false, now, now))
			},
		},
		{
			name: "not found",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`UPDATE subscribers`).
					WithArgs(false, int64(1)).
					WillReturnError(sql.ErrNoRows)
			},
			wantErr: true,
			errIs:   domain.ErrSubscriberNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()
			tt.mock(mock)

			repo := NewSubscriberRepository(db)
			sub, err := repo.UpdateSubscription(ctx, 1, false)
			if tt.wantErr {
				assert.ErrorIs(t, err, tt.errIs)
			} else {
				require.NoError(t, err)
				assert.False(t, sub.IsSubscribed)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
