package helpers

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsletterplatform/internal/domain"
)

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) APIResponse {
	t.Helper()
	var resp APIResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func TestRespondError_Operational(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		code    string
		message string
	}{
		{"not found", domain.NotFoundError("Newsletter not found"), http.StatusNotFound, ErrCodeNotFound, "Newsletter not found"},
		{"conflict", domain.ConflictError("Email already exists"), http.StatusConflict, ErrCodeConflict, "Email already exists"},
		{"unauthorized", domain.UnauthorizedError("Invalid email or password"), http.StatusUnauthorized, ErrCodeUnauthorized, "Invalid email or password"},
		{"bad request", domain.BadRequestError("No valid fields provided for update"), http.StatusBadRequest, ErrCodeBadRequest, "No valid fields provided for update"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var logBuf bytes.Buffer
			logger := slog.New(slog.NewTextHandler(&logBuf, &slog.HandlerOptions{Level: slog.LevelDebug}))
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			RespondError(rec, req, logger, tt.err)
			assert.Equal(t, tt.status, rec.Code)
			resp := decodeEnvelope(t, rec)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.code, resp.Error.Code)
			assert.Equal(t, tt.message, resp.Error.Message)

			// Operational errors are logged too, with method and path.
			logged := logBuf.String()
			assert.NotEmpty(t, logged)
			assert.Contains(t, logged, "method=GET")
			assert.Contains(t, logged, "path=/test")
		})
	}
}

func TestRespondError_UnexpectedErrorIsGeneric(t *testing.T) {
	var logBuf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logBuf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	RespondError(rec, req, logger, errors.New("pq: connection refused"))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	resp := decodeEnvelope(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeInternalError, resp.Error.Code)
	assert.Equal(t, "Internal server error", resp.Error.Message)
	assert.NotContains(t, rec.Body.String(), "connection refused")
	assert.Contains(t, logBuf.String(), "connection refused")
}

func TestWriteValidationError(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteValidationError(rec, []FieldError{
		{Path: "title", Message: "Title must be at least 5 characters long"},
		{Path: "content", Message: "Content must be at least 15 characters long"},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeEnvelope(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeValidation, resp.Error.Code)
	assert.Len(t, resp.Error.Details, 2)
	assert.Equal(t, "title", resp.Error.Details[0].Path)
}

type testDTO struct {
	Name string `json:"name"`
}

func (d *testDTO) Validate() []FieldError {
	var errs []FieldError
	if d.Name == "" {
		errs = append(errs, FieldError{Path: "name", Message: "Name is required"})
	}
	return errs
}

func TestDecodeAndValidate(t *testing.T) {
	t.Run("valid body", func(t *testing.T) {
		logger := slog.New(slog.NewTextHandler(io.Discard, nil))
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"ok"}`))
		var dto testDTO
		assert.True(t, DecodeAndValidate(rec, req, logger, &dto))
		assert.Equal(t, "ok", dto.Name)
	})
	t.Run("unknown field", func(t *testing.T) {
		var logBuf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&logBuf, &slog.HandlerOptions{Level: slog.LevelDebug}))
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"ok","extra":1}`))
		var dto testDTO
		assert.False(t, DecodeAndValidate(rec, req, logger, &dto))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		resp := decodeEnvelope(t, rec)
		require.NotNil(t, resp.Error)
		// The json error stays in the log; the caller sees a fixed message.
		assert.Equal(t, "Invalid request body", resp.Error.Message)
		assert.NotContains(t, rec.Body.String(), "extra")
		assert.Contains(t, logBuf.String(), "extra")
		assert.Contains(t, logBuf.String(), "path=/")
	})
	t.Run("failed validation", func(t *testing.T) {
		var logBuf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&logBuf, &slog.HandlerOptions{Level: slog.LevelDebug}))
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":""}`))
		var dto testDTO
		assert.False(t, DecodeAndValidate(rec, req, logger, &dto))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		resp := decodeEnvelope(t, rec)
		require.NotNil(t, resp.Error)
		assert.Equal(t, ErrCodeValidation, resp.Error.Code)
		require.Len(t, resp.Error.Details, 1)
		assert.Equal(t, "name", resp.Error.Details[0].Path)
		assert.Contains(t, logBuf.String(), "method=POST")
	})
}

func TestParsePagination(t *testing.T) {
	tests := []struct {
		name   string
		query  string
		limit  int
		offset int
	}{
		{"defaults", "", 20, 0},
		{"explicit", "limit=10&offset=30", 10, 30},
		{"clamped", "limit=500", 100, 0},
		{"invalid falls back", "limit=abc&offset=-5", 20, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/?"+tt.query, nil)
			p := ParsePagination(req)
			assert.Equal(t, tt.limit, p.Limit)
			assert.Equal(t, tt.offset, p.Offset)
		})
	}
}

func TestNewPage(t *testing.T) {
	page := NewPage(domain.PaginationParams{Limit: 10, Offset: 20}, 45)
	assert.Equal(t, 45, page.Total)
	assert.Equal(t, 3, page.CurrentPage)
	assert.Equal(t, 5, page.TotalPages)

	empty := NewPage(domain.PaginationParams{Limit: 0, Offset: 0}, 45)
	assert.Equal(t, 0, empty.TotalPages)
}
