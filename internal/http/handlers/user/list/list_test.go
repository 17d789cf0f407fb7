package list

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/slot-booker/internal/models"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) List(ctx context.Context, limit, offset int) ([]*models.User, error) {
	args := m.Called(ctx, limit, offset)
	users, _ := args.Get(0).([]*models.User)
	return users, args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestListHandler_ServeHTTP(t *testing.T) {
	stored := []*models.User{
		{ID: 3, Email: "third@example.com", Name: "Third"},
		{ID: 4, Email: "fourth@example.com", Name: "Fourth"},
	}

	tests := []struct {
		name           string
		query          string
		wantLimit      int
		wantOffset     int
		mockUsers      []*models.User
		mockErr        error
		wantStatusCode int
		wantError      string
		wantStatus     string
	}{
		{
			name:           "defaults without query params",
			query:          "",
			wantLimit:      100,
			wantOffset:     0,
			mockUsers:      stored,
			wantStatusCode: http.StatusOK,
			wantStatus:     "OK",
		},
		{
			name:           "skip and limit reach the service",
			query:          "?skip=2&limit=2",
			wantLimit:      2,
			wantOffset:     2,
			mockUsers:      stored,
			wantStatusCode: http.StatusOK,
			wantStatus:     "OK",
		},
		{
			name:           "service failure",
			query:          "",
			wantLimit:      100,
			wantOffset:     0,
			mockErr:        errors.New("db down"),
			wantStatusCode: http.StatusInternalServerError,
			wantError:      "failed to list users",
			wantStatus:     "Error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			serviceMock := new(ServiceMock)
			handler := New(newNoopLogger(), serviceMock)

			serviceMock.On("List", mock.Anything, tt.wantLimit, tt.wantOffset).
				Return(tt.mockUsers, tt.mockErr).Once()

			req := httptest.NewRequest(http.MethodGet, "/users"+tt.query, nil)
			req = req.WithContext(context.WithValue(req.Context(), middleware.RequestIDKey, "reqid123"))

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)

			var resp map[string]any
			err := json.Unmarshal(rec.Body.Bytes(), &resp)
			assert.NoError(t, err)

			assert.Equal(t, tt.wantStatus, resp["status"])
			if tt.wantError != "" {
				assert.Equal(t, tt.wantError, resp["error"])
			}
			if tt.mockUsers != nil {
				data, ok := resp["data"].(map[string]any)
				assert.True(t, ok)
				assert.Equal(t, float64(len(tt.mockUsers)), data["list_count"])
			}
			serviceMock.AssertExpectations(t)
		})
	}
}
