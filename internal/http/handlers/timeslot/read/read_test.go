package read

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/slot-booker/internal/models"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) Read(ctx context.Context, id int) (*models.TimeSlot, error) {
	args := m.Called(ctx, id)
	slot, _ := args.Get(0).(*models.TimeSlot)
	return slot, args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func newRequest(id string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/timeslots/"+id, nil)

	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)

	ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
	ctx = context.WithValue(ctx, middleware.RequestIDKey, "reqid123")
	return req.WithContext(ctx)
}

func TestReadHandler_ServeHTTP(t *testing.T) {
	stored := &models.TimeSlot{
		ID:       3,
		Category: "consultation",
		Start:    time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC),
		End:      time.Date(2026, 9, 1, 11, 0, 0, 0, time.UTC),
	}

	tests := []struct {
		name           string
		slotID         string
		mockSlot       *models.TimeSlot
		mockErr        error
		wantMockCall   bool
		wantStatusCode int
		wantError      string
		wantStatus     string
	}{
		{
			name:           "existing slot",
			slotID:         "3",
			mockSlot:       stored,
			wantMockCall:   true,
			wantStatusCode: http.StatusOK,
			wantStatus:     "OK",
		},
		{
			name:           "missing slot returns null data",
			slotID:         "404",
			mockSlot:       nil,
			wantMockCall:   true,
			wantStatusCode: http.StatusOK,
			wantStatus:     "OK",
		},
		{
			name:           "invalid id",
			slotID:         "abc",
			wantStatusCode: http.StatusBadRequest,
			wantError:      "invalid id",
			wantStatus:     "Error",
		},
		{
			name:           "service failure",
			slotID:         "3",
			mockErr:        errors.New("db down"),
			wantMockCall:   true,
			wantStatusCode: http.StatusInternalServerError,
			wantError:      "could not read timeslot",
			wantStatus:     "Error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			serviceMock := new(ServiceMock)
			handler := New(newNoopLogger(), serviceMock)

			if tt.wantMockCall {
				serviceMock.On("Read", mock.Anything, mock.Anything).
					Return(tt.mockSlot, tt.mockErr).Once()
			}

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, newRequest(tt.slotID))

			assert.Equal(t, tt.wantStatusCode, rec.Code)

			var resp map[string]any
			err := json.Unmarshal(rec.Body.Bytes(), &resp)
			assert.NoError(t, err)

			assert.Equal(t, tt.wantStatus, resp["status"])
			if tt.wantError != "" {
				assert.Equal(t, tt.wantError, resp["error"])
			}
			if tt.mockSlot != nil {
				data, ok := resp["data"].(map[string]any)
				assert.True(t, ok)
				assert.Equal(t, float64(stored.ID), data["id"])
				assert.Nil(t, data["user_id"])
			}
			if !tt.wantMockCall {
				serviceMock.AssertNotCalled(t, "Read", mock.Anything, mock.Anything)
			}
		})
	}
}
