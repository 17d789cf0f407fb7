package preferences

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/slot-booker/internal/http/middlewarectx"
	"github.com/magabrotheeeer/slot-booker/internal/models"
	"github.com/magabrotheeeer/slot-booker/internal/services/user"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) UpdatePreferences(ctx context.Context, userID, callerID int, preferences string) (*models.User, error) {
	args := m.Called(ctx, userID, callerID, preferences)
	u, _ := args.Get(0).(*models.User)
	return u, args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func newRequest(id string, callerID any, body []byte) *http.Request {
	req := httptest.NewRequest(http.MethodPut, "/users/"+id+"/preferences", bytes.NewReader(body))

	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)

	ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
	ctx = context.WithValue(ctx, middleware.RequestIDKey, "reqid123")
	if callerID != nil {
		ctx = context.WithValue(ctx, middlewarectx.UserID, callerID)
	}
	return req.WithContext(ctx)
}

func TestPreferencesHandler_ServeHTTP(t *testing.T) {
	prefs := "dark_theme"
	updated := &models.User{ID: 1, Email: "user@example.com", Name: "User", Preferences: &prefs}

	tests := []struct {
		name           string
		userID         string
		callerID       any
		requestBody    interface{}
		mockUser       *models.User
		mockErr        error
		wantStatusCode int
		wantError      string
		wantStatus     string
	}{
		{
			name:           "owner updates preferences",
			userID:         "1",
			callerID:       1,
			requestBody:    Request{Preferences: "dark_theme"},
			mockUser:       updated,
			wantStatusCode: http.StatusOK,
			wantStatus:     "OK",
		},
		{
			name:           "foreign preferences forbidden",
			userID:         "2",
			callerID:       1,
			requestBody:    Request{Preferences: "dark_theme"},
			mockErr:        user.ErrNotOwner,
			wantStatusCode: http.StatusForbidden,
			wantError:      "not authorized to update other user's preferences",
			wantStatus:     "Error",
		},
		{
			name:           "invalid id",
			userID:         "abc",
			callerID:       1,
			requestBody:    Request{Preferences: "dark_theme"},
			wantStatusCode: http.StatusBadRequest,
			wantError:      "invalid id",
			wantStatus:     "Error",
		},
		{
			name:           "invalid json body",
			userID:         "1",
			callerID:       1,
			requestBody:    "not a json",
			wantStatusCode: http.StatusBadRequest,
			wantError:      "invalid request body",
			wantStatus:     "Error",
		},
		{
			name:           "validation error - missing preferences",
			userID:         "1",
			callerID:       1,
			requestBody:    Request{},
			wantStatusCode: http.StatusUnprocessableEntity,
			wantError:      "field Preferences is a required field",
			wantStatus:     "Error",
		},
		{
			name:           "no user in context",
			userID:         "1",
			callerID:       nil,
			requestBody:    Request{Preferences: "dark_theme"},
			wantStatusCode: http.StatusUnauthorized,
			wantError:      "unauthorized",
			wantStatus:     "Error",
		},
		{
			name:           "service failure",
			userID:         "1",
			callerID:       1,
			requestBody:    Request{Preferences: "dark_theme"},
			mockErr:        errors.New("db down"),
			wantStatusCode: http.StatusInternalServerError,
			wantError:      "could not update preferences",
			wantStatus:     "Error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			serviceMock := new(ServiceMock)
			handler := New(newNoopLogger(), serviceMock)

			if tt.mockUser != nil || tt.mockErr != nil {
				serviceMock.On("UpdatePreferences", mock.Anything, mock.Anything, tt.callerID, tt.requestBody.(Request).Preferences).
					Return(tt.mockUser, tt.mockErr).Once()
			}

			var bodyBytes []byte
			var err error
			switch v := tt.requestBody.(type) {
			case string:
				bodyBytes = []byte(v)
			default:
				bodyBytes, err = json.Marshal(tt.requestBody)
				if err != nil {
					t.Fatal(err)
				}
			}

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, newRequest(tt.userID, tt.callerID, bodyBytes))

			assert.Equal(t, tt.wantStatusCode, rec.Code)

			var resp map[string]any
			err = json.Unmarshal(rec.Body.Bytes(), &resp)
			assert.NoError(t, err)

			assert.Equal(t, tt.wantStatus, resp["status"])
			if tt.wantError != "" {
				assert.Equal(t, tt.wantError, resp["error"])
			}
			if tt.mockUser != nil {
				data, ok := resp["data"].(map[string]any)
				assert.True(t, ok)
				assert.Equal(t, "dark_theme", data["preferences"])
			}
		})
	}
}
