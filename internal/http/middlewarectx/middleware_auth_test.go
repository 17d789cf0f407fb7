package middlewarectx

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/slot-booker/internal/models"
	"github.com/magabrotheeeer/slot-booker/internal/services/auth"
)

type AuthServiceMock struct {
	mock.Mock
}

func (m *AuthServiceMock) ValidateToken(ctx context.Context, token string) (*models.User, error) {
	args := m.Called(ctx, token)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestJWTMiddleware(t *testing.T) {
	stored := &models.User{ID: 7, Email: "user@example.com", Name: "User"}

	tests := []struct {
		name           string
		authHeader     string
		mockUser       *models.User
		mockErr        error
		wantMockCall   bool
		wantStatusCode int
		wantNextCalled bool
		wantError      string
	}{
		{
			name:           "valid token",
			authHeader:     "Bearer good.jwt.token",
			mockUser:       stored,
			wantMockCall:   true,
			wantStatusCode: http.StatusOK,
			wantNextCalled: true,
		},
		{
			name:           "missing header",
			authHeader:     "",
			wantStatusCode: http.StatusUnauthorized,
			wantError:      "missing or invalid authorization header",
		},
		{
			name:           "wrong scheme",
			authHeader:     "Basic dXNlcjpwYXNz",
			wantStatusCode: http.StatusUnauthorized,
			wantError:      "missing or invalid authorization header",
		},
		{
			name:           "invalid token",
			authHeader:     "Bearer bad.jwt.token",
			mockErr:        auth.ErrInvalidToken,
			wantMockCall:   true,
			wantStatusCode: http.StatusUnauthorized,
			wantError:      "invalid or expired token",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			serviceMock := new(AuthServiceMock)
			if tt.wantMockCall {
				serviceMock.On("ValidateToken", mock.Anything, mock.Anything).
					Return(tt.mockUser, tt.mockErr).Once()
			}

			nextCalled := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true

				userID, ok := r.Context().Value(UserID).(int)
				assert.True(t, ok)
				assert.Equal(t, stored.ID, userID)

				email, ok := r.Context().Value(UserEmail).(string)
				assert.True(t, ok)
				assert.Equal(t, stored.Email, email)

				w.WriteHeader(http.StatusOK)
			})

			handler := JWTMiddleware(serviceMock, newNoopLogger())(next)

			req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)
			assert.Equal(t, tt.wantNextCalled, nextCalled)

			if tt.wantError != "" {
				var resp map[string]any
				err := json.Unmarshal(rec.Body.Bytes(), &resp)
				assert.NoError(t, err)
				assert.Equal(t, "Error", resp["status"])
				assert.Equal(t, tt.wantError, resp["error"])
			}

			if !tt.wantMockCall {
				serviceMock.AssertNotCalled(t, "ValidateToken", mock.Anything, mock.Anything)
			}
		})
	}
}
