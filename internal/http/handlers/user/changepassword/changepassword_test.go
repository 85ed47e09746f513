package changepassword

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

	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/store-rating-service/internal/http/middlewarectx"
	"github.com/magabrotheeeer/store-rating-service/internal/models"
	"github.com/magabrotheeeer/store-rating-service/internal/services/auth"
)

// Мок сервиса смены пароля
type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) ChangePassword(ctx context.Context, userID int, oldPassword, newPassword string) error {
	args := m.Called(ctx, userID, oldPassword, newPassword)
	return args.Error(0)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestChangePasswordHandler_ServeHTTP(t *testing.T) {
	validBody := models.DummyChangePassword{
		OldPassword: "oldpassword",
		NewPassword: "newpassword",
	}

	tests := []struct {
		name           string
		requestBody    interface{}
		userID         any
		mockErr        error
		setupMock      bool
		wantStatusCode int
		wantError      string
	}{
		{
			name:           "successful change",
			requestBody:    validBody,
			userID:         3,
			setupMock:      true,
			wantStatusCode: http.StatusOK,
		},
		{
			name:           "invalid json body",
			requestBody:    "not a json",
			userID:         3,
			wantStatusCode: http.StatusBadRequest,
			wantError:      "invalid request body",
		},
		{
			name:           "validation error - missing old password",
			requestBody:    models.DummyChangePassword{NewPassword: "newpassword"},
			userID:         3,
			wantStatusCode: http.StatusBadRequest,
			wantError:      "field OldPassword is a required field",
		},
		{
			name:           "missing user in context",
			requestBody:    validBody,
			userID:         nil,
			wantStatusCode: http.StatusUnauthorized,
			wantError:      "unauthorized",
		},
		{
			name:           "wrong old password",
			requestBody:    validBody,
			userID:         3,
			mockErr:        auth.ErrInvalidCredentials,
			setupMock:      true,
			wantStatusCode: http.StatusBadRequest,
			wantError:      "old password is incorrect",
		},
		{
			name:           "storage error",
			requestBody:    validBody,
			userID:         3,
			mockErr:        errors.New("db error"),
			setupMock:      true,
			wantStatusCode: http.StatusInternalServerError,
			wantError:      "could not change password",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			serviceMock := new(ServiceMock)
			if tt.setupMock {
				serviceMock.On("ChangePassword", mock.Anything, 3, "oldpassword", "newpassword").
					Return(tt.mockErr).Once()
			}
			handler := New(newNoopLogger(), serviceMock)

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

			req := httptest.NewRequest(http.MethodPut, "/user/password", bytes.NewReader(bodyBytes))
			ctx := context.WithValue(req.Context(), middleware.RequestIDKey, "reqid123")
			if tt.userID != nil {
				ctx = context.WithValue(ctx, middlewarectx.UserID, tt.userID)
			}
			req = req.WithContext(ctx)
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)

			var got map[string]any
			err = json.NewDecoder(rec.Body).Decode(&got)
			assert.NoError(t, err)

			if tt.wantError != "" {
				assert.Equal(t, "Error", got["status"])
				assert.Equal(t, tt.wantError, got["error"])
			} else {
				assert.Equal(t, "OK", got["status"])
			}

			serviceMock.AssertExpectations(t)
		})
	}
}
